package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/sift"
)

var _ tea.Model = Model{}

// agentResult carries the investigation outcome across the done channel.
type agentResult struct {
	outcome sift.Outcome
	err     error
}

// Model is the Bubble Tea model for the sift TUI.
type Model struct {
	// Input is the text input component. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable output area. Exported for test access.
	Viewport viewport.Model

	run     AgentFunc
	theme   sift.Theme
	styles  Styles
	spinner spinner.Model

	blocks     []MessageBlock
	blockFocus int // index of focused collapsible block (-1 = none)

	// lastTool is the name from the most recent tool call turn, used to
	// label the matching result turn.
	lastTool string

	running bool
	cancel  context.CancelFunc
	turnCh  chan sift.ConversationTurn
	doneCh  chan agentResult
	err     error
	ready   bool
}

// New creates a new TUI Model with the given agent function and theme.
func New(run AgentFunc, theme sift.Theme) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about your logs..."
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 0

	styles := NewStyles(theme)
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Accent

	return Model{
		Input:      ti,
		run:        run,
		theme:      theme,
		styles:     styles,
		spinner:    sp,
		blockFocus: -1,
	}
}

// Running returns whether an investigation is currently running.
func (m Model) Running() bool { return m.running }

// Err returns the last error, if any.
func (m Model) Err() error { return m.err }

// SetRunningWithCancel is a test helper that puts the model in a running
// state with a cancel function.
func SetRunningWithCancel(m Model, cancel func()) (Model, tea.Cmd) {
	m.running = true
	m.cancel = cancel
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.running {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case TurnMsg:
		m = m.processTurn(msg.Turn)
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		if m.turnCh != nil {
			return m, listenForTurn(m.turnCh, m.doneCh)
		}
		return m, nil

	case AgentDoneMsg:
		m.running = false
		m.cancel = nil
		m.turnCh = nil
		m.doneCh = nil
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			m.err = msg.Err
		}
		m = m.finishOutcome(msg.Outcome)
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		m = m.updateBlockFocus()
		cmds = append(cmds, m.Input.Focus())
		return m, tea.Batch(cmds...)
	}

	// Pass remaining messages to sub-components. The viewport always
	// receives messages for scrolling (keyboard and mouse).
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)

	if !m.running {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	inputH := 1
	statusH := 1
	borderH := 2 // newlines between sections
	vpHeight := msg.Height - inputH - statusH - borderH
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}

	m.Input.Width = msg.Width
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.running {
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyEnter:
		if m.running {
			return m, nil
		}
		text := strings.TrimSpace(m.Input.Value())
		if text == "" {
			return m, nil
		}
		return m.submitQuery(text)

	case tea.KeyTab:
		if !m.running && m.blockFocus >= 0 {
			block, cmd := m.blocks[m.blockFocus].Update(ToggleMsg{})
			m.blocks[m.blockFocus] = block
			m.Viewport.SetContent(m.renderContent())
			return m, cmd
		}
		return m, nil

	case tea.KeyShiftTab:
		if !m.running {
			m = m.cycleFocusPrev()
			m.Viewport.SetContent(m.renderContent())
		}
		return m, nil
	}

	// When idle, pass keys to both the input (for typing) and viewport
	// (for scrolling). Only non-character keys go to the viewport, since
	// 'j'/'k' are both scroll keys and text characters.
	if !m.running {
		var cmd tea.Cmd
		var cmds []tea.Cmd

		if msg.Type != tea.KeyRunes {
			m.Viewport, cmd = m.Viewport.Update(msg)
			cmds = append(cmds, cmd)
		}

		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)

		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m Model) submitQuery(text string) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	m.err = nil

	m.blocks = append(m.blocks, NewQueryBlock(text, m.styles))
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.turnCh = make(chan sift.ConversationTurn, 64)
	m.doneCh = make(chan agentResult, 1)
	m.running = true

	m.Input.Blur()

	return m, tea.Batch(
		startAgent(m.run, ctx, text, m.turnCh, m.doneCh),
		listenForTurn(m.turnCh, m.doneCh),
		m.spinner.Tick,
	)
}

func (m Model) renderContent() string {
	if len(m.blocks) == 0 {
		return ""
	}
	var b strings.Builder
	for i, block := range m.blocks {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(block.View(m.Viewport.Width))
	}
	return b.String()
}

// processTurn appends a block for a conversation turn.
func (m Model) processTurn(turn sift.ConversationTurn) Model {
	switch t := turn.(type) {
	case sift.UserQueryTurn:
		// The query block was already added on submit.
	case sift.ToolCallRequestedTurn:
		m.lastTool = t.Request.Tool
		m.blocks = append(m.blocks, NewToolCallBlock(t.Request, m.styles))
	case sift.ToolCallCompletedTurn:
		m.blocks = append(m.blocks, NewToolResultBlock(m.lastTool, t.Result, m.styles))
	case sift.ValidationRejectedTurn:
		m.blocks = append(m.blocks, NewRejectedBlock(t.Reason, m.styles))
	case sift.ParseFailureTurn:
		m.blocks = append(m.blocks, NewParseFailureBlock(t.Raw, m.styles))
	case sift.FinalAnswerTurn:
		m.blocks = append(m.blocks, NewAnswerBlock(t.Text, m.theme))
	}
	return m
}

// finishOutcome appends closing blocks for non-success outcomes. Success
// needs none: the final answer arrived as a turn.
func (m Model) finishOutcome(outcome sift.Outcome) Model {
	switch outcome.Kind {
	case sift.OutcomeIterationLimit:
		m.blocks = append(m.blocks, NewNoticeBlock("iteration limit reached", false, m.styles))
		if outcome.Answer != "" {
			m.blocks = append(m.blocks, NewAnswerBlock(outcome.Answer, m.theme))
		}
	case sift.OutcomeFatalParseFailure:
		m.blocks = append(m.blocks, NewNoticeBlock("the model could not produce a valid reply", true, m.styles))
	case sift.OutcomeCancelled:
		m.blocks = append(m.blocks, NewNoticeBlock("investigation cancelled", false, m.styles))
	}
	return m
}

// updateBlockFocus scans backwards to find the last collapsible block.
// Only the focused block responds to Tab. Shift+Tab cycles to the
// previous collapsible block.
func (m Model) updateBlockFocus() Model {
	m.blockFocus = -1
	for i := len(m.blocks) - 1; i >= 0; i-- {
		if collapsible(m.blocks[i]) {
			m.blockFocus = i
			return m
		}
	}
	return m
}

// cycleFocusPrev moves blockFocus to the previous collapsible block,
// wrapping around.
func (m Model) cycleFocusPrev() Model {
	start := m.blockFocus - 1
	if start < 0 {
		start = len(m.blocks) - 1
	}
	for i := range len(m.blocks) {
		idx := (start - i + len(m.blocks)) % len(m.blocks)
		if collapsible(m.blocks[idx]) {
			m.blockFocus = idx
			return m
		}
	}
	m.blockFocus = -1
	return m
}

func collapsible(b MessageBlock) bool {
	switch b.(type) {
	case *ToolCallBlock, *ToolResultBlock, *ParseFailureBlock:
		return true
	}
	return false
}

func (m Model) statusLine() string {
	if m.err != nil {
		return m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if m.running {
		return m.spinner.View() + m.styles.Muted.Render("Investigating...")
	}
	return m.styles.Muted.Render("Enter to ask, Ctrl+C to quit")
}

// startAgent runs the investigation in a goroutine and signals completion.
func startAgent(run AgentFunc, ctx context.Context, query string, turnCh chan<- sift.ConversationTurn, doneCh chan<- agentResult) tea.Cmd {
	return func() tea.Msg {
		_, outcome, err := run(ctx, query, func(turn sift.ConversationTurn) {
			select {
			case turnCh <- turn:
			case <-ctx.Done():
			}
		})
		close(turnCh)
		doneCh <- agentResult{outcome: outcome, err: err}
		return nil
	}
}

// listenForTurn waits for the next turn from the channel. When the
// channel closes it reads the result from doneCh and returns AgentDoneMsg.
func listenForTurn(ch <-chan sift.ConversationTurn, doneCh <-chan agentResult) tea.Cmd {
	return func() tea.Msg {
		turn, ok := <-ch
		if !ok {
			res := <-doneCh
			return AgentDoneMsg{Outcome: res.outcome, Err: res.err}
		}
		return TurnMsg{Turn: turn}
	}
}
