// Command sift is an interactive assistant for investigating application
// logs. A Gemini model decides which analysis tool to call next; the
// tools themselves run locally against log files under the data
// directory.
//
// Usage:
//
//	SIFT_API_KEY=gk-... sift [flags]
//	GEMINI_API_KEY=gk-... sift -q "why is the api failing?"
//
// Flags:
//
//	-config string          Path to config file (default: ./sift.yaml if present)
//	-api-key string         Gemini API key (overrides SIFT_API_KEY / GEMINI_API_KEY)
//	-model string           Model ID (default: gemini-2.0-flash)
//	-max-iterations int     Tool-calling iteration budget
//	-data-dir string        Directory holding application.log and uploads/
//	-log-level string       debug, info, warn, error
//	-q string               Run a single query without the TUI and print the answer
//	-export string          With -q, write the transcript JSON to this file
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/fwojciec/sift"
	"github.com/fwojciec/sift/agent"
	bt "github.com/fwojciec/sift/bubbletea"
	"github.com/fwojciec/sift/gemini"
	siftjson "github.com/fwojciec/sift/json"
	"github.com/fwojciec/sift/logtool"
	"github.com/fwojciec/sift/registry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "sift: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "Path to config file")
		apiKey     = flag.String("api-key", "", "Gemini API key")
		model      = flag.String("model", "", "Model ID")
		maxIter    = flag.Int("max-iterations", 0, "Tool-calling iteration budget")
		dataDir    = flag.String("data-dir", "", "Directory holding application.log and uploads/")
		logLevel   = flag.String("log-level", "", "Log level: debug, info, warn, error")
		query      = flag.String("q", "", "Run a single query without the TUI")
		exportPath = flag.String("export", "", "With -q, write the transcript JSON to this file")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *apiKey != "" {
		cfg.APIKey = *apiKey
	}
	if *model != "" {
		cfg.Model = *model
	}
	if *maxIter > 0 {
		cfg.MaxIterations = *maxIter
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
		cfg.DefaultLog = filepath.Join(cfg.DataDir, "application.log")
		cfg.UploadsDir = filepath.Join(cfg.DataDir, "uploads")
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if cfg.APIKey == "" {
		return errors.New("missing API key: set SIFT_API_KEY or GEMINI_API_KEY")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	genOpts := []gemini.Option{gemini.WithTemperature(cfg.Temperature)}
	if cfg.Model != "" {
		genOpts = append(genOpts, gemini.WithModel(cfg.Model))
	}
	gen, err := gemini.New(ctx, cfg.APIKey, genOpts...)
	if err != nil {
		return fmt.Errorf("gemini client: %w", err)
	}

	reg := registry.New()
	toolset := logtool.New(logtool.Files{
		DefaultLog: cfg.DefaultLog,
		UploadsDir: cfg.UploadsDir,
	})
	if err := toolset.Register(reg); err != nil {
		return fmt.Errorf("register tools: %w", err)
	}

	if *query != "" {
		logger := newLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
		return runOnce(ctx, gen, reg, cfg, logger, *query, *exportPath)
	}

	logger, closeLog, err := newTUILogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	agentFn := func(ctx context.Context, q string, onTurn func(sift.ConversationTurn)) (*sift.Transcript, sift.Outcome, error) {
		loop := agent.New(gen, reg,
			agent.WithMaxIterations(cfg.MaxIterations),
			agent.WithLogger(logger),
			agent.WithTurnHandler(onTurn),
		)
		return loop.Run(ctx, q)
	}

	m := bt.New(agentFn, sift.DefaultTheme())
	if err := bt.Run(ctx, m); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	return nil
}

// runOnce executes a single query and prints the answer to stdout.
func runOnce(ctx context.Context, gen sift.Generator, reg sift.ToolBoundary, cfg Config, logger zerolog.Logger, query, exportPath string) error {
	loop := agent.New(gen, reg,
		agent.WithMaxIterations(cfg.MaxIterations),
		agent.WithLogger(logger),
	)
	transcript, outcome, err := loop.Run(ctx, query)
	if err != nil {
		return err
	}

	if exportPath != "" {
		data, err := siftjson.MarshalTranscript(transcript, outcome)
		if err != nil {
			return fmt.Errorf("export transcript: %w", err)
		}
		if err := os.WriteFile(exportPath, data, 0o644); err != nil {
			return fmt.Errorf("write transcript: %w", err)
		}
	}

	switch outcome.Kind {
	case sift.OutcomeSuccess:
		fmt.Println(outcome.Answer)
	case sift.OutcomeIterationLimit:
		fmt.Fprintln(os.Stderr, "iteration limit reached; best-effort answer follows")
		fmt.Println(outcome.Answer)
	case sift.OutcomeFatalParseFailure:
		return fmt.Errorf("model produced unparseable replies; last reply: %s", outcome.RawReply)
	case sift.OutcomeCancelled:
		return context.Canceled
	}
	return nil
}
