package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/fwojciec/sift"
)

// Interface compliance check.
var _ sift.Generator = (*Client)(nil)

// Client implements [sift.Generator] for the Google Gemini API.
type Client struct {
	client      *genai.Client
	model       string
	temperature float32
}

// Option configures a [Client].
type Option func(*Client)

// WithModel sets the model ID. Default is gemini-2.0-flash.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithTemperature sets the sampling temperature. The default is low:
// the prompt demands strict JSON and higher temperatures waste the
// parse-retry budget.
func WithTemperature(t float64) Option {
	return func(c *Client) { c.temperature = float32(t) }
}

// New creates a new Gemini [Client] with the given API key and options.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	c := &Client{
		client:      gc,
		model:       defaultModel,
		temperature: defaultTemperature,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Generate sends the prompt as a single user content and returns the
// model's reply text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	temp := c.temperature
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	return ResponseText(resp), nil
}

// ResponseText concatenates the text parts of the first candidate,
// skipping thought parts. Exported for testing.
func ResponseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String()
}
