// Package gemini implements [sift.Generator] for the Google Gemini API.
//
// It wraps the google.golang.org/genai SDK with a single synchronous
// GenerateContent call per Generate. The orchestration core needs no
// streaming: it consumes whole replies.
package gemini

const (
	defaultModel       = "gemini-2.0-flash"
	defaultTemperature = 0.2
)
