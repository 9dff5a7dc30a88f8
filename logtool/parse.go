package logtool

import (
	"context"
	"regexp"
	"strings"

	"github.com/fwojciec/sift"
)

// linePattern matches the expected log line format:
// YYYY-MM-DD HH:MM:SS LEVEL [service-name] message
var linePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}) (\w+) \[([^\]]+)\] (.+)$`)

// ParseLogsSchema declares the parse_logs tool.
func ParseLogsSchema() sift.ToolSchema {
	return sift.ToolSchema{
		Name:        "parse_logs",
		Description: "Parses raw log text into structured entries with timestamp, level, service, and message.",
		Args: map[string]sift.ArgSpec{
			"log_text": {
				Kind:        sift.KindString,
				Description: "Raw log file content to parse",
			},
		},
	}
}

// ParseLogs parses raw log text line by line. Lines that do not match
// the expected format are kept with level UNKNOWN rather than dropped,
// so line numbers stay faithful to the source.
func ParseLogs(_ context.Context, args map[string]any) (any, error) {
	logText := args["log_text"].(string)

	parsed := []any{}
	parseable := 0

	for i, line := range strings.Split(strings.TrimSpace(logText), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lineNum := i + 1
		if m := linePattern.FindStringSubmatch(line); m != nil {
			parseable++
			parsed = append(parsed, map[string]any{
				"line_number": lineNum,
				"timestamp":   m[1],
				"level":       strings.ToUpper(m[2]),
				"service":     m[3],
				"message":     m[4],
			})
			continue
		}
		parsed = append(parsed, map[string]any{
			"line_number": lineNum,
			"timestamp":   nil,
			"level":       "UNKNOWN",
			"service":     "unknown",
			"message":     line,
		})
	}

	return map[string]any{
		"parsed_logs":     parsed,
		"total_lines":     len(parsed),
		"parseable_lines": parseable,
	}, nil
}
