package logtool

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/fwojciec/sift"
)

const (
	topServicesLimit = 10
	sampleLimit      = 5
)

// AnalyzeLogsSchema declares the analyze_logs tool.
func AnalyzeLogsSchema() sift.ToolSchema {
	return sift.ToolSchema{
		Name:        "analyze_logs",
		Description: "Analyzes parsed log entries: level distribution, error counts, top services with errors, and per-service statistics.",
		Args: map[string]sift.ArgSpec{
			"parsed_logs": {
				Kind:        sift.KindList,
				Description: "Parsed log entries from the parse_logs tool",
			},
		},
	}
}

// AnalyzeLogs computes statistics over parsed log entries.
func AnalyzeLogs(_ context.Context, args map[string]any) (any, error) {
	entries := args["parsed_logs"].([]any)
	if len(entries) == 0 {
		return nil, errors.New("no logs to analyze")
	}

	levelCounts := map[string]int{}
	serviceErrors := map[string]int{}
	serviceWarnings := map[string]int{}
	serviceInfo := map[string]int{}
	serviceTotals := map[string]int{}

	errorSamples := []any{}
	warningSamples := []any{}

	for i, e := range entries {
		entry, ok := e.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("parsed_logs entry %d must be a mapping, got %T", i, e)
		}
		level := stringField(entry, "level", "UNKNOWN")
		service := stringField(entry, "service", "unknown")

		levelCounts[level]++
		serviceTotals[service]++

		switch level {
		case "ERROR":
			serviceErrors[service]++
			if len(errorSamples) < sampleLimit {
				errorSamples = append(errorSamples, entry)
			}
		case "WARN":
			serviceWarnings[service]++
			if len(warningSamples) < sampleLimit {
				warningSamples = append(warningSamples, entry)
			}
		case "INFO":
			serviceInfo[service]++
		}
	}

	serviceStats := make(map[string]any, len(serviceTotals))
	for service, total := range serviceTotals {
		serviceStats[service] = map[string]any{
			"total":    total,
			"errors":   serviceErrors[service],
			"warnings": serviceWarnings[service],
			"info":     serviceInfo[service],
		}
	}

	return map[string]any{
		"total_logs":           len(entries),
		"level_distribution":   levelCounts,
		"error_count":          levelCounts["ERROR"],
		"warning_count":        levelCounts["WARN"],
		"info_count":           levelCounts["INFO"],
		"top_error_services":   topServices(serviceErrors),
		"top_warning_services": topServices(serviceWarnings),
		"service_statistics":   serviceStats,
		"error_logs_sample":    errorSamples,
		"warning_logs_sample":  warningSamples,
	}, nil
}

// topServices ranks services by count, descending, ties broken by name
// so the result is deterministic.
func topServices(counts map[string]int) []any {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	if len(names) > topServicesLimit {
		names = names[:topServicesLimit]
	}
	ranked := make([]any, 0, len(names))
	for _, name := range names {
		ranked = append(ranked, map[string]any{"service": name, "count": counts[name]})
	}
	return ranked
}

func stringField(entry map[string]any, key, fallback string) string {
	if s, ok := entry[key].(string); ok {
		return s
	}
	return fallback
}
