package logtool

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/fwojciec/sift"
)

// ListLogsSchema declares the list_logs tool.
func ListLogsSchema() sift.ToolSchema {
	return sift.ToolSchema{
		Name:        "list_logs",
		Description: "Lists the log files available for reading, optionally filtered by a glob pattern on the file name.",
		Args: map[string]sift.ArgSpec{
			"pattern": {
				Kind:        sift.KindString,
				Description: "Glob pattern matched against file names, e.g. *.log; use * for all",
			},
		},
	}
}

// ListLogs enumerates the allow-listed files that exist on disk and
// match the pattern.
func (t *Toolset) ListLogs(_ context.Context, args map[string]any) (any, error) {
	pattern := args["pattern"].(string)
	if pattern == "" {
		pattern = "*"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern: %s", pattern)
	}

	var files []string
	if _, err := os.Stat(t.files.DefaultLog); err == nil {
		if match(pattern, t.files.DefaultLog) {
			files = append(files, filepath.Clean(t.files.DefaultLog))
		}
	}

	entries, err := os.ReadDir(t.files.UploadsDir)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("list %s: %w", t.files.UploadsDir, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if match(pattern, e.Name()) {
			files = append(files, filepath.Join(t.files.UploadsDir, e.Name()))
		}
	}

	sort.Strings(files)
	return map[string]any{"files": files, "count": len(files)}, nil
}

func match(pattern, path string) bool {
	ok, err := doublestar.Match(pattern, filepath.Base(path))
	return err == nil && ok
}
