// Package logtool provides the built-in log-analysis tools: reading
// allow-listed log files, parsing raw log text into structured entries,
// and computing statistics over parsed entries.
package logtool

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fwojciec/sift"
)

// Files is the allow-list of readable log files: the default application
// log plus anything inside the uploads directory. Paths outside it are
// refused before any filesystem access happens.
type Files struct {
	DefaultLog string // e.g. data/application.log
	UploadsDir string // e.g. data/uploads
}

// Resolve normalizes name and returns the cleaned path if it is allowed.
func (f Files) Resolve(name string) (string, error) {
	cleaned := filepath.Clean(name)
	if cleaned == filepath.Clean(f.DefaultLog) {
		return cleaned, nil
	}
	uploads := filepath.Clean(f.UploadsDir)
	if strings.HasPrefix(cleaned, uploads+string(filepath.Separator)) {
		return cleaned, nil
	}
	return "", fmt.Errorf("file not allowed: %s (allowed: %s or files in %s)",
		name, f.DefaultLog, f.UploadsDir)
}

// Toolset bundles the log tools over one allow-list.
type Toolset struct {
	files Files
}

// New creates a Toolset for the given allow-list.
func New(files Files) *Toolset {
	return &Toolset{files: files}
}

// Register adds all log tools to a registrar.
func (t *Toolset) Register(reg sift.Registrar) error {
	for _, tool := range []struct {
		schema sift.ToolSchema
		fn     sift.ToolFunc
	}{
		{ReadFileSchema(), t.ReadFile},
		{ReadLogsSchema(), t.ReadLogs},
		{ListLogsSchema(), t.ListLogs},
		{ParseLogsSchema(), ParseLogs},
		{AnalyzeLogsSchema(), AnalyzeLogs},
	} {
		if err := reg.Register(tool.schema, tool.fn); err != nil {
			return fmt.Errorf("register %s: %w", tool.schema.Name, err)
		}
	}
	return nil
}
