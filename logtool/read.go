package logtool

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/fwojciec/sift"
)

// ReadFileSchema declares the read_file tool.
func ReadFileSchema() sift.ToolSchema {
	return sift.ToolSchema{
		Name:        "read_file",
		Description: "Reads a single log file from the filesystem and returns its content with metadata.",
		Args: map[string]sift.ArgSpec{
			"file_path": {
				Kind:        sift.KindString,
				Description: "Path to the log file to read",
			},
		},
	}
}

// ReadFile reads one allow-listed log file. Arguments arrive
// schema-validated, so the type assertions here cannot fail.
func (t *Toolset) ReadFile(_ context.Context, args map[string]any) (any, error) {
	path, err := t.files.Resolve(args["file_path"].(string))
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return map[string]any{
		"file":       path,
		"content":    string(content),
		"size_bytes": info.Size(),
		"modified":   info.ModTime().UTC().Format(time.RFC3339),
	}, nil
}

// ReadLogsSchema declares the read_logs tool.
func ReadLogsSchema() sift.ToolSchema {
	return sift.ToolSchema{
		Name:        "read_logs",
		Description: "Reads multiple allowed log files and returns their contents keyed by file name.",
		Args: map[string]sift.ArgSpec{
			"file_names": {
				Kind:        sift.KindList,
				Description: "File names or relative paths to read",
			},
		},
	}
}

// ReadLogs reads a batch of allow-listed log files. The first failure
// aborts the call so the model sees one precise error at a time.
func (t *Toolset) ReadLogs(_ context.Context, args map[string]any) (any, error) {
	names := args["file_names"].([]any)
	contents := make(map[string]any, len(names))

	for _, n := range names {
		name, ok := n.(string)
		if !ok {
			return nil, fmt.Errorf("file names must be strings, got %T", n)
		}
		path, err := t.files.Resolve(name)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("file not found: %s", path)
			}
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		contents[path] = string(data)
	}

	return map[string]any{"files": contents}, nil
}
