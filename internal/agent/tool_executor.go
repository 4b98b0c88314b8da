package agent

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"codefitter/internal/diff"
)

// FileTools performs the file side effects of tool calls. Relative paths
// resolve against Root, or the working directory when Root is empty.
type FileTools struct {
	Root string
}

// Resolve maps a tool file name onto the filesystem.
func (t FileTools) Resolve(name string) string {
	if filepath.IsAbs(name) || t.Root == "" {
		return filepath.Clean(name)
	}
	return filepath.Join(t.Root, name)
}

// Read returns the whole text of a file.
func (t FileTools) Read(name string) (string, error) {
	data, err := os.ReadFile(t.Resolve(name))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Write replaces a file's content, creating parent directories as needed.
func (t FileTools) Write(name, content string) error {
	path := t.Resolve(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create directory for %s", name)
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		return errors.Wrapf(err, "write %s", name)
	}
	return nil
}

// Modify applies a model-authored diff to a file.
func (t FileTools) Modify(name, diffText string) error {
	return diff.ApplyFile(t.Resolve(name), diffText)
}

// ExecuteRead runs a ReadFile call and returns the tool result text.
// Failures become result text so the model can correct itself.
func (t FileTools) ExecuteRead(call ToolCall) string {
	args, err := ParseReadFileArgs(call)
	if err != nil {
		return "error: " + err.Error()
	}
	content, err := t.Read(args.FileName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "error: file not found: " + args.FileName
		}
		return "error: " + err.Error()
	}
	return content
}
