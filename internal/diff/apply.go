package diff

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Apply reconstructs the new file lines from the original lines and a parsed patch.
//
// Lines between hunks and after the last hunk are copied from the original.
// Every hunk resets the cursor from its own header. Context lines copy the
// original line under the cursor, not the diff text, so the result does not
// depend on the model quoting context exactly.
func Apply(original []string, patch Patch) []string {
	if len(patch.Hunks) == 0 {
		out := make([]string, len(patch.Fallback))
		copy(out, patch.Fallback)
		return out
	}

	out := make([]string, 0, len(original))
	cursor := 0
	for _, hunk := range patch.Hunks {
		start := hunk.OriginalStart - 1
		if start < 0 {
			start = 0
		}
		if start > len(original) {
			start = len(original)
		}
		if start > cursor {
			out = append(out, original[cursor:start]...)
		}
		cursor = start

		for _, line := range hunk.Lines {
			switch line.Kind {
			case LineAdded:
				out = append(out, line.Text)
			case LineRemoved:
				cursor++
			case LineContext:
				if cursor < len(original) {
					out = append(out, original[cursor])
					cursor++
				}
			case LineBlank:
				// A bare empty line is usually a context line whose leading
				// space was stripped; consume it when the original agrees.
				if cursor < len(original) && strings.TrimSpace(original[cursor]) == "" {
					out = append(out, original[cursor])
					cursor++
				} else {
					out = append(out, "")
				}
			}
		}
	}
	if cursor < len(original) {
		out = append(out, original[cursor:]...)
	}
	return out
}

// ApplyFile applies diffText to the file at path and rewrites it in full.
// The file is left untouched when any step before the write fails.
func ApplyFile(path, diffText string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &PatchError{Kind: FileNotFound, Path: path, Reason: "file does not exist"}
		}
		return &PatchError{Kind: IOFailure, Path: path, Reason: err.Error()}
	}
	if info.IsDir() {
		return &PatchError{Kind: FileNotFound, Path: path, Reason: "path is a directory"}
	}

	patch, err := Parse(diffText)
	if err != nil {
		var patchErr *PatchError
		if errors.As(err, &patchErr) {
			patchErr.Path = path
			return patchErr
		}
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return &PatchError{Kind: IOFailure, Path: path, Reason: err.Error()}
	}
	doc := SplitLines(string(content))
	doc.Lines = Apply(doc.Lines, patch)

	if err := os.WriteFile(path, []byte(JoinLines(doc)), info.Mode().Perm()); err != nil {
		return &PatchError{Kind: IOFailure, Path: path, Reason: err.Error()}
	}
	return nil
}
