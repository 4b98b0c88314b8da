package diff

import "fmt"

// ErrorKind classifies why a patch could not be applied.
type ErrorKind string

const (
	FileNotFound    ErrorKind = "file_not_found"
	UnparseableDiff ErrorKind = "unparseable_diff"
	MalformedHunk   ErrorKind = "malformed_hunk"
	IOFailure       ErrorKind = "io_failure"
)

// PatchError is the typed failure returned by ApplyFile.
type PatchError struct {
	Kind   ErrorKind
	Path   string
	Reason string
}

func (e *PatchError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Path, e.Reason)
}

// Is matches another PatchError of the same kind so callers can test with errors.Is.
func (e *PatchError) Is(target error) bool {
	other, ok := target.(*PatchError)
	if !ok {
		return false
	}
	return other.Kind == e.Kind && (other.Path == "" || other.Path == e.Path)
}

// Sentinels for errors.Is checks against a kind regardless of path.
var (
	ErrFileNotFound    = &PatchError{Kind: FileNotFound}
	ErrUnparseableDiff = &PatchError{Kind: UnparseableDiff}
	ErrMalformedHunk   = &PatchError{Kind: MalformedHunk}
)
