package agent

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrEmptyResponse means the model produced nothing usable. Callers may retry.
	ErrEmptyResponse = errors.New("model returned an empty response")
	// ErrTransport marks network and server failures.
	ErrTransport = errors.New("model transport failure")
)

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Payload    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("model endpoint returned %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), strings.TrimSpace(e.Payload))
}

// Is classifies client errors as empty responses and everything else as transport failures.
func (e *StatusError) Is(target error) bool {
	if e.StatusCode >= 400 && e.StatusCode < 500 {
		return target == ErrEmptyResponse
	}
	return target == ErrTransport
}

// TransportError wraps a network failure or timeout.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return "model transport: " + e.Cause.Error()
}

func (e *TransportError) Unwrap() error { return e.Cause }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// ToolArgumentError reports malformed arguments on a model tool call.
type ToolArgumentError struct {
	Tool   string
	Reason string
}

func (e *ToolArgumentError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %s", e.Tool, e.Reason)
}
