package agent

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// ToolCallArgs holds decoded JSON arguments for a tool call.
type ToolCallArgs map[string]json.RawMessage

// RequiredString returns a required, non-blank string argument verbatim.
func (args ToolCallArgs) RequiredString(key string) (string, error) {
	value, ok, err := args.OptionalString(key)
	if err != nil {
		return "", err
	}
	if !ok || strings.TrimSpace(value) == "" {
		return "", errors.Errorf("%s is required", key)
	}
	return value, nil
}

// OptionalString returns an optional string argument with a presence flag.
// The value is not trimmed: diff and file bodies are whitespace sensitive.
func (args ToolCallArgs) OptionalString(key string) (string, bool, error) {
	raw, ok := args[key]
	if !ok {
		return "", false, nil
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", false, nil
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", false, errors.Errorf("%s must be a string", key)
	}
	return value, true, nil
}

// ReadFileArgs are the arguments of a ReadFile call.
type ReadFileArgs struct {
	FileName string
}

// WriteFileArgs are the arguments of a WriteFile call.
type WriteFileArgs struct {
	FileName    string
	FileContent string
}

// ModifyFileArgs are the arguments of a ModifyFile call.
type ModifyFileArgs struct {
	FileName    string
	DiffContent string
}

// ParseReadFileArgs decodes ReadFile arguments.
func ParseReadFileArgs(call ToolCall) (ReadFileArgs, error) {
	args, err := call.Args()
	if err != nil {
		return ReadFileArgs{}, err
	}
	name, err := args.RequiredString(ArgFileName)
	if err != nil {
		return ReadFileArgs{}, &ToolArgumentError{Tool: call.Name, Reason: err.Error()}
	}
	return ReadFileArgs{FileName: strings.TrimSpace(name)}, nil
}

// ParseWriteFileArgs decodes WriteFile arguments. Empty content is allowed.
func ParseWriteFileArgs(call ToolCall) (WriteFileArgs, error) {
	args, err := call.Args()
	if err != nil {
		return WriteFileArgs{}, err
	}
	name, err := args.RequiredString(ArgFileName)
	if err != nil {
		return WriteFileArgs{}, &ToolArgumentError{Tool: call.Name, Reason: err.Error()}
	}
	content, ok, err := args.OptionalString(ArgFileContent)
	if err != nil {
		return WriteFileArgs{}, &ToolArgumentError{Tool: call.Name, Reason: err.Error()}
	}
	if !ok {
		return WriteFileArgs{}, &ToolArgumentError{Tool: call.Name, Reason: ArgFileContent + " is required"}
	}
	return WriteFileArgs{FileName: strings.TrimSpace(name), FileContent: content}, nil
}

// ParseModifyFileArgs decodes ModifyFile arguments.
func ParseModifyFileArgs(call ToolCall) (ModifyFileArgs, error) {
	args, err := call.Args()
	if err != nil {
		return ModifyFileArgs{}, err
	}
	name, err := args.RequiredString(ArgFileName)
	if err != nil {
		return ModifyFileArgs{}, &ToolArgumentError{Tool: call.Name, Reason: err.Error()}
	}
	diffContent, err := args.RequiredString(ArgDiffContent)
	if err != nil {
		return ModifyFileArgs{}, &ToolArgumentError{Tool: call.Name, Reason: err.Error()}
	}
	return ModifyFileArgs{FileName: strings.TrimSpace(name), DiffContent: diffContent}, nil
}
