package agent

import (
	"github.com/pkg/errors"
)

// chatRequest is the JSON payload sent to a chat-completions endpoint.
type chatRequest struct {
	Model          string             `json:"model"`
	Messages       []chatMessage      `json:"messages"`
	Stream         bool               `json:"stream"`
	Temperature    float64            `json:"temperature"`
	EnableThinking bool               `json:"enable_thinking"`
	ResponseFormat chatResponseFormat `json:"response_format"`
	Tools          []chatTool         `json:"tools,omitempty"`
}

type chatResponseFormat struct {
	Type string `json:"type"`
}

// chatMessage is one wire message. Content is a pointer so assistant tool
// calls can be sent with an explicit null.
type chatMessage struct {
	Role       string         `json:"role"`
	Content    *string        `json:"content"`
	ToolCalls  []chatToolCall `json:"tool_calls,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
}

// chatTool describes a function tool.
type chatTool struct {
	Type     string                 `json:"type"`
	Function chatFunctionDefinition `json:"function"`
}

// chatFunctionDefinition describes a tool's function signature.
type chatFunctionDefinition struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Strict      bool        `json:"strict,omitempty"`
	Parameters  *ToolSchema `json:"parameters,omitempty"`
}

// chatToolCall represents a tool call in an assistant message.
type chatToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function chatFunctionCall `json:"function"`
}

// chatFunctionCall describes the name and arguments of a tool call.
type chatFunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// buildChatMessages converts the dialogue history into wire messages.
func buildChatMessages(history []Message) ([]chatMessage, error) {
	messages := make([]chatMessage, 0, len(history))
	for _, item := range history {
		msg, err := toChatMessage(item)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// toChatMessage converts a history message into a wire message.
func toChatMessage(item Message) (chatMessage, error) {
	switch msg := item.(type) {
	case SystemMessage:
		return chatMessage{Role: string(RoleSystem), Content: textPointer(msg.Content)}, nil
	case UserMessage:
		return chatMessage{Role: string(RoleUser), Content: textPointer(msg.Content)}, nil
	case AssistantMessage:
		out := chatMessage{Role: string(RoleAssistant)}
		if msg.Content != "" || msg.ToolCall == nil {
			out.Content = textPointer(msg.Content)
		}
		if msg.ToolCall != nil {
			if msg.ToolCall.ID == "" {
				return chatMessage{}, errors.New("tool call id is required")
			}
			out.ToolCalls = []chatToolCall{{
				ID:   msg.ToolCall.ID,
				Type: "function",
				Function: chatFunctionCall{
					Name:      msg.ToolCall.Name,
					Arguments: msg.ToolCall.Arguments,
				},
			}}
		}
		return out, nil
	case ToolMessage:
		return chatMessage{Role: string(RoleTool), Content: textPointer(msg.Content), ToolCallID: msg.ToolCallID}, nil
	default:
		return chatMessage{}, errors.Errorf("unsupported message type %T", item)
	}
}

// buildChatTools converts tool definitions into wire tool payloads.
func buildChatTools(defs []ToolDefinition) []chatTool {
	tools := make([]chatTool, 0, len(defs))
	for _, def := range defs {
		params := def.Parameters
		if params == nil {
			defaultSchema := ToolSchema{Type: "object"}
			params = &defaultSchema
		}
		tools = append(tools, chatTool{
			Type: "function",
			Function: chatFunctionDefinition{
				Name:        def.Name,
				Description: def.Description,
				Strict:      def.Strict,
				Parameters:  params,
			},
		})
	}
	return tools
}

func textPointer(text string) *string {
	return &text
}
