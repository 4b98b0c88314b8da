package agent

// Role identifies who authored a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one entry of the dialogue history. The concrete types below are
// the only implementations.
type Message interface {
	Role() Role
	historyMessage()
}

// SystemMessage carries the system prompt.
type SystemMessage struct {
	Content string
}

// UserMessage carries text typed by the human.
type UserMessage struct {
	Content string
}

// AssistantMessage is one assembled model turn. ToolCall is nil when the
// model answered with text only.
type AssistantMessage struct {
	Reasoning string
	Content   string
	ToolCall  *ToolCall
}

// ToolMessage is the result of a tool call, correlated by ToolCallID.
type ToolMessage struct {
	ToolCallID string
	Content    string
}

func (SystemMessage) Role() Role    { return RoleSystem }
func (UserMessage) Role() Role      { return RoleUser }
func (AssistantMessage) Role() Role { return RoleAssistant }
func (ToolMessage) Role() Role      { return RoleTool }

func (SystemMessage) historyMessage()    {}
func (UserMessage) historyMessage()      {}
func (AssistantMessage) historyMessage() {}
func (ToolMessage) historyMessage()      {}

// Empty reports whether the turn produced nothing usable.
func (m AssistantMessage) Empty() bool {
	return m.Reasoning == "" && m.Content == "" && m.ToolCall == nil
}
