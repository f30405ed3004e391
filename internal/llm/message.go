// Package llm is the provider-neutral chat model interface used by the
// chat command.
package llm

import "time"

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

type Message struct {
	Role       Role
	Reason     string // reasoning text, for providers that return it
	Content    string
	ToolCalls  []*ToolCall
	ToolCallID string
	Name       string
	Timestamp  time.Time
}

// SystemMessage returns a system prompt message
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage returns a user turn stamped with the current time
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content, Timestamp: time.Now()}
}

// ToolMessage answers the tool call callID with the tool's response text
func ToolMessage(callID, toolName, content string, at time.Time) Message {
	return Message{
		Role:       RoleTool,
		ToolCallID: callID,
		Name:       toolName,
		Content:    content,
		Timestamp:  at,
	}
}

type ToolCall struct {
	ID       string
	Type     string
	Function *FunctionCall
}

// FunctionCall carries the tool name and its arguments as a JSON string,
// exactly as the model produced them
type FunctionCall struct {
	Name      string
	Arguments string
}

type StopReason string

const (
	StopReasonStop      StopReason = "stop"
	StopReasonLength    StopReason = "length"
	StopReasonToolCalls StopReason = "tool_calls"
)

type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}
