// Package hook lets policy code observe or veto tool calls without the
// tools knowing about it.
package hook

import (
	"context"
	"time"
)

// HookPoint defines when a hook is triggered
type HookPoint string

const (
	// BeforeToolExecution runs after argument validation and before the
	// handler; a deny stops the call before any script is built
	BeforeToolExecution HookPoint = "before_tool_execution"
	// AfterToolExecution runs with the final response and cannot change it
	AfterToolExecution HookPoint = "after_tool_execution"
)

// HookData describes one tool call. Outcome fields are only set for
// AfterToolExecution.
type HookData struct {
	Point     HookPoint
	Timestamp time.Time
	ToolName  string
	CallID    string
	Params    string // arguments as compact JSON

	OK       bool
	Text     string
	Duration time.Duration
}

// Before describes a call about to run
func Before(toolName, callID, params string) *HookData {
	return &HookData{
		Point:     BeforeToolExecution,
		Timestamp: time.Now(),
		ToolName:  toolName,
		CallID:    callID,
		Params:    params,
	}
}

// After describes a finished call
func After(toolName, callID, params string, ok bool, text string, duration time.Duration) *HookData {
	d := Before(toolName, callID, params)
	d.Point = AfterToolExecution
	d.OK = ok
	d.Text = text
	d.Duration = duration
	return d
}

// Feedback is returned by handlers to control execution flow
type Feedback struct {
	Allow   bool   // Whether to allow the operation to continue
	Message string // Reason shown to the caller on deny
}

// AllowFeedback creates an allow feedback
func AllowFeedback() *Feedback {
	return &Feedback{Allow: true}
}

// DenyFeedback creates a deny feedback with message
func DenyFeedback(message string) *Feedback {
	return &Feedback{Allow: false, Message: message}
}

// Handler is the interface for hook handlers
type Handler interface {
	Name() string

	// Points returns which hook points this handler listens to
	Points() []HookPoint

	Handle(ctx context.Context, data *HookData) (*Feedback, error)

	// Priority orders handlers on a point, higher first
	Priority() int
}
