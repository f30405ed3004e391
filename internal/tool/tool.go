package tool

import (
	"context"
	"time"

	"keynote-mcp/internal/validate"
)

// Handler runs one tool call with raw arguments and returns the success text.
// Handlers validate their own fields through args; any error they return is
// formatted into a failure Response by the Dispatcher.
type Handler func(ctx context.Context, args validate.Args) (string, error)

// Descriptor is the public, immutable description of a tool
type Descriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// Definition is a Descriptor plus the handler that implements it
type Definition struct {
	Descriptor
	Handler Handler
}

// Response is the only value a caller ever gets back from a tool call
type Response struct {
	OK   bool
	Text string
}

// CallResult records one call made on behalf of the chat agent
type CallResult struct {
	ToolName  string
	CallID    string
	Params    string
	Response  Response
	StartTime time.Time
	EndTime   time.Time
}
