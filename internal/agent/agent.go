// Package agent drives Keynote tools from a chat model. The model asks
// for tool calls, the dispatcher runs them, and the results go back to
// the model until it answers in plain text.
package agent

import (
	"context"

	"keynote-mcp/internal/llm"
	"keynote-mcp/internal/logger"
	"keynote-mcp/internal/tool"
)

type Agent interface {
	Name() string
	Run(ctx context.Context, input *Input) (*Output, error)
}

type Input struct {
	Messages    []llm.Message
	Task        string
	MaxTurns    int
	Temperature float32
	Logger      *logger.Logger
	Observer    Observer
}

type Output struct {
	Messages  []llm.Message
	Result    string
	ToolCalls []*tool.CallResult
}

type Config struct {
	Model       string
	Temperature float32
	MaxTokens   int
	MaxTurns    int
}

// SystemPrompt primes the model for slide work
const SystemPrompt = `You build and edit Apple Keynote presentations with the tools provided.
Slide numbers start at 1. Omit doc_name to work on the front presentation.
Coordinates are points measured from the top-left corner of the slide; call get_slide_size before placing things precisely.
Call get_available_layouts before choosing a layout by name.
When a tool fails, read the error category and fix the arguments instead of repeating the same call.
Reply with a short summary once the presentation matches the request.`
