package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keynote-mcp/internal/llm"
	"keynote-mcp/internal/tool"
	"keynote-mcp/internal/validate"
)

// scriptedLLM replays canned responses and records every request
type scriptedLLM struct {
	responses []*llm.ChatResponse
	requests  []*llm.ChatRequest
	err       error
}

func (s *scriptedLLM) Chat(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.requests = append(s.requests, req)
	resp := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	return resp, nil
}

func (s *scriptedLLM) Provider() string { return "scripted" }
func (s *scriptedLLM) Model() string    { return "scripted-1" }

type recorder struct {
	turns     []int
	responses []string
	results   []*tool.CallResult
}

func (r *recorder) OnTurn(turn, total int)            { r.turns = append(r.turns, turn) }
func (r *recorder) OnResponse(content string)         { r.responses = append(r.responses, content) }
func (r *recorder) OnToolResult(res *tool.CallResult) { r.results = append(r.results, res) }

func slideDispatcher(t *testing.T) *tool.Dispatcher {
	t.Helper()
	r := tool.NewRegistry()
	require.NoError(t, r.Register(tool.Definition{
		Descriptor: tool.Descriptor{
			Name:        "add_slide",
			Description: "Add a slide",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{"layout": map[string]any{"type": "string"}},
			},
		},
		Handler: func(ctx context.Context, args validate.Args) (string, error) {
			layout, err := args.OptionalString("layout", "Blank")
			if err != nil {
				return "", err
			}
			return tool.Success("Added slide 2 with layout %q", layout), nil
		},
	}))
	return tool.NewDispatcher(r, nil)
}

func toolCall(id, name, args string) *llm.ToolCall {
	return &llm.ToolCall{ID: id, Type: "function", Function: &llm.FunctionCall{Name: name, Arguments: args}}
}

func TestRun_ToolLoop(t *testing.T) {
	client := &scriptedLLM{responses: []*llm.ChatResponse{
		{
			Message: llm.Message{
				Role:      llm.RoleAssistant,
				ToolCalls: []*llm.ToolCall{toolCall("c1", "add_slide", `{"layout":"Title Only"}`)},
			},
			StopReason: llm.StopReasonToolCalls,
		},
		{
			Message:    llm.Message{Role: llm.RoleAssistant, Content: "Added the slide."},
			StopReason: llm.StopReasonStop,
		},
	}}
	obs := &recorder{}

	a := NewBaseAgent("keynote", SystemPrompt, client, slideDispatcher(t), nil)
	out, err := a.Run(context.Background(), &Input{Task: "add a title slide", Observer: obs})
	require.NoError(t, err)

	assert.Equal(t, "Added the slide.", out.Result)
	require.Len(t, out.ToolCalls, 1)
	assert.True(t, out.ToolCalls[0].Response.OK)
	assert.Equal(t, `✅ Added slide 2 with layout "Title Only"`, out.ToolCalls[0].Response.Text)

	require.Len(t, client.requests, 2)
	assert.Len(t, client.requests[0].Tools, 1)
	assert.Equal(t, float32(0.7), client.requests[0].Temperature)

	// system, user, assistant(tool call), tool, assistant
	msgs := out.Messages
	require.Len(t, msgs, 5)
	assert.Equal(t, llm.RoleSystem, msgs[0].Role)
	assert.Equal(t, llm.RoleTool, msgs[3].Role)
	assert.Equal(t, "c1", msgs[3].ToolCallID)
	assert.Equal(t, out.ToolCalls[0].Response.Text, msgs[3].Content)

	assert.Equal(t, []int{1, 2}, obs.turns)
	assert.Equal(t, []string{"Added the slide."}, obs.responses)
	assert.Len(t, obs.results, 1)
}

func TestRun_ToolFailuresGoBackToModel(t *testing.T) {
	client := &scriptedLLM{responses: []*llm.ChatResponse{
		{
			Message: llm.Message{ToolCalls: []*llm.ToolCall{
				toolCall("c1", "remove_everything", `{}`),
				toolCall("c2", "add_slide", `not json`),
			}},
			StopReason: llm.StopReasonToolCalls,
		},
		{Message: llm.Message{Content: "Could not do it."}, StopReason: llm.StopReasonStop},
	}}

	a := NewBaseAgent("keynote", "", client, slideDispatcher(t), nil)
	out, err := a.Run(context.Background(), &Input{Task: "x"})
	require.NoError(t, err)

	require.Len(t, out.ToolCalls, 2)
	assert.False(t, out.ToolCalls[0].Response.OK)
	assert.Equal(t, "unknown tool: remove_everything", out.ToolCalls[0].Response.Text)
	assert.False(t, out.ToolCalls[1].Response.OK)
	assert.Contains(t, out.ToolCalls[1].Response.Text, "Parameter error")
}

func TestRun_MaxTurns(t *testing.T) {
	client := &scriptedLLM{responses: []*llm.ChatResponse{{
		Message:    llm.Message{ToolCalls: []*llm.ToolCall{toolCall("c", "add_slide", `{}`)}},
		StopReason: llm.StopReasonToolCalls,
	}}}

	a := NewBaseAgent("keynote", "", client, slideDispatcher(t), nil)
	_, err := a.Run(context.Background(), &Input{Task: "loop", MaxTurns: 3})
	assert.ErrorIs(t, err, ErrMaxTurns)
	assert.Len(t, client.requests, 3)
}

func TestRun_Truncated(t *testing.T) {
	client := &scriptedLLM{responses: []*llm.ChatResponse{{
		Message:    llm.Message{Content: "Half an ans"},
		StopReason: llm.StopReasonLength,
	}}}

	out, err := NewBaseAgent("keynote", "", client, slideDispatcher(t), nil).
		Run(context.Background(), &Input{Task: "x"})
	require.NoError(t, err)
	assert.Contains(t, out.Result, "[Response truncated due to length limit]")
}

func TestRun_LLMError(t *testing.T) {
	client := &scriptedLLM{err: errors.New("rate limited")}

	_, err := NewBaseAgent("keynote", "", client, slideDispatcher(t), nil).
		Run(context.Background(), &Input{Task: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}
