package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"keynote-mcp/internal/llm"
	"keynote-mcp/internal/tool"
)

// ErrMaxTurns is returned when the model keeps calling tools past the turn limit
var ErrMaxTurns = errors.New("max turns exceeded")

type BaseAgent struct {
	name         string
	systemPrompt string
	llmClient    llm.Client
	dispatcher   *tool.Dispatcher
	config       *Config
}

func NewBaseAgent(name, systemPrompt string, client llm.Client, dispatcher *tool.Dispatcher, cfg *Config) *BaseAgent {
	if cfg == nil {
		cfg = &Config{
			Model:       "gpt-4-turbo",
			Temperature: 0.7,
			MaxTokens:   4096,
			MaxTurns:    20,
		}
	}

	return &BaseAgent{
		name:         name,
		systemPrompt: systemPrompt,
		llmClient:    client,
		dispatcher:   dispatcher,
		config:       cfg,
	}
}

func (a *BaseAgent) Name() string {
	return a.name
}

func (a *BaseAgent) Run(ctx context.Context, input *Input) (*Output, error) {
	execCtx := NewExecutionContext(input.Logger, input.Observer)
	execCtx.Logger.Info("agent %s started with model %s", a.name, a.llmClient.Model())

	messages := make([]llm.Message, 0, len(input.Messages)+2)

	if a.systemPrompt != "" {
		messages = append(messages, llm.SystemMessage(a.systemPrompt))
	}

	messages = append(messages, input.Messages...)

	if input.Task != "" {
		messages = append(messages, llm.UserMessage(input.Task))
	}

	maxTurns := input.MaxTurns
	if maxTurns == 0 {
		maxTurns = a.config.MaxTurns
	}
	temperature := input.Temperature
	if temperature == 0 {
		temperature = a.config.Temperature
	}
	execCtx.TotalTurns = maxTurns

	tools := a.dispatcher.Registry().GetToolDefinitions()
	allToolCalls := make([]*tool.CallResult, 0)

	for turn := 0; turn < maxTurns; turn++ {
		execCtx.CurrentTurn = turn + 1
		execCtx.LogProgress()

		resp, err := a.llmClient.Chat(ctx, &llm.ChatRequest{
			Messages:    messages,
			Tools:       tools,
			Temperature: temperature,
			MaxTokens:   a.config.MaxTokens,
		})
		if err != nil {
			execCtx.Logger.Error("LLM call failed: %v", err)
			return nil, fmt.Errorf("LLM call failed: %w", err)
		}

		messages = append(messages, resp.Message)

		if resp.Message.Content != "" {
			execCtx.LogResponse(resp.Message.Content)
		}

		switch {
		case len(resp.Message.ToolCalls) > 0:
			// Some providers report "stop" alongside tool calls, so the
			// calls decide, not the stop reason.
			execCtx.Logger.Debug("executing %d tool call(s)", len(resp.Message.ToolCalls))

			for _, tr := range a.executeTools(ctx, resp.Message.ToolCalls, execCtx) {
				allToolCalls = append(allToolCalls, tr)
				messages = append(messages, llm.ToolMessage(tr.CallID, tr.ToolName, tr.Response.Text, tr.EndTime))
			}

		case resp.StopReason == llm.StopReasonLength:
			execCtx.Finish()
			return &Output{
				Messages:  messages,
				Result:    resp.Message.Content + "\n[Response truncated due to length limit]",
				ToolCalls: allToolCalls,
			}, nil

		default:
			execCtx.Finish()
			return &Output{
				Messages:  messages,
				Result:    resp.Message.Content,
				ToolCalls: allToolCalls,
			}, nil
		}
	}

	execCtx.Logger.Error("max turns (%d) exceeded", maxTurns)
	return nil, fmt.Errorf("%w (%d)", ErrMaxTurns, maxTurns)
}

// executeTools runs the calls one at a time so the observer sees each
// result as soon as it exists, and stops early if ctx is cancelled
func (a *BaseAgent) executeTools(ctx context.Context, toolCalls []*llm.ToolCall, execCtx *ExecutionContext) []*tool.CallResult {
	results := make([]*tool.CallResult, 0, len(toolCalls))

	for _, tc := range toolCalls {
		if ctx.Err() != nil {
			results = append(results, &tool.CallResult{
				ToolName:  toolName(tc),
				CallID:    tc.ID,
				Response:  tool.Failure(ctx.Err()),
				StartTime: time.Now(),
				EndTime:   time.Now(),
			})
			continue
		}

		tr := a.dispatcher.Execute(ctx, []*llm.ToolCall{tc})[0]
		execCtx.LogToolResult(tr)
		results = append(results, tr)
	}

	return results
}

func toolName(tc *llm.ToolCall) string {
	if tc.Function == nil {
		return ""
	}
	return tc.Function.Name
}
