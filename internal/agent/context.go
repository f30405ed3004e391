package agent

import (
	"time"

	"keynote-mcp/internal/logger"
	"keynote-mcp/internal/tool"
)

// Observer receives the progress of a run as it happens, typically to show
// it to a person at a terminal
type Observer interface {
	OnTurn(turn, total int)
	OnResponse(content string)
	OnToolResult(result *tool.CallResult)
}

type nopObserver struct{}

func (nopObserver) OnTurn(int, int)               {}
func (nopObserver) OnResponse(string)             {}
func (nopObserver) OnToolResult(*tool.CallResult) {}

// ExecutionContext tracks the execution state of an agent run
type ExecutionContext struct {
	Logger        *logger.Logger
	Observer      Observer
	StartTime     time.Time
	CurrentTurn   int
	TotalTurns    int
	ToolCallCount int
}

// NewExecutionContext creates a new execution context. Nil arguments are
// replaced with no-op implementations.
func NewExecutionContext(log *logger.Logger, obs Observer) *ExecutionContext {
	if log == nil {
		log = logger.Nop()
	}
	if obs == nil {
		obs = nopObserver{}
	}
	return &ExecutionContext{
		Logger:    log,
		Observer:  obs,
		StartTime: time.Now(),
	}
}

// LogToolResult records a finished tool call. The dispatcher already logs
// the call itself.
func (ctx *ExecutionContext) LogToolResult(result *tool.CallResult) {
	ctx.ToolCallCount++
	ctx.Observer.OnToolResult(result)
}

// LogResponse reports text the model produced
func (ctx *ExecutionContext) LogResponse(content string) {
	ctx.Logger.Debug("agent response: %s", content)
	ctx.Observer.OnResponse(content)
}

// LogProgress reports the current turn
func (ctx *ExecutionContext) LogProgress() {
	ctx.Logger.Debug("turn %d/%d", ctx.CurrentTurn, ctx.TotalTurns)
	ctx.Observer.OnTurn(ctx.CurrentTurn, ctx.TotalTurns)
}

// Finish logs the session summary
func (ctx *ExecutionContext) Finish() {
	ctx.Logger.Info("session finished in %s after %d turn(s) and %d tool call(s)",
		time.Since(ctx.StartTime).Round(time.Millisecond), ctx.CurrentTurn, ctx.ToolCallCount)
}
