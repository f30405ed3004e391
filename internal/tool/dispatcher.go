package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"keynote-mcp/internal/hook"
	"keynote-mcp/internal/llm"
	"keynote-mcp/internal/logger"
	"keynote-mcp/internal/validate"
)

// EmptyOutputPlaceholder is returned when a tool succeeds without output.
// Chat APIs reject empty tool messages.
const EmptyOutputPlaceholder = "(Tool executed successfully with no output)"

// Dispatcher routes calls to registered tools. It holds no per-call state,
// so concurrent calls are independent.
type Dispatcher struct {
	registry    *Registry
	hookManager *hook.Manager
	logger      *logger.Logger
}

func NewDispatcher(registry *Registry, log *logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	return &Dispatcher{
		registry: registry,
		logger:   log,
	}
}

// SetHookManager sets the hook manager for tool execution hooks
func (d *Dispatcher) SetHookManager(manager *hook.Manager) {
	d.hookManager = manager
}

// Registry returns the underlying registry
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// ListTools returns descriptors in registration order
func (d *Dispatcher) ListTools() []Descriptor {
	return d.registry.List()
}

// CallTool runs one tool and always returns exactly one Response.
// Nothing a handler does, panics included, escapes this call.
func (d *Dispatcher) CallTool(ctx context.Context, name string, args map[string]any) (resp Response) {
	callID := uuid.NewString()
	log := d.logger.With("call_id", callID)
	start := time.Now()

	paramsJSON := "{}"
	if len(args) > 0 {
		if b, err := json.Marshal(args); err == nil {
			paramsJSON = string(b)
		}
	}
	log.ToolCall(name, paramsJSON)

	defer func() {
		if r := recover(); r != nil {
			log.Error("tool %s panicked: %v\n%s", name, r, debug.Stack())
			resp = Failure(fmt.Errorf("%w: %v", ErrPanic, r))
		}
		log.ToolResult(name, resp.OK, resp.Text, time.Since(start))
	}()

	e, ok := d.registry.get(name)
	if !ok {
		return Response{OK: false, Text: "unknown tool: " + name}
	}

	vargs := validate.Args(args)
	if vargs == nil {
		vargs = validate.Args{}
	}

	if err := e.schema.Validate(vargs); err != nil {
		return Failure(err)
	}

	feedback, err := d.hookManager.Trigger(ctx, hook.Before(name, callID, paramsJSON))
	if err != nil {
		return Failure(fmt.Errorf("hook error: %w", err))
	}
	if !feedback.Allow {
		return Failure(&DeniedError{Reason: feedback.Message})
	}

	text, err := e.def.Handler(ctx, vargs)
	if err != nil {
		resp = Failure(err)
	} else {
		if text == "" {
			text = EmptyOutputPlaceholder
		}
		resp = Response{OK: true, Text: text}
	}

	// After hooks observe only; their feedback is ignored
	if d.hookManager.HasHandlers(hook.AfterToolExecution) {
		_, _ = d.hookManager.Trigger(ctx, hook.After(name, callID, paramsJSON, resp.OK, resp.Text, time.Since(start)))
	}

	return resp
}

// Execute runs tool calls requested by the chat model one at a time, in
// order. Keynote is a single shared document model, so calls are never
// run in parallel.
func (d *Dispatcher) Execute(ctx context.Context, toolCalls []*llm.ToolCall) []*CallResult {
	results := make([]*CallResult, len(toolCalls))

	for i, tc := range toolCalls {
		startTime := time.Now()
		name := ""
		params := ""
		if tc.Function != nil {
			name = tc.Function.Name
			params = tc.Function.Arguments
		}

		var resp Response
		var args map[string]any
		if err := decodeArguments(params, &args); err != nil {
			resp = Failure(err)
		} else {
			resp = d.CallTool(ctx, name, args)
		}

		results[i] = &CallResult{
			ToolName:  name,
			CallID:    tc.ID,
			Params:    params,
			Response:  resp,
			StartTime: startTime,
			EndTime:   time.Now(),
		}
	}

	return results
}

func decodeArguments(params string, args *map[string]any) error {
	if params == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(params), args); err != nil {
		return &validate.ParameterError{Reason: fmt.Sprintf("arguments are not a JSON object: %v", err)}
	}
	return nil
}
