package handlers

import (
	"context"

	"keynote-mcp/internal/hook"
)

// ToolDenyHandler refuses tools disabled in configuration, e.g. to run the
// server without close_presentation or export tools
type ToolDenyHandler struct {
	toolNames map[string]bool
}

// NewToolDenyHandler denies every tool in tools
func NewToolDenyHandler(tools ...string) *ToolDenyHandler {
	toolNames := make(map[string]bool, len(tools))
	for _, t := range tools {
		toolNames[t] = true
	}
	return &ToolDenyHandler{toolNames: toolNames}
}

func (h *ToolDenyHandler) Name() string {
	return "tool_deny"
}

func (h *ToolDenyHandler) Points() []hook.HookPoint {
	return []hook.HookPoint{hook.BeforeToolExecution}
}

// Priority runs before confirmation so the user is never asked about a
// tool that is denied anyway
func (h *ToolDenyHandler) Priority() int {
	return 200
}

func (h *ToolDenyHandler) Handle(ctx context.Context, data *hook.HookData) (*hook.Feedback, error) {
	if h.toolNames[data.ToolName] {
		return hook.DenyFeedback("tool " + data.ToolName + " is disabled by configuration"), nil
	}
	return hook.AllowFeedback(), nil
}
