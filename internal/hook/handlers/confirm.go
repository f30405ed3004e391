package handlers

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"keynote-mcp/internal/hook"
)

// ToolConfirmHandler asks the person at the terminal before a tool runs.
// It is meant for the chat session only; the stdio server has no terminal.
//
// Answering "a" allows the tool for the rest of the session.
type ToolConfirmHandler struct {
	mu        sync.Mutex
	scanner   *bufio.Scanner
	writer    io.Writer
	toolNames map[string]bool // only confirm these tools (empty = all)
	always    map[string]bool
}

// NewToolConfirmHandler prompts on stdin and stdout
func NewToolConfirmHandler(tools ...string) *ToolConfirmHandler {
	return NewToolConfirmHandlerWithIO(os.Stdin, os.Stdout, tools...)
}

func NewToolConfirmHandlerWithIO(reader io.Reader, writer io.Writer, tools ...string) *ToolConfirmHandler {
	toolNames := make(map[string]bool, len(tools))
	for _, t := range tools {
		toolNames[t] = true
	}
	return &ToolConfirmHandler{
		scanner:   bufio.NewScanner(reader),
		writer:    writer,
		toolNames: toolNames,
		always:    make(map[string]bool),
	}
}

func (h *ToolConfirmHandler) Name() string {
	return "tool_confirm"
}

func (h *ToolConfirmHandler) Points() []hook.HookPoint {
	return []hook.HookPoint{hook.BeforeToolExecution}
}

func (h *ToolConfirmHandler) Priority() int {
	return 100
}

func (h *ToolConfirmHandler) Handle(ctx context.Context, data *hook.HookData) (*hook.Feedback, error) {
	if len(h.toolNames) > 0 && !h.toolNames[data.ToolName] {
		return hook.AllowFeedback(), nil
	}

	// One prompt at a time; answers are read from a shared scanner
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.always[data.ToolName] {
		return hook.AllowFeedback(), nil
	}

	fmt.Fprintf(h.writer, "\n\033[33m⚠️  %s wants to change your presentation\033[0m\n", data.ToolName)
	if data.Params != "" && data.Params != "{}" {
		fmt.Fprintf(h.writer, "    %s\n", data.Params)
	}
	fmt.Fprintf(h.writer, "Allow? [y]es / [a]lways / [N]o: ")

	if !h.scanner.Scan() {
		return hook.DenyFeedback("No input received"), nil
	}

	switch strings.TrimSpace(strings.ToLower(h.scanner.Text())) {
	case "y", "yes":
		fmt.Fprintf(h.writer, "\033[32m✓ Allowed\033[0m\n\n")
		return hook.AllowFeedback(), nil
	case "a", "always":
		h.always[data.ToolName] = true
		fmt.Fprintf(h.writer, "\033[32m✓ Allowed for this session\033[0m\n\n")
		return hook.AllowFeedback(), nil
	default:
		fmt.Fprintf(h.writer, "\033[31m✗ Denied\033[0m\n\n")
		return hook.DenyFeedback("User denied tool execution"), nil
	}
}
