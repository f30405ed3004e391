// Package cli renders chat sessions for a person at a terminal.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"keynote-mcp/internal/tool"
)

// ANSI Color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
	ColorGray   = "\033[90m"
	ColorBold   = "\033[1m"
)

// Writer writes optionally colored text
type Writer struct {
	writer    io.Writer
	colorMode bool
}

func NewWriter(w io.Writer) *Writer {
	if w == nil {
		w = os.Stdout
	}
	return &Writer{
		writer:    w,
		colorMode: true,
	}
}

func (w *Writer) SetColorMode(enabled bool) {
	w.colorMode = enabled
}

// Write writes content to the output
func (w *Writer) Write(content string) {
	fmt.Fprint(w.writer, content)
}

// WriteLine writes a line to the output
func (w *Writer) WriteLine(content string) {
	fmt.Fprintln(w.writer, content)
}

// WriteColored writes colored content if color mode is enabled
func (w *Writer) WriteColored(content, color string) {
	if w.colorMode {
		fmt.Fprintf(w.writer, "%s%s%s", color, content, ColorReset)
	} else {
		fmt.Fprint(w.writer, content)
	}
}

// Transcript prints each turn, model reply and tool result of a chat run
// as it happens
type Transcript struct {
	w       *Writer
	verbose bool
}

func NewTranscript(w *Writer, verbose bool) *Transcript {
	return &Transcript{w: w, verbose: verbose}
}

func (t *Transcript) OnTurn(turn, total int) {
	if t.verbose {
		t.w.WriteColored(fmt.Sprintf("── turn %d/%d\n", turn, total), ColorGray)
	}
}

func (t *Transcript) OnResponse(content string) {
	t.w.WriteLine("")
	t.w.WriteLine(strings.TrimSpace(content))
}

func (t *Transcript) OnToolResult(r *tool.CallResult) {
	color := ColorGreen
	if !r.Response.OK {
		color = ColorRed
	}
	elapsed := r.EndTime.Sub(r.StartTime).Milliseconds()

	t.w.WriteColored(fmt.Sprintf("→ %s", r.ToolName), ColorCyan+ColorBold)
	if t.verbose && r.Params != "" {
		t.w.WriteColored(" "+r.Params, ColorGray)
	}
	t.w.WriteColored(fmt.Sprintf(" (%dms)\n", elapsed), ColorGray)
	t.w.WriteColored(indent(r.Response.Text)+"\n", color)
}

// Summary prints the final line of a run
func (t *Transcript) Summary(toolCalls int, failed int) {
	msg := fmt.Sprintf("\n%d tool call(s)", toolCalls)
	if failed > 0 {
		msg += fmt.Sprintf(", %d failed", failed)
		t.w.WriteColored(msg+"\n", ColorYellow)
		return
	}
	t.w.WriteColored(msg+"\n", ColorGray)
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(strings.TrimRight(s, "\n"), "\n", "\n  ")
}
