package script

import (
	"fmt"
	"strings"
)

// builder accumulates an indented script
type builder struct {
	sb    strings.Builder
	depth int
}

func (b *builder) line(format string, args ...any) {
	b.raw(fmt.Sprintf(format, args...))
}

// raw writes s verbatim at the current depth
func (b *builder) raw(s string) {
	b.sb.WriteString(strings.Repeat("\t", b.depth))
	b.sb.WriteString(s)
	b.sb.WriteByte('\n')
}

// open writes a block header and indents what follows
func (b *builder) open(format string, args ...any) {
	b.line(format, args...)
	b.depth++
}

// close dedents and writes the block terminator
func (b *builder) close(end string) {
	if b.depth > 0 {
		b.depth--
	}
	b.raw(end)
}

// mid writes a line at the enclosing level, such as "else" or "on error"
func (b *builder) mid(line string) {
	b.close(line)
	b.depth++
}

func (b *builder) String() string {
	return b.sb.String()
}

// keynote opens a tell block for Keynote, binding targetDoc when doc is
// non-nil. An empty document name targets the front document.
func keynote(b *builder, activate bool, doc *string) {
	b.open(`tell application "Keynote"`)
	if activate {
		b.line("activate")
	}
	if doc != nil {
		b.line("set targetDoc to %s", DocumentRef(*doc))
	}
}

// DocumentRef returns the object specifier for a document name
func DocumentRef(name string) string {
	if name == "" {
		return "front document"
	}
	return "document " + Quote(name)
}

// joined emits statements that return list as one Sep-delimited string
func joined(b *builder, list string) {
	b.line("set AppleScript's text item delimiters to %s", Quote(Sep))
	b.line("set joined to %s as string", list)
	b.line(`set AppleScript's text item delimiters to ""`)
	b.line("return joined")
}

func doc(name string) *string { return &name }
