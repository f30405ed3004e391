// Package script renders self-contained AppleScript programs for Keynote.
//
// Every piece of caller-supplied text reaches a script through Quote, and
// every number through Number or Point. Builders are pure: they never touch
// the filesystem or the network.
package script

import (
	"strconv"
	"strings"
)

// Sep separates fields in multi-value script results
const Sep = "|||"

var quoter = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// Quote renders s as an AppleScript string literal, quotes included.
// A strings.Replacer applies all substitutions in a single pass, so an
// escaped backslash is never re-escaped.
func Quote(s string) string {
	return `"` + quoter.Replace(s) + `"`
}

// Number renders f as an AppleScript real. Whole numbers keep a fractional
// part so 100 renders as 100.0.
func Number(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// Point renders a brace-delimited coordinate pair such as {100.0, 200.0}
func Point(x, y float64) string {
	return "{" + Number(x) + ", " + Number(y) + "}"
}

// PlacementPolicy says what an operation does with an unset placement
type PlacementPolicy int

const (
	// PlacementOmit leaves positioning to Keynote when no coordinates were given
	PlacementOmit PlacementPolicy = iota
	// PlacementAlways emits the (possibly defaulted) position every time
	PlacementAlways
)

// Placement is a normalized coordinate pair. Set is true only when both
// axes were supplied; otherwise X and Y are both 0.
type Placement struct {
	X, Y float64
	Set  bool
}

// Position returns the positional literal for p under policy, or false when
// no positional clause should be emitted.
func (p Placement) Position(policy PlacementPolicy) (string, bool) {
	if !p.Set && policy == PlacementOmit {
		return "", false
	}
	return Point(p.X, p.Y), true
}

// Bullets flattens items into one text, one "• item" per line
func Bullets(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "• " + item
	}
	return strings.Join(lines, "\n")
}

// Numbered flattens items into one text, one "N. item" per line
func Numbered(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = strconv.Itoa(i+1) + ". " + item
	}
	return strings.Join(lines, "\n")
}
