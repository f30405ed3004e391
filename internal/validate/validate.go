// Package validate checks tool arguments before anything reaches Keynote.
//
// Arguments arrive as decoded JSON, so numbers are usually float64. Every
// accessor either returns a normalized value or a *ParameterError.
package validate

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"keynote-mcp/internal/script"
)

// ParameterError reports an argument that failed validation
type ParameterError struct {
	Field  string
	Reason string
}

func (e *ParameterError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func paramErr(field, format string, args ...any) *ParameterError {
	return &ParameterError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Args is one call's arguments
type Args map[string]any

// Has reports whether name is present and not null
func (a Args) Has(name string) bool {
	v, ok := a[name]
	return ok && v != nil
}

// SlideNumber returns a required 1-based slide number. A positive count also
// bounds it from above.
func (a Args) SlideNumber(name string, count int) (int, error) {
	if !a.Has(name) {
		return 0, paramErr(name, "is required")
	}
	n, ok := toInt(a[name])
	if !ok || n < 1 {
		return 0, paramErr(name, "%v (must be a positive integer)", a[name])
	}
	if count > 0 && n > count {
		return 0, paramErr(name, "%d exceeds the slide count %d", n, count)
	}
	return n, nil
}

// Position returns an optional 1-based insertion point where 0 or absent
// means "at the end"
func (a Args) Position(name string) (int, error) {
	if !a.Has(name) {
		return 0, nil
	}
	n, ok := toInt(a[name])
	if !ok || n < 0 {
		return 0, paramErr(name, "%v (must be 0 or a positive integer)", a[name])
	}
	return n, nil
}

// IntRange returns an optional integer within [lo, hi], or def when absent
func (a Args) IntRange(name string, def, lo, hi int) (int, error) {
	if !a.Has(name) {
		return def, nil
	}
	n, ok := toInt(a[name])
	if !ok || n < lo || n > hi {
		return 0, paramErr(name, "%v (must be an integer from %d to %d)", a[name], lo, hi)
	}
	return n, nil
}

// Placement reads the x and y coordinates. Each one present must be a
// non-negative number. The placement is only Set when both are present;
// otherwise both axes are 0.
func (a Args) Placement() (script.Placement, error) {
	x, hasX, err := a.coordinate("x")
	if err != nil {
		return script.Placement{}, err
	}
	y, hasY, err := a.coordinate("y")
	if err != nil {
		return script.Placement{}, err
	}
	if !hasX || !hasY {
		return script.Placement{}, nil
	}
	return script.Placement{X: x, Y: y, Set: true}, nil
}

func (a Args) coordinate(name string) (float64, bool, error) {
	if !a.Has(name) {
		return 0, false, nil
	}
	f, ok := toFloat(a[name])
	if !ok || f < 0 {
		return 0, false, paramErr(name, "%v (must be a number >= 0)", a[name])
	}
	return f, true, nil
}

// RequiredString returns a string that is non-empty after trimming. The
// value itself is returned untrimmed so text content keeps its spacing.
func (a Args) RequiredString(name string) (string, error) {
	if !a.Has(name) {
		return "", paramErr(name, "is required")
	}
	s, ok := a[name].(string)
	if !ok {
		return "", paramErr(name, "must be a string")
	}
	if strings.TrimSpace(s) == "" {
		return "", paramErr(name, "cannot be empty")
	}
	return s, nil
}

// Path returns a required, trimmed file system path
func (a Args) Path(name string) (string, error) {
	s, err := a.RequiredString(name)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// OptionalString returns the string value of name, or def when absent
func (a Args) OptionalString(name, def string) (string, error) {
	if !a.Has(name) {
		return def, nil
	}
	s, ok := a[name].(string)
	if !ok {
		return "", paramErr(name, "must be a string")
	}
	if s == "" {
		return def, nil
	}
	return s, nil
}

// Enum returns an optional string that must be one of allowed
func (a Args) Enum(name, def string, allowed ...string) (string, error) {
	s, err := a.OptionalString(name, def)
	if err != nil || s == def {
		return s, err
	}
	for _, v := range allowed {
		if s == v {
			return s, nil
		}
	}
	return "", paramErr(name, "%q (must be one of %s)", s, strings.Join(allowed, ", "))
}

// StringList returns a required list of strings. An empty list is valid.
func (a Args) StringList(name string) ([]string, error) {
	if !a.Has(name) {
		return nil, paramErr(name, "is required")
	}
	var raw []any
	switch v := a[name].(type) {
	case []any:
		raw = v
	case []string:
		return v, nil
	default:
		return nil, paramErr(name, "must be a list of strings")
	}
	items := make([]string, len(raw))
	for i, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, paramErr(fmt.Sprintf("%s[%d]", name, i), "must be a string")
		}
		items[i] = s
	}
	return items, nil
}

// PositiveNumber returns an optional number greater than zero, or def
func (a Args) PositiveNumber(name string, def float64) (float64, error) {
	if !a.Has(name) {
		return def, nil
	}
	f, ok := toFloat(a[name])
	if !ok || f <= 0 {
		return 0, paramErr(name, "%v (must be a number > 0)", a[name])
	}
	return f, nil
}

// Bool returns an optional boolean, or def when absent
func (a Args) Bool(name string, def bool) (bool, error) {
	if !a.Has(name) {
		return def, nil
	}
	b, ok := a[name].(bool)
	if !ok {
		return false, paramErr(name, "must be a boolean")
	}
	return b, nil
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		var err error
		if f, err = n.Float64(); err != nil {
			return 0, false
		}
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	}
	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
