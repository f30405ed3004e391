package automation

import (
	"strings"
)

// rule matches raw interpreter stderr. Rules are evaluated in order and the
// first match wins; "got an error" must stay ahead of the permission rule.
type rule struct {
	kind  Kind
	match func(raw, lower string) bool
}

var rules = []rule{
	{KindApplication, func(raw, _ string) bool {
		return strings.Contains(raw, "got an error")
	}},
	{KindNotFound, func(raw, _ string) bool {
		return strings.Contains(raw, "Can't get")
	}},
	{KindPermission, func(raw, lower string) bool {
		return strings.Contains(raw, "not allowed") || strings.Contains(lower, "permission")
	}},
	{KindFileOperation, func(_, lower string) bool {
		return strings.Contains(lower, "file") &&
			(strings.Contains(lower, "not found") || strings.Contains(lower, "doesn't exist"))
	}},
	{KindSyntax, func(_, lower string) bool {
		return strings.Contains(lower, "syntax error")
	}},
}

// Classify maps interpreter stderr to a ClassifiedError.
// Empty (or whitespace-only) input is not an error and reports false.
func Classify(stderr string) (*ClassifiedError, bool) {
	text := strings.TrimSpace(stderr)
	if text == "" {
		return nil, false
	}

	lower := strings.ToLower(text)
	kind := KindUnknown
	for _, r := range rules {
		if r.match(text, lower) {
			kind = r.kind
			break
		}
	}

	return &ClassifiedError{
		Kind:    kind,
		Message: kind.Label() + ": " + text,
	}, true
}
