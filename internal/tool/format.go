package tool

import (
	"errors"
	"fmt"

	"keynote-mcp/internal/automation"
	"keynote-mcp/internal/validate"
)

const (
	SuccessMarker = "✅"
	FailureMarker = "❌"
)

// ErrPanic marks a handler that panicked
var ErrPanic = errors.New("tool panicked")

// DeniedError reports a call refused by a before-execution hook
type DeniedError struct {
	Reason string
}

func (e *DeniedError) Error() string {
	if e.Reason == "" {
		return "tool execution was denied"
	}
	return "tool execution was denied: " + e.Reason
}

// Categorized is implemented by collaborator errors that carry their own
// failure category, e.g. file checks or the image service
type Categorized interface {
	error
	Category() string
}

// Category names the failure class of err as shown to callers
func Category(err error) string {
	var (
		pe  *validate.ParameterError
		ce  *automation.ClassifiedError
		te  *automation.TimeoutError
		ae  *automation.AutomationError
		de  *DeniedError
		cat Categorized
	)
	switch {
	case errors.As(err, &pe):
		return "Parameter error"
	case errors.As(err, &ce):
		return "AppleScript error"
	case errors.As(err, &te):
		return "Timeout"
	case errors.As(err, &de):
		return "Denied"
	case errors.As(err, &cat):
		return cat.Category()
	case errors.As(err, &ae):
		return "AppleScript error"
	default:
		return "Internal error"
	}
}

// Failure converts err into a failure Response
func Failure(err error) Response {
	return Response{
		OK:   false,
		Text: fmt.Sprintf("%s %s: %v", FailureMarker, Category(err), err),
	}
}

// Success formats a confirmation
func Success(format string, args ...any) string {
	return SuccessMarker + " " + fmt.Sprintf(format, args...)
}
