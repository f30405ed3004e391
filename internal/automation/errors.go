package automation

import (
	"fmt"
	"time"
)

// Kind is the stable category of an interpreter failure
type Kind string

const (
	KindApplication   Kind = "ApplicationError"
	KindNotFound      Kind = "NotFoundError"
	KindPermission    Kind = "PermissionError"
	KindFileOperation Kind = "FileOperationError"
	KindSyntax        Kind = "SyntaxError"
	KindUnknown       Kind = "UnknownError"
)

// Label returns the human-readable prefix used in classified messages
func (k Kind) Label() string {
	switch k {
	case KindApplication:
		return "Keynote error"
	case KindNotFound:
		return "Object not found"
	case KindPermission:
		return "Permission denied"
	case KindFileOperation:
		return "File operation error"
	case KindSyntax:
		return "AppleScript syntax error"
	default:
		return "Unknown AppleScript error"
	}
}

// ClassifiedError is an interpreter failure mapped onto a Kind
type ClassifiedError struct {
	Kind    Kind
	Message string
}

func (e *ClassifiedError) Error() string {
	return e.Message
}

// AutomationError reports that the interpreter could not be run at all
type AutomationError struct {
	Op  string
	Err error
}

func (e *AutomationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AutomationError) Unwrap() error {
	return e.Err
}

// TimeoutError reports a script that did not finish in time.
// PID identifies the process that was killed and reaped.
type TimeoutError struct {
	Timeout time.Duration
	PID     int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("AppleScript execution timed out after %s", e.Timeout)
}
