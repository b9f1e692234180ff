package template

import (
	"fmt"
	"strings"
)

// DocumentNotFoundError reports a template that no loader location could
// resolve. Unresolved rebase parents and include targets are fatal for the
// compilation of the requesting document.
type DocumentNotFoundError struct {
	Name  string
	Tried []string
	cause error
}

// NewDocumentNotFound creates a DocumentNotFoundError with optional tried
// locations and cause.
func NewDocumentNotFound(name string, tried []string, cause error) *DocumentNotFoundError {
	return &DocumentNotFoundError{
		Name:  name,
		Tried: append([]string(nil), tried...),
		cause: cause,
	}
}

// Error returns the message, listing the locations that were tried.
func (e *DocumentNotFoundError) Error() string {
	if e == nil {
		return "template not found"
	}
	msg := fmt.Sprintf("template %s not found", e.Name)
	if len(e.Tried) > 0 {
		msg = fmt.Sprintf("%s (tried: %s)", msg, strings.Join(e.Tried, ", "))
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *DocumentNotFoundError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// IsDocumentNotFound checks if an error is a DocumentNotFoundError.
func IsDocumentNotFound(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*DocumentNotFoundError)
	return ok
}
