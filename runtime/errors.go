package runtime

import "fmt"

// ErrorKind represents different types of render-time errors.
type ErrorKind string

const (
	ErrorKindRender    ErrorKind = "render_error"
	ErrorKindCondition ErrorKind = "condition_error"
	ErrorKindFilter    ErrorKind = "filter_error"
	ErrorKindInclude   ErrorKind = "include_error"
)

// Error represents a render-time error with the offending fragment. Note
// that variable resolution failures never produce one: those are always
// recovered locally through the default or the none sentinel.
type Error struct {
	Kind     ErrorKind
	Message  string
	Fragment string
	Cause    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Fragment != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Message, e.Fragment)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new render-time error.
func NewError(kind ErrorKind, message, fragment string) *Error {
	return &Error{Kind: kind, Message: message, Fragment: fragment}
}

// NewErrorWithCause creates a new render-time error with an underlying
// cause.
func NewErrorWithCause(kind ErrorKind, message, fragment string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Fragment: fragment, Cause: cause}
}
