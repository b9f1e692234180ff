package lexer

import "fmt"

// ParseError reports malformed template text: mismatched tag nesting,
// malformed attribute quoting, or malformed loop attributes. It is fatal
// for the compilation of the affected document.
type ParseError struct {
	Message  string
	Fragment string
}

// Error implements the error interface, pointing at the offending fragment.
func (e *ParseError) Error() string {
	if e.Fragment == "" {
		return fmt.Sprintf("parse error: %s", e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Message, e.Fragment)
}

// NewParseError creates a ParseError for the given source fragment.
func NewParseError(message, fragment string) *ParseError {
	return &ParseError{Message: message, Fragment: fragment}
}

// IsParseError checks if an error is a ParseError.
func IsParseError(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*ParseError)
	return ok
}
