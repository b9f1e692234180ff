package syntax

import "fmt"

// UnsupportedTagError reports a node kind with no backend realization. It
// is fatal for the compilation of the affected document.
type UnsupportedTagError struct {
	TagName string
}

// Error implements the error interface.
func (e *UnsupportedTagError) Error() string {
	return fmt.Sprintf("tag '%s' has no backend realization", e.TagName)
}

// NewUnsupportedTagError creates an UnsupportedTagError for the tag name.
func NewUnsupportedTagError(tagName string) *UnsupportedTagError {
	return &UnsupportedTagError{TagName: tagName}
}

// IsUnsupportedTagError checks if an error is an UnsupportedTagError.
func IsUnsupportedTagError(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*UnsupportedTagError)
	return ok
}
