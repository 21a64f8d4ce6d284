package composition

import (
	"fmt"
	"strings"
)

// InvalidComponentError reports a component list that fails structural
// validation, or a component reference to a prompt that does not exist.
type InvalidComponentError struct {
	Reason string
}

func (e *InvalidComponentError) Error() string {
	return "invalid component: " + e.Reason
}

func invalidf(format string, args ...any) *InvalidComponentError {
	return &InvalidComponentError{Reason: fmt.Sprintf(format, args...)}
}

// CircularReferenceError reports a reference chain that leads back to a
// prompt already on the current traversal path. Path holds the ids in walk
// order, ending with the repeated id.
type CircularReferenceError struct {
	Path []string
}

func (e *CircularReferenceError) Error() string {
	return "circular reference: " + strings.Join(e.Path, " -> ")
}

// MaxDepthExceededError reports a nesting chain longer than the configured
// bound.
type MaxDepthExceededError struct {
	Limit  int
	Actual int
}

func (e *MaxDepthExceededError) Error() string {
	return fmt.Sprintf("max nesting depth exceeded: depth %d > limit %d", e.Actual, e.Limit)
}
