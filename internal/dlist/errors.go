package dlist

import (
	"errors"
	"fmt"
)

// Errors raised (as panic values) on API misuse.
var (
	// ErrCursorInvalidated indicates a cursor was used after its list was
	// modified through another handle or lent to a newer cursor.
	ErrCursorInvalidated = errors.New("dlist: cursor used after list was modified")

	// ErrConcurrentModification indicates a list changed during iteration.
	ErrConcurrentModification = errors.New("dlist: list modified during iteration")

	// ErrSelfSplice indicates an attempt to splice a list into itself.
	ErrSelfSplice = errors.New("dlist: cannot splice a list into itself")
)

// ErrBrokenLink is matched by every *LinkError.
var ErrBrokenLink = errors.New("dlist: broken link")

// LinkError describes the first invariant violation found by Validate.
type LinkError struct {
	// Index is the position of the offending node, counted from the front,
	// or -1 when the problem is with the list header.
	Index int

	// Reason describes the violated invariant.
	Reason string
}

func (e *LinkError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("dlist: broken list: %s", e.Reason)
	}
	return fmt.Sprintf("dlist: broken link at index %d: %s", e.Index, e.Reason)
}

// Unwrap allows errors.Is(err, ErrBrokenLink).
func (e *LinkError) Unwrap() error {
	return ErrBrokenLink
}
