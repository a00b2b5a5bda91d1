package dlist

import "fmt"

// Validate checks the structural invariants of the list: front and back
// agree on emptiness, the chain from front ends at back after exactly Len
// nodes, every link has a matching link in the opposite direction, and
// the walk from back mirrors the walk from front.
//
// A non-nil result is always a *LinkError and indicates a bug in this
// package, not in the caller.
func (l *List[T]) Validate() error {
	if l == nil {
		return nil
	}
	if (l.front == nil) != (l.back == nil) {
		return &LinkError{Index: -1, Reason: "front and back disagree on emptiness"}
	}
	if l.front == nil {
		if l.len != 0 {
			return &LinkError{Index: -1, Reason: fmt.Sprintf("no nodes but len is %d", l.len)}
		}
		return nil
	}
	if l.front.front != nil {
		return &LinkError{Index: 0, Reason: "front node links further toward the front"}
	}
	if l.back.back != nil {
		return &LinkError{Index: l.len - 1, Reason: "back node links further toward the back"}
	}

	// Forward walk; bounded by len so a cycle cannot spin forever.
	count := 0
	var prev *node[T]
	for n := l.front; n != nil; n = n.back {
		if n.front != prev {
			return &LinkError{Index: count, Reason: "front link does not point at the previous node"}
		}
		count++
		if count > l.len {
			return &LinkError{Index: -1, Reason: fmt.Sprintf("more than len=%d nodes reachable from front", l.len)}
		}
		prev = n
	}
	if prev != l.back {
		return &LinkError{Index: -1, Reason: "walk from front does not end at back"}
	}
	if count != l.len {
		return &LinkError{Index: -1, Reason: fmt.Sprintf("len is %d but %d nodes are reachable", l.len, count)}
	}

	// Backward walk.
	count = 0
	var next *node[T]
	for n := l.back; n != nil; n = n.front {
		if n.back != next {
			return &LinkError{Index: l.len - 1 - count, Reason: "back link does not point at the next node"}
		}
		count++
		if count > l.len {
			return &LinkError{Index: -1, Reason: fmt.Sprintf("more than len=%d nodes reachable from back", l.len)}
		}
		next = n
	}
	if next != l.front {
		return &LinkError{Index: -1, Reason: "walk from back does not end at front"}
	}

	return nil
}
