package dlist

import (
	"fmt"
	"iter"
	"strings"
)

// node is a single element of a list. front points toward the head of
// the list and back toward the tail. Only List and Cursor follow them.
type node[T any] struct {
	elem  T
	front *node[T]
	back  *node[T]
}

// List is a doubly linked list. The zero value is an empty list ready
// to use.
type List[T any] struct {
	front *node[T]
	back  *node[T]
	len   int

	// gen is bumped on every mutation and on every CursorMut call.
	gen uint64
}

// New creates an empty list.
func New[T any]() *List[T] {
	return &List[T]{}
}

// From builds a list holding items in order.
func From[T any](items ...T) *List[T] {
	l := New[T]()
	for _, v := range items {
		l.PushBack(v)
	}
	return l
}

// FromSeq builds a list from the values of seq, in order.
func FromSeq[T any](seq iter.Seq[T]) *List[T] {
	l := New[T]()
	for v := range seq {
		l.PushBack(v)
	}
	return l
}

// Len returns the number of elements in the list. Read methods treat a
// nil *List as empty.
func (l *List[T]) Len() int {
	if l == nil {
		return 0
	}
	return l.len
}

// IsEmpty reports whether the list has no elements.
func (l *List[T]) IsEmpty() bool {
	return l.Len() == 0
}

// PushFront adds v at the front of the list.
func (l *List[T]) PushFront(v T) {
	n := &node[T]{elem: v, back: l.front}
	if l.front != nil {
		l.front.front = n
	} else {
		l.back = n
	}
	l.front = n
	l.len++
	l.gen++
}

// PushBack adds v at the back of the list.
func (l *List[T]) PushBack(v T) {
	n := &node[T]{elem: v, front: l.back}
	if l.back != nil {
		l.back.back = n
	} else {
		l.front = n
	}
	l.back = n
	l.len++
	l.gen++
}

// PopFront removes and returns the front element.
// Returns false if the list is empty.
func (l *List[T]) PopFront() (T, bool) {
	n := l.front
	if n == nil {
		var zero T
		return zero, false
	}

	l.front = n.back
	if l.front != nil {
		l.front.front = nil
	} else {
		l.back = nil
	}
	n.back = nil
	l.len--
	l.gen++

	return n.elem, true
}

// PopBack removes and returns the back element.
// Returns false if the list is empty.
func (l *List[T]) PopBack() (T, bool) {
	n := l.back
	if n == nil {
		var zero T
		return zero, false
	}

	l.back = n.front
	if l.back != nil {
		l.back.back = nil
	} else {
		l.front = nil
	}
	n.front = nil
	l.len--
	l.gen++

	return n.elem, true
}

// Front returns the front element without removing it.
func (l *List[T]) Front() (T, bool) {
	if l == nil || l.front == nil {
		var zero T
		return zero, false
	}
	return l.front.elem, true
}

// Back returns the back element without removing it.
func (l *List[T]) Back() (T, bool) {
	if l == nil || l.back == nil {
		var zero T
		return zero, false
	}
	return l.back.elem, true
}

// FrontPtr returns a pointer to the front element, or nil if empty.
// The pointer stays valid until the element is removed.
func (l *List[T]) FrontPtr() *T {
	if l == nil || l.front == nil {
		return nil
	}
	return &l.front.elem
}

// BackPtr returns a pointer to the back element, or nil if empty.
func (l *List[T]) BackPtr() *T {
	if l == nil || l.back == nil {
		return nil
	}
	return &l.back.elem
}

// Clear removes every element. Each node is visited once and unlinked,
// so released nodes never keep live ones reachable.
func (l *List[T]) Clear() {
	var zero T
	for n := l.front; n != nil; {
		next := n.back
		n.front, n.back = nil, nil
		n.elem = zero
		n = next
	}
	l.front, l.back, l.len = nil, nil, 0
	l.gen++
}

// CursorMut returns a cursor at the ghost position. The cursor has
// exclusive use of the list: any previously issued cursor becomes invalid,
// as does this one once the list is modified through another handle.
func (l *List[T]) CursorMut() *Cursor[T] {
	l.gen++
	return &Cursor[T]{list: l, gen: l.gen}
}

// Append moves every element of other to the back of l, leaving other
// empty. It runs in constant time.
func (l *List[T]) Append(other *List[T]) {
	l.CursorMut().SpliceBefore(other)
}

// Prepend moves every element of other to the front of l, leaving other
// empty. It runs in constant time.
func (l *List[T]) Prepend(other *List[T]) {
	l.CursorMut().SpliceAfter(other)
}

// Values returns the elements front to back in a new slice.
func (l *List[T]) Values() []T {
	out := make([]T, 0, l.Len())
	for v := range l.All() {
		out = append(out, v)
	}
	return out
}

// Clone returns a shallow copy of the list.
func (l *List[T]) Clone() *List[T] {
	return FromSeq(l.All())
}

// String formats the list like a slice, e.g. "[1 2 3]".
func (l *List[T]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	first := true
	for v := range l.All() {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		fmt.Fprint(&b, v)
	}
	b.WriteByte(']')
	return b.String()
}
