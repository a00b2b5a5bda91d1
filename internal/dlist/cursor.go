package dlist

// Cursor is a position within a List that can move in both directions
// and edit the list in constant time.
//
// A cursor is either at a node or at the ghost position, which lies
// between the back and the front of the list. The index of the current
// node is tracked as the cursor moves; it has no meaning at the ghost.
type Cursor[T any] struct {
	list  *List[T]
	cur   *node[T] // nil at the ghost position
	index int
	gen   uint64
}

// check panics if the cursor no longer has exclusive use of its list.
func (c *Cursor[T]) check() {
	if c.gen != c.list.gen {
		panic(ErrCursorInvalidated)
	}
}

// touch records a structural edit made through the cursor.
func (c *Cursor[T]) touch() {
	c.list.gen++
	c.gen = c.list.gen
}

// Valid reports whether the cursor may still be used. A cursor becomes
// invalid when its list is modified through another handle or when a
// newer cursor is requested for the same list.
func (c *Cursor[T]) Valid() bool {
	return c.gen == c.list.gen
}

// Len returns the length of the underlying list.
func (c *Cursor[T]) Len() int {
	c.check()
	return c.list.len
}

// Index returns the index of the current node.
// Returns false at the ghost position.
func (c *Cursor[T]) Index() (int, bool) {
	c.check()
	if c.cur == nil {
		return 0, false
	}
	return c.index, true
}

// MoveNext moves toward the back of the list. From the ghost it moves to
// the front; from the back node it moves to the ghost.
func (c *Cursor[T]) MoveNext() {
	c.check()
	if c.cur != nil {
		c.cur = c.cur.back
		c.index++
		return
	}
	c.cur = c.list.front
	c.index = 0
}

// MovePrev moves toward the front of the list. From the ghost it moves to
// the back; from the front node it moves to the ghost.
func (c *Cursor[T]) MovePrev() {
	c.check()
	if c.cur != nil {
		c.cur = c.cur.front
		c.index--
		return
	}
	c.cur = c.list.back
	c.index = c.list.len - 1
}

// Current returns a pointer to the element under the cursor, or nil at
// the ghost position.
func (c *Cursor[T]) Current() *T {
	c.check()
	if c.cur == nil {
		return nil
	}
	return &c.cur.elem
}

// PeekNext returns a pointer to the element after the cursor without
// moving. At the ghost this is the front element.
func (c *Cursor[T]) PeekNext() *T {
	c.check()
	n := c.list.front
	if c.cur != nil {
		n = c.cur.back
	}
	if n == nil {
		return nil
	}
	return &n.elem
}

// PeekPrev returns a pointer to the element before the cursor without
// moving. At the ghost this is the back element.
func (c *Cursor[T]) PeekPrev() *T {
	c.check()
	n := c.list.back
	if c.cur != nil {
		n = c.cur.front
	}
	if n == nil {
		return nil
	}
	return &n.elem
}

// InsertBefore inserts v immediately before the cursor. At the ghost the
// element is appended at the back of the list. The cursor stays on the
// same node.
func (c *Cursor[T]) InsertBefore(v T) {
	c.SpliceBefore(single(v))
}

// InsertAfter inserts v immediately after the cursor. At the ghost the
// element becomes the new front of the list.
func (c *Cursor[T]) InsertAfter(v T) {
	c.SpliceAfter(single(v))
}

// RemoveCurrent unlinks the node under the cursor and returns its element.
// The cursor moves to the removed node's successor, or to the ghost if it
// was the back. Returns false at the ghost position.
func (c *Cursor[T]) RemoveCurrent() (T, bool) {
	c.check()
	n := c.cur
	if n == nil {
		var zero T
		return zero, false
	}

	if n.front != nil {
		n.front.back = n.back
	} else {
		c.list.front = n.back
	}
	if n.back != nil {
		n.back.front = n.front
	} else {
		c.list.back = n.front
	}

	c.cur = n.back
	c.list.len--
	n.front, n.back = nil, nil
	c.touch()

	return n.elem, true
}

// SplitBefore detaches everything before the cursor and returns it as a
// new list. The cursor's list keeps the current node and everything after
// it, and the current node becomes index 0.
//
// At the ghost position the whole list is returned and the cursor's list
// is left empty.
func (c *Cursor[T]) SplitBefore() *List[T] {
	c.check()
	if c.cur == nil {
		return c.takeAll()
	}

	out := New[T]()
	if prev := c.cur.front; prev != nil {
		out.front = c.list.front
		out.back = prev
		out.len = c.index

		prev.back = nil
		c.cur.front = nil
		c.list.front = c.cur
		c.list.len -= c.index
	}
	c.index = 0
	c.touch()

	return out
}

// SplitAfter detaches everything after the cursor and returns it as a new
// list. The cursor's list keeps everything up to and including the
// current node; the index is unchanged.
//
// At the ghost position the whole list is returned and the cursor's list
// is left empty.
func (c *Cursor[T]) SplitAfter() *List[T] {
	c.check()
	if c.cur == nil {
		return c.takeAll()
	}

	out := New[T]()
	if next := c.cur.back; next != nil {
		out.front = next
		out.back = c.list.back
		out.len = c.list.len - c.index - 1

		next.front = nil
		c.cur.back = nil
		c.list.back = c.cur
		c.list.len = c.index + 1
	}
	c.touch()

	return out
}

// SpliceBefore moves every node of other in between the cursor and its
// predecessor, leaving other empty. At the ghost the nodes are appended at
// the back, because the ghost's predecessor is the back node. To put the
// nodes at the front, use SpliceAfter at the ghost or SpliceBefore on the
// front node. The cursor stays on the same node and its index grows by the
// number of nodes spliced in.
//
// An empty other is a no-op. If the cursor's list is empty it adopts the
// nodes of other and the cursor stays at the ghost.
func (c *Cursor[T]) SpliceBefore(other *List[T]) {
	c.check()
	if other == c.list {
		panic(ErrSelfSplice)
	}
	if other.IsEmpty() {
		return
	}

	first, last, n := other.detach()
	switch {
	case c.list.len == 0:
		c.list.front = first
		c.list.back = last
	case c.cur == nil:
		c.list.back.back = first
		first.front = c.list.back
		c.list.back = last
	default:
		if prev := c.cur.front; prev != nil {
			prev.back = first
			first.front = prev
		} else {
			c.list.front = first
		}
		c.cur.front = last
		last.back = c.cur
		c.index += n
	}
	c.list.len += n
	c.touch()
}

// SpliceAfter moves every node of other in between the cursor and its
// successor, leaving other empty. At the ghost the nodes are prepended at
// the front, because the ghost's successor is the front node. The cursor
// and its index are unchanged.
//
// An empty other is a no-op. If the cursor's list is empty it adopts the
// nodes of other and the cursor stays at the ghost.
func (c *Cursor[T]) SpliceAfter(other *List[T]) {
	c.check()
	if other == c.list {
		panic(ErrSelfSplice)
	}
	if other.IsEmpty() {
		return
	}

	first, last, n := other.detach()
	switch {
	case c.list.len == 0:
		c.list.front = first
		c.list.back = last
	case c.cur == nil:
		c.list.front.front = last
		last.back = c.list.front
		c.list.front = first
	default:
		if next := c.cur.back; next != nil {
			next.front = last
			last.back = next
		} else {
			c.list.back = last
		}
		c.cur.back = first
		first.front = c.cur
	}
	c.list.len += n
	c.touch()
}

// takeAll moves the whole chain into a new list.
func (c *Cursor[T]) takeAll() *List[T] {
	out := New[T]()
	out.front, out.back, out.len = c.list.detach()
	c.touch()
	return out
}

// detach empties l and returns its chain. Cursors on l are invalidated.
func (l *List[T]) detach() (first, last *node[T], n int) {
	first, last, n = l.front, l.back, l.len
	l.front, l.back, l.len = nil, nil, 0
	l.gen++
	return first, last, n
}

// single returns a one-element list.
func single[T any](v T) *List[T] {
	n := &node[T]{elem: v}
	return &List[T]{front: n, back: n, len: 1}
}
