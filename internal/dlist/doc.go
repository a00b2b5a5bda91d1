// Package dlist provides a doubly linked list with a mutable cursor.
//
// A List owns a chain of heap-allocated nodes. Each node links to its
// neighbour toward the front and toward the back of the list. The links
// are only ever followed through the List and Cursor methods, so the
// chain can be restructured in constant time without exposing nodes.
//
// Key features:
//   - O(1) push and pop at both ends
//   - A Cursor that walks in both directions and edits in place
//   - O(1) split of a list into two, and O(1) splice of one list into another
//   - Front-to-back and back-to-front iteration with iter.Seq
//
// Basic usage:
//
//	l := dlist.From(1, 2, 3)
//	c := l.CursorMut()
//	c.MoveNext()                 // at 1, index 0
//	c.InsertAfter(9)             // [1 9 2 3]
//	tail := c.SplitAfter()       // l = [1], tail = [9 2 3]
//	c.SpliceAfter(tail)          // l = [1 9 2 3], tail is empty
//
// # Ghost position
//
// A cursor is either at a node or at the ghost position, which sits
// between the back and the front of the list as if the list were a ring.
// Moving next from the ghost reaches the front, moving prev reaches the
// back. Edits follow the same picture: inserting or splicing before the
// ghost appends at the back, inserting or splicing after it prepends at
// the front, and splitting at the ghost hands the whole list over.
//
// # Exclusive cursors
//
// A list lends itself to one cursor at a time. Creating a new cursor or
// mutating the list through its own methods invalidates the previous
// cursor; using an invalidated cursor panics with ErrCursorInvalidated.
// Iterators likewise panic with ErrConcurrentModification if the list
// changes while they are running.
//
// A List is not safe for concurrent use.
package dlist
