package dlist

import (
	"cmp"
	"iter"
)

// All returns an iterator over the elements from front to back.
// The iterator may be restarted and abandoned at any point. It panics
// with ErrConcurrentModification if the list is modified while running.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if l == nil {
			return
		}
		gen := l.gen
		for n := l.front; n != nil; n = n.back {
			if !yield(n.elem) {
				return
			}
			if l.gen != gen {
				panic(ErrConcurrentModification)
			}
		}
	}
}

// Backward returns an iterator over the elements from back to front.
func (l *List[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		if l == nil {
			return
		}
		gen := l.gen
		for n := l.back; n != nil; n = n.front {
			if !yield(n.elem) {
				return
			}
			if l.gen != gen {
				panic(ErrConcurrentModification)
			}
		}
	}
}

// Indexed returns an iterator over (index, element) pairs front to back.
func (l *List[T]) Indexed() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		i := 0
		for v := range l.All() {
			if !yield(i, v) {
				return
			}
			i++
		}
	}
}

// Equal reports whether a and b hold equal elements in the same order.
func Equal[T comparable](a, b *List[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

// EqualFunc is like Equal but compares elements with eq. It panics with
// ErrConcurrentModification if eq modifies either list.
func EqualFunc[T, U any](a *List[T], b *List[U], eq func(T, U) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	equal := true
	walkPairs(a, b, func(x T, y U) bool {
		equal = eq(x, y)
		return equal
	})
	return equal
}

// Compare compares a and b lexicographically. A shorter list that is a
// prefix of a longer one sorts first.
func Compare[T cmp.Ordered](a, b *List[T]) int {
	return CompareFunc(a, b, cmp.Compare[T])
}

// CompareFunc is like Compare but compares elements with fn. It panics
// with ErrConcurrentModification if fn modifies either list.
func CompareFunc[T, U any](a *List[T], b *List[U], fn func(T, U) int) int {
	c := 0
	walkPairs(a, b, func(x T, y U) bool {
		c = fn(x, y)
		return c == 0
	})
	if c != 0 {
		return c
	}
	return cmp.Compare(a.Len(), b.Len())
}

// walkPairs calls f on elements of a and b at equal positions from the
// front until either list ends or f returns false.
func walkPairs[T, U any](a *List[T], b *List[U], f func(T, U) bool) {
	if a == nil || b == nil {
		return
	}
	genA, genB := a.gen, b.gen
	na, nb := a.front, b.front
	for na != nil && nb != nil {
		if !f(na.elem, nb.elem) {
			return
		}
		if a.gen != genA || b.gen != genB {
			panic(ErrConcurrentModification)
		}
		na, nb = na.back, nb.back
	}
}
