package nbt

import (
	"fmt"
	"iter"
	"slices"
)

// List is a live, index-addressable view over a list tag node. Mutation
// through a List mutates the underlying node in place.
//
// Lists are monomorphic: the element type is locked by the first insertion
// and inserting a value of any other tag type into a non-empty list panics.
// Emptying the list unlocks the element type again, matching the behavior of
// the native format, where an empty list carries no element type.
//
// Positional access follows slice semantics: an out-of-range index panics.
//
// Concurrency:
// A List is not safe for concurrent use. Access from multiple goroutines
// must be serialized by the caller.
type List struct {
	h     *node
	cache wrapperCache
}

// NewList constructs a new list seeded with the given values. All values
// must unwrap to the same tag type.
func NewList(values ...any) *List {
	l := &List{h: newListNode()}
	l.Add(values...)
	return l
}

func (l *List) handle() *node { return l.h }

// Len returns the number of elements in the list.
func (l *List) Len() int {
	return len(l.h.list)
}

// ElementType returns the tag type the list is locked to, or TagEnd while
// the list is empty.
func (l *List) ElementType() TagType {
	return l.h.elem
}

// At returns the element at index i.
func (l *List) At(i int) any {
	return l.cache.wrap(l.h.list[i])
}

// SetAt replaces the element at index i. The new element must match the
// list's element type.
func (l *List) SetAt(i int, value any) {
	n := l.checkedUnwrap(value)
	if old := l.h.list[i]; old != n {
		l.cache.evict(old)
	}
	l.h.list[i] = n
	if w, ok := value.(wrapper); ok {
		l.cache.seed(n, w)
	}
}

// Add appends values to the end of the list.
func (l *List) Add(values ...any) {
	for _, value := range values {
		l.Insert(l.Len(), value)
	}
}

// Insert inserts a value at index i, shifting later elements up by one.
// Inserting into an empty list locks the list's element type to the tag type
// of the value.
func (l *List) Insert(i int, value any) {
	n := l.checkedUnwrap(value)
	l.h.list = slices.Insert(l.h.list, i, n)
	if w, ok := value.(wrapper); ok {
		l.cache.seed(n, w)
	}
}

// RemoveAt removes the element at index i and returns it.
func (l *List) RemoveAt(i int) any {
	n := l.h.list[i]
	removed := l.cache.wrap(n)
	l.cache.evict(n)
	l.h.list = slices.Delete(l.h.list, i, i+1)
	if len(l.h.list) == 0 {
		l.h.elem = TagEnd
	}
	return removed
}

// Remove removes the first element whose native representation equals the
// given value, reporting whether an element was removed. The value is
// unwrapped before comparison, so a wrapper and the primitive it would box
// compare the same way.
func (l *List) Remove(value any) bool {
	n := unwrap(value)
	for i, child := range l.h.list {
		if child.equal(n) {
			l.RemoveAt(i)
			return true
		}
	}
	return false
}

// Clear removes every element and unlocks the element type.
func (l *List) Clear() {
	for _, child := range l.h.list {
		l.cache.evict(child)
	}
	l.h.list = nil
	l.h.elem = TagEnd
}

// All returns an iterator over the live elements of the list, in order.
// Each call to All reflects the current state of the list.
func (l *List) All() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, child := range l.h.list {
			if !yield(l.cache.wrap(child)) {
				return
			}
		}
	}
}

// Equal reports whether two lists hold element-wise equal entries.
func (l *List) Equal(other *List) bool {
	if other == nil {
		return false
	}
	return l.h.equal(other.h)
}

// checkedUnwrap unwraps a value and enforces the list's element type,
// locking it if the list is empty.
func (l *List) checkedUnwrap(value any) *node {
	n := unwrap(value)
	if len(l.h.list) == 0 {
		l.h.elem = n.typ
	} else if n.typ != l.h.elem {
		panic(fmt.Sprintf("nbt: cannot insert %v into a list of %v", n.typ, l.h.elem))
	}
	return n
}
