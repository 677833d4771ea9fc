package hamt32

import (
	"fmt"
	"strings"

	"github.com/lleo/go-functional-collections/internal/equal"
)

// Strategy names how a Map stores keys whose hashes are equal.
type Strategy int

const (
	// Unselected is the Strategy of an empty Map that will pick one on its
	// first Assign.
	Unselected Strategy = iota
	// ListCollisions keeps colliding keys in a linked list, compared with
	// Hasher.Equal. It works for any key type.
	ListCollisions
	// TreeCollisions keeps colliding keys in a btreemap.Map, so it needs a
	// Comparer for the key type.
	TreeCollisions
)

func (s Strategy) String() string {
	switch s {
	case Unselected:
		return "Unselected"
	case ListCollisions:
		return "ListCollisions"
	case TreeCollisions:
		return "TreeCollisions"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// collisionMap creates the buckets of one Strategy. A Map's collisionMap is
// fixed once chosen and shared by every version derived from it; the
// implementations are small comparable values so Maps of the same lineage
// compare equal.
type collisionMap[K, V any] interface {
	strategy() Strategy
	newBucket(key K, value V) bucket[K, V]
}

// bucket is the set of entries of one filled node. Buckets are never
// modified once built.
type bucket[K, V any] interface {
	size() int
	get(h Hasher[K], key K) (V, bool)
	// assign returns the receiver when key is already bound to value. The
	// int is the change in size (0 or 1).
	assign(h Hasher[K], key K, value V) (bucket[K, V], int)
	// delete returns the receiver when key is absent, and nil when the last
	// entry is removed. The int is the change in size (0 or -1).
	delete(h Hasher[K], key K) (bucket[K, V], int)
	forEach(yield func(K, V) bool) bool
	String() string
}

type listCollisions[K, V any] struct{}

func (listCollisions[K, V]) strategy() Strategy {
	return ListCollisions
}

func (listCollisions[K, V]) newBucket(key K, value V) bucket[K, V] {
	return &collisionLeaf[K, V]{key: key, value: value, n: 1}
}

// collisionLeaf is a persistent singly linked list of entries. Updating or
// removing an entry copies the cells in front of it and shares the rest.
type collisionLeaf[K, V any] struct {
	key   K
	value V
	next  *collisionLeaf[K, V]
	n     int
}

func (l *collisionLeaf[K, V]) size() int {
	return l.n
}

func (l *collisionLeaf[K, V]) get(h Hasher[K], key K) (V, bool) {
	for c := l; c != nil; c = c.next {
		if h.Equal(c.key, key) {
			return c.value, true
		}
	}
	var zero V
	return zero, false
}

// find returns the cell holding key and its position in the list; nil when
// key is absent.
func (l *collisionLeaf[K, V]) find(h Hasher[K], key K) (*collisionLeaf[K, V], int) {
	var pos int
	for c := l; c != nil; c = c.next {
		if h.Equal(c.key, key) {
			return c, pos
		}
		pos++
	}
	return nil, -1
}

// rebuild copies the first pos cells of l onto tail; n is the size of the
// result.
func (l *collisionLeaf[K, V]) rebuild(pos int, tail *collisionLeaf[K, V], n int) *collisionLeaf[K, V] {
	if pos == 0 {
		return tail
	}
	var head = &collisionLeaf[K, V]{key: l.key, value: l.value, n: n}
	var cur = head
	for c := l.next; pos > 1; c, pos = c.next, pos-1 {
		n--
		cur.next = &collisionLeaf[K, V]{key: c.key, value: c.value, n: n}
		cur = cur.next
	}
	cur.next = tail
	return head
}

func (l *collisionLeaf[K, V]) assign(h Hasher[K], key K, value V) (bucket[K, V], int) {
	var c, pos = l.find(h, key)
	if c == nil {
		return &collisionLeaf[K, V]{key: key, value: value, next: l, n: l.n + 1}, 1
	}
	if equal.Values(c.value, value) {
		return l, 0
	}
	var cell = &collisionLeaf[K, V]{key: c.key, value: value, next: c.next, n: c.n}
	return l.rebuild(pos, cell, l.n), 0
}

func (l *collisionLeaf[K, V]) delete(h Hasher[K], key K) (bucket[K, V], int) {
	var c, pos = l.find(h, key)
	if c == nil {
		return l, 0
	}
	if l.n == 1 {
		return nil, -1
	}
	var rest = l.rebuild(pos, c.next, l.n-1)
	return rest, -1
}

func (l *collisionLeaf[K, V]) forEach(yield func(K, V) bool) bool {
	for c := l; c != nil; c = c.next {
		if !yield(c.key, c.value) {
			return false
		}
	}
	return true
}

func (l *collisionLeaf[K, V]) String() string {
	var strs = make([]string, 0, l.n)
	for c := l; c != nil; c = c.next {
		strs = append(strs, fmt.Sprintf("%v:%v", c.key, c.value))
	}
	return fmt.Sprintf("collisionLeaf{%s}", strings.Join(strs, ","))
}
