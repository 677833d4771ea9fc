package hamt32

import (
	"fmt"
	"iter"

	"github.com/lleo/go-functional-collections"
)

// Set is a persistent hash set: a Map whose values carry nothing. The zero
// value is an empty Set, and removing every member yields an empty Set of
// the same lineage.
type Set[K any] struct {
	m Map[K, struct{}]
}

// NewSet returns an empty Set that hashes with hasher and picks its
// collision strategy on the first Add. A nil hasher means NewHasher.
func NewSet[K any](hasher Hasher[K]) Set[K] {
	return Set[K]{New[K, struct{}](hasher)}
}

// SetUsingList returns an empty Set that resolves collisions with a list.
func SetUsingList[K any](hasher Hasher[K]) Set[K] {
	return Set[K]{UsingList[K, struct{}](hasher)}
}

// SetUsingTree returns an empty Set that resolves collisions with a sorted
// tree ordered by cmp.
func SetUsingTree[K any](hasher Hasher[K], cmp collections.Comparer[K]) Set[K] {
	return Set[K]{UsingTree[K, struct{}](hasher, cmp)}
}

func (s Set[K]) Strategy() Strategy {
	return s.m.Strategy()
}

func (s Set[K]) Size() int {
	return s.m.Size()
}

func (s Set[K]) IsEmpty() bool {
	return s.m.IsEmpty()
}

func (s Set[K]) Contains(key K) bool {
	var _, found = s.m.Get(key)
	return found
}

// Add returns a Set holding key. When key is already a member the receiver
// itself is returned.
func (s Set[K]) Add(key K) Set[K] {
	return Set[K]{s.m.Assign(key, struct{}{})}
}

// Remove returns a Set without key. When key is not a member the receiver
// itself is returned.
func (s Set[K]) Remove(key K) Set[K] {
	return Set[K]{s.m.Delete(key)}
}

// All returns an iterator over the members, in an order that is stable for
// a given Set but otherwise unspecified.
func (s Set[K]) All() iter.Seq[K] {
	return s.m.Keys()
}

func (s Set[K]) CheckInvariants() error {
	return s.m.CheckInvariants()
}

func (s Set[K]) String() string {
	return fmt.Sprintf("Set{ size: %d, strategy: %s }", s.m.Size(), s.m.Strategy())
}
