/*
Package btreemap implements a persistent sorted map stored in a B-tree.
Keys are ordered by a collections.Comparer; iteration is in ascending key
order.

Each branch caches the smallest key below it (its base key) and routes by
binary search over its children's base keys. Every node other than the root
holds between MinChildren and MaxChildren children and every leaf is at the
same depth.
*/
package btreemap

import (
	"fmt"
	"iter"

	"go.uber.org/zap"
	"golang.org/x/exp/constraints"

	"github.com/lleo/go-functional-collections"
	"github.com/lleo/go-functional-collections/internal/logutil"
)

// MinChildren is the fewest children a non root node may hold.
const MinChildren = 9

// MaxChildren is the most children any node may hold.
const MaxChildren = 2 * MinChildren

// Map is a persistent sorted map.
//
// The zero value is an empty Map that picks collections.NewComparer for the
// type of the first key assigned to it. Deleting every key of a Map yields
// the empty Map of the same Comparer; so two empty Maps built with the same
// Comparer compare equal with ==.
type Map[K, V any] struct {
	root node[K, V]
	size int
	cmp  collections.Comparer[K]
}

// New returns an empty Map ordered by cmp.
func New[K, V any](cmp collections.Comparer[K]) Map[K, V] {
	return Map[K, V]{cmp: cmp}
}

// NewOrdered returns an empty Map ordered by the < operator of K.
func NewOrdered[K constraints.Ordered, V any]() Map[K, V] {
	return Map[K, V]{cmp: collections.OrderedComparer[K]{}}
}

func shouldNotBeReached(where string, idx int) {
	logutil.BgLogger().Panic("SHOULD NOT BE REACHED", zap.String("where", where), zap.Int("idx", idx))
}

// Comparer returns the Comparer ordering the Map; nil for a zero value Map
// that has never been assigned to.
func (m Map[K, V]) Comparer() collections.Comparer[K] {
	return m.cmp
}

func (m Map[K, V]) Size() int {
	return m.size
}

func (m Map[K, V]) IsEmpty() bool {
	return m.root == nil
}

// Depth returns the number of levels in the tree; 0 for an empty Map.
func (m Map[K, V]) Depth() int {
	if m.root == nil {
		return 0
	}
	return m.root.depth()
}

// Find returns the value stored for key, and whether key is present.
func (m Map[K, V]) Find(key K) (V, bool) {
	if m.root == nil {
		var zero V
		return zero, false
	}
	return m.root.find(m.cmp, key)
}

// GetValueOr returns the value stored for key, or def when key is absent.
func (m Map[K, V]) GetValueOr(key K, def V) V {
	if v, ok := m.Find(key); ok {
		return v
	}
	return def
}

// Assign returns a Map with key bound to value. When key is already bound
// to value the receiver itself is returned.
func (m Map[K, V]) Assign(key K, value V) Map[K, V] {
	var cmp = m.cmp
	if cmp == nil {
		cmp = collections.NewComparer(key)
	}

	if m.root == nil {
		var ents = []collections.Entry[K, V]{collections.NewEntry(key, value)}
		return Map[K, V]{newLeafNode(ents), 1, cmp}
	}

	var res = m.root.assign(cmp, key, value)
	switch res.kind {
	case unchanged:
		return m
	case split:
		var root = newBranchNode([]node[K, V]{res.newNode, res.extraNode})
		return Map[K, V]{root, m.size + res.delta, cmp}
	}
	return Map[K, V]{res.newNode, m.size + res.delta, cmp}
}

// Delete returns a Map without key. When key is absent the receiver itself
// is returned.
func (m Map[K, V]) Delete(key K) Map[K, V] {
	if m.root == nil {
		return m
	}

	var newRoot = m.root.delete(m.cmp, key)
	if newRoot == m.root {
		return m
	}
	if newRoot == nil {
		return Map[K, V]{cmp: m.cmp}
	}
	return Map[K, V]{newRoot.compress(), m.size - 1, m.cmp}
}

// Min returns the entry with the smallest key; false when the Map is empty.
func (m Map[K, V]) Min() (collections.Entry[K, V], bool) {
	if m.root == nil {
		return collections.Entry[K, V]{}, false
	}
	var k = m.root.baseKey()
	var v, _ = m.root.find(m.cmp, k)
	return collections.NewEntry(k, v), true
}

// Max returns the entry with the largest key; false when the Map is empty.
func (m Map[K, V]) Max() (collections.Entry[K, V], bool) {
	if m.root == nil {
		return collections.Entry[K, V]{}, false
	}
	var k = m.root.lastKey()
	var v, _ = m.root.find(m.cmp, k)
	return collections.NewEntry(k, v), true
}

// All returns an iterator over the key/value pairs in ascending key order.
func (m Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m.root != nil {
			m.root.forEach(yield)
		}
	}
}

// Keys returns an iterator over the keys in ascending order.
func (m Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range m.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values returns an iterator over the values in ascending key order.
func (m Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// CheckInvariants verifies the node fan-out bounds, the key order within
// and across nodes, the cached base keys, equal leaf depth, and the size.
func (m Map[K, V]) CheckInvariants() error {
	if m.root == nil {
		if m.size != 0 {
			return collections.Invariantf("empty root with size %d", m.size)
		}
		return nil
	}
	if err := m.root.checkInvariants(m.cmp, true); err != nil {
		return err
	}
	if n := m.root.valueCount(); n != m.size {
		return collections.Invariantf("size %d but %d entries", m.size, n)
	}
	return nil
}

func (m Map[K, V]) String() string {
	return fmt.Sprintf("Map{ size: %d, depth: %d }", m.size, m.Depth())
}
