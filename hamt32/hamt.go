/*
Package hamt32 implements a persistent Hash Array Mapped Trie (HAMT).
It is called hamt32 because each level of the Trie branches 32 ways and the
keys are routed by a 32 bit hash. The term persistent is used to imply
immutable and structurally shared.

The hash is consumed Nbits (5) at a time from its least significant end;
each 5 bit value selects a child. Not every level is used: a key is stored
at the first node where the remaining hash is 0, so the depth of a key is
set by the position of the highest set bit of its hash.

Keys with the same hash share a bucket. How a bucket is kept is the Map's
collision Strategy: a linked list compared with Hasher.Equal, or a sorted
btreemap.Map compared with a collections.Comparer. The Strategy is chosen
once for an empty Map and is kept by every Map derived from it.
*/
package hamt32

import (
	"fmt"
	"iter"

	"go.uber.org/zap"

	"github.com/lleo/go-functional-collections"
	"github.com/lleo/go-functional-collections/internal/bitutil"
	"github.com/lleo/go-functional-collections/internal/logutil"
)

// Nbits is the number of hash bits consumed by each level of the Trie.
const Nbits = 5

// TableCapacity is the number of children a node can have; 1<<Nbits
// (ie 2^5 == 32).
const TableCapacity = 1 << Nbits

// MaxDepth is the depth of the deepest possible node. A 32 bit hash is used
// up after 7 levels, so nodes live at depths [0..MaxDepth].
const MaxDepth = 7

const digitMask = TableCapacity - 1

const halfIndent = "  "
const fullIndent = "    "

// Map is a persistent hash map.
//
// The zero value is an empty Map that uses NewHasher and picks its collision
// Strategy on the first Assign. Deleting every key of a Map yields the empty
// Map of the same lineage (Hasher and Strategy), so it compares equal with
// == to the Map the lineage started from.
type Map[K, V any] struct {
	root       *node[K, V]
	nentries   int
	hasher     Hasher[K]
	collisions collisionMap[K, V]
}

// New returns an empty Map using hasher. A nil hasher is replaced by
// NewHasher on the first Assign. The collision Strategy is picked on the
// first Assign: TreeCollisions when collections.DefaultComparer supports the
// key type, ListCollisions otherwise.
func New[K, V any](hasher Hasher[K]) Map[K, V] {
	return Map[K, V]{hasher: hasher}
}

// UsingList returns an empty Map using hasher and ListCollisions.
func UsingList[K, V any](hasher Hasher[K]) Map[K, V] {
	return Map[K, V]{hasher: hasher, collisions: listCollisions[K, V]{}}
}

// UsingTree returns an empty Map using hasher and TreeCollisions ordered by
// cmp.
func UsingTree[K, V any](hasher Hasher[K], cmp collections.Comparer[K]) Map[K, V] {
	return Map[K, V]{hasher: hasher, collisions: treeCollisions[K, V]{cmp}}
}

func shouldNotBeReached(where string, hash uint32, depth int, fields ...zap.Field) {
	fields = append([]zap.Field{zap.String("where", where), zap.Uint32("hash", hash), zap.Int("depth", depth)}, fields...)
	logutil.BgLogger().Panic("SHOULD NOT BE REACHED", fields...)
}

// Strategy reports how the Map resolves hash collisions.
func (m Map[K, V]) Strategy() Strategy {
	if m.collisions == nil {
		return Unselected
	}
	return m.collisions.strategy()
}

func (m Map[K, V]) IsEmpty() bool {
	return m.root == nil
}

// Size returns the number of keys in the Map.
func (m Map[K, V]) Size() int {
	return m.nentries
}

// selected returns the Hasher and collisionMap to use for key, picking the
// defaults when the Map has none yet.
func (m Map[K, V]) selected(key K) (Hasher[K], collisionMap[K, V]) {
	var h, cm = m.hasher, m.collisions
	if h == nil {
		h = NewHasher(key)
	}
	if cm == nil {
		if cmp, ok := collections.DefaultComparer(key); ok {
			cm = treeCollisions[K, V]{cmp}
		} else {
			cm = listCollisions[K, V]{}
		}
	}
	return h, cm
}

// find descends the trie along hash. It returns the nodes passed through,
// the last of which is the deepest node on the key's route, and the part of
// the hash left to consume below that node. When remaining is 0 the key
// belongs in that node's bucket; otherwise its child for remaining&31 is
// absent.
func (m Map[K, V]) find(hash uint32) (path tableStack[K, V], remaining uint32) {
	path = newTableStack[K, V]()
	var cur = m.root
	remaining = hash

	for depth := 0; ; depth++ {
		if depth > MaxDepth {
			shouldNotBeReached("Map.find: hash not used up", hash, depth, zap.Stringer("path", path))
		}
		path.push(cur)
		if remaining == 0 {
			return
		}
		var child = cur.child(uint(remaining & digitMask))
		if child == nil {
			return
		}
		cur = child
		remaining >>= Nbits
	}
}

// persist is ONLY called on a fresh copy of the current Map. Hence,
// modifying it is allowed. newNode replaces the node on top of path; path
// is consumed. A nil newNode removes that node from its parent.
func (nm *Map[K, V]) persist(hash uint32, newNode *node[K, V], path tableStack[K, V]) {
	path.pop()
	if path.isEmpty() {
		nm.root = newNode
		return
	}

	var parentDepth = path.len() - 1
	var idx = uint((hash >> (Nbits * uint(parentDepth))) & digitMask)

	var parent = path.peek()
	nm.persist(hash, parent.withChild(idx, newNode), path)
}

func (m Map[K, V]) lookup(key K) (V, bool) {
	var zero V
	if m.root == nil {
		return zero, false
	}

	var h = m.hasher
	if h == nil {
		h = NewHasher(key)
	}

	var cur = m.root
	for remaining := h.Hash(key); remaining != 0; remaining >>= Nbits {
		cur = cur.child(uint(remaining & digitMask))
		if cur == nil {
			return zero, false
		}
	}
	if !cur.filled {
		return zero, false
	}
	return cur.value.get(h, key)
}

// Get retrieves the value for key. The bool reports whether key was found.
func (m Map[K, V]) Get(key K) (V, bool) {
	return m.lookup(key)
}

// GetValueOr returns the value stored for key, or def when key is absent.
func (m Map[K, V]) GetValueOr(key K, def V) V {
	if v, found := m.lookup(key); found {
		return v
	}
	return def
}

// Assign returns a Map with key bound to value. When key is already bound
// to value the receiver itself is returned.
func (m Map[K, V]) Assign(key K, value V) Map[K, V] {
	var h, cm = m.selected(key)
	var hash = h.Hash(key)

	if m.root == nil {
		return Map[K, V]{newChain(hash, cm.newBucket(key, value)), 1, h, cm}
	}

	var path, remaining = m.find(hash)
	var cur = path.peek()

	var newNode *node[K, V]
	var delta int
	if remaining == 0 {
		if !cur.filled {
			newNode, delta = cur.withValue(cm.newBucket(key, value)), 1
		} else {
			var nb bucket[K, V]
			nb, delta = cur.value.assign(h, key, value)
			if nb == cur.value {
				return m
			}
			newNode = cur.withValue(nb)
		}
	} else {
		var idx = uint(remaining & digitMask)
		newNode, delta = cur.withChild(idx, newChain(remaining>>Nbits, cm.newBucket(key, value))), 1
	}

	var nm = Map[K, V]{m.root, m.nentries + delta, h, cm}
	nm.persist(hash, newNode, path)
	return nm
}

// Update binds key to the value returned by fn. fn is given the current
// value and whether key is present. As with Assign, the receiver is
// returned when fn returns the value already stored.
func (m Map[K, V]) Update(key K, fn func(old V, found bool) V) Map[K, V] {
	var old, found = m.lookup(key)
	return m.Assign(key, fn(old, found))
}

// Delete returns a Map without key. When key is absent the receiver itself
// is returned.
func (m Map[K, V]) Delete(key K) Map[K, V] {
	if m.root == nil {
		return m
	}

	var hash = m.hasher.Hash(key)
	var path, remaining = m.find(hash)
	var cur = path.peek()
	if remaining != 0 || !cur.filled {
		return m
	}

	var nb, delta = cur.value.delete(m.hasher, key)
	if delta == 0 {
		return m
	}

	var nm = m
	nm.nentries += delta
	nm.persist(hash, cur.withValue(nb), path)
	if nm.root == nil {
		return Map[K, V]{hasher: m.hasher, collisions: m.collisions}
	}
	return nm
}

// All returns an iterator over the key/value pairs. The order is stable for
// a given Map but otherwise unspecified.
func (m Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m.root != nil {
			m.root.forEach(yield)
		}
	}
}

// Keys returns an iterator over the keys, in the order of All.
func (m Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range m.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values returns an iterator over the values, in the order of All.
func (m Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// CheckInvariants walks the whole trie and returns an error wrapping
// collections.ErrInvariant for the first broken invariant it finds.
func (m Map[K, V]) CheckInvariants() error {
	if m.root == nil {
		if m.nentries != 0 {
			return collections.Invariantf("empty root with nentries %d", m.nentries)
		}
		return nil
	}

	var count, err = m.checkNode(m.root, 0, 0)
	if err != nil {
		return err
	}
	if count != m.nentries {
		return collections.Invariantf("nentries %d but %d entries", m.nentries, count)
	}
	return nil
}

// checkNode verifies n and everything below it. prefix is the hash bits
// fixed by the path from the root to n.
func (m Map[K, V]) checkNode(n *node[K, V], depth uint, prefix uint32) (int, error) {
	if depth > MaxDepth {
		return 0, collections.Invariantf("%s: deeper than %d", n, MaxDepth)
	}
	if n.isEmpty() {
		return 0, collections.Invariantf("%s: empty node at depth %d", n, depth)
	}
	if bitutil.BitCount32(n.bitmask) != len(n.children) {
		return 0, collections.Invariantf("%s: %d children", n, len(n.children))
	}
	if n.filled != (n.value != nil) {
		return 0, collections.Invariantf("%s: filled does not match value", n)
	}

	var count int
	if n.filled {
		if n.value.size() == 0 {
			return 0, collections.Invariantf("%s: empty bucket", n)
		}
		var err error
		n.value.forEach(func(k K, _ V) bool {
			if h := m.hasher.Hash(k); h != prefix {
				err = collections.Invariantf("%s: key %v hash %#x stored under %#x", n, k, h, prefix)
				return false
			}
			count++
			return true
		})
		if err != nil {
			return 0, err
		}
		if count != n.value.size() {
			return 0, collections.Invariantf("%s: bucket size %d but %d entries", n, n.value.size(), count)
		}
	}

	var i int
	for idx := uint(0); idx < TableCapacity; idx++ {
		if n.bitmask&(1<<idx) == 0 {
			continue
		}
		var c = n.children[i]
		i++
		if c == nil {
			return 0, collections.Invariantf("%s: nil child at idx %d", n, idx)
		}
		var childPrefix = prefix | uint32(idx)<<(Nbits*depth)
		var cc, err = m.checkNode(c, depth+1, childPrefix)
		if err != nil {
			return 0, err
		}
		count += cc
	}
	return count, nil
}

func (m Map[K, V]) String() string {
	return fmt.Sprintf("Map{ nentries: %d, strategy: %s, root: %v }", m.nentries, m.Strategy(), m.root)
}

func (m Map[K, V]) LongString(indent string) string {
	if m.root == nil {
		return indent + fmt.Sprintf("Map{ nentries: %d, root: nil }", m.nentries)
	}
	var str = indent + fmt.Sprintf("Map{ nentries: %d, strategy: %s, root:\n", m.nentries, m.Strategy())
	str += m.root.LongString(indent+fullIndent, 0)
	str += "\n" + indent + "}"
	return str
}
