/*
Package trie32 implements a persistent array: a map from a dense uint32 index
to a value, stored in a 32 way radix trie. The term persistent is used to
imply immutable and structurally shared; every Assign or Delete returns a new
Array and leaves the old one untouched.

The index is split into 5 bit digits. The root table routes on the highest
digit the stored indexes need, each table below routes on the next digit,
and the tables of shift 0 hold the leaves. The trie is only as deep as the
largest index requires: the root is padded with single entry tables when a
larger index is assigned and trimmed again when the large indexes are
deleted.

A table with all 32 slots taken is stored as a fullTable (a plain array);
every other table is a compressedTable (a bitmap plus a compacted slice).
*/
package trie32

import (
	"fmt"
	"iter"

	"go.uber.org/zap"

	"github.com/lleo/go-functional-collections"
	"github.com/lleo/go-functional-collections/internal/bitutil"
	"github.com/lleo/go-functional-collections/internal/equal"
	"github.com/lleo/go-functional-collections/internal/logutil"
)

// Nbits is the number of index bits consumed by each level of the trie.
const Nbits = 5

// TableCapacity is the number of slots in a table; 1<<Nbits (ie 2^5 == 32).
const TableCapacity = 1 << Nbits

// MaxShift is the shift of the deepest possible root; it covers the top two
// bits of a uint32 index.
const MaxShift = 30

const digitMask = TableCapacity - 1

const halfIndent = "  "
const fullIndent = "    "

// Array is a persistent sparse array. The zero value is an empty Array, and
// deleting every index of an Array yields the zero value again; so
// a == Array[V]{} is a valid emptiness test.
type Array[V any] struct {
	root tableI[V]
	size int
}

// digit returns the 5 bit digit of index routed on by a table of shift.
func digit(index uint32, shift uint) uint {
	return uint((index >> shift) & digitMask)
}

// shiftForIndex returns the shift of the smallest root that can hold index.
func shiftForIndex(index uint32) uint {
	var shift uint
	for shift < MaxShift && index>>(shift+Nbits) != 0 {
		shift += Nbits
	}
	return shift
}

func shouldNotBeReached(where string, idx uint) {
	logutil.BgLogger().Panic("SHOULD NOT BE REACHED", zap.String("where", where), zap.Uint("idx", idx))
}

// Size returns the number of indexes holding a value.
func (a Array[V]) Size() int {
	return a.size
}

func (a Array[V]) IsEmpty() bool {
	return a.root == nil
}

// Get retrieves the value stored at index. The bool reports whether index
// holds a value.
func (a Array[V]) Get(index uint32) (val V, found bool) {
	if a.root == nil || a.root.shift() < shiftForIndex(index) {
		return
	}
	var l = findLeaf(a.root, index)
	if l == nil {
		return
	}
	return l.value, true
}

// GetValueOr returns the value stored at index, or def when index holds no
// value.
func (a Array[V]) GetValueOr(index uint32, def V) V {
	if a.root == nil || a.root.shift() < shiftForIndex(index) {
		return def
	}
	var l = findLeaf(a.root, index)
	if l == nil {
		return def
	}
	return l.value
}

// findLeaf descends from t along the digits of index. The caller guarantees
// t.shift() >= shiftForIndex(index).
func findLeaf[V any](t tableI[V], index uint32) *leaf[V] {
	for {
		switch n := t.get(digit(index, t.shift())).(type) {
		case nil:
			return nil
		case *leaf[V]:
			if n.index != index {
				return nil
			}
			return n
		case tableI[V]:
			t = n
		}
	}
}

// Assign returns an Array with value stored at index. When index already
// holds value the receiver itself is returned.
func (a Array[V]) Assign(index uint32, value V) Array[V] {
	var root = a.paddedRoot(shiftForIndex(index))

	var newRoot, delta = assign(root, root.shift(), index, value)
	if newRoot == a.root {
		return a
	}

	return Array[V]{newRoot, a.size + delta}
}

// paddedRoot returns a root of at least shift, wrapping the current root in
// single entry tables as needed.
func (a Array[V]) paddedRoot(shift uint) tableI[V] {
	if a.root == nil {
		return newCompressedTable[V](shift)
	}
	var root = a.root
	for root.shift() < shift {
		root = wrapTable(root)
	}
	return root
}

// assign stores value at index below t and returns the new table along with
// the change in the number of stored values (0 or 1). t itself is returned
// when nothing changed.
func assign[V any](t tableI[V], shift uint, index uint32, value V) (tableI[V], int) {
	var idx = digit(index, shift)
	var n = t.get(idx)

	if shift == 0 {
		switch x := n.(type) {
		case nil:
			return t.insert(idx, newLeaf(index, value)), 1
		case *leaf[V]:
			if x.index != index {
				shouldNotBeReached("assign: leaf on foreign path", idx)
			}
			if equal.Values(x.value, value) {
				return t, 0
			}
			return t.replace(idx, newLeaf(index, value)), 0
		default:
			shouldNotBeReached("assign: table at shift 0", idx)
		}
	}

	if n == nil {
		var newChild, delta = assign[V](newCompressedTable[V](shift-Nbits), shift-Nbits, index, value)
		return t.insert(idx, newChild), delta
	}

	var child, ok = n.(tableI[V])
	if !ok {
		shouldNotBeReached("assign: leaf above shift 0", idx)
	}

	var newChild, delta = assign(child, shift-Nbits, index, value)
	if newChild == child {
		return t, 0
	}
	return t.replace(idx, newChild), delta
}

// Delete returns an Array without a value at index. When index holds no
// value the receiver itself is returned.
func (a Array[V]) Delete(index uint32) Array[V] {
	if a.root == nil || a.root.shift() < shiftForIndex(index) {
		return a
	}

	var newRoot, delta = del(a.root, a.root.shift(), index)
	if delta == 0 {
		return a
	}
	if newRoot == nil {
		return Array[V]{}
	}

	return Array[V]{trimmedRoot(newRoot), a.size + delta}
}

// del removes index below t. It returns nil when t lost its last entry,
// and the change in the number of stored values (0 or -1).
func del[V any](t tableI[V], shift uint, index uint32) (tableI[V], int) {
	var idx = digit(index, shift)

	switch n := t.get(idx).(type) {
	case nil:
		return t, 0
	case *leaf[V]:
		if n.index != index {
			return t, 0
		}
		return t.remove(idx), -1
	case tableI[V]:
		var newChild, delta = del(n, shift-Nbits, index)
		if delta == 0 {
			return t, 0
		}
		if newChild == nil {
			return t.remove(idx), delta
		}
		return t.replace(idx, newChild), delta
	}

	shouldNotBeReached("del: unknown node type", idx)
	return nil, 0
}

// trimmedRoot removes the single entry tables left at the top of the trie
// after large indexes were deleted. Only a table whose lone entry is at idx
// 0 can be removed without changing where indexes route to.
func trimmedRoot[V any](root tableI[V]) tableI[V] {
	for {
		var ct, ok = root.(*compressedTable[V])
		if !ok || ct.nodeMap != 1 {
			return root
		}
		var child, isTable = ct.nodes[0].(tableI[V])
		if !isTable {
			return root
		}
		root = child
	}
}

// All returns an iterator over the index/value pairs in ascending index
// order. Each call starts a fresh iteration.
func (a Array[V]) All() iter.Seq2[uint32, V] {
	return func(yield func(uint32, V) bool) {
		if a.root != nil {
			walk(a.root, yield)
		}
	}
}

// Indices returns an iterator over the populated indexes in ascending order.
func (a Array[V]) Indices() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		for i := range a.All() {
			if !yield(i) {
				return
			}
		}
	}
}

// Values returns an iterator over the values in ascending index order.
func (a Array[V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range a.All() {
			if !yield(v) {
				return
			}
		}
	}
}

func walk[V any](t tableI[V], yield func(uint32, V) bool) bool {
	return t.forEach(func(_ uint, n nodeI[V]) bool {
		switch x := n.(type) {
		case *leaf[V]:
			return yield(x.index, x.value)
		case tableI[V]:
			return walk(x, yield)
		}
		return true
	})
}

// Entries collects the index/value pairs in ascending index order.
func (a Array[V]) Entries() []collections.Entry[uint32, V] {
	var ents = make([]collections.Entry[uint32, V], 0, a.size)
	for i, v := range a.All() {
		ents = append(ents, collections.NewEntry(i, v))
	}
	return ents
}

// CheckInvariants walks the whole trie and returns an error wrapping
// collections.ErrInvariant for the first broken invariant it finds.
func (a Array[V]) CheckInvariants() error {
	if a.root == nil {
		if a.size != 0 {
			return collections.Invariantf("empty root with size %d", a.size)
		}
		return nil
	}

	if trimmedRoot(a.root) != a.root {
		return collections.Invariantf("root %s is not trimmed", a.root)
	}

	var count, err = checkTable(a.root, a.root.shift(), 0)
	if err != nil {
		return err
	}
	if count != a.size {
		return collections.Invariantf("size %d but %d leaves", a.size, count)
	}
	return nil
}

// checkTable verifies t and everything below it. base is the index prefix
// fixed by the path from the root to t.
func checkTable[V any](t tableI[V], shift uint, base uint32) (int, error) {
	if t.shift() != shift {
		return 0, collections.Invariantf("%s: expected shift %d", t, shift)
	}

	switch x := t.(type) {
	case *compressedTable[V]:
		if len(x.nodes) == 0 {
			return 0, collections.Invariantf("%s: empty table", t)
		}
		if len(x.nodes) >= TableCapacity {
			return 0, collections.Invariantf("%s: should be a fullTable", t)
		}
		if len(x.nodes) != bitutil.BitCount32(x.nodeMap) {
			return 0, collections.Invariantf("%s: nodeMap holds %d bits", t, bitutil.BitCount32(x.nodeMap))
		}
	case *fullTable[V]:
		for i, n := range x.nodes {
			if n == nil {
				return 0, collections.Invariantf("%s: empty slot %d", t, i)
			}
		}
	}

	var count int
	var err error
	t.forEach(func(idx uint, n nodeI[V]) bool {
		var childBase = base | uint32(idx)<<shift
		switch x := n.(type) {
		case *leaf[V]:
			if shift != 0 {
				err = collections.Invariantf("%s: leaf at shift %d", x, shift)
			} else if x.index != childBase {
				err = collections.Invariantf("%s: stored under index %d", x, childBase)
			} else {
				count++
			}
		case tableI[V]:
			if shift == 0 {
				err = collections.Invariantf("%s: table below shift 0", x)
				break
			}
			var c int
			c, err = checkTable(x, shift-Nbits, childBase)
			count += c
		default:
			err = collections.Invariantf("%s: unexpected node %s at idx %d", t, n, idx)
		}
		return err == nil
	})

	return count, err
}

func (a Array[V]) String() string {
	return fmt.Sprintf("Array{ size: %d, root: %v }", a.size, a.root)
}

func (a Array[V]) LongString(indent string) string {
	if a.root == nil {
		return indent + fmt.Sprintf("Array{ size: %d, root: nil }", a.size)
	}
	var str = indent + fmt.Sprintf("Array{ size: %d, root:\n", a.size)
	str += a.root.LongString(indent+fullIndent, true)
	str += "\n" + indent + "}"
	return str
}
