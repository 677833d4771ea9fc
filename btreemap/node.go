package btreemap

import "github.com/lleo/go-functional-collections"

// node is either a *leafNode or a *branchNode. Nodes are never modified
// once built.
type node[K, V any] interface {
	// baseKey is the smallest key at or below the node.
	baseKey() K
	// lastKey is the largest key at or below the node.
	lastKey() K
	childCount() int
	valueCount() int
	depth() int

	find(cmp collections.Comparer[K], key K) (V, bool)
	assign(cmp collections.Comparer[K], key K, value V) updateResult[K, V]
	// delete returns the receiver when key is absent, and nil when the
	// last key below the node is removed.
	delete(cmp collections.Comparer[K], key K) node[K, V]

	mergeChildren(sibling node[K, V]) node[K, V]
	distributeChildren(sibling node[K, V]) (node[K, V], node[K, V])
	compress() node[K, V]

	forEach(yield func(K, V) bool) bool
	checkInvariants(cmp collections.Comparer[K], isRoot bool) error
}

type updateKind int

const (
	unchanged updateKind = iota
	inPlace
	split
)

func (k updateKind) String() string {
	switch k {
	case unchanged:
		return "UNCHANGED"
	case inPlace:
		return "INPLACE"
	case split:
		return "SPLIT"
	}
	return "UNKNOWN"
}

// updateResult is what assign reports to the parent. For unchanged the
// parent keeps its child; for inPlace newNode replaces it; for split the
// child is replaced by newNode followed by extraNode. delta is the change
// in the number of keys (0 or 1).
type updateResult[K, V any] struct {
	kind      updateKind
	newNode   node[K, V]
	extraNode node[K, V]
	delta     int
}

func unchangedResult[K, V any]() updateResult[K, V] {
	return updateResult[K, V]{kind: unchanged}
}

func inPlaceResult[K, V any](n node[K, V], delta int) updateResult[K, V] {
	return updateResult[K, V]{kind: inPlace, newNode: n, delta: delta}
}

func splitResult[K, V any](n, extra node[K, V], delta int) updateResult[K, V] {
	return updateResult[K, V]{kind: split, newNode: n, extraNode: extra, delta: delta}
}

// Sentinels handed to findChildIndex for a key smaller than every base key.
// A lookup or delete of such a key can stop immediately; an assign must
// route it to the first child, which then takes it as its new base key.
const (
	beforeFirstForFind   = -1
	beforeFirstForAssign = 0
)

// findChildIndex binary searches the children's base keys. It returns the
// index of the child whose base key equals key, or otherwise the last child
// whose base key is less than key. When key is less than every base key it
// returns beforeFirst.
func findChildIndex[K, V any](cmp collections.Comparer[K], key K, children []node[K, V], beforeFirst int) int {
	var first, last = 0, len(children) - 1
	for first <= last {
		var middle = int(uint(first+last) >> 1)
		var diff = cmp.Compare(key, children[middle].baseKey())
		if diff < 0 {
			last = middle - 1
		} else if diff > 0 {
			first = middle + 1
		} else {
			return middle
		}
	}
	if first > 0 {
		return first - 1
	}
	return beforeFirst
}
