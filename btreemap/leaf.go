package btreemap

import (
	"fmt"

	"github.com/lleo/go-functional-collections"
	"github.com/lleo/go-functional-collections/internal/equal"
)

// leafNode holds its entries sorted by key.
type leafNode[K, V any] struct {
	entries []collections.Entry[K, V]
}

func newLeafNode[K, V any](ents []collections.Entry[K, V]) *leafNode[K, V] {
	return &leafNode[K, V]{entries: ents}
}

// search returns the position of key in the entries, or the position key
// would be inserted at; and whether key was found.
func (l *leafNode[K, V]) search(cmp collections.Comparer[K], key K) (int, bool) {
	var lo, hi = 0, len(l.entries)
	for lo < hi {
		var mid = int(uint(lo+hi) >> 1)
		var diff = cmp.Compare(key, l.entries[mid].Key)
		if diff == 0 {
			return mid, true
		}
		if diff < 0 {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo, false
}

func (l *leafNode[K, V]) baseKey() K {
	return l.entries[0].Key
}

func (l *leafNode[K, V]) lastKey() K {
	return l.entries[len(l.entries)-1].Key
}

func (l *leafNode[K, V]) childCount() int {
	return len(l.entries)
}

func (l *leafNode[K, V]) valueCount() int {
	return len(l.entries)
}

func (l *leafNode[K, V]) depth() int {
	return 1
}

func (l *leafNode[K, V]) find(cmp collections.Comparer[K], key K) (V, bool) {
	var i, found = l.search(cmp, key)
	if !found {
		var zero V
		return zero, false
	}
	return l.entries[i].Value, true
}

func (l *leafNode[K, V]) assign(cmp collections.Comparer[K], key K, value V) updateResult[K, V] {
	var i, found = l.search(cmp, key)
	if found {
		if equal.Values(l.entries[i].Value, value) {
			return unchangedResult[K, V]()
		}
		var ne = make([]collections.Entry[K, V], len(l.entries))
		copy(ne, l.entries)
		ne[i] = collections.NewEntry(key, value)
		return inPlaceResult[K, V](newLeafNode(ne), 0)
	}

	var ne = make([]collections.Entry[K, V], len(l.entries)+1)
	copy(ne, l.entries[:i])
	ne[i] = collections.NewEntry(key, value)
	copy(ne[i+1:], l.entries[i:])

	if len(ne) <= MaxChildren {
		return inPlaceResult[K, V](newLeafNode(ne), 1)
	}
	return splitResult[K, V](newLeafNode(ne[:MinChildren:MinChildren]), newLeafNode(ne[MinChildren:]), 1)
}

func (l *leafNode[K, V]) delete(cmp collections.Comparer[K], key K) node[K, V] {
	var i, found = l.search(cmp, key)
	if !found {
		return l
	}
	if len(l.entries) == 1 {
		return nil
	}
	var ne = make([]collections.Entry[K, V], 0, len(l.entries)-1)
	ne = append(ne, l.entries[:i]...)
	ne = append(ne, l.entries[i+1:]...)
	return newLeafNode(ne)
}

func (l *leafNode[K, V]) mergeChildren(sibling node[K, V]) node[K, V] {
	var sib = sibling.(*leafNode[K, V])
	var ne = make([]collections.Entry[K, V], 0, len(l.entries)+len(sib.entries))
	ne = append(ne, l.entries...)
	ne = append(ne, sib.entries...)
	return newLeafNode(ne)
}

func (l *leafNode[K, V]) distributeChildren(sibling node[K, V]) (node[K, V], node[K, V]) {
	var all = l.mergeChildren(sibling).(*leafNode[K, V]).entries
	return newLeafNode(all[:MinChildren:MinChildren]), newLeafNode(all[MinChildren:])
}

func (l *leafNode[K, V]) compress() node[K, V] {
	return l
}

func (l *leafNode[K, V]) forEach(yield func(K, V) bool) bool {
	for _, e := range l.entries {
		if !yield(e.Key, e.Value) {
			return false
		}
	}
	return true
}

func (l *leafNode[K, V]) checkInvariants(cmp collections.Comparer[K], isRoot bool) error {
	var n = len(l.entries)
	if n == 0 {
		return collections.Invariantf("%s: empty leaf", l)
	}
	if n > MaxChildren {
		return collections.Invariantf("%s: more than %d entries", l, MaxChildren)
	}
	if !isRoot && n < MinChildren {
		return collections.Invariantf("%s: fewer than %d entries", l, MinChildren)
	}
	for i := 1; i < n; i++ {
		if cmp.Compare(l.entries[i-1].Key, l.entries[i].Key) >= 0 {
			return collections.Invariantf("%s: key %v not after %v", l, l.entries[i].Key, l.entries[i-1].Key)
		}
	}
	return nil
}

func (l *leafNode[K, V]) String() string {
	return fmt.Sprintf("leafNode{entries:%d}", len(l.entries))
}
