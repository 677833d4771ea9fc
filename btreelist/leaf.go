package btreelist

import (
	"fmt"

	"github.com/lleo/go-functional-collections"
	"github.com/lleo/go-functional-collections/internal/equal"
)

// leafNode holds between MinChildren and MaxChildren values in list order;
// only a root leaf may hold fewer.
type leafNode[V any] struct {
	values []V
}

func newLeafNode[V any](values []V) *leafNode[V] {
	return &leafNode[V]{values: values}
}

func (l *leafNode[V]) valueCount() int {
	return len(l.values)
}

func (l *leafNode[V]) childCount() int {
	return len(l.values)
}

func (l *leafNode[V]) depth() int {
	return 1
}

func (l *leafNode[V]) get(index int) V {
	return l.values[index]
}

func (l *leafNode[V]) assign(index int, value V) node[V] {
	if equal.Values(l.values[index], value) {
		return l
	}
	var nv = make([]V, len(l.values))
	copy(nv, l.values)
	nv[index] = value
	return newLeafNode(nv)
}

func (l *leafNode[V]) insertAt(index int, value V) insertResult[V] {
	var nv = make([]V, len(l.values)+1)
	copy(nv, l.values[:index])
	nv[index] = value
	copy(nv[index+1:], l.values[index:])

	if len(l.values) < MaxChildren {
		return inPlaceResult[V](newLeafNode(nv))
	}

	var at = splitIndex(index == len(l.values))
	return splitResult[V](newLeafNode(nv[:at:at]), newLeafNode(nv[at:]))
}

func (l *leafNode[V]) delete(index int) node[V] {
	if len(l.values) == 1 {
		return nil
	}
	var nv = make([]V, len(l.values)-1)
	copy(nv, l.values[:index])
	copy(nv[index:], l.values[index+1:])
	return newLeafNode(nv)
}

func (l *leafNode[V]) mergeChildren(sibling node[V]) node[V] {
	var sib = sibling.(*leafNode[V])
	var nv = make([]V, 0, len(l.values)+len(sib.values))
	nv = append(nv, l.values...)
	nv = append(nv, sib.values...)
	return newLeafNode(nv)
}

func (l *leafNode[V]) distributeChildren(sibling node[V]) (node[V], node[V]) {
	var all = l.mergeChildren(sibling).(*leafNode[V]).values
	return newLeafNode(all[:MinChildren:MinChildren]), newLeafNode(all[MinChildren:])
}

func (l *leafNode[V]) compress() node[V] {
	return l
}

func (l *leafNode[V]) forEach(base int, yield func(int, V) bool) bool {
	for i, v := range l.values {
		if !yield(base+i, v) {
			return false
		}
	}
	return true
}

func (l *leafNode[V]) checkInvariants(isRoot bool) error {
	var n = len(l.values)
	if n == 0 {
		return collections.Invariantf("%s: empty leaf", l)
	}
	if n > MaxChildren {
		return collections.Invariantf("%s: more than %d values", l, MaxChildren)
	}
	if !isRoot && n < MinChildren {
		return collections.Invariantf("%s: fewer than %d values", l, MinChildren)
	}
	return nil
}

func (l *leafNode[V]) String() string {
	return fmt.Sprintf("leafNode{values:%d}", len(l.values))
}
