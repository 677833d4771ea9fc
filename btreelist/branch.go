package btreelist

import (
	"fmt"

	"github.com/lleo/go-functional-collections"
)

// branchNode routes positions to its children by their value counts, which
// it caches in count.
type branchNode[V any] struct {
	children []node[V]
	count    int
}

func newBranchNode[V any](children []node[V], count int) *branchNode[V] {
	return &branchNode[V]{children: children, count: count}
}

func newBranchNodeCounted[V any](children []node[V]) *branchNode[V] {
	return newBranchNode(children, countValues(children))
}

func countValues[V any](children []node[V]) int {
	var n int
	for _, c := range children {
		n += c.valueCount()
	}
	return n
}

func (b *branchNode[V]) valueCount() int {
	return b.count
}

func (b *branchNode[V]) childCount() int {
	return len(b.children)
}

func (b *branchNode[V]) depth() int {
	return 1 + b.children[0].depth()
}

// locate finds the child owning index and the index relative to that child.
func (b *branchNode[V]) locate(index int) (int, int) {
	for i, c := range b.children {
		if index < c.valueCount() {
			return i, index
		}
		index -= c.valueCount()
	}
	shouldNotBeReached("branchNode.locate", index)
	return -1, -1
}

// locateForInsert is locate, except that an insert at the very end goes to
// the last child.
func (b *branchNode[V]) locateForInsert(index int) (int, int) {
	switch index {
	case 0:
		return 0, 0
	case b.count:
		var last = len(b.children) - 1
		return last, b.children[last].valueCount()
	}
	return b.locate(index)
}

func (b *branchNode[V]) get(index int) V {
	var ci, li = b.locate(index)
	return b.children[ci].get(li)
}

func (b *branchNode[V]) assign(index int, value V) node[V] {
	var ci, li = b.locate(index)
	var child = b.children[ci]
	var newChild = child.assign(li, value)
	if newChild == child {
		return b
	}
	return newBranchNode(b.replaced(ci, newChild), b.count)
}

func (b *branchNode[V]) insertAt(index int, value V) insertResult[V] {
	var ci, li = b.locateForInsert(index)
	var res = b.children[ci].insertAt(li, value)

	if res.kind == inPlace {
		return inPlaceResult[V](newBranchNode(b.replaced(ci, res.newNode), b.count+1))
	}

	var nc = make([]node[V], len(b.children)+1)
	copy(nc, b.children[:ci])
	nc[ci] = res.newNode
	nc[ci+1] = res.extraNode
	copy(nc[ci+2:], b.children[ci+1:])

	if len(b.children) < MaxChildren {
		return inPlaceResult[V](newBranchNode(nc, b.count+1))
	}

	var at = splitIndex(index == b.count)
	return splitResult[V](newBranchNodeCounted(nc[:at:at]), newBranchNodeCounted(nc[at:]))
}

func (b *branchNode[V]) delete(index int) node[V] {
	var ci, li = b.locate(index)
	var newCount = b.count - 1
	var newChild = b.children[ci].delete(li)

	switch {
	case newChild == nil:
		if len(b.children) == 1 {
			return nil
		}
		return newBranchNode(b.removed(ci), newCount)

	case newChild.childCount() >= MinChildren || len(b.children) == 1:
		// a root holding a single child is compressed by the List
		return newBranchNode(b.replaced(ci, newChild), newCount)
	}

	var mergeIndex = ci
	var mergeChild, nextChild = newChild, node[V](nil)
	if ci == len(b.children)-1 {
		// the last child merges with its previous sibling
		mergeIndex = ci - 1
		mergeChild, nextChild = b.children[mergeIndex], newChild
	} else {
		nextChild = b.children[ci+1]
	}

	var nc []node[V]
	if mergeChild.childCount()+nextChild.childCount() <= MaxChildren {
		nc = make([]node[V], 0, len(b.children)-1)
		nc = append(nc, b.children[:mergeIndex]...)
		nc = append(nc, mergeChild.mergeChildren(nextChild))
		nc = append(nc, b.children[mergeIndex+2:]...)
	} else {
		var first, second = mergeChild.distributeChildren(nextChild)
		nc = make([]node[V], len(b.children))
		copy(nc, b.children)
		nc[mergeIndex] = first
		nc[mergeIndex+1] = second
	}
	return newBranchNode(nc, newCount)
}

func (b *branchNode[V]) replaced(i int, n node[V]) []node[V] {
	var nc = make([]node[V], len(b.children))
	copy(nc, b.children)
	nc[i] = n
	return nc
}

func (b *branchNode[V]) removed(i int) []node[V] {
	var nc = make([]node[V], 0, len(b.children)-1)
	nc = append(nc, b.children[:i]...)
	return append(nc, b.children[i+1:]...)
}

func (b *branchNode[V]) mergeChildren(sibling node[V]) node[V] {
	var sib = sibling.(*branchNode[V])
	var nc = make([]node[V], 0, len(b.children)+len(sib.children))
	nc = append(nc, b.children...)
	nc = append(nc, sib.children...)
	return newBranchNode(nc, b.count+sib.count)
}

func (b *branchNode[V]) distributeChildren(sibling node[V]) (node[V], node[V]) {
	var all = b.mergeChildren(sibling).(*branchNode[V]).children
	return newBranchNodeCounted(all[:MinChildren:MinChildren]), newBranchNodeCounted(all[MinChildren:])
}

func (b *branchNode[V]) compress() node[V] {
	if len(b.children) == 1 {
		return b.children[0].compress()
	}
	return b
}

func (b *branchNode[V]) forEach(base int, yield func(int, V) bool) bool {
	for _, c := range b.children {
		if !c.forEach(base, yield) {
			return false
		}
		base += c.valueCount()
	}
	return true
}

func (b *branchNode[V]) checkInvariants(isRoot bool) error {
	var n = len(b.children)
	if n == 0 {
		return collections.Invariantf("%s: no children", b)
	}
	if n > MaxChildren {
		return collections.Invariantf("%s: more than %d children", b, MaxChildren)
	}
	if isRoot && n < 2 {
		return collections.Invariantf("%s: root branch was not compressed", b)
	}
	if !isRoot && n < MinChildren {
		return collections.Invariantf("%s: fewer than %d children", b, MinChildren)
	}
	if b.count != countValues(b.children) {
		return collections.Invariantf("%s: children hold %d values", b, countValues(b.children))
	}

	var d = b.children[0].depth()
	for i, c := range b.children {
		if c.depth() != d {
			return collections.Invariantf("%s: child %d has depth %d, want %d", b, i, c.depth(), d)
		}
		if err := c.checkInvariants(false); err != nil {
			return err
		}
	}
	return nil
}

func (b *branchNode[V]) String() string {
	return fmt.Sprintf("branchNode{children:%d, count:%d}", len(b.children), b.count)
}
