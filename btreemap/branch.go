package btreemap

import (
	"fmt"

	"github.com/lleo/go-functional-collections"
)

// branchNode routes keys to its children by their base keys. The branch's
// own base key is that of its first child.
type branchNode[K, V any] struct {
	children []node[K, V]
	base     K
}

func newBranchNode[K, V any](children []node[K, V]) *branchNode[K, V] {
	return &branchNode[K, V]{children: children, base: children[0].baseKey()}
}

func (b *branchNode[K, V]) baseKey() K {
	return b.base
}

func (b *branchNode[K, V]) lastKey() K {
	return b.children[len(b.children)-1].lastKey()
}

func (b *branchNode[K, V]) childCount() int {
	return len(b.children)
}

func (b *branchNode[K, V]) valueCount() int {
	var n int
	for _, c := range b.children {
		n += c.valueCount()
	}
	return n
}

func (b *branchNode[K, V]) depth() int {
	return 1 + b.children[0].depth()
}

func (b *branchNode[K, V]) find(cmp collections.Comparer[K], key K) (V, bool) {
	var i = findChildIndex(cmp, key, b.children, beforeFirstForFind)
	if i < 0 {
		var zero V
		return zero, false
	}
	return b.children[i].find(cmp, key)
}

func (b *branchNode[K, V]) assign(cmp collections.Comparer[K], key K, value V) updateResult[K, V] {
	var i = findChildIndex(cmp, key, b.children, beforeFirstForAssign)
	var res = b.children[i].assign(cmp, key, value)

	switch res.kind {
	case unchanged:
		return res
	case inPlace:
		var nc = make([]node[K, V], len(b.children))
		copy(nc, b.children)
		nc[i] = res.newNode
		return inPlaceResult[K, V](newBranchNode(nc), res.delta)
	case split:
		var nc = make([]node[K, V], len(b.children)+1)
		copy(nc, b.children[:i])
		nc[i] = res.newNode
		nc[i+1] = res.extraNode
		copy(nc[i+2:], b.children[i+1:])
		if len(nc) <= MaxChildren {
			return inPlaceResult[K, V](newBranchNode(nc), res.delta)
		}
		return splitResult[K, V](newBranchNode(nc[:MinChildren:MinChildren]), newBranchNode(nc[MinChildren:]), res.delta)
	}

	shouldNotBeReached("branchNode.assign: unknown updateResult kind", i)
	return res
}

func (b *branchNode[K, V]) delete(cmp collections.Comparer[K], key K) node[K, V] {
	var i = findChildIndex(cmp, key, b.children, beforeFirstForFind)
	if i < 0 {
		return b
	}
	var child = b.children[i]
	var newChild = child.delete(cmp, key)
	if newChild == child {
		return b
	}

	switch {
	case newChild == nil:
		if len(b.children) == 1 {
			return nil
		}
		var nc = make([]node[K, V], 0, len(b.children)-1)
		nc = append(nc, b.children[:i]...)
		nc = append(nc, b.children[i+1:]...)
		return newBranchNode(nc)

	case newChild.childCount() >= MinChildren || len(b.children) == 1:
		// a root holding a single child is compressed by the Map
		var nc = make([]node[K, V], len(b.children))
		copy(nc, b.children)
		nc[i] = newChild
		return newBranchNode(nc)
	}

	var mergeIndex = i
	var mergeChild, nextChild node[K, V]
	if i == len(b.children)-1 {
		// the last child merges with its previous sibling
		mergeIndex = i - 1
		mergeChild, nextChild = b.children[mergeIndex], newChild
	} else {
		mergeChild, nextChild = newChild, b.children[i+1]
	}

	var nc []node[K, V]
	if mergeChild.childCount()+nextChild.childCount() <= MaxChildren {
		nc = make([]node[K, V], 0, len(b.children)-1)
		nc = append(nc, b.children[:mergeIndex]...)
		nc = append(nc, mergeChild.mergeChildren(nextChild))
		nc = append(nc, b.children[mergeIndex+2:]...)
	} else {
		var first, second = mergeChild.distributeChildren(nextChild)
		nc = make([]node[K, V], len(b.children))
		copy(nc, b.children)
		nc[mergeIndex] = first
		nc[mergeIndex+1] = second
	}
	return newBranchNode(nc)
}

func (b *branchNode[K, V]) mergeChildren(sibling node[K, V]) node[K, V] {
	var sib = sibling.(*branchNode[K, V])
	var nc = make([]node[K, V], 0, len(b.children)+len(sib.children))
	nc = append(nc, b.children...)
	nc = append(nc, sib.children...)
	return newBranchNode(nc)
}

func (b *branchNode[K, V]) distributeChildren(sibling node[K, V]) (node[K, V], node[K, V]) {
	var all = b.mergeChildren(sibling).(*branchNode[K, V]).children
	return newBranchNode(all[:MinChildren:MinChildren]), newBranchNode(all[MinChildren:])
}

func (b *branchNode[K, V]) compress() node[K, V] {
	if len(b.children) == 1 {
		return b.children[0].compress()
	}
	return b
}

func (b *branchNode[K, V]) forEach(yield func(K, V) bool) bool {
	for _, c := range b.children {
		if !c.forEach(yield) {
			return false
		}
	}
	return true
}

func (b *branchNode[K, V]) checkInvariants(cmp collections.Comparer[K], isRoot bool) error {
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
	if cmp.Compare(b.base, b.children[0].baseKey()) != 0 {
		return collections.Invariantf("%s: stale base key %v", b, b.base)
	}

	var d = b.children[0].depth()
	for i, c := range b.children {
		if c.depth() != d {
			return collections.Invariantf("%s: child %d has depth %d, want %d", b, i, c.depth(), d)
		}
		if i > 0 {
			var prev = b.children[i-1]
			if cmp.Compare(prev.baseKey(), c.baseKey()) >= 0 {
				return collections.Invariantf("%s: base key %v of child %d not after %v", b, c.baseKey(), i, prev.baseKey())
			}
			if cmp.Compare(prev.lastKey(), c.baseKey()) >= 0 {
				return collections.Invariantf("%s: child %d overlaps child %d", b, i-1, i)
			}
		}
		if err := c.checkInvariants(cmp, false); err != nil {
			return err
		}
	}
	return nil
}

func (b *branchNode[K, V]) String() string {
	return fmt.Sprintf("branchNode{children:%d, base:%v}", len(b.children), b.base)
}
