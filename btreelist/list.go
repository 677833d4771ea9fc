/*
Package btreelist implements a persistent list indexed by position, stored
in an order statistics B-tree. Every branch caches the number of values
below it, so Get, Assign, Insert and Delete at any position are all
O(log n), and Insert shifts every later position up by one.

Every node other than the root holds between MinChildren and MaxChildren
children (values in a leaf, nodes in a branch) and every leaf is at the
same depth.
*/
package btreelist

import (
	"fmt"
	"iter"

	"go.uber.org/zap"

	"github.com/lleo/go-functional-collections"
	"github.com/lleo/go-functional-collections/internal/logutil"
)

// MinChildren is the fewest children a non root node may hold.
const MinChildren = 9

// MaxChildren is the most children any node may hold.
const MaxChildren = 2 * MinChildren

// List is a persistent list. The zero value is an empty List, and deleting
// every position of a List yields the zero value again.
type List[V any] struct {
	root node[V]
}

func shouldNotBeReached(where string, index int) {
	logutil.BgLogger().Panic("SHOULD NOT BE REACHED", zap.String("where", where), zap.Int("index", index))
}

// Size returns the number of values in the list.
func (l List[V]) Size() int {
	if l.root == nil {
		return 0
	}
	return l.root.valueCount()
}

func (l List[V]) IsEmpty() bool {
	return l.root == nil
}

// Depth returns the number of levels in the tree; 0 for an empty List.
func (l List[V]) Depth() int {
	if l.root == nil {
		return 0
	}
	return l.root.depth()
}

// Get returns the value at position index, or an error wrapping
// collections.ErrIndexOutOfBounds.
func (l List[V]) Get(index int) (V, error) {
	if index < 0 || index >= l.Size() {
		var zero V
		return zero, collections.OutOfBounds(index, l.Size())
	}
	return l.root.get(index), nil
}

// Assign replaces the value at position index. When that position already
// holds value the receiver itself is returned.
func (l List[V]) Assign(index int, value V) (List[V], error) {
	if index < 0 || index >= l.Size() {
		return l, collections.OutOfBounds(index, l.Size())
	}
	var newRoot = l.root.assign(index, value)
	if newRoot == l.root {
		return l, nil
	}
	return List[V]{newRoot}, nil
}

// Insert places value at position index, moving the value previously there
// and every later value up one position. index may be Size(), which
// appends.
func (l List[V]) Insert(index int, value V) (List[V], error) {
	if index < 0 || index > l.Size() {
		return l, collections.OutOfBounds(index, l.Size())
	}
	return l.insert(index, value), nil
}

// Append adds value after the last position.
func (l List[V]) Append(value V) List[V] {
	return l.insert(l.Size(), value)
}

// Prepend adds value before the first position.
func (l List[V]) Prepend(value V) List[V] {
	return l.insert(0, value)
}

func (l List[V]) insert(index int, value V) List[V] {
	if l.root == nil {
		return List[V]{newLeafNode([]V{value})}
	}

	var res = l.root.insertAt(index, value)
	if res.kind == split {
		var children = []node[V]{res.newNode, res.extraNode}
		return List[V]{newBranchNode(children, l.root.valueCount()+1)}
	}
	return List[V]{res.newNode}
}

// Delete removes the value at position index, moving every later value down
// one position.
func (l List[V]) Delete(index int) (List[V], error) {
	if index < 0 || index >= l.Size() {
		return l, collections.OutOfBounds(index, l.Size())
	}
	var newRoot = l.root.delete(index)
	if newRoot == nil {
		return List[V]{}, nil
	}
	return List[V]{newRoot.compress()}, nil
}

// All returns an iterator over the positions and values in list order.
func (l List[V]) All() iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		if l.root != nil {
			l.root.forEach(0, yield)
		}
	}
}

// Values returns an iterator over the values in list order.
func (l List[V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range l.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Slice copies the values into a new slice.
func (l List[V]) Slice() []V {
	var s = make([]V, 0, l.Size())
	for v := range l.Values() {
		s = append(s, v)
	}
	return s
}

// CheckInvariants verifies the node fan-out bounds, the cached value counts
// and that every leaf is at the same depth. It returns an error wrapping
// collections.ErrInvariant for the first violation found.
func (l List[V]) CheckInvariants() error {
	if l.root == nil {
		return nil
	}
	return l.root.checkInvariants(true)
}

func (l List[V]) String() string {
	return fmt.Sprintf("List{ size: %d, depth: %d }", l.Size(), l.Depth())
}
