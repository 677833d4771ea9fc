package hamt32

import (
	"fmt"
	"strings"

	"github.com/lleo/go-functional-collections/internal/bitutil"
)

// node is one level of the trie. Every node may hold a bucket of its own
// (it is filled) and a set of children.
//
// A key is routed from the root by consuming Nbits of its hash at each
// level: the low Nbits select the child and the rest of the hash is passed
// down. The node reached once the remaining hash is 0 holds the key in its
// bucket. So keys with equal hashes share a bucket, and the bucket is where
// collisions are resolved.
//
// children is compacted: it holds one entry for each bit set in bitmask, in
// ascending bit order, so the child for idx is
// children[bitutil.RealIndex(bitmask, 1<<idx)].
//
// Nodes are never modified once built.
type node[K, V any] struct {
	bitmask  uint32
	filled   bool
	value    bucket[K, V]
	children []*node[K, V]
}

func (n *node[K, V]) isEmpty() bool {
	return !n.filled && len(n.children) == 0
}

func (n *node[K, V]) child(idx uint) *node[K, V] {
	var bit = uint32(1 << idx)
	if n.bitmask&bit == 0 {
		return nil
	}
	return n.children[bitutil.RealIndex(n.bitmask, bit)]
}

// withValue returns a copy of n holding b as its bucket; a nil b leaves the
// copy unfilled. It returns nil when the copy would be empty.
func (n *node[K, V]) withValue(b bucket[K, V]) *node[K, V] {
	var nn = &node[K, V]{bitmask: n.bitmask, children: n.children}
	if b != nil {
		nn.filled = true
		nn.value = b
	}
	if nn.isEmpty() {
		return nil
	}
	return nn
}

// withChild returns a copy of n with c stored at idx, inserting or
// replacing it. A nil c removes idx; then nil is returned if the copy would
// be empty.
func (n *node[K, V]) withChild(idx uint, c *node[K, V]) *node[K, V] {
	var bit = uint32(1 << idx)
	var i = bitutil.RealIndex(n.bitmask, bit)
	var present = n.bitmask&bit != 0

	var nn = &node[K, V]{bitmask: n.bitmask, filled: n.filled, value: n.value}

	switch {
	case c == nil && !present:
		return n
	case c == nil:
		nn.bitmask &^= bit
		nn.children = make([]*node[K, V], len(n.children)-1)
		copy(nn.children, n.children[:i])
		copy(nn.children[i:], n.children[i+1:])
		if nn.isEmpty() {
			return nil
		}
	case present:
		nn.children = make([]*node[K, V], len(n.children))
		copy(nn.children, n.children)
		nn.children[i] = c
	default:
		nn.bitmask |= bit
		nn.children = make([]*node[K, V], len(n.children)+1)
		copy(nn.children, n.children[:i])
		nn.children[i] = c
		copy(nn.children[i+1:], n.children[i:])
	}

	return nn
}

// newChain builds the nodes below an absent child for a key whose hash has
// remaining left to consume; the last node of the chain holds b.
func newChain[K, V any](remaining uint32, b bucket[K, V]) *node[K, V] {
	if remaining == 0 {
		return &node[K, V]{filled: true, value: b}
	}
	var idx = uint(remaining & digitMask)
	return &node[K, V]{
		bitmask:  1 << idx,
		children: []*node[K, V]{newChain(remaining>>Nbits, b)},
	}
}

// forEach visits the node's own entries, then its children in bit order.
func (n *node[K, V]) forEach(yield func(K, V) bool) bool {
	if n.filled && !n.value.forEach(yield) {
		return false
	}
	for _, c := range n.children {
		if !c.forEach(yield) {
			return false
		}
	}
	return true
}

func (n *node[K, V]) String() string {
	return fmt.Sprintf("node{bitmask:%s, filled:%t, children:%d}", bitutil.NodeMapString(n.bitmask), n.filled, len(n.children))
}

func (n *node[K, V]) LongString(indent string, depth uint) string {
	var strs = make([]string, 0, 3+len(n.children))

	strs = append(strs, indent+fmt.Sprintf("node{depth=%d, bitmask=%s,", depth, bitutil.NodeMapString(n.bitmask)))
	if n.filled {
		strs = append(strs, indent+halfIndent+"value: "+n.value.String())
	}
	for i, c := range n.children {
		strs = append(strs, indent+fmt.Sprintf(halfIndent+"n.children[%d]:\n%s", i, c.LongString(indent+fullIndent, depth+1)))
	}
	strs = append(strs, indent+"}")

	return strings.Join(strs, "\n")
}
