package trie32

import (
	"fmt"
	"strings"

	"github.com/lleo/go-functional-collections/internal/bitutil"
)

// The compressedTable is the sparse version of a fullTable. It is used for
// every table that has fewer than TableCapacity entries.
//
// It records which table entries are populated using a bit map called nodeMap.
//
// It stores the nodes in a go slice starting with the node corresponding to
// the Least Significant Bit(LSB) of the nodeMap. So the number of entries in
// the nodes slice is equal to the number of bits set in the nodeMap.
//
// To find the node for the idx'th bit we count the bits set in the nodeMap
// below the idx'th bit; that count is the position of the node in the nodes
// slice (see bitutil.RealIndex).
type compressedTable[V any] struct {
	shft    uint
	nodeMap uint32
	nodes   []nodeI[V]
}

// newCompressedTable creates an empty table. It is only ever used as the
// starting point for an insert.
func newCompressedTable[V any](shift uint) *compressedTable[V] {
	var ct = new(compressedTable[V])
	ct.shft = shift
	return ct
}

// wrapTable creates a table one level above t with t as its only entry, at
// idx 0. Every index stored under t has a zero digit at the new level.
func wrapTable[V any](t tableI[V]) *compressedTable[V] {
	var ct = newCompressedTable[V](t.shift() + Nbits)
	ct.nodeMap = 1
	ct.nodes = []nodeI[V]{t}
	return ct
}

// downgradeToCompressedTable() converts a fullTable that lost an entry.
//
// The ents []tableEntry slice is guaranteed to be in order from lowest idx to
// highest. tableI.entries() also adhears to this contract.
func downgradeToCompressedTable[V any](shift uint, ents []tableEntry[V]) *compressedTable[V] {
	var nt = newCompressedTable[V](shift)
	nt.nodes = make([]nodeI[V], len(ents))

	for i, ent := range ents {
		nt.nodeMap |= 1 << ent.idx
		nt.nodes[i] = ent.node
	}

	return nt
}

func (t *compressedTable[V]) shift() uint {
	return t.shft
}

func (t *compressedTable[V]) copyExceptNodes() *compressedTable[V] {
	var nt = new(compressedTable[V])
	nt.shft = t.shft
	nt.nodeMap = t.nodeMap
	return nt
}

func (t *compressedTable[V]) nentries() int {
	return len(t.nodes)
}

// This function MUST return the slice of tableEntry structs from lowest
// tableEntry.idx to highest tableEntry.idx .
func (t *compressedTable[V]) entries() []tableEntry[V] {
	var ents = make([]tableEntry[V], 0, len(t.nodes))
	t.forEach(func(idx uint, n nodeI[V]) bool {
		ents = append(ents, tableEntry[V]{idx, n})
		return true
	})
	return ents
}

func (t *compressedTable[V]) forEach(fn func(idx uint, n nodeI[V]) bool) bool {
	for i, j := uint(0), 0; i < TableCapacity; i++ {
		if t.nodeMap&(1<<i) != 0 {
			if !fn(i, t.nodes[j]) {
				return false
			}
			j++
		}
	}
	return true
}

func (t *compressedTable[V]) get(idx uint) nodeI[V] {
	var nodeBit = uint32(1 << idx)

	if (t.nodeMap & nodeBit) == 0 {
		return nil
	}

	return t.nodes[bitutil.RealIndex(t.nodeMap, nodeBit)]
}

func (t *compressedTable[V]) insert(idx uint, entry nodeI[V]) tableI[V] {
	var nodeBit = uint32(1 << idx)
	var i = bitutil.RealIndex(t.nodeMap, nodeBit)

	var nt = t.copyExceptNodes()
	nt.nodeMap |= nodeBit

	nt.nodes = make([]nodeI[V], len(t.nodes)+1)
	copy(nt.nodes, t.nodes[:i])
	nt.nodes[i] = entry
	copy(nt.nodes[i+1:], t.nodes[i:])

	if len(nt.nodes) == TableCapacity {
		// every slot is taken; promote compressedTable to fullTable
		return upgradeToFullTable(nt.shft, nt.entries())
	}

	return nt
}

func (t *compressedTable[V]) replace(idx uint, entry nodeI[V]) tableI[V] {
	var i = bitutil.RealIndex(t.nodeMap, 1<<idx)

	var nt = t.copyExceptNodes()

	nt.nodes = make([]nodeI[V], len(t.nodes))
	copy(nt.nodes, t.nodes)

	nt.nodes[i] = entry

	return nt
}

func (t *compressedTable[V]) remove(idx uint) tableI[V] {
	var nodeBit = uint32(1 << idx)
	var i = bitutil.RealIndex(t.nodeMap, nodeBit)

	if t.nodeMap&^nodeBit == 0 {
		return nil
	}

	var nt = t.copyExceptNodes()
	nt.nodeMap &^= nodeBit

	nt.nodes = make([]nodeI[V], len(t.nodes)-1)
	copy(nt.nodes, t.nodes[:i])
	copy(nt.nodes[i:], t.nodes[i+1:])

	return nt
}

//String() is required for nodeI
func (t *compressedTable[V]) String() string {
	return fmt.Sprintf("compressedTable{shift:%d, nentries()=%d}", t.shft, t.nentries())
}

// LongString() is required for tableI
func (t *compressedTable[V]) LongString(indent string, recurse bool) string {
	var strs = make([]string, 2+len(t.nodes))

	strs[0] = indent + fmt.Sprintf("compressedTable{shift=%d, nentries()=%d, nodeMap=%s,", t.shft, t.nentries(), bitutil.NodeMapString(t.nodeMap))

	for i, n := range t.nodes {
		if tt, ok := n.(tableI[V]); ok && recurse {
			strs[1+i] = indent + fmt.Sprintf(halfIndent+"t.nodes[%d]:\n%s", i, tt.LongString(indent+fullIndent, recurse))
		} else {
			strs[1+i] = indent + fmt.Sprintf(halfIndent+"t.nodes[%d]: %s", i, n.String())
		}
	}

	strs[len(strs)-1] = indent + "}"

	return strings.Join(strs, "\n")
}
