package trie32

import (
	"fmt"
	"strings"
)

// fullTable is a table with every one of its TableCapacity slots taken, so
// it needs no nodeMap; the idx'th node is simply nodes[idx].
type fullTable[V any] struct {
	shft  uint
	nodes [TableCapacity]nodeI[V]
}

// upgradeToFullTable() builds a fullTable from exactly TableCapacity
// entries.
func upgradeToFullTable[V any](shift uint, tabEnts []tableEntry[V]) tableI[V] {
	var ft = new(fullTable[V])
	ft.shft = shift

	for _, ent := range tabEnts {
		ft.nodes[ent.idx] = ent.node
	}

	return ft
}

func (t *fullTable[V]) shift() uint {
	return t.shft
}

func (t *fullTable[V]) copy() *fullTable[V] {
	var nt = new(fullTable[V])
	*nt = *t
	return nt
}

// String() is required for nodeI
func (t *fullTable[V]) String() string {
	return fmt.Sprintf("fullTable{shift:%d, nentries()=%d}", t.shft, t.nentries())
}

// LongString() is required for tableI
func (t *fullTable[V]) LongString(indent string, recurse bool) string {
	var strs = make([]string, 2+len(t.nodes))

	strs[0] = indent + fmt.Sprintf("fullTable{shift=%d, nentries()=%d,", t.shft, t.nentries())

	for i, n := range t.nodes {
		if tt, ok := n.(tableI[V]); ok && recurse {
			strs[1+i] = indent + fmt.Sprintf(halfIndent+"t.nodes[%d]:\n%s", i, tt.LongString(indent+fullIndent, recurse))
		} else {
			strs[1+i] = indent + fmt.Sprintf(halfIndent+"t.nodes[%d]: %s", i, n)
		}
	}

	strs[len(strs)-1] = indent + "}"

	return strings.Join(strs, "\n")
}

func (t *fullTable[V]) nentries() int {
	return TableCapacity
}

func (t *fullTable[V]) entries() []tableEntry[V] {
	var ents = make([]tableEntry[V], TableCapacity)
	for i := range t.nodes {
		ents[i] = tableEntry[V]{uint(i), t.nodes[i]}
	}
	return ents
}

func (t *fullTable[V]) forEach(fn func(idx uint, n nodeI[V]) bool) bool {
	for i := range t.nodes {
		if !fn(uint(i), t.nodes[i]) {
			return false
		}
	}
	return true
}

func (t *fullTable[V]) get(idx uint) nodeI[V] {
	return t.nodes[idx]
}

// A fullTable has no free slot, so insert is only reached by a routing bug.
func (t *fullTable[V]) insert(idx uint, entry nodeI[V]) tableI[V] {
	shouldNotBeReached("fullTable.insert", idx)
	return nil
}

func (t *fullTable[V]) replace(idx uint, entry nodeI[V]) tableI[V] {
	var nt = t.copy()
	nt.nodes[idx] = entry
	return nt
}

// remove always demotes the table; a fullTable can not have an empty slot.
func (t *fullTable[V]) remove(idx uint) tableI[V] {
	var ents = make([]tableEntry[V], 0, TableCapacity-1)
	for i := range t.nodes {
		if uint(i) != idx {
			ents = append(ents, tableEntry[V]{uint(i), t.nodes[i]})
		}
	}
	return downgradeToCompressedTable(t.shft, ents)
}
