package trie32

// nodeI is the interface for every entry in a table; so table entries are
// either a leaf or a table or nil.
//
// The nodeI interface can be for compressedTable, fullTable, or leaf.
//
// The tableI interface is for compressedTable and fullTable.
type nodeI[V any] interface {
	String() string
}

// Every tableI is a nodeI.
//
// Tables are never modified once built. insert, replace and remove return a
// new table and leave the receiver as it was.
type tableI[V any] interface {
	nodeI[V]

	LongString(indent string, recurse bool) string

	// shift is the number of low index bits below this table; the index
	// digit this table routes on is (index >> shift) & 0x1f.
	shift() uint

	nentries() int // get the number of nodeI entries

	// Get an Ordered list of index and node pairs. This slice MUST BE Ordered
	// from lowest index to highest.
	entries() []tableEntry[V]

	// forEach visits the entries from lowest idx to highest until fn
	// returns false. It reports whether every entry was visited.
	forEach(fn func(idx uint, n nodeI[V]) bool) bool

	get(idx uint) nodeI[V]

	insert(idx uint, entry nodeI[V]) tableI[V]
	replace(idx uint, entry nodeI[V]) tableI[V]
	// remove returns nil when the last entry is removed.
	remove(idx uint) tableI[V]
}

type tableEntry[V any] struct {
	idx  uint
	node nodeI[V]
}
