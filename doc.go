/*
Package collections holds the types shared by the persistent data structures
of this module. Persistent is defined as immutable and structurally shared:
every Assign, Insert or Delete returns a new version of the structure and
leaves every older version exactly as it was. Only the nodes on the path from
the root to the changed leaf are copied; every other subtree is shared by
reference between the old and the new version.

The structures live in their own packages:

	trie32     a 32 way trie indexed by a dense uint32 index (Array)
	btreelist  an order statistics B-tree indexed by position (List)
	btreemap   a B-tree sorted by a Comparer (Map)
	hamt32     a Hash Array Mapped Trie with pluggable collision handling (Map)

The zero value of every structure is a valid empty structure, and deleting
every element of a structure yields that zero value again (for the maps, the
zero value of the same hasher/comparer lineage).

Once built, a version is never written to again, so any number of goroutines
may read it concurrently without locking. Deciding which version is the
"current" one is left to the caller.
*/
package collections
