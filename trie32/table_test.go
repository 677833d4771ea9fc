package trie32

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootPromotesToFullThenDemotes(t *testing.T) {
	var a Array[int]
	for i := uint32(0); i < TableCapacity; i++ {
		a = a.Assign(i, int(i))
		if i < TableCapacity-1 {
			var _, ok = a.root.(*compressedTable[int])
			require.True(t, ok, "after Assign(%d) root is %T", i, a.root)
		}
	}

	var full, ok = a.root.(*fullTable[int])
	require.True(t, ok, "root is %T", a.root)
	require.Equal(t, uint(0), full.shift())

	var b = a.Delete(15)
	var sparse, ok2 = b.root.(*compressedTable[int])
	require.True(t, ok2, "root is %T", b.root)
	require.Equal(t, uint(0), sparse.shift())
	require.Equal(t, int(TableCapacity-1), sparse.nentries())
	require.Equal(t, int(TableCapacity-1), b.Size())

	// the older version still holds its full table
	require.True(t, a.root == tableI[int](full))
}

func TestAssignSameValueKeepsRoot(t *testing.T) {
	var a Array[string]
	for i := uint32(0); i < 2000; i += 7 {
		a = a.Assign(i, "v")
	}

	require.True(t, a.Assign(700, "v").root == a.root)
	require.True(t, a.Delete(701).root == a.root)

	// a rebuilt path holding the same content is not the same version
	var rebuilt = a.Assign(700, "w").Assign(700, "v")
	require.Equal(t, a.Entries(), rebuilt.Entries())
	require.False(t, rebuilt.root == a.root)
}
