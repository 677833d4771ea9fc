package btreelist

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssignSameValueKeepsRoot(t *testing.T) {
	var l List[int]
	for i := 0; i < 500; i++ {
		l = l.Append(i)
	}
	require.Greater(t, l.Depth(), 1)

	var same, err = l.Assign(250, 250)
	require.NoError(t, err)
	require.True(t, same.root == l.root)

	// a rebuilt path holding the same content is not the same version
	var changed, _ = l.Assign(250, -250)
	var rebuilt, _ = changed.Assign(250, 250)
	require.Equal(t, l.Slice(), rebuilt.Slice())
	require.False(t, rebuilt.root == l.root)
}

func TestAssignSharesUntouchedChildren(t *testing.T) {
	var l List[int]
	for i := 0; i < 500; i++ {
		l = l.Append(i)
	}
	var changed, err = l.Assign(0, -1)
	require.NoError(t, err)

	var before, ok = l.root.(*branchNode[int])
	require.True(t, ok, "root is %T", l.root)
	var after = changed.root.(*branchNode[int])
	require.Len(t, after.children, len(before.children))
	require.False(t, after.children[0] == before.children[0])
	for i := 1; i < len(before.children); i++ {
		require.True(t, after.children[i] == before.children[i], "child %d was copied", i)
	}
}
