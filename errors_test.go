package collections_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	collections "github.com/lleo/go-functional-collections"
)

func TestOutOfBounds(t *testing.T) {
	var err = collections.OutOfBounds(5, 3)
	require.ErrorIs(t, err, collections.ErrIndexOutOfBounds)
	require.Equal(t, collections.ErrIndexOutOfBounds, errors.Cause(err))
	require.Contains(t, err.Error(), "index 5, size 3")
}

func TestInvariantf(t *testing.T) {
	var err = collections.Invariantf("node %d has %d children", 4, 1)
	require.ErrorIs(t, err, collections.ErrInvariant)
	require.NotErrorIs(t, err, collections.ErrIndexOutOfBounds)
	require.Equal(t, "node 4 has 1 children: invariant violation", err.Error())
}
