package trie32_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lleo/go-functional-collections/trie32"
)

func TestArrayZeroValue(t *testing.T) {
	var a trie32.Array[string]

	require.True(t, a.IsEmpty())
	require.Equal(t, 0, a.Size())
	require.NoError(t, a.CheckInvariants())

	var _, found = a.Get(0)
	require.False(t, found)
	require.Equal(t, "none", a.GetValueOr(1<<31, "none"))

	require.Equal(t, a, a.Delete(7))
}

func TestArrayFullTableThenSparse(t *testing.T) {
	var a trie32.Array[int]
	for i := uint32(0); i < trie32.TableCapacity; i++ {
		a = a.Assign(i, int(i)*10)
		require.NoError(t, a.CheckInvariants(), "after Assign(%d)", i)
	}
	require.Equal(t, trie32.TableCapacity, a.Size())

	for i := uint32(0); i < trie32.TableCapacity; i++ {
		var v, found = a.Get(i)
		require.True(t, found)
		require.Equal(t, int(i)*10, v)
	}

	var full = a
	var sparse = a.Delete(15)
	require.NoError(t, sparse.CheckInvariants())
	require.Equal(t, trie32.TableCapacity-1, sparse.Size())

	var _, found = sparse.Get(15)
	assert.False(t, found)
	assert.Equal(t, 140, sparse.GetValueOr(14, -1))
	assert.Equal(t, 160, sparse.GetValueOr(16, -1))

	// the older version is untouched
	assert.Equal(t, 150, full.GetValueOr(15, -1))
	assert.Equal(t, trie32.TableCapacity, full.Size())
}

func TestArrayAssignSameValueIsIdentity(t *testing.T) {
	var a = trie32.Array[string]{}.Assign(3, "three").Assign(1000000, "million")

	require.Equal(t, a, a.Assign(3, "three"))
	require.Equal(t, a, a.Assign(1000000, "million"))
	require.Equal(t, a, a.Delete(4))
	require.Equal(t, a, a.Delete(1<<30))

	var b = a.Assign(3, "THREE")
	require.NotEqual(t, a, b)
	require.Equal(t, a.Size(), b.Size())
	require.Equal(t, "three", a.GetValueOr(3, ""))
	require.Equal(t, "THREE", b.GetValueOr(3, ""))
}

func TestArrayPadAndTrim(t *testing.T) {
	var a = trie32.Array[int]{}.Assign(1, 1)
	var big = a.Assign(0xFFFFFFFF, 2)
	require.NoError(t, big.CheckInvariants())
	require.Equal(t, 2, big.Size())
	require.Equal(t, 2, big.GetValueOr(0xFFFFFFFF, 0))
	require.Equal(t, 1, big.GetValueOr(1, 0))

	var trimmed = big.Delete(0xFFFFFFFF)
	require.NoError(t, trimmed.CheckInvariants())
	require.Equal(t, 1, trimmed.Size())
	require.Equal(t, 1, trimmed.GetValueOr(1, 0))
	require.Equal(t, a.String(), trimmed.String())
}

func TestArrayDeleteAllIsEmpty(t *testing.T) {
	var r = rand.New(rand.NewSource(42))
	var idxs = make([]uint32, 2000)
	var a trie32.Array[uint32]
	for i := range idxs {
		idxs[i] = r.Uint32() >> uint(r.Intn(32))
		a = a.Assign(idxs[i], idxs[i])
	}
	require.NoError(t, a.CheckInvariants())

	r.Shuffle(len(idxs), func(i, j int) { idxs[i], idxs[j] = idxs[j], idxs[i] })
	for n, i := range idxs {
		a = a.Delete(i)
		if n%97 == 0 {
			require.NoError(t, a.CheckInvariants(), "after Delete(%d)", i)
		}
	}

	require.True(t, a.IsEmpty())
	require.Equal(t, trie32.Array[uint32]{}, a)
}

func TestArrayRandomOpsAgainstMap(t *testing.T) {
	var r = rand.New(rand.NewSource(7))
	var oracle = make(map[uint32]int)
	var a trie32.Array[int]

	for n := 0; n < 20000; n++ {
		var idx = uint32(r.Intn(4096))
		if r.Intn(3) == 0 {
			delete(oracle, idx)
			a = a.Delete(idx)
		} else {
			oracle[idx] = n
			a = a.Assign(idx, n)
		}
	}

	require.NoError(t, a.CheckInvariants())
	require.Equal(t, len(oracle), a.Size())

	var prev = -1
	for idx, v := range a.All() {
		require.Greater(t, int(idx), prev, "All() must be ascending")
		prev = int(idx)
		require.Equal(t, oracle[idx], v)
	}

	var count int
	for idx := range a.Indices() {
		_, ok := oracle[idx]
		require.True(t, ok)
		count++
	}
	require.Equal(t, len(oracle), count)
}

func TestArrayIteratorsStopEarly(t *testing.T) {
	var a trie32.Array[int]
	for i := uint32(0); i < 100; i++ {
		a = a.Assign(i*37, int(i))
	}

	var seen []int
	for v := range a.Values() {
		seen = append(seen, v)
		if len(seen) == 5 {
			break
		}
	}
	require.Equal(t, []int{0, 1, 2, 3, 4}, seen)

	var ents = a.Entries()
	require.Len(t, ents, 100)
	require.Equal(t, uint32(99*37), ents[99].Key)
}

func TestArrayLongString(t *testing.T) {
	var a = trie32.Array[int]{}.Assign(5, 5).Assign(40, 40)
	var s = a.LongString("")
	require.Contains(t, s, "compressedTable{shift=5")
	require.Contains(t, s, "leaf{index:40, value:40}")
	require.Contains(t, trie32.Array[int]{}.LongString(""), "root: nil")
}

func BenchmarkArrayAssign(b *testing.B) {
	var a trie32.Array[int]
	for i := 0; i < b.N; i++ {
		a = a.Assign(uint32(i), i)
	}
}

func BenchmarkArrayGet(b *testing.B) {
	var a trie32.Array[int]
	for i := 0; i < 1<<16; i++ {
		a = a.Assign(uint32(i), i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = a.Get(uint32(i & 0xffff))
	}
}
