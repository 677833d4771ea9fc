package hamt32_test

import (
	"math/rand"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lleo/go-functional-collections"
	"github.com/lleo/go-functional-collections/hamt32"
)

// constHasher sends every key to the same bucket.
type constHasher struct {
	hash uint32
}

func (h constHasher) Hash(string) uint32 {
	return h.hash
}

func (constHasher) Equal(a, b string) bool {
	return a == b
}

// modHasher collides every key whose length agrees modulo n.
type modHasher struct {
	n uint32
}

func (h modHasher) Hash(k string) uint32 {
	return uint32(len(k)) % h.n
}

func (modHasher) Equal(a, b string) bool {
	return a == b
}

type point struct {
	x, y int
}

func TestMapZeroValue(t *testing.T) {
	var m hamt32.Map[string, int]
	require.True(t, m.IsEmpty())
	require.Equal(t, hamt32.Unselected, m.Strategy())
	require.NoError(t, m.CheckInvariants())

	var _, found = m.Get("a")
	require.False(t, found)
	require.Equal(t, 7, m.GetValueOr("a", 7))
	require.Equal(t, m, m.Delete("a"))

	var m2 = m.Assign("a", 1)
	require.Equal(t, hamt32.TreeCollisions, m2.Strategy())
	require.Equal(t, 1, m2.GetValueOr("a", 0))
	require.Equal(t, hamt32.Unselected, m.Strategy())
}

func TestMapStrategySelection(t *testing.T) {
	var ints = hamt32.New[int, int](nil).Assign(1, 1)
	assert.Equal(t, hamt32.TreeCollisions, ints.Strategy())

	var points = hamt32.New[point, int](nil).Assign(point{1, 2}, 3)
	assert.Equal(t, hamt32.ListCollisions, points.Strategy())
	assert.Equal(t, 3, points.GetValueOr(point{1, 2}, 0))

	var list = hamt32.UsingList[string, int](nil).Assign("x", 1)
	assert.Equal(t, hamt32.ListCollisions, list.Strategy())

	var tree = hamt32.UsingTree[point, int](nil, pointComparer{}).Assign(point{0, 0}, 1)
	assert.Equal(t, hamt32.TreeCollisions, tree.Strategy())

	// the strategy survives deleting everything
	assert.Equal(t, hamt32.ListCollisions, list.Delete("x").Strategy())
	assert.Equal(t, hamt32.UsingList[string, int](nil).Assign("x", 1).Delete("x"), list.Delete("x"))
}

type pointComparer struct{}

func (pointComparer) Compare(a, b point) int {
	if a.x != b.x {
		return a.x - b.x
	}
	return a.y - b.y
}

func testCollisions(t *testing.T, m hamt32.Map[string, int]) {
	m = m.Assign("a", 1).Assign("b", 2).Assign("c", 3)
	require.NoError(t, m.CheckInvariants())
	require.Equal(t, 3, m.Size())
	for k, v := range map[string]int{"a": 1, "b": 2, "c": 3} {
		var got, found = m.Get(k)
		require.True(t, found, "key %s", k)
		require.Equal(t, v, got)
	}

	var m2 = m.Delete("b")
	require.NoError(t, m2.CheckInvariants())
	require.Equal(t, 2, m2.Size())
	require.Equal(t, 1, m2.GetValueOr("a", 0))
	require.Equal(t, 3, m2.GetValueOr("c", 0))
	var _, found = m2.Get("b")
	require.False(t, found)

	// the older version still has all three
	require.Equal(t, 2, m.GetValueOr("b", 0))

	require.Equal(t, m2, m2.Delete("z"))
	require.True(t, m2.Delete("a").Delete("c").IsEmpty())
}

func TestMapListCollisions(t *testing.T) {
	testCollisions(t, hamt32.UsingList[string, int](constHasher{1000}))
}

func TestMapTreeCollisions(t *testing.T) {
	testCollisions(t, hamt32.UsingTree[string, int](constHasher{1000}, collections.OrderedComparer[string]{}))
}

func TestMapZeroHashLivesInRoot(t *testing.T) {
	var m = hamt32.UsingList[string, int](constHasher{0})
	for i := 0; i < 10; i++ {
		m = m.Assign(strconv.Itoa(i), i)
	}
	require.NoError(t, m.CheckInvariants())
	require.Equal(t, 10, m.Size())
	require.Equal(t, 9, m.GetValueOr("9", -1))
}

func TestMapManyCollisionGroups(t *testing.T) {
	for _, m := range []hamt32.Map[string, int]{
		hamt32.UsingList[string, int](modHasher{7}),
		hamt32.UsingTree[string, int](modHasher{7}, collections.OrderedComparer[string]{}),
	} {
		for i := 0; i < 500; i++ {
			m = m.Assign(Keys[i%len(Keys)]+"-"+strconv.Itoa(i), i)
		}
		require.NoError(t, m.CheckInvariants())
		require.Equal(t, 500, m.Size())

		var seen int
		for range m.All() {
			seen++
		}
		require.Equal(t, 500, seen)
	}
}

func TestMapAssignIdentity(t *testing.T) {
	var m hamt32.Map[string, int]
	for i := 0; i < 1000; i++ {
		m = m.Assign(Keys[i], i)
	}

	require.Equal(t, m, m.Assign(Keys[10], 10))
	require.Equal(t, m, m.Delete("not-a-key"))

	var m2 = m.Assign(Keys[10], -10)
	require.Equal(t, m.Size(), m2.Size())
	require.Equal(t, 10, m.GetValueOr(Keys[10], 0))
	require.Equal(t, -10, m2.GetValueOr(Keys[10], 0))
}

func TestMapUpdate(t *testing.T) {
	var inc = func(old int, found bool) int {
		if !found {
			return 1
		}
		return old + 1
	}

	var m hamt32.Map[string, int]
	m = m.Update("k", inc).Update("k", inc).Update("j", inc)
	require.Equal(t, 2, m.GetValueOr("k", 0))
	require.Equal(t, 1, m.GetValueOr("j", 0))
	require.Equal(t, 2, m.Size())

	var same = m.Update("k", func(old int, _ bool) int { return old })
	require.Equal(t, m, same)
}

func TestMapAgainstBuiltinMap(t *testing.T) {
	var r = rand.New(rand.NewSource(17))
	var oracle = make(map[int]int)
	var m hamt32.Map[int, int]

	for n := 0; n < 30000; n++ {
		var k = r.Intn(5000) - 2500
		if r.Intn(3) == 0 {
			delete(oracle, k)
			m = m.Delete(k)
		} else {
			oracle[k] = n
			m = m.Assign(k, n)
		}
		if n%2000 == 0 {
			require.NoError(t, m.CheckInvariants(), "after op %d", n)
		}
	}

	require.NoError(t, m.CheckInvariants())
	require.Equal(t, len(oracle), m.Size())

	var seen = make(map[int]bool)
	for k, v := range m.All() {
		require.False(t, seen[k], "key %d visited twice", k)
		seen[k] = true
		require.Equal(t, oracle[k], v)
	}
	require.Equal(t, len(oracle), len(seen))
}

func TestMapDeleteAllIsEmpty(t *testing.T) {
	var empty = hamt32.New[string, int](nil)
	var m = empty
	for i, k := range Keys {
		m = m.Assign(k, i)
	}
	require.NoError(t, m.CheckInvariants())
	require.Equal(t, len(Keys), m.Size())

	for _, k := range Keys {
		m = m.Delete(k)
	}
	require.True(t, m.IsEmpty())
	require.Equal(t, hamt32.TreeCollisions, m.Strategy())
	require.Equal(t, empty.Assign("x", 0).Delete("x"), m)
}

func TestMapConcurrentReaders(t *testing.T) {
	var m hamt32.Map[string, int]
	for i, k := range Keys {
		m = m.Assign(k, i)
	}

	var wg sync.WaitGroup
	var errs = make(chan string, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := g; i < len(Keys); i += 8 {
				if v, found := m.Get(Keys[i]); !found || v != i {
					errs <- Keys[i]
					return
				}
			}
		}(g)
	}
	wg.Wait()
	close(errs)

	for k := range errs {
		t.Errorf("reader failed on key %s", k)
	}
}

func TestMapLongString(t *testing.T) {
	var m = hamt32.UsingList[string, int](constHasher{33}).Assign("a", 1)
	var s = m.LongString("")
	require.Contains(t, s, "collisionLeaf{a:1}")
	require.Contains(t, s, "strategy: ListCollisions")
	require.Contains(t, hamt32.Map[string, int]{}.LongString(""), "root: nil")
}

func BenchmarkMapAssign(b *testing.B) {
	var m hamt32.Map[string, int]
	for i := 0; i < b.N; i++ {
		m = m.Assign(Keys[i%len(Keys)], i)
	}
}

func BenchmarkMapGet(b *testing.B) {
	var m hamt32.Map[string, int]
	for i, k := range Keys {
		m = m.Assign(k, i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.Get(Keys[i%len(Keys)])
	}
}

func BenchmarkBuiltinMapGet(b *testing.B) {
	var m = make(map[string]int, len(Keys))
	for i, k := range Keys {
		m[k] = i
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m[Keys[i%len(Keys)]]
	}
}
