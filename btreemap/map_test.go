package btreemap_test

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/google/btree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lleo/go-functional-collections"
	"github.com/lleo/go-functional-collections/btreemap"
)

type kv struct {
	k, v int
}

func kvLess(a, b kv) bool {
	return a.k < b.k
}

type reverseInts struct{}

func (reverseInts) Compare(a, b int) int {
	return b - a
}

func TestMapZeroValue(t *testing.T) {
	var m btreemap.Map[string, int]
	require.True(t, m.IsEmpty())
	require.Nil(t, m.Comparer())
	require.NoError(t, m.CheckInvariants())

	var _, found = m.Find("a")
	require.False(t, found)
	require.Equal(t, m, m.Delete("a"))

	var _, ok = m.Min()
	require.False(t, ok)

	m = m.Assign("b", 2).Assign("a", 1)
	require.NotNil(t, m.Comparer())
	require.Equal(t, 2, m.Size())
	require.Equal(t, []string{"a", "b"}, collectKeys(m))
}

func TestMapAssignIdentityAndPersistence(t *testing.T) {
	var m = btreemap.NewOrdered[int, string]()
	for i := 0; i < 200; i++ {
		m = m.Assign(i, strconv.Itoa(i))
	}

	require.Equal(t, m, m.Assign(100, "100"))
	require.Equal(t, m, m.Delete(1000))
	require.Equal(t, m, m.Delete(-1))

	var m2 = m.Assign(100, "hundred")
	require.Equal(t, 200, m2.Size())
	require.Equal(t, "100", m.GetValueOr(100, ""))
	require.Equal(t, "hundred", m2.GetValueOr(100, ""))

	var m3 = m2.Delete(100)
	require.Equal(t, 199, m3.Size())
	require.Equal(t, "hundred", m2.GetValueOr(100, ""))
	require.Equal(t, "gone", m3.GetValueOr(100, "gone"))
}

func TestMapMinMax(t *testing.T) {
	var m = btreemap.NewOrdered[int, int]()
	for _, i := range rand.New(rand.NewSource(5)).Perm(1000) {
		m = m.Assign(i-500, i)
	}
	var lo, ok = m.Min()
	require.True(t, ok)
	require.Equal(t, -500, lo.Key)
	require.Equal(t, 0, lo.Value)

	var hi, _ = m.Max()
	require.Equal(t, 499, hi.Key)
	require.Equal(t, 999, hi.Value)
}

func TestMapCustomComparer(t *testing.T) {
	var m = btreemap.New[int, int](reverseInts{})
	for i := 0; i < 100; i++ {
		m = m.Assign(i, i)
	}
	require.NoError(t, m.CheckInvariants())

	var keys = collectKeys(m)
	require.Equal(t, 99, keys[0])
	require.Equal(t, 0, keys[99])
}

func TestMapAgainstGoogleBtree(t *testing.T) {
	var r = rand.New(rand.NewSource(11))
	var oracle = btree.NewG[kv](8, kvLess)
	var m = btreemap.NewOrdered[int, int]()

	for n := 0; n < 30000; n++ {
		var k = r.Intn(3000)
		if r.Intn(3) == 0 {
			oracle.Delete(kv{k: k})
			m = m.Delete(k)
		} else {
			oracle.ReplaceOrInsert(kv{k, n})
			m = m.Assign(k, n)
		}
		if n%1000 == 0 {
			require.NoError(t, m.CheckInvariants(), "after op %d", n)
		}
	}

	require.NoError(t, m.CheckInvariants())
	require.Equal(t, oracle.Len(), m.Size())

	var want []kv
	oracle.Ascend(func(item kv) bool {
		want = append(want, item)
		return true
	})
	var got []kv
	for k, v := range m.All() {
		got = append(got, kv{k, v})
	}
	require.Equal(t, want, got)

	oracle.Ascend(func(item kv) bool {
		var v, found = m.Find(item.k)
		assert.True(t, found)
		assert.Equal(t, item.v, v)
		return true
	})
}

func TestMapDeleteAllIsEmpty(t *testing.T) {
	var m = btreemap.NewOrdered[string, int]()
	var empty = m
	var keys = make([]string, 2000)
	for i := range keys {
		keys[i] = "key" + strconv.Itoa(i)
		m = m.Assign(keys[i], i)
	}
	require.NoError(t, m.CheckInvariants())
	require.Greater(t, m.Depth(), 2)

	rand.New(rand.NewSource(9)).Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
	for i, k := range keys {
		m = m.Delete(k)
		if i%250 == 0 {
			require.NoError(t, m.CheckInvariants())
		}
	}

	require.True(t, m.IsEmpty())
	require.Equal(t, empty, m)
	require.Equal(t, collections.OrderedComparer[string]{}, m.Comparer())
}

func TestMapIteratorsStopEarly(t *testing.T) {
	var m = btreemap.NewOrdered[int, int]()
	for i := 0; i < 100; i++ {
		m = m.Assign(i, i*i)
	}

	var vals []int
	for v := range m.Values() {
		if len(vals) == 3 {
			break
		}
		vals = append(vals, v)
	}
	require.Equal(t, []int{0, 1, 4}, vals)
}

func collectKeys[K, V any](m btreemap.Map[K, V]) []K {
	var keys []K
	for k := range m.Keys() {
		keys = append(keys, k)
	}
	return keys
}

func BenchmarkMapAssign(b *testing.B) {
	var m = btreemap.NewOrdered[int, int]()
	for i := 0; i < b.N; i++ {
		m = m.Assign(i, i)
	}
}

func BenchmarkGoogleBtreeCloneAndInsert(b *testing.B) {
	var t = btree.NewG[kv](8, kvLess)
	for i := 0; i < b.N; i++ {
		t = t.Clone()
		t.ReplaceOrInsert(kv{i, i})
	}
}

func BenchmarkMapFind(b *testing.B) {
	var m = btreemap.NewOrdered[int, int]()
	for i := 0; i < 1<<16; i++ {
		m = m.Assign(i, i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.Find(i & 0xffff)
	}
}
