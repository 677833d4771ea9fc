package collections_test

import (
	"strconv"
	"testing"

	"github.com/lleo/go-functional-collections/btreelist"
	"github.com/lleo/go-functional-collections/btreemap"
	"github.com/lleo/go-functional-collections/hamt32"
	"github.com/lleo/go-functional-collections/trie32"
)

const benchSize = 16 * 1024

func benchKeys(n int) []string {
	var keys = make([]string, n)
	for i := range keys {
		keys[i] = "s" + strconv.Itoa(i)
	}
	return keys
}

func BenchmarkBuiltinMapPut(b *testing.B) {
	var keys = benchKeys(benchSize)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var m = make(map[string]int)
		for j, k := range keys {
			m[k] = j
		}
	}
}

func BenchmarkHamt32Put(b *testing.B) {
	var keys = benchKeys(benchSize)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var m hamt32.Map[string, int]
		for j, k := range keys {
			m = m.Assign(k, j)
		}
	}
}

func BenchmarkBtreemapPut(b *testing.B) {
	var keys = benchKeys(benchSize)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var m = btreemap.NewOrdered[string, int]()
		for j, k := range keys {
			m = m.Assign(k, j)
		}
	}
}

func BenchmarkBuiltinMapGet(b *testing.B) {
	var keys = benchKeys(benchSize)
	var m = make(map[string]int, len(keys))
	for j, k := range keys {
		m[k] = j
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var j = i % len(keys)
		if v, ok := m[keys[j]]; !ok || v != j {
			b.Fatalf("m[%s] = %d, %v", keys[j], v, ok)
		}
	}
}

func BenchmarkHamt32Get(b *testing.B) {
	var keys = benchKeys(benchSize)
	var m hamt32.Map[string, int]
	for j, k := range keys {
		m = m.Assign(k, j)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var j = i % len(keys)
		if v, ok := m.Get(keys[j]); !ok || v != j {
			b.Fatalf("m.Get(%s) = %d, %v", keys[j], v, ok)
		}
	}
}

func BenchmarkBtreemapGet(b *testing.B) {
	var keys = benchKeys(benchSize)
	var m = btreemap.NewOrdered[string, int]()
	for j, k := range keys {
		m = m.Assign(k, j)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var j = i % len(keys)
		if v, ok := m.Find(keys[j]); !ok || v != j {
			b.Fatalf("m.Find(%s) = %d, %v", keys[j], v, ok)
		}
	}
}

func BenchmarkSliceAppend(b *testing.B) {
	for i := 0; i < b.N; i++ {
		var s []int
		for j := 0; j < benchSize; j++ {
			s = append(s, j)
		}
	}
}

func BenchmarkBtreelistAppend(b *testing.B) {
	for i := 0; i < b.N; i++ {
		var l btreelist.List[int]
		for j := 0; j < benchSize; j++ {
			l = l.Append(j)
		}
	}
}

func BenchmarkTrie32Append(b *testing.B) {
	for i := 0; i < b.N; i++ {
		var a trie32.Array[int]
		for j := 0; j < benchSize; j++ {
			a = a.Assign(uint32(j), j)
		}
	}
}
