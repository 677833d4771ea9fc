package hamt32

import (
	"fmt"
	"strings"

	"github.com/lleo/go-functional-collections"
	"github.com/lleo/go-functional-collections/btreemap"
	"github.com/lleo/go-functional-collections/internal/equal"
)

type treeCollisions[K, V any] struct {
	cmp collections.Comparer[K]
}

func (treeCollisions[K, V]) strategy() Strategy {
	return TreeCollisions
}

func (tc treeCollisions[K, V]) newBucket(key K, value V) bucket[K, V] {
	return &collisionTree[K, V]{btreemap.New[K, V](tc.cmp).Assign(key, value)}
}

// collisionTree keeps the entries of a bucket in a sorted btreemap.Map, so
// a bucket of many colliding keys is searched in O(log n). Keys are told
// apart by the Comparer rather than by Hasher.Equal.
type collisionTree[K, V any] struct {
	entries btreemap.Map[K, V]
}

func (t *collisionTree[K, V]) size() int {
	return t.entries.Size()
}

func (t *collisionTree[K, V]) get(_ Hasher[K], key K) (V, bool) {
	return t.entries.Find(key)
}

func (t *collisionTree[K, V]) assign(_ Hasher[K], key K, value V) (bucket[K, V], int) {
	if old, found := t.entries.Find(key); found && equal.Values(old, value) {
		return t, 0
	}
	var nm = t.entries.Assign(key, value)
	return &collisionTree[K, V]{nm}, nm.Size() - t.entries.Size()
}

func (t *collisionTree[K, V]) delete(_ Hasher[K], key K) (bucket[K, V], int) {
	var nm = t.entries.Delete(key)
	if nm.Size() == t.entries.Size() {
		return t, 0
	}
	if nm.IsEmpty() {
		return nil, -1
	}
	return &collisionTree[K, V]{nm}, -1
}

func (t *collisionTree[K, V]) forEach(yield func(K, V) bool) bool {
	for k, v := range t.entries.All() {
		if !yield(k, v) {
			return false
		}
	}
	return true
}

func (t *collisionTree[K, V]) String() string {
	var strs = make([]string, 0, t.entries.Size())
	for k, v := range t.entries.All() {
		strs = append(strs, fmt.Sprintf("%v:%v", k, v))
	}
	return fmt.Sprintf("collisionTree{%s}", strings.Join(strs, ","))
}
