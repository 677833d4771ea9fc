package trie32

import "fmt"

// leaf holds one value. Leaves only ever sit in tables of shift 0, at the
// slot given by the low five bits of their index.
type leaf[V any] struct {
	index uint32
	value V
}

func newLeaf[V any](index uint32, value V) *leaf[V] {
	var l = new(leaf[V])
	l.index = index
	l.value = value
	return l
}

func (l *leaf[V]) String() string {
	return fmt.Sprintf("leaf{index:%d, value:%v}", l.index, l.value)
}
