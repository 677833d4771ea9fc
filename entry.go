package collections

import "fmt"

// Entry is an immutable key/value pair. The index based structures use the
// element index as the key.
type Entry[K, V any] struct {
	Key   K
	Value V
}

// NewEntry is a convenience for building an Entry without naming its fields.
func NewEntry[K, V any](k K, v V) Entry[K, V] {
	return Entry[K, V]{Key: k, Value: v}
}

func (e Entry[K, V]) String() string {
	return fmt.Sprintf("Entry{Key:%v, Value:%v}", e.Key, e.Value)
}
