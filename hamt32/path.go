package hamt32

import "strings"

// tableStack records the nodes passed through on the way from the root to
// the node a key routes to, so that a changed node can be copied back up to
// a new root.
type tableStack[K, V any] []*node[K, V]

func newTableStack[K, V any]() tableStack[K, V] {
	return make(tableStack[K, V], 0, MaxDepth+1)
}

// peek returns the last node pushed without removing it.
func (path tableStack[K, V]) peek() *node[K, V] {
	if len(path) == 0 {
		return nil
	}
	return path[len(path)-1]
}

// pop returns and removes the last node pushed.
func (path *tableStack[K, V]) pop() *node[K, V] {
	if len(*path) == 0 {
		return nil
	}
	var parent = (*path)[len(*path)-1]
	*path = (*path)[:len(*path)-1]
	return parent
}

// push never receives nil.
func (path *tableStack[K, V]) push(n *node[K, V]) {
	*path = append(*path, n)
}

func (path tableStack[K, V]) len() int {
	return len(path)
}

func (path tableStack[K, V]) isEmpty() bool {
	return len(path) == 0
}

// String is only good for debug messages.
func (path tableStack[K, V]) String() string {
	var strs = make([]string, len(path))
	var indent = ""
	for i, n := range path {
		strs[i] = indent + n.String() + "\n"
		indent += halfIndent
	}
	return strings.Join(strs, "")
}
