package btreelist

// node is either a *leafNode or a *branchNode. Nodes are never modified
// once built; every method that changes something returns a new node.
type node[V any] interface {
	// valueCount is the number of values stored at or below this node.
	valueCount() int
	// childCount is the number of values in a leaf, or of children in a
	// branch. It is the quantity kept within [MinChildren, MaxChildren].
	childCount() int
	depth() int

	get(index int) V
	// assign returns the receiver when the stored value is already value.
	assign(index int, value V) node[V]
	insertAt(index int, value V) insertResult[V]
	// delete returns nil when the last value below the node is removed.
	delete(index int) node[V]

	// mergeChildren concatenates sibling's children onto the receiver's.
	// The caller guarantees the total fits in MaxChildren.
	mergeChildren(sibling node[V]) node[V]
	// distributeChildren splits the combined children of the receiver and
	// sibling into two nodes, the first taking MinChildren of them.
	distributeChildren(sibling node[V]) (node[V], node[V])
	// compress strips branches holding a single child.
	compress() node[V]

	forEach(base int, yield func(int, V) bool) bool
	checkInvariants(isRoot bool) error
}

type insertKind int

const (
	inPlace insertKind = iota
	split
)

func (k insertKind) String() string {
	switch k {
	case inPlace:
		return "INPLACE"
	case split:
		return "SPLIT"
	}
	return "UNKNOWN"
}

// insertResult is what insertAt reports to the parent: either newNode
// replaces the child it was called on, or the child split into newNode
// followed by extraNode.
type insertResult[V any] struct {
	kind      insertKind
	newNode   node[V]
	extraNode node[V]
}

func inPlaceResult[V any](n node[V]) insertResult[V] {
	return insertResult[V]{kind: inPlace, newNode: n}
}

func splitResult[V any](n, extra node[V]) insertResult[V] {
	return insertResult[V]{kind: split, newNode: n, extraNode: extra}
}

// splitIndex is where an overflowing node of MaxChildren+1 children is cut.
// Appends leave the left node one fuller, so sequential appends pack the
// tree more tightly.
func splitIndex(insertedAtEnd bool) int {
	if insertedAtEnd {
		return MinChildren + 1
	}
	return MinChildren
}
