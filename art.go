package art

// Key is an immutable byte-string key. Keys are ordered by unsigned
// byte-wise lexicographic comparison.
type Key = []byte

// Tree is an adaptive radix tree mapping byte-string keys to values of
// type V. The zero value is an empty tree ready for use.
type Tree[V any] struct {
	root *artNode[V]
	size int
}

// New creates an empty adaptive radix tree.
func New[V any]() *Tree[V] {
	return &Tree[V]{}
}

// Len returns the number of keys stored in the tree.
func (t *Tree[V]) Len() int {
	return t.size
}

// Clear removes all entries. The dropped nodes are reclaimed by the
// garbage collector, so this is O(1) for the caller.
func (t *Tree[V]) Clear() {
	t.root = nil
	t.size = 0
}
