package art

import (
	"bytes"
	"iter"
)

// iterFrame is one level of the explicit traversal stack. next is the
// smallest child byte still to visit; -1 means the node's own entry
// (leaf value or inner own value) has not been emitted yet. base is the
// key-buffer length before this node's prefix was appended, klen the
// length after.
type iterFrame[V any] struct {
	n    *artNode[V]
	next int
	base int
	klen int
}

// iterator walks the tree in ascending key order with an explicit
// stack, so pathologically deep tries cannot exhaust the call stack.
// key always holds the bytes consumed by the frames currently stacked.
type iterator[V any] struct {
	key   []byte
	stack []iterFrame[V]
}

func (it *iterator[V]) push(n *artNode[V], base int) {
	if n.isLeaf() {
		it.key = append(it.key, n.leaf().suffix...)
	} else {
		it.key = append(it.key, n.header().prefix...)
	}
	it.stack = append(it.stack, iterFrame[V]{n: n, next: -1, base: base, klen: len(it.key)})
}

func (it *iterator[V]) pop() {
	f := it.stack[len(it.stack)-1]
	it.key = it.key[:f.base]
	it.stack = it.stack[:len(it.stack)-1]
}

// next returns the next (key, value) pair in ascending order. The
// returned key aliases the iterator's buffer and is only valid until
// the following call.
func (it *iterator[V]) next() ([]byte, V, bool) {
	var zero V
	for len(it.stack) > 0 {
		f := &it.stack[len(it.stack)-1]
		it.key = it.key[:f.klen]

		if f.n.isLeaf() {
			if f.next < 0 {
				f.next = 256
				return it.key, f.n.leaf().value, true
			}
			it.pop()
			continue
		}

		h := f.n.header()
		if f.next < 0 {
			f.next = 0
			if h.hasValue {
				// the own value is the shortest key in this subtree
				return it.key, h.value, true
			}
		}

		b, child := f.n.nextChild(f.next)
		if child == nil {
			it.pop()
			continue
		}
		f.next = b + 1
		base := len(it.key)
		it.key = append(it.key, byte(b))
		it.push(child, base)
	}
	return nil, zero, false
}

// seek positions the iterator so that next() yields the first key >=
// lo. It descends along the bound's bytes, O(depth), never walking the
// skipped keys.
func (it *iterator[V]) seek(root *artNode[V], lo []byte) {
	cur := root
	base := 0
	for cur != nil {
		if cur.isLeaf() {
			if bytes.Compare(cur.leaf().suffix, lo) >= 0 {
				it.push(cur, base)
			}
			return
		}

		h := cur.header()
		m := longestCommonPrefix(h.prefix, lo)
		if m < len(h.prefix) {
			// divergence inside the prefix decides the whole subtree
			if m == len(lo) || h.prefix[m] > lo[m] {
				it.push(cur, base)
			}
			return
		}

		rest := lo[m:]
		if len(rest) == 0 {
			// the bound ends exactly here; the own value, if any, is
			// the first key >= lo
			it.push(cur, base)
			return
		}

		// skip the own value and all children below the bound byte
		it.push(cur, base)
		f := &it.stack[len(it.stack)-1]
		b := rest[0]
		f.next = int(b) + 1

		childRef := cur.findChild(b)
		if childRef == nil {
			return
		}
		base = len(it.key)
		it.key = append(it.key, b)
		cur = *childRef
		lo = rest[1:]
	}
}

// All returns every (key, value) pair in ascending byte-lexicographic
// key order. It is a range-over-func iterator:
//
//	for k, v := range tree.All { ... }
//
// Breaking out early is free. Yielded keys are fresh copies the
// consumer may keep. The tree must not be mutated during the walk.
func (t *Tree[V]) All(yield func(Key, V) bool) {
	it := &iterator[V]{}
	if t.root != nil {
		it.push(t.root, 0)
	}
	for {
		k, v, ok := it.next()
		if !ok {
			return
		}
		if !yield(bytes.Clone(k), v) {
			return
		}
	}
}

// Range returns the (key, value) pairs with lo <= key < hi in ascending
// order. A nil lo scans from the smallest key, a nil hi to the largest.
// Positioning uses a seek along the lower bound, so the cost is
// O(depth + pairs yielded), independent of how many keys precede lo.
func (t *Tree[V]) Range(lo, hi []byte) iter.Seq2[Key, V] {
	return func(yield func(Key, V) bool) {
		if t.root == nil {
			return
		}
		it := &iterator[V]{}
		if lo == nil {
			it.push(t.root, 0)
		} else {
			it.seek(t.root, lo)
		}
		for {
			k, v, ok := it.next()
			if !ok {
				return
			}
			if hi != nil && bytes.Compare(k, hi) >= 0 {
				return
			}
			if !yield(bytes.Clone(k), v) {
				return
			}
		}
	}
}

// Min returns the smallest key and its value, or false on an empty
// tree.
func (t *Tree[V]) Min() (Key, V, bool) {
	var zero V
	cur := t.root
	var key []byte
	for cur != nil {
		if cur.isLeaf() {
			l := cur.leaf()
			return append(key, l.suffix...), l.value, true
		}
		h := cur.header()
		key = append(key, h.prefix...)
		if h.hasValue {
			return key, h.value, true
		}
		b, child := cur.nextChild(0)
		key = append(key, byte(b))
		cur = child
	}
	return nil, zero, false
}

// Max returns the largest key and its value, or false on an empty tree.
func (t *Tree[V]) Max() (Key, V, bool) {
	var zero V
	cur := t.root
	var key []byte
	for cur != nil {
		if cur.isLeaf() {
			l := cur.leaf()
			return append(key, l.suffix...), l.value, true
		}
		h := cur.header()
		key = append(key, h.prefix...)
		b, child := cur.prevChild(255)
		if child == nil {
			// inner nodes always have children unless they only carry
			// their own value, which then is the maximum
			return key, h.value, true
		}
		key = append(key, byte(b))
		cur = child
	}
	return nil, zero, false
}
