package art

import "bytes"

// Get returns the value stored under key. The boolean reports whether
// the key is present. A nil key is the empty key.
func (t *Tree[V]) Get(key []byte) (V, bool) {
	var zero V
	cur := t.root
	for cur != nil {
		if cur.isLeaf() {
			l := cur.leaf()
			if bytes.Equal(l.suffix, key) {
				return l.value, true
			}
			return zero, false
		}
		h := cur.header()
		n, outcome := matchPrefix(h.prefix, key)
		if outcome == matchPartial {
			return zero, false
		}
		if n == len(key) {
			// key ends at or inside this node's prefix
			if outcome == matchFull && h.hasValue {
				return h.value, true
			}
			return zero, false
		}
		key = key[n:]
		ref := cur.findChild(key[0])
		if ref == nil {
			return zero, false
		}
		cur = *ref
		key = key[1:]
	}
	return zero, false
}

// Insert stores value under key, replacing any existing entry. It
// returns the previous value and whether one was replaced. The key
// bytes are copied, the caller keeps ownership of its slice.
func (t *Tree[V]) Insert(key []byte, value V) (prev V, replaced bool) {
	return t.insert(&t.root, key, value)
}

func (t *Tree[V]) insert(ref **artNode[V], key []byte, value V) (prev V, replaced bool) {
	cur := *ref
	if cur == nil {
		*ref = newLeaf(key, value)
		t.size++
		return prev, false
	}

	if cur.isLeaf() {
		l := cur.leaf()
		if bytes.Equal(l.suffix, key) {
			prev = l.value
			l.value = value
			return prev, true
		}
		*ref = splitLeaf(cur, key, value)
		t.size++
		return prev, false
	}

	h := cur.header()
	n, outcome := matchPrefix(h.prefix, key)
	switch outcome {
	case matchPartial:
		*ref = splitInner(cur, n, key, value)
		t.size++
		return prev, false
	case matchKeyExhausted:
		*ref = splitInnerAtKeyEnd(cur, key, value)
		t.size++
		return prev, false
	}

	rest := key[n:]
	if len(rest) == 0 {
		// key ends exactly at this node
		if h.hasValue {
			prev = h.value
			h.setValue(value)
			return prev, true
		}
		h.setValue(value)
		t.size++
		return prev, false
	}

	if childRef := cur.findChild(rest[0]); childRef != nil {
		return t.insert(childRef, rest[1:], value)
	}
	cur.addChild(rest[0], newLeaf(rest[1:], value))
	t.size++
	return prev, false
}

// splitLeaf replaces a leaf whose suffix diverges from key with a node4
// holding their common prefix. When one is a strict prefix of the
// other, the shorter key's value lands on the new node itself.
func splitLeaf[V any](old *artNode[V], key []byte, value V) *artNode[V] {
	l := old.leaf()
	n := longestCommonPrefix(l.suffix, key)

	nn := newNode4[V]()
	h := nn.header()
	h.prefix = append([]byte(nil), key[:n]...)

	switch {
	case n == len(l.suffix):
		// existing key is a strict prefix of the new key
		h.setValue(l.value)
		nn.addChild(key[n], newLeaf(key[n+1:], value))
	case n == len(key):
		// new key is a strict prefix of the existing key
		h.setValue(value)
		b := l.suffix[n]
		l.suffix = l.suffix[n+1:]
		nn.addChild(b, old)
	default:
		b := l.suffix[n]
		l.suffix = l.suffix[n+1:]
		nn.addChild(b, old)
		nn.addChild(key[n], newLeaf(key[n+1:], value))
	}
	return nn
}

// splitInner replaces an inner node whose prefix diverges from key at
// byte n with a new node4 holding the matched sub-prefix; the old node
// keeps the bytes after the divergence point and a fresh leaf takes the
// key's divergent branch.
func splitInner[V any](old *artNode[V], n int, key []byte, value V) *artNode[V] {
	h := old.header()

	nn := newNode4[V]()
	nh := nn.header()
	nh.prefix = append([]byte(nil), h.prefix[:n]...)

	oldBranch := h.prefix[n]
	h.prefix = h.prefix[n+1:]

	nn.addChild(oldBranch, old)
	nn.addChild(key[n], newLeaf(key[n+1:], value))
	return nn
}

// splitInnerAtKeyEnd handles an inserted key that ends strictly inside
// the node's prefix: the new node carries the value itself and the old
// node, truncated past the divergence point, becomes its only child.
func splitInnerAtKeyEnd[V any](old *artNode[V], key []byte, value V) *artNode[V] {
	h := old.header()

	nn := newNode4[V]()
	nh := nn.header()
	nh.prefix = append([]byte(nil), key...)
	nh.setValue(value)

	oldBranch := h.prefix[len(key)]
	h.prefix = h.prefix[len(key)+1:]

	nn.addChild(oldBranch, old)
	return nn
}

// Delete removes key and returns its value. The boolean reports whether
// the key was present; deleting an absent key is a no-op.
func (t *Tree[V]) Delete(key []byte) (V, bool) {
	var zero V
	if t.root == nil {
		return zero, false
	}
	old, removed := t.remove(&t.root, key)
	if removed {
		t.size--
	}
	return old, removed
}

func (t *Tree[V]) remove(ref **artNode[V], key []byte) (old V, removed bool) {
	cur := *ref
	if cur.isLeaf() {
		// only reachable when the root itself is a leaf; leaves below
		// an inner node are unlinked by their parent
		l := cur.leaf()
		if !bytes.Equal(l.suffix, key) {
			return old, false
		}
		*ref = nil
		return l.value, true
	}

	h := cur.header()
	n, outcome := matchPrefix(h.prefix, key)
	if outcome != matchFull {
		// a present key never mismatches a stored prefix
		return old, false
	}

	rest := key[n:]
	if len(rest) == 0 {
		if !h.hasValue {
			return old, false
		}
		old = h.clearValue()
		cur.compress()
		return old, true
	}

	childRef := cur.findChild(rest[0])
	if childRef == nil {
		return old, false
	}

	if child := *childRef; child.isLeaf() {
		// unlink through the branch byte, never through the child
		// slot: the shape-specific bookkeeping (and the node256
		// occupancy count in particular) must see the removal
		l := child.leaf()
		if !bytes.Equal(l.suffix, rest[1:]) {
			return old, false
		}
		cur.removeChild(rest[0])
		cur.compress()
		return l.value, true
	}

	// inner children never vanish on removal, they collapse in place
	return t.remove(childRef, rest[1:])
}
