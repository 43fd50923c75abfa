package art

import (
	"math/bits"
	"sort"
	"unsafe"
)

// kind tags the shape an artNode points at.
type kind uint8

const (
	leafKind kind = iota
	node4Kind
	node16Kind
	node48Kind
	node256Kind
)

const (
	// Inner nodes of kind node4 hold between 2 and 4 children; a single
	// child is only allowed while the node carries its own value.
	node4Min = 2
	node4Max = 4

	// Inner nodes of kind node16 hold between 5 and 16 children.
	node16Min = 5
	node16Max = 16

	// Inner nodes of kind node48 hold between 17 and 48 children.
	node48Min = 17
	node48Max = 48

	// Inner nodes of kind node256 hold between 49 and 256 children.
	node256Min = 49
	node256Max = 256
)

// header is the metadata common to every inner shape. It must be the
// first field of each shape so an artNode can reach it without knowing
// the concrete kind.
//
// prefix holds the full compressed path, the longest byte sequence
// shared by every key below this node beyond what ancestors consumed.
// It is stored exactly, with no length cap, so lookups never have to
// re-validate key bytes at the leaf.
//
// value is set when some stored key ends exactly at this node, i.e. the
// key is a strict prefix of the other keys below.
type header[V any] struct {
	prefix   []byte
	size     int
	value    V
	hasValue bool
}

func (h *header[V]) setValue(v V) {
	h.value = v
	h.hasValue = true
}

func (h *header[V]) clearValue() (old V) {
	var zero V
	old = h.value
	h.value = zero
	h.hasValue = false
	return old
}

// node4 holds up to 4 (byte, child) pairs in parallel arrays sorted
// ascending by byte.
type node4[V any] struct {
	header[V]
	keys     [node4Max]byte
	children [node4Max]*artNode[V]
}

// node16 is the same layout as node4 with room for 16 pairs; lookups
// use binary search.
type node16[V any] struct {
	header[V]
	keys     [node16Max]byte
	children [node16Max]*artNode[V]
}

// node48 maps each possible byte to a slot in a compact child array via
// a 256-entry index table. present tracks which bytes are occupied;
// slots[b] is only meaningful while the bit for b is set.
type node48[V any] struct {
	header[V]
	present  [4]uint64
	slots    [256]byte
	children [node48Max]*artNode[V]
}

// node256 indexes children directly by byte; nil marks an empty slot.
type node256[V any] struct {
	header[V]
	children [node256Max]*artNode[V]
}

// leaf is a terminal node. suffix holds the key bytes not yet consumed
// by ancestor prefixes and branch bytes; together with the path from
// the root it reconstructs the full key.
type leaf[V any] struct {
	suffix []byte
	value  V
}

// artNode is the tagged variant over the five shapes. The pointer is
// cast to the concrete shape according to kind; every inner shape
// embeds header as its first field, so header access needs no dispatch.
type artNode[V any] struct {
	kind kind
	ref  unsafe.Pointer
}

// newLeaf copies key, the caller keeps ownership of its slice.
func newLeaf[V any](suffix []byte, value V) *artNode[V] {
	owned := make([]byte, len(suffix))
	copy(owned, suffix)
	return newLeafOwned(owned, value)
}

// newLeafOwned takes ownership of suffix without copying.
func newLeafOwned[V any](suffix []byte, value V) *artNode[V] {
	return &artNode[V]{
		kind: leafKind,
		ref:  unsafe.Pointer(&leaf[V]{suffix: suffix, value: value}),
	}
}

func newNode4[V any]() *artNode[V] {
	return &artNode[V]{kind: node4Kind, ref: unsafe.Pointer(&node4[V]{})}
}

func newNode16[V any]() *artNode[V] {
	return &artNode[V]{kind: node16Kind, ref: unsafe.Pointer(&node16[V]{})}
}

func newNode48[V any]() *artNode[V] {
	return &artNode[V]{kind: node48Kind, ref: unsafe.Pointer(&node48[V]{})}
}

func newNode256[V any]() *artNode[V] {
	return &artNode[V]{kind: node256Kind, ref: unsafe.Pointer(&node256[V]{})}
}

func (n *artNode[V]) isLeaf() bool { return n.kind == leafKind }

func (n *artNode[V]) header() *header[V] { return (*header[V])(n.ref) }

func (n *artNode[V]) node4() *node4[V] { return (*node4[V])(n.ref) }

func (n *artNode[V]) node16() *node16[V] { return (*node16[V])(n.ref) }

func (n *artNode[V]) node48() *node48[V] { return (*node48[V])(n.ref) }

func (n *artNode[V]) node256() *node256[V] { return (*node256[V])(n.ref) }

func (n *artNode[V]) leaf() *leaf[V] { return (*leaf[V])(n.ref) }

// replaceWith splices other into n's place. Parents hold *artNode, so
// overwriting the variant in place rewires the tree without touching
// the parent's child arrays.
func (n *artNode[V]) replaceWith(other *artNode[V]) {
	*n = *other
}

func (n *artNode[V]) isFull() bool {
	return n.header().size == n.maxSize()
}

// minSize returns the lower occupancy bound of the current shape.
func (n *artNode[V]) minSize() int {
	switch n.kind {
	case node4Kind:
		return node4Min
	case node16Kind:
		return node16Min
	case node48Kind:
		return node48Min
	case node256Kind:
		return node256Min
	}
	return 0
}

// maxSize returns the capacity of the current shape.
func (n *artNode[V]) maxSize() int {
	switch n.kind {
	case node4Kind:
		return node4Max
	case node16Kind:
		return node16Max
	case node48Kind:
		return node48Max
	case node256Kind:
		return node256Max
	}
	return 0
}

// findChild returns the child slot for byte b, or nil if absent. The
// returned pointer stays valid until the next structural mutation of n.
func (n *artNode[V]) findChild(b byte) **artNode[V] {
	switch n.kind {
	case node4Kind:
		n4 := n.node4()
		for i := 0; i < n4.size; i++ {
			if n4.keys[i] == b {
				return &n4.children[i]
			}
		}
	case node16Kind:
		n16 := n.node16()
		idx := sort.Search(n16.size, func(i int) bool { return n16.keys[i] >= b })
		if idx < n16.size && n16.keys[idx] == b {
			return &n16.children[idx]
		}
	case node48Kind:
		n48 := n.node48()
		if n48.has(b) {
			return &n48.children[n48.slots[b]]
		}
	case node256Kind:
		n256 := n.node256()
		if n256.children[b] != nil {
			return &n256.children[b]
		}
	}
	return nil
}

// addChild inserts child at byte b, growing the node to the next larger
// shape first if it is at capacity. The byte must not be present yet.
func (n *artNode[V]) addChild(b byte, child *artNode[V]) {
	if n.isFull() {
		n.grow()
	}
	switch n.kind {
	case node4Kind:
		n4 := n.node4()
		idx := 0
		for idx < n4.size && n4.keys[idx] < b {
			idx++
		}
		copy(n4.keys[idx+1:n4.size+1], n4.keys[idx:n4.size])
		copy(n4.children[idx+1:n4.size+1], n4.children[idx:n4.size])
		n4.keys[idx] = b
		n4.children[idx] = child
	case node16Kind:
		n16 := n.node16()
		idx := sort.Search(n16.size, func(i int) bool { return n16.keys[i] >= b })
		copy(n16.keys[idx+1:n16.size+1], n16.keys[idx:n16.size])
		copy(n16.children[idx+1:n16.size+1], n16.children[idx:n16.size])
		n16.keys[idx] = b
		n16.children[idx] = child
	case node48Kind:
		n48 := n.node48()
		slot := 0
		for n48.children[slot] != nil {
			slot++
		}
		n48.children[slot] = child
		n48.slots[b] = byte(slot)
		n48.set(b)
	case node256Kind:
		n.node256().children[b] = child
	}
	n.header().size++
}

// removeChild unlinks the child at byte b and demotes the node to a
// smaller shape when occupancy drops below the shape's lower bound.
// Collapsing a node4 left with a single child is the caller's job,
// since it depends on whether the node carries its own value.
func (n *artNode[V]) removeChild(b byte) {
	switch n.kind {
	case node4Kind:
		n4 := n.node4()
		idx := 0
		for idx < n4.size && n4.keys[idx] != b {
			idx++
		}
		if idx == n4.size {
			return
		}
		copy(n4.keys[idx:], n4.keys[idx+1:n4.size])
		copy(n4.children[idx:], n4.children[idx+1:n4.size])
		n4.keys[n4.size-1] = 0
		n4.children[n4.size-1] = nil
		n4.size--
	case node16Kind:
		n16 := n.node16()
		idx := sort.Search(n16.size, func(i int) bool { return n16.keys[i] >= b })
		if idx == n16.size || n16.keys[idx] != b {
			return
		}
		copy(n16.keys[idx:], n16.keys[idx+1:n16.size])
		copy(n16.children[idx:], n16.children[idx+1:n16.size])
		n16.keys[n16.size-1] = 0
		n16.children[n16.size-1] = nil
		n16.size--
	case node48Kind:
		n48 := n.node48()
		if !n48.has(b) {
			return
		}
		n48.children[n48.slots[b]] = nil
		n48.slots[b] = 0
		n48.clear(b)
		n48.size--
	case node256Kind:
		n256 := n.node256()
		if n256.children[b] == nil {
			return
		}
		n256.children[b] = nil
		n256.size--
	}
	if n.header().size < n.minSize() && n.kind != node4Kind {
		n.shrink()
	}
}

// grow promotes the node to the next larger shape, re-deriving the
// child index into the new shape's scheme.
func (n *artNode[V]) grow() {
	switch n.kind {
	case node4Kind:
		n4 := n.node4()
		nn := newNode16[V]()
		n16 := nn.node16()
		n16.header = n4.header
		copy(n16.keys[:], n4.keys[:n4.size])
		copy(n16.children[:], n4.children[:n4.size])
		n.replaceWith(nn)
	case node16Kind:
		n16 := n.node16()
		nn := newNode48[V]()
		n48 := nn.node48()
		n48.header = n16.header
		for i := 0; i < n16.size; i++ {
			b := n16.keys[i]
			n48.children[i] = n16.children[i]
			n48.slots[b] = byte(i)
			n48.set(b)
		}
		n.replaceWith(nn)
	case node48Kind:
		n48 := n.node48()
		nn := newNode256[V]()
		n256 := nn.node256()
		n256.header = n48.header
		for b := n48.next(0); b >= 0; b = n48.next(b + 1) {
			n256.children[b] = n48.children[n48.slots[b]]
		}
		n.replaceWith(nn)
	case node256Kind:
		// already at maximum fan-out
	}
}

// shrink demotes the node to the next smaller shape. Callers ensure the
// current occupancy fits the target shape.
func (n *artNode[V]) shrink() {
	switch n.kind {
	case node16Kind:
		n16 := n.node16()
		nn := newNode4[V]()
		n4 := nn.node4()
		n4.header = n16.header
		copy(n4.keys[:], n16.keys[:n16.size])
		copy(n4.children[:], n16.children[:n16.size])
		n.replaceWith(nn)
	case node48Kind:
		n48 := n.node48()
		nn := newNode16[V]()
		n16 := nn.node16()
		n16.header = n48.header
		i := 0
		for b := n48.next(0); b >= 0; b = n48.next(b + 1) {
			n16.keys[i] = byte(b)
			n16.children[i] = n48.children[n48.slots[b]]
			i++
		}
		n.replaceWith(nn)
	case node256Kind:
		n256 := n.node256()
		nn := newNode48[V]()
		n48 := nn.node48()
		n48.header = n256.header
		slot := 0
		for b := 0; b < node256Max; b++ {
			if n256.children[b] == nil {
				continue
			}
			n48.children[slot] = n256.children[b]
			n48.slots[b] = byte(slot)
			n48.set(byte(b))
			slot++
		}
		n.replaceWith(nn)
	}
}

// nextChild returns the smallest child byte >= from and its node, or
// (-1, nil) when no such child exists. from may be 0..256.
func (n *artNode[V]) nextChild(from int) (int, *artNode[V]) {
	if from > 255 {
		return -1, nil
	}
	switch n.kind {
	case node4Kind:
		n4 := n.node4()
		for i := 0; i < n4.size; i++ {
			if int(n4.keys[i]) >= from {
				return int(n4.keys[i]), n4.children[i]
			}
		}
	case node16Kind:
		n16 := n.node16()
		idx := sort.Search(n16.size, func(i int) bool { return int(n16.keys[i]) >= from })
		if idx < n16.size {
			return int(n16.keys[idx]), n16.children[idx]
		}
	case node48Kind:
		n48 := n.node48()
		if b := n48.next(from); b >= 0 {
			return b, n48.children[n48.slots[b]]
		}
	case node256Kind:
		n256 := n.node256()
		for b := from; b < node256Max; b++ {
			if n256.children[b] != nil {
				return b, n256.children[b]
			}
		}
	}
	return -1, nil
}

// prevChild returns the largest child byte <= from and its node, or
// (-1, nil) when no such child exists.
func (n *artNode[V]) prevChild(from int) (int, *artNode[V]) {
	if from < 0 {
		return -1, nil
	}
	switch n.kind {
	case node4Kind:
		n4 := n.node4()
		for i := n4.size - 1; i >= 0; i-- {
			if int(n4.keys[i]) <= from {
				return int(n4.keys[i]), n4.children[i]
			}
		}
	case node16Kind:
		n16 := n.node16()
		for i := n16.size - 1; i >= 0; i-- {
			if int(n16.keys[i]) <= from {
				return int(n16.keys[i]), n16.children[i]
			}
		}
	case node48Kind:
		n48 := n.node48()
		if b := n48.prev(from); b >= 0 {
			return b, n48.children[n48.slots[b]]
		}
	case node256Kind:
		n256 := n.node256()
		for b := from; b >= 0; b-- {
			if n256.children[b] != nil {
				return b, n256.children[b]
			}
		}
	}
	return -1, nil
}

// compress restores the structural invariants after a child or the own
// value has been removed: a valueless node with a single remaining
// child is merged into that child (prefix + branch byte + child
// prefix), and a childless node still holding its own value degenerates
// into a leaf.
func (n *artNode[V]) compress() {
	if n.isLeaf() {
		return
	}
	h := n.header()
	if h.hasValue {
		if h.size == 0 {
			n.replaceWith(newLeafOwned(h.prefix, h.value))
		}
		return
	}
	if h.size != 1 {
		return
	}
	b, child := n.nextChild(0)
	merged := make([]byte, 0, len(h.prefix)+1)
	merged = append(merged, h.prefix...)
	merged = append(merged, byte(b))
	if child.isLeaf() {
		l := child.leaf()
		l.suffix = append(merged, l.suffix...)
	} else {
		ch := child.header()
		ch.prefix = append(merged, ch.prefix...)
	}
	n.replaceWith(child)
}

// present-bitmap helpers for node48.

func (n *node48[V]) has(b byte) bool {
	return n.present[b>>6]&(1<<(b&63)) != 0
}

func (n *node48[V]) set(b byte) {
	n.present[b>>6] |= 1 << (b & 63)
}

func (n *node48[V]) clear(b byte) {
	n.present[b>>6] &^= 1 << (b & 63)
}

// next returns the smallest present byte >= from, or -1.
func (n *node48[V]) next(from int) int {
	for b := from; b < 256; {
		word := n.present[b>>6] >> (b & 63)
		if word != 0 {
			return b + bits.TrailingZeros64(word)
		}
		b = (b>>6 + 1) << 6
	}
	return -1
}

// prev returns the largest present byte <= from, or -1.
func (n *node48[V]) prev(from int) int {
	for b := from; b >= 0; {
		word := n.present[b>>6] << (63 - b&63)
		if word != 0 {
			return b - bits.LeadingZeros64(word)
		}
		b = (b>>6)<<6 - 1
	}
	return -1
}
