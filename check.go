package art

import (
	"fmt"

	"github.com/hideo55/go-popcount"
)

// checkInvariants walks the whole tree and verifies the structural
// invariants every public operation must preserve:
//
//  1. inner prefixes are maximal: no valueless node has fewer than two
//     children, so no prefix could be merged upward
//  2. node4/node16 child bytes are strictly ascending with no gaps in
//     the occupied region
//  3. each shape's occupancy stays inside its band
//  4. node48 index table, presence bitmap and child array agree
//  5. the O(1) size counter equals the number of stored keys
//
// It is meant for tests; a healthy tree always returns nil.
func (t *Tree[V]) checkInvariants() error {
	count := 0
	if t.root != nil {
		if err := t.root.check(&count, nil); err != nil {
			return err
		}
	}
	if count != t.size {
		return fmt.Errorf("size counter is %d, tree holds %d keys", t.size, count)
	}
	return nil
}

func (n *artNode[V]) check(count *int, path []byte) error {
	if n.isLeaf() {
		*count++
		return nil
	}

	h := n.header()
	if h.hasValue {
		*count++
	}

	switch {
	case h.size == 0:
		return fmt.Errorf("at %q: inner node without children", path)
	case h.size == 1 && !h.hasValue:
		return fmt.Errorf("at %q: valueless single-child node not collapsed", path)
	}

	if err := n.checkShape(path); err != nil {
		return err
	}

	for b, child := n.nextChild(0); child != nil; b, child = n.nextChild(b + 1) {
		childPath := append(append(append([]byte(nil), path...), h.prefix...), byte(b))
		if err := child.check(count, childPath); err != nil {
			return err
		}
	}
	return nil
}

func (n *artNode[V]) checkShape(path []byte) error {
	h := n.header()

	switch n.kind {
	case node4Kind:
		n4 := n.node4()
		if h.size > node4Max || (h.size < node4Min && !h.hasValue) {
			return fmt.Errorf("at %q: node4 with %d children", path, h.size)
		}
		for i := 0; i < n4.size; i++ {
			if n4.children[i] == nil {
				return fmt.Errorf("at %q: node4 slot %d is nil", path, i)
			}
			if i > 0 && n4.keys[i-1] >= n4.keys[i] {
				return fmt.Errorf("at %q: node4 bytes not strictly ascending", path)
			}
		}
	case node16Kind:
		n16 := n.node16()
		if h.size < node16Min || h.size > node16Max {
			return fmt.Errorf("at %q: node16 with %d children", path, h.size)
		}
		for i := 0; i < n16.size; i++ {
			if n16.children[i] == nil {
				return fmt.Errorf("at %q: node16 slot %d is nil", path, i)
			}
			if i > 0 && n16.keys[i-1] >= n16.keys[i] {
				return fmt.Errorf("at %q: node16 bytes not strictly ascending", path)
			}
		}
	case node48Kind:
		n48 := n.node48()
		if h.size < node48Min || h.size > node48Max {
			return fmt.Errorf("at %q: node48 with %d children", path, h.size)
		}
		if got := popcount.CountSlice(n48.present[:]); int(got) != h.size {
			return fmt.Errorf("at %q: node48 bitmap holds %d bytes, size is %d", path, got, h.size)
		}
		seen := [node48Max]bool{}
		for b := n48.next(0); b >= 0; b = n48.next(b + 1) {
			slot := n48.slots[b]
			if int(slot) >= node48Max || n48.children[slot] == nil {
				return fmt.Errorf("at %q: node48 byte 0x%02x points at empty slot %d", path, b, slot)
			}
			if seen[slot] {
				return fmt.Errorf("at %q: node48 slot %d referenced twice", path, slot)
			}
			seen[slot] = true
		}
	case node256Kind:
		n256 := n.node256()
		if h.size < node256Min || h.size > node256Max {
			return fmt.Errorf("at %q: node256 with %d children", path, h.size)
		}
		occupied := 0
		for b := 0; b < node256Max; b++ {
			if n256.children[b] != nil {
				occupied++
			}
		}
		if occupied != h.size {
			return fmt.Errorf("at %q: node256 holds %d children, size is %d", path, occupied, h.size)
		}
	}
	return nil
}
