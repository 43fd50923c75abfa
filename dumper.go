package art

import (
	"fmt"
	"io"
	"strings"
)

// ##################################################
//  useful during development, debugging and testing
// ##################################################

func (k kind) String() string {
	switch k {
	case leafKind:
		return "leaf"
	case node4Kind:
		return "node4"
	case node16Kind:
		return "node16"
	case node48Kind:
		return "node48"
	case node256Kind:
		return "node256"
	}
	return "invalid"
}

// dumpString is just a wrapper for dump.
func (t *Tree[V]) dumpString() string {
	w := new(strings.Builder)
	t.dump(w)

	return w.String()
}

// dump the tree structure and all the nodes to w.
func (t *Tree[V]) dump(w io.Writer) {
	if t == nil {
		return
	}
	fmt.Fprintf(w, "### size(%d)\n", t.size)
	if t.root != nil {
		t.root.dumpRec(w, 0)
	}
}

// dumpRec, rec-descent the trie.
func (n *artNode[V]) dumpRec(w io.Writer, depth int) {
	indent := strings.Repeat(".", depth)

	if n.isLeaf() {
		l := n.leaf()
		fmt.Fprintf(w, "%sleaf suffix(%q)\n", indent, l.suffix)
		return
	}

	h := n.header()
	fmt.Fprintf(w, "%s%s prefix(%q) childs(%d)", indent, n.kind, h.prefix, h.size)
	if h.hasValue {
		fmt.Fprintf(w, " +value")
	}

	fmt.Fprintf(w, " bytes(")
	sep := ""
	for b, child := n.nextChild(0); child != nil; b, child = n.nextChild(b + 1) {
		fmt.Fprintf(w, "%s0x%02x", sep, b)
		sep = " "
	}
	fmt.Fprintln(w, ")")

	for b, child := n.nextChild(0); child != nil; b, child = n.nextChild(b + 1) {
		child.dumpRec(w, depth+1)
	}
}

// nodeStats counts the nodes of each kind in a subtree.
type nodeStats struct {
	leaves, node4s, node16s, node48s, node256s int
}

func (t *Tree[V]) stats() (s nodeStats) {
	if t.root != nil {
		t.root.statsRec(&s)
	}
	return s
}

func (n *artNode[V]) statsRec(s *nodeStats) {
	switch n.kind {
	case leafKind:
		s.leaves++
		return
	case node4Kind:
		s.node4s++
	case node16Kind:
		s.node16s++
	case node48Kind:
		s.node48s++
	case node256Kind:
		s.node256s++
	}
	for b, child := n.nextChild(0); child != nil; b, child = n.nextChild(b + 1) {
		child.statsRec(s)
	}
}
