package art

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLeafCopiesSuffix(t *testing.T) {
	suffix := []byte{'a', 'r', 't'}
	l := newLeaf[string](suffix, "tree")

	require.True(t, l.isLeaf())
	assert.Equal(t, []byte("art"), l.leaf().suffix)
	assert.Equal(t, "tree", l.leaf().value)

	suffix[0] = 'x'
	assert.Equal(t, []byte("art"), l.leaf().suffix, "leaf must own its suffix")
}

func TestNodeAddChildAndFindChild(t *testing.T) {
	nodes := []*artNode[byte]{newNode4[byte](), newNode16[byte](), newNode48[byte](), newNode256[byte]()}

	for _, n := range nodes {
		max := n.maxSize()
		for i := 0; i < max; i++ {
			n.addChild(byte(i), newLeaf[byte]([]byte{byte(i)}, byte(i)))
		}

		for i := 0; i < max; i++ {
			ref := n.findChild(byte(i))
			require.NotNil(t, ref, "child %d missing", i)
			assert.Equal(t, byte(i), (*ref).leaf().value)
		}

		// a removed byte must be absent in every shape, including a
		// node256 where all 256 bytes were occupied
		n.removeChild(byte(max - 1))
		assert.Nil(t, n.findChild(byte(max-1)))
	}
}

func TestNode4AddChildKeepsSorted(t *testing.T) {
	n := newNode4[int]()

	for i := 4; i > 0; i-- {
		n.addChild(byte(i), newLeaf[int](nil, i))
	}

	require.Equal(t, 4, n.header().size)
	assert.Equal(t, []byte{1, 2, 3, 4}, n.node4().keys[:])
}

func TestNode16AddChildKeepsSorted(t *testing.T) {
	n := newNode16[int]()

	for i := node16Max; i > node4Max; i-- {
		n.addChild(byte(i), newLeaf[int](nil, i))
	}

	n16 := n.node16()
	for i := 1; i < n16.size; i++ {
		assert.Less(t, n16.keys[i-1], n16.keys[i])
	}
}

func TestNodeGrowOnOverflow(t *testing.T) {
	testCases := []struct {
		children int
		expected kind
	}{
		{node4Max + 1, node16Kind},
		{node16Max + 1, node48Kind},
		{node48Max + 1, node256Kind},
	}

	for _, tc := range testCases {
		n := newNode4[int]()
		for i := 0; i < tc.children; i++ {
			n.addChild(byte(i), newLeaf[int]([]byte{byte(i)}, i))
		}

		assert.Equal(t, tc.expected, n.kind)
		assert.Equal(t, tc.children, n.header().size)

		for i := 0; i < tc.children; i++ {
			ref := n.findChild(byte(i))
			require.NotNil(t, ref)
			assert.Equal(t, i, (*ref).leaf().value)
		}
	}
}

func TestNodeGrowKeepsHeader(t *testing.T) {
	n := newNode4[string]()
	h := n.header()
	h.prefix = []byte("pre")
	h.setValue("own")

	for i := 0; i <= node4Max; i++ {
		n.addChild(byte(i), newLeaf[string](nil, ""))
	}

	require.Equal(t, node16Kind, n.kind)
	assert.Equal(t, []byte("pre"), n.header().prefix)
	assert.True(t, n.header().hasValue)
	assert.Equal(t, "own", n.header().value)
}

func TestNodeShrinkOnUnderflow(t *testing.T) {
	testCases := []struct {
		children int
		expected kind
	}{
		{node16Min, node4Kind},
		{node48Min, node16Kind},
		{node256Min, node48Kind},
	}

	for _, tc := range testCases {
		n := newNode4[int]()
		for i := 0; i < tc.children; i++ {
			n.addChild(byte(i), newLeaf[int]([]byte{byte(i)}, i))
		}

		n.removeChild(0)

		assert.Equal(t, tc.expected, n.kind)
		assert.Equal(t, tc.children-1, n.header().size)

		assert.Nil(t, n.findChild(0))
		for i := 1; i < tc.children; i++ {
			ref := n.findChild(byte(i))
			require.NotNil(t, ref)
			assert.Equal(t, i, (*ref).leaf().value)
		}
	}
}

func TestNode48SlotReuseAfterRemove(t *testing.T) {
	n := newNode4[int]()
	for i := 0; i < node48Max; i++ {
		n.addChild(byte(i), newLeaf[int](nil, i))
	}
	require.Equal(t, node48Kind, n.kind)

	n.removeChild(7)
	n.addChild(200, newLeaf[int](nil, 200))

	require.Equal(t, node48Max, n.header().size)
	assert.Nil(t, n.findChild(7))
	assert.Equal(t, 200, (*n.findChild(200)).leaf().value)
}

func TestNextChildAscending(t *testing.T) {
	for _, total := range []int{3, 12, 30, 200} {
		n := newNode4[int]()
		for i := 0; i < total; i++ {
			b := byte(i * 256 / total)
			n.addChild(b, newLeaf[int](nil, int(b)))
		}

		var got []int
		for b, child := n.nextChild(0); child != nil; b, child = n.nextChild(b + 1) {
			got = append(got, b)
		}

		require.Len(t, got, total)
		for i := 1; i < len(got); i++ {
			assert.Less(t, got[i-1], got[i])
		}
	}
}

func TestPrevChildDescending(t *testing.T) {
	for _, total := range []int{3, 12, 30, 200} {
		n := newNode4[int]()
		for i := 0; i < total; i++ {
			b := byte(i * 256 / total)
			n.addChild(b, newLeaf[int](nil, int(b)))
		}

		var got []int
		for b, child := n.prevChild(255); child != nil; b, child = n.prevChild(b - 1) {
			got = append(got, b)
		}

		require.Len(t, got, total)
		for i := 1; i < len(got); i++ {
			assert.Greater(t, got[i-1], got[i])
		}
	}
}

func TestNode48Bitmap(t *testing.T) {
	n48 := &node48[int]{}

	for _, b := range []byte{0, 63, 64, 100, 255} {
		n48.set(b)
	}

	assert.True(t, n48.has(0))
	assert.True(t, n48.has(255))
	assert.False(t, n48.has(1))

	assert.Equal(t, 0, n48.next(0))
	assert.Equal(t, 63, n48.next(1))
	assert.Equal(t, 64, n48.next(64))
	assert.Equal(t, 255, n48.next(101))
	assert.Equal(t, 255, n48.prev(255))
	assert.Equal(t, 100, n48.prev(254))
	assert.Equal(t, 0, n48.prev(62))

	n48.clear(0)
	assert.False(t, n48.has(0))
	assert.Equal(t, 63, n48.next(0))
	assert.Equal(t, -1, n48.prev(62))
}

func TestCompressMergesSingleChild(t *testing.T) {
	child := newLeaf[string]([]byte("log"), "v")

	n := newNode4[string]()
	n.header().prefix = []byte("cata")
	n.addChild('l', child)

	n.compress()

	require.True(t, n.isLeaf())
	assert.Equal(t, []byte("catallog"), n.leaf().suffix)
}

func TestCompressKeepsValuedNode(t *testing.T) {
	n := newNode4[string]()
	n.header().prefix = []byte("cat")
	n.header().setValue("cat")
	n.addChild('a', newLeaf[string]([]byte("log"), "catalog"))

	n.compress()

	assert.Equal(t, node4Kind, n.kind, "a valued single-child node must not collapse")
}

func TestCompressValueOnlyNodeBecomesLeaf(t *testing.T) {
	n := newNode4[string]()
	n.header().prefix = []byte("cat")
	n.header().setValue("cat")

	n.compress()

	require.True(t, n.isLeaf())
	assert.True(t, bytes.Equal([]byte("cat"), n.leaf().suffix))
	assert.Equal(t, "cat", n.leaf().value)
}
