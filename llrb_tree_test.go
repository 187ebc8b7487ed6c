package viewengine

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// markOffsetTree is a left-leaning red-black tree keyed on byte-encoded
// buffer offsets. It backs the in-memory test Buffer's mark table
// (membuffer_test.go), giving it an ordered view of every live mark. An
// edit walks the whole tree in offset order, rebases only the marks at or
// after the edit point, and then rebuilds the tree from the mark table.
// Test-only: no non-test file in this package refers to it.
//
// Adapted from the word-cache tree nsf-godit's autocompletion layer used
// to deduplicate identifiers seen in a buffer (insert-only, byte-slice
// keyed); the rotation/insert algorithm is unchanged, the key type and the
// call sites are new.
type markOffsetTree struct {
	root *markOffsetNode
}

type markOffsetNode struct {
	key   []byte
	value int // Mark, stored as its uint64 bit pattern truncated to int id
	left  *markOffsetNode
	right *markOffsetNode
	color bool
}

const (
	llrbRed   = false
	llrbBlack = true
)

func (n *markOffsetNode) isRed() bool {
	return n != nil && !n.color
}

func (n *markOffsetNode) rotateLeft() *markOffsetNode {
	x := n.right
	n.right = x.left
	x.left = n
	x.color = n.color
	n.color = llrbRed
	return x
}

func (n *markOffsetNode) rotateRight() *markOffsetNode {
	x := n.left
	n.left = x.right
	x.right = n
	x.color = n.color
	n.color = llrbRed
	return x
}

func (n *markOffsetNode) flipColors() {
	n.color = !n.color
	n.left.color = !n.left.color
	n.right.color = !n.right.color
}

// walk visits every (key, value) pair in ascending key order.
func (n *markOffsetNode) walk(cb func(key []byte, value int)) {
	if n == nil {
		return
	}
	n.left.walk(cb)
	cb(n.key, n.value)
	n.right.walk(cb)
}

func (t *markOffsetTree) walk(cb func(key []byte, value int)) {
	t.root.walk(cb)
}

// set inserts key/value, replacing the value if key is already present.
func (t *markOffsetTree) set(key []byte, value int) {
	t.root = t.root.set(key, value)
}

func (n *markOffsetNode) set(key []byte, value int) *markOffsetNode {
	if n == nil {
		return &markOffsetNode{key: key, value: value}
	}

	switch cmp := bytes.Compare(key, n.key); {
	case cmp < 0:
		n.left = n.left.set(key, value)
	case cmp > 0:
		n.right = n.right.set(key, value)
	default:
		n.value = value
	}

	if n.right.isRed() && !n.left.isRed() {
		n = n.rotateLeft()
	}
	if n.left.isRed() && n.left.left.isRed() {
		n = n.rotateRight()
	}
	if n.left.isRed() && n.right.isRed() {
		n.flipColors()
	}
	return n
}

func (t *markOffsetTree) get(key []byte) (int, bool) {
	n := t.root
	for n != nil {
		switch cmp := bytes.Compare(key, n.key); {
		case cmp < 0:
			n = n.left
		case cmp > 0:
			n = n.right
		default:
			return n.value, true
		}
	}
	return 0, false
}

func (t *markOffsetTree) clear() {
	t.root = nil
}

func offsetKey(n int) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(n))
	return b[:]
}

func TestMarkOffsetTreeOrderedWalk(t *testing.T) {
	var tree markOffsetTree
	r := rand.New(rand.NewSource(1))
	perm := r.Perm(256)

	for _, v := range perm {
		tree.set(offsetKey(v), v*10)
	}

	var seen []int
	tree.walk(func(key []byte, value int) {
		off := int(binary.BigEndian.Uint64(key))
		assert.Equal(t, off*10, value)
		seen = append(seen, off)
	})

	require.Len(t, seen, 256)
	for i := 1; i < len(seen); i++ {
		assert.Less(t, seen[i-1], seen[i], "walk must visit keys in ascending order")
	}
}

func TestMarkOffsetTreeSetReplacesValue(t *testing.T) {
	var tree markOffsetTree
	tree.set(offsetKey(5), 1)
	tree.set(offsetKey(5), 2)

	v, ok := tree.get(offsetKey(5))
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestMarkOffsetTreeGetMissing(t *testing.T) {
	var tree markOffsetTree
	tree.set(offsetKey(1), 1)

	_, ok := tree.get(offsetKey(2))
	assert.False(t, ok)

	tree.clear()
	_, ok = tree.get(offsetKey(1))
	assert.False(t, ok)
}
