package viewengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeValidEmptyIncludes(t *testing.T) {
	r := Range{Begin: 2, End: 5}
	assert.True(t, r.Valid())
	assert.False(t, r.Empty())
	assert.True(t, r.Includes(2))
	assert.True(t, r.Includes(4))
	assert.False(t, r.Includes(5))
	assert.False(t, r.Includes(1))

	empty := Range{Begin: 3, End: 3}
	assert.True(t, empty.Valid())
	assert.True(t, empty.Empty())
	assert.False(t, empty.Includes(3))

	invalid := Range{Begin: 5, End: 2}
	assert.False(t, invalid.Valid())
}

func TestMemBufferBracketMatchExcept(t *testing.T) {
	buf := newMemBuffer("a(b[c]d)e")

	// "a(b[c]d)e": '(' at index 1 matches ')' at index 7.
	assert.Equal(t, 7, buf.BracketMatchExcept(1, ""))
	// '[' at index 3 matches ']' at index 5.
	assert.Equal(t, 5, buf.BracketMatchExcept(3, ""))
	// closing bracket matches backward.
	assert.Equal(t, 1, buf.BracketMatchExcept(7, ""))

	assert.Equal(t, EPOS, buf.BracketMatchExcept(0, "")) // 'a' is not a bracket
}

func TestMemBufferCharNextPrevAcrossMultibyte(t *testing.T) {
	buf := newMemBuffer("aéb") // a, é (2 bytes), b

	p := buf.CharNext(0)
	assert.Equal(t, 1, p)
	p = buf.CharNext(p)
	assert.Equal(t, 3, p)

	p = buf.CharPrev(p)
	assert.Equal(t, 1, p)
	p = buf.CharPrev(p)
	assert.Equal(t, 0, p)
	assert.Equal(t, EPOS, buf.CharPrev(0))
}

func TestMemBufferLineBeginAndLineno(t *testing.T) {
	buf := newMemBuffer("aa\nbb\ncc")

	assert.Equal(t, 0, buf.LineBegin(1))
	assert.Equal(t, 3, buf.LineBegin(4))
	assert.Equal(t, 6, buf.LineBegin(7))

	assert.Equal(t, 1, buf.LinenoByPos(1))
	assert.Equal(t, 2, buf.LinenoByPos(4))
	assert.Equal(t, 3, buf.LinenoByPos(7))
}
