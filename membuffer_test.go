package viewengine

import (
	"bytes"
	"encoding/binary"
	"unicode/utf8"
)

// memBuffer is a minimal in-memory Buffer used only by this package's
// tests. It is not part of the engine's public surface but gives the test suite a real
// implementation of every method the engine calls.
//
// Mark bookkeeping follows nsf-godit's line/buffer design
// (nsf-godit/buffer.go) reworked around a flat byte slice, with
// markOffsetTree (adapted from nsf-godit's autocompletion word-cache
// tree, llrb_tree.go) keeping marks ordered by offset; Insert/Delete
// rebase only the marks at or after the edit point.
type memBuffer struct {
	data []byte

	marks    map[Mark]int // markID -> current offset, EPOS if gone
	nextMark Mark
	index    markOffsetTree // (offset,markID) -> markID, ordered by offset
}

func newMemBuffer(content string) *memBuffer {
	return &memBuffer{
		data:  []byte(content),
		marks: make(map[Mark]int),
	}
}

func markIndexKey(offset int, id Mark) []byte {
	var b [16]byte
	binary.BigEndian.PutUint64(b[0:8], uint64(offset))
	binary.BigEndian.PutUint64(b[8:16], uint64(id))
	return b[:]
}

func (b *memBuffer) Size() int { return len(b.data) }

func (b *memBuffer) BytesGet(pos, max int, out []byte) int {
	if pos < 0 || pos > len(b.data) || max <= 0 {
		return 0
	}
	n := copy(out[:max], b.data[pos:])
	return n
}

func (b *memBuffer) MarkSet(pos int) Mark {
	if pos < 0 {
		pos = 0
	}
	if pos > len(b.data) {
		pos = len(b.data)
	}
	b.nextMark++
	id := b.nextMark
	b.marks[id] = pos
	b.index.set(markIndexKey(pos, id), int(id))
	return id
}

func (b *memBuffer) MarkGet(m Mark) int {
	pos, ok := b.marks[m]
	if !ok {
		return EPOS
	}
	return pos
}

func (b *memBuffer) LinenoByPos(pos int) int {
	if pos > len(b.data) {
		pos = len(b.data)
	}
	return 1 + bytes.Count(b.data[:pos], []byte{'\n'})
}

func (b *memBuffer) LineBegin(pos int) int {
	if pos > len(b.data) {
		pos = len(b.data)
	}
	i := bytes.LastIndexByte(b.data[:pos], '\n')
	if i == -1 {
		return 0
	}
	return i + 1
}

func lineEndFrom(data []byte, lineStart int) int {
	if i := bytes.IndexByte(data[lineStart:], '\n'); i != -1 {
		return lineStart + i
	}
	return len(data)
}

func (b *memBuffer) LineUp(pos int) int {
	lineStart := b.LineBegin(pos)
	if lineStart == 0 {
		return EPOS
	}
	col := pos - lineStart
	prevStart := b.LineBegin(lineStart - 1)
	prevEnd := lineStart - 1
	newPos := prevStart + col
	if newPos > prevEnd {
		newPos = prevEnd
	}
	return newPos
}

func (b *memBuffer) LineDown(pos int) int {
	lineStart := b.LineBegin(pos)
	col := pos - lineStart
	curEnd := lineEndFrom(b.data, lineStart)
	if curEnd >= len(b.data) {
		return EPOS
	}
	nextStart := curEnd + 1
	nextEnd := lineEndFrom(b.data, nextStart)
	newPos := nextStart + col
	if newPos > nextEnd {
		newPos = nextEnd
	}
	return newPos
}

func (b *memBuffer) CharNext(pos int) int {
	if pos >= len(b.data) {
		return EPOS
	}
	_, n := utf8.DecodeRune(b.data[pos:])
	if n <= 0 {
		n = 1
	}
	return pos + n
}

func (b *memBuffer) CharPrev(pos int) int {
	if pos <= 0 {
		return EPOS
	}
	_, n := utf8.DecodeLastRune(b.data[:pos])
	if n <= 0 {
		n = 1
	}
	return pos - n
}

type memIterator struct {
	data []byte
	pos  int
}

func (b *memBuffer) Iterator(pos int) ByteIterator {
	return &memIterator{data: b.data, pos: pos}
}

func (it *memIterator) Get() (byte, bool) {
	if it.pos < 0 || it.pos >= len(it.data) {
		return 0, false
	}
	return it.data[it.pos], true
}

func (it *memIterator) Next() bool {
	it.pos++
	return it.pos >= 0 && it.pos < len(it.data)
}

func (it *memIterator) Prev() bool {
	it.pos--
	return it.pos >= 0 && it.pos < len(it.data)
}

var bracketPairs = map[byte]byte{'(': ')', '{': '}', '[': ']'}
var bracketPairsRev = map[byte]byte{')': '(', '}': '{', ']': '['}

func (b *memBuffer) BracketMatchExcept(pos int, except string) int {
	if pos < 0 || pos >= len(b.data) {
		return EPOS
	}
	ch := b.data[pos]
	if len(except) == 2 && (ch == except[0] || ch == except[1]) {
		return EPOS
	}

	if close, ok := bracketPairs[ch]; ok {
		depth := 1
		for i := pos + 1; i < len(b.data); i++ {
			switch b.data[i] {
			case ch:
				depth++
			case close:
				depth--
				if depth == 0 {
					return i
				}
			}
		}
		return EPOS
	}
	if open, ok := bracketPairsRev[ch]; ok {
		depth := 1
		for i := pos - 1; i >= 0; i-- {
			switch b.data[i] {
			case ch:
				depth++
			case open:
				depth--
				if depth == 0 {
					return i
				}
			}
		}
		return EPOS
	}
	return EPOS
}

// Insert splices data into the buffer at pos, rebasing every mark at or
// after pos forward by len(data) (property 4: mark stability across
// edits).
func (b *memBuffer) Insert(pos int, data []byte) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(b.data) {
		pos = len(b.data)
	}
	next := make([]byte, 0, len(b.data)+len(data))
	next = append(next, b.data[:pos]...)
	next = append(next, data...)
	next = append(next, b.data[pos:]...)
	b.data = next
	b.rebase(pos, len(data), -1, -1)
}

// Delete removes n bytes starting at pos. Marks strictly inside the
// deleted range resolve to EPOS thereafter; marks at or after the range's
// end shift back by n.
func (b *memBuffer) Delete(pos, n int) {
	if pos < 0 {
		pos = 0
	}
	if pos+n > len(b.data) {
		n = len(b.data) - pos
	}
	if n <= 0 {
		return
	}
	next := make([]byte, 0, len(b.data)-n)
	next = append(next, b.data[:pos]...)
	next = append(next, b.data[pos+n:]...)
	b.data = next
	b.rebase(pos, -n, pos, pos+n)
}

// rebase walks the whole mark index in ascending offset order, skipping
// marks before editPos and shifting every mark at or after it by delta,
// then rebuilds the index from the marks map. Marks whose
// original offset falls strictly inside [goneBegin, goneEnd) (a deleted
// range) resolve to EPOS instead.
func (b *memBuffer) rebase(editPos, delta, goneBegin, goneEnd int) {
	type touched struct {
		id     Mark
		offset int
	}
	var toUpdate []touched

	b.index.root.walk(func(key []byte, value int) {
		offset := int(binary.BigEndian.Uint64(key[0:8]))
		id := Mark(binary.BigEndian.Uint64(key[8:16]))
		if offset < editPos {
			return
		}
		toUpdate = append(toUpdate, touched{id: id, offset: offset})
	})

	for _, t := range toUpdate {
		newOffset := t.offset + delta
		if goneBegin >= 0 && t.offset > goneBegin && t.offset < goneEnd {
			b.marks[t.id] = EPOS
			continue
		}
		if newOffset < editPos {
			newOffset = editPos
		}
		b.marks[t.id] = newOffset
	}

	// the index's keys are now stale (they still embed the pre-edit
	// offsets); rebuild it from the authoritative marks map.
	b.index.clear()
	for id, off := range b.marks {
		if off == EPOS {
			continue
		}
		b.index.set(markIndexKey(off, id), int(id))
	}
}
