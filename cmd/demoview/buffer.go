package main

import (
	"sort"
	"unicode/utf8"

	"github.com/nsf/viewengine"
)

// fileBuffer is a minimal viewengine.Buffer over a file loaded whole into
// memory. It exists only to give cmd/demoview something to render; the
// engine's own tests exercise a separate, more thoroughly instrumented
// Buffer. Line boundaries are indexed up front; marks are tracked in a
// sorted slice rather than the ordered tree the engine's test buffer uses
// (llrb_tree_test.go), since a demo-sized file never holds enough live
// marks for that to matter.
type fileBuffer struct {
	data []byte

	lineStarts []int // byte offset of the start of each logical line

	marks    []markEntry
	nextMark viewengine.Mark
}

type markEntry struct {
	id     viewengine.Mark
	offset int
}

func newFileBuffer(data []byte) *fileBuffer {
	b := &fileBuffer{data: data}
	b.reindex()
	return b
}

func (b *fileBuffer) reindex() {
	b.lineStarts = b.lineStarts[:0]
	b.lineStarts = append(b.lineStarts, 0)
	for i, ch := range b.data {
		if ch == '\n' {
			b.lineStarts = append(b.lineStarts, i+1)
		}
	}
}

func (b *fileBuffer) Size() int { return len(b.data) }

func (b *fileBuffer) BytesGet(pos, max int, out []byte) int {
	if pos < 0 || pos >= len(b.data) {
		return 0
	}
	n := copy(out[:max], b.data[pos:])
	return n
}

func (b *fileBuffer) MarkSet(pos int) viewengine.Mark {
	b.nextMark++
	id := b.nextMark
	i := sort.Search(len(b.marks), func(i int) bool { return b.marks[i].offset >= pos })
	b.marks = append(b.marks, markEntry{})
	copy(b.marks[i+1:], b.marks[i:])
	b.marks[i] = markEntry{id: id, offset: pos}
	return id
}

func (b *fileBuffer) MarkGet(m viewengine.Mark) int {
	for _, e := range b.marks {
		if e.id == m {
			return e.offset
		}
	}
	return viewengine.EPOS
}

// Insert splices data into the buffer at pos, shifting every mark at or
// after pos forward by len(data) and re-deriving line starts.
func (b *fileBuffer) Insert(pos int, data []byte) {
	grown := make([]byte, 0, len(b.data)+len(data))
	grown = append(grown, b.data[:pos]...)
	grown = append(grown, data...)
	grown = append(grown, b.data[pos:]...)
	b.data = grown

	for i := range b.marks {
		if b.marks[i].offset >= pos {
			b.marks[i].offset += len(data)
		}
	}
	b.reindex()
}

// Delete removes the n bytes at pos. Marks strictly inside the removed
// range collapse to pos (and so resolve to content that still exists,
// unlike a mark inside an edit the engine's tests exercise via EPOS);
// marks after the range shift back by n.
func (b *fileBuffer) Delete(pos, n int) {
	end := pos + n
	shrunk := make([]byte, 0, len(b.data)-n)
	shrunk = append(shrunk, b.data[:pos]...)
	shrunk = append(shrunk, b.data[end:]...)
	b.data = shrunk

	for i := range b.marks {
		switch {
		case b.marks[i].offset > pos && b.marks[i].offset < end:
			b.marks[i].offset = pos
		case b.marks[i].offset >= end:
			b.marks[i].offset -= n
		}
	}
	b.reindex()
}

func (b *fileBuffer) LinenoByPos(pos int) int {
	i := sort.Search(len(b.lineStarts), func(i int) bool { return b.lineStarts[i] > pos })
	return i // lineStarts[0]==0 so the search index is already 1-based
}

func (b *fileBuffer) LineBegin(pos int) int {
	lineno := b.LinenoByPos(pos)
	return b.lineStarts[lineno-1]
}

func (b *fileBuffer) LineUp(pos int) int {
	lineno := b.LinenoByPos(pos)
	if lineno <= 1 {
		return viewengine.EPOS
	}
	col := pos - b.lineStarts[lineno-1]
	target := b.lineStarts[lineno-2] + col
	if limit := b.lineEnd(lineno - 1); target > limit {
		target = limit
	}
	return target
}

func (b *fileBuffer) LineDown(pos int) int {
	lineno := b.LinenoByPos(pos)
	if lineno >= len(b.lineStarts) {
		return viewengine.EPOS
	}
	col := pos - b.lineStarts[lineno-1]
	target := b.lineStarts[lineno] + col
	if limit := b.lineEnd(lineno + 1); target > limit {
		target = limit
	}
	return target
}

func (b *fileBuffer) lineEnd(lineno int) int {
	if lineno >= len(b.lineStarts) {
		return len(b.data)
	}
	end := b.lineStarts[lineno] - 1
	if end < b.lineStarts[lineno-1] {
		end = b.lineStarts[lineno-1]
	}
	return end
}

func (b *fileBuffer) CharNext(pos int) int {
	if pos >= len(b.data) {
		return viewengine.EPOS
	}
	_, size := utf8.DecodeRune(b.data[pos:])
	return pos + size
}

func (b *fileBuffer) CharPrev(pos int) int {
	if pos <= 0 {
		return viewengine.EPOS
	}
	_, size := utf8.DecodeLastRune(b.data[:pos])
	return pos - size
}

func (b *fileBuffer) Iterator(pos int) viewengine.ByteIterator {
	return &fileIterator{buf: b, pos: pos}
}

var demoBracketPairs = map[byte]byte{'(': ')', '[': ']', '{': '}'}
var demoBracketPairsRev = map[byte]byte{')': '(', ']': '[', '}': '{'}

func (b *fileBuffer) BracketMatchExcept(pos int, except string) int {
	if pos < 0 || pos >= len(b.data) {
		return viewengine.EPOS
	}
	ch := b.data[pos]
	skip := func(c byte) bool {
		return len(except) == 2 && (c == except[0] || c == except[1])
	}
	if close, ok := demoBracketPairs[ch]; ok && !skip(ch) {
		depth := 0
		for i := pos; i < len(b.data); i++ {
			c := b.data[i]
			if skip(c) {
				continue
			}
			if c == ch {
				depth++
			} else if c == close {
				depth--
				if depth == 0 {
					return i
				}
			}
		}
		return viewengine.EPOS
	}
	if open, ok := demoBracketPairsRev[ch]; ok && !skip(ch) {
		depth := 0
		for i := pos; i >= 0; i-- {
			c := b.data[i]
			if skip(c) {
				continue
			}
			if c == ch {
				depth++
			} else if c == open {
				depth--
				if depth == 0 {
					return i
				}
			}
		}
		return viewengine.EPOS
	}
	return viewengine.EPOS
}

type fileIterator struct {
	buf *fileBuffer
	pos int
}

func (it *fileIterator) Get() (byte, bool) {
	if it.pos < 0 || it.pos >= len(it.buf.data) {
		return 0, false
	}
	return it.buf.data[it.pos], true
}

func (it *fileIterator) Next() bool {
	it.pos++
	return it.pos >= 0 && it.pos < len(it.buf.data)
}

func (it *fileIterator) Prev() bool {
	it.pos--
	return it.pos >= 0 && it.pos < len(it.buf.data)
}
