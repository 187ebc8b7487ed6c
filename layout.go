package viewengine

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// layout is the C2 layout engine: it streams buffer bytes starting at
// v.start into the grid, decoding UTF-8, expanding tabs, substituting
// symbol glyphs, wrapping lines, and interleaving C3 syntax attributes.
// It sets v.end to the first byte not consumed.
func (v *View) layout() {
	v.grid.clearActive()

	top := v.grid.topline()
	if top == nil {
		v.end = v.start
		return
	}
	top.lineno = v.buf.LinenoByPos(v.start)

	readCap := v.width*v.height*utf8.UTFMax + 1
	if readCap < 64 {
		readCap = 64
	}
	if remaining := v.buf.Size() - v.start; remaining < readCap {
		readCap = remaining
	}
	if readCap < 0 {
		readCap = 0
	}
	win := make([]byte, readCap)
	n := v.buf.BytesGet(v.start, readCap, win)
	win = win[:n]

	syn := newSyntaxCursor(v.syntax, win)

	st := &layoutState{
		v:       v,
		win:     win,
		curLine: top,
		syn:     syn,
	}

	for st.off < n && st.curLine != nil {
		st.step()
	}

	v.end = v.start + st.off
	lastLine := st.curLine
	if lastLine == nil {
		lastLine = v.grid.bottomline()
	}
	v.lastline = lastLine

	fillEOFRows(lastLine, v.symbols[SymEOF])
}

// fillEOFRows places the eof glyph in column 0 and blanks the rest of
// every row after lastline, up to bottomline.
func fillEOFRows(lastLine *Line, eof Symbol) {
	if lastLine == nil {
		return
	}
	for l := lastLine.next; l != nil; l = l.next {
		if len(l.cells) == 0 {
			continue
		}
		c := &l.cells[0]
		c.setString(eof.Glyph)
		c.len = 0
		c.width = 1
		c.Attr = eof.Style
		l.width = 1
	}
}

// layoutState carries the mutable cursor through a single layout pass.
type layoutState struct {
	v   *View
	win []byte
	off int // byte offset into win, also (pos - v.start)
	syn *syntaxCursor

	curLine *Line
	curCol  int // index into curLine.cells
}

// step decodes and places exactly one source character (or one CRLF pair),
// advancing st.off and the grid cursor.
func (st *layoutState) step() {
	data := st.win[st.off:]
	v := st.v

	// a full row wraps before anything more is placed, so no character is
	// consumed without a cell to show it.
	if st.curCol >= v.width && !st.newRowOK(true) {
		return
	}

	if data[0] == '\r' && len(data) > 1 && data[1] == '\n' {
		st.attrFor(st.off)
		st.placeCell(v.symbols[SymEOL].Glyph, 2, 1, false, v.symbols[SymEOL].Style)
		st.off += 2
		st.newRow(false)
		return
	}

	r, rlen := utf8.DecodeRune(data)
	if r == utf8.RuneError && rlen <= 1 {
		// invalid byte sequence: replacement glyph, advance to the next
		// plausible lead byte (or just one byte if none found nearby).
		attr := st.attrFor(st.off)
		adv := invalidSeqLen(data)
		st.placeCell("�", adv, 1, false, attr)
		st.off += adv
		st.advanceCol()
		return
	}

	switch {
	case r == 0:
		attr := st.attrFor(st.off)
		st.placeCell("", 1, 0, false, attr)
		st.off += rlen
		st.advanceCol()
	case r == '\n':
		attr := st.attrFor(st.off)
		st.placeCell(v.symbols[SymEOL].Glyph, 1, 1, false, attr)
		st.off += rlen
		st.newRow(false)
	case r == '\t':
		st.tab()
	case r < 0x20:
		attr := st.attrFor(st.off)
		if st.curCol+2 > v.width && !st.newRowOK(true) {
			return
		}
		st.placeControlPair(r, attr)
		st.off += rlen
	case r == ' ':
		attr := st.attrFor(st.off)
		st.placeCell(v.symbols[SymSpace].Glyph, rlen, 1, false, attr)
		st.off += rlen
		st.advanceCol()
	default:
		attr := st.attrFor(st.off)
		st.printable(r, rlen, attr)
	}
}

func (st *layoutState) attrFor(off int) int {
	return st.syn.attrAt(off)
}

// invalidSeqLen returns how many bytes to skip for a malformed sequence:
// up to the next byte that looks like a UTF-8 lead byte (top two bits not
// "10"), at least one byte.
func invalidSeqLen(data []byte) int {
	for i := 1; i < len(data) && i < utf8.UTFMax; i++ {
		if data[i]&0xC0 != 0x80 {
			return i
		}
	}
	if len(data) > 1 {
		return 1
	}
	return 1
}

// placeCell writes a single cell at the current grid position without any
// wrap/column-fit checks (callers that need a fit check do it themselves).
func (st *layoutState) placeCell(glyph string, srclen, width int, isTab bool, attr int) {
	if st.curCol >= len(st.curLine.cells) {
		return
	}
	c := &st.curLine.cells[st.curCol]
	c.setString(glyph)
	c.len = srclen
	c.width = width
	c.isTab = isTab
	c.Attr = attr
	st.curLine.len += srclen
	st.curLine.width += width
}

func (st *layoutState) advanceCol() {
	st.curCol++
}

// newRow pads the remainder of the current row (already blank from
// clearActive) and moves to the next grid row, preserving or incrementing
// lineno. If there is no next row, curLine becomes nil and the layout loop
// stops (row exhaustion).
func (st *layoutState) newRow(sameLineno bool) {
	next := st.curLine.next
	if next == nil {
		st.curLine = nil
		return
	}
	if sameLineno {
		next.lineno = st.curLine.lineno
	} else {
		next.lineno = st.curLine.lineno + 1
	}
	st.curLine = next
	st.curCol = 0
}

// placeControlPair renders a non-printable ASCII control byte as the two
// cells "^" + (ch+0x40): the first carries the real len/width, the second
// is a zero-width/zero-len continuation.
func (st *layoutState) placeControlPair(r rune, attr int) {
	if st.curCol >= len(st.curLine.cells) {
		return
	}
	first := &st.curLine.cells[st.curCol]
	first.setString("^")
	first.len = 1
	first.width = 2
	first.Attr = attr
	st.curLine.len += 1
	st.curLine.width += 2
	st.curCol++

	if st.curCol >= len(st.curLine.cells) {
		return
	}
	second := &st.curLine.cells[st.curCol]
	second.setBytes([]byte{byte(r) + 0x40})
	second.len = 0
	second.width = 0
	second.Attr = attr
	st.curCol++
}

// tab expands a tab character, wrapping mid-expansion if it would cross
// the view width and continuing on the next row (preserving lineno).
func (st *layoutState) tab() {
	v := st.v
	off := st.off
	attr := st.attrFor(off)

	cols := v.tabwidth - (st.curCol % v.tabwidth)
	first := true
	for i := 0; i < cols; i++ {
		if st.curCol >= v.width {
			if !st.newRowOK(true) {
				st.off += 1
				return
			}
		}
		glyph := v.symbols[SymTabFill].Glyph
		srclen := 0
		if first {
			glyph = v.symbols[SymTabFirst].Glyph
			srclen = 1
		}
		st.placeCell(glyph, srclen, 1, true, attr)
		st.curCol++
		first = false
	}
	st.off += 1
}

// newRowOK is like newRow but reports whether a next row existed, for
// call sites (tab, printable) that need to bail out of a multi-cell
// placement loop on row exhaustion.
func (st *layoutState) newRowOK(sameLineno bool) bool {
	next := st.curLine.next
	if next == nil {
		st.curLine = nil
		return false
	}
	if sameLineno {
		next.lineno = st.curLine.lineno
	} else {
		next.lineno = st.curLine.lineno + 1
	}
	st.curLine = next
	st.curCol = 0
	return true
}

// printable places a non-control, non-space, non-tab rune, computing its
// display width (wide-glyph aware) and wrapping before placement if it
// would not fit the remaining row width.
func (st *layoutState) printable(r rune, rlen int, attr int) {
	v := st.v
	w := runewidth.RuneWidth(r)
	if w <= 0 {
		w = 1
	}

	if st.curCol+w > v.width {
		if !st.newRowOK(true) {
			return
		}
	}

	if st.curCol >= len(st.curLine.cells) {
		st.off += rlen
		return
	}
	c := &st.curLine.cells[st.curCol]
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	c.setBytes(buf[:n])
	c.len = rlen
	c.width = w
	c.Attr = attr
	st.curLine.len += rlen
	st.curLine.width += w
	st.curCol++

	for i := 1; i < w && st.curCol < len(st.curLine.cells); i++ {
		cc := &st.curLine.cells[st.curCol]
		cc.setString("")
		cc.len = 0
		cc.width = 0
		cc.Attr = attr
		st.curCol++
	}

	st.off += rlen
}
