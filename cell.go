package viewengine

import "unicode/utf8"

// cellDataCap holds the longest UTF-8 sequence a Cell can carry (4 bytes)
// plus the NUL terminator the syntax regex engine expects.
const cellDataCap = utf8.UTFMax + 1

// Cell is a single display column of the grid.
type Cell struct {
	data  [cellDataCap]byte
	dlen  int // bytes of data actually used (excludes the NUL terminator)
	len   int // source bytes this cell consumed; 0 for continuation columns
	width int // display columns of the *first* cell of a character (1 or 2)
	isTab bool

	Attr     int // syntax style index, default 0
	Selected bool
	Cursor   bool
}

var blankCell = func() Cell {
	var c Cell
	c.setString(" ")
	c.len = 0
	c.width = 0
	return c
}()

// setBytes stores b as this cell's display glyph, NUL-terminating it.
// b must be at most utf8.UTFMax bytes.
func (c *Cell) setBytes(b []byte) {
	c.dlen = copy(c.data[:], b)
	c.data[c.dlen] = 0
}

func (c *Cell) setString(s string) {
	c.setBytes([]byte(s))
}

// Bytes returns the UTF-8 sequence (or substituted glyph) this cell
// displays, without the NUL terminator.
func (c *Cell) Bytes() []byte {
	return c.data[:c.dlen]
}

// Rune decodes the cell's display glyph.
func (c *Cell) Rune() rune {
	r, _ := utf8.DecodeRune(c.data[:c.dlen])
	return r
}

// Len reports the source byte count this cell consumed.
func (c *Cell) Len() int { return c.len }

// Width reports the display columns occupied by the first cell of the
// character; continuation cells report 0.
func (c *Cell) Width() int { return c.width }

// IsTab reports whether this cell originated from tab expansion.
func (c *Cell) IsTab() bool { return c.isTab }

func (c *Cell) reset() {
	*c = blankCell
}

// Line is one row of the grid.
type Line struct {
	cells []Cell

	len    int // total source bytes represented by this row
	width  int // total occupied display columns
	lineno int // logical line number; shared across soft-wrap rows

	prev, next *Line // intra-grid neighbours, nil at either edge
}

// Cells returns the row's backing cell array, sized to the view's width.
func (l *Line) Cells() []Cell { return l.cells }

// Len returns the total source bytes this row represents.
func (l *Line) Len() int { return l.len }

// Width returns the total occupied display columns.
func (l *Line) Width() int { return l.width }

// Lineno returns the logical (buffer) line number of this row.
func (l *Line) Lineno() int { return l.lineno }

// Next returns the following row in the grid, or nil at the last allocated
// row (bottomline.next == nil).
func (l *Line) Next() *Line { return l.next }

// Prev returns the preceding row in the grid, or nil for the top row.
func (l *Line) Prev() *Line { return l.prev }

func (l *Line) clear() {
	for i := range l.cells {
		l.cells[i].reset()
	}
	l.len = 0
	l.width = 0
}
