package viewengine

// Coord is a resolved grid position: the row holding it, its row/col
// within the grid, and the row index counted from topline (0-based).
type Coord struct {
	Line *Line
	Row  int
	Col  int
}

// CoordOf walks the grid forward from topline accumulating Line.Len until
// it finds the row containing pos, then walks cells accumulating Cell.Len
// (skipping zero-len continuation columns) to find the column. It reports
// ok=false when pos is outside [v.start, v.end].
func (v *View) CoordOf(pos int) (Coord, bool) {
	if pos < v.start || pos > v.end {
		return Coord{}, false
	}

	lineStart := v.start
	row := 0
	for l := v.grid.topline(); l != nil; l = l.Next() {
		lineEnd := lineStart + l.Len()
		// pos sits exactly on the boundary between two rows; it belongs to
		// the next row's start unless l is the last row with real content
		// (v.lastline), since rows after it are EOF padding with len == 0
		// forever and would never be reached otherwise.
		if pos < lineEnd || (pos == lineEnd && l == v.lastline) {
			col, ok := columnFor(l, pos-lineStart)
			if !ok {
				return Coord{}, false
			}
			return Coord{Line: l, Row: row, Col: col}, true
		}
		lineStart = lineEnd
		row++
	}
	return Coord{}, false
}

// columnFor finds the cell column whose source byte range contains
// byteInLine (an offset relative to the start of line l), skipping
// zero-len continuation cells.
func columnFor(l *Line, byteInLine int) (int, bool) {
	acc := 0
	cells := l.Cells()
	for i := range cells {
		clen := cells[i].Len()
		if byteInLine >= acc && byteInLine < acc+clen {
			return i, true
		}
		acc += clen
	}
	if byteInLine == acc {
		if acc == 0 {
			// a row holding no source bytes: its one position is column 0.
			return 0, true
		}
		// one past the last byte of the row (pos lands exactly at
		// end-of-row): len(cells), which PosOf maps back to the row's end.
		return len(cells), true
	}
	return 0, false
}

// PosOf is the inverse of CoordOf: given a row and a column, it returns the
// absolute byte offset, snapping col left while it points at a
// continuation column and right while it points at a tab-fill column, so
// callers always land on the first column of a wide or tab character.
func (v *View) PosOf(line *Line, col int) (int, bool) {
	if line == nil {
		return 0, false
	}

	lineStart := v.start
	for l := v.grid.topline(); l != nil && l != line; l = l.Next() {
		lineStart += l.Len()
	}

	cells := line.Cells()
	if col < 0 {
		col = 0
	}
	if col > len(cells) {
		col = len(cells)
	}

	for col > 0 && col < len(cells) && cells[col].Len() == 0 && !cells[col].IsTab() {
		col--
	}
	for col < len(cells) && cells[col].IsTab() && cells[col].Len() == 0 {
		col++
	}

	byteOff := 0
	for i := 0; i < col && i < len(cells); i++ {
		byteOff += cells[i].Len()
	}
	return lineStart + byteOff, true
}
