package viewengine

// Cursor is a logical insertion point. Its position survives buffer edits
// via a stable Mark; Row/Col/Line are only valid as of the most recent
// draw that located it.
type Cursor struct {
	view *View

	mark Mark
	pos  int

	row, col int
	line     *Line

	lastcol int // desired column for vertical motion; 0 means "none yet"

	sel *Selection

	lastSelAnchor, lastSelCursor Mark
	hasLastSel                   bool

	reg Register

	prev, next *Cursor
}

// Pos returns the cursor's last-resolved byte offset.
func (c *Cursor) Pos() int { return c.pos }

// Row/Col/Line return the grid location as of the most recent draw.
func (c *Cursor) Row() int     { return c.row }
func (c *Cursor) Col() int     { return c.col }
func (c *Cursor) Line() *Line  { return c.line }
func (c *Cursor) Selection() *Selection { return c.sel }
func (c *Cursor) Register() Register    { return c.reg }

// NewCursor creates a cursor at byte offset 0 and links it into the
// view's cursor list. It does not become the main cursor; the view's main
// cursor is left unchanged.
func (v *View) NewCursor() *Cursor {
	c := &Cursor{view: v}
	if v.regs != nil {
		c.reg = v.regs.AllocRegister()
	}
	c.mark = v.buf.MarkSet(0)
	c.pos = 0
	v.linkCursor(c)
	return c
}

func (v *View) linkCursor(c *Cursor) {
	c.next = v.cursors
	if v.cursors != nil {
		v.cursors.prev = c
	}
	v.cursors = c
}

func (v *View) unlinkCursor(c *Cursor) {
	if c.prev != nil {
		c.prev.next = c.next
	} else {
		v.cursors = c.next
	}
	if c.next != nil {
		c.next.prev = c.prev
	}
	c.prev, c.next = nil, nil
}

// DisposeCursor removes c from the view. It refuses to remove the last
// remaining cursor.
func (v *View) DisposeCursor(c *Cursor) bool {
	if c.next == nil && c.prev == nil && v.cursors == c {
		return false // last cursor, refuse
	}
	if c == v.cursor {
		return false // refuse to dispose the main cursor
	}

	if c.sel != nil {
		// copy marks to c's own lastsel_* before freeing: the freed
		// selection's endpoints land on the cursor being disposed,
		// not on some other owner.
		c.lastSelAnchor = c.sel.anchor
		c.lastSelCursor = c.sel.cursor
		c.hasLastSel = true
		v.freeSelection(c.sel)
		c.sel = nil
	}

	if v.regs != nil && c.reg != nil {
		v.regs.ReleaseRegister(c.reg)
		c.reg = nil
	}

	v.unlinkCursor(c)
	return true
}

// To moves cursor c to pos: sets a fresh mark, clears lastcol if the
// position actually changed, re-resolves the cursor's selection endpoint
// if it drives one, and refreshes (line, row, col) via the coordinate map.
// On failure for the main cursor it snaps to (topline, 0, 0) instead of
// leaving stale coordinates.
func (v *View) To(c *Cursor, pos int) {
	if pos < 0 {
		pos = 0
	}
	if size := v.buf.Size(); pos > size {
		pos = size
	}

	if pos != c.pos {
		c.lastcol = 0
	}
	c.pos = pos
	c.mark = v.buf.MarkSet(pos)

	if c.sel != nil {
		v.selectionCursorTo(c.sel, pos)
	}

	if coord, ok := v.CoordOf(pos); ok {
		c.line = coord.Line
		c.row = coord.Row
		c.col = coord.Col
	} else if c == v.cursor {
		c.line = v.grid.topline()
		c.row = 0
		c.col = 0
	} else {
		c.line = nil
		c.row, c.col = -1, -1
	}
}

// ScrollTo scrolls the viewport one row at a time toward pos until it is
// in range, then resolves the main cursor there. Only meaningful for the main cursor.
func (v *View) ScrollTo(c *Cursor, pos int) {
	if c != v.cursor {
		v.To(c, pos)
		return
	}
	for pos < v.start && v.ViewportUp(1) {
	}
	for pos > v.end && v.ViewportDown(1) {
	}
	v.To(c, pos)
}

// ToExtended is the public view_cursors_to: for the main cursor it
// re-anchors the viewport around pos using a two-draft strategy, redrawing
// once against a coarse guess for start before resolving the exact one.
func (v *View) ToExtended(c *Cursor, pos int) {
	if c != v.cursor {
		v.To(c, pos)
		return
	}

	if pos >= v.buf.Size() {
		v.start = pos
		v.resetStartMark()
		v.Draw()
		v.scrollUpRows(v.height / 2)
		v.To(c, pos)
		return
	}

	if pos >= v.start && pos <= v.end {
		v.To(c, pos)
		return
	}

	v.start = v.buf.LineBegin(pos)
	v.resetStartMark()
	v.Draw()
	if pos >= v.start && pos <= v.end {
		v.To(c, pos)
		return
	}

	v.start = pos
	v.resetStartMark()
	v.Draw()
	v.To(c, pos)
}

// LineUp/LineDown prefer logical (buffer) line motion, falling back to
// screen-line motion when the current logical line is soft-wrapped.
func (v *View) LineUp(c *Cursor) {
	if c.line != nil && c.line.Prev() != nil && c.line.Prev().Lineno() == c.line.Lineno() {
		v.screenlineUp(c)
		return
	}
	pos := v.buf.LineUp(c.pos)
	if pos == EPOS {
		return
	}
	v.cursorSetLogicalVertical(c, pos)
}

func (v *View) LineDown(c *Cursor) {
	if c.line != nil && c.line.Next() != nil && c.line.Next().Lineno() == c.line.Lineno() {
		v.screenlineDown(c)
		return
	}
	pos := v.buf.LineDown(c.pos)
	if pos == EPOS {
		return
	}
	v.cursorSetLogicalVertical(c, pos)
}

// cursorSetLogicalVertical moves to pos for a logical-line vertical motion,
// remembering/restoring lastcol the same way screenline motion does.
func (v *View) cursorSetLogicalVertical(c *Cursor, pos int) {
	lastcol := c.lastcol
	if lastcol == 0 {
		lastcol = c.col
	}
	v.ScrollTo(c, pos)
	if coord, ok := v.CoordOf(c.pos); ok {
		target, ok2 := v.PosOf(coord.Line, lastcol)
		if ok2 {
			v.ScrollTo(c, target)
		}
	}
	c.lastcol = lastcol
}

func (v *View) screenlineUp(c *Cursor) {
	lastcol := c.lastcol
	if lastcol == 0 {
		lastcol = c.col
	}
	neighbour := c.line.Prev()
	if neighbour == nil {
		if !v.ScrollUp(1) {
			return
		}
		neighbour = c.line.Prev()
		if neighbour == nil {
			return
		}
	}
	v.cursorSet(c, neighbour, lastcol)
	c.lastcol = lastcol
}

func (v *View) screenlineDown(c *Cursor) {
	lastcol := c.lastcol
	if lastcol == 0 {
		lastcol = c.col
	}
	neighbour := c.line.Next()
	if neighbour == nil {
		if !v.ScrollDown(1) {
			return
		}
		neighbour = c.line.Next()
		if neighbour == nil {
			return
		}
	}
	v.cursorSet(c, neighbour, lastcol)
	c.lastcol = lastcol
}

// cursorSet recomputes pos from (line, col) via the coordinate map and
// moves the cursor there.
func (v *View) cursorSet(c *Cursor, line *Line, col int) {
	pos, ok := v.PosOf(line, col)
	if !ok {
		return
	}
	c.row = rowOf(v, line)
	c.line = line
	v.To(c, pos)
}

func rowOf(v *View, line *Line) int {
	row := 0
	for l := v.grid.topline(); l != nil; l = l.Next() {
		if l == line {
			return row
		}
		row++
	}
	return -1
}
