package viewengine

// grid is the View's fixed-width row storage. Rows are individually
// heap-allocated (lines []*Line, not []Line) so that growing the backing
// slice on resize never invalidates a *Line a caller is holding onto — the
// aliasing hazard the design notes warn flat array storage would create.
//
// cap(lines) only ever grows; the *active* window for the current
// width/height is lines[:height].
type grid struct {
	lines  []*Line // backing storage, len == high-water mark of height
	width  int     // high-water mark of width
	height int     // current active height
}

func newGrid(width, height int) *grid {
	g := &grid{}
	g.resize(width, height)
	return g
}

// topline is always lines[0].
func (g *grid) topline() *Line {
	if g.height == 0 {
		return nil
	}
	return g.lines[0]
}

// bottomline is the last row of the *current* active window.
func (g *grid) bottomline() *Line {
	if g.height == 0 {
		return nil
	}
	return g.lines[g.height-1]
}

// clearActive blanks every cell of every row in the current active window
// and resets each row's len/width, without touching link structure or
// growing storage. Called at the start of every layout pass, as distinct from resize which additionally re-links rows.
func (g *grid) clearActive() {
	for _, l := range g.lines[:g.height] {
		l.clear()
		l.lineno = 0
	}
}

// resize grows the backing store to height rows of width cells if needed,
// never releasing a larger previous allocation, then re-links prev/next
// over exactly the new active window and clears every active row.
func (g *grid) resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	if width > g.width {
		for _, l := range g.lines {
			l.cells = make([]Cell, width)
		}
		g.width = width
	}

	for len(g.lines) < height {
		g.lines = append(g.lines, &Line{cells: make([]Cell, g.width)})
	}
	g.height = height

	active := g.lines[:height]
	for i, l := range active {
		if i > 0 {
			l.prev = active[i-1]
			active[i-1].next = l
		} else {
			l.prev = nil
		}
	}
	active[len(active)-1].next = nil

	for _, l := range active {
		if len(l.cells) != width {
			if cap(l.cells) >= width {
				l.cells = l.cells[:width]
			} else {
				l.cells = make([]Cell, width)
			}
		}
		l.clear()
		l.lineno = 0
	}
}
