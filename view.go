package viewengine

import "fmt"

// Config holds the settings View.Configure applies. Configure does not
// read Width or Height; the view's dimensions are set through Resize. The
// embedding editor owns configuration entirely; the engine only consumes
// it.
type Config struct {
	Width, Height int
	TabWidth      int // defaults to 8 if <= 0
	SymbolFlags   SymbolFlags
	Syntax        *Syntax
}

// View is one viewport onto a Buffer: a rectangular grid of display cells,
// the logical cursor/selection set, and the byte range currently on
// screen.
type View struct {
	buf  Buffer
	ui   UIBackend
	regs RegisterAllocator
	sels SelectionObserver

	width, height int
	tabwidth      int
	symbols       [symbolCount]Symbol
	syntax        *Syntax

	grid *grid

	start, end int
	startMark  Mark
	startLast  int
	haveStart  bool

	lastline *Line

	cursor  *Cursor
	cursors *Cursor

	selections *Selection
}

// NewView creates a View with a single cursor at offset 0, attached to buf,
// then resizes it to (1,1); the embedding editor is expected to follow up
// with a Resize call once it knows the real dimensions.
func NewView(buf Buffer, ui UIBackend, regs RegisterAllocator) (*View, error) {
	if buf == nil {
		return nil, fmt.Errorf("viewengine: NewView requires a non-nil Buffer")
	}
	v := &View{
		buf:      buf,
		ui:       ui,
		regs:     regs,
		tabwidth: 8,
		symbols:  DefaultSymbols(),
	}
	v.grid = newGrid(1, 1)

	c := v.NewCursor()
	v.cursor = c

	v.Resize(1, 1)
	return v, nil
}

// SetEventSink installs the optional per-selection draw callback.
func (v *View) SetEventSink(s SelectionObserver) { v.sels = s }

// MainCursor returns the view's always-in-viewport main cursor.
func (v *View) MainCursor() *Cursor { return v.cursor }

// Cursors returns the head of the view's cursor list (insertion order is
// not significant).
func (v *View) Cursors() *Cursor { return v.cursors }

// Start/End return the half-open byte range currently displayed.
func (v *View) Start() int { return v.start }
func (v *View) End() int   { return v.end }

// ResolveMark resolves m against the view's buffer, returning ErrMarkGone
// instead of the raw EPOS sentinel for callers that prefer the
// errors.Is path over comparing against EPOS directly.
func (v *View) ResolveMark(m Mark) (int, error) {
	pos := v.buf.MarkGet(m)
	if pos == EPOS {
		return 0, ErrMarkGone
	}
	return pos, nil
}

// Width/Height return the current viewport dimensions in cells.
func (v *View) Width() int  { return v.width }
func (v *View) Height() int { return v.height }

// TopLine returns the grid's first row.
func (v *View) TopLine() *Line { return v.grid.topline() }

// BottomLine returns the grid's last allocated row for the current height.
func (v *View) BottomLine() *Line { return v.grid.bottomline() }

// Configure applies non-geometric settings (tab width, symbol flags,
// syntax) without touching the grid or triggering a redraw; callers
// typically follow with Resize or Draw.
func (v *View) Configure(cfg Config) {
	if cfg.TabWidth > 0 {
		v.tabwidth = cfg.TabWidth
	}
	v.symbols = symbolTableFor(cfg.SymbolFlags)
	v.syntax = cfg.Syntax
	if cfg.Syntax != nil {
		for i := SymbolKind(0); i < symbolCount; i++ {
			if cfg.Syntax.Symbols[i].Glyph != "" {
				v.symbols[i] = cfg.Syntax.Symbols[i]
			}
		}
		if v.ui != nil {
			for i, style := range cfg.Syntax.Styles {
				v.ui.SyntaxStyle(i, style)
			}
		}
	}
}

// Resize grows the grid's backing store (never shrinking it) to the new
// width/height, updates the view's dimensions, and redraws.
func (v *View) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	v.grid.resize(w, h)
	v.width = w
	v.height = h
	v.Draw()
}

// resetStartMark drops the stale start mark and re-derives one from the
// current v.start, used whenever v.start is assigned directly rather than
// moved by a viewport operation.
func (v *View) resetStartMark() {
	v.startMark = v.buf.MarkSet(v.start)
	v.startLast = v.start
	v.haveStart = true
}

// resolveStart implements the start/start_mark contract: if start
// changed since the last draw (by direct assignment), the mark is reset;
// otherwise start is re-resolved from the mark so edits above the
// viewport keep it anchored.
func (v *View) resolveStart() {
	if !v.haveStart {
		v.resetStartMark()
		return
	}
	if v.start != v.startLast {
		v.resetStartMark()
		return
	}
	if pos := v.buf.MarkGet(v.startMark); pos != EPOS {
		v.start = pos
	}
	v.startLast = v.start
}

// Draw clears the grid, resolves start via its mark, streams the buffer
// through the layout and syntax engines into the grid, applies the
// selection and cursor overlays (selection pass first, cursor pass
// winning on overlap), hands the top line to the UI backend, and
// re-resolves every cursor's (line, row, col) against the fresh grid.
func (v *View) Draw() {
	v.resolveStart()
	v.layout()

	// cursor positions follow their marks across buffer edits.
	for c := v.cursors; c != nil; c = c.next {
		if pos := v.buf.MarkGet(c.mark); pos != EPOS {
			c.pos = pos
		}
	}

	v.applySelectionOverlay()
	v.applyCursorOverlay()

	for c := v.cursors; c != nil; c = c.next {
		v.To(c, c.pos)
	}
	if v.cursor.pos < v.start || v.cursor.pos > v.end {
		v.To(v.cursor, clamp(v.cursor.pos, v.start, v.end))
	}

	if v.ui != nil {
		v.ui.DrawText(v.grid.topline())
	}
}

func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// applyCursorOverlay marks the cell at each cursor's resolved position.
// Applied after the selection overlay so cursor flags win on overlap.
func (v *View) applyCursorOverlay() {
	for c := v.cursors; c != nil; c = c.next {
		coord, ok := v.CoordOf(c.pos)
		if !ok {
			continue
		}
		cells := coord.Line.Cells()
		if coord.Col >= 0 && coord.Col < len(cells) {
			cells[coord.Col].Cursor = true
		}
	}
}

// Free releases the view's cursors, selections, and grid storage. Buffer,
// UI, and registers are borrowed and outlive the view.
func (v *View) Free() {
	for c := v.cursors; c != nil; {
		next := c.next
		if c.sel != nil {
			v.freeSelection(c.sel)
		}
		if v.regs != nil && c.reg != nil {
			v.regs.ReleaseRegister(c.reg)
		}
		c = next
	}
	v.cursors = nil
	v.cursor = nil
	v.selections = nil
	v.grid = nil
}
