package viewengine

// Selection is a directed byte range driven by a cursor: anchor is fixed
// at creation, cursor is the mobile end. The buffer range is the
// normalised [min(anchor,cursor), max(anchor,cursor)), but the anchor<cursor
// vs anchor>cursor orientation is preserved to drive extend direction.
type Selection struct {
	view *View

	anchor Mark
	cursor Mark

	owner *Cursor

	prev, next *Selection
}

// NewSelection starts a selection for cursor c anchored at pos, linking it
// into the view's selection list and attaching it to c.
func (v *View) NewSelection(c *Cursor, pos int) *Selection {
	s := &Selection{
		view:   v,
		anchor: v.buf.MarkSet(pos),
		cursor: v.buf.MarkSet(pos),
		owner:  c,
	}
	s.next = v.selections
	if v.selections != nil {
		v.selections.prev = s
	}
	v.selections = s
	c.sel = s
	return s
}

// Range resolves the selection's two marks to a normalised byte range. ok
// is false if either mark is gone.
func (s *Selection) Range() (Range, bool) {
	a := s.view.buf.MarkGet(s.anchor)
	b := s.view.buf.MarkGet(s.cursor)
	if a == EPOS || b == EPOS {
		return Range{}, false
	}
	if a > b {
		a, b = b, a
	}
	return Range{Begin: a, End: b}, true
}

// Anchored reports the raw (unnormalised) anchor/cursor offsets and
// whether the selection currently extends left-to-right
// (anchor <= cursor).
func (s *Selection) Anchored() (anchor, cursor int, rightExtending bool, ok bool) {
	a := s.view.buf.MarkGet(s.anchor)
	b := s.view.buf.MarkGet(s.cursor)
	if a == EPOS || b == EPOS {
		return 0, 0, false, false
	}
	return a, b, a <= b, true
}

// selectionCursorTo moves the mobile end to pos. The cursor end is
// exclusive of the anchor side but inclusive of the moving side by one
// character, flipping the anchor by one character when orientation
// crosses over so the pivot character stays included exactly once.
func (v *View) selectionCursorTo(s *Selection, pos int) {
	anchorPos := v.buf.MarkGet(s.anchor)
	if anchorPos == EPOS {
		s.cursor = v.buf.MarkSet(pos)
		return
	}
	prevCursorPos := v.buf.MarkGet(s.cursor)
	wasRightExtending := anchorPos <= prevCursorPos

	if anchorPos <= pos {
		next := v.buf.CharNext(pos)
		if next == EPOS {
			next = pos
		}
		s.cursor = v.buf.MarkSet(next)
	} else {
		s.cursor = v.buf.MarkSet(pos)
	}

	nowRightExtending := anchorPos <= pos
	if wasRightExtending != nowRightExtending {
		if wasRightExtending && !nowRightExtending {
			// right -> left flip: advance anchor forward one character.
			if a := v.buf.CharNext(anchorPos); a != EPOS {
				s.anchor = v.buf.MarkSet(a)
			}
		} else {
			// left -> right flip: retreat anchor backward one character.
			if a := v.buf.CharPrev(anchorPos); a != EPOS {
				s.anchor = v.buf.MarkSet(a)
			}
		}
	}
}

// SelectionsSet overwrites the selection's two marks with rng's endpoints
// while preserving the selection's current orientation.
func (v *View) SelectionsSet(s *Selection, rng Range) {
	_, _, rightExtending, ok := s.Anchored()
	if !ok {
		rightExtending = true
	}
	if rightExtending {
		s.anchor = v.buf.MarkSet(rng.Begin)
		s.cursor = v.buf.MarkSet(rng.End)
	} else {
		s.anchor = v.buf.MarkSet(rng.End)
		s.cursor = v.buf.MarkSet(rng.Begin)
	}
}

// SelectionsSwap exchanges anchor and cursor.
func (v *View) SelectionsSwap(s *Selection) {
	s.anchor, s.cursor = s.cursor, s.anchor
}

// freeSelection unlinks s from the view's selection list and copies its
// two marks into lastsel_anchor/lastsel_cursor of every cursor that
// pointed at it. In practice a Selection has exactly one owner, but the
// copy loop walks every cursor defensively rather than assuming that.
func (v *View) freeSelection(s *Selection) {
	for c := v.cursors; c != nil; c = c.next {
		if c.sel == s {
			c.lastSelAnchor = s.anchor
			c.lastSelCursor = s.cursor
			c.hasLastSel = true
			c.sel = nil
		}
	}

	if s.prev != nil {
		s.prev.next = s.next
	} else {
		v.selections = s.next
	}
	if s.next != nil {
		s.next.prev = s.prev
	}
	s.prev, s.next = nil, nil
}

// RestoreSelection recreates a selection for c from its remembered
// lastsel_* marks, if any.
func (v *View) RestoreSelection(c *Cursor) bool {
	if !c.hasLastSel {
		return false
	}
	a := v.buf.MarkGet(c.lastSelAnchor)
	b := v.buf.MarkGet(c.lastSelCursor)
	if a == EPOS || b == EPOS {
		return false
	}
	s := &Selection{view: v, anchor: c.lastSelAnchor, cursor: c.lastSelCursor, owner: c}
	s.next = v.selections
	if v.selections != nil {
		v.selections.prev = s
	}
	v.selections = s
	c.sel = s
	return true
}

// applySelectionOverlay marks every cell within every live selection's
// range as selected. Runs before the cursor overlay so cursor flags win on
// overlap, and fires the optional SelectionObserver once per
// drawn selection.
func (v *View) applySelectionOverlay() {
	for s := v.selections; s != nil; s = s.next {
		rng, ok := s.Range()
		if !ok {
			continue
		}
		if v.sels != nil {
			v.sels.Selection(rng)
		}

		begin := rng.Begin
		if begin < v.start {
			begin = v.start
		}
		end := rng.End
		if end > v.end {
			end = v.end
		}
		for pos := begin; pos < end; {
			coord, ok := v.CoordOf(pos)
			if !ok {
				break
			}
			cells := coord.Line.Cells()
			if coord.Col < 0 || coord.Col >= len(cells) {
				break
			}
			cells[coord.Col].Selected = true
			step := cells[coord.Col].Len()
			if step <= 0 {
				step = 1
			}
			pos += step
		}
	}
}
