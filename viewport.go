package viewengine

// ViewportDown advances the viewport by n grid rows, refusing at
// end-of-buffer.
func (v *View) ViewportDown(n int) bool {
	if v.end >= v.buf.Size() {
		return false
	}
	if n >= v.height {
		v.start = v.end
	} else {
		pos := v.start
		l := v.grid.topline()
		for i := 0; i < n && l != nil; i++ {
			pos += l.Len()
			l = l.Next()
		}
		v.start = pos
	}
	v.resetStartMark()
	v.Draw()
	return true
}

// ViewportUp retreats the viewport by n logical lines, refusing at the
// start of the buffer. It walks a byte iterator backwards counting '\n'
// bytes, capped at width*height bytes as a no-newline safety net.
func (v *View) ViewportUp(n int) bool {
	if v.start <= 0 {
		return false
	}
	if n <= 0 {
		return false
	}

	capDist := v.width * v.height
	if capDist <= 0 {
		capDist = 1
	}

	it := v.buf.Iterator(v.start - 1)
	cur := v.start - 1
	// the newline (or CRLF) right before start ends the line above the
	// viewport; it is not one of the n newlines counted.
	if b, ok := it.Get(); ok && b == '\n' {
		it.Prev()
		cur--
		if b, ok := it.Get(); ok && b == '\r' {
			it.Prev()
			cur--
		}
	}
	newlines := 0
	dist := 0
	landed := -1

	for {
		b, ok := it.Get()
		if !ok {
			break
		}
		if b == '\n' {
			newlines++
			if newlines == n {
				landed = cur + 1
				break
			}
		}
		dist++
		if dist >= capDist {
			landed = cur
			break
		}
		if !it.Prev() {
			break
		}
		cur--
	}

	if landed < 0 {
		landed = 0
	}
	v.start = landed
	v.resetStartMark()
	v.Draw()
	return true
}

// ScrollUp/ScrollDown slide the viewport by n rows/lines and move the main
// cursor along with it: if the viewport moved, the cursor is clamped onto
// the new topline/lastline when it fell outside the visible range;
// otherwise (viewport refused to move, i.e. already at a buffer edge) the
// cursor snaps to the buffer's start/end.
func (v *View) ScrollUp(n int) bool {
	moved := v.ViewportUp(n)
	if moved {
		if v.cursor.pos > v.end {
			v.clampCursorToLine(v.lastline)
		}
	} else {
		v.To(v.cursor, 0)
	}
	return moved
}

func (v *View) ScrollDown(n int) bool {
	moved := v.ViewportDown(n)
	if moved {
		if v.cursor.pos < v.start {
			v.clampCursorToLine(v.grid.topline())
		}
	} else {
		v.To(v.cursor, v.buf.Size())
	}
	return moved
}

func (v *View) clampCursorToLine(line *Line) {
	if line == nil {
		return
	}
	pos, ok := v.PosOf(line, 0)
	if ok {
		v.To(v.cursor, pos)
	}
}

// SlideUp/SlideDown slide the viewport; if the cursor falls outside the
// new visible range, it slides one screen line in the opposite direction
// to stay visible.
func (v *View) SlideUp(n int) bool {
	moved := v.ViewportUp(n)
	if moved && v.cursor.pos > v.end {
		v.screenlineUp(v.cursor)
	}
	return moved
}

func (v *View) SlideDown(n int) bool {
	moved := v.ViewportDown(n)
	if moved && v.cursor.pos < v.start {
		v.screenlineDown(v.cursor)
	}
	return moved
}

// scrollUpRows is the internal n-row-at-a-time helper used by
// View.ToExtended's end-of-buffer case.
func (v *View) scrollUpRows(n int) {
	for i := 0; i < n; i++ {
		if !v.ViewportUp(1) {
			break
		}
	}
}

// RedrawTop advances start so the main cursor's logical line sits at row 0.
func (v *View) RedrawTop() {
	v.start = v.buf.LineBegin(v.cursor.pos)
	v.resetStartMark()
	v.Draw()
}

// RedrawBottom advances start so the main cursor's logical line sits at
// the last row.
func (v *View) RedrawBottom() {
	v.start = v.buf.LineBegin(v.cursor.pos)
	v.resetStartMark()
	v.Draw()
	for i := 0; i < v.height-1; i++ {
		if !v.ViewportUp(1) {
			break
		}
	}
}

// RedrawCenter advances start so the main cursor's logical line sits at
// row height/2, iterating twice because recentering can itself reflow the
// line the cursor sits on.
func (v *View) RedrawCenter() {
	target := v.height / 2
	for iter := 0; iter < 2; iter++ {
		v.start = v.buf.LineBegin(v.cursor.pos)
		v.resetStartMark()
		v.Draw()
		for i := 0; i < target; i++ {
			if !v.ViewportUp(1) {
				break
			}
		}
	}
}
