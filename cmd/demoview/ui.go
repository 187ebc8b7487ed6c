package main

import (
	"strings"

	"github.com/nsf/termbox-go"
	"github.com/nsf/tulib"

	"github.com/nsf/viewengine"
)

// termboxUI is the concrete viewengine.UIBackend for cmd/demoview: it owns
// a tulib.Buffer sized to the terminal, walks the View's grid one Line at
// a time translating Cells to termbox.Cells, and blits the result onto
// the real termbox screen buffer. This plays the role godit's own
// view.draw/render_line does in main.go, minus the split-pane tree — a
// single full-screen View is all a demo needs.
type termboxUI struct {
	buf tulib.Buffer

	styles map[int]termbox.Attribute
}

func newTermboxUI(w, h int) *termboxUI {
	return &termboxUI{
		buf:    tulib.NewBuffer(w, h),
		styles: map[int]termbox.Attribute{0: termbox.ColorDefault},
	}
}

func (u *termboxUI) Resize(w, h int) {
	u.buf.Resize(w, h)
}

// SyntaxStyle decodes a ";"-separated spec of "fg=NAME", "bg=NAME", and
// bare attribute words ("bold", "underline", "reverse") into a packed
// termbox.Attribute, keyed by the same styleIndex the engine stamps onto
// Cell.Attr during the syntax overlay pass.
func (u *termboxUI) SyntaxStyle(styleIndex int, styleSpec string) {
	var attr termbox.Attribute
	fg := termbox.ColorDefault
	for _, part := range strings.Split(styleSpec, ";") {
		part = strings.TrimSpace(part)
		switch {
		case strings.HasPrefix(part, "fg="):
			fg = colorByName(strings.TrimPrefix(part, "fg="))
		case strings.HasPrefix(part, "bg="):
			// packed into the high bits the same way termbox itself does
			// for Cell.Bg; tulib.Buffer.Fill/Blit pass it through untouched.
			attr |= colorByName(strings.TrimPrefix(part, "bg=")) << 9
		case part == "bold":
			attr |= termbox.AttrBold
		case part == "underline":
			attr |= termbox.AttrUnderline
		case part == "reverse":
			attr |= termbox.AttrReverse
		}
	}
	u.styles[styleIndex] = fg | attr
}

func colorByName(name string) termbox.Attribute {
	switch name {
	case "black":
		return termbox.ColorBlack
	case "red":
		return termbox.ColorRed
	case "green":
		return termbox.ColorGreen
	case "yellow":
		return termbox.ColorYellow
	case "blue":
		return termbox.ColorBlue
	case "magenta":
		return termbox.ColorMagenta
	case "cyan":
		return termbox.ColorCyan
	case "white":
		return termbox.ColorWhite
	default:
		return termbox.ColorDefault
	}
}

// DrawText walks topLine via Line.Next(), painting each row of the grid
// into the tulib.Buffer, then blits the whole thing onto the termbox
// screen buffer — mirroring godit's two-stage uibuf-then-Blit render.
func (u *termboxUI) DrawText(topLine *viewengine.Line) {
	row := 0
	for l := topLine; l != nil; l = l.Next() {
		cells := l.Cells()
		for col, cell := range cells {
			if row >= u.buf.Height || col >= u.buf.Width {
				continue
			}
			attr := u.styles[cell.Attr]
			fg := attr & 0x1ff
			bg := (attr >> 9) & 0x1ff
			if bg == 0 {
				bg = termbox.ColorDefault
			}
			if cell.Selected {
				fg |= termbox.AttrReverse
			}
			if cell.Cursor {
				fg |= termbox.AttrReverse | termbox.AttrBold
			}
			u.buf.Cells[row*u.buf.Width+col] = termbox.Cell{
				Ch: cell.Rune(),
				Fg: fg,
				Bg: bg,
			}
		}
		row++
	}

	termboxBuf := tulib.TermboxBuffer()
	termboxBuf.Blit(tulib.Rect{X: 0, Y: 0, Width: u.buf.Width, Height: u.buf.Height}, 0, 0, &u.buf)
	termbox.Flush()
}
