// Command demoview is a minimal terminal file viewer built on the
// viewengine package. It exists to exercise viewengine.UIBackend against a
// real termbox-go screen instead of a test double.
package main

import (
	"fmt"
	"os"
	"regexp"

	"github.com/nsf/termbox-go"

	"github.com/nsf/viewengine"
)

// demoSyntax highlights trailing whitespace and TODO/FIXME markers, just
// enough to exercise the engine's syntax overlay and SyntaxStyle wiring
// with a real termbox backend.
var demoSyntax = &viewengine.Syntax{
	Rules: []viewengine.SyntaxRule{
		{Regexp: regexp.MustCompile(`TODO|FIXME`), Style: 1},
		{Regexp: regexp.MustCompile(`(?m) +$`), Style: 2},
	},
	Styles: []string{"", "fg=yellow;bold", "bg=red"},
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: demoview <file>")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "demoview:", err)
		os.Exit(1)
	}

	if err := termbox.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "demoview:", err)
		os.Exit(1)
	}
	defer termbox.Close()
	termbox.SetInputMode(termbox.InputAlt)

	buf := newFileBuffer(data)
	w, h := termbox.Size()
	ui := newTermboxUI(w, h)

	view, err := viewengine.NewView(buf, ui, poolAllocator{})
	if err != nil {
		termbox.Close()
		fmt.Fprintln(os.Stderr, "demoview:", err)
		os.Exit(1)
	}
	view.Configure(viewengine.Config{
		TabWidth:    8,
		SymbolFlags: viewengine.FlagEOL | viewengine.FlagEOF,
		Syntax:      demoSyntax,
	})
	view.Resize(w, h)

	redraw := func() {
		view.Draw()
		c := view.MainCursor()
		termbox.SetCursor(c.Col(), c.Row())
	}
	redraw()

	for {
		ev := termbox.PollEvent()
		switch ev.Type {
		case termbox.EventKey:
			if !handleKey(view, buf, ev) {
				return
			}
			redraw()
		case termbox.EventResize:
			w, h = termbox.Size()
			ui.Resize(w, h)
			view.Resize(w, h)
			redraw()
		}
	}
}

// handleKey dispatches one termbox key event onto the View's cursor and
// viewport operations, returning false to end the event loop. This stands
// in for godit's key_press_mode/view_op_mode dispatch table, trimmed to
// the handful of motions a read-only viewer needs.
func handleKey(v *viewengine.View, buf *fileBuffer, ev termbox.Event) bool {
	c := v.MainCursor()
	switch ev.Key {
	case termbox.KeyCtrlC, termbox.KeyCtrlX:
		return false
	case termbox.KeyArrowUp:
		v.LineUp(c)
	case termbox.KeyArrowDown:
		v.LineDown(c)
	case termbox.KeyArrowLeft:
		if pos := buf.CharPrev(c.Pos()); pos != viewengine.EPOS {
			v.To(c, pos)
		}
	case termbox.KeyArrowRight:
		if pos := buf.CharNext(c.Pos()); pos != viewengine.EPOS {
			v.To(c, pos)
		}
	case termbox.KeyPgup:
		v.ScrollUp(v.Height())
	case termbox.KeyPgdn:
		v.ScrollDown(v.Height())
	case termbox.KeyCtrlU:
		v.SlideUp(v.Height() / 2)
	case termbox.KeyCtrlD:
		v.SlideDown(v.Height() / 2)
	case termbox.KeyHome:
		v.RedrawTop()
	case termbox.KeyEnd:
		v.RedrawBottom()
	}
	return true
}
