package viewengine

// ruleWindow tracks one syntax rule's current match against the working
// buffer, re-searched lazily as the scan position passes its end.
type ruleWindow struct {
	so, eo    int // current match bounds, working-buffer-relative
	search    bool // true: needs a fresh regex search before so/eo is valid
	exhausted bool // true: no further match exists for the rest of the buffer
}

// syntaxCursor interleaves an ordered set of regex rules with the
// character-by-character scan C2 performs, assigning each working-buffer
// offset the style of the first (lowest-index) rule whose match window
// currently contains it.
type syntaxCursor struct {
	rules   []SyntaxRule
	data    []byte
	windows []ruleWindow
}

func newSyntaxCursor(syntax *Syntax, data []byte) *syntaxCursor {
	if syntax == nil || len(syntax.Rules) == 0 {
		return nil
	}
	windows := make([]ruleWindow, len(syntax.Rules))
	for i := range windows {
		windows[i].search = true
	}
	return &syntaxCursor{rules: syntax.Rules, data: data, windows: windows}
}

// attrAt returns the style index that applies at working-buffer offset off,
// advancing each rule's match window as needed. off must be monotonically
// non-decreasing across calls on a single syntaxCursor.
func (s *syntaxCursor) attrAt(off int) int {
	if s == nil {
		return 0
	}

	for i := range s.windows {
		w := &s.windows[i]
		if !w.search && !w.exhausted && w.eo <= off {
			// the scan has passed this rule's match: search the rule again
			// from off. Only a rule whose own match ended is re-searched;
			// other rules' windows are kept, even where they overlap the
			// match that just ended.
			w.search = true
		}
	}

	for i := range s.windows {
		w := &s.windows[i]
		if w.exhausted || !w.search {
			continue
		}
		w.search = false

		if off > len(s.data) {
			w.exhausted = true
			continue
		}
		loc := s.rules[i].Regexp.FindSubmatchIndex(s.data[off:])
		if loc == nil || loc[1] == loc[0] {
			// no match, or a zero-width match: treat as exhausted so the
			// scan always makes progress.
			w.exhausted = true
			continue
		}
		w.so = off + loc[0]
		w.eo = off + loc[1]
	}

	for i := range s.windows {
		w := &s.windows[i]
		if w.exhausted {
			continue
		}
		if w.so <= off && off < w.eo {
			return s.rules[i].Style
		}
	}
	return 0
}
