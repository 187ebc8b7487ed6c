package viewengine

import "testing"

// newTestView builds a View over a fresh memBuffer holding content, sized
// to w x h, with no UI backend or register allocator (neither is exercised
// by the engine's own logic).
func newTestView(t *testing.T, content string, w, h int) (*View, *memBuffer) {
	t.Helper()
	buf := newMemBuffer(content)
	v, err := NewView(buf, nil, nil)
	if err != nil {
		t.Fatalf("NewView: %v", err)
	}
	v.Resize(w, h)
	return v, buf
}

// rowText reads back the non-continuation glyphs of a row as a plain
// string, for readable test assertions.
func rowText(l *Line) string {
	var out []byte
	for _, c := range l.Cells() {
		if c.Len() == 0 && !c.isTab {
			continue
		}
		out = append(out, c.Bytes()...)
	}
	return string(out)
}
