package viewengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewProperty4MarkStabilityAcrossEditsAbove(t *testing.T) {
	content := "line one\nline two\nline three\nline four\nline five\n"
	v, buf := newTestView(t, content, 10, 2)

	require.True(t, v.ViewportDown(1))
	startBefore := v.Start()
	visibleBefore := rowText(v.TopLine())

	k := []byte("XX")
	buf.Insert(0, k) // edit strictly above start

	v.Draw()
	assert.Equal(t, startBefore+len(k), v.Start(), "start must shift by exactly the inserted byte count")
	assert.Equal(t, visibleBefore, rowText(v.TopLine()), "visible content must be unchanged")
}

func TestViewProperty4MarkStabilityAcrossDeleteAbove(t *testing.T) {
	content := "line one\nline two\nline three\nline four\nline five\n"
	v, buf := newTestView(t, content, 10, 2)

	require.True(t, v.ViewportDown(1))
	startBefore := v.Start()
	visibleBefore := rowText(v.TopLine())

	buf.Delete(0, 3) // delete strictly above start

	v.Draw()
	assert.Equal(t, startBefore-3, v.Start())
	assert.Equal(t, visibleBefore, rowText(v.TopLine()))
}

func TestNewViewRejectsNilBuffer(t *testing.T) {
	_, err := NewView(nil, nil, nil)
	assert.Error(t, err)
}

func TestResizeNeverShrinksBackingStore(t *testing.T) {
	v, _ := newTestView(t, "hello", 10, 5)
	v.Resize(4, 2)
	assert.GreaterOrEqual(t, len(v.grid.lines), 5)
	assert.GreaterOrEqual(t, v.grid.width, 10)
	assert.Equal(t, 2, v.Height())
}

func TestConfigureAppliesSymbolFlags(t *testing.T) {
	v, _ := newTestView(t, "a b", 10, 2)
	v.Configure(Config{SymbolFlags: FlagSpace})
	v.Draw()

	cells := v.TopLine().Cells()
	assert.Equal(t, "·", string(cells[1].Bytes()))
}

func TestFreeReleasesCursorsAndGrid(t *testing.T) {
	v, _ := newTestView(t, "hello", 10, 2)
	v.NewCursor()
	v.Free()

	assert.Nil(t, v.cursors)
	assert.Nil(t, v.cursor)
	assert.Nil(t, v.grid)
}

// recordingUI is a UIBackend double that only records SyntaxStyle calls.
type recordingUI struct {
	styles map[int]string
}

func (u *recordingUI) DrawText(topLine *Line) {}

func (u *recordingUI) SyntaxStyle(styleIndex int, styleSpec string) {
	if u.styles == nil {
		u.styles = make(map[int]string)
	}
	u.styles[styleIndex] = styleSpec
}

func TestConfigureRegistersSyntaxStylesWithUIBackend(t *testing.T) {
	buf := newMemBuffer("a b")
	ui := &recordingUI{}
	v, err := NewView(buf, ui, nil)
	require.NoError(t, err)

	v.Configure(Config{Syntax: &Syntax{
		Styles: []string{"fg=red", "fg=blue;bold"},
	}})

	assert.Equal(t, "fg=red", ui.styles[0])
	assert.Equal(t, "fg=blue;bold", ui.styles[1])
}
