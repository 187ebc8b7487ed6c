package viewengine

// UIBackend is the external window abstraction a View hands its rendered
// top line to after every draw. It is borrowed: its lifetime must strictly
// exceed the View's.
type UIBackend interface {
	// DrawText is called once per draw with the first Line of the grid;
	// the backend walks line.Next() itself to pull the rest.
	DrawText(topLine *Line)

	// SyntaxStyle registers the display style (e.g. an ANSI/terminfo style
	// spec string) for a given style index so the backend can paint cells
	// carrying that Cell.Attr.
	SyntaxStyle(styleIndex int, styleSpec string)
}

// SelectionObserver is an optional callback invoked once per drawn
// selection range.
type SelectionObserver interface {
	Selection(rng Range)
}

// SyntaxRegexp is the calling convention the engine expects from a
// compiled regex rule: find the first match at or after the start of data,
// returning submatch byte offsets the same way *regexp.Regexp.
// FindSubmatchIndex does (nil on no match). Compiling the rule is out of
// scope for this engine; *regexp.Regexp satisfies this interface directly.
type SyntaxRegexp interface {
	FindSubmatchIndex(data []byte) []int
}

// SyntaxRule pairs a compiled regex with the style index assigned to text
// it matches. Rule order is significant: earlier rules win ties.
type SyntaxRule struct {
	Regexp SyntaxRegexp
	Style  int
}

// Syntax is an ordered list of rules, the symbol table a syntax definition
// wants substituted for whitespace/eol/eof glyphs, and the display style
// spec strings to register with the UI backend, indexed the same way
// SyntaxRule.Style and Cell.Attr are (Styles[i] is the spec for style
// index i).
type Syntax struct {
	Rules   []SyntaxRule
	Symbols [symbolCount]Symbol
	Styles  []string
}

// Register is an opaque per-cursor clipboard slot. The engine never reads
// or writes through it; it only allocates one per cursor and releases it
// on disposal.
type Register interface{}

// RegisterAllocator is the external collaborator that mints and reclaims
// Registers.
type RegisterAllocator interface {
	AllocRegister() Register
	ReleaseRegister(Register)
}
