package viewengine

// SymbolKind indexes the five glyph slots a View substitutes into the grid
// in place of whitespace, tab expansion, and end-of-line/end-of-file
// markers.
type SymbolKind int

const (
	SymSpace SymbolKind = iota
	SymTabFirst
	SymTabFill
	SymEOL
	SymEOF

	symbolCount
)

// Symbol is a single glyph/style pair, supplied by the embedding editor's
// theme.
type Symbol struct {
	Glyph string
	Style int
}

// SymbolFlags is a 5-bit mask; bit i enables the "visible" glyph for
// SymbolKind(i) (e.g. a middle-dot for spaces, a right-arrow for tabs).
// A clear bit falls back to the invisible glyph (" " for whitespace
// categories, "~" for SymEOF).
type SymbolFlags uint8

const (
	FlagSpace SymbolFlags = 1 << SymSpace
	FlagTab   SymbolFlags = 1<<SymTabFirst | 1<<SymTabFill
	FlagEOL   SymbolFlags = 1 << SymEOL
	FlagEOF   SymbolFlags = 1 << SymEOF
)

// DefaultSymbols returns the conventional glyph table: invisible
// whitespace, a literal newline glyph, and '~' for rows past end-of-file.
func DefaultSymbols() [symbolCount]Symbol {
	return [symbolCount]Symbol{
		SymSpace:    {Glyph: " "},
		SymTabFirst: {Glyph: " "},
		SymTabFill:  {Glyph: " "},
		SymEOL:      {Glyph: "⏎"},
		SymEOF:      {Glyph: "~"},
	}
}

// VisibleSymbols returns the glyph table used when every SymbolFlags bit is
// set: middle-dot for space, a right-pointing triangle followed by
// middle-dots for tab, a return-arrow glyph for EOL, '~' for EOF.
func VisibleSymbols() [symbolCount]Symbol {
	return [symbolCount]Symbol{
		SymSpace:    {Glyph: "·"},
		SymTabFirst: {Glyph: "▸"},
		SymTabFill:  {Glyph: "·"},
		SymEOL:      {Glyph: "⏎"},
		SymEOF:      {Glyph: "~"},
	}
}

func symbolTableFor(flags SymbolFlags) [symbolCount]Symbol {
	vis := VisibleSymbols()
	inv := DefaultSymbols()
	var out [symbolCount]Symbol
	for i := SymbolKind(0); i < symbolCount; i++ {
		if flags&(1<<i) != 0 {
			out[i] = vis[i]
		} else {
			out[i] = inv[i]
		}
	}
	return out
}
