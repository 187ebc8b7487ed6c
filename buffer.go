package viewengine

// Buffer is the external, piece-table-like text store the engine renders
// and navigates. Everything here is read-only from the engine's point of
// view; mutation (insert/delete) belongs to the embedding editor.
//
// All methods are pure queries except mark resolution, which is still pure
// in the sense that it never mutates the buffer itself.
type Buffer interface {
	// Size returns the total byte length of the buffer contents.
	Size() int

	// BytesGet reads up to max bytes starting at pos into out, returning
	// the number of bytes actually copied. out must have length >= max.
	BytesGet(pos, max int, out []byte) int

	// MarkSet captures pos as a Mark that survives future edits.
	MarkSet(pos int) Mark

	// MarkGet resolves a Mark to its current byte offset, or EPOS if the
	// marked content was deleted.
	MarkGet(m Mark) int

	// LinenoByPos returns the 1-based logical line number containing pos.
	LinenoByPos(pos int) int

	// LineBegin returns the byte offset of the start of the logical line
	// containing pos.
	LineBegin(pos int) int

	// LineUp/LineDown perform logical (not screen-row) vertical motion,
	// returning EPOS if there is no such line.
	LineUp(pos int) int
	LineDown(pos int) int

	// CharNext/CharPrev step by one decoded character, returning EPOS at
	// the buffer's edges.
	CharNext(pos int) int
	CharPrev(pos int) int

	// Iterator returns a byte-wise cursor positioned at pos.
	Iterator(pos int) ByteIterator

	// BracketMatchExcept finds the matching bracket for the character at
	// pos, ignoring the two bytes in except (e.g. "<>" to skip angle
	// brackets), returning EPOS on no match.
	BracketMatchExcept(pos int, except string) int
}

// ByteIterator walks a Buffer one byte at a time in either direction.
type ByteIterator interface {
	// Get returns the byte at the iterator's current position, or
	// (0, false) if the iterator has run off either edge.
	Get() (byte, bool)
	// Next advances the iterator by one byte, reporting whether the new
	// position is still valid.
	Next() bool
	// Prev retreats the iterator by one byte, reporting whether the new
	// position is still valid.
	Prev() bool
}

// Range is a half-open byte span [Begin, End) in a Buffer.
type Range struct {
	Begin int
	End   int
}

// Valid reports whether the range is well formed (Begin <= End, both >= 0).
func (r Range) Valid() bool {
	return r.Begin >= 0 && r.End >= r.Begin
}

// Empty reports whether the range spans zero bytes.
func (r Range) Empty() bool {
	return r.Begin == r.End
}

// Includes reports whether pos lies within the half-open range.
func (r Range) Includes(pos int) bool {
	return r.Begin <= pos && pos < r.End
}
