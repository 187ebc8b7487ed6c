package viewengine

import "errors"

// Mark is an opaque capability handed out by a Buffer. Its resolved byte
// offset tracks edits to the underlying text; the engine never inspects its
// bits, only stores and re-resolves it.
type Mark uint64

// EPOS is the sentinel byte offset a Buffer reports when a Mark can no
// longer be resolved (the marked content was deleted).
const EPOS = -1

// ErrMarkGone is returned by View.ResolveMark when a mark's content was
// deleted. Most internal call sites just compare the resolved offset
// against EPOS directly; this exists for callers that prefer the
// idiomatic errors.Is path.
var ErrMarkGone = errors.New("viewengine: mark no longer resolvable")
