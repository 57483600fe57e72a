package chatparse

import "github.com/jeanpaul/chatparse/internal/chatmsg"

// State is a single parser instance: the input cursor, the message under
// construction, and the healing marker unique to this input (spec.md §3's
// Input State data model, and §5's "each parser owns its input, cursor,
// message-under-construction, and error slot"). Dialects are built
// entirely out of State plus the C1-C6 primitives.
type State struct {
	Cursor  *Cursor
	Builder *Builder
	Marker  string
}

// NewState starts a fresh parser over input. isPartial marks whether more
// bytes may still arrive (spec.md's "is_partial" throughout).
func NewState(input string, isPartial bool) *State {
	return &State{
		Cursor:  NewCursor(input, isPartial),
		Builder: NewBuilder(),
		Marker:  newHealingMarker(input),
	}
}

// Finish closes out the parse: Builder.Finish enforces spec.md's invariant
// that a complete (non-partial) parse must consume the whole cursor.
func (s *State) Finish() (*chatmsg.Message, error) {
	return s.Builder.Finish(s.Cursor.IsPartial(), s.Cursor.AtEnd())
}
