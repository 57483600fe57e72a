package dialect

import (
	"github.com/jeanpaul/chatparse/internal/chatmsg"
	"github.com/jeanpaul/chatparse/internal/chatparse"
)

// Generic recognizes an optional <think> reasoning window followed by
// either a raw JSON tool-call object/array or plain content — the format
// most OpenAI-compatible chat completion backends use.
type Generic struct {
	Syntax chatparse.Syntax
}

// Parse runs the dialect over input. isPartial marks whether more bytes
// may still arrive; tools is the whitelist/schema set used to validate and
// coerce tool calls (unused by Generic beyond being threaded through, since
// JSON tool calls carry their own argument shape already).
func (g Generic) Parse(input string, isPartial bool, tools []chatmsg.ToolDef) (*chatmsg.Message, error) {
	state := chatparse.NewState(input, isPartial)

	chatparse.ExtractReasoning(state.Cursor, state.Builder, g.Syntax)

	if err := parseJSONToolCallOrContent(state); err != nil {
		return nil, err
	}

	return state.Finish()
}
