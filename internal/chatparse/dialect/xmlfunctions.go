package dialect

import (
	"github.com/jeanpaul/chatparse/internal/chatmsg"
	"github.com/jeanpaul/chatparse/internal/chatparse"
	"github.com/jeanpaul/chatparse/internal/chatparse/internal/logx"
	"github.com/jeanpaul/chatparse/internal/schema"
)

const toolCallOpenTag = "<tool_call"

// XMLFunctions recognizes an optional <think> window followed by zero or
// more <tool_call><function=NAME><parameter=KEY>VALUE</parameter>...</function></tool_call>
// blocks via C5.
type XMLFunctions struct {
	Syntax chatparse.Syntax

	// Validator, when non-nil, checks each extracted tool call's arguments
	// against the matching tool's declared schema after coercion. A schema
	// mismatch is a recoverable format error here (the call is still
	// emitted) — C5 already did its best-effort coercion; this is an extra
	// diagnostic layer, not a second chance to reject the call.
	Validator *schema.Validator
}

func (x XMLFunctions) Parse(input string, isPartial bool, tools []chatmsg.ToolDef) (*chatmsg.Message, error) {
	state := chatparse.NewState(input, isPartial)

	chatparse.ExtractReasoning(state.Cursor, state.Builder, x.Syntax)

	rest := state.Cursor.Remaining()
	safe := rest
	if isPartial {
		if overlap := chatparse.PartialPrefixOverlap(rest, toolCallOpenTag); overlap > 0 {
			// An opening <tool_call tag might still be arriving: hold it
			// back rather than emitting it as content, so a later reparse
			// with the tag's close still in hand sees it as a tool call
			// and doesn't need to retract already-emitted content.
			safe = rest[:len(rest)-overlap]
		}
	}

	ok, xmlErr := chatparse.ParseToolCalls(state.Builder, safe, tools)
	if !ok {
		return nil, xmlErr
	}
	state.Cursor.SetPos(state.Cursor.Pos() + len(safe))

	if x.Validator != nil {
		x.validate(state.Builder.Message().ToolCalls, tools)
	}

	return state.Finish()
}

// validate runs each tool call's arguments through the schema validator for
// diagnostic purposes; failures are swallowed here per spec.md §7's
// "recoverable format errors are logged, not raised" handling — callers
// wanting hard enforcement should call x.Validator.Validate themselves on
// the returned message.
func (x XMLFunctions) validate(calls []chatmsg.ToolCall, tools []chatmsg.ToolDef) {
	byName := make(map[string]chatmsg.ToolDef, len(tools))
	for _, t := range tools {
		byName[t.Name] = t
	}
	for _, call := range calls {
		tool, ok := byName[call.Name]
		if !ok || tool.Parameters == nil {
			continue
		}
		if err := x.Validator.Validate(tool.Parameters, call.Arguments); err != nil {
			logx.Warnf("tool call arguments failed schema validation", "tool", call.Name, "error", err)
		}
	}
}
