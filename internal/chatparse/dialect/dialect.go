// Package dialect composes the chatparse core primitives (C1-C6) into the
// handful of concrete chat-message formats a caller actually sees. Spec.md
// deliberately keeps dialects out of the core; this package is the thin
// upstream layer spec.md assumes exists without specifying it.
package dialect

import (
	"github.com/google/uuid"

	"github.com/jeanpaul/chatparse/internal/chatmsg"
	"github.com/jeanpaul/chatparse/internal/chatparse"
)

// namePath and argumentsPath are the canonical top-level JSON tool-call
// object shape {"name": ..., "arguments": {...}} the Generic and DeepSeek
// dialects expect. "name" is a content path (a plain string, healed by raw
// truncation); "arguments" is an args path (re-serialized to JSON text).
var (
	namePath      = chatparse.Path{"name"}
	argumentsPath = chatparse.Path{"arguments"}
)

// newToolCallID assigns a fresh id for a JSON-dialect tool call, mirroring
// internal/orchestrator/state.go's uuid.New().String() session-id pattern.
// The XML dialect never calls this: spec.md §4.5 step 6 fixes id="" there.
func newToolCallID() string {
	return uuid.New().String()
}

// objectToolCall extracts {"name", "arguments"} from a parsed JSON value
// using C4's Dump, returning the tool-call fields plus whether the dump
// found a healing marker anywhere in the object.
func objectToolCall(v *chatparse.Value, healing chatparse.Healing) (name, arguments string, isPartial bool, err error) {
	result, err := chatparse.Dump(v, healing, []chatparse.Path{argumentsPath}, []chatparse.Path{namePath})
	if err != nil {
		return "", "", false, err
	}
	return result.Contents[pathKey(namePath)], result.Args[pathKey(argumentsPath)], result.IsPartialResult, nil
}

func pathKey(p chatparse.Path) string {
	key := ""
	for i, s := range p {
		if i > 0 {
			key += "\x00"
		}
		key += s
	}
	return key
}

// looksLikeToolCallObject reports whether v is a JSON object carrying a
// "name" key, the minimal shape the JSON tool-call dialects recognize.
func looksLikeToolCallObject(v *chatparse.Value) bool {
	if v == nil || v.Kind != chatparse.KindObject {
		return false
	}
	_, ok := v.Get("name")
	return ok
}

// toolCallArray reports whether v is a JSON array whose elements all look
// like tool-call objects — the bare-array fast path from SPEC_FULL §4.
func toolCallArray(v *chatparse.Value) bool {
	if v == nil || v.Kind != chatparse.KindArray || len(v.Arr) == 0 {
		return false
	}
	for _, elem := range v.Arr {
		if !looksLikeToolCallObject(elem) {
			return false
		}
	}
	return true
}

// emitToolCallsFromArray handles SPEC_FULL §4's bare-JSON-array fast path
// (`[{"name":...}, {"name":...}]` instead of one object), exercising C6's
// all-or-nothing add_tool_calls batch directly.
func emitToolCallsFromArray(b *chatparse.Builder, v *chatparse.Value, healing chatparse.Healing) (ok bool, isPartial bool, err error) {
	calls := make([]chatmsg.ToolCall, 0, len(v.Arr))
	for _, elem := range v.Arr {
		name, arguments, partial, err := objectToolCall(elem, healing)
		if err != nil {
			return false, false, err
		}
		if partial {
			isPartial = true
		}
		calls = append(calls, chatmsg.ToolCall{ID: newToolCallID(), Name: name, Arguments: arguments})
	}
	return b.AddToolCalls(calls), isPartial, nil
}

// parseJSONToolCallOrContent is the shared tail of Generic and DeepSeek:
// after any reasoning window has been consumed, the rest of the turn is
// either a JSON tool-call object, a bare array of them (SPEC_FULL §4's
// fast path), or plain content.
func parseJSONToolCallOrContent(state *chatparse.State) error {
	state.Cursor.ConsumeSpaces()
	if state.Cursor.AtEnd() {
		return nil
	}

	v, healing, ok, err := state.Cursor.TryConsumeJSON(state.Marker)
	if err != nil {
		return err
	}
	if !ok {
		state.Builder.AddContent(state.Cursor.ConsumeRest())
		return nil
	}

	switch {
	case toolCallArray(v):
		if _, _, err := emitToolCallsFromArray(state.Builder, v, healing); err != nil {
			return err
		}
	case looksLikeToolCallObject(v):
		name, arguments, _, err := objectToolCall(v, healing)
		if err != nil {
			return err
		}
		state.Builder.AddToolCall(name, newToolCallID(), arguments)
	default:
		// Valid JSON at the cursor that isn't a recognized tool-call shape:
		// keep it as content rather than discarding it.
		state.Builder.AddContent(v.Serialize())
	}

	// The JSON value may not have consumed every remaining byte (no
	// trailing-data error is raised, per jsonpartial.go's design); anything
	// left over is just more content, and must be consumed so a complete
	// parse doesn't trip Builder.Finish's leftover-cursor invariant.
	if trailing := state.Cursor.ConsumeRest(); trailing != "" {
		state.Builder.AddContent(trailing)
	}
	return nil
}
