package chatparse

import "github.com/jeanpaul/chatparse/internal/chatmsg"

// Builder accumulates an assistant message: content, reasoning content, and
// tool calls, enforcing the "finish" invariant from spec.md §3. Mirrors the
// shape of the teacher's provider.Message/ToolCall, turned into an
// accumulator with idempotent add_* operations.
type Builder struct {
	msg chatmsg.Message
}

// NewBuilder starts a fresh assistant message.
func NewBuilder() *Builder {
	return &Builder{msg: chatmsg.Message{Role: "assistant"}}
}

// AddContent appends to the message's plain content.
func (b *Builder) AddContent(s string) {
	b.msg.Content += s
}

// AddReasoningContent appends to the message's reasoning content.
func (b *Builder) AddReasoningContent(s string) {
	b.msg.ReasoningContent += s
}

// AddToolCall appends a single tool call. A call with an empty name is
// rejected outright (returns false) without mutating the message.
func (b *Builder) AddToolCall(name, id, arguments string) bool {
	if name == "" {
		return false
	}
	b.msg.ToolCalls = append(b.msg.ToolCalls, chatmsg.ToolCall{ID: id, Name: name, Arguments: arguments})
	return true
}

// AddToolCalls appends a batch all-or-nothing: the first bad call (empty
// name) fails the whole batch and nothing from it is appended.
func (b *Builder) AddToolCalls(calls []chatmsg.ToolCall) bool {
	for _, c := range calls {
		if c.Name == "" {
			return false
		}
	}
	b.msg.ToolCalls = append(b.msg.ToolCalls, calls...)
	return true
}

// ClearTools discards any tool calls accumulated so far.
func (b *Builder) ClearTools() {
	b.msg.ToolCalls = nil
}

// Finish validates and returns the built message. A complete (non-partial)
// parse that still has unconsumed cursor input is a hard error: the caller
// passes the cursor's own partial flag and end-of-input state.
func (b *Builder) Finish(isPartial, cursorAtEnd bool) (*chatmsg.Message, error) {
	if !isPartial && !cursorAtEnd {
		return nil, &HardError{Message: "finish() called on complete input with leftover unparsed text"}
	}
	msg := b.msg
	return &msg, nil
}

// Message returns the message accumulated so far without enforcing finish.
func (b *Builder) Message() chatmsg.Message {
	return b.msg
}
