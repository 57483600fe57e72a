package chatparse

import (
	"testing"

	"github.com/jeanpaul/chatparse/internal/chatmsg"
)

func TestBuilderAccumulates(t *testing.T) {
	b := NewBuilder()
	b.AddContent("hello ")
	b.AddContent("world")
	b.AddReasoningContent("thinking")
	if !b.AddToolCall("search", "id1", `{"q":"x"}`) {
		t.Fatal("AddToolCall() = false, want true")
	}

	msg := b.Message()
	if msg.Content != "hello world" {
		t.Errorf("Content = %q, want %q", msg.Content, "hello world")
	}
	if msg.ReasoningContent != "thinking" {
		t.Errorf("ReasoningContent = %q, want %q", msg.ReasoningContent, "thinking")
	}
	if len(msg.ToolCalls) != 1 || msg.ToolCalls[0].Name != "search" {
		t.Errorf("ToolCalls = %+v, want one 'search' call", msg.ToolCalls)
	}
}

func TestBuilderAddToolCallRejectsEmptyName(t *testing.T) {
	b := NewBuilder()
	if b.AddToolCall("", "id", "{}") {
		t.Fatal("AddToolCall() with empty name = true, want false")
	}
	if len(b.Message().ToolCalls) != 0 {
		t.Error("rejected tool call should not mutate the message")
	}
}

func TestBuilderAddToolCallsAllOrNothing(t *testing.T) {
	b := NewBuilder()
	b.AddToolCall("first", "id0", "{}")

	batch := []chatmsg.ToolCall{
		{ID: "id1", Name: "second", Arguments: "{}"},
		{ID: "id2", Name: "", Arguments: "{}"},
	}
	ok := b.AddToolCalls(batch)
	if ok {
		t.Fatal("AddToolCalls() with a bad entry = true, want false")
	}
	if len(b.Message().ToolCalls) != 1 {
		t.Errorf("a failed batch must not append any of its calls; got %d tool calls", len(b.Message().ToolCalls))
	}
}

func TestBuilderClearTools(t *testing.T) {
	b := NewBuilder()
	b.AddToolCall("a", "1", "{}")
	b.ClearTools()
	if len(b.Message().ToolCalls) != 0 {
		t.Error("ClearTools() did not clear tool calls")
	}
}

func TestBuilderFinish(t *testing.T) {
	b := NewBuilder()
	b.AddContent("done")

	if _, err := b.Finish(false, false); err == nil {
		t.Error("Finish() on complete input with leftover cursor should error")
	}
	if _, err := b.Finish(true, false); err != nil {
		t.Errorf("Finish() on partial input with leftover cursor should not error: %v", err)
	}
	msg, err := b.Finish(false, true)
	if err != nil {
		t.Fatalf("Finish() on complete, fully-consumed input errored: %v", err)
	}
	if msg.Content != "done" {
		t.Errorf("Content = %q, want %q", msg.Content, "done")
	}
}
