package chatparse

import "testing"

func TestExtractReasoningNone(t *testing.T) {
	c := NewCursor("<think>hidden</think>rest", false)
	b := NewBuilder()
	found := ExtractReasoning(c, b, Syntax{ReasoningFormat: ReasoningNone})
	if found {
		t.Error("ReasoningNone should never recognize a window")
	}
	if c.Pos() != 0 {
		t.Error("cursor should be untouched when reasoning is disabled")
	}
}

func TestExtractReasoningGenericClosed(t *testing.T) {
	c := NewCursor("<think>thinking hard</think>the answer", false)
	b := NewBuilder()
	if !ExtractReasoning(c, b, Syntax{ReasoningFormat: ReasoningGeneric}) {
		t.Fatal("expected a reasoning window to be recognized")
	}
	msg := b.Message()
	if msg.ReasoningContent != "thinking hard" {
		t.Errorf("ReasoningContent = %q, want %q", msg.ReasoningContent, "thinking hard")
	}
	if c.Remaining() != "the answer" {
		t.Errorf("Remaining() = %q, want %q", c.Remaining(), "the answer")
	}
}

func TestExtractReasoningNoOpenTagIsMiss(t *testing.T) {
	c := NewCursor("just an answer", false)
	b := NewBuilder()
	if ExtractReasoning(c, b, Syntax{ReasoningFormat: ReasoningGeneric}) {
		t.Error("expected no reasoning window without an opening tag")
	}
	if c.Pos() != 0 {
		t.Error("cursor should be untouched on a miss")
	}
}

func TestExtractReasoningForcedOpenWithoutLiteralTag(t *testing.T) {
	c := NewCursor("thinking...</think>answer", false)
	b := NewBuilder()
	if !ExtractReasoning(c, b, Syntax{ReasoningFormat: ReasoningDeepSeek, ThinkingForcedOpen: true}) {
		t.Fatal("expected ThinkingForcedOpen to treat input as already inside a window")
	}
	if b.Message().ReasoningContent != "thinking..." {
		t.Errorf("ReasoningContent = %q, want %q", b.Message().ReasoningContent, "thinking...")
	}
	if c.Remaining() != "answer" {
		t.Errorf("Remaining() = %q, want %q", c.Remaining(), "answer")
	}
}

func TestExtractReasoningUnclosedOnPartialInputStaysPartial(t *testing.T) {
	c := NewCursor("<think>still going", true)
	b := NewBuilder()
	if !ExtractReasoning(c, b, Syntax{ReasoningFormat: ReasoningGeneric}) {
		t.Fatal("expected a reasoning window to be recognized")
	}
	if b.Message().ReasoningContent != "still going" {
		t.Errorf("ReasoningContent = %q, want %q", b.Message().ReasoningContent, "still going")
	}
	if !c.AtEnd() {
		t.Error("unclosed reasoning window should consume the rest of partial input")
	}
}

func TestExtractReasoningInContentWraps(t *testing.T) {
	c := NewCursor("<think>why</think>answer", false)
	b := NewBuilder()
	syn := Syntax{ReasoningFormat: ReasoningGeneric, ReasoningInContent: true}
	if !ExtractReasoning(c, b, syn) {
		t.Fatal("expected a reasoning window to be recognized")
	}
	msg := b.Message()
	if msg.ReasoningContent != "" {
		t.Errorf("ReasoningContent should stay empty when ReasoningInContent is set, got %q", msg.ReasoningContent)
	}
	if msg.Content != "<think>why</think>" {
		t.Errorf("Content = %q, want %q", msg.Content, "<think>why</think>")
	}
}
