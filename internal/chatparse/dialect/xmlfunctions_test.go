package dialect

import (
	"testing"

	"github.com/jeanpaul/chatparse/internal/chatmsg"
	"github.com/jeanpaul/chatparse/internal/chatparse"
)

func TestXMLFunctionsBasicCall(t *testing.T) {
	x := XMLFunctions{}
	input := `<tool_call><function=get_weather><parameter=city>Paris</parameter></function></tool_call>`
	msg, err := x.Parse(input, false, nil)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(msg.ToolCalls) != 1 {
		t.Fatalf("expected 1 tool call, got %d", len(msg.ToolCalls))
	}
	if msg.ToolCalls[0].Name != "get_weather" {
		t.Errorf("Name = %q, want %q", msg.ToolCalls[0].Name, "get_weather")
	}
	if msg.ToolCalls[0].ID != "" {
		t.Errorf("ID = %q, want empty (XML dialect never assigns one)", msg.ToolCalls[0].ID)
	}
}

func TestXMLFunctionsContentAroundCall(t *testing.T) {
	x := XMLFunctions{}
	input := `sure, let me check.<tool_call><function=f><parameter=x>1</parameter></function></tool_call>`
	msg, err := x.Parse(input, false, nil)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if msg.Content != "sure, let me check." {
		t.Errorf("Content = %q, want %q", msg.Content, "sure, let me check.")
	}
}

func TestXMLFunctionsHoldsBackPartialOpenTag(t *testing.T) {
	x := XMLFunctions{}
	input := `some text <tool_cal`
	msg, err := x.Parse(input, true, nil)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if msg.Content != "some text " {
		t.Errorf("Content = %q, want %q (the in-progress tag must not leak into content)", msg.Content, "some text ")
	}
}

func TestXMLFunctionsWhitelistRejection(t *testing.T) {
	x := XMLFunctions{}
	input := `<tool_call><function=evil><parameter=x>1</parameter></function></tool_call>`
	_, err := x.Parse(input, false, []chatmsg.ToolDef{{Name: "safe"}})
	if err == nil {
		t.Fatal("expected an error for a function not in the whitelist")
	}
}

func TestXMLFunctionsReasoningThenCall(t *testing.T) {
	x := XMLFunctions{Syntax: chatparse.Syntax{ReasoningFormat: chatparse.ReasoningGeneric}}
	input := `<think>let me check the weather</think><tool_call><function=f><parameter=x>1</parameter></function></tool_call>`
	msg, err := x.Parse(input, false, nil)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if msg.ReasoningContent != "let me check the weather" {
		t.Errorf("ReasoningContent = %q, want %q", msg.ReasoningContent, "let me check the weather")
	}
	if len(msg.ToolCalls) != 1 {
		t.Fatalf("expected 1 tool call, got %d", len(msg.ToolCalls))
	}
}
