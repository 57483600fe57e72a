// Package chatmsg holds the wire-shaped types an assistant message and a
// tool schema are built from. Adapted from aseity's internal/provider
// package, stripped of everything HTTP/provider specific.
package chatmsg

// ToolCall is a structured function-invocation request extracted from a
// model's text: a name plus a JSON-text arguments payload.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolDef is the schema a caller supplies for a tool the model may invoke.
// Parameters is a JSON Schema-like object, typically carrying a top-level
// "properties" map of parameter name to {"type": "...", ...}.
type ToolDef struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parameters  any    `json:"parameters"`
}

// Message is the assistant message under construction. Role is always
// "assistant"; Content and ReasoningContent are append-only.
type Message struct {
	Role             string     `json:"role"`
	Content          string     `json:"content"`
	ReasoningContent string     `json:"reasoning_content,omitempty"`
	ToolCalls        []ToolCall `json:"tool_calls,omitempty"`
}
