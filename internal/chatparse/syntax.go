package chatparse

// ReasoningFormat selects how (or whether) C2 recognizes reasoning windows.
type ReasoningFormat int

const (
	// ReasoningNone disables reasoning-window recognition entirely.
	ReasoningNone ReasoningFormat = iota
	// ReasoningDeepSeek wraps re-emitted reasoning in literal <think> tags
	// regardless of the configured open/close literals.
	ReasoningDeepSeek
	// ReasoningGeneric wraps re-emitted reasoning in the configured
	// ThinkOpen/ThinkClose literals.
	ReasoningGeneric
)

// Syntax configures the dialects a parser recognizes. It is immutable once
// a parser is constructed.
type Syntax struct {
	ReasoningFormat ReasoningFormat

	// ReasoningInContent, when true, appends reasoning text back into
	// Content (wrapped in tags) instead of ReasoningContent.
	ReasoningInContent bool

	// ThinkingForcedOpen treats the cursor as already inside a reasoning
	// window at the start of parsing, without requiring ThinkOpen to be
	// present (DeepSeek-R1 style models that start "thinking" immediately).
	ThinkingForcedOpen bool

	// ThinkOpen/ThinkClose are the reasoning-window literals. Default to
	// "<think>"/"</think>" when empty.
	ThinkOpen  string
	ThinkClose string
}

func (s Syntax) thinkOpen() string {
	if s.ThinkOpen == "" {
		return "<think>"
	}
	return s.ThinkOpen
}

func (s Syntax) thinkClose() string {
	if s.ThinkClose == "" {
		return "</think>"
	}
	return s.ThinkClose
}
