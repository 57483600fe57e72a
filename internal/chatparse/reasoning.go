package chatparse

import "strings"

// ExtractReasoning recognizes a <think>...</think>-style reasoning window at
// the cursor and routes its text to content or reasoning per syntax.
// Reports whether a window was recognized (opened by the literal or by
// ThinkingForcedOpen), whether or not its closing literal was found.
//
// Grounded on the <think>/<\/think> buffering in the teacher's
// internal/provider/openai.go streaming loop and on the thinkTagTransform
// state machine (state-searching/thinking/final) from the pack's
// claude-hybrid-router example, reimplemented atop Cursor.
func ExtractReasoning(c *Cursor, b *Builder, syn Syntax) bool {
	if syn.ReasoningFormat == ReasoningNone {
		return false
	}

	openTag, closeTag := syn.thinkOpen(), syn.thinkClose()

	inWindow := syn.ThinkingForcedOpen || c.TryConsumeLiteral(openTag)
	if !inWindow {
		return false
	}

	var reasoning string
	closed := false
	if prelude, _, ok := c.TryFindLiteral(closeTag); ok {
		reasoning = prelude
		closed = true
	} else {
		// Miss: on complete input this is tolerated deliberately (models
		// occasionally drop the closing tag); do not fail the parse.
		reasoning = c.ConsumeRest()
		closed = !c.IsPartial()
	}

	emitReasoning(b, syn, reasoning, closed)

	if closed {
		c.ConsumeSpaces()
	}
	return true
}

func emitReasoning(b *Builder, syn Syntax, reasoning string, closed bool) {
	trimmed := strings.TrimSpace(reasoning)
	if trimmed == "" {
		return
	}

	if !syn.ReasoningInContent {
		b.AddReasoningContent(trimmed)
		return
	}

	openTag := syn.thinkOpen()
	if syn.ReasoningFormat == ReasoningDeepSeek {
		openTag = "<think>"
	}
	var wrapped strings.Builder
	wrapped.WriteString(openTag)
	wrapped.WriteString(trimmed)
	if closed {
		closeTag := syn.thinkClose()
		if syn.ReasoningFormat == ReasoningDeepSeek {
			closeTag = "</think>"
		}
		wrapped.WriteString(closeTag)
	}
	b.AddContent(wrapped.String())
}
