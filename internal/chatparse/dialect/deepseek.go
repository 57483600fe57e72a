package dialect

import (
	"github.com/jeanpaul/chatparse/internal/chatmsg"
	"github.com/jeanpaul/chatparse/internal/chatparse"
)

// DeepSeek recognizes the DeepSeek-R1 convention: the assistant turn opens
// already "inside" a reasoning window (ThinkingForcedOpen) rather than
// requiring a literal <think> to appear first, mirroring the <think>
// buffering the teacher's openai.go streaming loop does for this family of
// models.
type DeepSeek struct {
	// ReasoningInContent, when true, wraps reasoning back into the message's
	// content as <think>...</think> instead of routing it to
	// reasoning_content.
	ReasoningInContent bool
}

func (d DeepSeek) Parse(input string, isPartial bool, tools []chatmsg.ToolDef) (*chatmsg.Message, error) {
	syntax := chatparse.Syntax{
		ReasoningFormat:    chatparse.ReasoningDeepSeek,
		ThinkingForcedOpen: true,
		ReasoningInContent: d.ReasoningInContent,
	}

	state := chatparse.NewState(input, isPartial)

	chatparse.ExtractReasoning(state.Cursor, state.Builder, syntax)

	if err := parseJSONToolCallOrContent(state); err != nil {
		return nil, err
	}

	return state.Finish()
}
