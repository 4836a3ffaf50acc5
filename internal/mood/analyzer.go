package mood

import (
	"context"
	"strings"

	"github.com/easeaico/worldsim/internal/llm"
	"github.com/easeaico/worldsim/internal/types"
)

const analyzerInstruction = `You are a sentiment classifier. Classify the user's message and return exactly one of these labels: Positive, Negative, Neutral. Output nothing else.`

// Analyzer classifies message sentiment with the chat model.
type Analyzer struct {
	completer llm.Completer
}

// NewAnalyzer returns an Analyzer backed by the given completer.
func NewAnalyzer(completer llm.Completer) *Analyzer {
	return &Analyzer{completer: completer}
}

// Analyze returns the sentiment label for text. Blank text is Neutral
// without a model call; an unrecognized response falls back to Neutral.
func (a *Analyzer) Analyze(ctx context.Context, text string) (Label, error) {
	if strings.TrimSpace(text) == "" {
		return Neutral, nil
	}

	raw, err := a.completer.Complete(ctx, []types.ChatMessage{
		{Role: types.RoleSystem, Content: analyzerInstruction},
		{Role: types.RoleUser, Content: text},
	})
	if err != nil {
		return Neutral, err
	}

	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "positive":
		return Positive, nil
	case "negative":
		return Negative, nil
	default:
		return Neutral, nil
	}
}
