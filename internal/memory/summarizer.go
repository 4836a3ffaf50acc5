package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/easeaico/worldsim/internal/llm"
	"github.com/easeaico/worldsim/internal/types"
)

const messageSummaryInstruction = `You are a concise message summarizer.
Summarize the incoming message in at most 50 words, preserving names, dates,
plans, and anything the recipient would want to remember.
Return only the summary text, with no preamble.`

const daySummaryInstruction = `You are a diary writer for a simulated character.
Given the character's experiences from a single day, write one short
third-person paragraph summarizing the day. Preserve names, places, and
anything worth remembering later. Return only the summary text.`

// Summarizer condenses long messages and full days into single memory texts.
type Summarizer struct {
	completer llm.Completer
}

// NewSummarizer returns a Summarizer over the shared completion client.
func NewSummarizer(completer llm.Completer) *Summarizer {
	return &Summarizer{completer: completer}
}

// SummarizeMessage reduces a long inbound message to at most 50 words.
func (s *Summarizer) SummarizeMessage(ctx context.Context, message string) (string, error) {
	if s.completer == nil {
		return "", fmt.Errorf("summarizer not properly configured")
	}
	out, err := s.completer.Complete(ctx, []types.ChatMessage{
		{Role: types.RoleSystem, Content: messageSummaryInstruction},
		{Role: types.RoleUser, Content: message},
	})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("empty summary response")
	}
	return strings.TrimSpace(out), nil
}

// SummarizeDay synthesizes one day-summary text from the day's memories.
func (s *Summarizer) SummarizeDay(ctx context.Context, characterName string, date time.Time, entries []types.Memory) (string, error) {
	if s.completer == nil {
		return "", fmt.Errorf("summarizer not properly configured")
	}
	if len(entries) == 0 {
		return "", nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Character: %s\nDate: %s\nExperiences:\n", characterName, date.Format("2006-01-02"))
	for _, entry := range entries {
		fmt.Fprintf(&sb, "- [%s] %s\n", entry.Kind, entry.Content)
	}

	out, err := s.completer.Complete(ctx, []types.ChatMessage{
		{Role: types.RoleSystem, Content: daySummaryInstruction},
		{Role: types.RoleUser, Content: sb.String()},
	})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("empty summary response")
	}
	return strings.TrimSpace(out), nil
}
