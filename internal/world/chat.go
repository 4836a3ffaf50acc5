package world

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/easeaico/worldsim/internal/mood"
	"github.com/easeaico/worldsim/internal/prompt"
	"github.com/easeaico/worldsim/internal/types"
)

const chatRecallK = 20

// Respond generates the character's reply to a user message: recall relevant
// memories, build the persona prompt, complete, and remember both sides of
// the exchange.
func (c *Character) Respond(ctx context.Context, userMessage string) (string, error) {
	memories, err := c.deps.Memories.Recall(ctx, c.Name, userMessage, chatRecallK)
	if err != nil {
		return "", err
	}

	// Mood is cosmetic: an analyzer failure must not block the reply.
	if c.deps.Sentiment != nil {
		label, err := c.deps.Sentiment.Analyze(ctx, userMessage)
		if err != nil {
			slog.Warn("sentiment analysis failed", "character", c.Name, "error", err.Error())
		} else {
			c.moodState = mood.Advance(c.moodState, label)
		}
	}

	today := c.world.CurrentDate()
	system, err := prompt.Build(prompt.BuildContext{
		Name:            c.Name,
		Description:     c.Description,
		Age:             c.Age(today),
		DateOfBirth:     c.DateOfBirth.Format(dateFormat),
		Location:        c.Location,
		Weather:         c.world.Weather(c.Location),
		LocalTime:       c.LocalTime().Format("03:04 PM"),
		Personality:     c.Personality,
		Interests:       c.Interests,
		Goals:           c.Goals,
		PastExperiences: c.PastExperiences,
		Preferences:     c.Preferences,
		TextingStyle:    c.TextingStyle,
		Skills:          c.Skills,
		Friendships:     c.Friendships(),
		Mood:            c.moodState.Current,
		MoodHint:        mood.Instruction(c.moodState.Current),
		Memories:        memories,
	})
	if err != nil {
		return "", err
	}

	reply, err := c.deps.Completer.Complete(ctx, []types.ChatMessage{
		{Role: types.RoleSystem, Content: system},
		{Role: types.RoleUser, Content: userMessage},
	})
	if err != nil {
		return "", err
	}

	if err := c.remember(ctx, types.MemoryKindChat, fmt.Sprintf("The user said: %s", userMessage), true); err != nil {
		return "", err
	}
	if err := c.remember(ctx, types.MemoryKindChat, fmt.Sprintf("You responded: %s", reply), false); err != nil {
		return "", err
	}
	return reply, nil
}
