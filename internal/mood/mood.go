// Package mood tracks a character's affection and mood from the
// sentiment of incoming messages.
package mood

// Label is a sentiment classification of one message.
type Label string

const (
	Positive Label = "Positive"
	Negative Label = "Negative"
	Neutral  Label = "Neutral"
)

// State is the current affection score and mood, plus the streak
// bookkeeping that keeps moods from flapping turn to turn.
type State struct {
	Affection int
	Current   string
	Turns     int
	LastLabel string
}

const (
	minMoodTurns      = 2
	negativeThreshold = 2
	positiveThreshold = 2
)

// ClampAffection bounds affection to 0-100.
func ClampAffection(score int) int {
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	default:
		return score
	}
}

// Advance applies one sentiment label to the state. Affection moves
// immediately; the mood only shifts after a streak of same-signed labels.
func Advance(state State, label Label) State {
	switch label {
	case Positive:
		state.Affection += 5
	case Negative:
		state.Affection -= 10
	case Neutral:
		state.Affection += 1
	}
	state.Affection = ClampAffection(state.Affection)

	streak := 1
	if state.LastLabel == string(label) {
		streak = state.Turns + 1
	}

	desired := deriveMood(state.Affection, label, state.Current)
	switch label {
	case Positive:
		if desired != state.Current && streak >= positiveThreshold && streak >= minMoodTurns {
			state.Current = desired
		}
	case Negative:
		if desired != state.Current && streak >= negativeThreshold && streak >= minMoodTurns {
			state.Current = desired
		}
	case Neutral:
		// Neutral signals keep the current mood to stabilize it.
	}

	state.LastLabel = string(label)
	state.Turns = streak
	return state
}

func deriveMood(affection int, label Label, current string) string {
	switch label {
	case Negative:
		if affection <= 30 {
			return "Angry"
		}
		return "Sad"
	case Positive:
		return "Happy"
	case Neutral:
		if current != "" {
			return current
		}
		return "Neutral"
	default:
		return "Neutral"
	}
}

// Instruction returns a short behavior guideline for the given mood,
// suitable for inclusion in a persona prompt.
func Instruction(current string) string {
	switch current {
	case "Angry":
		return "Keep replies cold and short; avoid warmth."
	case "Sad":
		return "Keep a subdued tone; let a little hurt show through."
	case "Happy":
		return "Be warm, upbeat, and a touch playful."
	default:
		return ""
	}
}
