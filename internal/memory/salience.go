package memory

import (
	"unicode/utf8"

	"github.com/easeaico/worldsim/internal/types"
)

// ComputeSalience calculates a deterministic importance score in [0,1] from
// the memory kind and content length. Retrieval blends this score with
// similarity, so rarer life events outrank routine chatter of equal
// closeness.
func ComputeSalience(kind, content string) float64 {
	score := 0.0

	switch kind {
	case types.MemoryKindBirthday:
		score += 0.60
	case types.MemoryKindEvent:
		score += 0.45
	case types.MemoryKindSummary:
		score += 0.40
	case types.MemoryKindTask:
		score += 0.30
	case types.MemoryKindMovement:
		score += 0.20
	case types.MemoryKindChat:
		score += 0.15
	}

	length := utf8.RuneCountInString(content)
	switch {
	case length >= 200:
		score += 0.20
	case length >= 100:
		score += 0.10
	case length >= 40:
		score += 0.05
	}

	return clampScore(score)
}

func clampScore(score float64) float64 {
	if score != score || score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
