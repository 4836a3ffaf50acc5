package prompt

import (
	"strings"
	"testing"

	"github.com/easeaico/worldsim/internal/types"
)

func TestBuildIncludesPersonaDetails(t *testing.T) {
	out, err := Build(BuildContext{
		Name:         "Alice Chen",
		Description:  "A tech entrepreneur and digital artist.",
		Age:          34,
		DateOfBirth:  "1990-05-15",
		Location:     "Downtown",
		Weather:      "Rainy",
		LocalTime:    "10:30 AM",
		Personality:  map[string]float64{"curiosity": 0.9},
		Interests:    []string{"technology", "digital art"},
		Goals:        []string{"Learn Mandarin fluently"},
		Friendships:  map[string]float64{"Robert Martinez": 0.4},
		TextingStyle: "Proper grammar with tech jargon",
		Memories: []types.RetrievedMemory{
			{Content: "The user said: hi there", IsUser: true},
			{Content: "Moved to Downtown.", IsUser: false},
		},
	})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	for _, want := range []string{
		"You are Alice Chen",
		"34 years old",
		"born on 1990-05-15",
		"You live in Downtown",
		"Rainy",
		"curiosity (0.9/1.0)",
		"technology, digital art",
		"Robert Martinez: 0.40",
		"The user: The user said: hi there",
		"You: Moved to Downtown.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected prompt to contain %q, got:\n%s", want, out)
		}
	}
}

func TestBuildRequiresName(t *testing.T) {
	if _, err := Build(BuildContext{}); err == nil {
		t.Fatalf("expected error for missing name")
	}
}

func TestBuildOmitsEmptySections(t *testing.T) {
	out, err := Build(BuildContext{Name: "Bob", Age: 39, DateOfBirth: "1985-10-20", Location: "Suburb", Weather: "Sunny", LocalTime: "9:00 PM"})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if strings.Contains(out, "Recent memories") {
		t.Fatalf("expected no memory section without memories:\n%s", out)
	}
	if strings.Contains(out, "Your friendships") {
		t.Fatalf("expected no friendship section without friendships:\n%s", out)
	}
}
