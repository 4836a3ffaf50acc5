// Package seed builds the demo world shared by the server and the
// command-line walkthrough.
package seed

import (
	"time"

	"github.com/easeaico/worldsim/internal/world"
)

// StartDate is the simulation clock at boot.
var StartDate = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

// BuildWorld assembles Virtual City with its locations, global events, and
// two seeded characters.
func BuildWorld(deps world.Deps, skillStep float64) *world.World {
	w := world.New("Virtual City", "A compact simulated city by the sea.", StartDate)

	w.AddLocation("Downtown", "Dense city center with offices and cafes.", [2]float64{40.7128, -74.0060}, 0)
	w.AddLocation("Suburb", "Quiet residential streets outside the center.", [2]float64{40.7357, -74.1724}, 0)
	w.AddLocation("Beach", "Sandy coastline an hour east of the city.", [2]float64{40.5754, -73.9707}, 1)
	w.AddLocation("Tokyo Office", "The company's overseas branch.", [2]float64{35.6762, 139.6503}, 9)

	w.AddGlobalEvent("Spring Festival", "The city celebrates the start of spring with street stalls and music.", "2024-03-20")
	w.AddGlobalEvent("Marathon Day", "Downtown streets close for the annual marathon.", "2024-04-07")

	alice := world.NewCharacter(w, world.Config{
		Name:        "Alice Chen",
		DateOfBirth: time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC),
		Description: "A software engineer who paints on weekends.",
		Personality: map[string]float64{
			"introversion": 0.7,
			"curiosity":    0.9,
			"creativity":   0.8,
			"ambition":     0.9,
		},
		Location: "Downtown",
		Preferences: map[string]string{
			"coffee":  "oat milk latte",
			"weekend": "gallery visits",
		},
		Interests:       []string{"painting", "rock climbing", "distributed systems"},
		Goals:           []string{"exhibit a painting", "run a half marathon"},
		PastExperiences: []string{"Moved to Virtual City in 2018 for a startup job."},
		TextingStyle:    "short, thoughtful messages with the occasional emoji",
		SkillStep:       skillStep,
	}, deps)

	bob := world.NewCharacter(w, world.Config{
		Name:        "Robert Martinez",
		DateOfBirth: time.Date(1985, 10, 20, 0, 0, 0, 0, time.UTC),
		Description: "A high-school history teacher and amateur chef.",
		Personality: map[string]float64{
			"introversion": 0.3,
			"curiosity":    0.6,
			"creativity":   0.5,
			"ambition":     0.4,
		},
		Location: "Suburb",
		Preferences: map[string]string{
			"cuisine": "anything with fresh basil",
		},
		Interests:       []string{"cooking", "local history", "cycling"},
		Goals:           []string{"write a neighborhood cookbook"},
		PastExperiences: []string{"Grew up in the Suburb and never wanted to leave."},
		TextingStyle:    "warm, wordy, fond of exclamation marks",
		SkillStep:       skillStep,
	}, deps)

	w.AddCharacter(alice)
	w.AddCharacter(bob)

	alice.UpdateFriendship("Robert Martinez", 0.4)
	bob.UpdateFriendship("Alice Chen", 0.85)

	alice.DevelopSkillBy("painting", 0.6)
	alice.DevelopSkillBy("climbing", 0.3)
	bob.DevelopSkillBy("cooking", 0.8)

	return w
}
