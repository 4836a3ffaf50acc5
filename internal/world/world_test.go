package world

import (
	"context"
	"math/rand"
	"testing"
	"time"
)

func TestAdvanceTimeMovesCalendarAndRunsDailyUpdates(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	f := newFixture(start)
	f.addCharacter("Alice Chen", time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC))
	f.addCharacter("Robert Martinez", time.Date(1985, 10, 20, 0, 0, 0, 0, time.UTC))

	if err := f.world.AdvanceTime(context.Background(), 3); err != nil {
		t.Fatalf("AdvanceTime returned error: %v", err)
	}

	want := start.AddDate(0, 0, 3)
	if !f.world.CurrentDate().Equal(want) {
		t.Fatalf("date = %v, want %v", f.world.CurrentDate(), want)
	}
	if got := f.summarizer.dayCalls["Alice Chen"]; got != 3 {
		t.Fatalf("expected 3 daily updates for Alice, got %d", got)
	}
	if got := f.summarizer.dayCalls["Robert Martinez"]; got != 3 {
		t.Fatalf("expected 3 daily updates for Robert, got %d", got)
	}
}

func TestAdvanceTimeZeroDaysIsNoop(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	f := newFixture(start)
	f.addCharacter("Alice Chen", time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC))

	if err := f.world.AdvanceTime(context.Background(), 0); err != nil {
		t.Fatalf("AdvanceTime returned error: %v", err)
	}
	if !f.world.CurrentDate().Equal(start) {
		t.Fatalf("expected unchanged date, got %v", f.world.CurrentDate())
	}
	if len(f.summarizer.dayCalls) != 0 {
		t.Fatalf("expected no daily updates")
	}
}

func TestAdvanceTimeRerollsWeatherPerLocationPerDay(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	f := newFixture(start)
	f.world.SetRand(rand.New(rand.NewSource(42)))

	days := 3
	locations := len(f.world.Locations())
	if err := f.world.AdvanceTime(context.Background(), days); err != nil {
		t.Fatalf("AdvanceTime returned error: %v", err)
	}

	// Replay the same roll sequence; final weather per location must match
	// the last day's roll, i.e. exactly days*locations rolls happened.
	replay := rand.New(rand.NewSource(42))
	var final []Weather
	for day := 0; day < days; day++ {
		final = final[:0]
		for i := 0; i < locations; i++ {
			final = append(final, weatherStates[replay.Intn(len(weatherStates))])
		}
	}
	for i, loc := range f.world.Locations() {
		if loc.Weather != final[i] {
			t.Fatalf("location %s weather = %s, want %s", loc.Name, loc.Weather, final[i])
		}
	}
}

func TestGlobalEventFiresOncePerDate(t *testing.T) {
	start := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	f := newFixture(start)

	f.world.AddGlobalEvent("City Festival", "The annual festival kicks off", "2024-07-01")
	f.world.AddGlobalEvent("Elections", "Mayoral elections", "2024-07-03")

	var fired []Notice
	f.world.OnNotice(func(n Notice) {
		if n.Type == "global_event" {
			fired = append(fired, n)
		}
	})

	if err := f.world.AdvanceTime(context.Background(), 4); err != nil {
		t.Fatalf("AdvanceTime returned error: %v", err)
	}

	if len(fired) != 2 {
		t.Fatalf("expected 2 event notices, got %d: %+v", len(fired), fired)
	}
	if fired[0].Date != "2024-07-01" || fired[1].Date != "2024-07-03" {
		t.Fatalf("unexpected firing dates: %+v", fired)
	}

	// The fired-set keeps the same (event, date) pair from firing twice.
	f.world.triggerEvents()
	if len(fired) != 2 {
		t.Fatalf("expected no re-fire for a consumed event, got %d", len(fired))
	}
}

func TestWeatherLookupSentinel(t *testing.T) {
	f := newFixture(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	if got := f.world.Weather("Downtown"); got != string(WeatherSunny) {
		t.Fatalf("expected default sunny weather, got %s", got)
	}
	if got := f.world.Weather("Atlantis"); got != WeatherUnknown {
		t.Fatalf("expected unknown sentinel, got %s", got)
	}
}

func TestCustomParameters(t *testing.T) {
	f := newFixture(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	f.world.SetCustomParameter("economy", "booming")
	if got := f.world.CustomParameter("economy"); got != "booming" {
		t.Fatalf("unexpected parameter value %v", got)
	}
	if got := f.world.CustomParameter("missing"); got != nil {
		t.Fatalf("expected nil for unknown parameter, got %v", got)
	}
}

func TestFindLocation(t *testing.T) {
	f := newFixture(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	loc, ok := f.world.FindLocation("Beach")
	if !ok || loc.UTCOffset != 1 {
		t.Fatalf("expected Beach at offset 1, got %+v ok=%v", loc, ok)
	}
	if _, ok := f.world.FindLocation("Atlantis"); ok {
		t.Fatalf("expected lookup miss for unknown location")
	}
}
