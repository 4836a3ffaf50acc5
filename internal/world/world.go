// Package world implements the simulated world: locations, calendar,
// global events, and the character registry.
package world

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"time"
)

// Weather is the current weather at a location.
type Weather string

const (
	WeatherSunny  Weather = "Sunny"
	WeatherRainy  Weather = "Rainy"
	WeatherCloudy Weather = "Cloudy"
	WeatherStormy Weather = "Stormy"
)

var weatherStates = []Weather{WeatherSunny, WeatherRainy, WeatherCloudy, WeatherStormy}

// WeatherUnknown is the sentinel for an unresolved location lookup.
const WeatherUnknown = "Unknown"

const dateFormat = "2006-01-02"

// Location is a place characters can move to. UTCOffset is fixed; weather is
// re-rolled on every day advance.
type Location struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Coordinates [2]float64 `json:"coordinates"`
	Weather     Weather    `json:"weather"`
	UTCOffset   int        `json:"utc_offset"`
}

// GlobalEvent fires once when the world's date reaches its trigger date.
type GlobalEvent struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"` // 2006-01-02
}

// Notice is a world notification fanned out to an observer, e.g. the UI
// event feed.
type Notice struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Date    string `json:"date"`
}

// World owns locations, the calendar, global events, and the character
// registry. It is intended for exactly one active session; callers serialize
// access.
type World struct {
	Name        string
	Description string

	locations    []Location
	events       []GlobalEvent
	firedEvents  map[string]struct{}
	customParams map[string]any
	characters   map[string]*Character
	currentDate  time.Time
	rng          *rand.Rand
	notify       func(Notice)
}

// New creates a world starting at the given simulated date.
func New(name, description string, startDate time.Time) *World {
	return &World{
		Name:         name,
		Description:  description,
		firedEvents:  make(map[string]struct{}),
		customParams: make(map[string]any),
		characters:   make(map[string]*Character),
		currentDate:  truncateToDay(startDate),
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetRand replaces the weather RNG, for deterministic tests.
func (w *World) SetRand(rng *rand.Rand) {
	w.rng = rng
}

// OnNotice registers the observer that receives world notifications.
func (w *World) OnNotice(fn func(Notice)) {
	w.notify = fn
}

func (w *World) emit(noticeType, message string) {
	if w.notify != nil {
		w.notify(Notice{Type: noticeType, Message: message, Date: w.currentDate.Format(dateFormat)})
	}
}

// CurrentDate returns the simulated date. It advances only via AdvanceTime.
func (w *World) CurrentDate() time.Time {
	return w.currentDate
}

// AdvanceTime moves the simulation clock forward day by day. Each day:
// the date increments, every location's weather is re-rolled, due global
// events fire, and every character runs its daily update. days <= 0 is a
// no-op. The first daily-update failure stops the advance.
func (w *World) AdvanceTime(ctx context.Context, days int) error {
	for i := 0; i < days; i++ {
		w.currentDate = w.currentDate.AddDate(0, 0, 1)
		w.updateWeather()
		w.triggerEvents()
		for _, character := range w.characters {
			if err := character.DailyUpdate(ctx); err != nil {
				return fmt.Errorf("daily update for %s: %w", character.Name, err)
			}
		}
		w.emit("day", fmt.Sprintf("A new day dawns in %s.", w.Name))
	}
	return nil
}

func (w *World) updateWeather() {
	for i := range w.locations {
		w.locations[i].Weather = weatherStates[w.rng.Intn(len(weatherStates))]
	}
}

// triggerEvents fires global events whose trigger date matches the current
// date. A fired-set keyed by event name and date keeps a revisited date from
// re-firing the same event.
func (w *World) triggerEvents() {
	today := w.currentDate.Format(dateFormat)
	for _, event := range w.events {
		if event.Date != today {
			continue
		}
		key := event.Name + "@" + event.Date
		if _, fired := w.firedEvents[key]; fired {
			continue
		}
		w.firedEvents[key] = struct{}{}
		slog.Info("global event triggered", "event", event.Name, "description", event.Description, "date", today)
		w.emit("global_event", fmt.Sprintf("%s: %s", event.Name, event.Description))
	}
}

// AddLocation appends a location with default sunny weather.
func (w *World) AddLocation(name, description string, coordinates [2]float64, utcOffset int) {
	w.locations = append(w.locations, Location{
		Name:        name,
		Description: description,
		Coordinates: coordinates,
		Weather:     WeatherSunny,
		UTCOffset:   utcOffset,
	})
}

// AddGlobalEvent schedules an event for a trigger date (2006-01-02).
func (w *World) AddGlobalEvent(name, description, date string) {
	w.events = append(w.events, GlobalEvent{Name: name, Description: description, Date: date})
}

// FindLocation returns the named location and whether it exists.
func (w *World) FindLocation(name string) (Location, bool) {
	for _, loc := range w.locations {
		if loc.Name == name {
			return loc, true
		}
	}
	return Location{}, false
}

// Weather returns the weather at the named location, or the Unknown
// sentinel when the location does not exist.
func (w *World) Weather(locationName string) string {
	if loc, ok := w.FindLocation(locationName); ok {
		return string(loc.Weather)
	}
	return WeatherUnknown
}

// Locations returns a copy of the location list in insertion order.
func (w *World) Locations() []Location {
	out := make([]Location, len(w.locations))
	copy(out, w.locations)
	return out
}

// AddCharacter registers a character and seeds zero-strength friendship
// entries in both directions for every existing character.
func (w *World) AddCharacter(c *Character) {
	for _, existing := range w.characters {
		if _, ok := existing.friendships[c.Name]; !ok {
			existing.friendships[c.Name] = 0
		}
		if _, ok := c.friendships[existing.Name]; !ok {
			c.friendships[existing.Name] = 0
		}
	}
	w.characters[c.Name] = c
}

// Character returns the named character and whether it exists.
func (w *World) Character(name string) (*Character, bool) {
	c, ok := w.characters[name]
	return c, ok
}

// Characters returns all characters sorted by name.
func (w *World) Characters() []*Character {
	out := make([]*Character, 0, len(w.characters))
	for _, c := range w.characters {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// SetCustomParameter stores an arbitrary world parameter.
func (w *World) SetCustomParameter(key string, value any) {
	w.customParams[key] = value
}

// CustomParameter returns a custom parameter, nil when absent.
func (w *World) CustomParameter(key string) any {
	return w.customParams[key]
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
