package world

import (
	"context"
	"fmt"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/easeaico/worldsim/internal/llm"
	"github.com/easeaico/worldsim/internal/mood"
	"github.com/easeaico/worldsim/internal/types"
)

// Jet lag starts at a 5-hour offset swing; recovery caps at 7 days.
const (
	jetLagThresholdHours  = 5
	jetLagMaxRecoveryDays = 7
)

// Long inbound messages are summarized before storage; shorter ones are
// stored verbatim.
const (
	messageSummaryThreshold = 100
	recentExperienceLimit   = 10
	communicationDelta      = 0.01
	birthdayCompoundRate    = 0.05
)

// Recorder indexes and recalls character memories. memory.Service satisfies
// it; tests substitute fakes.
type Recorder interface {
	Remember(ctx context.Context, characterName, kind, content string, date time.Time, isUser bool) error
	Recall(ctx context.Context, characterName, query string, k int) ([]types.RetrievedMemory, error)
	ForDate(ctx context.Context, characterName string, date time.Time) ([]types.Memory, error)
}

// Summarizer condenses long messages and whole days.
type Summarizer interface {
	SummarizeMessage(ctx context.Context, message string) (string, error)
	SummarizeDay(ctx context.Context, characterName string, date time.Time, entries []types.Memory) (string, error)
}

// SentimentAnalyzer labels the sentiment of one message. mood.Analyzer
// satisfies it; leaving it nil disables mood tracking.
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, text string) (mood.Label, error)
}

// Deps are the external services a character delegates to. One configured
// client per dependency, shared across all characters.
type Deps struct {
	Memories   Recorder
	Completer  llm.Completer
	Summarizer Summarizer
	Sentiment  SentimentAnalyzer
}

// Config is the character profile at construction time.
type Config struct {
	Name            string
	DateOfBirth     time.Time
	Description     string
	Personality     map[string]float64
	Location        string
	UTCOffset       int
	Preferences     map[string]string
	Interests       []string
	Goals           []string
	PastExperiences []string
	TextingStyle    string
	SkillStep       float64
}

// Character is a simulated persona bound to exactly one world. It owns
// personal attributes and a directed friendship-strength map, and delegates
// memory and text generation to external services.
type Character struct {
	world *World

	Name            string
	DateOfBirth     time.Time
	Description     string
	Personality     map[string]float64
	Location        string
	UTCOffset       int
	Preferences     map[string]string
	Interests       []string
	Goals           []string
	PastExperiences []string
	TextingStyle    string
	Skills          map[string]float64

	JetLagged          bool
	JetLagRecoveryDate time.Time

	friendships              map[string]float64
	recentExperiences        []string
	tasksDoneToday           []string
	allowTaskRecommendations bool
	skillStep                float64
	moodState                mood.State

	deps Deps
}

// NewCharacter creates a character bound to its owning world. Registration
// into the world happens separately via World.AddCharacter.
func NewCharacter(w *World, cfg Config, deps Deps) *Character {
	step := cfg.SkillStep
	if step <= 0 {
		step = 0.1
	}
	personality := cfg.Personality
	if personality == nil {
		personality = make(map[string]float64)
	}
	preferences := cfg.Preferences
	if preferences == nil {
		preferences = make(map[string]string)
	}
	return &Character{
		world:                    w,
		Name:                     cfg.Name,
		DateOfBirth:              cfg.DateOfBirth,
		Description:              cfg.Description,
		Personality:              personality,
		Location:                 cfg.Location,
		UTCOffset:                cfg.UTCOffset,
		Preferences:              preferences,
		Interests:                cfg.Interests,
		Goals:                    cfg.Goals,
		PastExperiences:          cfg.PastExperiences,
		TextingStyle:             cfg.TextingStyle,
		Skills:                   make(map[string]float64),
		friendships:              make(map[string]float64),
		allowTaskRecommendations: true,
		skillStep:                step,
		moodState:                mood.State{Affection: 50, Current: "Neutral"},
		deps:                     deps,
	}
}

// MoveToLocation relocates the character. An unknown location is a no-op,
// including the jet-lag evaluation. A swing of 5 or more UTC-offset hours
// triggers jet lag with recovery of min(diff/2, 7) days.
func (c *Character) MoveToLocation(ctx context.Context, locationName string) error {
	location, ok := c.world.FindLocation(locationName)
	if !ok {
		return nil
	}

	oldOffset := c.UTCOffset
	c.Location = location.Name
	c.UTCOffset = location.UTCOffset
	if err := c.remember(ctx, types.MemoryKindMovement, fmt.Sprintf("Moved to %s.", location.Name), false); err != nil {
		return err
	}

	diff := location.UTCOffset - oldOffset
	if diff < 0 {
		diff = -diff
	}
	if diff >= jetLagThresholdHours {
		recoveryDays := diff / 2
		if recoveryDays > jetLagMaxRecoveryDays {
			recoveryDays = jetLagMaxRecoveryDays
		}
		c.JetLagged = true
		c.JetLagRecoveryDate = c.world.CurrentDate().AddDate(0, 0, recoveryDays)
		if err := c.remember(ctx, types.MemoryKindEvent,
			fmt.Sprintf("Experiencing jet lag after moving to %s. Expected to recover in %d days.", location.Name, recoveryDays), false); err != nil {
			return err
		}
	}
	return nil
}

// DailyUpdate runs the per-day state transitions: jet-lag recovery, the
// birthday celebration, and the end-of-day summary.
func (c *Character) DailyUpdate(ctx context.Context) error {
	today := c.world.CurrentDate()

	if c.JetLagged && !today.Before(c.JetLagRecoveryDate) {
		c.JetLagged = false
		c.JetLagRecoveryDate = time.Time{}
		if err := c.remember(ctx, types.MemoryKindEvent, "Recovered from jet lag.", false); err != nil {
			return err
		}
	}

	if c.isBirthday(today) {
		if err := c.celebrateBirthday(ctx, today); err != nil {
			return err
		}
	}

	if err := c.summarizeDay(ctx, today); err != nil {
		return err
	}
	c.tasksDoneToday = nil
	return nil
}

func (c *Character) isBirthday(date time.Time) bool {
	return date.Month() == c.DateOfBirth.Month() && date.Day() == c.DateOfBirth.Day()
}

// Age computes full years lived as of the given date.
func (c *Character) Age(on time.Time) int {
	age := on.Year() - c.DateOfBirth.Year()
	anniversary := time.Date(on.Year(), c.DateOfBirth.Month(), c.DateOfBirth.Day(), 0, 0, 0, 0, time.UTC)
	if truncateToDay(on).Before(anniversary) {
		age--
	}
	return age
}

// celebrateBirthday records the celebration and compounds every recorded
// friendship by 5% of its current strength, on both directed edges. A zero
// strength stays zero.
func (c *Character) celebrateBirthday(ctx context.Context, today time.Time) error {
	age := c.Age(today)
	if err := c.remember(ctx, types.MemoryKindBirthday, fmt.Sprintf("Celebrated turning %d today.", age), false); err != nil {
		return err
	}
	c.world.emit("birthday", fmt.Sprintf("%s turns %d today!", c.Name, age))

	for _, friendName := range c.friendNames() {
		friend, ok := c.world.Character(friendName)
		if !ok {
			continue
		}
		if err := friend.remember(ctx, types.MemoryKindBirthday,
			fmt.Sprintf("Celebrated %s's birthday, who turned %d.", c.Name, age), false); err != nil {
			return err
		}
		friend.AddTaskDone(fmt.Sprintf("Celebrated %s's birthday", c.Name))

		c.friendships[friendName] = clampStrength(c.friendships[friendName] * (1 + birthdayCompoundRate))
		friend.friendships[c.Name] = clampStrength(friend.friendships[c.Name] * (1 + birthdayCompoundRate))
	}
	return nil
}

// summarizeDay closes the day with one synthesized summary memory. A failed
// summarization leaves no memory written for the step.
func (c *Character) summarizeDay(ctx context.Context, today time.Time) error {
	entries, err := c.deps.Memories.ForDate(ctx, c.Name, today)
	if err != nil {
		return err
	}
	summary, err := c.deps.Summarizer.SummarizeDay(ctx, c.Name, today, entries)
	if err != nil {
		return err
	}
	if summary == "" {
		return nil
	}
	return c.remember(ctx, types.MemoryKindSummary, summary, false)
}

// Communicate sends a message to a peer. Any two characters may message;
// doing so nudges both directed friendship edges up by 0.01. An unknown
// peer is a no-op.
func (c *Character) Communicate(ctx context.Context, peerName, message string) error {
	peer, ok := c.world.Character(peerName)
	if !ok || peer == c {
		return nil
	}

	c.friendships[peerName] = clampStrength(c.friendships[peerName] + communicationDelta)
	peer.friendships[c.Name] = clampStrength(peer.friendships[c.Name] + communicationDelta)

	return peer.ReceiveMessage(ctx, c.Name, message)
}

// ReceiveMessage records an incoming message memory. Messages over 100
// characters are summarized to at most 50 words first.
func (c *Character) ReceiveMessage(ctx context.Context, senderName, message string) error {
	content := message
	if utf8.RuneCountInString(message) > messageSummaryThreshold {
		summary, err := c.deps.Summarizer.SummarizeMessage(ctx, message)
		if err != nil {
			return err
		}
		content = summary
	}
	return c.remember(ctx, types.MemoryKindChat, fmt.Sprintf("Received a message from %s: %s", senderName, content), false)
}

const taskJudgmentInstruction = `You are deciding for a simulated character whether they accept a recommended task.
Consider the character's personality traits (0.0 weak, 1.0 strong) and answer with exactly "yes" or "no".`

// RecommendTask asks the completion service for an accept/decline judgment
// conditioned on the character's personality. Unrecognized output counts as
// decline; there is no retry.
func (c *Character) RecommendTask(ctx context.Context, task string) (bool, error) {
	if !c.allowTaskRecommendations {
		return false, nil
	}

	var traits string
	for _, trait := range sortedKeys(c.Personality) {
		traits += fmt.Sprintf("- %s: %.1f\n", trait, c.Personality[trait])
	}
	out, err := c.deps.Completer.Complete(ctx, []types.ChatMessage{
		{Role: types.RoleSystem, Content: taskJudgmentInstruction},
		{Role: types.RoleUser, Content: fmt.Sprintf("Character: %s\nPersonality:\n%s\nTask: %s\nDoes %s accept?", c.Name, traits, task, c.Name)},
	})
	if err != nil {
		return false, err
	}
	if !llm.Accepted(out) {
		return false, nil
	}

	c.AddTaskDone(task)
	if err := c.remember(ctx, types.MemoryKindTask, fmt.Sprintf("Accepted and did a task: %s", task), false); err != nil {
		return true, err
	}
	return true, nil
}

// DevelopSkill raises a skill by the configured step, clamped at 1.0.
func (c *Character) DevelopSkill(skillName string) {
	c.DevelopSkillBy(skillName, c.skillStep)
}

// DevelopSkillBy raises a skill by an arbitrary increment, saturating at the
// [0,1] boundary rather than failing.
func (c *Character) DevelopSkillBy(skillName string, increase float64) {
	c.Skills[skillName] = clampStrength(c.Skills[skillName] + increase)
}

// UpdateFriendship adjusts this character's directed edge toward another by
// delta, clamped to [0,1]. The reverse edge is independent.
func (c *Character) UpdateFriendship(name string, delta float64) {
	if name == c.Name {
		return
	}
	c.friendships[name] = clampStrength(c.friendships[name] + delta)
}

// Friendship returns the directed strength toward another character,
// 0 when unrecorded.
func (c *Character) Friendship(name string) float64 {
	return c.friendships[name]
}

// Friendships returns a copy of the directed friendship map.
func (c *Character) Friendships() map[string]float64 {
	out := make(map[string]float64, len(c.friendships))
	for name, strength := range c.friendships {
		out[name] = strength
	}
	return out
}

func (c *Character) friendNames() []string {
	return sortedKeys(c.friendships)
}

// AddTaskDone appends to today's task list; cleared by the daily update.
func (c *Character) AddTaskDone(task string) {
	c.tasksDoneToday = append(c.tasksDoneToday, task)
}

// TasksDoneToday returns a copy of today's completed tasks.
func (c *Character) TasksDoneToday() []string {
	out := make([]string, len(c.tasksDoneToday))
	copy(out, c.tasksDoneToday)
	return out
}

// SetAllowTaskRecommendations toggles whether RecommendTask may accept.
func (c *Character) SetAllowTaskRecommendations(allow bool) {
	c.allowTaskRecommendations = allow
}

// AddUserSharedInfo stores information the user volunteered.
func (c *Character) AddUserSharedInfo(ctx context.Context, info string) error {
	return c.remember(ctx, types.MemoryKindEvent, fmt.Sprintf("User shared: %s", info), true)
}

// LocalTime is the wall clock in the character's current UTC offset.
func (c *Character) LocalTime() time.Time {
	return time.Now().In(time.FixedZone("", c.UTCOffset*3600))
}

// Mood is the character's current mood toward the user.
func (c *Character) Mood() string {
	return c.moodState.Current
}

// Affection is the 0-100 affection score toward the user.
func (c *Character) Affection() int {
	return c.moodState.Affection
}

// UpdatePersonality sets a trait strength, clamped to [0,1].
func (c *Character) UpdatePersonality(trait string, value float64) {
	c.Personality[trait] = clampStrength(value)
}

// SetPreference sets one preference entry.
func (c *Character) SetPreference(key, value string) {
	c.Preferences[key] = value
}

func (c *Character) AddInterest(interest string) {
	c.Interests = append(c.Interests, interest)
}

func (c *Character) AddGoal(goal string) {
	c.Goals = append(c.Goals, goal)
}

func (c *Character) AddPastExperience(experience string) {
	c.PastExperiences = append(c.PastExperiences, experience)
}

// RecentExperiences returns the bounded recency window, oldest first.
func (c *Character) RecentExperiences() []string {
	out := make([]string, len(c.recentExperiences))
	copy(out, c.recentExperiences)
	return out
}

// remember indexes the experience and mirrors it into the bounded recency
// window.
func (c *Character) remember(ctx context.Context, kind, content string, isUser bool) error {
	c.addRecentExperience(content)
	return c.deps.Memories.Remember(ctx, c.Name, kind, content, c.world.CurrentDate(), isUser)
}

func (c *Character) addRecentExperience(experience string) {
	stamped := fmt.Sprintf("[%s] %s", c.world.CurrentDate().Format(dateFormat), experience)
	c.recentExperiences = append(c.recentExperiences, stamped)
	if len(c.recentExperiences) > recentExperienceLimit {
		c.recentExperiences = c.recentExperiences[len(c.recentExperiences)-recentExperienceLimit:]
	}
}

func clampStrength(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
