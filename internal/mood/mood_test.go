package mood

import (
	"context"
	"errors"
	"testing"

	"github.com/easeaico/worldsim/internal/types"
)

func TestAdvancePositive(t *testing.T) {
	next := Advance(State{Affection: 50, Current: "Neutral"}, Positive)

	if next.Affection != 55 || next.Current != "Neutral" {
		t.Fatalf("unexpected state: %#v", next)
	}
	if next.LastLabel != "Positive" || next.Turns != 1 {
		t.Fatalf("unexpected label tracking: %s/%d", next.LastLabel, next.Turns)
	}
}

func TestAdvanceNegativeLowAffection(t *testing.T) {
	next := Advance(State{Affection: 20, Current: "Neutral"}, Negative)

	if next.Affection != 10 || next.Current != "Neutral" {
		t.Fatalf("unexpected state: %#v", next)
	}
}

func TestAdvanceNeutralKeepsMood(t *testing.T) {
	next := Advance(State{Affection: 50, Current: "Sad"}, Neutral)

	if next.Affection != 51 || next.Current != "Sad" {
		t.Fatalf("unexpected state: %#v", next)
	}
}

func TestAdvanceNegativeTwiceFlipsMood(t *testing.T) {
	next := Advance(State{Affection: 50, Current: "Neutral", LastLabel: "Negative", Turns: 1}, Negative)

	if next.Current != "Sad" {
		t.Fatalf("expected mood to change to Sad, got %#v", next)
	}
	if next.Turns != 2 {
		t.Fatalf("expected streak 2, got %d", next.Turns)
	}
}

func TestAdvanceNegativeStreakAtLowAffectionTurnsAngry(t *testing.T) {
	next := Advance(State{Affection: 40, Current: "Sad", LastLabel: "Negative", Turns: 2}, Negative)

	if next.Current != "Angry" {
		t.Fatalf("expected Angry at low affection, got %#v", next)
	}
}

func TestAdvancePositiveTwiceFlipsMood(t *testing.T) {
	next := Advance(State{Affection: 60, Current: "Sad", LastLabel: "Positive", Turns: 1}, Positive)

	if next.Current != "Happy" {
		t.Fatalf("expected mood to change to Happy, got %#v", next)
	}
}

func TestAdvanceAffectionClamps(t *testing.T) {
	next := Advance(State{Affection: 98}, Positive)
	if next.Affection != 100 {
		t.Fatalf("expected affection capped at 100, got %d", next.Affection)
	}

	next = Advance(State{Affection: 5}, Negative)
	if next.Affection != 0 {
		t.Fatalf("expected affection floored at 0, got %d", next.Affection)
	}
}

type fakeCompleter struct {
	response string
	err      error
}

func (f *fakeCompleter) Complete(context.Context, []types.ChatMessage) (string, error) {
	return f.response, f.err
}

func TestAnalyzeLabels(t *testing.T) {
	tests := []struct {
		response string
		want     Label
	}{
		{"Positive", Positive},
		{" negative \n", Negative},
		{"Neutral", Neutral},
		{"I cannot classify that", Neutral},
	}
	for _, tt := range tests {
		analyzer := NewAnalyzer(&fakeCompleter{response: tt.response})
		got, err := analyzer.Analyze(context.Background(), "some message")
		if err != nil {
			t.Fatalf("Analyze(%q) error: %v", tt.response, err)
		}
		if got != tt.want {
			t.Fatalf("Analyze(%q) = %s, want %s", tt.response, got, tt.want)
		}
	}
}

func TestAnalyzeBlankTextSkipsModel(t *testing.T) {
	analyzer := NewAnalyzer(&fakeCompleter{err: errors.New("should not be called")})
	got, err := analyzer.Analyze(context.Background(), "   ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != Neutral {
		t.Fatalf("expected Neutral for blank text, got %s", got)
	}
}

func TestAnalyzeErrorReturnsNeutral(t *testing.T) {
	analyzer := NewAnalyzer(&fakeCompleter{err: errors.New("upstream down")})
	got, err := analyzer.Analyze(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error")
	}
	if got != Neutral {
		t.Fatalf("expected Neutral fallback, got %s", got)
	}
}
