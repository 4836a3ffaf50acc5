package llm

import "testing"

func TestAccepted(t *testing.T) {
	cases := []struct {
		raw  string
		want bool
	}{
		{"yes", true},
		{"Yes", true},
		{"YES.", true},
		{"yes, that sounds fun", true},
		{"  Yes  ", true},
		{"no", false},
		{"No way", false},
		{"maybe", false},
		{"", false},
		{"yesterday", false},
	}
	for _, tc := range cases {
		if got := Accepted(tc.raw); got != tc.want {
			t.Fatalf("Accepted(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestExtractJSON(t *testing.T) {
	raw := "Sure, here you go:\n```json\n{\"summary\":\"ok\"}\n```"
	if got := ExtractJSON(raw); got != `{"summary":"ok"}` {
		t.Fatalf("unexpected extraction: %q", got)
	}
	if got := ExtractJSON("no json here"); got != "no json here" {
		t.Fatalf("expected passthrough, got %q", got)
	}
}
