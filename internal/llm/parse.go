package llm

import "strings"

// Accepted reports whether a completion answers a yes/no judgment in the
// affirmative. The match is a case-insensitive check for a leading "yes";
// anything else, including ambiguous output, counts as decline.
func Accepted(raw string) bool {
	clean := strings.ToLower(strings.TrimSpace(raw))
	clean = strings.Trim(clean, `"'.!`)
	if clean == "yes" {
		return true
	}
	return strings.HasPrefix(clean, "yes ") || strings.HasPrefix(clean, "yes,") || strings.HasPrefix(clean, "yes.")
}

// ExtractJSON trims completion noise around a JSON object, returning the
// raw object text when one is present.
func ExtractJSON(raw string) string {
	clean := strings.TrimSpace(raw)
	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start >= 0 && end > start {
		return clean[start : end+1]
	}
	return clean
}
