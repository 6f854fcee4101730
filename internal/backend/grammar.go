package backend

import "strings"

// Grammar is a closed output vocabulary enforced during sampling so the
// generated text stays machine-parseable. The value is shared read-only
// across every conversation; sessions must not mutate it.
type Grammar struct {
	vocabulary []string
}

// boolAnswer is the single shared grammar instance for boolean answers.
var boolAnswer = &Grammar{vocabulary: []string{"true", "false", "yes", "no"}}

// BoolAnswer returns the shared grammar accepting exactly one
// case-insensitive token of true/false/yes/no, optionally followed by
// whitespace.
func BoolAnswer() *Grammar { return boolAnswer }

// Vocabulary returns a copy of the accepted words.
func (g *Grammar) Vocabulary() []string {
	out := make([]string, len(g.vocabulary))
	copy(out, g.vocabulary)
	return out
}

// Accepts reports whether text is a single vocabulary word, case-insensitive,
// optionally followed by whitespace and nothing else.
func (g *Grammar) Accepts(text string) bool {
	trimmed := strings.TrimRight(text, " \t\r\n")
	if trimmed == "" {
		return false
	}
	// only trailing whitespace may be stripped
	if strings.TrimSpace(trimmed) != trimmed {
		return false
	}
	lower := strings.ToLower(trimmed)
	for _, w := range g.vocabulary {
		if lower == w {
			return true
		}
	}
	return false
}

// Classify maps decoded output text to a boolean label. Trimmed,
// lowercased "true" and "yes" map to true; everything else maps to false.
// The constrained grammar makes stray text unreachable in practice, but the
// mapping stays total (closed-world, default negative).
func Classify(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "true", "yes":
		return true
	}
	return false
}
