package backend

import "testing"

func TestGrammarAccepts(t *testing.T) {
	g := BoolAnswer()
	cases := []struct {
		in   string
		want bool
	}{
		{"true", true},
		{"false", true},
		{"yes", true},
		{"no", true},
		{"True", true},
		{"YES", true},
		{"yes \n", true},
		{"no\t", true},
		{" yes", false}, // leading whitespace is not part of the grammar
		{"maybe", false},
		{"yesno", false},
		{"true false", false},
		{"", false},
		{"  ", false},
	}
	for _, c := range cases {
		if got := g.Accepts(c.in); got != c.want {
			t.Fatalf("Accepts(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestGrammarVocabularyIsCopy(t *testing.T) {
	g := BoolAnswer()
	v := g.Vocabulary()
	v[0] = "mutated"
	if g.Vocabulary()[0] != "true" {
		t.Fatalf("vocabulary mutated via returned slice")
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"true", true},
		{"yes", true},
		{"  yes \n", true},
		{"True", true},
		{"false", false},
		{"no", false},
		{"maybe", false}, // outside the vocabulary: closed-world default negative
		{"", false},
	}
	for _, c := range cases {
		if got := Classify(c.in); got != c.want {
			t.Fatalf("Classify(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
