// Package lexicon holds the curated keyword lists that seed every
// classification task: vocabularies, synthetic training data, and the
// rule-based fallback all derive from the same Set.
package lexicon

// Lexicon is an immutable ordered list of words and phrases tied to one label.
type Lexicon struct {
	// Label is the classification label the entries are cues for.
	Label string

	// Entries are the words/phrases. Multi-word phrases are allowed; they
	// are tokenized when building vocabularies and matched as substrings
	// by the rule-based classifier.
	Entries []string
}

// Set groups the lexicons of every classification task plus the neutral
// filler words used by the synthetic corpus generator. A Set is built once at
// process start and never mutated.
type Set struct {
	Type       []Lexicon
	Category   []Lexicon
	Urgency    []Lexicon
	Sentiment  []Lexicon
	Complexity []Lexicon

	// Filler are semantically neutral function words interleaved between
	// label keywords when generating pseudo-sentences. They carry no label
	// signal and do not seed any vocabulary.
	Filler []string
}

// Labels returns the label of each lexicon in order.
func Labels(lexicons []Lexicon) []string {
	labels := make([]string, len(lexicons))
	for i, lx := range lexicons {
		labels[i] = lx.Label
	}
	return labels
}

// KeywordsByLabel returns a label -> entries map for the given lexicons.
func KeywordsByLabel(lexicons []Lexicon) map[string][]string {
	m := make(map[string][]string, len(lexicons))
	for _, lx := range lexicons {
		m[lx.Label] = lx.Entries
	}
	return m
}
