// Package corpus synthesizes the labeled training data for every
// classification task. No human-annotated corpus exists: pseudo-sentences are
// sampled from the label lexicons and neutral filler words, which guarantees
// balanced classes and full vocabulary coverage. Confidence scores learned
// from this corpus are calibrated against its distribution, not real user
// phrasing.
package corpus

import (
	"math/rand"
	"time"

	"github.com/helpdeskai/intake-engine/pkg/lexicon"
	"github.com/helpdeskai/intake-engine/pkg/textproc"
)

// Example is one labeled training example: a feature vector paired with the
// one-hot target of its label.
type Example struct {
	Features []float64
	Target   []float64
	Label    int
}

// Generator produces synthetic corpora. A fixed seed makes generation
// reproducible.
type Generator struct {
	rng    *rand.Rand
	filler []string
}

// NewGenerator creates a generator over the given filler words. A zero seed
// derives one from the clock.
func NewGenerator(seed int64, filler []string) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		rng:    rand.New(rand.NewSource(seed)),
		filler: filler,
	}
}

// Generate emits perLabel examples for every lexicon, feature-extracted
// against vocab, in shuffled order. The one-hot targets index labels in
// lexicon order.
func (g *Generator) Generate(lexicons []lexicon.Lexicon, perLabel int, vocab *textproc.Vocabulary) []Example {
	examples := make([]Example, 0, len(lexicons)*perLabel)

	for labelIdx, lx := range lexicons {
		for n := 0; n < perLabel; n++ {
			target := make([]float64, len(lexicons))
			target[labelIdx] = 1
			examples = append(examples, Example{
				Features: textproc.Extract(g.sentence(lx.Entries), vocab),
				Target:   target,
				Label:    labelIdx,
			})
		}
	}

	// Shuffle so minibatches mix labels
	g.rng.Shuffle(len(examples), func(i, j int) {
		examples[i], examples[j] = examples[j], examples[i]
	})
	return examples
}

// sentence builds one pseudo-sentence: 1-3 label keywords interleaved with
// 3-15 filler words in random order.
func (g *Generator) sentence(keywords []string) string {
	words := make([]string, 0, 18)

	numKeywords := 1 + g.rng.Intn(3)
	for i := 0; i < numKeywords && len(keywords) > 0; i++ {
		words = append(words, keywords[g.rng.Intn(len(keywords))])
	}

	numFiller := 3 + g.rng.Intn(13)
	for i := 0; i < numFiller && len(g.filler) > 0; i++ {
		words = append(words, g.filler[g.rng.Intn(len(g.filler))])
	}

	g.rng.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})

	sentence := ""
	for i, w := range words {
		if i > 0 {
			sentence += " "
		}
		sentence += w
	}
	return sentence
}
