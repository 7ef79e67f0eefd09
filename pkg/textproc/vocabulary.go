package textproc

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/helpdeskai/intake-engine/pkg/lexicon"
)

// Vocabulary is the deduplicated, stemmed token set of one classification
// task. Its cardinality fixes the input dimensionality of that task's
// classifier. Terms are kept sorted so indices are stable across process runs.
type Vocabulary struct {
	terms []string
	index map[string]int
}

// BuildVocabulary derives a vocabulary from one or more lexicon groups. Every
// phrase is tokenized and stemmed; duplicate stems collapse into one term.
// Empty input yields an empty (degenerate but valid) vocabulary.
func BuildVocabulary(groups ...[]lexicon.Lexicon) *Vocabulary {
	seen := make(map[string]struct{})
	for _, group := range groups {
		for _, lx := range group {
			for _, phrase := range lx.Entries {
				for _, stem := range TokenizeAndStem(phrase) {
					seen[stem] = struct{}{}
				}
			}
		}
	}

	terms := make([]string, 0, len(seen))
	for term := range seen {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	index := make(map[string]int, len(terms))
	for i, term := range terms {
		index[term] = i
	}
	return &Vocabulary{terms: terms, index: index}
}

// Size returns the number of terms, i.e. the feature-vector dimensionality.
func (v *Vocabulary) Size() int {
	return len(v.terms)
}

// Index returns the slot of a stemmed term and whether it is present.
func (v *Vocabulary) Index(stem string) (int, bool) {
	i, ok := v.index[stem]
	return i, ok
}

// Terms returns the sorted term list. Callers must not mutate it.
func (v *Vocabulary) Terms() []string {
	return v.terms
}

// Checksum returns a stable hash of the term list. Persisted models are
// stamped with it so a lexicon change invalidates stale artifacts at load time
// instead of surfacing as a silent dimension mismatch.
func (v *Vocabulary) Checksum() string {
	sum := sha256.Sum256([]byte(strings.Join(v.terms, "\x00")))
	return hex.EncodeToString(sum[:])
}
