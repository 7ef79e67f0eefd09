package textproc

// Extract encodes text as a term-frequency vector against the vocabulary.
// Each slot holds the count of the corresponding stem in the text; stems
// absent from the vocabulary are ignored, so the vector length is always
// vocab.Size() regardless of input. Empty or unrecognized text yields an
// all-zero vector.
func Extract(text string, vocab *Vocabulary) []float64 {
	features := make([]float64, vocab.Size())
	for _, stem := range TokenizeAndStem(text) {
		if i, ok := vocab.Index(stem); ok {
			features[i]++
		}
	}
	return features
}

// HasSignal reports whether at least one vocabulary term occurred in the
// extracted features. The ensemble skips the learned model on signal-free
// input because a softmax over an all-zero vector only reflects the bias
// terms.
func HasSignal(features []float64) bool {
	for _, f := range features {
		if f != 0 {
			return true
		}
	}
	return false
}
