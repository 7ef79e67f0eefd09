package classification

import (
	"strings"

	"github.com/helpdeskai/intake-engine/pkg/lexicon"
)

// RuleResult is one rule-based prediction: the label with the most keyword
// occurrences, its share of all occurrences as confidence, and the raw counts.
type RuleResult struct {
	Label      string
	Confidence float64
	Matches    int
	Total      int
}

// ClassifyKeywords runs the rule-based heuristic for one task: count
// case-insensitive substring occurrences of every lexicon entry, grouped by
// label. The highest count wins; ties and zero matches resolve to
// defaultLabel. Confidence is the winning share of all matches, or 0.5 when
// nothing matched. This path never fails.
func ClassifyKeywords(text string, lexicons []lexicon.Lexicon, defaultLabel string) RuleResult {
	lowerText := strings.ToLower(text)

	counts := make(map[string]int, len(lexicons))
	total := 0
	for _, lx := range lexicons {
		count := 0
		for _, entry := range lx.Entries {
			count += strings.Count(lowerText, strings.ToLower(entry))
		}
		counts[lx.Label] = count
		total += count
	}

	if total == 0 {
		return RuleResult{Label: defaultLabel, Confidence: DefaultConfidence}
	}

	// Iterate in lexicon order so the scan is deterministic
	best := ""
	bestCount := 0
	tied := false
	for _, lx := range lexicons {
		c := counts[lx.Label]
		switch {
		case c > bestCount:
			best = lx.Label
			bestCount = c
			tied = false
		case c == bestCount && c > 0 && lx.Label != best:
			tied = true
		}
	}
	if tied {
		// Equal evidence for several labels defaults like no evidence would
		return RuleResult{
			Label:      defaultLabel,
			Confidence: float64(bestCount) / float64(total),
			Matches:    bestCount,
			Total:      total,
		}
	}

	return RuleResult{
		Label:      best,
		Confidence: float64(bestCount) / float64(total),
		Matches:    bestCount,
		Total:      total,
	}
}
