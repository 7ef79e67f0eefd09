package classification

import (
	"github.com/helpdeskai/intake-engine/pkg/lexicon"
)

// Task names. One classifier, one vocabulary scope, and one artifact
// directory exist per task.
const (
	TaskType       = "type"
	TaskCategory   = "category"
	TaskUrgency    = "urgency"
	TaskSentiment  = "sentiment"
	TaskComplexity = "complexity"
)

// AllTasks lists every classification task. A persisted artifact must exist
// for each of them before training is skipped at startup.
var AllTasks = []string{TaskType, TaskCategory, TaskUrgency, TaskSentiment, TaskComplexity}

// Per-task defaults returned when no signal is available or inference fails.
const (
	DefaultType       = lexicon.TypeIncident
	DefaultUrgency    = 3
	DefaultSentiment  = lexicon.SentimentNeutral
	DefaultComplexity = lexicon.ComplexityModerate

	// DefaultConfidence accompanies every default result.
	DefaultConfidence = 0.5
)

// DefaultCategory returns the fallback category for a request type. The
// fallback keeps the type prefix so category results always agree with the
// decided type.
func DefaultCategory(requestType string) string {
	if requestType == lexicon.TypeRequest {
		return lexicon.TypeRequest + "_" + lexicon.CategoryOther
	}
	return lexicon.TypeIncident + "_" + lexicon.CategoryOther
}

// Hidden-layer topologies per task. Category carries the widest label set and
// gets the deeper stack.
var hiddenLayersByTask = map[string][]int{
	TaskType:       {128, 64},
	TaskCategory:   {256, 128, 64},
	TaskUrgency:    {128, 64},
	TaskSentiment:  {128, 64},
	TaskComplexity: {128, 64},
}
