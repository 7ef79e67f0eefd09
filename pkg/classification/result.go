package classification

// One explicit result type per task keeps the ensemble's contract checkable
// at compile time. Source identifies which signal produced the returned label.

// Source values reported in results and metrics.
const (
	SourceModel   = "model"   // learned prediction above the confidence gate
	SourceRules   = "rules"   // rule-based fallback
	SourceDefault = "default" // no signal at all, documented per-task default
)

// TypeResult is the incident-vs-request decision.
type TypeResult struct {
	Type       string  `json:"type"`
	TypeID     int     `json:"type_id"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

// CategoryResult is the ticket category, restricted to the decided type's
// prefix, with its external taxonomy identifier.
type CategoryResult struct {
	Category   string  `json:"category"`
	CategoryID int     `json:"category_id"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

// UrgencyResult is the urgency band, 1 (most urgent) to 5 (least urgent).
type UrgencyResult struct {
	Urgency    int     `json:"urgency"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

// SentimentResult is the message tone.
type SentimentResult struct {
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

// ComplexityResult is the estimated problem complexity.
type ComplexityResult struct {
	Complexity string  `json:"complexity"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

// IntakeResult bundles every task's result for one support request, the
// record a ticketing connector needs to file a ticket.
type IntakeResult struct {
	Type       TypeResult       `json:"type"`
	Category   CategoryResult   `json:"category"`
	Urgency    UrgencyResult    `json:"urgency"`
	Sentiment  SentimentResult  `json:"sentiment"`
	Complexity ComplexityResult `json:"complexity"`
}
