package sentiment

import "context"

// Label is a sentiment class.
type Label string

const (
	LabelPositive Label = "positive"
	LabelNeutral  Label = "neutral"
	LabelNegative Label = "negative"
)

// Method identifies which scorer produced a result.
type Method string

const (
	MethodTransformer Method = "transformer"
	MethodVader       Method = "vader"
	MethodPolarity    Method = "polarity"
	MethodEnsemble    Method = "ensemble"
)

// Result is a sentiment analysis outcome. Score is in [-1, 1]: the sign
// carries direction, the magnitude carries strength. Confidence is
// independent of the sign and always non-negative.
type Result struct {
	Label      Label   `json:"label"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
	Method     Method  `json:"method"`

	// Components holds each scorer's raw result when Method is ensemble.
	Components map[Method]Result `json:"component_breakdown,omitempty"`
}

// Scorer is one pluggable sentiment component. Implementations degrade to a
// neutral zero result when their backend is unavailable; they never fail.
type Scorer interface {
	Method() Method
	Score(ctx context.Context, text string) Result
}

// Trend describes how conversation sentiment is moving.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// Message is one conversation message to analyze.
type Message struct {
	ID      string `json:"id,omitempty"`
	Content string `json:"content"`
}

// MessageSentiment is the per-message entry of a conversation summary.
type MessageSentiment struct {
	MessageID string  `json:"message_id"`
	Label     Label   `json:"label"`
	Score     float64 `json:"score"`
}

// ConversationSummary aggregates sentiment over an ordered message sequence.
type ConversationSummary struct {
	OverallLabel Label              `json:"overall_label"`
	AverageScore float64            `json:"average_score"`
	Trend        Trend              `json:"trend"`
	Messages     []MessageSentiment `json:"messages"`
}

func neutralResult(method Method) Result {
	return Result{Label: LabelNeutral, Score: 0.0, Confidence: 0.0, Method: method}
}

// labelFromScore applies the shared ±0.1 thresholds used by the ensemble and
// the conversation aggregator.
func labelFromScore(score float64) Label {
	switch {
	case score > 0.1:
		return LabelPositive
	case score < -0.1:
		return LabelNegative
	default:
		return LabelNeutral
	}
}
