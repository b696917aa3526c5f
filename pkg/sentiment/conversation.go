package sentiment

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// SummarizeConversation analyzes every message with the ensemble and derives
// the conversation-level aggregate. Messages are analyzed concurrently up to
// the configured bound; results keep the original order.
func (a *Analyzer) SummarizeConversation(ctx context.Context, messages []Message) ConversationSummary {
	if len(messages) == 0 {
		return ConversationSummary{
			OverallLabel: LabelNeutral,
			AverageScore: 0.0,
			Trend:        TrendStable,
			Messages:     []MessageSentiment{},
		}
	}

	results := make([]Result, len(messages))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, a.maxConcurrent)

	for i, msg := range messages {
		wg.Add(1)
		go func(idx int, content string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			results[idx] = a.Analyze(ctx, content, MethodEnsemble)
		}(i, msg.Content)
	}
	wg.Wait()

	entries := make([]MessageSentiment, len(messages))
	scores := make([]float64, len(messages))
	var sum float64
	for i, result := range results {
		id := messages[i].ID
		if id == "" {
			id = uuid.NewString()
		}
		entries[i] = MessageSentiment{MessageID: id, Label: result.Label, Score: result.Score}
		scores[i] = result.Score
		sum += result.Score
	}

	average := sum / float64(len(scores))

	return ConversationSummary{
		OverallLabel: labelFromScore(average),
		AverageScore: average,
		Trend:        detectTrend(scores),
		Messages:     entries,
	}
}

// detectTrend compares the mean of the last 3 scores against the mean of all
// prior scores with a ±0.2 deadband. Conversations shorter than 3 messages
// report stable. With exactly 3 messages the prior mean is 0, matching the
// platform's historical behavior; flagged for product sign-off before any
// change.
func detectTrend(scores []float64) Trend {
	if len(scores) < 3 {
		return TrendStable
	}

	var recent float64
	for _, s := range scores[len(scores)-3:] {
		recent += s
	}
	recent /= 3

	var earlier float64
	for _, s := range scores[:len(scores)-3] {
		earlier += s
	}
	divisor := len(scores) - 3
	if divisor < 1 {
		divisor = 1
	}
	earlier /= float64(divisor)

	switch {
	case recent > earlier+0.2:
		return TrendImproving
	case recent < earlier-0.2:
		return TrendDeclining
	default:
		return TrendStable
	}
}
