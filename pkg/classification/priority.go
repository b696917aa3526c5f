package classification

import (
	"strings"
)

// PriorityScorer assigns a priority bucket from keyword hits plus metadata
// adjustments. It is deterministic and never calls a backend.
type PriorityScorer struct{}

// NewPriorityScorer creates a priority scorer over the built-in keyword
// buckets.
func NewPriorityScorer() *PriorityScorer {
	return &PriorityScorer{}
}

// Score sums keyword hits per bucket (a keyword found in the title weighs 2,
// elsewhere 1), applies metadata adjustments, and picks the highest bucket.
// With no signal at all the ticket lands on medium at 0.6 confidence.
func (s *PriorityScorer) Score(title, description string, md TicketMetadata) PriorityPrediction {
	titleLower := strings.ToLower(title)
	textLower := titleLower + " " + strings.ToLower(description)

	scores := map[Priority]int{
		PriorityUrgent: 0,
		PriorityHigh:   0,
		PriorityMedium: 0,
		PriorityLow:    0,
	}

	for priority, keywords := range priorityKeywords {
		for _, keyword := range keywords {
			if !strings.Contains(textLower, keyword) {
				continue
			}
			if strings.Contains(titleLower, keyword) {
				scores[priority] += 2
			} else {
				scores[priority]++
			}
		}
	}

	// Metadata adjustments. VIP customers and repeat escalations push the
	// ticket up; a tight SLA can force urgent outright.
	if md.CustomerTier == TierVIP {
		scores[PriorityHigh] += 3
	}
	if md.PreviousEscalations > 0 {
		scores[PriorityHigh] += 2
	}
	if md.SLAHours != nil {
		switch {
		case *md.SLAHours <= 2:
			scores[PriorityUrgent] += 3
		case *md.SLAHours <= 8:
			scores[PriorityHigh] += 2
		}
	}

	total := 0
	best := PriorityMedium
	bestScore := 0
	for _, priority := range priorityOrder {
		total += scores[priority]
		if scores[priority] > bestScore {
			best = priority
			bestScore = scores[priority]
		}
	}

	if bestScore == 0 {
		return PriorityPrediction{Priority: PriorityMedium, Confidence: 0.6, RawScores: scores}
	}

	// The 1.5 multiplier deliberately boosts decisive scoring patterns.
	confidence := float64(bestScore) / float64(total) * 1.5
	if confidence > 1 {
		confidence = 1
	}

	return PriorityPrediction{Priority: best, Confidence: confidence, RawScores: scores}
}
