package classification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 { return &f }

func TestPriorityScorer(t *testing.T) {
	scorer := NewPriorityScorer()

	tests := []struct {
		name        string
		title       string
		description string
		metadata    TicketMetadata
		expected    Priority
	}{
		{
			name:        "urgent keywords in title",
			title:       "Urgent: system down",
			description: "Everything crashed this morning",
			expected:    PriorityUrgent,
		},
		{
			name:        "vip tier pushes to high",
			title:       "Question about exports",
			description: "",
			metadata:    TicketMetadata{CustomerTier: TierVIP},
			expected:    PriorityHigh,
		},
		{
			name:        "previous escalations push to high",
			title:       "Hello",
			description: "",
			metadata:    TicketMetadata{PreviousEscalations: 2},
			expected:    PriorityHigh,
		},
		{
			name:        "tight SLA forces urgent",
			title:       "Hello",
			description: "Nothing special here",
			metadata:    TicketMetadata{SLAHours: floatPtr(1)},
			expected:    PriorityUrgent,
		},
		{
			name:        "moderate SLA pushes to high",
			title:       "Hello",
			description: "Nothing special here",
			metadata:    TicketMetadata{SLAHours: floatPtr(6)},
			expected:    PriorityHigh,
		},
		{
			name:        "low priority wording",
			title:       "Feedback",
			description: "A cosmetic improvement, nice to have eventually",
			expected:    PriorityLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred := scorer.Score(tt.title, tt.description, tt.metadata)
			assert.Equal(t, tt.expected, pred.Priority)
			assert.Greater(t, pred.Confidence, 0.0)
			assert.LessOrEqual(t, pred.Confidence, 1.0)
		})
	}
}

func TestPriorityScorerNoSignal(t *testing.T) {
	scorer := NewPriorityScorer()

	pred := scorer.Score("Hello", "World", TicketMetadata{})
	assert.Equal(t, PriorityMedium, pred.Priority)
	assert.Equal(t, 0.6, pred.Confidence)
}

func TestPriorityScorerVIPAddsThreeToHigh(t *testing.T) {
	scorer := NewPriorityScorer()

	without := scorer.Score("Question about exports", "", TicketMetadata{})
	with := scorer.Score("Question about exports", "", TicketMetadata{CustomerTier: TierVIP})
	assert.Equal(t, without.RawScores[PriorityHigh]+3, with.RawScores[PriorityHigh])
}

func TestPriorityScorerTitleWeighsDouble(t *testing.T) {
	scorer := NewPriorityScorer()

	inTitle := scorer.Score("urgent", "", TicketMetadata{})
	inBody := scorer.Score("", "urgent", TicketMetadata{})
	assert.Equal(t, 2, inTitle.RawScores[PriorityUrgent])
	assert.Equal(t, 1, inBody.RawScores[PriorityUrgent])
}

func TestMetadataFromMap(t *testing.T) {
	md := MetadataFromMap(map[string]interface{}{
		"customer_tier":        "vip",
		"previous_escalations": float64(3),
		"sla_hours":            2.5,
		"favorite_color":       "teal",
	})
	assert.Equal(t, TierVIP, md.CustomerTier)
	assert.Equal(t, 3, md.PreviousEscalations)
	if assert.NotNil(t, md.SLAHours) {
		assert.Equal(t, 2.5, *md.SLAHours)
	}

	md = MetadataFromMap(map[string]interface{}{"customer_tier": "platinum"})
	assert.Equal(t, CustomerTier(""), md.CustomerTier)
}
