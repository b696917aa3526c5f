package sentiment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// stubTransformerProvider returns a canned prediction or a canned error.
type stubTransformerProvider struct {
	label       string
	probability float64
	err         error
}

func (s *stubTransformerProvider) Predict(ctx context.Context, text string) (string, float64, error) {
	if s.err != nil {
		return "", 0, s.err
	}
	return s.label, s.probability, nil
}

func TestTransformerScorer(t *testing.T) {
	tests := []struct {
		name          string
		provider      TransformerProvider
		expectedLabel Label
		expectedScore float64
	}{
		{
			name:          "positive keeps the sign",
			provider:      &stubTransformerProvider{label: "positive", probability: 0.9},
			expectedLabel: LabelPositive,
			expectedScore: 0.9,
		},
		{
			name:          "negative flips the sign",
			provider:      &stubTransformerProvider{label: "NEGATIVE", probability: 0.8},
			expectedLabel: LabelNegative,
			expectedScore: -0.8,
		},
		{
			name:          "neutral maps to zero",
			provider:      &stubTransformerProvider{label: "LABEL_1", probability: 0.7},
			expectedLabel: LabelNeutral,
			expectedScore: 0,
		},
		{
			name:          "unknown label treated as neutral",
			provider:      &stubTransformerProvider{label: "mixed", probability: 0.7},
			expectedLabel: LabelNeutral,
			expectedScore: 0,
		},
		{
			name:          "backend failure degrades to neutral",
			provider:      &stubTransformerProvider{err: fmt.Errorf("backend unavailable")},
			expectedLabel: LabelNeutral,
			expectedScore: 0,
		},
		{
			name:          "nil provider degrades to neutral",
			provider:      nil,
			expectedLabel: LabelNeutral,
			expectedScore: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scorer := NewTransformerScorer(tt.provider, time.Second)
			result := scorer.Score(context.Background(), "anything")
			assert.Equal(t, tt.expectedLabel, result.Label)
			assert.InDelta(t, tt.expectedScore, result.Score, 1e-9)
			assert.Equal(t, MethodTransformer, result.Method)
		})
	}
}

func TestNormalizeLabel(t *testing.T) {
	assert.Equal(t, LabelNegative, normalizeLabel("LABEL_0"))
	assert.Equal(t, LabelNeutral, normalizeLabel("label_1"))
	assert.Equal(t, LabelPositive, normalizeLabel(" Positive "))
	assert.Equal(t, LabelNeutral, normalizeLabel("gibberish"))
}
