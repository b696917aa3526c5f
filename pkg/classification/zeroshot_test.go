package classification

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroShotClassifierRanksLabels(t *testing.T) {
	provider := &stubZeroShotProvider{scores: []CategoryScore{
		{Category: "Billing", Confidence: 0.2},
		{Category: "Technical Issue", Confidence: 0.5},
		{Category: "General Support", Confidence: 0.2},
		{Category: "Bug Report", Confidence: 0.1},
	}}
	classifier := NewZeroShotClassifier(provider, time.Second)

	pred, err := classifier.Classify(context.Background(), "anything", nil)
	require.NoError(t, err)
	assert.Equal(t, "Technical Issue", pred.Category)
	assert.Equal(t, 0.5, pred.Confidence)
	assert.Equal(t, MethodZeroShot, pred.Method)

	require.Len(t, pred.TopCategories, 3)
	// Equal scores break the tie on category name.
	assert.Equal(t, "Billing", pred.TopCategories[1].Category)
	assert.Equal(t, "General Support", pred.TopCategories[2].Category)
}

func TestZeroShotClassifierPropagatesErrors(t *testing.T) {
	classifier := NewZeroShotClassifier(&stubZeroShotProvider{err: fmt.Errorf("boom")}, time.Second)
	_, err := classifier.Classify(context.Background(), "anything", nil)
	assert.Error(t, err)

	classifier = NewZeroShotClassifier(&stubZeroShotProvider{}, time.Second)
	_, err = classifier.Classify(context.Background(), "anything", nil)
	assert.Error(t, err, "an empty label ranking is an error")
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", `{"a": 1}`, `{"a": 1}`},
		{"fenced", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fenced with language", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  {\"a\": 1}\n", `{"a": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripCodeFence(tt.input))
		})
	}
}
