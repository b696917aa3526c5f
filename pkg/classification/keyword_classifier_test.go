package classification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketmind/ticketmind/pkg/config"
)

func TestKeywordClassifier(t *testing.T) {
	classifier := NewKeywordClassifier(config.DefaultCategories, "General Support")

	tests := []struct {
		name             string
		text             string
		expectedCategory string
	}{
		{
			name:             "billing keywords dominate",
			text:             "Please refund my invoice charge",
			expectedCategory: "Billing",
		},
		{
			name:             "account keywords",
			text:             "I cannot reset my password",
			expectedCategory: "Account Management",
		},
		{
			name:             "technical issue",
			text:             "The dashboard keeps showing a timeout and then a crash",
			expectedCategory: "Technical Issue",
		},
		{
			name:             "tie broken by configured category order",
			text:             "login error",
			expectedCategory: "Technical Issue",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred := classifier.Classify(tt.text)
			assert.Equal(t, tt.expectedCategory, pred.Category)
			assert.Equal(t, MethodRules, pred.Method)
			assert.NotEmpty(t, pred.TopCategories)
			assert.Equal(t, pred.Category, pred.TopCategories[0].Category)
		})
	}
}

func TestKeywordClassifierNoMatches(t *testing.T) {
	classifier := NewKeywordClassifier(config.DefaultCategories, "General Support")

	pred := classifier.Classify("zxcvbnm qwerty")
	assert.Equal(t, "General Support", pred.Category)
	assert.Equal(t, 0.5, pred.Confidence)
	assert.Equal(t, MethodRules, pred.Method)
	require.Len(t, pred.TopCategories, 1)
	assert.Equal(t, "General Support", pred.TopCategories[0].Category)
}

func TestKeywordClassifierTokenOutweighsSubstring(t *testing.T) {
	classifier := NewKeywordClassifier(config.DefaultCategories, "General Support")

	// "payment" matches Billing as a whole token (2 points); "errors" only
	// contains "error" as a substring for Technical Issue (1 point).
	pred := classifier.Classify("payment errors")
	require.Equal(t, "Billing", pred.Category)
	assert.InDelta(t, 2.0/3.0, pred.Confidence, 1e-9)

	require.Len(t, pred.TopCategories, 2)
	assert.Equal(t, "Technical Issue", pred.TopCategories[1].Category)
	assert.InDelta(t, 1.0/3.0, pred.TopCategories[1].Confidence, 1e-9)
}

func TestKeywordClassifierTieKeepsCategoryOrder(t *testing.T) {
	classifier := NewKeywordClassifier(config.DefaultCategories, "General Support")

	// "error" (Technical Issue) and "login" (Account Management) both score 2;
	// Technical Issue precedes Account Management in the configured list.
	pred := classifier.Classify("login error")
	require.Len(t, pred.TopCategories, 2)
	assert.Equal(t, "Technical Issue", pred.TopCategories[0].Category)
	assert.Equal(t, "Account Management", pred.TopCategories[1].Category)
}

func TestKeywordClassifierTopCategoriesCapped(t *testing.T) {
	classifier := NewKeywordClassifier(config.DefaultCategories, "General Support")

	// Hits Technical Issue, Billing, Account Management, and General Support.
	pred := classifier.Classify("help, my payment account shows an error")
	assert.LessOrEqual(t, len(pred.TopCategories), 3)
	for i := 1; i < len(pred.TopCategories); i++ {
		assert.GreaterOrEqual(t, pred.TopCategories[i-1].Confidence, pred.TopCategories[i].Confidence)
	}
}
