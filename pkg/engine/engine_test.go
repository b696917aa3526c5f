package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketmind/ticketmind/pkg/classification"
	"github.com/ticketmind/ticketmind/pkg/config"
	"github.com/ticketmind/ticketmind/pkg/sentiment"
)

type fixedZeroShot struct {
	scores []classification.CategoryScore
}

func (f *fixedZeroShot) Score(ctx context.Context, text string, labels []string) ([]classification.CategoryScore, error) {
	return f.scores, nil
}

type fixedTransformer struct {
	label       string
	probability float64
}

func (f *fixedTransformer) Predict(ctx context.Context, text string) (string, float64, error) {
	return f.label, f.probability, nil
}

func testConfig(t *testing.T) *config.EngineConfig {
	t.Helper()
	cfg := config.Default()
	cfg.ModelsPath = t.TempDir()
	return cfg
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = NewWithBackends(nil, nil, nil)
	assert.Error(t, err)
}

func TestNewNormalizesHandBuiltConfig(t *testing.T) {
	// Callers are not required to go through config.Default or config.Parse;
	// a minimal hand-built config must still get working timeouts and
	// concurrency bounds.
	cfg := &config.EngineConfig{
		Categories:      []string{"Billing", "General Support"},
		DefaultCategory: "General Support",
		ModelsPath:      t.TempDir(),
	}
	eng, err := NewWithBackends(cfg, nil, nil)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, eng.Config().Sentiment.MaxConcurrent, 1)
	assert.Greater(t, eng.Config().ZeroShot.TimeoutSeconds, 0)
	assert.Greater(t, eng.Config().Sentiment.Transformer.TimeoutSeconds, 0)

	summary := eng.AnalyzeConversation(context.Background(), []sentiment.Message{
		{Content: "still waiting for a reply"},
	})
	assert.Len(t, summary.Messages, 1)
}

func TestEngineClassifyTicket(t *testing.T) {
	zeroShot := &fixedZeroShot{scores: []classification.CategoryScore{
		{Category: "Billing", Confidence: 0.9},
	}}
	eng, err := NewWithBackends(testConfig(t), zeroShot, nil)
	require.NoError(t, err)

	result := eng.ClassifyTicket(context.Background(), "Refund please", "I was overcharged", nil)
	assert.Equal(t, "Billing", result.Category)
	assert.Equal(t, classification.MethodEnsemble, result.Method)
	assert.NotEmpty(t, result.RequestID)
}

func TestEngineAnalyzeSentimentDefaultsToEnsemble(t *testing.T) {
	transformer := &fixedTransformer{label: "positive", probability: 1.0}
	eng, err := NewWithBackends(testConfig(t), nil, transformer)
	require.NoError(t, err)

	result := eng.AnalyzeSentiment(context.Background(), "zzzz qqqq", "")
	assert.Equal(t, sentiment.MethodEnsemble, result.Method)
	assert.Equal(t, sentiment.LabelPositive, result.Label)
}

func TestEngineConversationAndEscalation(t *testing.T) {
	eng, err := NewWithBackends(testConfig(t), nil, nil)
	require.NoError(t, err)

	messages := []sentiment.Message{
		{Content: "This is terrible, horrible, and completely broken!"},
		{Content: "I hate this, it is awful and useless."},
		{Content: "Absolutely unacceptable, I am furious."},
	}
	summary := eng.AnalyzeConversation(context.Background(), messages)
	assert.Equal(t, sentiment.LabelNegative, summary.OverallLabel)
	assert.Len(t, summary.Messages, 3)

	escalate, reason := eng.ShouldEscalate(summary, 12, nil)
	assert.True(t, escalate)
	assert.NotEmpty(t, reason)
}

func TestEngineTrainTooFewExamples(t *testing.T) {
	cfg := testConfig(t)
	cfg.Statistical.Enabled = true
	eng, err := NewWithBackends(cfg, nil, nil)
	require.NoError(t, err)

	require.NoError(t, eng.Train([]classification.TrainingExample{
		{Text: "refund", Category: "Billing"},
	}))
}

func TestEngineConfig(t *testing.T) {
	cfg := testConfig(t)
	eng, err := NewWithBackends(cfg, nil, nil)
	require.NoError(t, err)
	assert.Same(t, cfg, eng.Config())
}
