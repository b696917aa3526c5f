package sentiment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketmind/ticketmind/pkg/config"
)

func testAnalyzer(provider TransformerProvider) *Analyzer {
	return NewAnalyzerWithProvider(config.Default(), provider)
}

func TestAnalyzeEmptyText(t *testing.T) {
	analyzer := testAnalyzer(nil)

	for _, method := range []Method{MethodEnsemble, MethodTransformer, MethodVader, MethodPolarity} {
		result := analyzer.Analyze(context.Background(), "   ", method)
		assert.Equal(t, LabelNeutral, result.Label)
		assert.Zero(t, result.Score)
		assert.Zero(t, result.Confidence)
		assert.Equal(t, method, result.Method)
	}
}

func TestAnalyzeMethodDispatch(t *testing.T) {
	analyzer := testAnalyzer(nil)

	result := analyzer.Analyze(context.Background(), "I love this", MethodPolarity)
	assert.Equal(t, MethodPolarity, result.Method)

	result = analyzer.Analyze(context.Background(), "I love this", MethodVader)
	assert.Equal(t, MethodVader, result.Method)

	result = analyzer.Analyze(context.Background(), "I love this", MethodEnsemble)
	assert.Equal(t, MethodEnsemble, result.Method)
}

func TestEnsembleIsConvexCombination(t *testing.T) {
	// "zzzz qqqq" carries no signal for either lexicon scorer, so the
	// ensemble reduces to the transformer's share of the weight:
	// (1.0*0.5 + 0*0.3 + 0*0.2) / (0.5+0.3+0.2).
	provider := &stubTransformerProvider{label: "positive", probability: 1.0}
	analyzer := testAnalyzer(provider)

	result := analyzer.Analyze(context.Background(), "zzzz qqqq", MethodEnsemble)
	assert.Equal(t, LabelPositive, result.Label)
	assert.InDelta(t, 0.5, result.Score, 1e-9)
	assert.InDelta(t, 0.5, result.Confidence, 1e-9)
}

func TestEnsembleComponentBreakdown(t *testing.T) {
	provider := &stubTransformerProvider{label: "negative", probability: 0.8}
	analyzer := testAnalyzer(provider)

	result := analyzer.Analyze(context.Background(), "This is terrible", MethodEnsemble)
	require.Len(t, result.Components, 3)
	assert.Equal(t, LabelNegative, result.Components[MethodTransformer].Label)
	assert.Equal(t, MethodVader, result.Components[MethodVader].Method)
	assert.Equal(t, MethodPolarity, result.Components[MethodPolarity].Method)
	assert.Equal(t, LabelNegative, result.Label)
	assert.Less(t, result.Score, 0.0)
}

func TestEnsembleWithoutTransformer(t *testing.T) {
	analyzer := testAnalyzer(nil)

	// The transformer contributes a neutral zero but its weight still
	// counts in the divisor.
	result := analyzer.Analyze(context.Background(), "This is absolutely wonderful, thank you!", MethodEnsemble)
	assert.Equal(t, LabelPositive, result.Label)
	assert.Greater(t, result.Score, 0.1)
}
