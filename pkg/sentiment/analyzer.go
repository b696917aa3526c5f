package sentiment

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/ticketmind/ticketmind/pkg/config"
	"github.com/ticketmind/ticketmind/pkg/observability/logging"
	"github.com/ticketmind/ticketmind/pkg/observability/metrics"
)

// Analyzer is the multi-model sentiment engine: a transformer backend plus
// two lexicon scorers, fused by weighted averaging. Construct one at startup
// and share it; it holds no mutable state.
type Analyzer struct {
	transformer   *TransformerScorer
	vader         *VaderScorer
	polarity      *PolarityScorer
	weights       config.SentimentWeights
	maxConcurrent int
}

// NewAnalyzer wires the analyzer from configuration. The transformer backend
// is only attached when enabled; its scorer then degrades to neutral.
func NewAnalyzer(cfg *config.EngineConfig) *Analyzer {
	var provider TransformerProvider
	if cfg.Sentiment.Transformer.Enabled {
		provider = NewLLMTransformerProvider(cfg.Sentiment.Transformer)
		logging.Infof("Transformer sentiment backend attached: endpoint=%s model=%s",
			cfg.Sentiment.Transformer.Endpoint, cfg.Sentiment.Transformer.Model)
	}
	return NewAnalyzerWithProvider(cfg, provider)
}

// NewAnalyzerWithProvider wires the analyzer with an explicit transformer
// provider. Pass nil to run on the lexicon scorers alone. Intended for tests
// and for callers embedding their own backend.
func NewAnalyzerWithProvider(cfg *config.EngineConfig, provider TransformerProvider) *Analyzer {
	maxConcurrent := cfg.Sentiment.MaxConcurrent
	if maxConcurrent < 1 {
		// A zero bound would make the conversation semaphore unbuffered and
		// block every send.
		maxConcurrent = 1
	}
	return &Analyzer{
		transformer:   NewTransformerScorer(provider, time.Duration(cfg.Sentiment.Transformer.TimeoutSeconds)*time.Second),
		vader:         NewVaderScorer(),
		polarity:      NewPolarityScorer(),
		weights:       cfg.Sentiment.Weights,
		maxConcurrent: maxConcurrent,
	}
}

// Analyze scores the text with the requested method. Empty or
// whitespace-only input short-circuits to a neutral zero result without
// touching any component.
func (a *Analyzer) Analyze(ctx context.Context, text string, method Method) Result {
	if strings.TrimSpace(text) == "" {
		return neutralResult(method)
	}

	var result Result
	switch method {
	case MethodTransformer:
		result = a.scoreSafely(ctx, a.transformer, text)
	case MethodVader:
		result = a.scoreSafely(ctx, a.vader, text)
	case MethodPolarity:
		result = a.scoreSafely(ctx, a.polarity, text)
	default:
		result = a.ensembleAnalysis(ctx, text)
	}

	metrics.RecordSentiment(string(result.Method), string(result.Label))
	return result
}

// ensembleAnalysis fuses the three component scores. The weighted average is
// divided by the sum of the weights, so the ensemble score is a convex
// combination of the component scores. Final label uses the shared ±0.1
// thresholds; confidence is the score's magnitude.
func (a *Analyzer) ensembleAnalysis(ctx context.Context, text string) Result {
	components := map[Method]Result{
		MethodTransformer: a.scoreSafely(ctx, a.transformer, text),
		MethodVader:       a.scoreSafely(ctx, a.vader, text),
		MethodPolarity:    a.scoreSafely(ctx, a.polarity, text),
	}

	weightFor := map[Method]float64{
		MethodTransformer: a.weights.Transformer,
		MethodVader:       a.weights.Vader,
		MethodPolarity:    a.weights.Polarity,
	}

	var weightedSum, totalWeight float64
	for method, result := range components {
		weightedSum += result.Score * weightFor[method]
		totalWeight += weightFor[method]
	}

	score := 0.0
	if totalWeight > 0 {
		score = weightedSum / totalWeight
	}

	return Result{
		Label:      labelFromScore(score),
		Score:      score,
		Confidence: math.Abs(score),
		Method:     MethodEnsemble,
		Components: components,
	}
}

// scoreSafely calls one component behind a panic boundary. A panicking
// component yields its documented neutral fallback; the ensemble keeps
// combining whatever succeeded.
func (a *Analyzer) scoreSafely(ctx context.Context, scorer Scorer, text string) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			logging.Errorf("Sentiment component %s panicked, using neutral fallback: %v", scorer.Method(), r)
			result = neutralResult(scorer.Method())
		}
	}()
	return scorer.Score(ctx, text)
}
