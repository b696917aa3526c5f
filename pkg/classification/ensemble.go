package classification

import (
	"context"
	"sort"

	"github.com/ticketmind/ticketmind/pkg/config"
	"github.com/ticketmind/ticketmind/pkg/observability/logging"
	"github.com/ticketmind/ticketmind/pkg/observability/metrics"
)

// component is one classifier's contribution to the ensemble.
type component struct {
	prediction CategoryPrediction
	weight     float64
}

// EnsembleClassifier merges zero-shot, statistical, and rule-based category
// predictions via weighted voting. The weights are fixed and intentionally
// not renormalized when a component is unavailable: with the statistical
// model missing, zero-shot and rules still contribute at 0.6 and 0.1. The
// reported confidence is the winning accumulated score and can in principle
// exceed 1 when components agree strongly. Renormalizing is a pending
// product decision; do not change the behavior here without sign-off.
type EnsembleClassifier struct {
	zeroShot    *ZeroShotClassifier
	statistical *StatisticalClassifier
	rules       *KeywordClassifier
	weights     config.EnsembleWeights
	categories  []string
}

// NewEnsembleClassifier builds the combiner. zeroShot and statistical may be
// nil; rules must not be.
func NewEnsembleClassifier(
	zeroShot *ZeroShotClassifier,
	statistical *StatisticalClassifier,
	rules *KeywordClassifier,
	weights config.EnsembleWeights,
	categories []string,
) *EnsembleClassifier {
	return &EnsembleClassifier{
		zeroShot:    zeroShot,
		statistical: statistical,
		rules:       rules,
		weights:     weights,
		categories:  categories,
	}
}

// Classify runs every available component and combines their winning
// categories by confidence*weight. It also reports how many model-backed
// components (zero-shot, statistical) contributed, so the caller can detect
// an ensemble that degenerated to rules only.
func (e *EnsembleClassifier) Classify(ctx context.Context, text string) (CategoryPrediction, int) {
	var components []component
	modelComponents := 0

	if e.zeroShot != nil {
		pred, err := e.zeroShot.Classify(ctx, text, e.categories)
		if err != nil {
			logging.Warnf("Zero-shot component unavailable, continuing without it: %v", err)
			metrics.RecordFallback("zero_shot", "ensemble_remainder")
		} else {
			components = append(components, component{pred, e.weights.ZeroShot})
			modelComponents++
		}
	}

	if e.statistical != nil && e.statistical.Trained() {
		pred, err := e.statistical.Classify(text)
		if err != nil {
			logging.Warnf("Statistical component unavailable, continuing without it: %v", err)
			metrics.RecordFallback("statistical", "ensemble_remainder")
		} else {
			components = append(components, component{pred, e.weights.Statistical})
			modelComponents++
		}
	}

	// Rules never fail and always vote.
	components = append(components, component{e.rules.Classify(text), e.weights.Rules})

	accumulated := make(map[string]float64)
	for _, c := range components {
		accumulated[c.prediction.Category] += c.prediction.Confidence * c.weight
	}

	ranked := make([]CategoryScore, 0, len(accumulated))
	for category, score := range accumulated {
		ranked = append(ranked, CategoryScore{Category: category, Confidence: score})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Confidence != ranked[j].Confidence {
			return ranked[i].Confidence > ranked[j].Confidence
		}
		return ranked[i].Category < ranked[j].Category
	})
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}

	return CategoryPrediction{
		Category:      ranked[0].Category,
		Confidence:    ranked[0].Confidence,
		Method:        MethodEnsemble,
		TopCategories: ranked,
	}, modelComponents
}
