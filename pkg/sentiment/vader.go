package sentiment

import (
	"context"
	"math"

	"github.com/jonreiter/govader"
)

// VaderScorer is the rule-based lexicon scorer. It computes a compound
// polarity in [-1, 1] directly from VADER's valence tables; no training and
// no backend, so it is always available.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer creates the scorer with VADER's built-in lexicon.
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (s *VaderScorer) Method() Method { return MethodVader }

// Score returns the compound polarity. VADER's conventional thresholds
// apply: >= 0.05 positive, <= -0.05 negative, else neutral.
func (s *VaderScorer) Score(_ context.Context, text string) Result {
	compound := s.analyzer.PolarityScores(text).Compound

	label := LabelNeutral
	switch {
	case compound >= 0.05:
		label = LabelPositive
	case compound <= -0.05:
		label = LabelNegative
	}

	return Result{
		Label:      label,
		Score:      compound,
		Confidence: math.Abs(compound),
		Method:     MethodVader,
	}
}
