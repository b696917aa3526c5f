package sentiment

import (
	"context"
	"math"
	"strings"
	"unicode"
)

// PolarityScorer is the pattern-lexicon scorer: each word carries a polarity
// in [-1, 1], negators flip and dampen it, intensifiers scale it, and the
// text's polarity is the average over matched words. Like the VADER scorer
// it needs no training and never fails.
type PolarityScorer struct{}

// NewPolarityScorer creates the scorer with the built-in polarity lexicon.
func NewPolarityScorer() *PolarityScorer {
	return &PolarityScorer{}
}

func (s *PolarityScorer) Method() Method { return MethodPolarity }

// Score returns the average word polarity. Label thresholds are > 0.1
// positive and < -0.1 negative, matching the pattern-lexicon convention.
func (s *PolarityScorer) Score(_ context.Context, text string) Result {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})

	var sum float64
	matched := 0
	for i, token := range tokens {
		polarity, ok := polarityLexicon[token]
		if !ok {
			continue
		}

		// Look back a short window for modifiers.
		for j := i - 1; j >= 0 && j >= i-2; j-- {
			if _, neg := negators[tokens[j]]; neg {
				polarity *= -0.5
				break
			}
			if boost, ok := intensifiers[tokens[j]]; ok {
				polarity *= boost
			}
		}

		if polarity > 1 {
			polarity = 1
		}
		if polarity < -1 {
			polarity = -1
		}
		sum += polarity
		matched++
	}

	if matched == 0 {
		return neutralResult(MethodPolarity)
	}

	score := sum / float64(matched)
	label := LabelNeutral
	switch {
	case score > 0.1:
		label = LabelPositive
	case score < -0.1:
		label = LabelNegative
	}

	return Result{
		Label:      label,
		Score:      score,
		Confidence: math.Abs(score),
		Method:     MethodPolarity,
	}
}

var negators = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "neither": {}, "nobody": {},
	"nothing": {}, "hardly": {}, "barely": {}, "isn't": {}, "wasn't": {},
	"aren't": {}, "don't": {}, "doesn't": {}, "didn't": {}, "can't": {},
	"cannot": {}, "couldn't": {}, "won't": {}, "wouldn't": {}, "shouldn't": {},
}

var intensifiers = map[string]float64{
	"very": 1.3, "really": 1.3, "extremely": 1.5, "absolutely": 1.5,
	"completely": 1.4, "totally": 1.4, "so": 1.3, "quite": 1.1,
	"incredibly": 1.5, "super": 1.4, "slightly": 0.6, "somewhat": 0.7,
	"kind": 0.8, "fairly": 0.9,
}

// polarityLexicon holds per-word polarities, curated toward the vocabulary
// of support conversations.
var polarityLexicon = map[string]float64{
	// positive
	"good": 0.7, "great": 0.8, "excellent": 1.0, "amazing": 0.9,
	"awesome": 1.0, "fantastic": 0.9, "wonderful": 1.0, "perfect": 1.0,
	"love": 0.5, "loved": 0.7, "like": 0.3, "best": 1.0, "better": 0.5,
	"nice": 0.6, "happy": 0.8, "pleased": 0.7, "satisfied": 0.6,
	"thank": 0.4, "thanks": 0.4, "thankful": 0.6, "grateful": 0.7,
	"appreciate": 0.5, "appreciated": 0.5, "helpful": 0.6, "helped": 0.4,
	"works": 0.3, "working": 0.2, "fast": 0.4, "quick": 0.4, "easy": 0.5,
	"smooth": 0.5, "resolved": 0.5, "fixed": 0.4, "solved": 0.5,
	"brilliant": 0.9, "superb": 0.9, "impressive": 0.7, "reliable": 0.6,
	"friendly": 0.6, "responsive": 0.5, "clear": 0.3, "glad": 0.7,

	// negative
	"bad": -0.7, "terrible": -1.0, "horrible": -1.0, "awful": -1.0,
	"worst": -1.0, "worse": -0.6, "poor": -0.6, "hate": -0.8,
	"hated": -0.9, "angry": -0.8, "furious": -1.0, "annoyed": -0.6,
	"annoying": -0.6, "frustrated": -0.7, "frustrating": -0.7,
	"disappointed": -0.7, "disappointing": -0.7, "useless": -0.8,
	"broken": -0.6, "crash": -0.6, "crashed": -0.6, "crashes": -0.6,
	"fail": -0.6, "failed": -0.6, "failing": -0.6, "failure": -0.7,
	"error": -0.4, "errors": -0.4, "problem": -0.4, "problems": -0.4,
	"issue": -0.3, "issues": -0.3, "slow": -0.4, "unusable": -0.9,
	"unacceptable": -0.9, "ridiculous": -0.7, "confusing": -0.5,
	"difficult": -0.4, "stuck": -0.4, "lost": -0.5, "wrong": -0.5,
	"unhappy": -0.7, "upset": -0.7, "unreliable": -0.7, "buggy": -0.7,
	"waiting": -0.2, "delayed": -0.4, "ignored": -0.6, "rude": -0.8,
}
