package classification

import (
	"sort"
	"strings"

	"github.com/ticketmind/ticketmind/pkg/observability/logging"
)

// preppedKeywordRule stores preprocessed keywords for efficient matching.
type preppedKeywordRule struct {
	Category      string
	LowerKeywords []string
}

// KeywordClassifier is the deterministic, rule-based category classifier.
// It is the terminal fallback of the classification chain: it never fails
// and never calls a backend.
type KeywordClassifier struct {
	rules           []preppedKeywordRule
	defaultCategory string
}

// NewKeywordClassifier builds a classifier for the given categories. A
// category without a curated keyword table still exists as a label, it just
// never scores from rules.
func NewKeywordClassifier(categories []string, defaultCategory string) *KeywordClassifier {
	rules := make([]preppedKeywordRule, 0, len(categories))
	for _, category := range categories {
		keywords := categoryKeywords[category]
		lower := make([]string, len(keywords))
		for i, keyword := range keywords {
			lower[i] = strings.ToLower(keyword)
		}
		rules = append(rules, preppedKeywordRule{Category: category, LowerKeywords: lower})
	}
	return &KeywordClassifier{rules: rules, defaultCategory: defaultCategory}
}

// Classify scores each category by keyword hits in the lowercased text. A
// keyword matching as a separate token scores 2, as a substring 1. Equal
// scores rank in configured category order. When nothing matches, the default
// category is returned at 0.5 confidence.
func (c *KeywordClassifier) Classify(text string) CategoryPrediction {
	textLower := strings.ToLower(text)
	padded := " " + textLower + " "

	ranked := make([]CategoryScore, 0, len(c.rules))
	total := 0
	for _, rule := range c.rules {
		score := 0
		for _, keyword := range rule.LowerKeywords {
			if !strings.Contains(textLower, keyword) {
				continue
			}
			if strings.Contains(padded, " "+keyword+" ") {
				score += 2
			} else {
				score++
			}
		}
		if score > 0 {
			ranked = append(ranked, CategoryScore{Category: rule.Category, Confidence: float64(score)})
			total += score
		}
	}

	if total == 0 {
		logging.Debugf("Keyword classifier found no matches, returning default category %q", c.defaultCategory)
		return CategoryPrediction{
			Category:      c.defaultCategory,
			Confidence:    0.5,
			Method:        MethodRules,
			TopCategories: []CategoryScore{{Category: c.defaultCategory, Confidence: 0.5}},
		}
	}

	for i := range ranked {
		ranked[i].Confidence /= float64(total)
	}
	// Stable sort keeps the configured category order for equal scores.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Confidence > ranked[j].Confidence
	})
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}

	return CategoryPrediction{
		Category:      ranked[0].Category,
		Confidence:    ranked[0].Confidence,
		Method:        MethodRules,
		TopCategories: ranked,
	}
}
