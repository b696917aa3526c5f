package classification

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ticketmind/ticketmind/pkg/config"
	"github.com/ticketmind/ticketmind/pkg/observability/logging"
	"github.com/ticketmind/ticketmind/pkg/observability/metrics"
)

// TicketClassifier is the classification service: category ensemble,
// priority scoring, and the table-driven ticket hints. Construct one at
// startup and share it; all state is immutable after construction except the
// statistical model, which retraining swaps atomically.
type TicketClassifier struct {
	cfg         *config.EngineConfig
	rules       *KeywordClassifier
	statistical *StatisticalClassifier
	zeroShot    *ZeroShotClassifier
	ensemble    *EnsembleClassifier
	priority    *PriorityScorer
}

// NewTicketClassifier wires the classifier from configuration. The zero-shot
// backend is only attached when enabled; everything else degrades gracefully
// at classification time.
func NewTicketClassifier(cfg *config.EngineConfig) *TicketClassifier {
	var provider ZeroShotProvider
	if cfg.ZeroShot.Enabled {
		provider = NewLLMZeroShotProvider(cfg.ZeroShot)
		logging.Infof("Zero-shot classifier attached: endpoint=%s model=%s", cfg.ZeroShot.Endpoint, cfg.ZeroShot.Model)
	}
	return NewTicketClassifierWithProvider(cfg, provider)
}

// NewTicketClassifierWithProvider wires the classifier with an explicit
// zero-shot provider. Pass nil to run without one. Intended for tests and
// for callers embedding their own backend.
func NewTicketClassifierWithProvider(cfg *config.EngineConfig, provider ZeroShotProvider) *TicketClassifier {
	rules := NewKeywordClassifier(cfg.Categories, cfg.DefaultCategory)

	var statistical *StatisticalClassifier
	if cfg.Statistical.Enabled {
		statistical = NewStatisticalClassifier(cfg.Statistical, cfg.ModelsPath)
	}

	var zeroShot *ZeroShotClassifier
	if provider != nil {
		zeroShot = NewZeroShotClassifier(provider, time.Duration(cfg.ZeroShot.TimeoutSeconds)*time.Second)
	}

	return &TicketClassifier{
		cfg:         cfg,
		rules:       rules,
		statistical: statistical,
		zeroShot:    zeroShot,
		ensemble:    NewEnsembleClassifier(zeroShot, statistical, rules, cfg.Ensemble.Weights, cfg.Categories),
		priority:    NewPriorityScorer(),
	}
}

// ClassifyTicket classifies a ticket into category and priority and derives
// the table-driven hints. It never fails: any panic inside a component is
// converted into the safe default classification.
func (c *TicketClassifier) ClassifyTicket(ctx context.Context, title, description string, metadata map[string]interface{}) (result TicketClassification) {
	requestID := uuid.NewString()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			logging.Errorf("Ticket classification panicked (request %s): %v", requestID, r)
			result = c.safeDefault(requestID)
		}
		metrics.RecordClassification(string(result.Method), time.Since(start).Seconds())
	}()

	text := title + ". " + description

	category := c.classifyCategory(ctx, text)
	priority := c.priority.Score(title, description, MetadataFromMap(metadata))

	result = TicketClassification{
		RequestID:               requestID,
		Category:                category.Category,
		CategoryConfidence:      category.Confidence,
		Priority:                priority.Priority,
		PriorityConfidence:      priority.Confidence,
		Tags:                    extractTags(text),
		EstimatedResolutionTime: estimateResolutionTime(priority.Priority, category.Category),
		SuggestedTeam:           suggestTeam(category.Category),
		TopCategories:           category.TopCategories,
		Method:                  category.Method,
	}

	logging.Debugf("Classified ticket (request %s): category=%q priority=%s method=%s",
		requestID, result.Category, result.Priority, result.Method)
	return result
}

// Train fits the statistical classifier on labeled examples. Without a
// statistical classifier configured this is a logged no-op.
func (c *TicketClassifier) Train(examples []TrainingExample) error {
	if c.statistical == nil {
		logging.Warnf("Statistical classifier is disabled, ignoring training request")
		return nil
	}
	return c.statistical.Train(examples)
}

// classifyCategory dispatches along the fallback chain: ensemble whenever a
// model-backed component might contribute, plain rules otherwise. An
// ensemble that degenerated to rules-only (every model call failed) is
// replaced by the raw rules prediction so callers see an honest method and
// confidence.
func (c *TicketClassifier) classifyCategory(ctx context.Context, text string) CategoryPrediction {
	haveModel := c.zeroShot != nil || (c.statistical != nil && c.statistical.Trained())
	if !haveModel {
		return c.rules.Classify(text)
	}

	prediction, modelComponents := c.ensemble.Classify(ctx, text)
	if modelComponents == 0 {
		metrics.RecordFallback("ensemble", "rules")
		return c.rules.Classify(text)
	}
	return prediction
}

func (c *TicketClassifier) safeDefault(requestID string) TicketClassification {
	return TicketClassification{
		RequestID:               requestID,
		Category:                c.cfg.DefaultCategory,
		CategoryConfidence:      0.5,
		Priority:                PriorityMedium,
		PriorityConfidence:      0.5,
		Tags:                    []string{},
		EstimatedResolutionTime: defaultResolutionTime,
		SuggestedTeam:           defaultTeam,
		TopCategories:           []CategoryScore{{Category: c.cfg.DefaultCategory, Confidence: 0.5}},
		Method:                  MethodRules,
	}
}

// extractTags derives up to maxTags topic tags from the ticket text.
func extractTags(text string) []string {
	textLower := strings.ToLower(text)
	var tags []string
	for tag, keywords := range tagKeywords {
		for _, keyword := range keywords {
			if strings.Contains(textLower, keyword) {
				tags = append(tags, tag)
				break
			}
		}
	}
	sort.Strings(tags)
	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}
	if tags == nil {
		tags = []string{}
	}
	return tags
}

func estimateResolutionTime(priority Priority, category string) string {
	if eta, ok := resolutionMatrix[resolutionKey{priority, category}]; ok {
		return eta
	}
	return defaultResolutionTime
}

func suggestTeam(category string) string {
	if team, ok := teamByCategory[category]; ok {
		return team
	}
	return defaultTeam
}
