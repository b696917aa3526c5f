package engine

import (
	"context"
	"fmt"

	"github.com/ticketmind/ticketmind/pkg/classification"
	"github.com/ticketmind/ticketmind/pkg/config"
	"github.com/ticketmind/ticketmind/pkg/observability/logging"
	"github.com/ticketmind/ticketmind/pkg/sentiment"
)

// Engine is the ticket intelligence facade: classification, sentiment, and
// escalation behind one explicitly constructed handle. Build it once at
// process start and pass it to callers; it is safe for concurrent use.
type Engine struct {
	cfg        *config.EngineConfig
	classifier *classification.TicketClassifier
	analyzer   *sentiment.Analyzer
	escalation *sentiment.EscalationPolicy
}

// New builds the engine from configuration, loading lexicons and restoring
// any persisted statistical model.
func New(cfg *config.EngineConfig) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("engine config is required")
	}
	cfg.Normalize()
	logging.Infof("Initializing ticket intelligence engine: %d categories, zero_shot=%v, statistical=%v, transformer=%v",
		len(cfg.Categories), cfg.ZeroShot.Enabled, cfg.Statistical.Enabled, cfg.Sentiment.Transformer.Enabled)

	return &Engine{
		cfg:        cfg,
		classifier: classification.NewTicketClassifier(cfg),
		analyzer:   sentiment.NewAnalyzer(cfg),
		escalation: sentiment.NewEscalationPolicy(cfg.Escalation),
	}, nil
}

// NewWithBackends builds the engine with explicit inference backends instead
// of the configured endpoints. Pass nil for either to run without it.
// Intended for tests and embedders.
func NewWithBackends(cfg *config.EngineConfig, zeroShot classification.ZeroShotProvider, transformer sentiment.TransformerProvider) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("engine config is required")
	}
	cfg.Normalize()
	return &Engine{
		cfg:        cfg,
		classifier: classification.NewTicketClassifierWithProvider(cfg, zeroShot),
		analyzer:   sentiment.NewAnalyzerWithProvider(cfg, transformer),
		escalation: sentiment.NewEscalationPolicy(cfg.Escalation),
	}, nil
}

// ClassifyTicket classifies one ticket. It always returns a usable result;
// total backend failure degrades to the default category and medium
// priority.
func (e *Engine) ClassifyTicket(ctx context.Context, title, description string, metadata map[string]interface{}) classification.TicketClassification {
	return e.classifier.ClassifyTicket(ctx, title, description, metadata)
}

// AnalyzeSentiment analyzes one text with the given method (ensemble when
// empty).
func (e *Engine) AnalyzeSentiment(ctx context.Context, text string, method sentiment.Method) sentiment.Result {
	if method == "" {
		method = sentiment.MethodEnsemble
	}
	return e.analyzer.Analyze(ctx, text, method)
}

// AnalyzeConversation summarizes sentiment over an ordered message sequence.
func (e *Engine) AnalyzeConversation(ctx context.Context, messages []sentiment.Message) sentiment.ConversationSummary {
	return e.analyzer.SummarizeConversation(ctx, messages)
}

// ShouldEscalate decides whether a conversation needs a human agent.
func (e *Engine) ShouldEscalate(summary sentiment.ConversationSummary, messageCount int, recentMessages []string) (bool, string) {
	return e.escalation.Evaluate(summary, messageCount, recentMessages)
}

// Train fits the statistical classifier on labeled tickets. Rare, offline,
// single-writer: do not run concurrent trainings.
func (e *Engine) Train(examples []classification.TrainingExample) error {
	return e.classifier.Train(examples)
}

// Config returns the engine's configuration.
func (e *Engine) Config() *config.EngineConfig {
	return e.cfg
}
