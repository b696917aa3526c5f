package config

import (
	"fmt"
)

// EngineConfig is the root configuration for the ticket intelligence engine.
type EngineConfig struct {
	// Categories is the closed set of ticket categories. Every category
	// prediction is drawn from this list, never free text.
	Categories []string `yaml:"categories"`

	// DefaultCategory is returned when no classifier produces a signal.
	// Must be a member of Categories.
	DefaultCategory string `yaml:"default_category,omitempty"`

	// ModelsPath is the directory where trained model artifacts are persisted.
	ModelsPath string `yaml:"models_path,omitempty"`

	// ZeroShot configures the zero-shot classification backend.
	ZeroShot ZeroShotConfig `yaml:"zero_shot"`

	// Statistical configures the trainable TF-IDF + forest classifier.
	Statistical StatisticalConfig `yaml:"statistical"`

	// Ensemble configures the category ensemble combiner.
	Ensemble EnsembleConfig `yaml:"ensemble"`

	// Sentiment configures the sentiment analysis ensemble.
	Sentiment SentimentConfig `yaml:"sentiment"`

	// Escalation configures the conversation escalation check.
	Escalation EscalationConfig `yaml:"escalation"`

	// Logging configures the process logger.
	Logging LoggingConfig `yaml:"logging"`
}

// ZeroShotConfig configures the zero-shot classification backend, an
// OpenAI-compatible chat completions endpoint.
type ZeroShotConfig struct {
	Enabled bool `yaml:"enabled"`

	// Endpoint is the base URL of the inference server (e.g. a vLLM
	// deployment serving an instruction-tuned model).
	Endpoint string `yaml:"endpoint,omitempty"`

	// Model is the model name passed to the endpoint.
	Model string `yaml:"model,omitempty"`

	// APIKey is the bearer token for the endpoint, if it requires one.
	APIKey string `yaml:"api_key,omitempty"`

	// TimeoutSeconds bounds each backend call. On timeout the caller falls
	// back to the next cheaper classifier. Default: 10.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`
}

// StatisticalConfig configures the trainable classifier.
type StatisticalConfig struct {
	Enabled bool `yaml:"enabled"`

	// MinTrainingExamples is the minimum number of labeled examples
	// required before Train will fit a model. Default: 20.
	MinTrainingExamples int `yaml:"min_training_examples,omitempty"`

	// MaxFeatures caps the TF-IDF vocabulary size. Default: 5000.
	MaxFeatures int `yaml:"max_features,omitempty"`

	// MinDocFreq drops terms appearing in fewer documents. Default: 2.
	MinDocFreq int `yaml:"min_doc_freq,omitempty"`

	// MaxDocRatio drops terms appearing in more than this fraction of
	// documents. Default: 0.8.
	MaxDocRatio float64 `yaml:"max_doc_ratio,omitempty"`

	// TreeCount is the number of trees in the forest. Default: 120.
	TreeCount int `yaml:"tree_count,omitempty"`

	// MaxDepth bounds tree depth. Default: 24.
	MaxDepth int `yaml:"max_depth,omitempty"`

	// Seed makes training deterministic. Default: 42.
	Seed int64 `yaml:"seed,omitempty"`
}

// EnsembleWeights are the fixed component weights of the category ensemble.
// They are intentionally NOT renormalized when a component is unavailable;
// see the design notes before changing this.
type EnsembleWeights struct {
	ZeroShot    float64 `yaml:"zero_shot"`
	Statistical float64 `yaml:"statistical"`
	Rules       float64 `yaml:"rules"`
}

// EnsembleConfig configures the category ensemble combiner.
type EnsembleConfig struct {
	Weights EnsembleWeights `yaml:"weights"`
}

// TransformerConfig configures the transformer sentiment backend.
type TransformerConfig struct {
	Enabled bool `yaml:"enabled"`

	// Endpoint is the base URL of the inference server.
	Endpoint string `yaml:"endpoint,omitempty"`

	// Model is the model name passed to the endpoint.
	Model string `yaml:"model,omitempty"`

	// APIKey is the bearer token for the endpoint, if it requires one.
	APIKey string `yaml:"api_key,omitempty"`

	// TimeoutSeconds bounds each backend call. Default: 10.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`
}

// SentimentWeights are the component weights of the sentiment ensemble.
// Unlike the category ensemble these are normalized by the sum of active
// weights, so the ensemble score is a convex combination.
type SentimentWeights struct {
	Transformer float64 `yaml:"transformer"`
	Vader       float64 `yaml:"vader"`
	Polarity    float64 `yaml:"polarity"`
}

// SentimentConfig configures the sentiment ensemble and aggregators.
type SentimentConfig struct {
	Transformer TransformerConfig `yaml:"transformer"`

	Weights SentimentWeights `yaml:"weights"`

	// MaxConcurrent bounds parallel per-message analysis when summarizing
	// a conversation. Default: 4.
	MaxConcurrent int `yaml:"max_concurrent,omitempty"`
}

// EscalationConfig configures the conversation escalation check.
type EscalationConfig struct {
	// MaxMessages is the conversation length above which escalation
	// triggers regardless of sentiment. Default: 10.
	MaxMessages int `yaml:"max_messages,omitempty"`

	// ScoreThreshold is the average sentiment score below which a negative
	// conversation escalates. Default: -0.5.
	ScoreThreshold float64 `yaml:"score_threshold,omitempty"`

	// Keywords trigger escalation when present in recent messages.
	Keywords []string `yaml:"keywords,omitempty"`

	// RecentWindow is how many of the latest messages are scanned for
	// keywords. Default: 5.
	RecentWindow int `yaml:"recent_window,omitempty"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error. Default: info.
	Level string `yaml:"level,omitempty"`
}

// DefaultCategories matches the platform's stock category set.
var DefaultCategories = []string{
	"Technical Issue",
	"Billing",
	"Account Management",
	"Product Inquiry",
	"Feature Request",
	"Bug Report",
	"General Support",
}

// DefaultEscalationKeywords are phrases customers use to ask for a human.
var DefaultEscalationKeywords = []string{
	"agent", "human", "person", "manager", "supervisor", "speak to someone",
}

// Default returns a fully-populated configuration with stock values.
func Default() *EngineConfig {
	cfg := &EngineConfig{}
	cfg.applyDefaults()
	return cfg
}

// Normalize fills every unset field with its stock value. Parse does this for
// loaded files; constructors taking a caller-built config call it so zero
// values (timeouts, concurrency bounds) never reach the components.
func (c *EngineConfig) Normalize() {
	c.applyDefaults()
}

func (c *EngineConfig) applyDefaults() {
	if len(c.Categories) == 0 {
		c.Categories = append([]string(nil), DefaultCategories...)
	}
	if c.DefaultCategory == "" {
		c.DefaultCategory = "General Support"
	}
	if c.ModelsPath == "" {
		c.ModelsPath = "ml_models/saved_models"
	}
	if c.ZeroShot.TimeoutSeconds <= 0 {
		c.ZeroShot.TimeoutSeconds = 10
	}
	if c.Statistical.MinTrainingExamples <= 0 {
		c.Statistical.MinTrainingExamples = 20
	}
	if c.Statistical.MaxFeatures <= 0 {
		c.Statistical.MaxFeatures = 5000
	}
	if c.Statistical.MinDocFreq <= 0 {
		c.Statistical.MinDocFreq = 2
	}
	if c.Statistical.MaxDocRatio <= 0 || c.Statistical.MaxDocRatio > 1 {
		c.Statistical.MaxDocRatio = 0.8
	}
	if c.Statistical.TreeCount <= 0 {
		c.Statistical.TreeCount = 120
	}
	if c.Statistical.MaxDepth <= 0 {
		c.Statistical.MaxDepth = 24
	}
	if c.Statistical.Seed == 0 {
		c.Statistical.Seed = 42
	}
	w := &c.Ensemble.Weights
	if w.ZeroShot == 0 && w.Statistical == 0 && w.Rules == 0 {
		w.ZeroShot, w.Statistical, w.Rules = 0.6, 0.3, 0.1
	}
	sw := &c.Sentiment.Weights
	if sw.Transformer == 0 && sw.Vader == 0 && sw.Polarity == 0 {
		sw.Transformer, sw.Vader, sw.Polarity = 0.5, 0.3, 0.2
	}
	if c.Sentiment.Transformer.TimeoutSeconds <= 0 {
		c.Sentiment.Transformer.TimeoutSeconds = 10
	}
	if c.Sentiment.MaxConcurrent <= 0 {
		c.Sentiment.MaxConcurrent = 4
	}
	if c.Escalation.MaxMessages <= 0 {
		c.Escalation.MaxMessages = 10
	}
	if c.Escalation.ScoreThreshold == 0 {
		c.Escalation.ScoreThreshold = -0.5
	}
	if len(c.Escalation.Keywords) == 0 {
		c.Escalation.Keywords = append([]string(nil), DefaultEscalationKeywords...)
	}
	if c.Escalation.RecentWindow <= 0 {
		c.Escalation.RecentWindow = 5
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func validateConfigStructure(c *EngineConfig) error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("at least one category is required")
	}
	found := false
	for _, cat := range c.Categories {
		if cat == c.DefaultCategory {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("default_category %q is not in categories", c.DefaultCategory)
	}
	if c.ZeroShot.Enabled && c.ZeroShot.Endpoint == "" {
		return fmt.Errorf("zero_shot.endpoint is required when zero_shot.enabled is true")
	}
	if c.Sentiment.Transformer.Enabled && c.Sentiment.Transformer.Endpoint == "" {
		return fmt.Errorf("sentiment.transformer.endpoint is required when enabled")
	}
	return nil
}
