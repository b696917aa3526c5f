package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/ticketmind/ticketmind/pkg/config"
	"github.com/ticketmind/ticketmind/pkg/observability/logging"
	"github.com/ticketmind/ticketmind/pkg/observability/metrics"
)

// TransformerProvider is the transformer-based sentiment backend: it emits a
// label and the probability the model assigns to it.
type TransformerProvider interface {
	Predict(ctx context.Context, text string) (label string, probability float64, err error)
}

// TransformerScorer adapts a TransformerProvider to the Scorer interface.
// The probability is sign-adjusted by label: positive keeps the sign,
// negative flips it, neutral maps to zero. Backend failures degrade to a
// neutral zero result.
type TransformerScorer struct {
	provider TransformerProvider
	timeout  time.Duration
}

// NewTransformerScorer creates the scorer. provider may be nil, in which
// case every score is the neutral fallback.
func NewTransformerScorer(provider TransformerProvider, timeout time.Duration) *TransformerScorer {
	return &TransformerScorer{provider: provider, timeout: timeout}
}

func (s *TransformerScorer) Method() Method { return MethodTransformer }

func (s *TransformerScorer) Score(ctx context.Context, text string) Result {
	if s.provider == nil {
		return neutralResult(MethodTransformer)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	rawLabel, probability, err := s.provider.Predict(ctx, text)
	if err != nil {
		metrics.RecordBackendRequest("sentiment_transformer", "error", time.Since(start).Seconds())
		logging.Warnf("Transformer sentiment backend unavailable, using neutral fallback: %v", err)
		return neutralResult(MethodTransformer)
	}
	metrics.RecordBackendRequest("sentiment_transformer", "ok", time.Since(start).Seconds())

	label := normalizeLabel(rawLabel)
	score := 0.0
	switch label {
	case LabelPositive:
		score = probability
	case LabelNegative:
		score = -probability
	}

	return Result{Label: label, Score: score, Confidence: probability, Method: MethodTransformer}
}

// normalizeLabel folds backend label conventions (LABEL_0/1/2, upper case)
// into the platform's label set. Unknown labels are treated as neutral.
func normalizeLabel(raw string) Label {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "LABEL_0", "NEGATIVE":
		return LabelNegative
	case "LABEL_2", "POSITIVE":
		return LabelPositive
	case "LABEL_1", "NEUTRAL":
		return LabelNeutral
	default:
		return LabelNeutral
	}
}

// LLMTransformerProvider asks an OpenAI-compatible inference endpoint to
// label the text's sentiment.
type LLMTransformerProvider struct {
	client openai.Client
	model  string
}

// NewLLMTransformerProvider creates a provider for the configured endpoint.
func NewLLMTransformerProvider(cfg config.TransformerConfig) *LLMTransformerProvider {
	opts := []option.RequestOption{option.WithBaseURL(cfg.Endpoint)}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	return &LLMTransformerProvider{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
	}
}

const transformerSystemPrompt = `You are a sentiment classifier. Respond with ONLY a JSON object of the form
{"label": "positive"|"neutral"|"negative", "confidence": <number between 0 and 1>}.`

// Predict implements TransformerProvider.
func (p *LLMTransformerProvider) Predict(ctx context.Context, text string) (string, float64, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(transformerSystemPrompt),
			openai.UserMessage(text),
		},
		Temperature:         openai.Float(0),
		MaxCompletionTokens: openai.Int(64),
	})
	if err != nil {
		return "", 0, fmt.Errorf("error calling chat completions: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", 0, fmt.Errorf("no choices returned")
	}

	var parsed struct {
		Label      string  `json:"label"`
		Confidence float64 `json:"confidence"`
	}
	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimSuffix(strings.TrimPrefix(raw, "```"), "```")
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &parsed); err != nil {
		return "", 0, fmt.Errorf("unparseable sentiment response %q: %w", raw, err)
	}
	if parsed.Confidence < 0 {
		parsed.Confidence = 0
	}
	if parsed.Confidence > 1 {
		parsed.Confidence = 1
	}
	return parsed.Label, parsed.Confidence, nil
}
