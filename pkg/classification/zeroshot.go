package classification

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/ticketmind/ticketmind/pkg/config"
	"github.com/ticketmind/ticketmind/pkg/observability/metrics"
)

// ZeroShotProvider scores a text against an arbitrary candidate label set
// without task-specific training. Implementations talk to an external
// inference backend and may fail; callers fall back to cheaper classifiers.
type ZeroShotProvider interface {
	Score(ctx context.Context, text string, candidateLabels []string) ([]CategoryScore, error)
}

// ZeroShotClassifier wraps a provider with a per-call timeout and converts
// label rankings into category predictions.
type ZeroShotClassifier struct {
	provider ZeroShotProvider
	timeout  time.Duration
}

// NewZeroShotClassifier creates a classifier over the given provider.
func NewZeroShotClassifier(provider ZeroShotProvider, timeout time.Duration) *ZeroShotClassifier {
	return &ZeroShotClassifier{provider: provider, timeout: timeout}
}

// Classify ranks the candidate labels for the text. The top label's score
// becomes the confidence; scores sum to at most 1 but are not forced to.
func (c *ZeroShotClassifier) Classify(ctx context.Context, text string, candidateLabels []string) (CategoryPrediction, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	scores, err := c.provider.Score(ctx, text, candidateLabels)
	if err != nil {
		metrics.RecordBackendRequest("zero_shot", "error", time.Since(start).Seconds())
		return CategoryPrediction{}, fmt.Errorf("zero-shot backend: %w", err)
	}
	metrics.RecordBackendRequest("zero_shot", "ok", time.Since(start).Seconds())

	if len(scores) == 0 {
		return CategoryPrediction{}, fmt.Errorf("zero-shot backend returned no labels")
	}

	ranked := append([]CategoryScore(nil), scores...)
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
		Method:        MethodZeroShot,
		TopCategories: ranked,
	}, nil
}

// LLMZeroShotProvider performs zero-shot classification by prompting an
// OpenAI-compatible inference endpoint (e.g. a vLLM deployment) for per-label
// scores.
type LLMZeroShotProvider struct {
	client openai.Client
	model  string
}

// NewLLMZeroShotProvider creates a provider for the configured endpoint.
func NewLLMZeroShotProvider(cfg config.ZeroShotConfig) *LLMZeroShotProvider {
	opts := []option.RequestOption{option.WithBaseURL(cfg.Endpoint)}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	return &LLMZeroShotProvider{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
	}
}

const zeroShotSystemPrompt = `You are a text classifier. Given a text and a list of candidate labels,
respond with ONLY a JSON object mapping every candidate label to a score
between 0 and 1 indicating how well the label fits the text. Scores across
labels should sum to 1.`

// Score implements ZeroShotProvider.
func (p *LLMZeroShotProvider) Score(ctx context.Context, text string, candidateLabels []string) ([]CategoryScore, error) {
	user := fmt.Sprintf("Labels: %s\n\nText: %s", strings.Join(candidateLabels, ", "), text)

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(zeroShotSystemPrompt),
			openai.UserMessage(user),
		},
		Temperature:         openai.Float(0),
		MaxCompletionTokens: openai.Int(256),
	})
	if err != nil {
		return nil, fmt.Errorf("error calling chat completions: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned")
	}

	raw := stripCodeFence(resp.Choices[0].Message.Content)
	parsed := map[string]float64{}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("unparseable label scores %q: %w", raw, err)
	}

	scores := make([]CategoryScore, 0, len(candidateLabels))
	for _, label := range candidateLabels {
		score, ok := parsed[label]
		if !ok {
			continue
		}
		if score < 0 {
			score = 0
		}
		if score > 1 {
			score = 1
		}
		scores = append(scores, CategoryScore{Category: label, Confidence: score})
	}
	if len(scores) == 0 {
		return nil, fmt.Errorf("backend scored none of the candidate labels")
	}
	return scores, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
