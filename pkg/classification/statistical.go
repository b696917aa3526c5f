package classification

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"

	"github.com/ticketmind/ticketmind/pkg/config"
	"github.com/ticketmind/ticketmind/pkg/observability/logging"
	"github.com/ticketmind/ticketmind/pkg/observability/metrics"
)

const (
	modelFileName      = "classifier_model.json"
	vectorizerFileName = "tfidf_vectorizer.json"
)

// TrainingExample is one labeled ticket used to train the statistical
// classifier.
type TrainingExample struct {
	Text     string
	Category string
}

// trainedModel bundles a fitted vectorizer with its forest so classification
// always sees a consistent pair.
type trainedModel struct {
	vectorizer *Vectorizer
	forest     *Forest
}

// StatisticalClassifier is the optional trainable classifier: TF-IDF
// vectorization plus a bagged forest. It starts untrained and becomes usable
// after Train succeeds or a persisted model is restored. Retraining replaces
// the live model with a single atomic pointer swap, so concurrent Classify
// calls see either the old model or the new one, never a partial state.
type StatisticalClassifier struct {
	cfg        config.StatisticalConfig
	modelsPath string
	model      atomic.Pointer[trainedModel]
}

// NewStatisticalClassifier creates the classifier and restores any persisted
// model artifacts from the models directory.
func NewStatisticalClassifier(cfg config.StatisticalConfig, modelsPath string) *StatisticalClassifier {
	c := &StatisticalClassifier{cfg: cfg, modelsPath: modelsPath}
	if err := c.loadArtifacts(); err != nil {
		logging.Infof("Statistical classifier starting untrained: %v", err)
	} else {
		logging.Infof("Statistical classifier restored from %s", modelsPath)
	}
	return c
}

// Trained reports whether a model is available for classification.
func (c *StatisticalClassifier) Trained() bool {
	return c.model.Load() != nil
}

// Classify predicts the category of the given text. It fails when no trained
// model is present; the caller skips this component in that case.
func (c *StatisticalClassifier) Classify(text string) (CategoryPrediction, error) {
	model := c.model.Load()
	if model == nil {
		return CategoryPrediction{}, fmt.Errorf("statistical classifier is not trained")
	}

	probs := model.forest.PredictProba(model.vectorizer.Transform(text))

	ranked := make([]CategoryScore, len(probs))
	for i, p := range probs {
		ranked[i] = CategoryScore{Category: model.forest.Classes[i], Confidence: p}
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
		Method:        MethodStatistical,
		TopCategories: ranked,
	}, nil
}

// Train fits a fresh vectorizer and forest on the labeled examples, persists
// both artifacts, and swaps the live model. Too few examples is not an error:
// the call logs a warning and leaves any existing model in place.
func (c *StatisticalClassifier) Train(examples []TrainingExample) error {
	if len(examples) < c.cfg.MinTrainingExamples {
		logging.Warnf("Not enough training data (%d < %d), keeping current model",
			len(examples), c.cfg.MinTrainingExamples)
		metrics.RecordTraining("skipped")
		return nil
	}

	texts := make([]string, len(examples))
	labels := make([]string, len(examples))
	for i, ex := range examples {
		texts[i] = ex.Text
		labels[i] = ex.Category
	}

	vectorizer := NewVectorizer(c.cfg.MaxFeatures, c.cfg.MinDocFreq, c.cfg.MaxDocRatio)
	if err := vectorizer.Fit(texts); err != nil {
		metrics.RecordTraining("error")
		return fmt.Errorf("fitting vectorizer: %w", err)
	}

	X := make([][]float64, len(texts))
	for i, text := range texts {
		X[i] = vectorizer.Transform(text)
	}

	forest := NewForest(c.cfg.TreeCount, c.cfg.MaxDepth, c.cfg.Seed)
	if err := forest.Fit(X, labels); err != nil {
		metrics.RecordTraining("error")
		return fmt.Errorf("fitting forest: %w", err)
	}

	// In-sample accuracy, logged for the operator running the training job.
	correct := 0
	for i := range X {
		probs := forest.PredictProba(X[i])
		best := 0
		for j := range probs {
			if probs[j] > probs[best] {
				best = j
			}
		}
		if forest.Classes[best] == labels[i] {
			correct++
		}
	}
	logging.Infof("Statistical classifier trained on %d examples, in-sample accuracy %.3f",
		len(examples), float64(correct)/float64(len(examples)))

	model := &trainedModel{vectorizer: vectorizer, forest: forest}
	if err := c.saveArtifacts(model); err != nil {
		metrics.RecordTraining("error")
		return fmt.Errorf("persisting model artifacts: %w", err)
	}

	c.model.Store(model)
	metrics.RecordTraining("success")
	return nil
}

func (c *StatisticalClassifier) saveArtifacts(model *trainedModel) error {
	if err := os.MkdirAll(c.modelsPath, 0o755); err != nil {
		return err
	}
	forestData, err := json.Marshal(model.forest)
	if err != nil {
		return err
	}
	vectorizerData, err := json.Marshal(model.vectorizer)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(c.modelsPath, modelFileName), forestData, 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(c.modelsPath, vectorizerFileName), vectorizerData, 0o644); err != nil {
		return err
	}
	logging.Infof("Statistical classifier artifacts saved to %s", c.modelsPath)
	return nil
}

func (c *StatisticalClassifier) loadArtifacts() error {
	forestData, err := os.ReadFile(filepath.Join(c.modelsPath, modelFileName))
	if err != nil {
		return err
	}
	vectorizerData, err := os.ReadFile(filepath.Join(c.modelsPath, vectorizerFileName))
	if err != nil {
		return err
	}
	forest := &Forest{}
	if err := json.Unmarshal(forestData, forest); err != nil {
		return fmt.Errorf("decoding model artifact: %w", err)
	}
	vectorizer := &Vectorizer{}
	if err := json.Unmarshal(vectorizerData, vectorizer); err != nil {
		return fmt.Errorf("decoding vectorizer artifact: %w", err)
	}
	if !forest.Fitted() || !vectorizer.Fitted() {
		return fmt.Errorf("persisted artifacts are incomplete")
	}
	c.model.Store(&trainedModel{vectorizer: vectorizer, forest: forest})
	return nil
}
