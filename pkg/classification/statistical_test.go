package classification

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketmind/ticketmind/pkg/config"
)

func testStatisticalConfig() config.StatisticalConfig {
	return config.StatisticalConfig{
		Enabled:             true,
		MinTrainingExamples: 5,
		MaxFeatures:         200,
		MinDocFreq:          1,
		MaxDocRatio:         0.9,
		TreeCount:           15,
		MaxDepth:            8,
		Seed:                7,
	}
}

func testTrainingExamples() []TrainingExample {
	var examples []TrainingExample
	for i := 0; i < 12; i++ {
		examples = append(examples,
			TrainingExample{Text: "refund invoice payment charge subscription", Category: "Billing"},
			TrainingExample{Text: "error crash bug timeout broken", Category: "Technical Issue"},
		)
	}
	return examples
}

func TestStatisticalClassifierTrainAndClassify(t *testing.T) {
	c := NewStatisticalClassifier(testStatisticalConfig(), t.TempDir())
	require.False(t, c.Trained())

	_, err := c.Classify("refund please")
	assert.Error(t, err)

	require.NoError(t, c.Train(testTrainingExamples()))
	require.True(t, c.Trained())

	pred, err := c.Classify("refund invoice payment charge subscription")
	require.NoError(t, err)
	assert.Equal(t, "Billing", pred.Category)
	assert.Equal(t, MethodStatistical, pred.Method)
	assert.Greater(t, pred.Confidence, 0.5)

	pred, err = c.Classify("error crash bug timeout broken")
	require.NoError(t, err)
	assert.Equal(t, "Technical Issue", pred.Category)
}

func TestStatisticalClassifierTooFewExamples(t *testing.T) {
	c := NewStatisticalClassifier(testStatisticalConfig(), t.TempDir())

	// Below the minimum the call succeeds but trains nothing.
	err := c.Train(testTrainingExamples()[:3])
	require.NoError(t, err)
	assert.False(t, c.Trained())
}

func TestStatisticalClassifierPersistence(t *testing.T) {
	dir := t.TempDir()

	c := NewStatisticalClassifier(testStatisticalConfig(), dir)
	require.NoError(t, c.Train(testTrainingExamples()))

	for _, name := range []string{modelFileName, vectorizerFileName} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "artifact %s should be persisted", name)
	}

	// A fresh classifier over the same directory restores the model.
	restored := NewStatisticalClassifier(testStatisticalConfig(), dir)
	require.True(t, restored.Trained())

	pred, err := restored.Classify("refund invoice payment charge subscription")
	require.NoError(t, err)
	assert.Equal(t, "Billing", pred.Category)
}

func TestStatisticalClassifierIgnoresCorruptArtifacts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, modelFileName), []byte("{not json"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, vectorizerFileName), []byte("{}"), 0o644))

	c := NewStatisticalClassifier(testStatisticalConfig(), dir)
	assert.False(t, c.Trained())
}
