package classification

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func separableTrainingSet() ([][]float64, []string) {
	var X [][]float64
	var y []string
	for i := 0; i < 10; i++ {
		X = append(X, []float64{0.1, 0.9})
		y = append(y, "billing")
		X = append(X, []float64{0.9, 0.1})
		y = append(y, "technical")
	}
	return X, y
}

func argmax(probs []float64) int {
	best := 0
	for i := range probs {
		if probs[i] > probs[best] {
			best = i
		}
	}
	return best
}

func TestForestFitAndPredict(t *testing.T) {
	X, y := separableTrainingSet()

	forest := NewForest(15, 8, 7)
	require.NoError(t, forest.Fit(X, y))
	require.True(t, forest.Fitted())
	assert.ElementsMatch(t, []string{"billing", "technical"}, forest.Classes)

	probs := forest.PredictProba([]float64{0.05, 0.95})
	assert.Equal(t, "billing", forest.Classes[argmax(probs)])

	probs = forest.PredictProba([]float64{0.95, 0.05})
	assert.Equal(t, "technical", forest.Classes[argmax(probs)])

	var sum float64
	for _, p := range probs {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestForestFitRejectsMismatchedInput(t *testing.T) {
	forest := NewForest(5, 4, 1)
	assert.Error(t, forest.Fit(nil, nil))
	assert.Error(t, forest.Fit([][]float64{{1}}, []string{"a", "b"}))
}

func TestForestDeterministicForSeed(t *testing.T) {
	X, y := separableTrainingSet()

	a := NewForest(10, 6, 42)
	b := NewForest(10, 6, 42)
	require.NoError(t, a.Fit(X, y))
	require.NoError(t, b.Fit(X, y))

	aJSON, err := json.Marshal(a)
	require.NoError(t, err)
	bJSON, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, aJSON, bJSON)
}

func TestForestJSONRoundTrip(t *testing.T) {
	X, y := separableTrainingSet()

	forest := NewForest(10, 6, 3)
	require.NoError(t, forest.Fit(X, y))

	data, err := json.Marshal(forest)
	require.NoError(t, err)

	restored := &Forest{}
	require.NoError(t, json.Unmarshal(data, restored))
	require.True(t, restored.Fitted())

	x := []float64{0.2, 0.8}
	assert.Equal(t, forest.PredictProba(x), restored.PredictProba(x))
}
