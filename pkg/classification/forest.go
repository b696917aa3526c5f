package classification

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// forestNode is one node of a decision tree. Leaves have Feature == -1 and
// carry a class distribution; internal nodes route on Feature <= Threshold.
type forestNode struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold,omitempty"`
	Left      int       `json:"left,omitempty"`
	Right     int       `json:"right,omitempty"`
	Dist      []float64 `json:"dist,omitempty"`
}

type decisionTree struct {
	Nodes []forestNode `json:"nodes"`
}

// Forest is a bagged ensemble of decision trees over dense feature vectors.
// Each tree is grown on a bootstrap sample with a random feature subset per
// split. Exported fields round-trip through JSON persistence.
type Forest struct {
	Classes   []string       `json:"classes"`
	Trees     []decisionTree `json:"trees"`
	TreeCount int            `json:"tree_count"`
	MaxDepth  int            `json:"max_depth"`
	Seed      int64          `json:"seed"`
}

// NewForest creates an unfitted forest.
func NewForest(treeCount, maxDepth int, seed int64) *Forest {
	return &Forest{TreeCount: treeCount, MaxDepth: maxDepth, Seed: seed}
}

// Fitted reports whether the forest has been trained.
func (f *Forest) Fitted() bool {
	return len(f.Trees) > 0 && len(f.Classes) > 0
}

// Fit grows the forest from feature vectors X and class labels y.
func (f *Forest) Fit(X [][]float64, y []string) error {
	if len(X) == 0 || len(X) != len(y) {
		return fmt.Errorf("invalid training set: %d vectors, %d labels", len(X), len(y))
	}

	classIndex := make(map[string]int)
	f.Classes = nil
	for _, label := range y {
		if _, ok := classIndex[label]; !ok {
			classIndex[label] = len(f.Classes)
			f.Classes = append(f.Classes, label)
		}
	}
	labels := make([]int, len(y))
	for i, label := range y {
		labels[i] = classIndex[label]
	}

	f.Trees = make([]decisionTree, f.TreeCount)
	for t := 0; t < f.TreeCount; t++ {
		rng := rand.New(rand.NewSource(f.Seed + int64(t)))
		samples := make([]int, len(X))
		for i := range samples {
			samples[i] = rng.Intn(len(X))
		}
		builder := &treeBuilder{
			X:          X,
			labels:     labels,
			numClasses: len(f.Classes),
			maxDepth:   f.MaxDepth,
			rng:        rng,
		}
		builder.build(samples, 0)
		f.Trees[t] = decisionTree{Nodes: builder.nodes}
	}
	return nil
}

// PredictProba averages the leaf class distributions across all trees.
func (f *Forest) PredictProba(x []float64) []float64 {
	probs := make([]float64, len(f.Classes))
	if !f.Fitted() {
		return probs
	}
	for _, tree := range f.Trees {
		dist := tree.classify(x)
		for i, p := range dist {
			probs[i] += p
		}
	}
	for i := range probs {
		probs[i] /= float64(len(f.Trees))
	}
	return probs
}

func (t *decisionTree) classify(x []float64) []float64 {
	idx := 0
	for {
		node := t.Nodes[idx]
		if node.Feature < 0 {
			return node.Dist
		}
		value := 0.0
		if node.Feature < len(x) {
			value = x[node.Feature]
		}
		if value <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
}

type treeBuilder struct {
	X          [][]float64
	labels     []int
	numClasses int
	maxDepth   int
	rng        *rand.Rand
	nodes      []forestNode
}

// build grows a subtree over the given sample indices and returns its root
// node index.
func (b *treeBuilder) build(samples []int, depth int) int {
	dist := b.distribution(samples)

	if depth >= b.maxDepth || len(samples) < 2 || isPure(dist) {
		return b.leaf(dist)
	}

	feature, threshold, ok := b.bestSplit(samples)
	if !ok {
		return b.leaf(dist)
	}

	var left, right []int
	for _, s := range samples {
		if b.X[s][feature] <= threshold {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return b.leaf(dist)
	}

	idx := len(b.nodes)
	b.nodes = append(b.nodes, forestNode{Feature: feature, Threshold: threshold})
	leftIdx := b.build(left, depth+1)
	rightIdx := b.build(right, depth+1)
	b.nodes[idx].Left = leftIdx
	b.nodes[idx].Right = rightIdx
	return idx
}

func (b *treeBuilder) leaf(dist []float64) int {
	idx := len(b.nodes)
	b.nodes = append(b.nodes, forestNode{Feature: -1, Dist: dist})
	return idx
}

func (b *treeBuilder) distribution(samples []int) []float64 {
	dist := make([]float64, b.numClasses)
	for _, s := range samples {
		dist[b.labels[s]]++
	}
	for i := range dist {
		dist[i] /= float64(len(samples))
	}
	return dist
}

// bestSplit evaluates a sqrt(d) random feature subset and picks the
// threshold minimizing weighted Gini impurity.
func (b *treeBuilder) bestSplit(samples []int) (int, float64, bool) {
	numFeatures := len(b.X[samples[0]])
	if numFeatures == 0 {
		return 0, 0, false
	}
	k := int(math.Sqrt(float64(numFeatures)))
	if k < 1 {
		k = 1
	}

	parentGini := gini(b.distribution(samples))
	bestGini := parentGini
	bestFeature, bestThreshold := -1, 0.0

	type valueLabel struct {
		value float64
		label int
	}
	for i := 0; i < k; i++ {
		feature := b.rng.Intn(numFeatures)

		pairs := make([]valueLabel, len(samples))
		for j, s := range samples {
			pairs[j] = valueLabel{b.X[s][feature], b.labels[s]}
		}
		sort.Slice(pairs, func(a, c int) bool { return pairs[a].value < pairs[c].value })
		if pairs[0].value == pairs[len(pairs)-1].value {
			continue
		}

		leftCounts := make([]float64, b.numClasses)
		rightCounts := make([]float64, b.numClasses)
		for _, p := range pairs {
			rightCounts[p.label]++
		}
		total := float64(len(pairs))

		for j := 0; j < len(pairs)-1; j++ {
			leftCounts[pairs[j].label]++
			rightCounts[pairs[j].label]--
			if pairs[j].value == pairs[j+1].value {
				continue
			}
			nLeft := float64(j + 1)
			nRight := total - nLeft
			weighted := nLeft/total*giniCounts(leftCounts, nLeft) +
				nRight/total*giniCounts(rightCounts, nRight)
			if weighted < bestGini {
				bestGini = weighted
				bestFeature = feature
				bestThreshold = (pairs[j].value + pairs[j+1].value) / 2
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}

func gini(dist []float64) float64 {
	g := 1.0
	for _, p := range dist {
		g -= p * p
	}
	return g
}

func giniCounts(counts []float64, n float64) float64 {
	g := 1.0
	for _, c := range counts {
		p := c / n
		g -= p * p
	}
	return g
}

func isPure(dist []float64) bool {
	for _, p := range dist {
		if p == 1 {
			return true
		}
	}
	return false
}
