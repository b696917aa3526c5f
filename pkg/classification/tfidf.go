package classification

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
)

// Vectorizer converts text into l2-normalized TF-IDF vectors over a
// vocabulary of unigrams and bigrams. All fields are exported so a fitted
// vectorizer round-trips through JSON persistence.
type Vectorizer struct {
	// Vocabulary maps a term to its feature index.
	Vocabulary map[string]int `json:"vocabulary"`

	// IDF holds the inverse document frequency per feature index.
	IDF []float64 `json:"idf"`

	MaxFeatures int     `json:"max_features"`
	MinDocFreq  int     `json:"min_doc_freq"`
	MaxDocRatio float64 `json:"max_doc_ratio"`
}

// NewVectorizer creates an unfitted vectorizer.
func NewVectorizer(maxFeatures, minDocFreq int, maxDocRatio float64) *Vectorizer {
	return &Vectorizer{
		MaxFeatures: maxFeatures,
		MinDocFreq:  minDocFreq,
		MaxDocRatio: maxDocRatio,
	}
}

// Fitted reports whether the vectorizer has a vocabulary.
func (v *Vectorizer) Fitted() bool {
	return len(v.Vocabulary) > 0
}

// Fit builds the vocabulary and IDF weights from the given documents.
func (v *Vectorizer) Fit(texts []string) error {
	if len(texts) == 0 {
		return fmt.Errorf("no documents to fit")
	}

	docFreq := make(map[string]int)
	for _, text := range texts {
		seen := make(map[string]struct{})
		for _, term := range v.terms(text) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			docFreq[term]++
		}
	}

	n := len(texts)
	maxDF := int(v.MaxDocRatio * float64(n))
	if maxDF < v.MinDocFreq {
		// Tiny corpora would otherwise filter out everything.
		maxDF = n
	}

	type termFreq struct {
		term string
		df   int
	}
	candidates := make([]termFreq, 0, len(docFreq))
	for term, df := range docFreq {
		if df < v.MinDocFreq || df > maxDF {
			continue
		}
		candidates = append(candidates, termFreq{term, df})
	}
	if len(candidates) == 0 {
		return fmt.Errorf("no terms survived document-frequency filtering")
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].df != candidates[j].df {
			return candidates[i].df > candidates[j].df
		}
		return candidates[i].term < candidates[j].term
	})
	if v.MaxFeatures > 0 && len(candidates) > v.MaxFeatures {
		candidates = candidates[:v.MaxFeatures]
	}

	v.Vocabulary = make(map[string]int, len(candidates))
	v.IDF = make([]float64, len(candidates))
	for i, c := range candidates {
		v.Vocabulary[c.term] = i
		// Smoothed IDF, same formulation sklearn uses.
		v.IDF[i] = math.Log(float64(1+n)/float64(1+c.df)) + 1
	}
	return nil
}

// Transform converts one document into a dense, l2-normalized TF-IDF vector.
func (v *Vectorizer) Transform(text string) []float64 {
	vec := make([]float64, len(v.IDF))
	if !v.Fitted() {
		return vec
	}
	for _, term := range v.terms(text) {
		if idx, ok := v.Vocabulary[term]; ok {
			vec[idx]++
		}
	}
	var norm float64
	for i := range vec {
		vec[i] *= v.IDF[i]
		norm += vec[i] * vec[i]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// terms produces lowercased unigrams and bigrams.
func (v *Vectorizer) terms(text string) []string {
	tokens := tokenize(text)
	terms := make([]string, 0, 2*len(tokens))
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}
