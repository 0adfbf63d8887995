package classifier

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"
)

// tokenPattern mirrors the vectorizer the model was trained with: runs of
// two or more word characters.
var tokenPattern = regexp.MustCompile(`\w\w+`)

// artifact is the on-disk JSON export of the trained TF-IDF + multinomial
// naive Bayes pipeline.
type artifact struct {
	ModelType      string             `json:"model_type"`
	Classes        []string           `json:"classes"`
	ClassLogPrior  []float64          `json:"class_log_prior"`
	Vocabulary     map[string]int     `json:"vocabulary"`
	IDF            []float64          `json:"idf"`
	FeatureLogProb [][]float64        `json:"feature_log_prob"`
	StopWords      []string           `json:"stop_words"`
	NgramMax       int                `json:"ngram_max"`
}

// Pipeline evaluates the exported spam model. It is immutable after Load
// and safe for concurrent Predict calls.
type Pipeline struct {
	modelType      string
	classes        []string
	classLogPrior  []float64
	vocabulary     map[string]int
	idf            []float64
	featureLogProb [][]float64
	stopWords      map[string]struct{}
	ngramMax       int
	spamIndex      int
}

// Load reads and validates a model artifact from path.
func Load(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}

	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to decode model artifact: %w", err)
	}

	if len(a.Classes) != 2 {
		return nil, fmt.Errorf("model artifact must have exactly 2 classes, got %d", len(a.Classes))
	}
	if len(a.ClassLogPrior) != len(a.Classes) {
		return nil, fmt.Errorf("class_log_prior length %d does not match %d classes", len(a.ClassLogPrior), len(a.Classes))
	}
	if len(a.FeatureLogProb) != len(a.Classes) {
		return nil, fmt.Errorf("feature_log_prob has %d rows, expected %d", len(a.FeatureLogProb), len(a.Classes))
	}
	nFeatures := len(a.Vocabulary)
	if len(a.IDF) != nFeatures {
		return nil, fmt.Errorf("idf length %d does not match vocabulary size %d", len(a.IDF), nFeatures)
	}
	for i, row := range a.FeatureLogProb {
		if len(row) != nFeatures {
			return nil, fmt.Errorf("feature_log_prob row %d has length %d, expected %d", i, len(row), nFeatures)
		}
	}
	for term, idx := range a.Vocabulary {
		if idx < 0 || idx >= nFeatures {
			return nil, fmt.Errorf("vocabulary index %d for %q out of range", idx, term)
		}
	}

	spamIndex := -1
	for i, c := range a.Classes {
		if c == "spam" {
			spamIndex = i
		}
	}
	if spamIndex < 0 {
		return nil, fmt.Errorf("model artifact has no spam class (classes: %v)", a.Classes)
	}

	ngramMax := a.NgramMax
	if ngramMax < 1 {
		ngramMax = 1
	}

	stopWords := make(map[string]struct{}, len(a.StopWords))
	for _, w := range a.StopWords {
		stopWords[w] = struct{}{}
	}

	return &Pipeline{
		modelType:      a.ModelType,
		classes:        a.Classes,
		classLogPrior:  a.ClassLogPrior,
		vocabulary:     a.Vocabulary,
		idf:            a.IDF,
		featureLogProb: a.FeatureLogProb,
		stopWords:      stopWords,
		ngramMax:       ngramMax,
		spamIndex:      spamIndex,
	}, nil
}

// ModelType reports the classifier family recorded in the artifact.
func (p *Pipeline) ModelType() string {
	return p.modelType
}

// NumFeatures reports the vocabulary size.
func (p *Pipeline) NumFeatures() int {
	return len(p.vocabulary)
}

// Predict maps text to a two-class probability pair. The second value is
// the spam probability; both are in [0,1] and sum to 1.
func (p *Pipeline) Predict(text string) (safeProb, spamProb float64, err error) {
	features := p.vectorize(text)

	// Posterior log-scores per class, normalized with log-sum-exp. A text
	// with no in-vocabulary terms falls back to the class priors.
	scores := make([]float64, len(p.classes))
	for c := range p.classes {
		score := p.classLogPrior[c]
		for idx, x := range features {
			score += x * p.featureLogProb[c][idx]
		}
		scores[c] = score
	}

	maxScore := scores[0]
	for _, s := range scores[1:] {
		if s > maxScore {
			maxScore = s
		}
	}
	var sum float64
	for i, s := range scores {
		scores[i] = math.Exp(s - maxScore)
		sum += scores[i]
	}

	spamProb = scores[p.spamIndex] / sum
	safeProb = 1 - spamProb
	return safeProb, spamProb, nil
}

// vectorize produces the sparse TF-IDF vector for text: stop-word filtered
// unigrams and bigrams, term-frequency weighted by IDF, L2-normalized.
func (p *Pipeline) vectorize(text string) map[int]float64 {
	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)
	kept := tokens[:0]
	for _, tok := range tokens {
		if _, stop := p.stopWords[tok]; !stop {
			kept = append(kept, tok)
		}
	}

	counts := make(map[int]float64)
	for _, tok := range kept {
		if idx, ok := p.vocabulary[tok]; ok {
			counts[idx]++
		}
	}
	if p.ngramMax >= 2 {
		for i := 0; i+1 < len(kept); i++ {
			if idx, ok := p.vocabulary[kept[i]+" "+kept[i+1]]; ok {
				counts[idx]++
			}
		}
	}

	var norm float64
	for idx, tf := range counts {
		counts[idx] = tf * p.idf[idx]
		norm += counts[idx] * counts[idx]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range counts {
			counts[idx] /= norm
		}
	}
	return counts
}
