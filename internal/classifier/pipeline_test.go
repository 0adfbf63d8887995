package classifier

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArtifact() artifact {
	return artifact{
		ModelType:     "MultinomialNB",
		Classes:       []string{"safe", "spam"},
		ClassLogPrior: []float64{math.Log(0.7), math.Log(0.3)},
		Vocabulary: map[string]int{
			"winner":     0,
			"prize":      1,
			"click":      2,
			"free":       3,
			"meeting":    4,
			"follow":     5,
			"thanks":     6,
			"project":    7,
			"free prize": 8,
		},
		IDF: []float64{3.1, 3.4, 2.8, 2.5, 3.0, 2.9, 2.6, 3.2, 4.7},
		FeatureLogProb: [][]float64{
			{-9.0, -9.1, -8.8, -8.9, -3.6, -3.8, -3.5, -3.9, -9.4},
			{-3.5, -3.7, -3.9, -3.4, -9.2, -9.0, -8.9, -9.1, -3.8},
		},
		StopWords: []string{"the", "a", "to", "you", "for"},
		NgramMax:  2,
	}
}

func writeArtifact(t *testing.T, a artifact) string {
	t.Helper()
	data, err := json.Marshal(a)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "spam_model.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "decode")
}

func TestLoadValidatesShape(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*artifact)
	}{
		{"wrong class count", func(a *artifact) { a.Classes = []string{"spam"} }},
		{"prior length mismatch", func(a *artifact) { a.ClassLogPrior = []float64{-0.5} }},
		{"idf length mismatch", func(a *artifact) { a.IDF = a.IDF[:3] }},
		{"feature row length mismatch", func(a *artifact) { a.FeatureLogProb[1] = a.FeatureLogProb[1][:2] }},
		{"no spam class", func(a *artifact) { a.Classes = []string{"ham", "eggs"} }},
		{"vocabulary index out of range", func(a *artifact) { a.Vocabulary["winner"] = 99 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testArtifact()
			tt.mutate(&a)
			_, err := Load(writeArtifact(t, a))
			assert.Error(t, err)
		})
	}
}

func TestPredictProbabilitiesSumToOne(t *testing.T) {
	pipeline, err := Load(writeArtifact(t, testArtifact()))
	require.NoError(t, err)

	texts := []string{
		"WINNER free prize click now",
		"thanks for the project meeting follow up",
		"nothing in vocabulary whatsoever",
	}
	for _, text := range texts {
		safeProb, spamProb, err := pipeline.Predict(text)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, safeProb+spamProb, 1e-6, "text %q", text)
		assert.GreaterOrEqual(t, spamProb, 0.0)
		assert.LessOrEqual(t, spamProb, 1.0)
	}
}

func TestPredictSeparatesClasses(t *testing.T) {
	pipeline, err := Load(writeArtifact(t, testArtifact()))
	require.NoError(t, err)

	_, spamProb, err := pipeline.Predict("WINNER! Claim your free prize, click here!")
	require.NoError(t, err)
	assert.Greater(t, spamProb, 0.5)

	_, spamProb, err = pipeline.Predict("Thanks for the project meeting, I will follow up.")
	require.NoError(t, err)
	assert.Less(t, spamProb, 0.5)
}

func TestPredictUnknownTermsFallBackToPriors(t *testing.T) {
	pipeline, err := Load(writeArtifact(t, testArtifact()))
	require.NoError(t, err)

	_, spamProb, err := pipeline.Predict("zzz qqq xxx")
	require.NoError(t, err)
	assert.InDelta(t, 0.3, spamProb, 1e-9)
}

func TestPredictUsesBigrams(t *testing.T) {
	pipeline, err := Load(writeArtifact(t, testArtifact()))
	require.NoError(t, err)

	// "free prize" is in the vocabulary as a bigram; an intervening
	// out-of-vocabulary token breaks it and drops the extra spam weight.
	// Unigram counts are identical in both texts.
	_, withBigram, err := pipeline.Predict("free prize meeting meeting meeting")
	require.NoError(t, err)
	_, split, err := pipeline.Predict("free zzz prize meeting meeting meeting")
	require.NoError(t, err)
	assert.Greater(t, withBigram, split)
}

func TestModelTypeAndFeatures(t *testing.T) {
	pipeline, err := Load(writeArtifact(t, testArtifact()))
	require.NoError(t, err)

	assert.Equal(t, "MultinomialNB", pipeline.ModelType())
	assert.Equal(t, 9, pipeline.NumFeatures())
}
