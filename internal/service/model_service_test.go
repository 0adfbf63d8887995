package service

import (
	"os"
	"path/filepath"
	"testing"

	"shieldmail/internal/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testArtifactJSON = `{
  "model_type": "MultinomialNB",
  "classes": ["safe", "spam"],
  "class_log_prior": [-0.356675, -1.203973],
  "vocabulary": {"winner": 0, "prize": 1, "click": 2, "meeting": 3, "follow": 4, "thanks": 5},
  "idf": [3.1, 3.4, 2.8, 3.0, 2.9, 2.6],
  "feature_log_prob": [
    [-9.0, -9.1, -8.8, -3.6, -3.8, -3.5],
    [-3.5, -3.7, -3.9, -9.2, -9.0, -8.9]
  ],
  "stop_words": ["the", "a", "to", "you", "for"],
  "ngram_max": 2
}`

const testMetadataJSON = `{
  "model_type": "MultinomialNB",
  "accuracy": 0.9782,
  "precision": 0.9641,
  "recall": 0.947,
  "f1_score": 0.9555,
  "n_features": 6
}`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func loadedService(t *testing.T) ModelService {
	t.Helper()
	svc := NewModelService(
		writeFixture(t, "spam_model.json", testArtifactJSON),
		writeFixture(t, "model_metadata.json", testMetadataJSON),
		zap.NewNop(),
	)
	svc.Load()
	require.True(t, svc.IsLoaded())
	return svc
}

func TestLoadMissingArtifactLeavesServiceUnloaded(t *testing.T) {
	svc := NewModelService(filepath.Join(t.TempDir(), "absent.json"), "also-absent.json", zap.NewNop())

	// Load must not fail startup; readiness is queried explicitly.
	svc.Load()
	assert.False(t, svc.IsLoaded())
	assert.Nil(t, svc.Metadata())

	_, err := svc.Predict("any text")
	assert.ErrorIs(t, err, apperrors.ErrNotLoaded)
}

func TestPredictEmptyInput(t *testing.T) {
	svc := loadedService(t)

	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := svc.Predict(text)
		assert.ErrorIs(t, err, apperrors.ErrEmptyInput, "text %q", text)
	}
}

func TestPredictConsistency(t *testing.T) {
	svc := loadedService(t)

	texts := []string{
		"WINNER! Click to claim your prize!",
		"Thanks, I will follow up after the meeting.",
		"entirely unrelated words only",
	}
	for _, text := range texts {
		result, err := svc.Predict(text)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, result.SpamProbability+result.SafeProbability, 1e-6)
		assert.Equal(t, result.SpamProbability > result.SafeProbability, result.IsSpam, "text %q", text)
	}
}

func TestPredictScenarios(t *testing.T) {
	svc := loadedService(t)

	result, err := svc.Predict("WINNER!! You have been selected for a $1000 prize! Click here now: http://spam-link.com")
	require.NoError(t, err)
	assert.True(t, result.IsSpam)
	assert.Greater(t, result.SpamProbability, 0.5)

	result, err = svc.Predict("Hi, I wanted to follow up on our meeting yesterday.")
	require.NoError(t, err)
	assert.False(t, result.IsSpam)
	assert.Less(t, result.SpamProbability, 0.5)
}

func TestMetadataSnapshot(t *testing.T) {
	svc := loadedService(t)

	metadata := svc.Metadata()
	require.NotNil(t, metadata)
	assert.Equal(t, "MultinomialNB", metadata.ModelType)
	assert.InDelta(t, 0.9782, metadata.Accuracy, 1e-9)
	assert.Equal(t, 6, metadata.NFeatures)

	// Returned snapshot is a copy; mutating it must not leak back.
	metadata.ModelType = "tampered"
	assert.Equal(t, "MultinomialNB", svc.Metadata().ModelType)
}

func TestMissingMetadataFallsBackToUnknown(t *testing.T) {
	svc := NewModelService(
		writeFixture(t, "spam_model.json", testArtifactJSON),
		filepath.Join(t.TempDir(), "absent-metadata.json"),
		zap.NewNop(),
	)
	svc.Load()
	require.True(t, svc.IsLoaded())

	metadata := svc.Metadata()
	require.NotNil(t, metadata)
	assert.Equal(t, "Unknown", metadata.ModelType)
}

func TestInfo(t *testing.T) {
	svc := loadedService(t)

	info := svc.Info()
	assert.True(t, info.IsLoaded)
	assert.NotEmpty(t, info.ModelPath)
	require.NotNil(t, info.Metadata)

	unloaded := NewModelService("absent.json", "absent.json", zap.NewNop())
	unloaded.Load()
	info = unloaded.Info()
	assert.False(t, info.IsLoaded)
	assert.Empty(t, info.ModelPath)
	assert.Nil(t, info.Metadata)
}
