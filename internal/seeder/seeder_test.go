package seeder

import (
	"testing"
	"time"

	"shieldmail/internal/apperrors"
	"shieldmail/internal/models"
	"shieldmail/internal/service"
	"shieldmail/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubModel struct {
	loaded bool
}

func (m *stubModel) Load()          {}
func (m *stubModel) IsLoaded() bool { return m.loaded }

func (m *stubModel) Predict(text string) (models.ClassificationResult, error) {
	if !m.loaded {
		return models.ClassificationResult{}, apperrors.ErrNotLoaded
	}
	return models.ClassificationResult{IsSpam: false, SpamProbability: 0.4, SafeProbability: 0.6}, nil
}

func (m *stubModel) Metadata() *models.ModelMetadata {
	if !m.loaded {
		return nil
	}
	return &models.ModelMetadata{ModelType: "MultinomialNB", Accuracy: 0.97}
}

func (m *stubModel) Info() service.ModelInfo {
	return service.ModelInfo{IsLoaded: m.loaded}
}

func TestGenerateSampleData(t *testing.T) {
	predStore := store.NewPredictionStore(zap.NewNop())
	s := New(&stubModel{loaded: true}, predStore, zap.NewNop())

	created, err := s.GenerateSampleData()
	require.NoError(t, err)
	require.Len(t, created, 5)

	// Fixed per-record probabilities override whatever the model said.
	wantProbs := []float64{0.15, 0.65, 0.70, 0.20, 0.75}
	wantSpam := []bool{false, true, true, false, true}
	for i, record := range created {
		assert.InDelta(t, wantProbs[i], record.SpamProbability, 1e-9, "record %d", i)
		assert.InDelta(t, 1-wantProbs[i], record.SafeProbability, 1e-9, "record %d", i)
		assert.Equal(t, wantSpam[i], record.IsSpam, "record %d", i)
		assert.Equal(t, "MultinomialNB", record.ModelMetadata.ModelType)
		assert.Equal(t, time.Now().Year(), record.Timestamp.Year())
	}

	stats := predStore.Stats()
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 3, stats.SpamCount)
	assert.Equal(t, 2, stats.SafeCount)
}

func TestGenerateSampleDataOrdering(t *testing.T) {
	predStore := store.NewPredictionStore(zap.NewNop())
	s := New(&stubModel{loaded: true}, predStore, zap.NewNop())

	_, err := s.GenerateSampleData()
	require.NoError(t, err)

	// Records carry dated timestamps, so listing is by date, newest first.
	listed := predStore.List(50, 0)
	require.Len(t, listed, 5)
	for i := 1; i < len(listed); i++ {
		assert.False(t, listed[i].Timestamp.After(listed[i-1].Timestamp))
	}
	assert.Equal(t, time.November, listed[0].Timestamp.Month())
	assert.Equal(t, 6, listed[0].Timestamp.Day())
	assert.Equal(t, time.October, listed[4].Timestamp.Month())
}

func TestGenerateSampleDataRequiresModel(t *testing.T) {
	predStore := store.NewPredictionStore(zap.NewNop())
	s := New(&stubModel{loaded: false}, predStore, zap.NewNop())

	_, err := s.GenerateSampleData()
	assert.ErrorIs(t, err, apperrors.ErrNotLoaded)
	assert.Zero(t, predStore.Stats().Total)
}
