package store

import (
	"sort"
	"sync"
	"time"

	"shieldmail/internal/apperrors"
	"shieldmail/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultListLimit applies when a caller passes limit <= 0.
	DefaultListLimit = 50
	// MaxListLimit caps any requested page size.
	MaxListLimit = 500

	recentCount = 10
)

// Stats is the aggregate view over all stored predictions.
// AccuracyFeedback is the percentage of records marked "correct" among
// records carrying any feedback; 0.0 by convention when none do.
type Stats struct {
	Total            int                       `json:"total_predictions"`
	SpamCount        int                       `json:"spam_count"`
	SafeCount        int                       `json:"safe_count"`
	AccuracyFeedback float64                   `json:"accuracy_feedback"`
	Recent           []models.PredictionRecord `json:"recent_predictions"`
}

// PredictionStore is the authoritative in-memory ledger of predictions.
// All operations are atomic with respect to each other and safe under
// concurrent invocation.
type PredictionStore interface {
	Create(text string, result models.ClassificationResult, metadata models.ModelMetadata) models.PredictionRecord
	CreateAt(text string, result models.ClassificationResult, metadata models.ModelMetadata, timestamp time.Time) models.PredictionRecord
	Get(id string) (models.PredictionRecord, error)
	List(limit, offset int) []models.PredictionRecord
	UpdateFeedback(id, feedback string) (models.PredictionRecord, error)
	Delete(id string) error
	Stats() Stats
}

type predictionStore struct {
	mu      sync.RWMutex
	records map[string]*models.PredictionRecord
	order   []string // insertion order, tie-breaker for equal timestamps
	logger  *zap.Logger
}

func NewPredictionStore(logger *zap.Logger) PredictionStore {
	return &predictionStore{
		records: make(map[string]*models.PredictionRecord),
		logger:  logger,
	}
}

// Create persists a classification under a fresh id with the current time.
func (s *predictionStore) Create(text string, result models.ClassificationResult, metadata models.ModelMetadata) models.PredictionRecord {
	return s.CreateAt(text, result, metadata, time.Now())
}

// CreateAt is Create with an explicit timestamp, used by sample-data
// seeding. Every record still goes through the same append path.
func (s *predictionStore) CreateAt(text string, result models.ClassificationResult, metadata models.ModelMetadata, timestamp time.Time) models.PredictionRecord {
	record := &models.PredictionRecord{
		ID:              uuid.NewString(),
		Text:            text,
		IsSpam:          result.IsSpam,
		SpamProbability: result.SpamProbability,
		SafeProbability: result.SafeProbability,
		Timestamp:       timestamp,
		ModelMetadata:   metadata,
	}

	s.mu.Lock()
	s.records[record.ID] = record
	s.order = append(s.order, record.ID)
	s.mu.Unlock()

	s.logger.Debug("Prediction stored",
		zap.String("prediction_id", record.ID),
		zap.Bool("is_spam", record.IsSpam))
	return *record
}

func (s *predictionStore) Get(id string) (models.PredictionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return models.PredictionRecord{}, apperrors.ErrNotFound
	}
	return cloneRecord(record), nil
}

// List returns records newest-first. Limit defaults to 50, is capped at
// 500; an out-of-range offset yields an empty slice, never an error.
func (s *predictionStore) List(limit, offset int) []models.PredictionRecord {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	s.mu.RLock()
	sorted := s.sortedNewestFirstLocked()
	s.mu.RUnlock()

	if offset >= len(sorted) {
		return []models.PredictionRecord{}
	}
	end := offset + limit
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[offset:end]
}

// UpdateFeedback mutates only the feedback field of the addressed record.
func (s *predictionStore) UpdateFeedback(id, feedback string) (models.PredictionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok {
		return models.PredictionRecord{}, apperrors.ErrNotFound
	}
	record.Feedback = &feedback
	return cloneRecord(record), nil
}

func (s *predictionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.records, id)
	for i, other := range s.order {
		if other == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *predictionStore) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{Total: len(s.records)}
	var withFeedback, correct int
	for _, record := range s.records {
		if record.IsSpam {
			stats.SpamCount++
		} else {
			stats.SafeCount++
		}
		if record.Feedback != nil {
			withFeedback++
			if *record.Feedback == models.FeedbackCorrect {
				correct++
			}
		}
	}
	if withFeedback > 0 {
		stats.AccuracyFeedback = float64(correct) / float64(withFeedback) * 100
	}

	recent := s.sortedNewestFirstLocked()
	if len(recent) > recentCount {
		recent = recent[:recentCount]
	}
	stats.Recent = recent
	return stats
}

// sortedNewestFirstLocked copies all records and orders them newest-first,
// later insertion winning timestamp ties. Callers hold at least the read
// lock.
func (s *predictionStore) sortedNewestFirstLocked() []models.PredictionRecord {
	out := make([]models.PredictionRecord, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		out = append(out, cloneRecord(s.records[s.order[i]]))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// cloneRecord deep-copies a record so callers never alias store-owned
// memory.
func cloneRecord(record *models.PredictionRecord) models.PredictionRecord {
	out := *record
	if record.Feedback != nil {
		feedback := *record.Feedback
		out.Feedback = &feedback
	}
	return out
}
