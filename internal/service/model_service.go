package service

import (
	"encoding/json"
	"os"
	"strings"
	"sync"

	"shieldmail/internal/apperrors"
	"shieldmail/internal/classifier"
	"shieldmail/internal/models"

	"go.uber.org/zap"
)

// ModelService owns the loaded spam classifier and its metadata for the
// process lifetime.
type ModelService interface {
	Load()
	IsLoaded() bool
	Predict(text string) (models.ClassificationResult, error)
	Metadata() *models.ModelMetadata
	Info() ModelInfo
}

// ModelInfo describes the loaded model for the /api/model/info endpoint.
type ModelInfo struct {
	IsLoaded  bool                  `json:"is_loaded"`
	ModelPath string                `json:"model_path,omitempty"`
	Metadata  *models.ModelMetadata `json:"metadata,omitempty"`
}

type modelService struct {
	modelPath    string
	metadataPath string
	logger       *zap.Logger

	mu       sync.RWMutex
	pipeline *classifier.Pipeline
	metadata *models.ModelMetadata
}

// NewModelService creates an unloaded service; call Load at startup.
func NewModelService(modelPath, metadataPath string, logger *zap.Logger) ModelService {
	return &modelService{
		modelPath:    modelPath,
		metadataPath: metadataPath,
		logger:       logger,
	}
}

// Load reads the pretrained artifact and optional metadata file. A missing
// or unreadable artifact leaves the service in the "not loaded" state; it
// never fails startup. Callers query readiness via IsLoaded.
func (s *modelService) Load() {
	pipeline, err := classifier.Load(s.modelPath)
	if err != nil {
		s.logger.Warn("Model artifact not available, service starts unloaded",
			zap.String("path", s.modelPath),
			zap.Error(err))
		return
	}

	metadata := s.loadMetadata(pipeline)

	s.mu.Lock()
	s.pipeline = pipeline
	s.metadata = metadata
	s.mu.Unlock()

	s.logger.Info("Model loaded",
		zap.String("path", s.modelPath),
		zap.String("model_type", pipeline.ModelType()),
		zap.Int("n_features", pipeline.NumFeatures()))
}

func (s *modelService) loadMetadata(pipeline *classifier.Pipeline) *models.ModelMetadata {
	data, err := os.ReadFile(s.metadataPath)
	if err != nil {
		s.logger.Warn("Model metadata not available, using defaults",
			zap.String("path", s.metadataPath),
			zap.Error(err))
		return &models.ModelMetadata{ModelType: "Unknown"}
	}

	var metadata models.ModelMetadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		s.logger.Warn("Failed to decode model metadata, using defaults",
			zap.String("path", s.metadataPath),
			zap.Error(err))
		return &models.ModelMetadata{ModelType: "Unknown"}
	}
	if metadata.ModelType == "" {
		metadata.ModelType = pipeline.ModelType()
	}
	return &metadata
}

func (s *modelService) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pipeline != nil
}

// Predict classifies text. The loaded pipeline is immutable and reentrant,
// so concurrent calls share it without serialization.
func (s *modelService) Predict(text string) (models.ClassificationResult, error) {
	s.mu.RLock()
	pipeline := s.pipeline
	s.mu.RUnlock()

	if pipeline == nil {
		return models.ClassificationResult{}, apperrors.ErrNotLoaded
	}
	if strings.TrimSpace(text) == "" {
		return models.ClassificationResult{}, apperrors.ErrEmptyInput
	}

	safeProb, spamProb, err := pipeline.Predict(text)
	if err != nil {
		return models.ClassificationResult{}, apperrors.PredictionFailed(err)
	}

	return models.ClassificationResult{
		IsSpam:          spamProb > safeProb,
		SpamProbability: spamProb,
		SafeProbability: safeProb,
	}, nil
}

// Metadata returns a copy of the metadata snapshot, or nil when the model
// is not loaded.
func (s *modelService) Metadata() *models.ModelMetadata {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.metadata == nil {
		return nil
	}
	metadata := *s.metadata
	return &metadata
}

func (s *modelService) Info() ModelInfo {
	info := ModelInfo{
		IsLoaded: s.IsLoaded(),
		Metadata: s.Metadata(),
	}
	if info.IsLoaded {
		info.ModelPath = s.modelPath
	}
	return info
}
