package handler

import (
	"errors"
	"net/http"

	"shieldmail/internal/apperrors"
	"shieldmail/internal/seeder"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SampleDataHandler interface {
	GenerateSampleData(c *gin.Context)
}

type sampleDataHandler struct {
	seeder *seeder.Seeder
	logger *zap.Logger
}

func NewSampleDataHandler(s *seeder.Seeder, logger *zap.Logger) SampleDataHandler {
	return &sampleDataHandler{seeder: s, logger: logger}
}

// GenerateSampleData handles POST /api/generate-sample-data.
func (h *sampleDataHandler) GenerateSampleData(c *gin.Context) {
	created, err := h.seeder.GenerateSampleData()
	if err != nil {
		if errors.Is(err, apperrors.ErrNotLoaded) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Model not loaded. Please train and save the model first."})
			return
		}
		h.logger.Error("Failed to generate sample data", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate sample data: " + err.Error()})
		return
	}

	for i := range created {
		created[i] = truncateForDisplay(created[i])
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":             "Sample data generated successfully",
		"predictions_created": len(created),
		"predictions":         created,
	})
}
