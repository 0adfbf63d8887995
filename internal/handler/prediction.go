package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"shieldmail/internal/apperrors"
	"shieldmail/internal/models"
	"shieldmail/internal/service"
	"shieldmail/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// displayTextLimit is how much of the stored text responses carry; the
// store keeps the full text.
const displayTextLimit = 100

type PredictionHandler interface {
	Predict(c *gin.Context)
	BatchPredict(c *gin.Context)
	ListPredictions(c *gin.Context)
	GetPredictionByID(c *gin.Context)
	UpdatePrediction(c *gin.Context)
	DeletePrediction(c *gin.Context)
	GetStats(c *gin.Context)
}

type predictionHandler struct {
	model  service.ModelService
	store  store.PredictionStore
	logger *zap.Logger
}

func NewPredictionHandler(model service.ModelService, predStore store.PredictionStore, logger *zap.Logger) PredictionHandler {
	return &predictionHandler{
		model:  model,
		store:  predStore,
		logger: logger,
	}
}

type predictRequest struct {
	Text string `json:"text" binding:"required,max=50000"`
}

type batchPredictRequest struct {
	Texts []string `json:"texts" binding:"required,min=1,max=100"`
}

type batchPredictResponse struct {
	Predictions    []models.PredictionRecord `json:"predictions"`
	TotalProcessed int                       `json:"total_processed"`
	TotalSpam      int                       `json:"total_spam"`
	TotalSafe      int                       `json:"total_safe"`
}

type updatePredictionRequest struct {
	Feedback string `json:"feedback" binding:"required,oneof=correct incorrect"`
}

// Predict handles POST /api/predict.
func (h *predictionHandler) Predict(c *gin.Context) {
	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text := strings.TrimSpace(req.Text)
	result, err := h.model.Predict(text)
	if err != nil {
		h.respondPredictError(c, err)
		return
	}

	record := h.store.Create(text, result, h.metadataSnapshot())
	c.JSON(http.StatusCreated, truncateForDisplay(record))
}

// BatchPredict handles POST /api/batch-predict. Blank entries are skipped;
// every remaining text is classified and persisted.
func (h *predictionHandler) BatchPredict(c *gin.Context) {
	var req batchPredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	metadata := h.metadataSnapshot()
	resp := batchPredictResponse{Predictions: []models.PredictionRecord{}}
	for _, raw := range req.Texts {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}

		result, err := h.model.Predict(text)
		if err != nil {
			h.respondPredictError(c, err)
			return
		}

		record := h.store.Create(text, result, metadata)
		resp.Predictions = append(resp.Predictions, truncateForDisplay(record))
		if result.IsSpam {
			resp.TotalSpam++
		} else {
			resp.TotalSafe++
		}
	}
	resp.TotalProcessed = len(resp.Predictions)

	c.JSON(http.StatusOK, resp)
}

// ListPredictions handles GET /api/predictions with limit/offset paging,
// newest first.
func (h *predictionHandler) ListPredictions(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(store.DefaultListLimit)))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "offset must be a non-negative integer"})
		return
	}

	records := h.store.List(limit, offset)
	for i := range records {
		records[i] = truncateForDisplay(records[i])
	}
	c.JSON(http.StatusOK, records)
}

// GetPredictionByID handles GET /api/predictions/:id.
func (h *predictionHandler) GetPredictionByID(c *gin.Context) {
	id := c.Param("id")
	record, err := h.store.Get(id)
	if err != nil {
		h.respondStoreError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, truncateForDisplay(record))
}

// UpdatePrediction handles PUT /api/predictions/:id, feedback only.
func (h *predictionHandler) UpdatePrediction(c *gin.Context) {
	var req updatePredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	if _, err := h.store.UpdateFeedback(id, req.Feedback); err != nil {
		h.respondStoreError(c, id, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Prediction feedback updated successfully",
		"prediction_id": id,
		"feedback":      req.Feedback,
	})
}

// DeletePrediction handles DELETE /api/predictions/:id.
func (h *predictionHandler) DeletePrediction(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.Delete(id); err != nil {
		h.respondStoreError(c, id, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Prediction deleted successfully",
		"prediction_id": id,
	})
}

// GetStats handles GET /api/stats.
func (h *predictionHandler) GetStats(c *gin.Context) {
	stats := h.store.Stats()
	for i := range stats.Recent {
		stats.Recent[i] = truncateForDisplay(stats.Recent[i])
	}
	c.JSON(http.StatusOK, stats)
}

func (h *predictionHandler) metadataSnapshot() models.ModelMetadata {
	if m := h.model.Metadata(); m != nil {
		return *m
	}
	return models.ModelMetadata{ModelType: "Unknown"}
}

func (h *predictionHandler) respondPredictError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotLoaded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Model not loaded. Please train and save the model first."})
	case errors.Is(err, apperrors.ErrEmptyInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Prediction failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Prediction failed: " + err.Error()})
	}
}

func (h *predictionHandler) respondStoreError(c *gin.Context, id string, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prediction with ID " + id + " not found"})
		return
	}
	h.logger.Error("Store operation failed", zap.String("prediction_id", id), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process prediction"})
}

// truncateForDisplay shortens the record's text for responses.
func truncateForDisplay(record models.PredictionRecord) models.PredictionRecord {
	runes := []rune(record.Text)
	if len(runes) > displayTextLimit {
		record.Text = string(runes[:displayTextLimit]) + "..."
	}
	return record
}
