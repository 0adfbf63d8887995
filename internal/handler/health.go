package handler

import (
	"net/http"
	"time"

	"shieldmail/internal/service"

	"github.com/gin-gonic/gin"
)

type HealthHandler interface {
	Root(c *gin.Context)
	Health(c *gin.Context)
	ModelInfo(c *gin.Context)
}

type healthHandler struct {
	model service.ModelService
}

func NewHealthHandler(model service.ModelService) HealthHandler {
	return &healthHandler{model: model}
}

// Root handles GET / with an index of the API surface.
func (h *healthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to ShieldMail API",
		"version": "1.0.0",
		"status":  "active",
		"endpoints": gin.H{
			"predict":           "POST /api/predict",
			"batch_predict":     "POST /api/batch-predict",
			"predictions":       "GET /api/predictions",
			"prediction_by_id":  "GET /api/predictions/:id",
			"update_prediction": "PUT /api/predictions/:id",
			"delete_prediction": "DELETE /api/predictions/:id",
			"stats":             "GET /api/stats",
			"explain_impacts":   "POST /api/explain/impacts",
			"explain_heatmap":   "POST /api/explain/heatmap",
			"health":            "GET /api/health",
			"model_info":        "GET /api/model/info",
		},
	})
}

// Health handles GET /api/health.
func (h *healthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"model_loaded": h.model.IsLoaded(),
		"timestamp":    time.Now().Format(time.RFC3339),
		"model_info":   h.model.Info(),
	})
}

// ModelInfo handles GET /api/model/info.
func (h *healthHandler) ModelInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "active",
		"model_info": h.model.Info(),
		"timestamp":  time.Now().Format(time.RFC3339),
	})
}
