package handler

import (
	"net/http"

	"shieldmail/internal/explain"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ExplainHandler interface {
	TokenImpacts(c *gin.Context)
	WordHeatmap(c *gin.Context)
}

type explainHandler struct {
	provider explain.ExplanationProvider
	logger   *zap.Logger
}

func NewExplainHandler(provider explain.ExplanationProvider, logger *zap.Logger) ExplainHandler {
	return &explainHandler{provider: provider, logger: logger}
}

// explainRequest carries an already-computed classification back in;
// explanations are a pure function of these three values.
type explainRequest struct {
	Text            string  `json:"text" binding:"required"`
	IsSpam          bool    `json:"is_spam"`
	SpamProbability float64 `json:"spam_probability" binding:"min=0,max=1"`
}

// TokenImpacts handles POST /api/explain/impacts.
func (h *explainHandler) TokenImpacts(c *gin.Context) {
	var req explainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	impacts := h.provider.TokenImpacts(req.Text, req.IsSpam, req.SpamProbability)
	c.JSON(http.StatusOK, gin.H{"token_impacts": impacts})
}

// WordHeatmap handles POST /api/explain/heatmap.
func (h *explainHandler) WordHeatmap(c *gin.Context) {
	var req explainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	heatmap := h.provider.WordHeatmap(req.Text, req.IsSpam, req.SpamProbability)
	c.JSON(http.StatusOK, gin.H{"heatmap": heatmap})
}
