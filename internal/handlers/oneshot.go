package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/aiplayground-api/internal/content"
	"github.com/windoze95/aiplayground-api/internal/logger"
	"github.com/windoze95/aiplayground-api/internal/service"
	"go.uber.org/zap"
)

// OneShotHandler handles prompt/response generation and file uploads.
type OneShotHandler struct {
	Service *service.OneShotService
}

// NewOneShotHandler creates a new OneShotHandler.
func NewOneShotHandler(oneShotService *service.OneShotService) *OneShotHandler {
	return &OneShotHandler{Service: oneShotService}
}

// Generate handles POST /api/generate
func (h *OneShotHandler) Generate(c *gin.Context) {
	var request struct {
		SystemPrompt string `json:"systemPrompt"`
		UserPrompt   string `json:"userPrompt"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result, err := h.Service.Generate(c.Request.Context(), request.SystemPrompt, request.UserPrompt)
	if err != nil {
		logger.FromGin(c).Error("failed to generate response", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to generate response",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": result.Answer})
}

// Upload handles POST /api/upload
func (h *OneShotHandler) Upload(c *gin.Context) {
	var request struct {
		Files []content.File `json:"files"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"fileContents": h.Service.CombineUploads(request.Files)})
}
