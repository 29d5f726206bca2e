package handlers

import (
	"net/http"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/gin-gonic/gin"
	"github.com/windoze95/aiplayground-api/internal/logger"
	"github.com/windoze95/aiplayground-api/internal/service"
	"go.uber.org/zap"
)

// CaptionHandler handles image captioning requests.
type CaptionHandler struct {
	Service *service.CaptionService
}

// NewCaptionHandler creates a new CaptionHandler.
func NewCaptionHandler(captionService *service.CaptionService) *CaptionHandler {
	return &CaptionHandler{Service: captionService}
}

// Caption handles POST /api/v1/vision/caption
func (h *CaptionHandler) Caption(c *gin.Context) {
	var request struct {
		ImageURL string `json:"imageUrl" binding:"required"`
		Model    string `json:"model"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	imageURL := strings.TrimSpace(request.ImageURL)
	if !govalidator.IsURL(imageURL) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "imageUrl must be a valid URL"})
		return
	}

	caption, err := h.Service.CaptionURL(c.Request.Context(), imageURL, request.Model)
	if err != nil {
		logger.FromGin(c).Error("image caption failed", zap.String("image_url", imageURL), zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"caption": caption})
}
