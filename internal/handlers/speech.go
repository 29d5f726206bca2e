package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/aiplayground-api/internal/logger"
	"github.com/windoze95/aiplayground-api/internal/service"
	"go.uber.org/zap"
)

// SpeechHandler handles text-to-speech and speech-to-text requests.
type SpeechHandler struct {
	Service *service.SpeechService
}

// NewSpeechHandler creates a new SpeechHandler.
func NewSpeechHandler(speechService *service.SpeechService) *SpeechHandler {
	return &SpeechHandler{Service: speechService}
}

// TextToSpeech handles POST /api/v1/speech/tts
func (h *SpeechHandler) TextToSpeech(c *gin.Context) {
	var request struct {
		Markdown string `json:"markdown" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	audio, err := h.Service.TextToSpeech(c.Request.Context(), request.Markdown)
	if err != nil {
		logger.FromGin(c).Error("text to speech failed", zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "audio/mpeg", audio)
}

// SpeechToText handles POST /api/v1/speech/stt
func (h *SpeechHandler) SpeechToText(c *gin.Context) {
	audio, err := readFormFile(c, "audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text, err := h.Service.SpeechToText(c.Request.Context(), audio)
	if err != nil {
		logger.FromGin(c).Error("speech to text failed", zap.Int("audio_bytes", len(audio)), zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": text})
}
