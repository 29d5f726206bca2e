package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/aiplayground-api/internal/logger"
	"github.com/windoze95/aiplayground-api/internal/service"
	"go.uber.org/zap"
)

// CodegenHandler handles code generation requests from the browser client.
type CodegenHandler struct {
	Service *service.CodegenService
}

// NewCodegenHandler creates a new CodegenHandler.
func NewCodegenHandler(codegenService *service.CodegenService) *CodegenHandler {
	return &CodegenHandler{Service: codegenService}
}

// Generate handles POST /api/v1/codegen?model=
func (h *CodegenHandler) Generate(c *gin.Context) {
	var request struct {
		Input string `json:"input"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	model := c.Query("model")
	answer, err := h.Service.Generate(c.Request.Context(), model, request.Input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidModel) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid model"})
			return
		}
		logger.FromGin(c).Error("code generation failed", zap.String("model", model), zap.Error(err))
		c.JSON(statusForError(err), gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}
