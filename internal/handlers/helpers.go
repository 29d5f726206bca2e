package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/aiplayground-api/internal/service"
)

const maxUploadBytes = 25 * 1024 * 1024

// statusForError maps service errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidModel), errors.Is(err, service.ErrEmptyInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrProviderUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// readFormFile reads a multipart file field, bounded by maxUploadBytes.
func readFormFile(c *gin.Context, field string) ([]byte, error) {
	file, _, err := c.Request.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("%s file is required", field)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s data", field)
	}
	if len(data) > maxUploadBytes {
		return nil, fmt.Errorf("%s file exceeds %d bytes", field, maxUploadBytes)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s file is empty", field)
	}
	return data, nil
}

// NotFound answers unmatched routes.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"message": "Not Found - " + c.Request.URL.RequestURI()})
}
