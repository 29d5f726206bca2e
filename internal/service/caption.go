package service

import (
	"context"
	"fmt"

	"github.com/windoze95/aiplayground-api/internal/ai"
	"github.com/windoze95/aiplayground-api/internal/logger"
	"go.uber.org/zap"
)

// Downloader fetches raw bytes from a URL.
type Downloader interface {
	DownloadBytes(ctx context.Context, url string) ([]byte, error)
}

// CaptionService describes images with an image-to-text model.
type CaptionService struct {
	CaptionProvider ai.CaptionProvider
	Downloader      Downloader
}

// NewCaptionService creates a new CaptionService.
func NewCaptionService(captionProvider ai.CaptionProvider, downloader Downloader) *CaptionService {
	return &CaptionService{
		CaptionProvider: captionProvider,
		Downloader:      downloader,
	}
}

// CaptionURL downloads the image at imageURL and captions it.
func (s *CaptionService) CaptionURL(ctx context.Context, imageURL, model string) (string, error) {
	if s.CaptionProvider == nil {
		return "", ErrProviderUnavailable
	}
	if imageURL == "" {
		return "", ErrEmptyInput
	}

	image, err := s.Downloader.DownloadBytes(ctx, imageURL)
	if err != nil {
		return "", fmt.Errorf("download image: %w", err)
	}
	logger.Get().Info("image downloaded", zap.String("url", imageURL), zap.Int("bytes", len(image)))

	return s.Caption(ctx, image, model)
}

// Caption describes image with model, or the default captioning model.
func (s *CaptionService) Caption(ctx context.Context, image []byte, model string) (string, error) {
	if s.CaptionProvider == nil {
		return "", ErrProviderUnavailable
	}
	if len(image) == 0 {
		return "", ErrEmptyInput
	}
	return s.CaptionProvider.ImageToText(ctx, image, model)
}
