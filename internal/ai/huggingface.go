package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/windoze95/aiplayground-api/internal/logger"
	"github.com/windoze95/aiplayground-api/internal/metrics"
	"github.com/windoze95/aiplayground-api/internal/retry"
	"github.com/windoze95/aiplayground-api/internal/util"
	"go.uber.org/zap"
)

const (
	huggingFaceBaseURL = "https://api-inference.huggingface.co/models/"
	// DefaultCaptionModel is used when a caption request names no model.
	DefaultCaptionModel = "nlpconnect/vit-gpt2-image-captioning"
)

// HuggingFaceProvider implements CaptionProvider with the Hugging Face
// Inference API.
type HuggingFaceProvider struct {
	token      string
	BaseURL    string
	httpClient *http.Client
	Retrier    *retry.Retrier
	Observer   UpstreamObserver
}

// NewHuggingFaceProvider creates a captioner authenticated with token.
func NewHuggingFaceProvider(token string, m *metrics.Metrics) *HuggingFaceProvider {
	return &HuggingFaceProvider{
		token:   token,
		BaseURL: huggingFaceBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		Retrier:  retry.New("huggingface_inference", retry.DefaultPolicy(), retry.WithObserver(m)),
		Observer: m,
	}
}

type imageToTextResult struct {
	GeneratedText string `json:"generated_text"`
}

// ImageToText returns the first caption the model generates for image.
func (p *HuggingFaceProvider) ImageToText(ctx context.Context, image []byte, model string) (string, error) {
	if len(image) == 0 {
		return "", errors.New("huggingface: image is empty")
	}
	if model == "" {
		model = DefaultCaptionModel
	}
	endpoint := strings.TrimSuffix(p.BaseURL, "/") + "/" + model

	results, err := retry.Do(ctx, p.Retrier, func(ctx context.Context) ([]imageToTextResult, error) {
		start := time.Now()
		results, err := p.infer(ctx, endpoint, image)
		observe(p.Observer, "huggingface", start, err)
		return results, err
	})
	if err != nil {
		return "", fmt.Errorf("huggingface image-to-text: %w", err)
	}
	if len(results) == 0 {
		return "", errors.New("huggingface image-to-text returned no results")
	}

	logger.Get().Info("image captioned",
		zap.String("model", model),
		zap.Int("image_bytes", len(image)),
	)
	return results[0].GeneratedText, nil
}

func (p *HuggingFaceProvider) infer(ctx context.Context, endpoint string, image []byte) ([]imageToTextResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", http.DetectContentType(image))
	req.Header.Set("Accept", "application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError("huggingface", resp, body)
	}

	var results []imageToTextResult
	if err := util.DeserializeFromJSONBytes(body, &results); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return results, nil
}
