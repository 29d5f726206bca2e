package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/windoze95/aiplayground-api/internal/logger"
	"github.com/windoze95/aiplayground-api/internal/metrics"
	"github.com/windoze95/aiplayground-api/internal/retry"
	"github.com/windoze95/aiplayground-api/internal/util"
	"go.uber.org/zap"
)

const (
	codestralEndpoint     = "https://api.mistral.ai/v1/fim/completions"
	codestralDefaultModel = "codestral-latest"
)

// CodestralProvider implements CodeGenerator using Mistral's
// fill-in-the-middle completion endpoint.
type CodestralProvider struct {
	apiKey     string
	Model      string
	Suffix     string
	Endpoint   string
	httpClient *http.Client
	Retrier    *retry.Retrier
	Observer   UpstreamObserver
}

// NewCodestralProvider creates a Codestral code generator.
func NewCodestralProvider(apiKey string, m *metrics.Metrics) *CodestralProvider {
	return &CodestralProvider{
		apiKey:   apiKey,
		Model:    codestralDefaultModel,
		Endpoint: codestralEndpoint,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		Retrier:  retry.New("codestral_fim", retry.DefaultPolicy(), retry.WithObserver(m)),
		Observer: m,
	}
}

type fimRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Suffix string `json:"suffix"`
}

type fimResponse struct {
	ID      string      `json:"id"`
	Model   string      `json:"model"`
	Choices []fimChoice `json:"choices"`
}

type fimChoice struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

// GenerateCode sends prompt for completion and returns the first choice's
// content, or "" when the response has no choices.
func (p *CodestralProvider) GenerateCode(ctx context.Context, prompt string) (string, error) {
	if p.apiKey == "" {
		return "", errors.New("codestral: MISTRAL_API_KEY is not set")
	}

	payload, err := json.Marshal(fimRequest{Model: p.Model, Prompt: prompt, Suffix: p.Suffix})
	if err != nil {
		return "", fmt.Errorf("codestral: encode request: %w", err)
	}

	resp, err := retry.Do(ctx, p.Retrier, func(ctx context.Context) (*fimResponse, error) {
		start := time.Now()
		resp, err := p.complete(ctx, payload)
		observe(p.Observer, "codestral", start, err)
		return resp, err
	})
	if err != nil {
		return "", err
	}

	logger.Get().Info("codestral completion received",
		zap.String("id", resp.ID),
		zap.Int("choices", len(resp.Choices)),
	)

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (p *CodestralProvider) complete(ctx context.Context, payload []byte) (*fimResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("codestral: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("codestral: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("codestral: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError("codestral", resp, body)
	}

	var out fimResponse
	if err := util.DeserializeFromJSONBytes(body, &out); err != nil {
		return nil, fmt.Errorf("codestral: parse response: %w", err)
	}
	return &out, nil
}
