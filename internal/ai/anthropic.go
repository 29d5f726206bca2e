package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/windoze95/aiplayground-api/internal/config"
	"github.com/windoze95/aiplayground-api/internal/metrics"
	"github.com/windoze95/aiplayground-api/internal/retry"
)

// codegenLanguages are the tabs the browser client renders.
const codegenLanguages = ".NET, Java, JavaScript, and Python"

// AnthropicProvider implements CodeGenerator using Claude.
type AnthropicProvider struct {
	client   anthropic.Client
	model    anthropic.Model
	prompts  config.PromptPair
	Retrier  *retry.Retrier
	Observer UpstreamObserver
}

// NewAnthropicProvider creates a new AnthropicProvider with the given API key
// and codegen prompt templates. Extra request options (base URL, HTTP
// client) are passed through to the SDK.
func NewAnthropicProvider(apiKey string, prompts config.PromptPair, m *metrics.Metrics, opts ...option.RequestOption) *AnthropicProvider {
	// Retries are handled by the retry package so the SDK's own loop is off.
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}, opts...)
	client := anthropic.NewClient(opts...)
	return &AnthropicProvider{
		client:   client,
		model:    anthropic.ModelClaude3_5Sonnet20241022,
		prompts:  prompts,
		Retrier:  retry.New("claude_messages", retry.DefaultPolicy(), retry.WithObserver(m)),
		Observer: m,
	}
}

// newUserMessage creates a user message param with the given content blocks.
func newUserMessage(blocks ...anthropic.ContentBlockParamUnion) anthropic.MessageParam {
	return anthropic.MessageParam{
		Role:    anthropic.MessageParamRoleUser,
		Content: blocks,
	}
}

// createMessageWithRetry wraps the Claude API call with rate-limit backoff.
func (p *AnthropicProvider) createMessageWithRetry(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	resp, err := retry.Do(ctx, p.Retrier, func(ctx context.Context) (*anthropic.Message, error) {
		start := time.Now()
		resp, err := p.client.Messages.New(ctx, params)
		observe(p.Observer, "claude", start, err)
		return resp, err
	})
	if err != nil {
		return nil, fmt.Errorf("claude API error: %w", err)
	}
	return resp, nil
}

// extractTextContent returns the concatenated text blocks from a Claude response.
func extractTextContent(msg *anthropic.Message) (string, error) {
	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return "", errors.New("no text content in Claude response")
	}
	return text, nil
}

// GenerateCode asks Claude for an implementation of prompt in every
// language the client renders.
func (p *AnthropicProvider) GenerateCode(ctx context.Context, prompt string) (string, error) {
	sysPrompt, err := config.RenderPrompt(p.prompts.System, map[string]interface{}{
		"Languages": codegenLanguages,
	})
	if err != nil {
		return "", fmt.Errorf("render system prompt: %w", err)
	}

	userPrompt, err := config.RenderPrompt(p.prompts.User, map[string]interface{}{
		"Prompt": prompt,
	})
	if err != nil {
		return "", fmt.Errorf("render user prompt: %w", err)
	}
	if userPrompt == "" {
		return "", errors.New("claude: prompt is empty")
	}

	params := anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: 4096,
		System: []anthropic.TextBlockParam{
			{Text: sysPrompt},
		},
		Messages: []anthropic.MessageParam{
			newUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}

	resp, err := p.createMessageWithRetry(ctx, params)
	if err != nil {
		return "", err
	}

	return extractTextContent(resp)
}
