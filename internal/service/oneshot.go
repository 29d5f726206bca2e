package service

import (
	"context"
	"fmt"

	"github.com/windoze95/aiplayground-api/internal/ai"
	"github.com/windoze95/aiplayground-api/internal/content"
	"github.com/windoze95/aiplayground-api/internal/logger"
	"github.com/windoze95/aiplayground-api/internal/util"
	"go.uber.org/zap"
)

const (
	promptPreviewLength = 100
	answerPreviewLength = 200
)

// OneShotService answers a single system/user prompt pair, inlining the
// contents of any URLs the user prompt mentions.
type OneShotService struct {
	ChatProvider ai.ChatProvider
	Fetcher      content.Fetcher
	// DefaultSystemPrompt is used when a request has no system prompt.
	DefaultSystemPrompt string
}

// NewOneShotService creates a OneShotService.
func NewOneShotService(chat ai.ChatProvider, fetcher content.Fetcher, defaultSystemPrompt string) *OneShotService {
	return &OneShotService{
		ChatProvider:        chat,
		Fetcher:             fetcher,
		DefaultSystemPrompt: defaultSystemPrompt,
	}
}

// Generate extracts URLs from userPrompt, fetches them one at a time and
// sends the prompts plus the fetched contents to the chat provider.
func (s *OneShotService) Generate(ctx context.Context, systemPrompt, userPrompt string) (*ai.ChatResult, error) {
	if s.ChatProvider == nil {
		return nil, ErrProviderUnavailable
	}
	if systemPrompt == "" {
		systemPrompt = s.DefaultSystemPrompt
	}

	log := logger.Get()
	log.Info("received one-shot request",
		zap.Int("system_prompt_length", len(systemPrompt)),
		zap.Int("user_prompt_length", len(userPrompt)),
		zap.String("system_prompt_preview", util.Preview(systemPrompt, promptPreviewLength)),
		zap.String("user_prompt_preview", util.Preview(userPrompt, promptPreviewLength)),
	)

	urls := content.ExtractURLs(userPrompt)
	var urlContents string
	if len(urls) > 0 && s.Fetcher != nil {
		log.Info("fetching referenced URLs", zap.Strings("urls", urls))
		urlContents = content.BuildURLContents(ctx, s.Fetcher, urls)
	}

	result, err := s.ChatProvider.ChatCompletion(ctx, ai.ChatRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		URLContents:  urlContents,
	})
	if err != nil {
		log.Error("one-shot generation failed", zap.Error(err))
		return nil, fmt.Errorf("generate response: %w", err)
	}

	log.Info("one-shot response received",
		zap.String("id", result.ID),
		zap.String("model", result.Model),
		zap.String("finish_reason", result.FinishReason),
		zap.Int("prompt_tokens", result.PromptTokens),
		zap.Int("completion_tokens", result.CompletionTokens),
		zap.String("answer_preview", util.Preview(result.Answer, answerPreviewLength)),
	)
	return result, nil
}

// CombineUploads joins uploaded files into a single prompt-ready string.
func (s *OneShotService) CombineUploads(files []content.File) string {
	logger.Get().Info("combining uploaded files", zap.Int("count", len(files)))
	return content.CombineFiles(files)
}
