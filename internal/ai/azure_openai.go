package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	openai "github.com/sashabaranov/go-openai"
	"github.com/windoze95/aiplayground-api/internal/logger"
	"github.com/windoze95/aiplayground-api/internal/metrics"
	"github.com/windoze95/aiplayground-api/internal/retry"
	"go.uber.org/zap"
)

// cognitiveServicesScope is the Entra ID scope for Azure OpenAI.
const cognitiveServicesScope = "https://cognitiveservices.azure.com/.default"

// AzureOpenAIConfig identifies an Azure OpenAI deployment.
type AzureOpenAIConfig struct {
	Endpoint   string
	Deployment string
	APIVersion string
	// APIKey is sent as the api-key header. When empty, TokenSource is
	// used to obtain a bearer token instead.
	APIKey string
}

// TokenSource yields bearer tokens for Azure OpenAI.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// EntraTokenSource obtains tokens through the default Azure credential
// chain (environment, workload identity, managed identity, Azure CLI).
type EntraTokenSource struct {
	cred  *azidentity.DefaultAzureCredential
	scope string
}

// NewEntraTokenSource creates a token source for the Cognitive Services scope.
func NewEntraTokenSource() (*EntraTokenSource, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("create Azure credential: %w", err)
	}
	return &EntraTokenSource{cred: cred, scope: cognitiveServicesScope}, nil
}

// Token returns a fresh access token.
func (s *EntraTokenSource) Token(ctx context.Context) (string, error) {
	tok, err := s.cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{s.scope}})
	if err != nil {
		return "", fmt.Errorf("get Azure access token: %w", err)
	}
	return tok.Token, nil
}

// newAzureClient builds a go-openai client for the deployment, using the
// API key when present and a bearer token otherwise.
func newAzureClient(ctx context.Context, cfg AzureOpenAIConfig, tokens TokenSource) (*openai.Client, error) {
	var clientCfg openai.ClientConfig
	switch {
	case cfg.APIKey != "":
		clientCfg = openai.DefaultAzureConfig(cfg.APIKey, cfg.Endpoint)
	case tokens != nil:
		token, err := tokens.Token(ctx)
		if err != nil {
			return nil, err
		}
		clientCfg = openai.DefaultAzureConfig(token, cfg.Endpoint)
		clientCfg.APIType = openai.APITypeAzureAD
	default:
		return nil, errors.New("azure openai: neither an API key nor a token source is configured")
	}

	if cfg.APIVersion != "" {
		clientCfg.APIVersion = cfg.APIVersion
	}
	deployment := cfg.Deployment
	clientCfg.AzureModelMapperFunc = func(model string) string {
		return deployment
	}
	return openai.NewClientWithConfig(clientCfg), nil
}

// AzureChatProvider implements ChatProvider using Azure OpenAI chat
// completions, retried on rate limits with retry.ChatPolicy.
type AzureChatProvider struct {
	cfg      AzureOpenAIConfig
	tokens   TokenSource
	Retrier  *retry.Retrier
	Observer UpstreamObserver
}

// NewAzureChatProvider creates a chat provider for the given deployment.
// tokens may be nil when cfg.APIKey is set.
func NewAzureChatProvider(cfg AzureOpenAIConfig, tokens TokenSource, m *metrics.Metrics) *AzureChatProvider {
	return &AzureChatProvider{
		cfg:      cfg,
		tokens:   tokens,
		Retrier:  retry.New("azure_chat_completion", retry.ChatPolicy(), retry.WithObserver(m)),
		Observer: m,
	}
}

// ChatCompletion sends the system prompt and the combined full prompt as a
// two-message conversation.
func (p *AzureChatProvider) ChatCompletion(ctx context.Context, req ChatRequest) (*ChatResult, error) {
	client, err := newAzureClient(ctx, p.cfg, p.tokens)
	if err != nil {
		return nil, err
	}

	model := req.Model
	if model == "" {
		model = p.cfg.Deployment
	}
	chatReq := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.FullPrompt()},
		},
	}

	log := logger.Get().With(zap.String("provider", "azure_openai"), zap.String("model", model))
	log.Info("sending chat completion", zap.Int("prompt_length", len(chatReq.Messages[1].Content)))

	resp, err := retry.Do(ctx, p.Retrier, func(ctx context.Context) (openai.ChatCompletionResponse, error) {
		start := time.Now()
		resp, err := client.CreateChatCompletion(ctx, chatReq)
		observe(p.Observer, "azure_openai_chat", start, err)
		return resp, err
	})
	if err != nil {
		return nil, fmt.Errorf("azure chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("azure chat completion returned no choices")
	}

	return &ChatResult{
		ID:               resp.ID,
		Model:            resp.Model,
		Answer:           resp.Choices[0].Message.Content,
		FinishReason:     string(resp.Choices[0].FinishReason),
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}, nil
}
