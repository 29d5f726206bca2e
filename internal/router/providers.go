package router

import (
	"github.com/windoze95/aiplayground-api/internal/ai"
	"github.com/windoze95/aiplayground-api/internal/config"
	"github.com/windoze95/aiplayground-api/internal/logger"
	"github.com/windoze95/aiplayground-api/internal/metrics"
	"go.uber.org/zap"
)

// Providers holds one client per vendor capability. A nil field means the
// vendor has no credentials configured.
type Providers struct {
	Assistants ai.CodeGenerator
	Codestral  ai.CodeGenerator
	Claude     ai.CodeGenerator
	Chat       ai.ChatProvider
	Speech     ai.SpeechProvider
	Caption    ai.CaptionProvider
}

// NewProviders creates the vendor clients that cfg has credentials for.
func NewProviders(cfg *config.Config, m *metrics.Metrics) Providers {
	log := logger.Get()
	env := cfg.EnvVars
	var p Providers

	azureCfg := ai.AzureOpenAIConfig{
		Endpoint:   env.AzureOpenAIEndpoint,
		Deployment: env.AzureOpenAIDeployment,
		APIVersion: env.AzureOpenAIAPIVersion,
		APIKey:     env.AzureOpenAIAPIKey,
	}
	var tokens ai.TokenSource
	azureReady := azureCfg.Endpoint != "" && azureCfg.Deployment != ""
	if !azureReady {
		log.Warn("Azure OpenAI disabled: endpoint or deployment not set")
	} else if azureCfg.APIKey == "" {
		ts, err := ai.NewEntraTokenSource()
		if err != nil {
			log.Warn("Azure OpenAI disabled: no API key and no Entra ID credential", zap.Error(err))
			azureReady = false
		} else {
			tokens = ts
		}
	}
	if azureReady {
		if cfg.Prompts != nil {
			p.Assistants = ai.NewAssistantsProvider(azureCfg, tokens, cfg.Prompts.Assistant, m)
		}
		p.Chat = ai.NewAzureChatProvider(azureCfg, tokens, m)
	}

	if env.MistralAPIKey != "" {
		p.Codestral = ai.NewCodestralProvider(env.MistralAPIKey, m)
	}
	if env.AnthropicAPIKey != "" && cfg.Prompts != nil {
		p.Claude = ai.NewAnthropicProvider(env.AnthropicAPIKey, cfg.Prompts.Codegen, m)
	}
	if cfg.SpeechConfigured() {
		p.Speech = ai.NewAzureSpeechProvider(ai.AzureSpeechConfig{
			Key:      env.AzureSpeechKey,
			Region:   env.AzureSpeechRegion,
			Voice:    env.AzureSpeechVoice,
			Language: env.AzureSpeechLanguage,
		}, m)
	}
	if env.HuggingFaceToken != "" {
		p.Caption = ai.NewHuggingFaceProvider(env.HuggingFaceToken, m)
	}

	log.Info("providers configured",
		zap.Bool("azure_assistants", p.Assistants != nil),
		zap.Bool("azure_chat", p.Chat != nil),
		zap.Bool("codestral", p.Codestral != nil),
		zap.Bool("claude", p.Claude != nil),
		zap.Bool("azure_speech", p.Speech != nil),
		zap.Bool("huggingface", p.Caption != nil),
	)
	return p
}
