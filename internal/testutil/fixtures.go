package testutil

import (
	"time"

	"github.com/windoze95/aiplayground-api/internal/ai"
	"github.com/windoze95/aiplayground-api/internal/config"
)

// TestChatResult creates a chat completion result with realistic fields.
func TestChatResult() *ai.ChatResult {
	return &ai.ChatResult{
		ID:               "chatcmpl-test",
		Model:            "gpt-4o",
		Answer:           "The page describes the Go release cycle.",
		FinishReason:     "stop",
		PromptTokens:     120,
		CompletionTokens: 18,
	}
}

// TestGeneratedCode is a fenced reply like the Assistants generator returns.
func TestGeneratedCode() string {
	return "```javascript\nfunction add(a, b) {\n  return a + b;\n}\n```"
}

// TestPrompts creates a prompt configuration matching configs/prompts.yaml.
func TestPrompts() *config.Prompts {
	return &config.Prompts{
		Assistant: config.AssistantPrompts{
			Name:          "Math Tutor",
			Instructions:  "You are a personal math tutor. Write and run JavaScript code to answer math questions.",
			DefaultPrompt: "Write a function to add 2 numbers and return the result.",
		},
		Codegen: config.PromptPair{
			System: "Given a prompt, generate code in {{.Languages}} that solves the problem.",
			User:   "{{.Prompt}}",
		},
		OneShot: config.PromptPair{
			System: "You are a helpful assistant.",
		},
	}
}

// TestConfig creates a config with every provider credential populated.
func TestConfig() *config.Config {
	return &config.Config{
		EnvVars: config.EnvVars{
			Port:                  "5000",
			PublicDir:             "public",
			PromptsPath:           "configs/prompts.yaml",
			AzureOpenAIEndpoint:   "https://example.openai.azure.com",
			AzureOpenAIDeployment: "gpt-4o",
			AzureOpenAIAPIVersion: "2024-05-01-preview",
			AzureOpenAIAPIKey:     "azure-key",
			MistralAPIKey:         "mistral-key",
			AnthropicAPIKey:       "anthropic-key",
			AzureSpeechKey:        "speech-key",
			AzureSpeechRegion:     "eastus",
			AzureSpeechVoice:      "en-US-JennyNeural",
			AzureSpeechLanguage:   "en-US",
			HuggingFaceToken:      "hf-token",
			RateLimitRPS:          10,
			FetchTimeout:          15 * time.Second,
		},
		Prompts: TestPrompts(),
	}
}
