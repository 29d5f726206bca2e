package config

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	EnvVars EnvVars  `json:"env"`
	Prompts *Prompts `json:"-"`
}

// EnvVars holds environment variables required by the application.
// Fields tagged `optional:"true"` are skipped by CheckConfigEnvFields.
type EnvVars struct {
	Port        string `env:"PORT" envDefault:"5000"`
	PublicDir   string `env:"PUBLIC_DIR" envDefault:"public"`
	PromptsPath string `env:"PROMPTS_PATH" envDefault:"configs/prompts.yaml"`

	// Azure OpenAI routes answer 503 until both are set.
	AzureOpenAIEndpoint   string `env:"AZURE_OPENAI_ENDPOINT" optional:"true"`
	AzureOpenAIDeployment string `env:"AZURE_OPENAI_DEPLOYMENT_NAME" optional:"true"`
	AzureOpenAIAPIVersion string `env:"AZURE_OPENAI_API_VERSION" envDefault:"2024-05-01-preview"`
	// Without a key, Assistants calls authenticate with Entra ID.
	AzureOpenAIAPIKey string `env:"AZURE_OPENAI_API_KEY" optional:"true"`

	MistralAPIKey   string `env:"MISTRAL_API_KEY" optional:"true"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY" optional:"true"`

	AzureSpeechKey      string `env:"AZURE_SPEECH_KEY" optional:"true"`
	AzureSpeechRegion   string `env:"AZURE_SPEECH_REGION" optional:"true"`
	AzureSpeechVoice    string `env:"AZURE_SPEECH_VOICE" envDefault:"en-US-JennyNeural"`
	AzureSpeechLanguage string `env:"AZURE_SPEECH_LANGUAGE" envDefault:"en-US"`

	HuggingFaceToken string `env:"HUGGING_FACE_ACCESS_TOKEN" optional:"true"`

	RateLimitRPS int           `env:"RATE_LIMIT_RPS" envDefault:"10"`
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT" envDefault:"15s"`
}

// LoadConfig loads an optional .env file and parses environment variables
// into the Config struct. Variables already set in the environment win.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	var config Config
	if err := env.Parse(&config.EnvVars); err != nil {
		return nil, err
	}
	return &config, nil
}

// CheckConfigEnvFields validates that all required EnvVars fields are set.
func (c *Config) CheckConfigEnvFields() error {
	return checkFieldsRecursive(reflect.ValueOf(c.EnvVars))
}

// SpeechConfigured reports whether Azure Speech credentials are present.
func (c *Config) SpeechConfigured() bool {
	return c.EnvVars.AzureSpeechKey != "" && c.EnvVars.AzureSpeechRegion != ""
}

func checkFieldsRecursive(v reflect.Value) error {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := v.Type().Field(i)
		if fieldType.Tag.Get("optional") == "true" {
			continue
		}
		if isZeroValue(field) {
			name := fieldType.Tag.Get("env")
			if name == "" {
				name = fieldType.Name
			}
			return fmt.Errorf("$%s must be set", name)
		}
		if field.Kind() == reflect.Struct {
			if err := checkFieldsRecursive(field); err != nil {
				return err
			}
		}
	}
	return nil
}

func isZeroValue(v reflect.Value) bool {
	return v.Interface() == reflect.Zero(v.Type()).Interface()
}
