package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validEnvVars() EnvVars {
	return EnvVars{
		Port:                  "5000",
		PublicDir:             "public",
		PromptsPath:           "configs/prompts.yaml",
		AzureOpenAIEndpoint:   "https://example.openai.azure.com",
		AzureOpenAIDeployment: "gpt-4o",
		AzureOpenAIAPIVersion: "2024-05-01-preview",
		AzureSpeechVoice:      "en-US-JennyNeural",
		AzureSpeechLanguage:   "en-US",
		RateLimitRPS:          10,
		FetchTimeout:          15 * time.Second,
	}
}

func TestCheckConfigEnvFields_OptionalMayBeEmpty(t *testing.T) {
	cfg := &Config{EnvVars: validEnvVars()}
	if err := cfg.CheckConfigEnvFields(); err != nil {
		t.Errorf("CheckConfigEnvFields error: %v", err)
	}
}

func TestCheckConfigEnvFields_AzureMayBeUnset(t *testing.T) {
	env := validEnvVars()
	env.AzureOpenAIEndpoint = ""
	env.AzureOpenAIDeployment = ""
	cfg := &Config{EnvVars: env}

	if err := cfg.CheckConfigEnvFields(); err != nil {
		t.Errorf("CheckConfigEnvFields error: %v", err)
	}
}

func TestCheckConfigEnvFields_MissingRequired(t *testing.T) {
	env := validEnvVars()
	env.PromptsPath = ""
	cfg := &Config{EnvVars: env}

	err := cfg.CheckConfigEnvFields()
	if err == nil {
		t.Fatal("expected error for missing prompts path")
	}
	if !strings.Contains(err.Error(), "PROMPTS_PATH") {
		t.Errorf("error = %v, want env var name", err)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	// LoadConfig reads .env from the working directory; run from an empty one.
	wd, _ := os.Getwd()
	dir := t.TempDir()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	t.Setenv("AZURE_OPENAI_ENDPOINT", "https://example.openai.azure.com")
	t.Setenv("AZURE_OPENAI_DEPLOYMENT_NAME", "gpt-4o")
	t.Setenv("FETCH_TIMEOUT", "3s")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.EnvVars.AzureOpenAIAPIVersion != "2024-05-01-preview" {
		t.Errorf("APIVersion = %q", cfg.EnvVars.AzureOpenAIAPIVersion)
	}
	if cfg.EnvVars.FetchTimeout != 3*time.Second {
		t.Errorf("FetchTimeout = %v, want 3s", cfg.EnvVars.FetchTimeout)
	}
	if cfg.EnvVars.RateLimitRPS != 10 {
		t.Errorf("RateLimitRPS = %d, want 10", cfg.EnvVars.RateLimitRPS)
	}
}

func TestLoadConfig_DotEnvFile(t *testing.T) {
	wd, _ := os.Getwd()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("AZURE_SPEECH_REGION=westeurope\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	// t.Setenv restores the variable godotenv sets once the test ends.
	t.Setenv("AZURE_SPEECH_REGION", "")
	os.Unsetenv("AZURE_SPEECH_REGION")
	t.Setenv("AZURE_SPEECH_KEY", "k")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.EnvVars.AzureSpeechRegion != "westeurope" {
		t.Errorf("AzureSpeechRegion = %q, want value from .env", cfg.EnvVars.AzureSpeechRegion)
	}
	if !cfg.SpeechConfigured() {
		t.Error("SpeechConfigured = false, want true")
	}
}
