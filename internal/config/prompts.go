package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

// PromptPair holds a system and user prompt template.
type PromptPair struct {
	System string `yaml:"system"`
	User   string `yaml:"user"`
}

// AssistantPrompts configures the hosted Assistants code generator.
type AssistantPrompts struct {
	Name          string `yaml:"name"`
	Instructions  string `yaml:"instructions"`
	DefaultPrompt string `yaml:"default_prompt"`
}

// Prompts is the top-level prompt configuration loaded from YAML.
type Prompts struct {
	Assistant AssistantPrompts `yaml:"assistant"`
	Codegen   PromptPair       `yaml:"codegen"`
	OneShot   PromptPair       `yaml:"one_shot"`
}

// LoadPrompts reads and parses a YAML prompt configuration file.
func LoadPrompts(path string) (*Prompts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts file: %w", err)
	}

	var prompts Prompts
	if err := yaml.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompts YAML: %w", err)
	}

	if prompts.Assistant.Instructions == "" {
		return nil, fmt.Errorf("prompts file %s: assistant.instructions is empty", path)
	}

	return &prompts, nil
}

// RenderPrompt executes Go template interpolation on a prompt string.
// The data map provides values for template placeholders like {{.Prompt}}
// and {{.Languages}}.
func RenderPrompt(tmpl string, data map[string]interface{}) (string, error) {
	t, err := template.New("prompt").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse prompt template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt template: %w", err)
	}

	return strings.TrimSpace(buf.String()), nil
}
