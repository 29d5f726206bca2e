package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPrompts_RepositoryFile(t *testing.T) {
	prompts, err := LoadPrompts(filepath.Join("..", "..", "configs", "prompts.yaml"))
	if err != nil {
		t.Fatalf("LoadPrompts error: %v", err)
	}
	if prompts.Assistant.Name != "Math Tutor" {
		t.Errorf("assistant name = %q", prompts.Assistant.Name)
	}
	if prompts.Assistant.DefaultPrompt != "Write a function to add 2 numbers and return the result." {
		t.Errorf("default prompt = %q", prompts.Assistant.DefaultPrompt)
	}
	if prompts.Codegen.System == "" || prompts.OneShot.System == "" {
		t.Error("codegen and one_shot system prompts should be set")
	}
}

func TestLoadPrompts_MissingInstructions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	if err := os.WriteFile(path, []byte("assistant:\n  name: x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPrompts(path); err == nil {
		t.Fatal("expected error for empty instructions")
	}
}

func TestLoadPrompts_MissingFile(t *testing.T) {
	if _, err := LoadPrompts(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestRenderPrompt(t *testing.T) {
	got, err := RenderPrompt("  Generate {{.Languages}} code for: {{.Prompt}}\n", map[string]interface{}{
		"Languages": "Go",
		"Prompt":    "fizzbuzz",
	})
	if err != nil {
		t.Fatalf("RenderPrompt error: %v", err)
	}
	if got != "Generate Go code for: fizzbuzz" {
		t.Errorf("RenderPrompt = %q", got)
	}
}

func TestRenderPrompt_BadTemplate(t *testing.T) {
	if _, err := RenderPrompt("{{.Prompt", nil); err == nil {
		t.Fatal("expected parse error")
	}
}
