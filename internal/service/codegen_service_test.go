package service

import (
	"context"
	"errors"
	"testing"

	"github.com/windoze95/aiplayground-api/internal/testutil"
)

func TestCodegenGenerate_DefaultModel(t *testing.T) {
	assistants := &testutil.MockCodeGenerator{
		GenerateCodeFunc: func(ctx context.Context, prompt string) (string, error) {
			return testutil.TestGeneratedCode(), nil
		},
	}
	svc := NewCodegenService(assistants, &testutil.MockCodeGenerator{}, nil)

	got, err := svc.Generate(context.Background(), "", "add two numbers")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if got != testutil.TestGeneratedCode() {
		t.Errorf("Generate = %q", got)
	}
	if len(assistants.Prompts) != 1 || assistants.Prompts[0] != "add two numbers" {
		t.Errorf("assistants prompts = %v", assistants.Prompts)
	}
}

func TestCodegenGenerate_SelectsModel(t *testing.T) {
	codestral := &testutil.MockCodeGenerator{
		GenerateCodeFunc: func(ctx context.Context, prompt string) (string, error) {
			return "codestral says hi", nil
		},
	}
	assistants := &testutil.MockCodeGenerator{}
	svc := NewCodegenService(assistants, codestral, nil)

	got, err := svc.Generate(context.Background(), ModelCodestral, "x")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if got != "codestral says hi" {
		t.Errorf("Generate = %q", got)
	}
	if len(assistants.Prompts) != 0 {
		t.Error("assistants generator should not be called")
	}
}

func TestCodegenGenerate_InvalidModel(t *testing.T) {
	svc := NewCodegenService(&testutil.MockCodeGenerator{}, nil, nil)
	if _, err := svc.Generate(context.Background(), "gpt-2", "x"); !errors.Is(err, ErrInvalidModel) {
		t.Errorf("error = %v, want ErrInvalidModel", err)
	}
}

func TestCodegenGenerate_ProviderUnavailable(t *testing.T) {
	svc := NewCodegenService(&testutil.MockCodeGenerator{}, nil, nil)
	if _, err := svc.Generate(context.Background(), ModelClaude, "x"); !errors.Is(err, ErrProviderUnavailable) {
		t.Errorf("error = %v, want ErrProviderUnavailable", err)
	}
}

func TestCodegenGenerate_PropagatesError(t *testing.T) {
	upstream := errors.New("assistant run failed")
	svc := NewCodegenService(&testutil.MockCodeGenerator{
		GenerateCodeFunc: func(ctx context.Context, prompt string) (string, error) {
			return "", upstream
		},
	}, nil, nil)
	if _, err := svc.Generate(context.Background(), "", "x"); !errors.Is(err, upstream) {
		t.Errorf("error = %v, want upstream error", err)
	}
}
