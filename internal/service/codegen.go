package service

import (
	"context"
	"fmt"

	"github.com/windoze95/aiplayground-api/internal/ai"
	"github.com/windoze95/aiplayground-api/internal/logger"
	"go.uber.org/zap"
)

// Codegen model identifiers accepted by the codegen endpoint.
const (
	ModelAzureAssistants = "azure-assistants-code-generator"
	ModelCodestral       = "mistral-codestral"
	ModelClaude          = "anthropic-claude"
)

// CodegenService routes code generation requests to the model's provider.
type CodegenService struct {
	Generators map[string]ai.CodeGenerator
}

// NewCodegenService creates a CodegenService. Pass nil for any generator
// that is not configured; the model stays known but its requests fail with
// ErrProviderUnavailable.
func NewCodegenService(assistants, codestral, claude ai.CodeGenerator) *CodegenService {
	return &CodegenService{
		Generators: map[string]ai.CodeGenerator{
			ModelAzureAssistants: assistants,
			ModelCodestral:       codestral,
			ModelClaude:          claude,
		},
	}
}

// Generate runs input through the generator registered for model. An empty
// model selects the Azure Assistants generator.
func (s *CodegenService) Generate(ctx context.Context, model, input string) (string, error) {
	if model == "" {
		model = ModelAzureAssistants
	}
	gen, known := s.Generators[model]
	if !known {
		return "", ErrInvalidModel
	}
	if gen == nil {
		return "", fmt.Errorf("%s: %w", model, ErrProviderUnavailable)
	}

	log := logger.Get().With(zap.String("model", model))
	log.Info("generating code", zap.Int("input_length", len(input)))

	answer, err := gen.GenerateCode(ctx, input)
	if err != nil {
		log.Error("code generation failed", zap.Error(err))
		return "", err
	}
	return answer, nil
}
