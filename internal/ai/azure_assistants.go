package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/windoze95/aiplayground-api/internal/config"
	"github.com/windoze95/aiplayground-api/internal/logger"
	"github.com/windoze95/aiplayground-api/internal/metrics"
	"github.com/windoze95/aiplayground-api/internal/util"
	"go.uber.org/zap"
)

const defaultRunPollInterval = 500 * time.Millisecond

// AssistantsProvider implements CodeGenerator on top of the Azure OpenAI
// Assistants API with the code interpreter tool enabled. Every call creates
// its own assistant and thread.
type AssistantsProvider struct {
	cfg          AzureOpenAIConfig
	tokens       TokenSource
	prompts      config.AssistantPrompts
	PollInterval time.Duration
	Observer     UpstreamObserver
}

// NewAssistantsProvider creates an Assistants-backed code generator.
// tokens may be nil when cfg.APIKey is set.
func NewAssistantsProvider(cfg AzureOpenAIConfig, tokens TokenSource, prompts config.AssistantPrompts, m *metrics.Metrics) *AssistantsProvider {
	return &AssistantsProvider{
		cfg:          cfg,
		tokens:       tokens,
		prompts:      prompts,
		PollInterval: defaultRunPollInterval,
		Observer:     m,
	}
}

// GenerateCode creates an assistant and a thread, posts the prompt, runs
// the thread to a terminal state and returns the concatenated text of every
// message in the thread.
func (p *AssistantsProvider) GenerateCode(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	answer, err := p.generateCode(ctx, prompt)
	observe(p.Observer, "azure_assistants", start, err)
	return answer, err
}

func (p *AssistantsProvider) generateCode(ctx context.Context, prompt string) (string, error) {
	client, err := newAzureClient(ctx, p.cfg, p.tokens)
	if err != nil {
		return "", err
	}
	log := logger.Get().With(zap.String("provider", "azure_assistants"))

	message := prompt
	if strings.TrimSpace(message) == "" {
		message = p.prompts.DefaultPrompt
	}

	name := p.prompts.Name
	instructions := p.prompts.Instructions
	assistant, err := client.CreateAssistant(ctx, openai.AssistantRequest{
		Model:        p.cfg.Deployment,
		Name:         &name,
		Instructions: &instructions,
		Tools: []openai.AssistantTool{
			{Type: openai.AssistantToolTypeCodeInterpreter},
		},
	})
	if err != nil {
		return "", fmt.Errorf("create assistant: %w", err)
	}
	log.Info("assistant created", zap.String("assistant_id", assistant.ID))
	if raw, err := util.SerializeToJSONString(assistant); err == nil {
		log.Debug("assistant definition", zap.String("assistant", raw))
	}

	thread, err := client.CreateThread(ctx, openai.ThreadRequest{})
	if err != nil {
		return "", fmt.Errorf("create thread: %w", err)
	}
	log.Info("thread created", zap.String("thread_id", thread.ID))

	msg, err := client.CreateMessage(ctx, thread.ID, openai.MessageRequest{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})
	if err != nil {
		return "", fmt.Errorf("create message: %w", err)
	}
	log.Info("message created", zap.String("message_id", msg.ID))

	run, err := client.CreateRun(ctx, thread.ID, openai.RunRequest{AssistantID: assistant.ID})
	if err != nil {
		return "", fmt.Errorf("create run: %w", err)
	}

	run, err = p.pollRun(ctx, client, thread.ID, run)
	if err != nil {
		return "", err
	}
	log.Info("run finished", zap.String("run_id", run.ID), zap.String("status", string(run.Status)))

	if string(run.Status) != "completed" {
		reason := ""
		if run.LastError != nil {
			reason = ": " + run.LastError.Message
		}
		return "", fmt.Errorf("assistant run %s ended with status %q%s", run.ID, run.Status, reason)
	}

	return p.collectText(ctx, client, thread.ID)
}

// pollRun re-reads the run every PollInterval until it leaves the queued
// or in-progress states.
func (p *AssistantsProvider) pollRun(ctx context.Context, client *openai.Client, threadID string, run openai.Run) (openai.Run, error) {
	interval := p.PollInterval
	if interval <= 0 {
		interval = defaultRunPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for !isTerminalRunStatus(string(run.Status)) {
		select {
		case <-ctx.Done():
			return run, ctx.Err()
		case <-ticker.C:
		}

		var err error
		run, err = client.RetrieveRun(ctx, threadID, run.ID)
		if err != nil {
			return run, fmt.Errorf("retrieve run: %w", err)
		}
	}
	return run, nil
}

// collectText concatenates the text content of every message in the
// thread, following pagination.
func (p *AssistantsProvider) collectText(ctx context.Context, client *openai.Client, threadID string) (string, error) {
	var sb strings.Builder
	var after *string

	for {
		page, err := client.ListMessage(ctx, threadID, nil, nil, after, nil, nil)
		if err != nil {
			return "", fmt.Errorf("list messages: %w", err)
		}
		for _, m := range page.Messages {
			for _, c := range m.Content {
				if c.Type == "text" && c.Text != nil {
					sb.WriteString(c.Text.Value)
				}
			}
		}
		if !page.HasMore || page.LastID == nil {
			break
		}
		after = page.LastID
	}

	return sb.String(), nil
}

// isTerminalRunStatus matches the states the run poller stops on.
func isTerminalRunStatus(status string) bool {
	switch status {
	case "completed", "failed", "cancelled", "expired", "requires_action", "incomplete":
		return true
	}
	return false
}
