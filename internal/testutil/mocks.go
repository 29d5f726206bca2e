package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/windoze95/aiplayground-api/internal/ai"
)

// --- MockChatProvider ---

// MockChatProvider is a mock implementation of ai.ChatProvider.
type MockChatProvider struct {
	ChatCompletionFunc func(ctx context.Context, req ai.ChatRequest) (*ai.ChatResult, error)

	mu       sync.Mutex
	Requests []ai.ChatRequest
}

func (m *MockChatProvider) ChatCompletion(ctx context.Context, req ai.ChatRequest) (*ai.ChatResult, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	m.mu.Unlock()
	if m.ChatCompletionFunc != nil {
		return m.ChatCompletionFunc(ctx, req)
	}
	return nil, fmt.Errorf("ChatCompletion not configured")
}

// --- MockCodeGenerator ---

// MockCodeGenerator is a mock implementation of ai.CodeGenerator.
type MockCodeGenerator struct {
	GenerateCodeFunc func(ctx context.Context, prompt string) (string, error)

	mu      sync.Mutex
	Prompts []string
}

func (m *MockCodeGenerator) GenerateCode(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.Prompts = append(m.Prompts, prompt)
	m.mu.Unlock()
	if m.GenerateCodeFunc != nil {
		return m.GenerateCodeFunc(ctx, prompt)
	}
	return "", fmt.Errorf("GenerateCode not configured")
}

// --- MockSpeechProvider ---

// MockSpeechProvider is a mock implementation of ai.SpeechProvider.
type MockSpeechProvider struct {
	SynthesizeFunc func(ctx context.Context, text string) ([]byte, error)
	RecognizeFunc  func(ctx context.Context, wavAudio []byte) (string, error)

	mu          sync.Mutex
	Synthesized []string
}

func (m *MockSpeechProvider) Synthesize(ctx context.Context, text string) ([]byte, error) {
	m.mu.Lock()
	m.Synthesized = append(m.Synthesized, text)
	m.mu.Unlock()
	if m.SynthesizeFunc != nil {
		return m.SynthesizeFunc(ctx, text)
	}
	return nil, fmt.Errorf("Synthesize not configured")
}

func (m *MockSpeechProvider) Recognize(ctx context.Context, wavAudio []byte) (string, error) {
	if m.RecognizeFunc != nil {
		return m.RecognizeFunc(ctx, wavAudio)
	}
	return "", fmt.Errorf("Recognize not configured")
}

// --- MockCaptionProvider ---

// MockCaptionProvider is a mock implementation of ai.CaptionProvider.
type MockCaptionProvider struct {
	ImageToTextFunc func(ctx context.Context, image []byte, model string) (string, error)
}

func (m *MockCaptionProvider) ImageToText(ctx context.Context, image []byte, model string) (string, error) {
	if m.ImageToTextFunc != nil {
		return m.ImageToTextFunc(ctx, image, model)
	}
	return "", fmt.Errorf("ImageToText not configured")
}

// --- MockFetcher ---

// MockFetcher serves canned page bodies and download bytes keyed by URL.
// It implements content.Fetcher and service.Downloader.
type MockFetcher struct {
	Pages     map[string]string
	Downloads map[string][]byte

	mu      sync.Mutex
	Fetched []string
}

// NewMockFetcher creates an empty MockFetcher.
func NewMockFetcher() *MockFetcher {
	return &MockFetcher{
		Pages:     make(map[string]string),
		Downloads: make(map[string][]byte),
	}
}

func (m *MockFetcher) FetchURLContent(ctx context.Context, url string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Fetched = append(m.Fetched, url)
	page, ok := m.Pages[url]
	return page, ok
}

func (m *MockFetcher) DownloadBytes(ctx context.Context, url string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.Downloads[url]
	if !ok {
		return nil, fmt.Errorf("unexpected download: %s", url)
	}
	return data, nil
}
