package ai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/windoze95/aiplayground-api/internal/util"
)

// ChatProvider handles single-turn chat completions (Azure OpenAI).
type ChatProvider interface {
	ChatCompletion(ctx context.Context, req ChatRequest) (*ChatResult, error)
}

// CodeGenerator turns a prompt into generated source code
// (Azure Assistants, Mistral Codestral, Claude).
type CodeGenerator interface {
	GenerateCode(ctx context.Context, prompt string) (string, error)
}

// SpeechProvider handles text-to-speech and speech-to-text (Azure Speech).
type SpeechProvider interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
	Recognize(ctx context.Context, wavAudio []byte) (string, error)
}

// CaptionProvider describes an image in text (Hugging Face Inference).
type CaptionProvider interface {
	ImageToText(ctx context.Context, image []byte, model string) (string, error)
}

// ChatRequest holds the prompts for a one-shot completion.
type ChatRequest struct {
	SystemPrompt string
	UserPrompt   string
	// URLContents is appended to the user prompt verbatim.
	URLContents string
	Model       string
}

// FullPrompt joins the system prompt, user prompt and URL contents the way
// they are sent as the user message.
func (r ChatRequest) FullPrompt() string {
	return fmt.Sprintf("%s\n\n%s\n\n%s", r.SystemPrompt, r.UserPrompt, r.URLContents)
}

// ChatResult is the relevant part of a chat completion response.
type ChatResult struct {
	ID               string
	Model            string
	Answer           string
	FinishReason     string
	PromptTokens     int
	CompletionTokens int
}

// APIError is returned by the plain-HTTP vendor clients when the upstream
// answers with a non-2xx status. It exposes status and headers so the retry
// package can classify it.
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
	Header     http.Header
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: HTTP error! status: %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s: HTTP error! status: %d: %s", e.Provider, e.StatusCode, e.Body)
}

// HTTPStatus implements retry.StatusError.
func (e *APIError) HTTPStatus() int { return e.StatusCode }

// ResponseHeader implements retry.HeaderError.
func (e *APIError) ResponseHeader() http.Header { return e.Header }

// UpstreamObserver is notified after each vendor call.
type UpstreamObserver interface {
	ObserveUpstream(provider string, elapsed time.Duration, err error)
}

func observe(o UpstreamObserver, provider string, start time.Time, err error) {
	if o != nil {
		o.ObserveUpstream(provider, time.Since(start), err)
	}
}

// newAPIError builds an APIError from a response whose body was already read.
func newAPIError(provider string, resp *http.Response, body []byte) *APIError {
	const maxBody = 500
	return &APIError{
		Provider:   provider,
		StatusCode: resp.StatusCode,
		Body:       util.Truncate(string(body), maxBody),
		Header:     resp.Header.Clone(),
	}
}
