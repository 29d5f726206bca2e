package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCodestral_GenerateCode(t *testing.T) {
	var got fimRequest
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"fim-1","model":"codestral-latest","choices":[{"message":{"content":"def add(a, b):\n    return a + b"},"finish_reason":"stop"}]}`)
	}))
	defer srv.Close()

	p := NewCodestralProvider("mistral-key", nil)
	p.Endpoint = srv.URL

	code, err := p.GenerateCode(context.Background(), "def add(a, b):")
	if err != nil {
		t.Fatalf("GenerateCode error: %v", err)
	}
	if code != "def add(a, b):\n    return a + b" {
		t.Errorf("GenerateCode = %q", code)
	}
	if gotAuth != "Bearer mistral-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if got.Model != "codestral-latest" || got.Prompt != "def add(a, b):" || got.Suffix != "" {
		t.Errorf("request = %+v", got)
	}
}

func TestCodestral_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id":"fim-2","choices":[]}`)
	}))
	defer srv.Close()

	p := NewCodestralProvider("mistral-key", nil)
	p.Endpoint = srv.URL

	code, err := p.GenerateCode(context.Background(), "x")
	if err != nil {
		t.Fatalf("GenerateCode error: %v", err)
	}
	if code != "" {
		t.Errorf("GenerateCode = %q, want empty", code)
	}
}

func TestCodestral_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"message":"Unauthorized"}`)
	}))
	defer srv.Close()

	p := NewCodestralProvider("bad-key", nil)
	p.Endpoint = srv.URL

	_, err := p.GenerateCode(context.Background(), "x")
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", apiErr.StatusCode)
	}
	if want := `codestral: HTTP error! status: 401: {"message":"Unauthorized"}`; apiErr.Error() != want {
		t.Errorf("Error() = %q, want %q", apiErr.Error(), want)
	}
}

func TestCodestral_RetriesWithRetryAfterHeader(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.Header().Set("Retry-After", "4")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		io.WriteString(w, `{"id":"fim-3","choices":[{"message":{"content":"ok"}}]}`)
	}))
	defer srv.Close()

	p := NewCodestralProvider("mistral-key", nil)
	p.Endpoint = srv.URL
	waits := skipWaits(p.Retrier)

	code, err := p.GenerateCode(context.Background(), "x")
	if err != nil {
		t.Fatalf("GenerateCode error: %v", err)
	}
	if code != "ok" {
		t.Errorf("GenerateCode = %q", code)
	}
	// Backoff is 1s then 2s, both below the server's 4s.
	want := []time.Duration{4 * time.Second, 4 * time.Second}
	if len(*waits) != len(want) || (*waits)[0] != want[0] || (*waits)[1] != want[1] {
		t.Errorf("waits = %v, want %v", *waits, want)
	}
}

func TestCodestral_MissingKey(t *testing.T) {
	if _, err := NewCodestralProvider("", nil).GenerateCode(context.Background(), "x"); err == nil {
		t.Fatal("expected error without API key")
	}
}
