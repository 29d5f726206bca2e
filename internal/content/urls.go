package content

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/windoze95/aiplayground-api/internal/logger"
	"go.uber.org/zap"
)

const (
	maxPageBytes  = 2 * 1024 * 1024  // 2MB
	maxImageBytes = 10 * 1024 * 1024 // 10MB
)

var urlPattern = regexp.MustCompile(`https?://[^\s]+`)

// Fetcher retrieves the text behind a URL. ok is false when nothing usable
// came back; the reason is logged by the implementation.
type Fetcher interface {
	FetchURLContent(ctx context.Context, url string) (content string, ok bool)
}

// HTTPFetcher fetches URLs over HTTP with a bounded body size.
type HTTPFetcher struct {
	httpClient *http.Client
}

// NewHTTPFetcher creates a fetcher whose requests time out after timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPFetcher{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ExtractURLs returns every http(s) URL in text, in order of appearance.
// A URL runs until the next whitespace character.
func ExtractURLs(text string) []string {
	matches := urlPattern.FindAllString(text, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}

// FetchURLContent GETs url and returns its body as text. Invalid URLs,
// transport failures and non-2xx responses yield ("", false).
func (f *HTTPFetcher) FetchURLContent(ctx context.Context, url string) (string, bool) {
	log := logger.Get().With(zap.String("url", url))

	body, err := f.get(ctx, url, maxPageBytes)
	if err != nil {
		log.Error("failed to fetch URL", zap.Error(err))
		return "", false
	}
	return string(body), true
}

// DownloadBytes GETs url and returns the raw body, limited to 10MB.
func (f *HTTPFetcher) DownloadBytes(ctx context.Context, url string) ([]byte, error) {
	return f.get(ctx, url, maxImageBytes)
}

func (f *HTTPFetcher) get(ctx context.Context, url string, limit int64) ([]byte, error) {
	if !govalidator.IsURL(url) {
		return nil, fmt.Errorf("invalid URL %q", url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("URL returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	return body, nil
}

// BuildURLContents fetches each URL serially and joins the successful,
// non-empty results as "\nContent from <url>:\n<content>" sections.
func BuildURLContents(ctx context.Context, fetcher Fetcher, urls []string) string {
	log := logger.Get()
	var sb strings.Builder

	for _, url := range urls {
		log.Info("fetching content for URL", zap.String("url", url))
		content, ok := fetcher.FetchURLContent(ctx, url)
		if !ok || content == "" {
			log.Error("could not fetch content for URL", zap.String("url", url))
			continue
		}
		log.Info("fetched URL content", zap.String("url", url), zap.Int("length", len(content)))
		fmt.Fprintf(&sb, "\nContent from %s:\n%s", url, content)
	}

	return sb.String()
}
