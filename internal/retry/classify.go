package retry

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	openai "github.com/sashabaranov/go-openai"
)

// StatusError is implemented by errors that know the HTTP status of the
// response that produced them.
type StatusError interface {
	error
	HTTPStatus() int
}

// HeaderError is implemented by errors that keep the response headers.
type HeaderError interface {
	error
	ResponseHeader() http.Header
}

var retryAfterPhrase = regexp.MustCompile(`(?i)retry after (\d+) seconds?`)

// IsRateLimit reports whether err is a rate-limit failure: an HTTP 429
// anywhere in the chain, or a message mentioning "429" or "rate limit".
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	if statusCode(err) == http.StatusTooManyRequests {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(strings.ToLower(msg), "rate limit")
}

// RetryAfter extracts the server-requested wait from err. The Retry-After
// header wins over a "retry after N seconds" phrase in the message. Zero
// means the server did not say.
func RetryAfter(err error) time.Duration {
	if err == nil {
		return 0
	}
	if h := responseHeader(err); h != nil {
		if d, ok := parseRetryAfterHeader(h.Get("Retry-After")); ok {
			return d
		}
	}
	if m := retryAfterPhrase.FindStringSubmatch(err.Error()); m != nil {
		if secs, convErr := strconv.Atoi(m[1]); convErr == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return 0
}

// parseRetryAfterHeader accepts delay-seconds or an HTTP date.
func parseRetryAfterHeader(v string) (time.Duration, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0, false
		}
		return time.Duration(secs) * time.Second, true
	}
	if t, err := http.ParseTime(v); err == nil {
		d := time.Until(t)
		if d < 0 {
			d = 0
		}
		return d, true
	}
	return 0, false
}

// statusCode returns the HTTP status carried by err, or 0.
func statusCode(err error) int {
	var se StatusError
	if errors.As(err, &se) {
		return se.HTTPStatus()
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	var claudeErr *anthropic.Error
	if errors.As(err, &claudeErr) {
		return claudeErr.StatusCode
	}
	return 0
}

func responseHeader(err error) http.Header {
	var he HeaderError
	if errors.As(err, &he) {
		return he.ResponseHeader()
	}
	var claudeErr *anthropic.Error
	if errors.As(err, &claudeErr) && claudeErr.Response != nil {
		return claudeErr.Response.Header
	}
	return nil
}
