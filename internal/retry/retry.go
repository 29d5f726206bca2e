// Package retry wraps vendor API calls with bounded exponential backoff.
// Only rate-limit failures are retried; every other error is returned to
// the caller on the first attempt.
package retry

import (
	"context"
	"math"
	"time"

	"github.com/windoze95/aiplayground-api/internal/logger"
	"github.com/windoze95/aiplayground-api/internal/util"
	"go.uber.org/zap"
)

// Policy bounds how often and how long an operation is retried.
type Policy struct {
	// MaxRetries is the number of extra attempts after the first one.
	MaxRetries int
	BaseDelay  time.Duration
	// MaxDelay caps the exponential schedule. A server-supplied
	// retry-after may still exceed it.
	MaxDelay time.Duration
}

// DefaultPolicy allows 4 attempts starting at 1s and capped at 60s.
func DefaultPolicy() Policy {
	return Policy{MaxRetries: 3, BaseDelay: time.Second, MaxDelay: 60 * time.Second}
}

// ChatPolicy is used around chat completions: 4 attempts, 2s base, 65s cap.
func ChatPolicy() Policy {
	return Policy{MaxRetries: 3, BaseDelay: 2 * time.Second, MaxDelay: 65 * time.Second}
}

// Observer is notified every time a retry is scheduled.
type Observer interface {
	ObserveRetry(operation string, attempt int, wait time.Duration)
}

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Retrier applies a Policy to operations. The zero value is not usable;
// construct one with New.
type Retrier struct {
	Name     string
	Policy   Policy
	Sleep    SleepFunc
	Observer Observer
}

// Option configures a Retrier.
type Option func(*Retrier)

// WithSleep replaces the wait function, mostly for tests.
func WithSleep(sleep SleepFunc) Option {
	return func(r *Retrier) { r.Sleep = sleep }
}

// WithObserver attaches a retry observer such as the metrics collector.
func WithObserver(o Observer) Option {
	return func(r *Retrier) { r.Observer = o }
}

// New creates a Retrier named after the operation it protects.
func New(name string, policy Policy, opts ...Option) *Retrier {
	if policy.MaxRetries < 0 {
		policy.MaxRetries = 0
	}
	r := &Retrier{Name: name, Policy: policy, Sleep: sleepContext}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Do invokes op until it succeeds, fails with a non-rate-limit error, or
// the attempt budget is spent. The last error is returned unchanged.
func Do[T any](ctx context.Context, r *Retrier, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error
	log := logger.Get().With(zap.String("operation", r.Name))
	maxAttempts := r.Policy.MaxRetries + 1

	for attempt := 0; attempt <= r.Policy.MaxRetries; attempt++ {
		log.Debug("attempting operation",
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", maxAttempts),
		)

		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !IsRateLimit(err) || attempt == r.Policy.MaxRetries {
			log.Info("non-retryable error or max retries reached",
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
			return zero, err
		}

		delay := Backoff(r.Policy, attempt)
		retryAfter := RetryAfter(err)
		wait := max(delay, retryAfter)

		log.Warn("rate limit hit, retrying",
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", maxAttempts),
			zap.Duration("wait", wait),
			zap.Duration("retry_after", retryAfter),
			zap.Int("status", statusCode(err)),
			zap.String("message", util.Truncate(err.Error(), 200)),
		)

		if r.Observer != nil {
			r.Observer.ObserveRetry(r.Name, attempt+1, wait)
		}

		if err := r.sleep(ctx, wait); err != nil {
			return zero, err
		}
	}

	return zero, lastErr
}

// Backoff returns min(BaseDelay * 2^attempt, MaxDelay). A non-positive
// MaxDelay leaves the schedule uncapped.
func Backoff(p Policy, attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := p.BaseDelay
	for i := 0; i < attempt; i++ {
		if p.MaxDelay > 0 && d >= p.MaxDelay {
			break
		}
		if d > math.MaxInt64/2 {
			return time.Duration(math.MaxInt64)
		}
		d *= 2
	}
	if p.MaxDelay > 0 && d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}

func (r *Retrier) sleep(ctx context.Context, d time.Duration) error {
	if r.Sleep == nil {
		return sleepContext(ctx, d)
	}
	return r.Sleep(ctx, d)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
