package ai

import (
	"context"
	"time"

	"github.com/windoze95/aiplayground-api/internal/retry"
)

// skipWaits replaces the retrier's sleep so tests never block, and returns
// the waits it was asked for.
func skipWaits(r *retry.Retrier) *[]time.Duration {
	waits := &[]time.Duration{}
	r.Sleep = func(ctx context.Context, d time.Duration) error {
		*waits = append(*waits, d)
		return ctx.Err()
	}
	return waits
}
