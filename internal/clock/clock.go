// Package clock provides helpers for time-related operations.
package clock

import (
	"context"
	"time"
)

// Precision is the resolution of every instant the ledger stores and seals.
const Precision = time.Millisecond

// Now returns the current UTC instant truncated to Precision, so that a sealed
// timestamp survives a round trip through any store unchanged.
func Now() time.Time {
	return Truncate(time.Now())
}

// Truncate normalises t to UTC at Precision.
func Truncate(t time.Time) time.Time {
	return t.UTC().Truncate(Precision)
}

// SleepWithContext waits for the duration or returns early if the context is canceled.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
