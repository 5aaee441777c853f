// internal/latency/latency.go
//
// Simulated backend latency.  The original product faked network
// round-trips with timers that nothing ever canceled; here the wait is
// bound to the request context, so a client that navigates away stops
// the flow instead of orphaning work on stale state.  The success path
// is unchanged: the wait completes and the handler proceeds.
package latency

import (
	"context"
	"time"
)

// Wait blocks for d or until ctx is canceled, returning ctx.Err() in
// the latter case.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
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
