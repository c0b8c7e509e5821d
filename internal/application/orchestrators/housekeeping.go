package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// StoragePurger drops local storage entries not written since cutoff.
type StoragePurger interface {
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// VisitorSweeper forgets idle rate limiter visitors.
type VisitorSweeper interface {
	Sweep(idle time.Duration) int
}

// HousekeepingDeps holds dependencies for Housekeeping. Nil members are skipped.
type HousekeepingDeps struct {
	Storage    StoragePurger
	StorageTTL time.Duration
	Limiter    VisitorSweeper
	Now        func() time.Time
}

// visitorIdle is how long a rate limiter visitor is kept without requests.
const visitorIdle = 5 * time.Minute

// ExecuteHousekeeping purges abandoned browser entries and idle visitors.
// PRE: none
// POST: Entries older than StorageTTL are gone when a purger and a positive TTL are set
func ExecuteHousekeeping(ctx context.Context, deps HousekeepingDeps) error {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	if deps.Limiter != nil {
		if n := deps.Limiter.Sweep(visitorIdle); n > 0 {
			slog.Debug("rate_limit_sweep", "dropped", n)
		}
	}
	if deps.Storage == nil || deps.StorageTTL <= 0 {
		return nil
	}
	n, err := deps.Storage.PurgeBefore(ctx, now().Add(-deps.StorageTTL))
	if err != nil {
		return fmt.Errorf("purge local storage: %w", err)
	}
	if n > 0 {
		slog.Info("local_storage_purged", "entries", n, "ttl", deps.StorageTTL.String())
	}
	return nil
}

// StartBackgroundWorker runs housekeeping every interval.
// PRE: stopCh is provided to signal shutdown
// POST: Worker runs until stopCh is closed
func StartBackgroundWorker(deps HousekeepingDeps, interval time.Duration, stopCh <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
				if err := ExecuteHousekeeping(ctx, deps); err != nil {
					slog.Error("housekeeping_failed", "error", err.Error())
				}
				cancel()
			case <-stopCh:
				slog.Info("housekeeping_worker_stopped")
				return
			}
		}
	}()
}
