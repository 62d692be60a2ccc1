// Package jobs registers the periodic maintenance tasks.
package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Karin-Goldin/wedding-app/pkg/internal/service"
	"github.com/Karin-Goldin/wedding-app/pkg/internal/storage"
	"github.com/Karin-Goldin/wedding-app/pkg/log"
	"github.com/Karin-Goldin/wedding-app/pkg/scheduler"
)

var (
	mu      sync.RWMutex
	current *scheduler.Scheduler
)

// Current returns the running scheduler, nil before RegisterCronJobs.
func Current() *scheduler.Scheduler {
	mu.RLock()
	defer mu.RUnlock()

	return current
}

// RegisterCronJobs wires the maintenance tasks:
//   - every minute: sweep lapsed upload rate-limit windows
//   - daily 08:00: log storage usage
func RegisterCronJobs(sched *scheduler.Scheduler, mgr *storage.Manager) error {
	if sched == nil {
		return fmt.Errorf("scheduler is nil")
	}

	if mgr == nil {
		return fmt.Errorf("storage manager is nil")
	}

	baseCtx := storage.WithManager(context.Background(), mgr)

	sweepInterval, err := time.ParseDuration(CounterSweepInterval)
	if err != nil {
		return fmt.Errorf("parse sweep interval: %w", err)
	}

	if err := sched.AddInterval(JobCounterSweep, sweepInterval, runCounterSweep, baseCtx); err != nil {
		return err
	}

	if err := sched.AddCron(JobUsageReport, CronUsageReport, runUsageReport, baseCtx); err != nil {
		return err
	}

	mu.Lock()
	current = sched
	mu.Unlock()

	return nil
}

// runCounterSweep evicts rate-limit windows that already ended, so the
// counter map does not grow with every client address ever seen.
func runCounterSweep(ctx context.Context) {
	removed := service.SharedCounterStore().Sweep(ctx, time.Now())
	if removed > 0 {
		log.Logger().Debug().Int("removed", removed).Msg("swept lapsed upload windows")
	}
}

// runUsageReport logs bucket usage once a day.
func runUsageReport(ctx context.Context) {
	l := log.Logger().With().Str("job", JobUsageReport).Logger()

	svc := service.NewMediaService(ctx)

	usage, err := svc.Usage(ctx)
	if err != nil {
		l.Error().Err(err).Msg("usage report failed")
		return
	}

	l.Info().Int64("bytes", usage.Bytes).Int("objects", usage.Count).Msg("storage usage")
}
