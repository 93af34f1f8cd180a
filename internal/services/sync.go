package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/robfig/cron/v3"

	"schoollink/internal/domain"
)

// SyncTicker is the placeholder background sync. It only reports the collection
// size and never touches the data.
type SyncTicker struct {
	store  domain.EventStore
	logger *slog.Logger
	cron   *cron.Cron
	ticks  atomic.Int64
}

// NewSyncTicker schedules the tick on a standard cron spec or a descriptor such as "@every 1m".
func NewSyncTicker(store domain.EventStore, schedule string, logger *slog.Logger) (*SyncTicker, error) {
	t := &SyncTicker{
		store:  store,
		logger: logger,
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
	if _, err := t.cron.AddFunc(schedule, t.tick); err != nil {
		return nil, fmt.Errorf("schedule sync %q: %w", schedule, err)
	}
	return t, nil
}

// Start runs the schedule until ctx is done and waits for a running tick to finish.
func (t *SyncTicker) Start(ctx context.Context) {
	t.cron.Start()
	t.logger.Info("sync ticker started")
	<-ctx.Done()
	<-t.cron.Stop().Done()
	t.logger.Info("sync ticker stopped", "ticks", t.ticks.Load())
}

func (t *SyncTicker) tick() {
	n := t.ticks.Add(1)
	t.logger.Debug("synchronizing events", "count", len(t.store.List(context.Background())), "tick", n)
}
