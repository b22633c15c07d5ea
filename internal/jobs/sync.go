// Package jobs holds the background workers started alongside the HTTP
// server.
package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vj-tring/SalesBoostAI-V1/internal/model"
)

// CatalogSyncer runs one catalog synchronization pass.
type CatalogSyncer interface {
	Sync(ctx context.Context) ([]model.Product, error)
}

// SyncJob refreshes the product catalog from the commerce platform on a
// fixed interval. An interval of zero or less disables the job.
type SyncJob struct {
	syncer   CatalogSyncer
	interval time.Duration
	done     chan struct{}
}

func NewSyncJob(syncer CatalogSyncer, interval time.Duration) *SyncJob {
	return &SyncJob{
		syncer:   syncer,
		interval: interval,
		done:     make(chan struct{}),
	}
}

func (j *SyncJob) Start() {
	if j.interval <= 0 {
		log.Info().Msg("catalog sync job disabled")
		return
	}
	go j.run()
	log.Info().Dur("interval", j.interval).Msg("catalog sync job started")
}

func (j *SyncJob) Stop() {
	close(j.done)
	log.Info().Msg("catalog sync job stopped")
}

func (j *SyncJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.sync()

	for {
		select {
		case <-j.done:
			return
		case <-ticker.C:
			j.sync()
		}
	}
}

func (j *SyncJob) sync() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := j.syncer.Sync(ctx); err != nil {
		log.Error().Err(err).Msg("catalog sync failed")
	}
}
