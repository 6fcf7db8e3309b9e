package worker

import (
	"context"
	"sync"
	"time"

	"fishtable/internal/service"

	"github.com/rs/zerolog"
)

// SweepWorker periodically settles stakes that were fired but never resolved.
type SweepWorker struct {
	sweeper  service.StakeSweeper
	interval time.Duration
	logger   zerolog.Logger
	stopChan chan struct{}
	stopOnce sync.Once
	wg       *sync.WaitGroup
}

func NewSweepWorker(sweeper service.StakeSweeper, interval time.Duration, logger zerolog.Logger) *SweepWorker {
	return &SweepWorker{
		sweeper:  sweeper,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
		wg:       &sync.WaitGroup{},
	}
}

func (w *SweepWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.logger.Info().Dur("interval", w.interval).Msg("Sweep worker started")

		for {
			select {
			case <-ticker.C:
				w.logger.Debug().Msg("Running stale stake sweep")
				if _, err := w.sweeper.SweepStaleStakes(ctx); err != nil {
					w.logger.Error().Err(err).Msg("Failed to sweep stale stakes")
				}
			case <-w.stopChan:
				w.logger.Info().Msg("Sweep worker stopping")
				return
			case <-ctx.Done():
				w.logger.Info().Msg("Sweep worker stopping (context done)")
				return
			}
		}
	}()
}

func (w *SweepWorker) Stop() {
	w.stopOnce.Do(func() { close(w.stopChan) })
	w.wg.Wait()
}
