package worker

import (
	"context"
	"fmt"
	"time"

	"fishtable/internal/model"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// PoolSource is the jackpot side of the feed.
type PoolSource interface {
	Pool(tableID int) decimal.Decimal
	Snapshot(ctx context.Context) ([]int, error)
}

// JackpotFeed pushes the current pool to every occupied table and persists
// changed pools on a cron schedule.
type JackpotFeed struct {
	pools    PoolSource
	tables   Tables
	schedule string
	cron     *cron.Cron
	timeout  time.Duration
	logger   zerolog.Logger
}

func NewJackpotFeed(pools PoolSource, tables Tables, schedule string, logger zerolog.Logger) *JackpotFeed {
	return &JackpotFeed{
		pools:    pools,
		tables:   tables,
		schedule: schedule,
		cron:     cron.New(),
		timeout:  5 * time.Second,
		logger:   logger,
	}
}

// Start registers the schedule and starts the scheduler. An invalid schedule
// is returned before anything runs.
func (f *JackpotFeed) Start(ctx context.Context) error {
	if _, err := f.cron.AddFunc(f.schedule, func() { f.run(ctx) }); err != nil {
		return fmt.Errorf("jackpot feed schedule %q: %w", f.schedule, err)
	}
	f.cron.Start()
	f.logger.Info().Str("schedule", f.schedule).Msg("Jackpot feed started")
	return nil
}

func (f *JackpotFeed) run(ctx context.Context) {
	for tableID := 0; tableID < f.tables.Tables(); tableID++ {
		if !f.tables.Active(tableID) {
			continue
		}
		f.tables.Broadcast(tableID, model.NewEvent(model.EventPoolUpdated, tableID, model.PoolUpdated{Pool: f.pools.Pool(tableID)}))
	}
	f.snapshot(ctx)
}

func (f *JackpotFeed) snapshot(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	if _, err := f.pools.Snapshot(ctx); err != nil {
		f.logger.Error().Err(err).Msg("Failed to snapshot jackpot pools")
	}
}

// Stop waits for a running feed to finish and writes a last snapshot.
func (f *JackpotFeed) Stop() {
	<-f.cron.Stop().Done()
	f.snapshot(context.Background())
	f.logger.Info().Msg("Jackpot feed stopped")
}
