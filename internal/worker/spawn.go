// Package worker runs the background loops of the game server: fish spawning,
// jackpot feed and stale stake settlement.
package worker

import (
	"context"
	"sync"
	"time"

	"fishtable/internal/game"
	"fishtable/internal/model"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// Tables is the seat side the workers broadcast through.
type Tables interface {
	Tables() int
	Active(tableID int) bool
	Broadcast(tableID int, event model.Event) int
}

// SpawnWorker drives one engine tick per table on every interval. A table
// with nobody seated is torn down instead.
type SpawnWorker struct {
	engine   *game.Engine
	tables   Tables
	interval time.Duration
	logger   zerolog.Logger
	stopChan chan struct{}
	stopOnce sync.Once
	wg       *sync.WaitGroup
}

func NewSpawnWorker(engine *game.Engine, tables Tables, interval time.Duration, logger zerolog.Logger) *SpawnWorker {
	return &SpawnWorker{
		engine:   engine,
		tables:   tables,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
		wg:       &sync.WaitGroup{},
	}
}

func (w *SpawnWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.logger.Info().Dur("interval", w.interval).Int("tables", w.engine.Tables()).Msg("Spawn worker started")

		for {
			select {
			case <-ticker.C:
				w.tick()
			case <-w.stopChan:
				w.logger.Info().Msg("Spawn worker stopping")
				return
			case <-ctx.Done():
				w.logger.Info().Msg("Spawn worker stopping (context done)")
				return
			}
		}
	}()
}

// tick advances every table once. Only this goroutine calls Engine.Tick.
func (w *SpawnWorker) tick() {
	for tableID := 0; tableID < w.engine.Tables(); tableID++ {
		res := w.engine.Tick(tableID, w.tables.Active(tableID))
		w.publish(res)
	}
}

func (w *SpawnWorker) publish(res game.TickResult) {
	for _, f := range res.Removed {
		w.tables.Broadcast(res.TableID, model.NewEvent(model.EventFishRemoved, res.TableID,
			model.FishRemoved{FishID: f.ID, Reason: string(res.Reason)}))
	}
	for _, f := range res.Spawned {
		w.tables.Broadcast(res.TableID, model.NewEvent(model.EventFishSpawned, res.TableID, f.Spawned()))
	}

	if len(res.Spawned) > 0 || len(res.Removed) > 0 {
		w.logger.Debug().
			Int("table_id", res.TableID).
			Ints("spawned", lo.Map(res.Spawned, func(f game.Fish, _ int) int { return f.Type.ID })).
			Int("removed", len(res.Removed)).
			Str("reason", string(res.Reason)).
			Msg("table ticked")
	}
}

func (w *SpawnWorker) Stop() {
	w.stopOnce.Do(func() { close(w.stopChan) })
	w.wg.Wait()
}
