package game

import (
	"time"

	"github.com/rs/zerolog"
)

type EngineConfig struct {
	Tables        int
	PathsPerTable int
	FishLifetime  time.Duration
	// SpawnPerTick fish are added every tick, plus one more on every other tick.
	SpawnPerTick int
	Selector     SelectorOptions
}

// TickResult reports what one spawn tick changed on a table.
type TickResult struct {
	TableID int
	Spawned []Fish
	Removed []Fish
	Reason  RemovalReason
}

// Engine owns one fish pool per table.
type Engine struct {
	pools        []*Pool
	ticks        []uint64
	spawnPerTick int
	catalog      *Catalog
	logger       zerolog.Logger
}

func NewEngine(catalog *Catalog, rng Random, cfg EngineConfig, logger zerolog.Logger) *Engine {
	e := &Engine{
		pools:        make([]*Pool, cfg.Tables),
		ticks:        make([]uint64, cfg.Tables),
		spawnPerTick: cfg.SpawnPerTick,
		catalog:      catalog,
		logger:       logger,
	}
	for i := range e.pools {
		paths := NewPathAllocator(GeneratePaths(cfg.PathsPerTable))
		e.pools[i] = NewPool(i, paths, catalog.NewSelector(rng, cfg.Selector), cfg.FishLifetime, logger)
	}
	return e
}

func (e *Engine) Pool(tableID int) (*Pool, bool) {
	if tableID < 0 || tableID >= len(e.pools) {
		return nil, false
	}
	return e.pools[tableID], true
}

func (e *Engine) Tables() int {
	return len(e.pools)
}

func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Tick advances one table. An active table expires old fish and spawns new
// ones; an inactive table is torn down. Ticks for a table must not overlap.
func (e *Engine) Tick(tableID int, active bool) TickResult {
	res := TickResult{TableID: tableID}
	pool, ok := e.Pool(tableID)
	if !ok {
		return res
	}

	if !active {
		res.Removed = pool.Clear()
		res.Reason = RemovedByTeardown
		return res
	}

	res.Removed = pool.Expire()
	res.Reason = RemovedByExpiry

	n := e.spawnPerTick
	if e.ticks[tableID]%2 == 1 {
		n++
	}
	e.ticks[tableID]++

	for i := 0; i < n; i++ {
		f, ok := pool.Spawn()
		if !ok {
			break
		}
		res.Spawned = append(res.Spawned, f)
	}
	return res
}
