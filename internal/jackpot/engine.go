// Package jackpot accrues a share of every stake into a per-table reward pool
// and decides, independently of the spawn engine, when that pool pays out.
package jackpot

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"fishtable/internal/game"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type Config struct {
	// Contribution is the fraction of each resolved stake added to the pool (0.01 = 1%).
	Contribution decimal.Decimal
	TargetRTP    float64
	Scaling      float64
	// RollInterval is the minimum spacing between two rolls on the same table.
	RollInterval time.Duration
	Seed         decimal.Decimal
}

// moneyPlaces is the scale of wallet balances and ledger amounts.
const moneyPlaces = 2

type tablePool struct {
	amount   decimal.Decimal
	lastRoll time.Time
	dirty    bool
}

// Engine holds one reward pool per table.
type Engine struct {
	cfg    Config
	rng    game.Random
	store  PoolStore
	mu     sync.Mutex
	pools  map[int]*tablePool
	now    func() time.Time
	logger zerolog.Logger
}

func NewEngine(cfg Config, rng game.Random, store PoolStore, logger zerolog.Logger) *Engine {
	if store == nil {
		store = NewMemoryPoolStore()
	}
	return &Engine{
		cfg:    cfg,
		rng:    rng,
		store:  store,
		pools:  make(map[int]*tablePool),
		now:    time.Now,
		logger: logger,
	}
}

func (e *Engine) poolLocked(tableID int) *tablePool {
	p, ok := e.pools[tableID]
	if !ok {
		p = &tablePool{amount: e.cfg.Seed}
		e.pools[tableID] = p
	}
	return p
}

// Contribute accrues the configured share of stake and returns the share and
// the new pool. The share is truncated to whole cents to match wallet precision.
func (e *Engine) Contribute(tableID int, stake decimal.Decimal) (share, pool decimal.Decimal) {
	share = stake.Mul(e.cfg.Contribution).Truncate(moneyPlaces)

	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.poolLocked(tableID)
	if share.IsPositive() {
		p.amount = p.amount.Add(share)
		p.dirty = true
	}
	return share, p.amount
}

// Probability is the chance that one roll against a pool of the given size wins.
func (e *Engine) Probability(pool decimal.Decimal) float64 {
	if e.cfg.Scaling <= 0 || !pool.IsPositive() {
		return 0
	}
	return math.Min(1, pool.InexactFloat64()*e.cfg.TargetRTP/e.cfg.Scaling)
}

// Roll draws the jackpot for a table. On a win the pool's whole cents are
// reserved and returned; the caller pays them out or Restores them.
// Rolls closer together than RollInterval are ignored.
func (e *Engine) Roll(tableID int) (decimal.Decimal, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.poolLocked(tableID)
	now := e.now()
	if !p.lastRoll.IsZero() && now.Sub(p.lastRoll) < e.cfg.RollInterval {
		return decimal.Zero, false
	}
	p.lastRoll = now

	if e.rng.Float64() >= e.Probability(p.amount) {
		return decimal.Zero, false
	}

	// A loaded or seeded pool may carry sub-cent digits; they stay in the pool.
	won := p.amount.Truncate(moneyPlaces)
	if !won.IsPositive() {
		return decimal.Zero, false
	}
	p.amount = p.amount.Sub(won)
	p.dirty = true
	return won, true
}

// Restore puts a reserved amount back after a failed payout.
func (e *Engine) Restore(tableID int, amount decimal.Decimal) {
	if !amount.IsPositive() {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.poolLocked(tableID)
	p.amount = p.amount.Add(amount)
	p.dirty = true
}

func (e *Engine) Pool(tableID int) decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.poolLocked(tableID).amount
}

// Pools returns the current amount of every table pool that has been touched.
func (e *Engine) Pools() map[int]decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return lo.MapValues(e.pools, func(p *tablePool, _ int) decimal.Decimal { return p.amount })
}

// Load restores table pools from the store. Tables without a saved value keep the seed.
func (e *Engine) Load(ctx context.Context, tables int) error {
	for tableID := 0; tableID < tables; tableID++ {
		amount, ok, err := e.store.Load(ctx, tableID)
		if err != nil {
			return fmt.Errorf("load pool for table %d: %w", tableID, err)
		}
		if !ok {
			continue
		}
		e.mu.Lock()
		e.poolLocked(tableID).amount = amount
		e.mu.Unlock()
	}
	return nil
}

// Snapshot writes every pool changed since the last snapshot and returns the table ids written.
func (e *Engine) Snapshot(ctx context.Context) ([]int, error) {
	e.mu.Lock()
	dirty := lo.PickBy(e.pools, func(_ int, p *tablePool) bool { return p.dirty })
	values := lo.MapValues(dirty, func(p *tablePool, _ int) decimal.Decimal { return p.amount })
	for _, p := range dirty {
		p.dirty = false
	}
	e.mu.Unlock()

	written := make([]int, 0, len(values))
	var errs []error
	for tableID, amount := range values {
		if err := e.store.Save(ctx, tableID, amount); err != nil {
			// Retried on the next snapshot.
			e.mu.Lock()
			e.poolLocked(tableID).dirty = true
			e.mu.Unlock()
			errs = append(errs, fmt.Errorf("save pool for table %d: %w", tableID, err))
			continue
		}
		written = append(written, tableID)
	}
	sort.Ints(written)

	if len(written) > 0 {
		e.logger.Debug().Ints("tables", written).Msg("jackpot pools snapshotted")
	}
	return written, errors.Join(errs...)
}
