package game

import (
	"sort"
	"sync"
	"time"

	"fishtable/internal/model"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type RemovalReason string

const (
	RemovedByHit      RemovalReason = "hit"
	RemovedByExpiry   RemovalReason = "expired"
	RemovedByTeardown RemovalReason = "teardown"
)

// Fish is a live target. Values handed out by Pool are copies.
type Fish struct {
	ID        int64
	Type      model.FishType
	Path      Path
	SpawnedAt time.Time
	Deleted   bool
}

func (f Fish) Reward(bet decimal.Decimal) decimal.Decimal {
	return f.Type.Reward(bet)
}

func (f Fish) Spawned() model.FishSpawned {
	return model.FishSpawned{
		FishID:   f.ID,
		TypeID:   f.Type.ID,
		PathID:   f.Path.ID,
		Start:    f.Path.Start,
		Middle:   f.Path.Middle,
		End:      f.Path.End,
		Duration: f.Path.Duration.Seconds(),
	}
}

// Pool is the set of live fish for one table. Remove is the only way a fish
// leaves the pool, so a path is released exactly once per fish. Restore is
// the only way one comes back.
type Pool struct {
	tableID  int
	mu       sync.Mutex
	fish     map[int64]*Fish
	paths    *PathAllocator
	selector *Selector
	nextID   int64
	lifetime time.Duration
	now      func() time.Time
	logger   zerolog.Logger
}

func NewPool(tableID int, paths *PathAllocator, selector *Selector, lifetime time.Duration, logger zerolog.Logger) *Pool {
	return &Pool{
		tableID:  tableID,
		fish:     make(map[int64]*Fish),
		paths:    paths,
		selector: selector,
		lifetime: lifetime,
		now:      time.Now,
		logger:   logger.With().Int("table_id", tableID).Logger(),
	}
}

func (p *Pool) TableID() int {
	return p.tableID
}

// Spawn adds one fish. It reports false without blocking when no path is free.
func (p *Pool) Spawn() (Fish, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	path, ok := p.paths.Acquire()
	if !ok {
		p.logger.Debug().Msg("no free path, spawn skipped")
		return Fish{}, false
	}

	p.nextID++
	f := &Fish{
		ID:        p.nextID,
		Type:      p.selector.Next(),
		Path:      path,
		SpawnedAt: p.now(),
	}
	p.fish[f.ID] = f
	return *f, true
}

// Get returns a live fish. Removed ids are never found again.
func (p *Pool) Get(fishID int64) (Fish, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	f, ok := p.fish[fishID]
	if !ok || f.Deleted {
		return Fish{}, false
	}
	return *f, true
}

// Remove retires a fish and frees its path. Only one caller can remove a given
// id. A fish whose path is not marked taken is left in place and reported as
// not removed.
func (p *Pool) Remove(fishID int64, reason RemovalReason) (Fish, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.removeLocked(fishID, reason)
}

func (p *Pool) removeLocked(fishID int64, reason RemovalReason) (Fish, bool) {
	f, ok := p.fish[fishID]
	if !ok || f.Deleted {
		return Fish{}, false
	}

	if !p.paths.Release(f.Path.ID) {
		p.logger.Error().
			Int64("fish_id", fishID).
			Int("path_id", f.Path.ID).
			Str("reason", string(reason)).
			Msg("fish path already released, leaving fish in place")
		return Fish{}, false
	}

	f.Deleted = true
	delete(p.fish, fishID)
	p.logger.Debug().Int64("fish_id", fishID).Str("reason", string(reason)).Msg("fish removed")
	return *f, true
}

// Restore puts back a fish removed by a hit whose settlement was rolled back.
// The fish keeps its id, path and spawn time. It reports false when the id is
// still live or its path has since been handed to another fish.
func (p *Pool) Restore(f Fish) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, live := p.fish[f.ID]; live {
		return false
	}
	if !p.paths.Reacquire(f.Path.ID) {
		p.logger.Warn().Int64("fish_id", f.ID).Int("path_id", f.Path.ID).Msg("path reused, fish not restored")
		return false
	}

	f.Deleted = false
	p.fish[f.ID] = &f
	return true
}

// Expire removes every fish older than the pool lifetime.
func (p *Pool) Expire() []Fish {
	if p.lifetime <= 0 {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	cutoff := p.now().Add(-p.lifetime)
	stale := lo.Filter(lo.Values(p.fish), func(f *Fish, _ int) bool { return f.SpawnedAt.Before(cutoff) })
	return p.removeAllLocked(stale, RemovedByExpiry)
}

// Clear removes every fish, for table teardown.
func (p *Pool) Clear() []Fish {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.removeAllLocked(lo.Values(p.fish), RemovedByTeardown)
}

func (p *Pool) removeAllLocked(fish []*Fish, reason RemovalReason) []Fish {
	sort.Slice(fish, func(i, j int) bool { return fish[i].ID < fish[j].ID })
	removed := make([]Fish, 0, len(fish))
	for _, f := range fish {
		if r, ok := p.removeLocked(f.ID, reason); ok {
			removed = append(removed, r)
		}
	}
	return removed
}

func (p *Pool) Live() []Fish {
	p.mu.Lock()
	defer p.mu.Unlock()

	live := lo.Map(lo.Values(p.fish), func(f *Fish, _ int) Fish { return *f })
	sort.Slice(live, func(i, j int) bool { return live[i].ID < live[j].ID })
	return live
}

func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.fish)
}
