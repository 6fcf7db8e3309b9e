package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fishtable/internal/game"
	"fishtable/internal/jackpot"
	"fishtable/internal/model"
	mocks "fishtable/mocks/service"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type zeroRand struct{}

func (zeroRand) Float64() float64 { return 0 }
func (zeroRand) IntN(int) int     { return 0 }

type fakeTables struct {
	mu     sync.Mutex
	active map[int]bool
	sent   map[int][]model.Event
	count  int
}

func newFakeTables(count int, active ...int) *fakeTables {
	f := &fakeTables{active: map[int]bool{}, sent: map[int][]model.Event{}, count: count}
	for _, id := range active {
		f.active[id] = true
	}
	return f
}

func (f *fakeTables) Tables() int { return f.count }

func (f *fakeTables) Active(tableID int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active[tableID]
}

func (f *fakeTables) setActive(tableID int, v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.active[tableID] = v
}

func (f *fakeTables) Broadcast(tableID int, event model.Event) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent[tableID] = append(f.sent[tableID], event)
	return 1
}

func (f *fakeTables) types(tableID int) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.sent[tableID]))
	for _, ev := range f.sent[tableID] {
		out = append(out, ev.Type)
	}
	return out
}

func newTestEngine(t *testing.T) *game.Engine {
	t.Helper()
	catalog, err := game.NewCatalog([]model.FishType{
		{ID: 1, Name: "clown", Coin: decimal.NewFromInt(2), OutPro: 1},
	})
	require.NoError(t, err)
	return game.NewEngine(catalog, zeroRand{}, game.EngineConfig{
		Tables:        2,
		PathsPerTable: 4,
		FishLifetime:  time.Hour,
		SpawnPerTick:  1,
	}, zerolog.Nop())
}

func TestSpawnWorker_TickSpawnsOnActiveTablesOnly(t *testing.T) {
	engine := newTestEngine(t)
	tables := newFakeTables(2, 0)
	w := NewSpawnWorker(engine, tables, time.Hour, zerolog.Nop())

	w.tick()

	assert.Equal(t, []string{model.EventFishSpawned}, tables.types(0))
	assert.Empty(t, tables.types(1))
	pool, _ := engine.Pool(0)
	assert.Equal(t, 1, pool.Len())
}

func TestSpawnWorker_EmptyTableIsTornDown(t *testing.T) {
	engine := newTestEngine(t)
	tables := newFakeTables(2, 0)
	w := NewSpawnWorker(engine, tables, time.Hour, zerolog.Nop())

	w.tick()
	w.tick()
	pool, _ := engine.Pool(0)
	live := pool.Len()
	require.Equal(t, 3, live)

	tables.setActive(0, false)
	w.tick()

	assert.Equal(t, 0, pool.Len())
	removed := 0
	for _, typ := range tables.types(0) {
		if typ == model.EventFishRemoved {
			removed++
		}
	}
	assert.Equal(t, live, removed)
}

func TestSpawnWorker_StartStop(t *testing.T) {
	engine := newTestEngine(t)
	tables := newFakeTables(2, 1)
	w := NewSpawnWorker(engine, tables, 10*time.Millisecond, zerolog.Nop())

	w.Start(context.Background())
	assert.Eventually(t, func() bool { return len(tables.types(1)) > 0 }, time.Second, 5*time.Millisecond)
	w.Stop()
	w.Stop()
}

func TestSweepWorker_RunsSweeper(t *testing.T) {
	sweeper := mocks.NewStakeSweeper(t)
	called := make(chan struct{}, 16)
	sweeper.On("SweepStaleStakes", mock.Anything).Return(func(ctx context.Context) (int, error) {
		select {
		case called <- struct{}{}:
		default:
		}
		return 0, errors.New("db down")
	})

	w := NewSweepWorker(sweeper, 5*time.Millisecond, zerolog.Nop())
	w.Start(context.Background())

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatal("sweeper was not called")
	}
	w.Stop()
}

func TestSweepWorker_StopsOnContextCancel(t *testing.T) {
	sweeper := mocks.NewStakeSweeper(t)
	ctx, cancel := context.WithCancel(context.Background())
	w := NewSweepWorker(sweeper, time.Hour, zerolog.Nop())
	w.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

type failingPoolStore struct{ *jackpot.MemoryPoolStore }

func (failingPoolStore) Save(context.Context, int, decimal.Decimal) error {
	return errors.New("redis down")
}

func TestJackpotFeed_BroadcastsToActiveTablesAndSnapshots(t *testing.T) {
	store := jackpot.NewMemoryPoolStore()
	pools := jackpot.NewEngine(jackpot.Config{
		Contribution: decimal.RequireFromString("0.1"),
		TargetRTP:    0.96,
		Scaling:      1000,
	}, zeroRand{}, store, zerolog.Nop())
	pools.Contribute(1, decimal.NewFromInt(50))

	tables := newFakeTables(2, 1)
	feed := NewJackpotFeed(pools, tables, "@every 1h", zerolog.Nop())
	feed.run(context.Background())

	assert.Empty(t, tables.types(0))
	require.Equal(t, []string{model.EventPoolUpdated}, tables.types(1))
	assert.True(t, tables.sent[1][0].Payload.(model.PoolUpdated).Pool.Equal(decimal.NewFromInt(5)))

	saved, ok, err := store.Load(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, saved.Equal(decimal.NewFromInt(5)))
}

func TestJackpotFeed_SnapshotFailureIsLogged(t *testing.T) {
	pools := jackpot.NewEngine(jackpot.Config{Contribution: decimal.RequireFromString("0.1")},
		zeroRand{}, failingPoolStore{jackpot.NewMemoryPoolStore()}, zerolog.Nop())
	pools.Contribute(0, decimal.NewFromInt(10))

	feed := NewJackpotFeed(pools, newFakeTables(1, 0), "@every 1h", zerolog.Nop())
	assert.NotPanics(t, func() { feed.run(context.Background()) })
}

func TestJackpotFeed_InvalidSchedule(t *testing.T) {
	feed := NewJackpotFeed(jackpot.NewEngine(jackpot.Config{}, zeroRand{}, nil, zerolog.Nop()),
		newFakeTables(1), "every now and then", zerolog.Nop())
	assert.Error(t, feed.Start(context.Background()))
}

func TestJackpotFeed_StartStop(t *testing.T) {
	feed := NewJackpotFeed(jackpot.NewEngine(jackpot.Config{}, zeroRand{}, nil, zerolog.Nop()),
		newFakeTables(1), "@every 1h", zerolog.Nop())
	require.NoError(t, feed.Start(context.Background()))
	feed.Stop()
}
