package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"fishtable/internal/events"
	"fishtable/internal/game"
	"fishtable/internal/jackpot"
	"fishtable/internal/ledger"
	"fishtable/internal/model"
	"fishtable/internal/repository/memory"
	"fishtable/internal/table"
	mocks "fishtable/mocks/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// constRand always draws the same value. IntN always picks 0.
type constRand float64

func (c constRand) Float64() float64 { return float64(c) }
func (c constRand) IntN(int) int     { return 0 }

const (
	alwaysKill = constRand(0)
	neverKill  = constRand(0.99)
)

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

var testBets = []decimal.Decimal{d(10), d(20), d(60)}

// scriptedRand replays fixed draws in order and then repeats the last one.
type scriptedRand struct {
	mu    sync.Mutex
	draws []float64
}

func (s *scriptedRand) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.draws[0]
	if len(s.draws) > 1 {
		s.draws = s.draws[1:]
	}
	return v
}

func (s *scriptedRand) IntN(int) int { return 0 }

// flakyStakes is the memory stake store with a switchable hit result write failure.
type flakyStakes struct {
	*memory.Store
	mu          sync.Mutex
	failHitSave bool
}

func (f *flakyStakes) failHits(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failHitSave = fail
}

func (f *flakyStakes) InsertHitResult(ctx context.Context, result *model.HitResult, tx pgx.Tx) error {
	f.mu.Lock()
	fail := f.failHitSave
	f.mu.Unlock()
	if fail {
		return errors.New("disk full")
	}
	return f.Store.InsertHitResult(ctx, result, tx)
}

type gameFixture struct {
	svc     GameService
	store   *memory.Store
	stakes  *flakyStakes
	engine  *game.Engine
	lobby   *table.Manager
	jackpot *jackpot.Payer
}

// newGameFixture builds a two-table game on the memory store. Every spawned
// fish is of a single type paying 5x the bet with difficulty 0.
func newGameFixture(t *testing.T, hitRand, jackpotRand game.Random) *gameFixture {
	t.Helper()
	return newGameFixtureWithFish(t, model.FishType{ID: 1, Name: "clown", Coin: d(5), OutPro: 1, Difficulty: 0, PropValue: decimal.Zero}, hitRand, jackpotRand)
}

func newGameFixtureWithFish(t *testing.T, fishType model.FishType, hitRand, jackpotRand game.Random) *gameFixture {
	t.Helper()
	store := memory.NewStore()
	l := ledger.New(store, store, store, store, d(1_000_000), zerolog.Nop())

	catalog, err := game.NewCatalog([]model.FishType{fishType})
	require.NoError(t, err)
	engine := game.NewEngine(catalog, alwaysKill, game.EngineConfig{
		Tables:        2,
		PathsPerTable: 8,
		SpawnPerTick:  1,
	}, zerolog.Nop())

	jp := jackpot.NewPayer(jackpot.NewEngine(jackpot.Config{
		Contribution: decimal.RequireFromString("0.01"),
		TargetRTP:    0.96,
		Scaling:      1000,
		RollInterval: 0,
	}, jackpotRand, nil, zerolog.Nop()), l, store, zerolog.Nop())

	lobby := table.NewManager(2, 4, zerolog.Nop())
	stakes := &flakyStakes{Store: store}
	svc := NewGameService(l, stakes, engine, jp, lobby, events.Nop{}, hitRand, testBets, zerolog.Nop())
	return &gameFixture{svc: svc, store: store, stakes: stakes, engine: engine, lobby: lobby, jackpot: jp}
}

func (f *gameFixture) spawn(t *testing.T, tableID int) game.Fish {
	t.Helper()
	res := f.engine.Tick(tableID, true)
	require.NotEmpty(t, res.Spawned)
	return res.Spawned[0]
}

func (f *gameFixture) balance(t *testing.T, walletID uuid.UUID) decimal.Decimal {
	t.Helper()
	w, err := f.store.GetWallet(context.Background(), walletID)
	require.NoError(t, err)
	return w.Balance
}

func TestShoot_DebitsStake(t *testing.T) {
	f := newGameFixture(t, alwaysKill, neverKill)
	user := f.store.CreateUser("alice", model.RolePlayer, nil, d(100))

	res, err := f.svc.Shoot(context.Background(), user.Player(), 0, uuid.New(), d(10))

	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.True(t, res.Balance.Equal(d(90)))
	assert.True(t, f.balance(t, user.WalletID).Equal(d(90)))
}

func TestShoot_InsufficientFundsKeepsBalance(t *testing.T) {
	f := newGameFixture(t, alwaysKill, neverKill)
	user := f.store.CreateUser("bob", model.RolePlayer, nil, d(10))
	stakeID := uuid.New()

	res, err := f.svc.Shoot(context.Background(), user.Player(), 0, stakeID, d(20))

	assert.ErrorIs(t, err, model.ErrInsufficientFunds)
	require.NotNil(t, res)
	assert.False(t, res.Accepted)
	assert.True(t, res.Balance.Equal(d(10)))
	assert.True(t, f.balance(t, user.WalletID).Equal(d(10)))

	_, err = f.svc.Hit(context.Background(), user.Player(), 0, stakeID, 1)
	assert.ErrorIs(t, err, model.ErrStakeNotFound)
}

func TestShoot_Validation(t *testing.T) {
	f := newGameFixture(t, alwaysKill, neverKill)
	user := f.store.CreateUser("carol", model.RolePlayer, nil, d(100))
	ctx := context.Background()

	_, err := f.svc.Shoot(ctx, user.Player(), 7, uuid.New(), d(10))
	assert.ErrorIs(t, err, model.ErrTableNotFound)

	_, err = f.svc.Shoot(ctx, user.Player(), 0, uuid.New(), d(15))
	assert.ErrorIs(t, err, model.ErrInvalidBet)

	_, err = f.svc.Shoot(ctx, user.Player(), 0, uuid.Nil, d(10))
	assert.ErrorIs(t, err, model.ErrInvalidBullet)

	assert.True(t, f.balance(t, user.WalletID).Equal(d(100)))
}

func TestShoot_DuplicateBulletRejected(t *testing.T) {
	f := newGameFixture(t, alwaysKill, neverKill)
	user := f.store.CreateUser("dave", model.RolePlayer, nil, d(100))
	stakeID := uuid.New()

	_, err := f.svc.Shoot(context.Background(), user.Player(), 0, stakeID, d(10))
	require.NoError(t, err)
	_, err = f.svc.Shoot(context.Background(), user.Player(), 0, stakeID, d(10))

	assert.ErrorIs(t, err, model.ErrDuplicateStake)
	assert.True(t, f.balance(t, user.WalletID).Equal(d(90)))
}

func TestHit_KillCreditsReward(t *testing.T) {
	f := newGameFixture(t, alwaysKill, neverKill)
	user := f.store.CreateUser("erin", model.RolePlayer, nil, d(100))
	fish := f.spawn(t, 0)
	stakeID := uuid.New()
	ctx := context.Background()

	_, err := f.svc.Shoot(ctx, user.Player(), 0, stakeID, d(10))
	require.NoError(t, err)
	out, err := f.svc.Hit(ctx, user.Player(), 0, stakeID, fish.ID)

	require.NoError(t, err)
	assert.True(t, out.Killed)
	assert.True(t, out.Reward.Equal(d(50)))
	assert.True(t, out.Balance.Equal(d(140)))
	assert.True(t, f.balance(t, user.WalletID).Equal(d(140)))

	pool, _ := f.engine.Pool(0)
	_, live := pool.Get(fish.ID)
	assert.False(t, live)

	hits := f.store.HitResults()
	require.Len(t, hits, 1)
	assert.True(t, hits[0].Killed)
	assert.True(t, hits[0].BalanceAfter.Equal(d(140)))

	rec, err := ledger.New(f.store, f.store, f.store, f.store, d(1_000_000), zerolog.Nop()).Reconcile(ctx, user.WalletID)
	require.NoError(t, err)
	assert.True(t, rec.Consistent)
	assert.Equal(t, 2, rec.Entries)
}

func TestHit_FailedSettlementRestoresFish(t *testing.T) {
	f := newGameFixture(t, alwaysKill, neverKill)
	user := f.store.CreateUser("eve", model.RolePlayer, nil, d(100))
	fish := f.spawn(t, 0)
	stakeID := uuid.New()
	ctx := context.Background()

	_, err := f.svc.Shoot(ctx, user.Player(), 0, stakeID, d(10))
	require.NoError(t, err)

	f.stakes.failHits(true)
	_, err = f.svc.Hit(ctx, user.Player(), 0, stakeID, fish.ID)

	assert.ErrorIs(t, err, model.ErrPersistence)
	assert.True(t, f.balance(t, user.WalletID).Equal(d(90)))
	assert.Empty(t, f.store.HitResults())

	pool, _ := f.engine.Pool(0)
	restored, live := pool.Get(fish.ID)
	require.True(t, live, "a rolled back kill leaves the fish in the pool")
	assert.Equal(t, fish.Path.ID, restored.Path.ID)
	assert.Equal(t, 1, pool.Len())

	// The stake claim rolled back too, so the same bullet settles once the store recovers.
	f.stakes.failHits(false)
	out, err := f.svc.Hit(ctx, user.Player(), 0, stakeID, fish.ID)
	require.NoError(t, err)
	assert.True(t, out.Killed)
	assert.True(t, out.Balance.Equal(d(140)))
	assert.Len(t, f.store.HitResults(), 1)
	assert.Equal(t, 0, pool.Len())
}

func TestResolveShot_MissesThenKill(t *testing.T) {
	rng := &scriptedRand{draws: []float64{0.99, 0.99, 0}}
	f := newGameFixtureWithFish(t, model.FishType{ID: 4, Name: "turtle", Coin: decimal.RequireFromString("2.5"), OutPro: 1}, rng, neverKill)
	user := f.store.CreateUser("nia", model.RolePlayer, nil, d(100))
	fish := f.spawn(t, 0)
	ctx := context.Background()

	var outcomes []*model.HitOutcome
	for i := 0; i < 3; i++ {
		out, err := f.svc.ResolveShot(ctx, user.Player(), 0, uuid.New(), d(20), fish.ID)
		require.NoError(t, err)
		outcomes = append(outcomes, out)
	}

	assert.False(t, outcomes[0].Killed)
	assert.True(t, outcomes[0].Balance.Equal(d(80)))
	assert.False(t, outcomes[1].Killed)
	assert.True(t, outcomes[1].Balance.Equal(d(60)))
	assert.True(t, outcomes[2].Killed)
	assert.True(t, outcomes[2].Reward.Equal(d(50)))
	assert.True(t, outcomes[2].Balance.Equal(d(90)))
	assert.True(t, f.balance(t, user.WalletID).Equal(d(90)))

	hits := f.store.HitResults()
	require.Len(t, hits, 3)
	assert.Equal(t, []bool{false, false, true}, []bool{hits[0].Killed, hits[1].Killed, hits[2].Killed})

	rec, err := ledger.New(f.store, f.store, f.store, f.store, d(1_000_000), zerolog.Nop()).Reconcile(ctx, user.WalletID)
	require.NoError(t, err)
	assert.True(t, rec.Consistent)
	assert.Equal(t, 4, rec.Entries)
}

func TestHit_MissKeepsFish(t *testing.T) {
	f := newGameFixture(t, neverKill, neverKill)
	user := f.store.CreateUser("frank", model.RolePlayer, nil, d(100))
	fish := f.spawn(t, 0)

	out, err := f.svc.ResolveShot(context.Background(), user.Player(), 0, uuid.New(), d(60), fish.ID)

	require.NoError(t, err)
	assert.False(t, out.Killed)
	assert.True(t, out.Reward.IsZero())
	assert.True(t, out.Balance.Equal(d(40)))

	pool, _ := f.engine.Pool(0)
	_, live := pool.Get(fish.ID)
	assert.True(t, live)
	assert.True(t, f.jackpot.Pool(0).Equal(decimal.RequireFromString("0.6")))
}

func TestHit_UnknownFishIsMiss(t *testing.T) {
	f := newGameFixture(t, alwaysKill, neverKill)
	user := f.store.CreateUser("gina", model.RolePlayer, nil, d(100))

	out, err := f.svc.ResolveShot(context.Background(), user.Player(), 0, uuid.New(), d(10), 999)

	require.NoError(t, err)
	assert.False(t, out.Killed)
	assert.True(t, out.Balance.Equal(d(90)))
}

func TestHit_ResolvedStakeIsDuplicate(t *testing.T) {
	f := newGameFixture(t, neverKill, neverKill)
	user := f.store.CreateUser("hank", model.RolePlayer, nil, d(100))
	fish := f.spawn(t, 0)
	stakeID := uuid.New()

	_, err := f.svc.ResolveShot(context.Background(), user.Player(), 0, stakeID, d(10), fish.ID)
	require.NoError(t, err)
	_, err = f.svc.Hit(context.Background(), user.Player(), 0, stakeID, fish.ID)

	assert.ErrorIs(t, err, model.ErrDuplicateStake)
	assert.True(t, f.balance(t, user.WalletID).Equal(d(90)))
}

func TestHit_ConcurrentDuplicateResolvesOnce(t *testing.T) {
	f := newGameFixture(t, alwaysKill, neverKill)
	user := f.store.CreateUser("ivy", model.RolePlayer, nil, d(100))
	fish := f.spawn(t, 0)
	stakeID := uuid.New()
	_, err := f.svc.Shoot(context.Background(), user.Player(), 0, stakeID, d(10))
	require.NoError(t, err)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Hit(context.Background(), user.Player(), 0, stakeID, fish.ID)
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}()
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, model.ErrDuplicateStake):
			dup++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, dup)
	assert.True(t, f.balance(t, user.WalletID).Equal(d(140)))
}

func TestHit_TwoShootersOneKill(t *testing.T) {
	f := newGameFixture(t, alwaysKill, neverKill)
	alice := f.store.CreateUser("alice", model.RolePlayer, nil, d(100))
	bob := f.store.CreateUser("bob", model.RolePlayer, nil, d(100))
	fish := f.spawn(t, 0)

	var wg sync.WaitGroup
	outcomes := make([]*model.HitOutcome, 2)
	for i, u := range []*model.User{alice, bob} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := f.svc.ResolveShot(context.Background(), u.Player(), 0, uuid.New(), d(10), fish.ID)
			assert.NoError(t, err)
			outcomes[i] = out
		}()
	}
	wg.Wait()

	kills := 0
	for _, out := range outcomes {
		if out != nil && out.Killed {
			kills++
		}
	}
	assert.Equal(t, 1, kills)

	total := f.balance(t, alice.WalletID).Add(f.balance(t, bob.WalletID))
	assert.True(t, total.Equal(d(230)))
}

func TestHit_ForeignStakeRejected(t *testing.T) {
	f := newGameFixture(t, alwaysKill, neverKill)
	alice := f.store.CreateUser("alice", model.RolePlayer, nil, d(100))
	bob := f.store.CreateUser("bob", model.RolePlayer, nil, d(100))
	fish := f.spawn(t, 0)
	stakeID := uuid.New()
	_, err := f.svc.Shoot(context.Background(), alice.Player(), 0, stakeID, d(10))
	require.NoError(t, err)

	_, err = f.svc.Hit(context.Background(), bob.Player(), 0, stakeID, fish.ID)

	assert.ErrorIs(t, err, model.ErrStakeNotFound)
	assert.True(t, f.balance(t, bob.WalletID).Equal(d(100)))

	// The rejected claim rolled back, so the owner can still resolve it.
	out, err := f.svc.Hit(context.Background(), alice.Player(), 0, stakeID, fish.ID)
	require.NoError(t, err)
	assert.True(t, out.Killed)
}

func TestHit_JackpotWinCreditsPool(t *testing.T) {
	f := newGameFixture(t, neverKill, alwaysKill)
	user := f.store.CreateUser("jill", model.RolePlayer, nil, d(100))

	out, err := f.svc.ResolveShot(context.Background(), user.Player(), 0, uuid.New(), d(10), 42)

	require.NoError(t, err)
	require.NotNil(t, out.Jackpot)
	assert.True(t, out.Jackpot.Amount.Equal(decimal.RequireFromString("0.1")))
	assert.True(t, out.Balance.Equal(decimal.RequireFromString("90.1")))
	assert.True(t, f.balance(t, user.WalletID).Equal(decimal.RequireFromString("90.1")))
	assert.True(t, f.jackpot.Pool(0).IsZero())
	assert.Len(t, f.store.JackpotWins(), 1)
}

func TestShoot_PersistenceFailureLeavesBalance(t *testing.T) {
	store := memory.NewStore()
	l := ledger.New(store, store, store, store, d(1_000_000), zerolog.Nop())
	user := store.CreateUser("kim", model.RolePlayer, nil, d(100))

	catalog, err := game.NewCatalog([]model.FishType{{ID: 1, Coin: d(2), OutPro: 1}})
	require.NoError(t, err)
	engine := game.NewEngine(catalog, alwaysKill, game.EngineConfig{Tables: 1, PathsPerTable: 2, SpawnPerTick: 1}, zerolog.Nop())

	mockStakes := mocks.NewStakeRepository(t)
	mockStakes.On("InsertStake", mock.Anything, mock.MatchedBy(func(s *model.Stake) bool {
		return s.UserID == user.ID && s.Amount.Equal(d(10)) && s.Status == model.StakeOpen
	}), mock.Anything).Return(errors.New("connection reset by peer"))

	svc := NewGameService(l, mockStakes, engine, nil, table.NewManager(1, 4, zerolog.Nop()), events.Nop{}, alwaysKill, testBets, zerolog.Nop())

	_, err = svc.Shoot(context.Background(), user.Player(), 0, uuid.New(), d(10))

	assert.ErrorIs(t, err, model.ErrPersistence)
	w, err := store.GetWallet(context.Background(), user.WalletID)
	require.NoError(t, err)
	assert.True(t, w.Balance.Equal(d(100)))
}

func TestHit_PersistenceFailureViaMockDB(t *testing.T) {
	ctx := context.Background()
	walletID := uuid.New()
	player := model.Player{UserID: uuid.New(), WalletID: walletID}

	mockDB := mocks.NewDBManager(t)
	mockWallets := mocks.NewWalletRepository(t)
	mockStakes := mocks.NewStakeRepository(t)

	mockDB.On("WithTransaction", ctx, mock.Anything).Return(func(ctx context.Context, fn func(pgx.Tx) error) error { return fn(nil) })
	mockWallets.On("GetWalletForUpdate", ctx, walletID, mock.Anything).Return(&model.Wallet{ID: walletID, Balance: d(50)}, nil)
	mockStakes.On("ClaimStake", ctx, mock.Anything, mock.Anything).Return(nil, errors.New("deadlock detected"))

	l := ledger.New(mockWallets, nil, nil, mockDB, d(1_000_000), zerolog.Nop())
	catalog, err := game.NewCatalog([]model.FishType{{ID: 1, Coin: d(2), OutPro: 1}})
	require.NoError(t, err)
	engine := game.NewEngine(catalog, alwaysKill, game.EngineConfig{Tables: 1, PathsPerTable: 2}, zerolog.Nop())
	svc := NewGameService(l, mockStakes, engine, nil, table.NewManager(1, 4, zerolog.Nop()), events.Nop{}, alwaysKill, testBets, zerolog.Nop())

	_, err = svc.Hit(ctx, player, 0, uuid.New(), 1)

	assert.ErrorIs(t, err, model.ErrPersistence)
	mockWallets.AssertNotCalled(t, "UpdateBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTableInit_ReportsLiveFishAndBalance(t *testing.T) {
	f := newGameFixture(t, alwaysKill, neverKill)
	user := f.store.CreateUser("leo", model.RolePlayer, nil, d(70))
	f.engine.Tick(1, true)
	f.engine.Tick(1, true)

	ti, err := f.svc.TableInit(context.Background(), user.Player(), 1, 2)

	require.NoError(t, err)
	assert.Equal(t, 1, ti.TableID)
	assert.Equal(t, 2, ti.SeatID)
	assert.Len(t, ti.Fish, 3)
	assert.True(t, ti.Balance.Equal(d(70)))
	assert.Len(t, ti.Bets, len(testBets))

	_, err = f.svc.TableInit(context.Background(), user.Player(), 9, 0)
	assert.ErrorIs(t, err, model.ErrTableNotFound)
}

func TestTables_IncludesLiveFish(t *testing.T) {
	f := newGameFixture(t, alwaysKill, neverKill)
	f.engine.Tick(0, true)

	tables := f.svc.Tables()

	require.Len(t, tables, 2)
	assert.Equal(t, 1, tables[0].LiveFish)
	assert.Equal(t, 0, tables[1].LiveFish)
	assert.Equal(t, 4, tables[0].Seats)
}
