package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"fishtable/internal/events"
	"fishtable/internal/game"
	"fishtable/internal/ledger"
	"fishtable/internal/model"
	"fishtable/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type GameServiceImpl struct {
	ledger    *ledger.Ledger
	stakeRepo repository.StakeRepository
	engine    *game.Engine
	jackpot   Jackpot
	lobby     Lobby
	publisher events.Publisher
	rng       game.Random
	bets      []decimal.Decimal
	logger    zerolog.Logger
}

func NewGameService(
	l *ledger.Ledger,
	stakeRepo repository.StakeRepository,
	engine *game.Engine,
	jackpot Jackpot,
	lobby Lobby,
	publisher events.Publisher,
	rng game.Random,
	bets []decimal.Decimal,
	logger zerolog.Logger,
) GameService {
	return &GameServiceImpl{
		ledger:    l,
		stakeRepo: stakeRepo,
		engine:    engine,
		jackpot:   jackpot,
		lobby:     lobby,
		publisher: publisher,
		rng:       rng,
		bets:      bets,
		logger:    logger,
	}
}

func (s *GameServiceImpl) validBet(bet decimal.Decimal) bool {
	return slices.ContainsFunc(s.bets, bet.Equal)
}

func (s *GameServiceImpl) pool(tableID int) (*game.Pool, error) {
	pool, ok := s.engine.Pool(tableID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", model.ErrTableNotFound, tableID)
	}
	return pool, nil
}

func (s *GameServiceImpl) Shoot(ctx context.Context, player model.Player, tableID int, stakeID uuid.UUID, bet decimal.Decimal) (*model.ShootResult, error) {
	if _, err := s.pool(tableID); err != nil {
		return nil, err
	}
	if !s.validBet(bet) {
		return nil, fmt.Errorf("%w: %s", model.ErrInvalidBet, bet.String())
	}
	if stakeID == uuid.Nil {
		return nil, fmt.Errorf("%w: bullet id is required", model.ErrInvalidBullet)
	}

	stake := &model.Stake{
		ID:        stakeID,
		UserID:    player.UserID,
		WalletID:  player.WalletID,
		TableID:   tableID,
		Amount:    bet,
		Status:    model.StakeOpen,
		CreatedAt: time.Now(),
	}

	balance, err := s.ledger.Apply(ctx, player.WalletID, func(tx *ledger.Tx) error {
		if err := tx.Debit(bet, ledger.Ref{Type: model.RefStake, ID: stakeID}); err != nil {
			return err
		}
		if err := s.stakeRepo.InsertStake(ctx, stake, tx.DB()); err != nil {
			return fmt.Errorf("insert stake: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrInsufficientFunds) {
			current, balErr := s.ledger.Balance(ctx, player.WalletID)
			if balErr != nil {
				return nil, err
			}
			s.logger.Debug().
				Str("user_id", player.UserID.String()).
				Str("bullet_id", stakeID.String()).
				Str("amount", bet.StringFixed(2)).
				Msg("shot rejected, insufficient funds")
			return &model.ShootResult{StakeID: stakeID, Accepted: false, Balance: current}, err
		}
		return nil, err
	}

	s.logger.Debug().
		Str("user_id", player.UserID.String()).
		Int("table_id", tableID).
		Str("bullet_id", stakeID.String()).
		Str("amount", bet.StringFixed(2)).
		Str("new_balance", balance.StringFixed(2)).
		Msg("stake accepted")

	return &model.ShootResult{StakeID: stakeID, Accepted: true, Balance: balance}, nil
}

func (s *GameServiceImpl) Hit(ctx context.Context, player model.Player, tableID int, stakeID uuid.UUID, fishID int64) (*model.HitOutcome, error) {
	pool, err := s.pool(tableID)
	if err != nil {
		return nil, err
	}

	var (
		stake   *model.Stake
		removed game.Fish
		killed  bool
		reward  = decimal.Zero
		hitID   = uuid.New()
	)

	// Lock order is wallet, then table pool (inside Remove). The removal
	// happens before commit so two shots can never both be paid; a rollback
	// restores the fish.
	balance, err := s.ledger.Apply(ctx, player.WalletID, func(tx *ledger.Tx) error {
		claimed, err := s.stakeRepo.ClaimStake(ctx, stakeID, tx.DB())
		if err != nil {
			return fmt.Errorf("claim stake: %w", err)
		}
		if claimed.UserID != player.UserID || claimed.TableID != tableID {
			return fmt.Errorf("%w: bullet %s was not fired by this seat", model.ErrStakeNotFound, stakeID)
		}
		stake = claimed

		result := &model.HitResult{
			ID:        hitID,
			StakeID:   stakeID,
			WalletID:  player.WalletID,
			TableID:   tableID,
			FishID:    fishID,
			Reward:    decimal.Zero,
			CreatedAt: time.Now(),
		}

		if fish, ok := pool.Get(fishID); ok {
			result.FishTypeID = fish.Type.ID
			if game.Killed(s.rng, fish.Type.Difficulty) {
				// Losing the removal race to another shot is a miss.
				if removed, killed = pool.Remove(fishID, game.RemovedByHit); killed {
					reward = removed.Reward(stake.Amount)
				}
			}
		}

		if killed && reward.IsPositive() {
			if err := tx.Credit(reward, ledger.Ref{Type: model.RefHit, ID: hitID}); err != nil {
				return err
			}
		}

		result.Killed = killed
		result.Reward = reward
		result.BalanceAfter = tx.Balance()
		if err := s.stakeRepo.InsertHitResult(ctx, result, tx.DB()); err != nil {
			return fmt.Errorf("insert hit result: %w", err)
		}
		return nil
	})
	if err != nil {
		if killed {
			s.restoreFish(pool, removed, stakeID, err)
		}
		return nil, err
	}

	outcome := &model.HitOutcome{
		StakeID: stakeID,
		FishID:  fishID,
		Killed:  killed,
		Reward:  reward,
		Balance: balance,
	}

	if killed {
		ev := model.NewEvent(model.EventFishKilled, tableID, model.FishKilled{
			FishID: fishID,
			TypeID: removed.Type.ID,
			Reward: reward,
			ByUser: player.UserID,
			PropID: removed.Type.PropID,
		})
		s.lobby.Broadcast(tableID, ev)
		s.publisher.Publish(player.UserID.String(), ev)

		s.logger.Info().
			Str("user_id", player.UserID.String()).
			Int("table_id", tableID).
			Int64("fish_id", fishID).
			Str("reward", reward.StringFixed(2)).
			Str("new_balance", balance.StringFixed(2)).
			Msg("fish killed")
	}

	s.settleJackpot(ctx, player, tableID, stake.Amount, outcome)
	return outcome, nil
}

// restoreFish puts back a fish whose kill was rolled back. If its path was
// already reused the fish is gone for good and the table is told so.
func (s *GameServiceImpl) restoreFish(pool *game.Pool, fish game.Fish, stakeID uuid.UUID, cause error) {
	log := s.logger.With().
		Int("table_id", pool.TableID()).
		Int64("fish_id", fish.ID).
		Str("bullet_id", stakeID.String()).
		Logger()

	if pool.Restore(fish) {
		log.Warn().Err(cause).Msg("hit rolled back, fish restored")
		return
	}

	log.Error().Err(cause).Msg("hit rolled back, fish could not be restored")
	s.lobby.Broadcast(pool.TableID(), model.NewEvent(model.EventFishRemoved, pool.TableID(),
		model.FishRemoved{FishID: fish.ID, Reason: string(game.RemovedByHit)}))
}

// settleJackpot accrues the resolved stake and rolls the table jackpot. A
// failed payout is logged and leaves the hit outcome intact.
func (s *GameServiceImpl) settleJackpot(ctx context.Context, player model.Player, tableID int, stake decimal.Decimal, outcome *model.HitOutcome) {
	s.jackpot.Contribute(tableID, stake)

	win, balance, err := s.jackpot.Award(ctx, tableID, player)
	if err != nil {
		s.logger.Error().Err(err).Int("table_id", tableID).Msg("jackpot award failed")
		return
	}
	if win == nil {
		return
	}

	outcome.Jackpot = win
	outcome.Balance = balance

	ev := model.NewEvent(model.EventJackpotWon, tableID, model.JackpotWon{Amount: win.Amount, ByUser: player.UserID})
	s.lobby.Broadcast(tableID, ev)
	s.lobby.Broadcast(tableID, model.NewEvent(model.EventPoolUpdated, tableID, model.PoolUpdated{Pool: s.jackpot.Pool(tableID)}))
	s.publisher.Publish(strconv.Itoa(tableID), ev)
}

func (s *GameServiceImpl) ResolveShot(ctx context.Context, player model.Player, tableID int, stakeID uuid.UUID, bet decimal.Decimal, fishID int64) (*model.HitOutcome, error) {
	shot, err := s.Shoot(ctx, player, tableID, stakeID, bet)
	if err != nil {
		if shot != nil {
			return &model.HitOutcome{StakeID: stakeID, FishID: fishID, Reward: decimal.Zero, Balance: shot.Balance}, err
		}
		return nil, err
	}
	return s.Hit(ctx, player, tableID, stakeID, fishID)
}

func (s *GameServiceImpl) TableInit(ctx context.Context, player model.Player, tableID, seatID int) (*model.TableInit, error) {
	pool, err := s.pool(tableID)
	if err != nil {
		return nil, err
	}
	balance, err := s.ledger.Balance(ctx, player.WalletID)
	if err != nil {
		return nil, err
	}
	return &model.TableInit{
		TableID: tableID,
		SeatID:  seatID,
		Fish:    lo.Map(pool.Live(), func(f game.Fish, _ int) model.FishSpawned { return f.Spawned() }),
		Pool:    s.jackpot.Pool(tableID),
		Balance: balance,
		Bets:    s.bets,
	}, nil
}

func (s *GameServiceImpl) Tables() []model.TableSummary {
	return lo.Map(s.lobby.Snapshot(), func(t model.TableSummary, _ int) model.TableSummary {
		if pool, ok := s.engine.Pool(t.TableID); ok {
			t.LiveFish = pool.Len()
		}
		return t
	})
}
