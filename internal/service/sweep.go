package service

import (
	"context"
	"fmt"
	"time"

	"fishtable/internal/model"
	"fishtable/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// StakeSweeper settles bullets that were paid for but never aimed at a fish
type StakeSweeper interface {
	// SweepStaleStakes resolves open stakes older than the configured age as misses
	SweepStaleStakes(ctx context.Context) (int, error)
}

type StakeSweeperImpl struct {
	stakeRepo  repository.StakeRepository
	walletRepo repository.WalletRepository
	dbManager  repository.DBManager
	jackpot    Jackpot
	maxAge     time.Duration
	batch      int
	now        func() time.Time
	logger     zerolog.Logger
}

func NewStakeSweeper(
	stakeRepo repository.StakeRepository,
	walletRepo repository.WalletRepository,
	dbManager repository.DBManager,
	jackpot Jackpot,
	maxAge time.Duration,
	batch int,
	logger zerolog.Logger,
) StakeSweeper {
	return &StakeSweeperImpl{
		stakeRepo:  stakeRepo,
		walletRepo: walletRepo,
		dbManager:  dbManager,
		jackpot:    jackpot,
		maxAge:     maxAge,
		batch:      batch,
		now:        time.Now,
		logger:     logger,
	}
}

func (s *StakeSweeperImpl) SweepStaleStakes(ctx context.Context) (int, error) {
	stakes, err := s.stakeRepo.ListStaleStakes(ctx, s.now().Add(-s.maxAge), s.batch)
	if err != nil {
		return 0, fmt.Errorf("list stale stakes: %w", err)
	}
	if len(stakes) == 0 {
		s.logger.Debug().Msg("no stale stakes to settle")
		return 0, nil
	}

	settled := 0
	// Each stake settles in its own transaction
	for _, stake := range stakes {
		select {
		case <-ctx.Done():
			return settled, ctx.Err()
		default:
		}

		err := s.dbManager.WithTransaction(ctx, func(tx pgx.Tx) error {
			// A hit that raced the sweep already owns the stake
			claimed, err := s.stakeRepo.ClaimStake(ctx, stake.ID, tx)
			if err != nil {
				return fmt.Errorf("claim stake: %w", err)
			}
			wallet, err := s.walletRepo.GetWallet(ctx, claimed.WalletID, tx)
			if err != nil {
				return fmt.Errorf("get wallet: %w", err)
			}
			if err := s.stakeRepo.InsertHitResult(ctx, &model.HitResult{
				ID:           uuid.New(),
				StakeID:      claimed.ID,
				WalletID:     claimed.WalletID,
				TableID:      claimed.TableID,
				Killed:       false,
				Reward:       decimal.Zero,
				BalanceAfter: wallet.Balance,
				CreatedAt:    s.now(),
			}, tx); err != nil {
				return fmt.Errorf("insert hit result: %w", err)
			}
			return nil
		})
		if err != nil {
			s.logger.Warn().Err(err).Str("bullet_id", stake.ID.String()).Msg("stale stake not settled")
			continue
		}

		s.jackpot.Contribute(stake.TableID, stake.Amount)
		settled++
	}

	s.logger.Info().
		Int("found", len(stakes)).
		Int("settled", settled).
		Msg("stale stakes settled as misses")
	return settled, nil
}
