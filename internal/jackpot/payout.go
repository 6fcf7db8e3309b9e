package jackpot

import (
	"context"
	"fmt"
	"time"

	"fishtable/internal/ledger"
	"fishtable/internal/model"
	"fishtable/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Payer rolls a table's jackpot on behalf of a player and credits the win.
type Payer struct {
	engine *Engine
	ledger *ledger.Ledger
	wins   repository.JackpotRepository
	logger zerolog.Logger
}

func NewPayer(engine *Engine, l *ledger.Ledger, wins repository.JackpotRepository, logger zerolog.Logger) *Payer {
	return &Payer{engine: engine, ledger: l, wins: wins, logger: logger}
}

func (p *Payer) Engine() *Engine {
	return p.engine
}

// Contribute accrues the stake's share into the table pool.
func (p *Payer) Contribute(tableID int, stake decimal.Decimal) decimal.Decimal {
	_, pool := p.engine.Contribute(tableID, stake)
	return pool
}

func (p *Payer) Pool(tableID int) decimal.Decimal {
	return p.engine.Pool(tableID)
}

// Award rolls the table's jackpot for the player. It returns a nil win without
// error when the roll does not win; otherwise the win and the player's new
// balance. A failed payout puts the pool back.
func (p *Payer) Award(ctx context.Context, tableID int, player model.Player) (*model.JackpotWin, decimal.Decimal, error) {
	amount, won := p.engine.Roll(tableID)
	if !won {
		return nil, decimal.Zero, nil
	}

	win := &model.JackpotWin{
		ID:        uuid.New(),
		TableID:   tableID,
		UserID:    player.UserID,
		WalletID:  player.WalletID,
		Amount:    amount,
		CreatedAt: time.Now(),
	}

	balance, err := p.ledger.Apply(ctx, player.WalletID, func(tx *ledger.Tx) error {
		if err := tx.Credit(amount, ledger.Ref{Type: model.RefJackpot, ID: win.ID}); err != nil {
			return err
		}
		if err := p.wins.InsertWin(ctx, win, tx.DB()); err != nil {
			return fmt.Errorf("insert jackpot win: %w", err)
		}
		return nil
	})
	if err != nil {
		p.engine.Restore(tableID, amount)
		p.logger.Error().Err(err).
			Int("table_id", tableID).
			Str("user_id", player.UserID.String()).
			Str("amount", amount.StringFixed(2)).
			Msg("jackpot payout failed, pool restored")
		return nil, decimal.Zero, err
	}

	p.logger.Info().
		Int("table_id", tableID).
		Str("user_id", player.UserID.String()).
		Str("amount", amount.StringFixed(2)).
		Msg("jackpot won")
	return win, balance, nil
}
