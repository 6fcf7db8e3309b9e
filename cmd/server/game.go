package main

import (
	"context"
	"fmt"
	"time"

	"fishtable/internal/game"
	"fishtable/internal/repository"

	"github.com/rs/zerolog"
)

// randomSources keeps spawn selection, hit rolls and jackpot rolls on separate
// streams so the draws of one never shift the sequence of another.
type randomSources struct {
	spawn   game.Random
	hits    game.Random
	jackpot game.Random
}

func newRandomSources(base uint64) randomSources {
	s := seed(base)
	return randomSources{
		spawn:   game.NewRandom(s),
		hits:    game.NewRandom(s + 1),
		jackpot: game.NewRandom(s + 2),
	}
}

func seed(v uint64) uint64 {
	if v == 0 {
		return uint64(time.Now().UnixNano())
	}
	return v
}

// loadCatalog reads the fish catalog from storage, falling back to the
// built-in one tuned to targetRTP when storage has none.
func loadCatalog(ctx context.Context, repo repository.FishTypeRepository, targetRTP float64, log zerolog.Logger) (*game.Catalog, error) {
	types, err := repo.ListFishTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list fish types: %w", err)
	}
	if len(types) == 0 {
		types = game.DefaultFishTypes(targetRTP)
		log.Info().Int("types", len(types)).Msg("using built-in fish catalog")
	} else {
		log.Info().Int("types", len(types)).Msg("fish catalog loaded from storage")
	}

	catalog, err := game.NewCatalog(types)
	if err != nil {
		return nil, fmt.Errorf("invalid fish catalog: %w", err)
	}
	return catalog, nil
}
