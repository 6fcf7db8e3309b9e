package game

import (
	"errors"
	"fmt"
	"sync"

	"fishtable/internal/model"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var ErrEmptyCatalog = errors.New("fish catalog has no spawnable type")

// Catalog is the read-only set of fish types loaded at startup.
type Catalog struct {
	types     []model.FishType
	byID      map[int]model.FishType
	spawnable []model.FishType
	total     int
}

func NewCatalog(types []model.FishType) (*Catalog, error) {
	spawnable := lo.Filter(types, func(t model.FishType, _ int) bool { return t.OutPro > 0 })
	if len(spawnable) == 0 {
		return nil, ErrEmptyCatalog
	}
	return &Catalog{
		types:     append([]model.FishType(nil), types...),
		byID:      lo.KeyBy(types, func(t model.FishType) int { return t.ID }),
		spawnable: spawnable,
		total:     lo.SumBy(spawnable, func(t model.FishType) int { return t.OutPro }),
	}, nil
}

func (c *Catalog) Get(id int) (model.FishType, bool) {
	t, ok := c.byID[id]
	return t, ok
}

func (c *Catalog) Types() []model.FishType {
	return append([]model.FishType(nil), c.types...)
}

// Share is the fraction of weighted spawns expected to be of type id.
func (c *Catalog) Share(id int) float64 {
	t, ok := c.byID[id]
	if !ok || t.OutPro <= 0 {
		return 0
	}
	return float64(t.OutPro) / float64(c.total)
}

type SelectorOptions struct {
	// BigFishIDs may be forced when the secondary roll exceeds BigFishThreshold.
	BigFishIDs       []int
	BigFishThreshold float64
	// MaxWaitFactor bounds how many spawns a type can go unseen, as a multiple
	// of its expected gap. Zero disables forcing.
	MaxWaitFactor int
}

// Selector picks fish types for one table. It keeps the per-type countdowns
// that bound how long any configured type can go without appearing.
type Selector struct {
	catalog   *Catalog
	rng       Random
	opts      SelectorOptions
	bigFish   []model.FishType
	mu        sync.Mutex
	countdown map[int]int
}

func (c *Catalog) NewSelector(rng Random, opts SelectorOptions) *Selector {
	s := &Selector{
		catalog: c,
		rng:     rng,
		opts:    opts,
		bigFish: lo.FilterMap(opts.BigFishIDs, func(id int, _ int) (model.FishType, bool) {
			t, ok := c.byID[id]
			return t, ok && t.OutPro > 0
		}),
		countdown: make(map[int]int, len(c.spawnable)),
	}
	for _, t := range c.spawnable {
		s.countdown[t.ID] = s.window(t)
	}
	return s
}

func (s *Selector) window(t model.FishType) int {
	return s.opts.MaxWaitFactor * s.catalog.total / t.OutPro
}

// Next picks the type of the next fish to spawn.
func (s *Selector) Next() model.FishType {
	s.mu.Lock()
	defer s.mu.Unlock()

	picked, ok := s.forcedBigFish()
	if !ok {
		picked, ok = s.overdue()
	}
	if !ok {
		picked = s.weighted()
	}

	if s.opts.MaxWaitFactor > 0 {
		for _, t := range s.catalog.spawnable {
			if t.ID == picked.ID {
				s.countdown[t.ID] = s.window(t)
			} else {
				s.countdown[t.ID]--
			}
		}
	}
	return picked
}

func (s *Selector) forcedBigFish() (model.FishType, bool) {
	if len(s.bigFish) == 0 || s.opts.BigFishThreshold <= 0 {
		return model.FishType{}, false
	}
	if s.rng.Float64() <= s.opts.BigFishThreshold {
		return model.FishType{}, false
	}
	return s.bigFish[s.rng.IntN(len(s.bigFish))], true
}

func (s *Selector) overdue() (model.FishType, bool) {
	if s.opts.MaxWaitFactor <= 0 {
		return model.FishType{}, false
	}
	return lo.Find(s.catalog.spawnable, func(t model.FishType) bool { return s.countdown[t.ID] <= 0 })
}

func (s *Selector) weighted() model.FishType {
	x := s.rng.IntN(s.catalog.total)
	for _, t := range s.catalog.spawnable {
		if x < t.OutPro {
			return t
		}
		x -= t.OutPro
	}
	return s.catalog.spawnable[len(s.catalog.spawnable)-1]
}

var (
	defaultCoins  = []int64{0, 0, 0, 0, 0, 2, 2, 3, 4, 5, 6, 7, 8, 9, 12, 10, 15, 18, 20, 25, 35, 40, 100, 30, 120, 300, 0, 0, 10, 300}
	defaultOutPro = []int{0, 0, 0, 0, 5, 5, 8, 8, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 20, 15, 20, 15, 20, 15, 20, 20, 0, 0, 0, 0}
)

// DefaultBigFishIDs are the rare high-value types eligible for forced spawns.
var DefaultBigFishIDs = []int{24, 25}

// DefaultFishTypes is the catalog used when storage has none. Difficulties are
// derived from the coin so each type returns roughly rtp of the bet.
func DefaultFishTypes(rtp float64) []model.FishType {
	types := make([]model.FishType, len(defaultCoins))
	for i := range defaultCoins {
		coin := decimal.NewFromInt(defaultCoins[i])
		types[i] = model.FishType{
			ID:         i,
			Name:       fmt.Sprintf("fish-%02d", i),
			Coin:       coin,
			OutPro:     defaultOutPro[i],
			Difficulty: DifficultyFor(coin, rtp),
			PropValue:  decimal.Zero,
		}
	}

	// Treasure types pay out a fixed prop value instead of a coin multiple.
	types[26].PropID, types[26].PropCount, types[26].PropValue = 1, 1, decimal.NewFromInt(110)
	types[27].PropID, types[27].PropCount, types[27].PropValue = 1, 10, decimal.NewFromInt(1100)
	types[28].PropID, types[28].PropCount, types[28].PropValue = 2, 1, decimal.NewFromInt(1)
	types[29].PropID, types[29].PropCount, types[29].PropValue = 2, 1, decimal.NewFromInt(3)
	for _, i := range []int{26, 27} {
		types[i].Difficulty = 100
	}
	return types
}
