package game

import (
	"fishtable/internal/model"

	"github.com/shopspring/decimal"
)

// scriptedRand replays fixed draws, repeating the last one when exhausted.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (s *scriptedRand) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	if len(s.floats) > 1 {
		s.floats = s.floats[1:]
	}
	return v
}

func (s *scriptedRand) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	if len(s.ints) > 1 {
		s.ints = s.ints[1:]
	}
	return v % n
}

func testTypes() []model.FishType {
	return []model.FishType{
		{ID: 0, Coin: decimal.NewFromInt(2), OutPro: 60},
		{ID: 1, Coin: decimal.NewFromInt(10), OutPro: 30},
		{ID: 2, Coin: decimal.NewFromInt(100), OutPro: 10},
		{ID: 3, Coin: decimal.NewFromInt(500), OutPro: 0},
	}
}
