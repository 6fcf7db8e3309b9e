package game

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/shopspring/decimal"
)

// MaxKillProbability is the chance of killing the easiest fish with one shot.
const MaxKillProbability = 0.05

// Random is the draw source for spawns and hit rolls.
type Random interface {
	Float64() float64
	IntN(n int) int
}

// lockedRand makes a *rand.Rand safe for concurrent use.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewRandom(seed uint64) Random {
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

// ProbabilityOf maps a difficulty in [0, 100] linearly onto a kill chance in
// [0, MaxKillProbability]: 0 is the easiest, 100 can never be killed.
func ProbabilityOf(difficulty int) float64 {
	d := math.Max(0, math.Min(100, float64(difficulty)))
	return MaxKillProbability * (100 - d) / 100
}

// Killed rolls one shot against a fish of the given difficulty.
func Killed(r Random, difficulty int) bool {
	return r.Float64() < ProbabilityOf(difficulty)
}

// DifficultyFor picks the difficulty whose kill chance makes a fish paying
// coin times the bet return rtp of the bet on average. Fish too cheap to reach
// rtp even at the maximum chance get difficulty 0.
func DifficultyFor(coin decimal.Decimal, rtp float64) int {
	c := coin.InexactFloat64()
	if c <= 0 {
		return 100
	}
	p := rtp / c
	if p >= MaxKillProbability {
		return 0
	}
	return int(math.Round(100 * (1 - p/MaxKillProbability)))
}
