package game

import (
	"math"
	"sync"
	"time"

	"fishtable/internal/model"
)

// Path is a motion slot a fish swims along. At most one live fish holds a path at a time.
type Path struct {
	ID       int
	Start    model.Point
	Middle   model.Point
	End      model.Point
	Duration time.Duration
}

// PathAllocator hands out free paths and takes them back.
type PathAllocator struct {
	mu    sync.Mutex
	paths []Path
	taken []bool
	next  int
}

func NewPathAllocator(paths []Path) *PathAllocator {
	return &PathAllocator{
		paths: append([]Path(nil), paths...),
		taken: make([]bool, len(paths)),
	}
}

// Acquire marks a free path taken. ok is false when every path is occupied.
// The scan starts after the last acquired path so paths are reused round-robin.
func (a *PathAllocator) Acquire() (Path, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := len(a.paths)
	for i := 0; i < n; i++ {
		idx := (a.next + i) % n
		if !a.taken[idx] {
			a.taken[idx] = true
			a.next = (idx + 1) % n
			return a.paths[idx], true
		}
	}
	return Path{}, false
}

// Release frees a path and reports whether it was taken. Releasing a free or unknown path is a no-op.
func (a *PathAllocator) Release(pathID int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if pathID < 0 || pathID >= len(a.taken) || !a.taken[pathID] {
		return false
	}
	a.taken[pathID] = false
	return true
}

// Reacquire takes a specific path back. It reports false when the path is
// unknown or already taken.
func (a *PathAllocator) Reacquire(pathID int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if pathID < 0 || pathID >= len(a.taken) || a.taken[pathID] {
		return false
	}
	a.taken[pathID] = true
	return true
}

func (a *PathAllocator) Taken(pathID int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return pathID >= 0 && pathID < len(a.taken) && a.taken[pathID]
}

func (a *PathAllocator) Free() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	free := 0
	for _, t := range a.taken {
		if !t {
			free++
		}
	}
	return free
}

func (a *PathAllocator) Len() int {
	return len(a.paths)
}

// Scene dimensions the generated paths are laid out in.
const (
	SceneWidth  = 1280.0
	SceneHeight = 720.0
)

// GeneratePaths lays out n curved paths that cross the scene, alternating
// left-to-right and right-to-left, with durations between 12s and 20s.
func GeneratePaths(n int) []Path {
	paths := make([]Path, n)
	for i := 0; i < n; i++ {
		frac := (float64(i) + 0.5) / float64(n)
		y0 := SceneHeight * frac
		y1 := SceneHeight * (1 - frac)
		bend := SceneHeight * 0.25 * math.Sin(float64(i)*1.7)

		start := model.Point{X: -100, Y: y0}
		end := model.Point{X: SceneWidth + 100, Y: y1}
		if i%2 == 1 {
			start, end = end, start
		}
		paths[i] = Path{
			ID:       i,
			Start:    start,
			Middle:   model.Point{X: SceneWidth / 2, Y: clamp(SceneHeight/2+bend, 0, SceneHeight)},
			End:      end,
			Duration: time.Duration(12+i%9) * time.Second,
		}
	}
	return paths
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
