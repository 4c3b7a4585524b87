package usecase

import (
	"context"
	"math"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"
	"unicode/utf8"

	"creativesync/internal/core/domain"
)

// Random is a goroutine-safe uniform source shared by the simulators. All
// synthetic numbers in the dashboard are drawn from it so tests can seed it.
type Random struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandom returns a Random seeded with seed.
func NewRandom(seed uint64) *Random {
	return &Random{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Float64 returns a value in [0,1).
func (r *Random) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.r.Float64()
}

// IntN returns a value in [0,n).
func (r *Random) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.r.IntN(n)
}

// Uniform returns a value in [lo,hi).
func (r *Random) Uniform(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// FloorUniform returns floor(U(lo,hi)).
func (r *Random) FloorUniform(lo, hi float64) int64 {
	return int64(math.Floor(r.Uniform(lo, hi)))
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now.
func (SystemClock) Now() time.Time { return time.Now() }

// DraftSlot holds the current draft. Writers race freely: the last write
// wins and there is no version check.
type DraftSlot struct {
	mu    sync.RWMutex
	draft *domain.Draft
}

// Set replaces the current draft.
func (s *DraftSlot) Set(d domain.Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = &d
}

// Get returns the current draft, if any.
func (s *DraftSlot) Get() (domain.Draft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.draft == nil {
		return domain.Draft{}, false
	}
	return *s.draft, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func format2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
