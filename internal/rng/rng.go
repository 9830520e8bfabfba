// Package rng provides the uniform random source shared by spawning, AI and combat.
package rng

import (
	"math"
	"math/rand"
	"time"
)

// Source produces uniform random draws in [0, 1).
type Source interface {
	Uniform() float64
}

// Seeded is a Source backed by math/rand. The same seed always yields the
// same sequence, which keeps dungeon generation and fights reproducible.
type Seeded struct {
	r *rand.Rand
}

// New creates a seeded source. A seed of 0 picks one from the clock.
func New(seed int64) *Seeded {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Seeded{r: rand.New(rand.NewSource(seed))}
}

// Uniform returns a float in [0, 1).
func (s *Seeded) Uniform() float64 {
	return s.r.Float64()
}

// Intn returns an int in [0, n). It returns 0 when n <= 0.
func Intn(src Source, n int) int {
	if n <= 0 {
		return 0
	}
	v := int(math.Floor(src.Uniform() * float64(n)))
	if v >= n {
		v = n - 1
	}
	return v
}

// Percent reports whether a roll of round(u*100) lands at or under rate.
func Percent(src Source, rate int) bool {
	return int(math.Round(src.Uniform()*100)) <= rate
}

// Coin flips round(u) and reports heads.
func Coin(src Source) bool {
	return math.Round(src.Uniform()) == 1
}

// Offset returns -1, 0 or 1.
func Offset(src Source) int {
	return Intn(src, 3) - 1
}

// Pick returns a uniformly chosen element of items. It panics on an empty slice.
func Pick[T any](src Source, items []T) T {
	return items[Intn(src, len(items))]
}
