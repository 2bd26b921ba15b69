package quiz

import (
	"math/rand"
	"time"
)

// Rand is the single uniform-draw capability the core needs. *rand.Rand
// satisfies it; tests substitute seeded or scripted sources.
type Rand interface {
	Intn(n int) int
}

// NewRand returns the default time-seeded source.
func NewRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Shuffle returns a uniformly shuffled copy of items (Fisher-Yates).
// The input slice is left untouched.
func Shuffle[T any](rnd Rand, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
