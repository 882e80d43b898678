// Package random is the single source of randomness for a game session.
// Everything that needs chance (dice, dealing, choosing the solution,
// heuristic picks) draws from one rpg-toolkit dice.Roller so that a seeded
// roller replays a whole game.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/cluedo-engine/internal/errors"
)

// SeededRoller is a deterministic dice.Roller
type SeededRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

var _ dice.Roller = (*SeededRoller)(nil)

// NewSeededRoller creates a roller whose sequence is fixed by seed
func NewSeededRoller(seed int64) *SeededRoller {
	return &SeededRoller{
		rng: rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)), // #nosec G115 G404 -- reproducible game randomness
	}
}

// Roll returns a value in [1, size]
func (r *SeededRoller) Roll(size int) (int, error) {
	if size < 1 {
		return 0, errors.InvalidArgumentf("die size must be positive, got %d", size)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(size) + 1, nil
}

// RollN rolls count dice of the given size
func (r *SeededRoller) RollN(count, size int) ([]int, error) {
	if count < 0 {
		return nil, errors.InvalidArgumentf("dice count must not be negative, got %d", count)
	}
	out := make([]int, count)
	for i := range out {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// NewSeed draws a seed from crypto/rand so an unseeded game can still be
// logged and replayed.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, errors.Wrap(err, "failed to read random seed")
	}
	return int64(binary.LittleEndian.Uint64(b[:]) >> 1), nil // #nosec G115 -- shifted into int64 range
}

// Index returns a uniform index in [0, n)
func Index(roller dice.Roller, n int) (int, error) {
	if n <= 0 {
		return 0, errors.InvalidArgumentf("cannot pick from %d items", n)
	}
	if n == 1 {
		return 0, nil
	}
	v, err := roller.Roll(n)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll index")
	}
	return v - 1, nil
}

// Pick returns a uniformly chosen element
func Pick[T any](roller dice.Roller, items []T) (T, error) {
	var zero T
	i, err := Index(roller, len(items))
	if err != nil {
		return zero, err
	}
	return items[i], nil
}

// Shuffle permutes items in place with Fisher-Yates
func Shuffle[T any](roller dice.Roller, items []T) error {
	for i := len(items) - 1; i > 0; i-- {
		j, err := Index(roller, i+1)
		if err != nil {
			return err
		}
		items[i], items[j] = items[j], items[i]
	}
	return nil
}
