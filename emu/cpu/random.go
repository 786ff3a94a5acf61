package cpu

import (
	"math/rand/v2"
	"time"
)

// RandomSource produces bytes uniformly distributed over 0..255.
type RandomSource interface {
	Byte() uint8
}

type pcgRandom struct {
	rng *rand.Rand
}

// NewRandom returns a random source seeded from the wall clock.
func NewRandom() RandomSource {
	return NewSeededRandom(uint64(time.Now().UnixNano()))
}

// NewSeededRandom returns a deterministic random source.
func NewSeededRandom(seed uint64) RandomSource {
	return &pcgRandom{
		rng: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
	}
}

func (r *pcgRandom) Byte() uint8 {
	return uint8(r.rng.UintN(256))
}

// SequenceRandom replays a fixed list of bytes, starting over when exhausted.
// An empty sequence always yields 0.
type SequenceRandom struct {
	Values []uint8
	pos    int
}

func (r *SequenceRandom) Byte() uint8 {
	if len(r.Values) == 0 {
		return 0
	}
	b := r.Values[r.pos%len(r.Values)]
	r.pos++
	return b
}
