package structfuzz

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
)

// Rng is a seedable pseudo-random source shared by the generator and the
// mutator. It wraps math/rand's deterministic generator, the same way
// fuzz.RunWithStats derives one Rand per worker from a base seed, rather
// than reaching for an external PRNG package.
type Rng struct {
	r *rand.Rand
}

// NewRng seeds a deterministic Rng from an explicit 64-bit value.
func NewRng(seed uint64) *Rng {
	return &Rng{r: rand.New(rand.NewSource(int64(seed)))}
}

// UInt32In returns i such that lo <= i < hi. lo must be strictly less than hi.
func (g *Rng) UInt32In(lo, hi uint32) uint32 {
	if lo >= hi {
		panic("structfuzz: Rng.UInt32In requires lo < hi")
	}

	return lo + uint32(g.r.Int63n(int64(hi-lo)))
}

// UInt32 returns i such that 0 <= i < bound. bound must be > 0.
func (g *Rng) UInt32(bound uint32) uint32 {
	if bound == 0 {
		panic("structfuzz: Rng.UInt32 requires bound > 0")
	}

	return uint32(g.r.Int63n(int64(bound)))
}

// UInt64 returns i such that 0 <= i < bound. bound must be > 0.
func (g *Rng) UInt64(bound uint64) uint64 {
	if bound == 0 {
		panic("structfuzz: Rng.UInt64 requires bound > 0")
	}

	if bound <= (1 << 62) {
		return uint64(g.r.Int63n(int64(bound)))
	}
	// bound exceeds what Int63n accepts; fall back to rejection sampling
	// over the full 64-bit range.
	for {
		v := g.r.Uint64()
		if v < (^uint64(0)/bound)*bound {
			return v % bound
		}
	}
}

// Byte returns one uniformly random byte.
func (g *Rng) Byte() byte {
	return byte(g.r.Intn(256))
}

// Bytes returns n uniformly random bytes.
func (g *Rng) Bytes(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = g.Byte()
	}

	return out
}

// Bool returns true and false with even odds.
func (g *Rng) Bool() bool {
	return g.r.Intn(2) == 0
}

// WeightedBool returns true percent% of the time. percent must be in [0,100].
// WeightedBool(100) is always true and WeightedBool(0) is always false, by
// definition.
func (g *Rng) WeightedBool(percent uint32) bool {
	if percent > 100 {
		panic("structfuzz: Rng.WeightedBool requires percent in [0,100]")
	}

	return g.UInt32(100) < percent
}

// Pick returns a uniformly random element of a non-empty slice.
func Pick[T any](g *Rng, items []T) T {
	if len(items) == 0 {
		panic("structfuzz: Pick requires a non-empty slice")
	}

	return items[g.UInt32(uint32(len(items)))]
}

// Fingerprint derives a 64-bit seed from a middle window of a corpus buffer:
// it skips up to 5 leading bytes (fewer when doing so would leave less than
// 4 bytes to hash) and hashes up to the next 32 bytes, so the seed stays
// stable across mutations that only touch the very first bytes of the
// buffer.
func Fingerprint(data []byte) uint64 {
	const (
		leadingSkip = 5
		minBytes    = 4
		maxBytes    = 32
	)

	size := len(data)

	avail := size - minBytes
	if avail < 0 {
		avail = 0
	}

	skip := leadingSkip
	if avail < skip {
		skip = avail
	}

	end := skip + maxBytes
	if end > size {
		end = size
	}

	sum := sha256.Sum256(data[skip:end])

	return binary.LittleEndian.Uint64(sum[:8])
}
