package structfuzz

import "math"

// InputStream supplies the bytes a grammar traversal consumes: one byte to
// pick an alternative or a repeat/optional count (Range), and one byte per
// Terminal sub-item (ByteTerm). Generate, CountStats, Mutate and the
// SubtreeTransfer capture/apply passes all read through the same shape so
// they stay in lockstep over the same grammar positions.
type InputStream interface {
	Byte() byte
	ByteTerm() byte
	Range(limit uint32, repeat bool) uint32
}

// ByteStream reads sequentially from a fixed buffer. Once exhausted, Byte
// and Range keep returning zero, but ByteTerm falls back to an Rng so a
// truncated buffer still yields varied terminal values rather than endless
// zero bytes.
type ByteStream struct {
	data []byte
	used int
	rng  *Rng
}

// NewByteStream wraps data for sequential decoding. rng backs ByteTerm once
// data runs out.
func NewByteStream(data []byte, rng *Rng) *ByteStream {
	return &ByteStream{data: data, rng: rng}
}

// Reset rewinds the stream to its start without discarding the buffer, so a
// second traversal over the same bytes can begin (Mutate's capture pass
// followed by its splice pass).
func (s *ByteStream) Reset() { s.used = 0 }

// Used reports how many bytes have been consumed, which can exceed
// len(data) once the stream is running past the end of the buffer.
func (s *ByteStream) Used() int { return s.used }

func (s *ByteStream) Byte() byte {
	var result byte
	if s.used < len(s.data) {
		result = s.data[s.used]
	}
	s.used++
	return result
}

func (s *ByteStream) ByteTerm() byte {
	if s.used < len(s.data) {
		return s.Byte()
	}
	return byte(s.rng.UInt32(256))
}

func (s *ByteStream) Range(limit uint32, _ bool) uint32 {
	if limit == 1 {
		return 0
	}
	b := uint32(s.Byte())
	if b > limit-1 {
		return limit - 1
	}
	return b
}

// RandomStream supplies bytes drawn from an Rng rather than a buffer. A
// mutation uses it to fill grammar positions that have no corresponding
// bytes in the source buffer: a freshly added repeat iteration, or the
// subtree under a freshly chosen alternative.
type RandomStream struct {
	rng *Rng
}

// NewRandomStream creates a RandomStream backed by rng.
func NewRandomStream(rng *Rng) *RandomStream { return &RandomStream{rng: rng} }

func (s *RandomStream) Byte() byte { return 0 }

func (s *RandomStream) ByteTerm() byte { return byte(s.rng.UInt32(256)) }

// Range returns 0 for a repeat/optional count, so a position introduced
// mid-mutation doesn't itself recursively explode, and otherwise a random
// alternative index skewed toward the earlier, typically shallower,
// alternatives.
func (s *RandomStream) Range(limit uint32, repeat bool) uint32 {
	if repeat || limit == 1 {
		return 0
	}
	f := float64(s.rng.UInt32(math.MaxInt32)) / float64(math.MaxInt32)
	f = math.Pow(f, 2.2)
	v := uint32(f * float64(limit))
	if v > limit-1 {
		v = limit - 1
	}
	return v
}

// OutputStream receives the bytes a traversal re-emits as it walks the
// grammar (Mutate's edited copy, or a captured subtree).
type OutputStream interface {
	Push(v byte)
}

// ByteSink accumulates pushed bytes into a growable slice.
type ByteSink struct {
	Out []byte
}

func (s *ByteSink) Push(v byte) { s.Out = append(s.Out, v) }

// NullSink discards everything pushed to it: used to walk and drop a
// subtree a mutation no longer needs, such as a removed repeat iteration.
type NullSink struct{}

func (NullSink) Push(byte) {}
