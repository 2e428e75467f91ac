package structfuzz

import "testing"

func TestRngUInt32InBounds(t *testing.T) {
	rng := NewRng(1)
	for i := 0; i < 1000; i++ {
		v := rng.UInt32(7)
		if v >= 7 {
			t.Fatalf("UInt32(7) returned out-of-range value %d", v)
		}
	}
}

func TestRngUInt64LargeBound(t *testing.T) {
	rng := NewRng(2)
	bound := uint64(1) << 63
	for i := 0; i < 1000; i++ {
		v := rng.UInt64(bound)
		if v >= bound {
			t.Fatalf("UInt64(%d) returned out-of-range value %d", bound, v)
		}
	}
}

func TestRngWeightedBoolExtremes(t *testing.T) {
	rng := NewRng(3)
	for i := 0; i < 100; i++ {
		if !rng.WeightedBool(100) {
			t.Fatalf("WeightedBool(100) returned false")
		}
		if rng.WeightedBool(0) {
			t.Fatalf("WeightedBool(0) returned true")
		}
	}
}

func TestRngDeterministicForSameSeed(t *testing.T) {
	a := NewRng(123)
	b := NewRng(123)
	for i := 0; i < 50; i++ {
		if a.UInt32(1000) != b.UInt32(1000) {
			t.Fatalf("two Rngs with the same seed diverged")
		}
	}
}

func TestPickReturnsElementOfSlice(t *testing.T) {
	rng := NewRng(4)
	items := []string{"a", "b", "c"}
	for i := 0; i < 20; i++ {
		v := Pick(rng, items)
		found := false
		for _, item := range items {
			if item == v {
				found = true
			}
		}
		if !found {
			t.Fatalf("Pick returned %q, not in %v", v, items)
		}
	}
}

func TestFingerprintStableAcrossTrailingMutation(t *testing.T) {
	a := make([]byte, 40)
	b := make([]byte, 40)
	for i := range a {
		a[i] = byte(i)
		b[i] = byte(i)
	}
	b[39] = 0xFF // mutate only a trailing byte, outside the fingerprint window

	if Fingerprint(a) != Fingerprint(b) {
		t.Fatalf("Fingerprint changed when only a trailing byte outside its window changed")
	}
}

func TestFingerprintShortBuffer(t *testing.T) {
	// Must not panic or divide oddly on tiny/empty buffers.
	Fingerprint(nil)
	Fingerprint([]byte{1})
	Fingerprint([]byte{1, 2, 3})
	Fingerprint([]byte{1, 2, 3, 4})
}
