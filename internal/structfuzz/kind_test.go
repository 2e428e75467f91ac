package structfuzz

import "testing"

func TestMutationKindNextWrapsAround(t *testing.T) {
	if LibFuzzerMutate.next() != AddOptional {
		t.Fatalf("expected next() to wrap from LibFuzzerMutate back to AddOptional")
	}
}

func TestMutationKindNextCycleCoversEveryKind(t *testing.T) {
	seen := map[MutationKind]bool{}
	k := AddOptional
	for i := 0; i < NumMutationKinds; i++ {
		seen[k] = true
		k = k.next()
	}
	if len(seen) != NumMutationKinds {
		t.Fatalf("next() cycle did not cover every kind: saw %d of %d", len(seen), NumMutationKinds)
	}
	if k != AddOptional {
		t.Fatalf("expected a full cycle to return to AddOptional, got %s", k)
	}
}

func TestParseMutationKindRoundTrip(t *testing.T) {
	for k := MutationKind(0); k < NumMutationKinds; k++ {
		got, ok := ParseMutationKind(k.String())
		if !ok {
			t.Fatalf("ParseMutationKind(%q) reported not found", k.String())
		}
		if got != k {
			t.Fatalf("ParseMutationKind(%q) = %s, want %s", k.String(), got, k)
		}
	}
}

func TestParseMutationKindCaseInsensitive(t *testing.T) {
	got, ok := ParseMutationKind("randomterminal")
	if !ok || got != RandomTerminal {
		t.Fatalf("expected case-insensitive match for RandomTerminal, got %s, ok=%v", got, ok)
	}
}

func TestParseMutationKindUnknown(t *testing.T) {
	if _, ok := ParseMutationKind("NotAKind"); ok {
		t.Fatalf("expected ParseMutationKind to reject an unknown name")
	}
}
