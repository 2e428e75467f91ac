package structfuzz

import "testing"

func TestCaptureThenApplySameRuleRoundTrips(t *testing.T) {
	rng := NewRng(21)
	in := NewByteStream([]byte{1, 0, 5, 2, 9, 0, 1, 3}, rng)

	captured := &ByteSink{}
	captureSubtree(in, captured, PrimaryExpression, 1)

	stored := NewByteStream(captured.Out, rng)
	out := &ByteSink{}
	applySubtree(stored, out, PrimaryExpression, 1)

	if len(out.Out) != len(captured.Out) {
		t.Fatalf("applying a subtree to the rule it was captured from changed its length: %d vs %d", len(out.Out), len(captured.Out))
	}
}

func TestSubtreeTransferRandomTerminalFallbackNeverPanics(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	for seed := uint64(0); seed < 20; seed++ {
		Mutate(data, 0, seed, SubtreeTransfer)
	}
}

func TestSubtreeTransferOutputStillRenders(t *testing.T) {
	data := []byte{4, 8, 15, 16, 23, 42, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	for seed := uint64(0); seed < 30; seed++ {
		out := Mutate(data, 4096, seed, SubtreeTransfer)
		Render(out)
	}
}
