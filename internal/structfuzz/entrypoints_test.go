package structfuzz

import "testing"

func TestRenderEmptyDoesNotPanic(t *testing.T) {
	Render(nil)
	Render([]byte{})
}

func TestRenderDeterministic(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	a := Render(data)
	b := Render(data)
	if a != b {
		t.Fatalf("Render is not deterministic: %q != %q", a, b)
	}
}

func TestRenderNeverPanics(t *testing.T) {
	cases := [][]byte{
		nil,
		{},
		{0},
		{0xFF},
		make([]byte, 256),
	}
	for i := range cases {
		for j := range cases[i] {
			cases[i][j] = byte(i*7 + j*3)
		}
	}
	for _, c := range cases {
		Render(c)
	}
}

func TestMutateDeterministic(t *testing.T) {
	data := []byte{5, 10, 15, 20, 25, 30, 35, 40, 45, 50, 55, 60, 65, 70}
	for k := MutationKind(0); k < NumMutationKinds; k++ {
		a := Mutate(data, 0, 42, k)
		b := Mutate(data, 0, 42, k)
		if string(a) != string(b) {
			t.Fatalf("Mutate(%s) not deterministic for fixed seed", k)
		}
	}
}

func TestMutateRespectsMaxSize(t *testing.T) {
	data := make([]byte, 200)
	for i := range data {
		data[i] = byte(i)
	}
	for k := MutationKind(0); k < NumMutationKinds; k++ {
		out := Mutate(data, 10, 1, k)
		if len(out) > 10 {
			t.Fatalf("Mutate(%s) exceeded maxSize: got %d bytes", k, len(out))
		}
	}
}

func TestMutateNeverPanicsOnEmpty(t *testing.T) {
	for k := MutationKind(0); k < NumMutationKinds; k++ {
		Mutate(nil, 0, 1, k)
		Mutate([]byte{}, 64, 99, k)
	}
}

func TestMutateNeverPanicsOnRandomBuffers(t *testing.T) {
	seedBytes := []byte{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 8, 9, 7, 9, 3, 2, 3, 8, 4}
	for k := MutationKind(0); k < NumMutationKinds; k++ {
		for n := 0; n <= len(seedBytes); n++ {
			Mutate(seedBytes[:n], 1024, uint64(n*31+int(k)), k)
		}
	}
}

func TestMutateOutputStillRenders(t *testing.T) {
	data := []byte{2, 4, 6, 8, 10, 12, 14, 16, 18, 20, 22, 24, 26, 28, 30}
	for k := MutationKind(0); k < NumMutationKinds; k++ {
		out := Mutate(data, 4096, 7, k)
		Render(out) // must not panic regardless of how the buffer was reshaped
	}
}

func TestMutateAdvancesGenerations(t *testing.T) {
	buf := []byte{}
	for i := 0; i < 20; i++ {
		buf = Mutate(buf, 512, uint64(i), MutationKind(i%NumMutationKinds))
		Render(buf)
	}
}
