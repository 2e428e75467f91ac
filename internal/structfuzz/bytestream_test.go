package structfuzz

import "testing"

func TestByteStreamReadsInOrder(t *testing.T) {
	s := NewByteStream([]byte{10, 20, 30}, NewRng(1))
	if s.Byte() != 10 || s.Byte() != 20 || s.Byte() != 30 {
		t.Fatalf("ByteStream did not read bytes in order")
	}
}

func TestByteStreamExhaustedReturnsZero(t *testing.T) {
	s := NewByteStream([]byte{1}, NewRng(1))
	s.Byte()
	if got := s.Byte(); got != 0 {
		t.Fatalf("expected 0 past the end of the buffer, got %d", got)
	}
}

func TestByteStreamByteTermFallsBackToRng(t *testing.T) {
	s := NewByteStream(nil, NewRng(5))
	// Must not panic, and must return some byte (range is the full byte range).
	_ = s.ByteTerm()
}

func TestByteStreamRangeZeroLimitStaysZero(t *testing.T) {
	s := NewByteStream([]byte{200}, NewRng(1))
	if got := s.Range(1, false); got != 0 {
		t.Fatalf("Range(1, _) must always return 0, got %d", got)
	}
}

func TestByteStreamRangeClampsToLimit(t *testing.T) {
	s := NewByteStream([]byte{250}, NewRng(1))
	if got := s.Range(10, false); got != 9 {
		t.Fatalf("expected Range to clamp 250 into [0,10) as 9, got %d", got)
	}
}

func TestRandomStreamRepeatAlwaysZero(t *testing.T) {
	s := NewRandomStream(NewRng(3))
	for i := 0; i < 50; i++ {
		if got := s.Range(6, true); got != 0 {
			t.Fatalf("RandomStream.Range(_, true) must always be 0, got %d", got)
		}
	}
}

func TestRandomStreamNonRepeatInBounds(t *testing.T) {
	s := NewRandomStream(NewRng(3))
	for i := 0; i < 200; i++ {
		if got := s.Range(7, false); got >= 7 {
			t.Fatalf("RandomStream.Range(7, false) returned out-of-range value %d", got)
		}
	}
}

func TestByteSinkAccumulates(t *testing.T) {
	sink := &ByteSink{}
	sink.Push(1)
	sink.Push(2)
	if len(sink.Out) != 2 || sink.Out[0] != 1 || sink.Out[1] != 2 {
		t.Fatalf("ByteSink did not accumulate pushed bytes, got %v", sink.Out)
	}
}

func TestNullSinkDiscards(t *testing.T) {
	var sink NullSink
	sink.Push(1) // must not panic; nothing to observe
}
