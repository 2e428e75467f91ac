package structfuzz

import "testing"

func TestTextSinkInsertsSpaceBetweenAlnumTokens(t *testing.T) {
	s := &TextSink{}
	s.Raw("foo")
	s.Raw("bar")
	if got := s.String(); got != "foo bar" {
		t.Fatalf("expected a space between two alnum tokens, got %q", got)
	}
}

func TestTextSinkNoSpaceBetweenPunctuation(t *testing.T) {
	s := &TextSink{}
	s.Raw("foo")
	s.Raw("(")
	if got := s.String(); got != "foo(" {
		t.Fatalf("expected no space before punctuation, got %q", got)
	}
}

func TestTextSinkLeadingPunctuationGetsNoLeadingSpace(t *testing.T) {
	s := &TextSink{}
	s.Raw("(")
	if got := s.String(); got != "(" {
		t.Fatalf("expected no leading space before the first punctuation token, got %q", got)
	}
}

func TestTextSinkIgnoresEmptyRaw(t *testing.T) {
	s := &TextSink{}
	s.Raw("foo")
	s.Raw("")
	s.Raw("(")
	if got := s.String(); got != "foo(" {
		t.Fatalf("expected an empty Raw call to be a no-op, got %q", got)
	}
}

func TestTextSinkIdentUsesPrefix(t *testing.T) {
	s := &TextSink{}
	s.Ident(3, "v")
	if got := s.String(); got != "v3" {
		t.Fatalf("expected Ident(3, %q) to render as %q, got %q", "v", "v3", got)
	}
}
