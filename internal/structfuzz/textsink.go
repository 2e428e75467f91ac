package structfuzz

import (
	"strconv"
	"strings"
	"unicode"
)

// TextSink accumulates rendered WGSL source text, inserting a single space
// wherever two adjacent emitted tokens would otherwise run together (two
// alphanumeric runs meeting with no punctuation between them).
type TextSink struct {
	buf  strings.Builder
	last rune
}

// Raw appends s verbatim, prefixed by a space if s's first rune and the
// previously emitted rune are both alphanumeric; otherwise s is
// concatenated directly.
func (t *TextSink) Raw(s string) {
	if s == "" {
		return
	}
	first := rune(s[0])
	if isAlnum(t.last) && isAlnum(first) {
		t.buf.WriteByte(' ')
	}
	t.buf.WriteString(s)
	t.last = rune(s[len(s)-1])
}

// Ident appends prefix followed by n's decimal digits, e.g. Ident(3, "t")
// writes "t3".
func (t *TextSink) Ident(n int, prefix string) {
	t.Raw(prefix + strconv.Itoa(n))
}

// String returns the accumulated text.
func (t *TextSink) String() string { return t.buf.String() }

func isAlnum(r rune) bool {
	return r != 0 && (unicode.IsLetter(r) || unicode.IsDigit(r))
}
