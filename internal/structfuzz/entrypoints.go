package structfuzz

// Render decodes data into deterministic WGSL source text. The render-time
// Rng is seeded from data's Fingerprint, so the result is a pure function
// of data alone. That Rng backs ByteTerm's fallback once data runs out
// partway through decoding, and the numeric-literal synthesizers' choices
// (reuse a variable or mint a literal, and the literal's value).
func Render(data []byte) string {
	rng := NewRng(Fingerprint(data))
	ctx := NewContext(rng)
	in := NewByteStream(data, rng)
	out := &TextSink{}
	Generate(in, ctx, out, TranslationUnit, 0)
	return out.String()
}

// Mutate applies one structural edit of the given kind to data and returns
// the result, truncated to at most maxSize bytes if maxSize > 0. It is a
// pure function of (data, seed, kind): same inputs always produce the same
// output.
//
// kind is tried first; if the buffer has no position eligible for it (for
// example RemoveOptional on a buffer with no present optional), Mutate
// advances to the next kind in MutationKind's enumeration order and tries
// again. This always terminates because LibFuzzerMutate, the last kind,
// always returns (an empty buffer comes back empty from it). An empty
// buffer still decodes to one '*' position, TranslationUnit's GlobalDecl
// list at count 0, so IncRepeat is eligible on it and grows it.
func Mutate(data []byte, maxSize int, seed uint64, kind MutationKind) []byte {
	rng := NewRng(seed)

	if kind == LibFuzzerMutate {
		return clampSize(libFuzzerMutate(data, rng), maxSize)
	}

	ctx := NewContext(rng)

	var stat MutationStat
	CountStats(&stat, NewByteStream(data, rng), TranslationUnit, 0)

	for {
		switch kind {
		case AddOptional:
			if stat.Optionals[0] > 0 {
				return clampSize(runMutation(data, rng, ctx, kind, int(rng.UInt32(uint32(stat.Optionals[0])))), maxSize)
			}
		case RemoveOptional:
			if stat.Optionals[1] > 0 {
				return clampSize(runMutation(data, rng, ctx, kind, int(rng.UInt32(uint32(stat.Optionals[1])))), maxSize)
			}
		case IncRepeat:
			if n := stat.Repeats[0] + stat.Repeats[1]; n > 0 {
				return clampSize(runMutation(data, rng, ctx, kind, int(rng.UInt32(uint32(n)))), maxSize)
			}
		case DecRepeat:
			if n := stat.Repeats[1] + stat.Repeats[2]; n > 0 {
				return clampSize(runMutation(data, rng, ctx, kind, int(rng.UInt32(uint32(n)))), maxSize)
			}
		case NextAlternative, PrevAlternative, RandomAlternative:
			if stat.Alternatives > 0 {
				return clampSize(runMutation(data, rng, ctx, kind, int(rng.UInt32(uint32(stat.Alternatives)))), maxSize)
			}
		case RandomTerminal:
			if stat.Terminals > 0 {
				return clampSize(runMutation(data, rng, ctx, kind, int(rng.UInt32(uint32(stat.Terminals)))), maxSize)
			}
		case SubtreeTransfer:
			if stat.TransferLocations > 1 {
				return clampSize(runSubtreeTransfer(data, rng, ctx, stat), maxSize)
			}
		case LibFuzzerMutate:
			return clampSize(libFuzzerMutate(data, rng), maxSize)
		}
		kind = kind.next()
	}
}

// runMutation decodes data from scratch and re-encodes it under kind,
// editing the one position index selects.
func runMutation(data []byte, rng *Rng, ctx *Context, kind MutationKind, index int) []byte {
	in := NewByteStream(data, rng)
	out := &ByteSink{}
	mutateRule(in, out, kind, &index, TranslationUnit, rng, ctx, 0)
	return out.Out
}

// runSubtreeTransfer performs SubtreeTransfer's two-phase edit: capture a
// uniformly random eligible subtree, then splice it into a second,
// independently chosen eligible position. If no subtree could be captured,
// or the chosen splice site turns out incompatible with what was captured,
// it falls back to a fresh RandomTerminal mutation over the whole buffer.
func runSubtreeTransfer(data []byte, rng *Rng, ctx *Context, stat MutationStat) []byte {
	captureIndex := int(rng.UInt32(uint32(stat.TransferLocations)))
	captureWalk(NewByteStream(data, rng), &captureIndex, TranslationUnit, ctx, 0)

	fallback := func() []byte {
		bound := maxInt(stat.Terminals, 1)
		return runMutation(data, rng, ctx, RandomTerminal, int(rng.UInt32(uint32(bound))))
	}

	if !ctx.haveStored {
		return fallback()
	}

	spliceIndex := int(rng.UInt32(uint32(stat.TransferLocations)))
	out := &ByteSink{}
	applied, attempted := spliceWalk(NewByteStream(data, rng), out, &spliceIndex, TranslationUnit, ctx, 0)
	if attempted && !applied {
		return fallback()
	}
	return out.Out
}

// libFuzzerMutate applies 1-3 rounds of a raw byte-level edit (bit flip,
// byte flip, random byte, adjacent swap, or random insert), bypassing the
// grammar entirely. It is MutationKind's fallback for buffers with no
// grammar-eligible position at all, and its own explicit kind.
func libFuzzerMutate(data []byte, rng *Rng) []byte {
	out := append([]byte(nil), data...)
	if len(out) == 0 {
		return out
	}

	limit := len(out)/10 + 1
	if limit > 3 {
		limit = 3
	}
	rounds := 1 + int(rng.UInt32(uint32(limit)))

	for i := 0; i < rounds; i++ {
		switch rng.UInt32(5) {
		case 0: // bit flip
			pos := rng.UInt32(uint32(len(out)))
			out[pos] ^= 1 << rng.UInt32(8)
		case 1: // byte flip
			pos := rng.UInt32(uint32(len(out)))
			out[pos] ^= 0xFF
		case 2: // random byte
			pos := rng.UInt32(uint32(len(out)))
			out[pos] = byte(rng.UInt32(256))
		case 3: // adjacent swap
			if len(out) > 1 {
				pos := rng.UInt32(uint32(len(out) - 1))
				out[pos], out[pos+1] = out[pos+1], out[pos]
			}
		case 4: // random insert, capped so Mutate can't be used to grow a buffer without bound
			if len(out) < 65536 {
				pos := rng.UInt32(uint32(len(out) + 1))
				v := byte(rng.UInt32(256))
				out = append(out, 0)
				copy(out[pos+1:], out[pos:])
				out[pos] = v
			}
		}
	}
	return out
}

func clampSize(out []byte, maxSize int) []byte {
	if maxSize > 0 && len(out) > maxSize {
		return out[:maxSize]
	}
	return out
}
