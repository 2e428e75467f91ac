package structfuzz

// consume reports whether index was exactly zero, then decrements it. Every
// traversal that hunts for one chosen eligible position (out of however
// many Mutate counted) calls this once per position it passes, so the
// position where it returns true is always the target and every other
// position is left untouched.
func consume(index *int) bool {
	hit := *index == 0
	*index--
	return hit
}

// mutateOne applies kind to a single occurrence of a sub-item (one
// iteration of a '*' or '?', or the lone occurrence of an unmodified
// item), copying everything it doesn't edit.
func mutateOne(in InputStream, out OutputStream, kind MutationKind, index *int, item SubItem, rng *Rng, ctx *Context, depth int) {
	switch item.kind {
	case contentEmit0:
		// consumes no bytes; nothing to copy or edit
	case contentTerminal:
		val := in.ByteTerm()
		if kind == RandomTerminal && consume(index) {
			val = byte(rng.UInt32(256))
		}
		out.Push(val)
	case contentRef:
		mutateRule(in, out, kind, index, item.ref, rng, ctx, depth+1)
	}
}

// mutateAlt walks one alternative's sub-items, handling each '*'/'?'
// sub-item's repetition count (growing or shrinking it for IncRepeat,
// DecRepeat, AddOptional, RemoveOptional) before delegating each
// occurrence to mutateOne.
func mutateAlt(in InputStream, out OutputStream, kind MutationKind, index *int, alt Alternative, rng *Rng, ctx *Context, depth int) {
	for _, item := range alt {
		repetitions, newRepetitions := 1, 1

		switch item.mod {
		case ModMany:
			repetitions = int(in.Range(MaxRepeats+1, true))
			newRepetitions = repetitions
			if kind == IncRepeat && repetitions < MaxRepeats && consume(index) {
				newRepetitions++
			}
			if kind == DecRepeat && repetitions > 0 && consume(index) {
				newRepetitions--
			}
			out.Push(byte(newRepetitions))
		case ModOptional:
			repetitions = int(in.Range(2, true))
			newRepetitions = repetitions
			if repetitions == 0 && kind == AddOptional && consume(index) {
				newRepetitions = 1
			}
			if repetitions == 1 && kind == RemoveOptional && consume(index) {
				newRepetitions = 0
			}
			out.Push(byte(newRepetitions))
		}

		shared := repetitions
		if newRepetitions < shared {
			shared = newRepetitions
		}
		for i := 0; i < shared; i++ {
			mutateOne(in, out, kind, index, item, rng, ctx, depth)
		}

		switch {
		case newRepetitions > repetitions:
			rndIn := NewRandomStream(rng)
			for i := 0; i < newRepetitions-repetitions; i++ {
				mutateOne(rndIn, out, kind, index, item, rng, ctx, depth)
			}
		case newRepetitions < repetitions:
			for i := 0; i < repetitions-newRepetitions; i++ {
				mutateOne(in, NullSink{}, kind, index, item, rng, ctx, depth)
			}
		}
	}
}

// mutateRule applies kind to rule id, copying every position untouched
// except the one index selects. For NextAlternative/PrevAlternative/
// RandomAlternative, the selected position is the rule's own alternative
// choice: the rest of that alternative is discarded (its bytes still have
// to be consumed from in to stay aligned) and a new alternative is chosen
// and filled in from a RandomStream, since the source buffer has no bytes
// shaped for it.
func mutateRule(in InputStream, out OutputStream, kind MutationKind, index *int, id RuleID, rng *Rng, ctx *Context, depth int) {
	if depth > MaxDepth {
		return
	}

	rule := grammarTable[id]
	var alternative uint32
	if len(rule) > 1 {
		alternative = in.Range(uint32(len(rule)), false)
		if kind >= NextAlternative && kind <= RandomAlternative && consume(index) {
			mutateAlt(in, NullSink{}, kind, index, rule[alternative], rng, ctx, depth)

			switch kind {
			case NextAlternative:
				alternative = (alternative + 1) % uint32(len(rule))
			case PrevAlternative:
				alternative = (alternative + uint32(len(rule)) - 1) % uint32(len(rule))
			case RandomAlternative:
				pick := rng.UInt32(uint32(len(rule)) - 1)
				if pick >= alternative {
					pick++
				}
				alternative = pick
			}

			out.Push(byte(alternative))
			mutateAlt(NewRandomStream(rng), out, kind, index, rule[alternative], rng, ctx, depth)
			return
		}
		out.Push(byte(alternative))
	}
	mutateAlt(in, out, kind, index, rule[alternative], rng, ctx, depth)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
