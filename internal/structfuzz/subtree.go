package structfuzz

// compatibilityGroups lists closed equivalence classes of rules considered
// interchangeable by SubtreeTransfer: a captured subtree may be spliced
// into any position whose rule is in the same group as the rule it was
// captured from.
var compatibilityGroups = [][]RuleID{
	{Expression, UnaryExpression, PrimaryExpression},
	{Statement, VariableOrValueStatement, CompoundStatement},
	{IntLiteral, FloatLiteral, Literal},
}

// nodesCompatible reports whether a subtree captured at rule source may be
// spliced into a position expecting rule target.
func nodesCompatible(source, target RuleID) bool {
	if source == target {
		return true
	}
	for _, group := range compatibilityGroups {
		has := func(r RuleID) bool {
			for _, g := range group {
				if g == r {
					return true
				}
			}
			return false
		}
		if has(source) && has(target) {
			return true
		}
	}
	return false
}

// captureSubtree decodes rule id from in the same way Generate does, but
// instead of rendering text it re-encodes every byte it reads to out —
// capturing a self-contained, replayable copy of this one subtree's bytes.
func captureSubtree(in InputStream, out OutputStream, id RuleID, depth int) {
	if depth > MaxDepth {
		return
	}

	rule := grammarTable[id]
	alternative := in.Range(uint32(len(rule)), false)
	out.Push(byte(alternative))

	for _, item := range rule[alternative] {
		repetitions := 1
		switch item.mod {
		case ModMany:
			repetitions = int(in.Range(MaxRepeats+1, true))
			out.Push(byte(repetitions))
		case ModOptional:
			repetitions = int(in.Range(2, true))
			out.Push(byte(repetitions))
		}

		for i := 0; i < repetitions; i++ {
			switch item.kind {
			case contentTerminal:
				out.Push(in.ByteTerm())
			case contentRef:
				captureSubtree(in, out, item.ref, depth+1)
			}
		}
	}
}

// applySubtree decodes a previously captured byte buffer against rule id.
// The buffer was captured against a compatible but not necessarily
// identical rule, so its alternative/repetition bytes are clamped into
// range rather than trusted outright.
func applySubtree(in InputStream, out OutputStream, id RuleID, depth int) {
	if depth > MaxDepth {
		return
	}

	rule := grammarTable[id]
	alternative := int(in.Byte())
	if alternative >= len(rule) {
		alternative = 0
	}
	if len(rule) > 1 {
		out.Push(byte(alternative))
	}

	for _, item := range rule[alternative] {
		repetitions := 1
		switch item.mod {
		case ModMany:
			repetitions = int(in.Byte())
			if repetitions > MaxRepeats {
				repetitions = MaxRepeats
			}
			out.Push(byte(repetitions))
		case ModOptional:
			repetitions = int(in.Byte())
			if repetitions > 1 {
				repetitions = 1
			}
			out.Push(byte(repetitions))
		}

		for i := 0; i < repetitions; i++ {
			switch item.kind {
			case contentTerminal:
				out.Push(in.Byte())
			case contentRef:
				applySubtree(in, out, item.ref, depth+1)
			}
		}
	}
}

// captureWalk decodes the full buffer starting at id, and when it reaches
// the position index selects — a Ref expansion at depth > 0, excluding the
// implicit root — captures that position's subtree into ctx and stops.
// Every other position is decoded just far enough to stay aligned with the
// buffer and is then discarded.
func captureWalk(in InputStream, index *int, id RuleID, ctx *Context, depth int) {
	if depth > MaxDepth {
		return
	}

	if depth > 0 && id != TranslationUnit && consume(index) {
		captured := &ByteSink{}
		captureSubtree(in, captured, id, depth)
		ctx.storedSubtree = captured.Out
		ctx.storedRuleID = id
		ctx.haveStored = true
		return
	}

	rule := grammarTable[id]
	alternative := in.Range(uint32(len(rule)), false)

	for _, item := range rule[alternative] {
		repetitions := 1
		switch item.mod {
		case ModMany:
			repetitions = int(in.Range(MaxRepeats+1, true))
		case ModOptional:
			repetitions = int(in.Range(2, true))
		}

		for i := 0; i < repetitions; i++ {
			switch item.kind {
			case contentTerminal:
				in.ByteTerm()
			case contentRef:
				captureWalk(in, index, item.ref, ctx, depth+1)
			}
		}
	}
}

// spliceWalk re-encodes the full buffer starting at id, substituting the
// subtree captured in ctx at the position index selects. It reports
// whether a splice site was reached (attempted) and, if so, whether the
// captured subtree was compatible with it (applied). A reached-but-
// incompatible site still emits a plain copy of that position so the
// traversal can keep going, but the caller discards the whole result and
// falls back to a fresh RandomTerminal mutation instead of shipping a
// half-spliced buffer.
func spliceWalk(in InputStream, out OutputStream, index *int, id RuleID, ctx *Context, depth int) (applied, attempted bool) {
	if depth > MaxDepth {
		return false, false
	}

	if depth > 0 && id != TranslationUnit && consume(index) {
		if nodesCompatible(ctx.storedRuleID, id) {
			stored := NewByteStream(ctx.storedSubtree, ctx.rng)
			applySubtree(stored, out, id, depth)
			// skip the replaced subtree's own bytes so the rest of the
			// buffer stays aligned
			captureSubtree(in, NullSink{}, id, depth)
			return true, true
		}
		attempted = true
		// fall through: copy this position plainly so the result stays
		// well-formed, even though the caller will discard it.
	}

	rule := grammarTable[id]
	alternative := in.Range(uint32(len(rule)), false)
	if len(rule) > 1 {
		out.Push(byte(alternative))
	}

	for _, item := range rule[alternative] {
		repetitions := 1
		switch item.mod {
		case ModMany:
			repetitions = int(in.Range(MaxRepeats+1, true))
			out.Push(byte(repetitions))
		case ModOptional:
			repetitions = int(in.Range(2, true))
			out.Push(byte(repetitions))
		}

		for i := 0; i < repetitions; i++ {
			switch item.kind {
			case contentTerminal:
				out.Push(in.ByteTerm())
			case contentRef:
				childApplied, childAttempted := spliceWalk(in, out, index, item.ref, ctx, depth+1)
				if childAttempted {
					attempted, applied = true, childApplied
				}
			}
		}
	}
	return applied, attempted
}
