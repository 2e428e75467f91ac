package structfuzz

// Generate recursively expands rule id by reading selector bytes from in
// and writing rendered WGSL text to out. It never reads anything for a
// Literal or a Ref; it makes one Range call to pick an alternative (which
// consumes a byte only when the rule has more than one alternative),
// reads one Range byte per '*' or '?' sub-item, and one ByteTerm byte per
// Terminal sub-item — the same shape CountStats and Mutate consume, so all
// three traversals stay aligned over the same input.
func Generate(in *ByteStream, ctx *Context, out *TextSink, id RuleID, depth int) {
	if depth > MaxDepth {
		return
	}

	rule := grammarTable[id]
	alt := rule[in.Range(uint32(len(rule)), false)]

	for _, item := range alt {
		repetitions := 1
		switch item.mod {
		case ModMany:
			repetitions = int(in.Range(MaxRepeats+1, true))
		case ModOptional:
			repetitions = int(in.Range(2, true))
		}

		for i := 0; i < repetitions; i++ {
			switch item.kind {
			case contentEmit0:
				emitZero(item, out, ctx)
			case contentTerminal:
				emitTerminal(item, in.ByteTerm(), out)
			case contentRef:
				Generate(in, ctx, out, item.ref, depth+1)
			}
		}
	}
}
