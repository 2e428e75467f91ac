package structfuzz

// MutationStat tallies, over one traversal of a decoded buffer, how many
// positions are eligible for each MutationKind. Mutate samples a position
// uniformly within the relevant count(s), then re-walks the same buffer
// counting down to that position to find it.
type MutationStat struct {
	Alternatives int

	// Repeats[0]/[1]/[2] count '*' positions whose decoded repetition is at
	// the floor (0), strictly between, or at the ceiling (MaxRepeats).
	Repeats [3]int

	// Optionals[0]/[1] count '?' positions decoded absent/present.
	Optionals [2]int

	Terminals int

	// TransferLocations counts Ref positions at depth > 0, excluding
	// TranslationUnit, eligible as a SubtreeTransfer capture site.
	TransferLocations int
}

// CountStats walks id the same way Generate does, tallying MutationStat
// instead of emitting text.
func CountStats(stat *MutationStat, in *ByteStream, id RuleID, depth int) {
	if depth > MaxDepth {
		return
	}

	if depth > 0 && id != TranslationUnit {
		stat.TransferLocations++
	}

	rule := grammarTable[id]
	if len(rule) > 1 {
		stat.Alternatives++
	}
	alt := rule[in.Range(uint32(len(rule)), false)]

	for _, item := range alt {
		repetitions := 1
		switch item.mod {
		case ModMany:
			repetitions = int(in.Range(MaxRepeats+1, true))
			switch {
			case repetitions == 0:
				stat.Repeats[0]++
			case repetitions == MaxRepeats:
				stat.Repeats[2]++
			default:
				stat.Repeats[1]++
			}
		case ModOptional:
			repetitions = int(in.Range(2, true))
			stat.Optionals[repetitions]++
		}

		for i := 0; i < repetitions; i++ {
			switch item.kind {
			case contentEmit0:
			case contentTerminal:
				in.ByteTerm()
				stat.Terminals++
			case contentRef:
				CountStats(stat, in, item.ref, depth+1)
			}
		}
	}
}
