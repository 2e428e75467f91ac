package structfuzz

import "sort"

// ProbabilityTable is a discrete distribution over MutationKind built from a
// fixed-length vector of non-negative weights, sampled via a cumulative-sum
// table.
type ProbabilityTable struct {
	prefix []uint64 // prefix[i] = sum of weights[0:i]; prefix[len-1] == total
}

// NewProbabilityTable builds a cumulative-sum table from per-kind weights.
// The total of all weights must be > 0.
func NewProbabilityTable(weights []uint32) ProbabilityTable {
	prefix := make([]uint64, len(weights)+1)

	var sum uint64
	for i, w := range weights {
		prefix[i] = sum
		sum += uint64(w)
	}

	prefix[len(weights)] = sum

	if sum == 0 {
		panic("structfuzz: ProbabilityTable requires a positive weight total")
	}

	return ProbabilityTable{prefix: prefix}
}

// Size returns the number of entries in the table.
func (t ProbabilityTable) Size() int {
	return len(t.prefix) - 1
}

// Total returns the sum of all weights.
func (t ProbabilityTable) Total() uint64 {
	return t.prefix[len(t.prefix)-1]
}

// Sample returns index i such that prefix[i] <= v < prefix[i+1], for a
// uniformly random v in [0, Total()).
func (t ProbabilityTable) Sample(rng *Rng) int {
	v := rng.UInt64(t.Total())
	// prefix[1:] is strictly non-decreasing; find the first entry strictly
	// greater than v, then step back one to land in the containing bucket.
	i := sort.Search(len(t.prefix), func(i int) bool { return t.prefix[i] > v })

	return i - 1
}

// SampleKind samples a MutationKind from a table built in MutationKind
// enumeration order.
func (t ProbabilityTable) SampleKind(rng *Rng) MutationKind {
	return MutationKind(t.Sample(rng))
}
