package cc

import (
	"errors"
	"math"
)

// ErrUnknownVariant is returned for a policy index outside [0, 9].
var ErrUnknownVariant = errors.New("cc: unknown policy variant")

// NumVariants is the size of the fixed policy table.
const NumVariants = 10

// Policy holds the three per-level decisions of the manager. All three
// receive the current node upper bound n, edge count m, recursion level
// and the semi-external node allowance M (nodes, not bytes).
type Policy struct {
	// ShouldContract decides whether this level runs a contraction
	// before sampling.
	ShouldContract func(n, m uint64, level int, M uint64) bool
	// ContractCount is the contraction goal: how many nodes to remove.
	ContractCount func(n, m uint64, level int, M uint64) uint64
	// SampleBits is k of the sampling probability 2^-k.
	SampleBits func(n, m uint64, level int, M uint64) int
}

// Variant returns the fixed policy table entry i.
//
//	0    always contract n/2, sample p = 1/2 (classic KKT)
//	1–5  contract at levels ≥ 1, contract n/2, k = i
//	6    adaptive: contract iff m/n < 4, goal n − m/4
//	7    adaptive: contract iff m/n < 8, goal n − m/8
//	8,9  as 6,7 with the density threshold scaled by the memory ratio
//
// Variants 6–9 sample with k = max(1, ⌊log2(m/n)⌋).
func Variant(i int) (Policy, error) {
	switch {
	case i == 0:
		return Policy{
			ShouldContract: func(_, _ uint64, _ int, _ uint64) bool { return true },
			ContractCount:  contractHalf,
			SampleBits:     fixedBits(1),
		}, nil
	case i >= 1 && i <= 5:
		return Policy{
			ShouldContract: contractBelowTop,
			ContractCount:  contractHalf,
			SampleBits:     fixedBits(i),
		}, nil
	case i == 6 || i == 7:
		threshold := uint64(4)
		if i == 7 {
			threshold = 8
		}
		return Policy{
			ShouldContract: func(n, m uint64, _ int, _ uint64) bool { return m/n < threshold },
			ContractCount:  func(n, m uint64, _ int, _ uint64) uint64 { return n - m/threshold },
			SampleBits:     adaptiveBits,
		}, nil
	case i == 8 || i == 9:
		base, scale := 4.0, 2.0
		if i == 9 {
			base, scale = 8.0, 6.0
		}
		return Policy{
			ShouldContract: func(n, m uint64, _ int, M uint64) bool {
				return m/n < scaledThreshold(n, M, base, scale)
			},
			ContractCount: func(n, m uint64, _ int, M uint64) uint64 {
				return n - m/scaledThreshold(n, M, base, scale)
			},
			SampleBits: adaptiveBits,
		}, nil
	default:
		return Policy{}, ErrUnknownVariant
	}
}

func contractBelowTop(_, _ uint64, level int, _ uint64) bool { return level > 0 }

func contractHalf(n, _ uint64, _ int, _ uint64) uint64 { return n / 2 }

func fixedBits(k int) func(n, m uint64, level int, M uint64) int {
	return func(_, _ uint64, _ int, _ uint64) int { return k }
}

// adaptiveBits picks k = max(1, ⌊log2(m/n)⌋), halving the expected
// sample down to roughly n edges.
func adaptiveBits(n, m uint64, _ int, _ uint64) int {
	k := int(math.Floor(math.Log2(float64(m) / float64(n))))
	if k < 1 {
		return 1
	}
	return k
}

// scaledThreshold interpolates the density threshold from its base at
// n = 2M toward 2 as n/M grows.
func scaledThreshold(n, M uint64, base, scale float64) uint64 {
	t := uint64(2.0 * (1.0 + scale*float64(M)/float64(n)))
	if t > uint64(base) {
		return uint64(base)
	}
	return t
}
