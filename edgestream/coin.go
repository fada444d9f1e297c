package edgestream

import "math/rand"

// PowerOfTwoCoin is a Bernoulli trial with probability 2^-k, extracted
// in batches from a uniform 64-bit source: the toss is true iff the next
// k bits are all ones, and one Uint64 draw funds ⌊64/k⌋ tosses.
type PowerOfTwoCoin struct {
	power    int
	mask     uint64
	bitsLeft int
	bits     uint64
}

// NewPowerOfTwoCoin returns a coin with success probability 2^-power.
// Panics unless 1 ≤ power ≤ 63.
func NewPowerOfTwoCoin(power int) *PowerOfTwoCoin {
	if power < 1 || power > 63 {
		panic("edgestream: NewPowerOfTwoCoin(power outside [1,63])")
	}
	return &PowerOfTwoCoin{
		power: power,
		mask:  ^(^uint64(0) << power),
	}
}

// Toss draws one trial from rng.
func (c *PowerOfTwoCoin) Toss(rng *rand.Rand) bool {
	if c.bitsLeft < c.power {
		c.bits = rng.Uint64()
		c.bitsLeft = 64
	}
	res := c.bits&c.mask == c.mask
	c.bits >>= c.power
	c.bitsLeft -= c.power
	return res
}

// Probability returns 2^-power.
func (c *PowerOfTwoCoin) Probability() float64 {
	return 1 / float64(uint64(1)<<c.power)
}

// Reset discards buffered bits.
func (c *PowerOfTwoCoin) Reset() {
	c.bits = 0
	c.bitsLeft = 0
}

// WeightedCoin is a Bernoulli trial with an arbitrary probability.
type WeightedCoin struct {
	p float64
}

// NewWeightedCoin returns a coin with success probability p.
// Panics unless 0 ≤ p ≤ 1.
func NewWeightedCoin(p float64) WeightedCoin {
	if p < 0 || p > 1 {
		panic("edgestream: NewWeightedCoin(p outside [0,1])")
	}
	return WeightedCoin{p: p}
}

// Toss draws one trial from rng.
func (c WeightedCoin) Toss(rng *rand.Rand) bool { return rng.Float64() < c.p }

// Probability returns p.
func (c WeightedCoin) Probability() float64 { return c.p }
