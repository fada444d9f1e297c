package edgestream

import (
	"math/rand"

	"github.com/katalvlaran/emcc/extsort"
)

// RandomNeighborPerSource yields, for each source kept by a coin of
// probability p, exactly one uniformly random out-edge of that source,
// chosen by reservoir sampling over its neighborhood: the c-th neighbor
// replaces the running candidate with probability 1/c.
//
// The input must be sorted by source. Chosen edges are recorded in an
// internal sequence during the first pass so Rewind can replay them
// without re-consuming the input or re-drawing the reservoir.
type RandomNeighborPerSource struct {
	in   Stream[Edge]
	coin WeightedCoin
	rng  *rand.Rand

	buf    *extsort.Sequence[Edge]
	replay bool
	cur    Edge
	done   bool

	size             int
	sampledSources   int
	unsampledSources int
}

// NewRandomNeighborPerSource wraps the source-sorted stream in, keeping
// each source with probability p. rng must not be nil.
func NewRandomNeighborPerSource(in Stream[Edge], p float64, rng *rand.Rand) *RandomNeighborPerSource {
	if rng == nil {
		panic("edgestream: NewRandomNeighborPerSource(nil rng)")
	}
	r := &RandomNeighborPerSource{
		in:   in,
		coin: NewWeightedCoin(p),
		rng:  rng,
		buf:  extsort.NewSequence[Edge](EdgeCodec{}),
	}
	r.prime()
	return r
}

// prime advances to the next kept source and draws its reservoir.
func (r *RandomNeighborPerSource) prime() {
	for {
		if r.in.Empty() {
			r.done = true
			return
		}
		src := r.in.Peek().U
		if !r.coin.Toss(r.rng) {
			r.unsampledSources++
			for !r.in.Empty() && r.in.Peek().U == src {
				r.in.Next()
			}
			continue
		}
		r.sampledSources++
		counter := 1
		var chosen Edge
		for !r.in.Empty() && r.in.Peek().U == src {
			e := r.in.Peek()
			if r.rng.Float64() < 1/float64(counter) {
				chosen = e
			}
			counter++
			r.in.Next()
		}
		r.cur = chosen
		r.buf.Push(chosen)
		r.size++
		return
	}
}

func (r *RandomNeighborPerSource) Empty() bool {
	if r.replay {
		return r.buf.Empty()
	}
	return r.done
}

func (r *RandomNeighborPerSource) Peek() Edge {
	if r.replay {
		return r.buf.Peek()
	}
	if r.done {
		panic("edgestream: Peek on empty RandomNeighborPerSource")
	}
	return r.cur
}

func (r *RandomNeighborPerSource) Next() {
	if r.replay {
		r.buf.Next()
		return
	}
	if r.done {
		panic("edgestream: Next on empty RandomNeighborPerSource")
	}
	r.prime()
}

// Rewind switches to replay mode over the recorded choices.
func (r *RandomNeighborPerSource) Rewind() {
	r.replay = true
	r.buf.Rewind()
}

// Size reports the number of edges chosen so far.
func (r *RandomNeighborPerSource) Size() int { return r.size }

// NumSources reports how many sources the first pass has seen.
func (r *RandomNeighborPerSource) NumSources() int {
	return r.sampledSources + r.unsampledSources
}

// NumSampledSources reports how many sources the coin kept.
func (r *RandomNeighborPerSource) NumSampledSources() int { return r.sampledSources }

// NumUnsampledSources reports how many sources the coin dropped.
func (r *RandomNeighborPerSource) NumUnsampledSources() int { return r.unsampledSources }

// Close releases the replay buffer.
func (r *RandomNeighborPerSource) Close() { r.buf.Close() }
