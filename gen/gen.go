package gen

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/emcc/edgestream"
)

type (
	node = edgestream.Node
	edge = edgestream.Edge
)

// Path emits the n-1 edges of a path over nodes 1..n.
// Panics when n < 2.
func Path(n node, out edgestream.Pusher[edge]) {
	if n < 2 {
		panic("gen: Path(n < 2)")
	}
	for u := node(1); u < n; u++ {
		out.Push(edge{U: u, V: u + 1})
	}
}

// Grid emits the edges of a width×height grid, rows numbered
// consecutively: node (row, col) is row·width + col + 1.
// Panics when either dimension is < 2.
func Grid(width, height node, out edgestream.Pusher[edge]) {
	if width < 2 || height < 2 {
		panic("gen: Grid(dimension < 2)")
	}
	for row := node(0); row < height-1; row++ {
		for col := node(0); col < width-1; col++ {
			u := row*width + col + 1
			out.Push(edge{U: u, V: u + 1})
			out.Push(edge{U: u, V: u + width})
		}
		// rightmost column only connects downward
		out.Push(edge{U: (row + 1) * width, V: (row + 2) * width})
	}
	for col := node(0); col < width-1; col++ {
		u := (height-1)*width + col + 1
		out.Push(edge{U: u, V: u + 1})
	}
}

// Cliques emits numCliques disjoint complete graphs of cliqueSize nodes
// each. Panics when cliqueSize < 2 or numCliques < 1.
func Cliques(cliqueSize, numCliques node, out edgestream.Pusher[edge]) {
	if cliqueSize < 2 {
		panic("gen: Cliques(cliqueSize < 2)")
	}
	if numCliques < 1 {
		panic("gen: Cliques(numCliques < 1)")
	}
	for clique := node(0); clique < numCliques; clique++ {
		first := clique*cliqueSize + 1
		last := first + cliqueSize - 1
		for u := first; u < last; u++ {
			for v := u + 1; v <= last; v++ {
				out.Push(edge{U: u, V: v})
			}
		}
	}
}

// Cube emits layers disjoint copies of a generalized width×height grid
// where each cell connects to neighbors up to distance away (including
// diagonals). Panics on dimensions < 2, layers < 1 or distance < 1.
func Cube(width, height, layers node, distance node, out edgestream.Pusher[edge]) {
	if width < 2 || height < 2 {
		panic("gen: Cube(dimension < 2)")
	}
	if layers < 1 {
		panic("gen: Cube(layers < 1)")
	}
	if distance < 1 {
		panic("gen: Cube(distance < 1)")
	}
	for layer := node(0); layer < layers; layer++ {
		start := layer*width*height + 1
		for row := node(0); row < height; row++ {
			for col := node(0); col < width; col++ {
				source := row*width + col + start
				for off := node(1); off <= distance && col+off < width; off++ {
					out.Push(edge{U: source, V: source + off})
				}
				startCol := node(0)
				if col >= distance {
					startCol = col - distance
				}
				endCol := width - 1
				if col+distance < width {
					endCol = col + distance
				}
				for rowOff := node(1); rowOff <= distance && row+rowOff < height; rowOff++ {
					for target := startCol; target <= endCol; target++ {
						out.Push(edge{U: source, V: (row+rowOff)*width + target + start})
					}
				}
			}
		}
	}
}

// Gilbert emits a G(n, p) graph with p chosen so the expected edge
// count is ratio·n, walking the upper-triangular adjacency matrix with
// geometric skips — one draw per emitted edge rather than one per pair.
// Panics when n < 2, ratio ≤ 0 or rng is nil.
func Gilbert(n node, ratio float64, rng *rand.Rand, out edgestream.Pusher[edge]) {
	if n < 2 {
		panic("gen: Gilbert(n < 2)")
	}
	if ratio <= 0 {
		panic("gen: Gilbert(ratio <= 0)")
	}
	if rng == nil {
		panic("gen: Gilbert(nil rng)")
	}
	p := 2 * ratio / float64(n-1)
	if p > 1 {
		p = 1
	}

	rowWidth := uint64(n - 1)
	u := node(1)
	vOffset := uint64(0)
	for {
		vOffset += geometric(rng, p)
		for vOffset >= rowWidth {
			u++
			vOffset -= rowWidth
			rowWidth--
			if rowWidth == 0 {
				return
			}
		}
		if u > n {
			return
		}
		out.Push(edge{U: u, V: u + node(vOffset) + 1})
		vOffset++
		if vOffset >= rowWidth {
			u++
			vOffset -= rowWidth
			rowWidth--
			if rowWidth == 0 {
				return
			}
		}
	}
}

// geometric draws the number of failures before the first success of a
// Bernoulli(p) sequence.
func geometric(rng *rand.Rand, p float64) uint64 {
	if p >= 1 {
		return 0
	}
	u := rng.Float64()
	return uint64(math.Floor(math.Log1p(-u) / math.Log1p(-p)))
}
