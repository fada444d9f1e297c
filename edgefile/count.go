package edgefile

import (
	"io"

	"github.com/katalvlaran/emcc/edgestream"
	"github.com/katalvlaran/emcc/extsort"
)

// CountResult summarizes a counting pass over an edge file.
type CountResult struct {
	Nodes uint64
	MaxID edgestream.Node
	Edges uint64
}

// CountNodes scans a binary edge file and reports the number of
// distinct nodes, the maximum node ID and the edge count. When external
// is set the distinct count runs through an external sorter (one node
// per source change plus every target); otherwise a hash set is used.
func CountNodes(path string, external bool, limits extsort.Limits) (CountResult, error) {
	r, err := OpenReader(path)
	if err != nil {
		return CountResult{}, err
	}
	defer r.Close()

	if !external {
		return countInternal(r)
	}
	return countExternal(r, limits)
}

func countInternal(r *Reader) (CountResult, error) {
	var res CountResult
	seen := make(map[edgestream.Node]struct{})
	for {
		e, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return res, err
		}
		seen[e.U] = struct{}{}
		seen[e.V] = struct{}{}
		if e.V > res.MaxID {
			res.MaxID = e.V
		}
		if e.U > res.MaxID {
			res.MaxID = e.U
		}
		res.Edges++
	}
	res.Nodes = uint64(len(seen))
	return res, nil
}

// countExternal extracts node IDs — sources once per run, every target —
// sorts them externally and counts the distinct values.
func countExternal(r *Reader, limits extsort.Limits) (CountResult, error) {
	var res CountResult
	nodes := extsort.NewSorter[edgestream.Node](edgestream.NodeAsc{}, edgestream.NodeCodec{}, limits)
	defer nodes.Reset()

	prevSource := edgestream.MinNode
	for {
		e, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return res, err
		}
		if e.U != prevSource {
			nodes.Push(e.U)
			prevSource = e.U
		}
		nodes.Push(e.V)
		if e.V > res.MaxID {
			res.MaxID = e.V
		}
		if e.U > res.MaxID {
			res.MaxID = e.U
		}
		res.Edges++
	}
	nodes.Sort()
	prev := edgestream.MinNode
	for !nodes.Empty() {
		u := nodes.Peek()
		if u != prev {
			res.Nodes++
			prev = u
		}
		nodes.Next()
	}
	return res, nodes.Err()
}

// StarCheck summarizes a star-file verification.
type StarCheck struct {
	// Labels is the number of records read.
	Labels int
	// Components is the number of distinct representatives.
	Components int
	// Sizes maps each representative to its component size.
	Sizes map[edgestream.Node]int
	// OK reports whether keys were unique and every representative
	// mapped to itself.
	OK bool
}

// CheckStars verifies a star file: every node appears once as a key and
// every referenced representative is a fixed point.
func CheckStars(path string) (StarCheck, error) {
	r, err := OpenReader(path)
	if err != nil {
		return StarCheck{}, err
	}
	defer r.Close()

	check := StarCheck{Sizes: make(map[edgestream.Node]int), OK: true}
	keys := make(map[edgestream.Node]struct{})
	selfMapped := make(map[edgestream.Node]bool)
	for {
		e, rerr := r.Read()
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return check, rerr
		}
		check.Labels++
		if _, dup := keys[e.U]; dup {
			check.OK = false
		}
		keys[e.U] = struct{}{}
		check.Sizes[e.V]++
		if e.U == e.V {
			selfMapped[e.V] = true
		}
	}
	check.Components = len(check.Sizes)
	for rep := range check.Sizes {
		if !selfMapped[rep] {
			check.OK = false
		}
	}
	return check, nil
}
