package contract

import (
	"github.com/katalvlaran/emcc/edgestream"
	"github.com/katalvlaran/emcc/kruskal"
)

// Strategy is the capability set shared by the contraction algorithms.
// The subproblem manager picks one at construction and never switches.
type Strategy interface {
	// FullyExternal contracts toward goal, pushing the surviving edges
	// into contracted and the contraction star mapping into stars. The
	// input must be lexicographically sorted; strategies that re-read it
	// use its Rewind.
	FullyExternal(in edgestream.Rewindable[edgestream.Edge], contracted edgestream.Pusher[edgestream.Edge], stars edgestream.Pusher[edgestream.Label], goal int)

	// SemiExternal contracts toward goal, pushing the star mapping into
	// stars and piping every surviving edge straight into base. Only
	// valid when SupportsMapOnlyReturn reports true; otherwise it
	// panics.
	SemiExternal(in edgestream.Rewindable[edgestream.Edge], stars edgestream.Pusher[edgestream.Label], base *kruskal.Pipelined, goal int)

	// SupportsMapOnlyReturn reports whether SemiExternal is available.
	SupportsMapOnlyReturn() bool

	// ExpectedContractionRatio is the upper bound on the fraction of
	// nodes surviving one application.
	ExpectedContractionRatio() float64
}
