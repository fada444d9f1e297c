package cc

import (
	"errors"
	"math/rand"

	"github.com/katalvlaran/emcc/contract"
	"github.com/katalvlaran/emcc/edgestream"
	"github.com/katalvlaran/emcc/extsort"
	"github.com/katalvlaran/emcc/kruskal"
	"github.com/katalvlaran/emcc/stats"
)

// ErrNoMemoryBudget is returned when Options carries no memory budget.
var ErrNoMemoryBudget = errors.New("cc: memory budget must be positive")

// ErrNoNodeBound is returned when Options carries no node upper bound.
var ErrNoNodeBound = errors.New("cc: node upper bound must be positive")

// EdgeInput is what the manager consumes: a rewindable sorted edge
// stream that knows its size. EdgeStream and the edge sorters qualify.
type EdgeInput interface {
	edgestream.Rewindable[edgestream.Edge]
	Size() int
}

// Options configures a Manager run.
type Options struct {
	// MemoryBytes is the internal-memory budget M deciding semi-external
	// handleability.
	MemoryBytes uint64
	// NumNodes is the upper bound on the number of nodes in the input.
	NumNodes edgestream.Node
	// Policy holds the per-level decisions; see Variant.
	Policy Policy
	// Seed drives every coin of the run; equal seeds give equal runs.
	Seed int64
	// Limits budgets the containers; zero values take DefaultLimits.
	Limits extsort.Limits
	// Stats receives the per-stage CSV lines; nil records nothing.
	Stats *stats.Recorder
}

type labelSorter = extsort.Sorter[edgestream.Label]

// Manager runs the recursive engine over its input at construction and
// afterwards reads as a stream of (node, representative) labels, sorted
// by node, duplicates suppressed.
type Manager struct {
	limits   extsort.Limits
	memory   uint64
	policy   Policy
	strategy contract.Strategy
	rng      *rand.Rand
	rec      *stats.Recorder

	subEdges []*edgestream.EdgeStream
	ccsLeft  []*labelSorter
	ccsRight []*labelSorter

	numNodes      edgestream.Node
	totalNodes    edgestream.Node
	numComponents edgestream.Node

	output *edgestream.UniqueFilter[edgestream.Label]
	last   edgestream.Label
}

// NewManager solves the connected components of edges with the given
// contraction strategy. The input must be consumed (readable), sorted
// lexicographically, self-loop-free and deduplicated. The call returns
// once the full component map is computed.
func NewManager(edges EdgeInput, strategy contract.Strategy, opts Options) (*Manager, error) {
	if opts.MemoryBytes == 0 {
		return nil, ErrNoMemoryBudget
	}
	if opts.NumNodes == 0 {
		return nil, ErrNoNodeBound
	}
	if opts.Limits == (extsort.Limits{}) {
		opts.Limits = extsort.DefaultLimits()
	}
	if opts.Policy.ShouldContract == nil {
		p, err := Variant(0)
		if err != nil {
			return nil, err
		}
		opts.Policy = p
	}

	m := &Manager{
		limits:   opts.Limits,
		memory:   opts.MemoryBytes,
		policy:   opts.Policy,
		strategy: strategy,
		rng:      rand.New(rand.NewSource(opts.Seed)),
		rec:      opts.Stats,
		numNodes: opts.NumNodes,
	}
	m.ensureDepth(1)

	n, ccs := m.process(edges, opts.NumNodes, 0, true)
	m.totalNodes = n
	m.numComponents = ccs

	m.ccsLeft[0].Rewind()
	m.output = edgestream.NewUnique[edgestream.Label](m.ccsLeft[0])
	m.last = edgestream.Label{Node: edgestream.MaxNode, Comp: edgestream.MaxNode}
	return m, nil
}

// NumComponents reports the number of connected components found.
func (m *Manager) NumComponents() edgestream.Node { return m.numComponents }

// Empty reports whether the output stream is exhausted.
func (m *Manager) Empty() bool { return m.output.Empty() }

// Peek returns the current output label.
func (m *Manager) Peek() edgestream.Label { return m.output.Peek() }

// Next advances the output, suppressing repeated nodes.
func (m *Manager) Next() {
	m.last = m.output.Peek()
	for {
		m.output.Next()
		if m.output.Empty() || m.output.Peek().Node != m.last.Node {
			return
		}
	}
}

// Rewind restarts the output stream.
func (m *Manager) Rewind() {
	m.last = edgestream.Label{Node: edgestream.MaxNode, Comp: edgestream.MaxNode}
	m.output.Rewind()
}

// Close releases all per-level scratch containers.
func (m *Manager) Close() {
	for _, s := range m.subEdges {
		s.Close()
	}
	for _, s := range m.ccsLeft {
		s.Reset()
	}
	for _, s := range m.ccsRight {
		s.Reset()
	}
}

// semiExtAllowance is the node count M the policy reasons in: how many
// nodes the base case fits into the byte budget.
func (m *Manager) semiExtAllowance() uint64 {
	return m.memory / (8 * kruskal.MemoryOverheadFactor)
}

func (m *Manager) semiExtNodes(n edgestream.Node) bool {
	return uint64(n)*8*kruskal.MemoryOverheadFactor <= m.memory
}

func (m *Manager) semiExt(n edgestream.Node, edges int) bool {
	return m.semiExtNodes(n) || 2*8*uint64(edges) <= m.memory
}

// ensureDepth grows the per-level containers to cover level inclusive.
func (m *Manager) ensureDepth(level int) {
	for len(m.subEdges) <= level+1 {
		m.subEdges = append(m.subEdges, edgestream.NewEdgeStream())
	}
	for len(m.ccsLeft) <= level {
		m.ccsLeft = append(m.ccsLeft, extsort.NewSorter[edgestream.Label](edgestream.LabelByNode{}, edgestream.LabelCodec{}, m.limits))
		m.ccsRight = append(m.ccsRight, extsort.NewSorter[edgestream.Label](edgestream.LabelByNode{}, edgestream.LabelCodec{}, m.limits))
	}
}

func (m *Manager) componentMap(left bool, level int) *labelSorter {
	if left {
		return m.ccsLeft[level]
	}
	return m.ccsRight[level]
}

func (m *Manager) clearLower(level int) {
	m.ensureDepth(level + 1)
	m.ccsLeft[level+1].Reset()
	m.ccsRight[level+1].Reset()
}

func (m *Manager) resetEdges(level int) {
	m.subEdges[level].Clear()
}

// process solves one subproblem, writing its component map into the
// level's left or right sorter. Returns the node count and component
// count actually seen.
func (m *Manager) process(in EdgeInput, nUpper edgestream.Node, level int, left bool) (edgestream.Node, edgestream.Node) {
	m.ensureDepth(level + 1)
	if m.semiExt(nUpper, in.Size()) {
		return m.semiExternal(m.componentMap(left, level), in)
	}
	return m.fullyExternal(in, nUpper, level, left)
}

// semiExternal is the base case: one Kruskal scan over the streams.
func (m *Manager) semiExternal(ccs *labelSorter, ins ...EdgeInput) (edgestream.Node, edgestream.Node) {
	size := 0
	streams := make([]edgestream.Stream[edgestream.Edge], 0, len(ins))
	for _, in := range ins {
		size += in.Size()
		streams = append(streams, edgestream.NewUnique[edgestream.Edge](in))
	}
	done := m.rec.Stage("basecase", size)

	base := kruskal.NewStream(0)
	base.Process(ccs, streams...)
	ccs.SortReuse()

	done(ccs.Size())
	return base.NumNodes(), base.NumCCs()
}

func (m *Manager) fullyExternal(in EdgeInput, nUpper edgestream.Node, level int, left bool) (edgestream.Node, edgestream.Node) {
	if in.Empty() {
		m.clearLower(level)
		return 0, 0
	}
	if nUpper == 0 {
		nUpper = 1
	}
	nUpper2 := minNode(nUpper, edgestream.Node(in.Size()*2))

	uq := edgestream.NewUnique[edgestream.Edge](in)
	allowance := m.semiExtAllowance()

	if m.policy.ShouldContract(uint64(nUpper2), uint64(in.Size()), level, allowance) {
		return m.contractedPath(in, uq, nUpper2, level, left, allowance)
	}

	k := m.policy.SampleBits(uint64(nUpper), uint64(in.Size()), level, allowance)
	nSam, nLeftSam, nRightSam, nCommonSam := m.sampleEdges(uq, level, false, k)
	clearInput(in)

	// after-sampling semi-external: the sampled counters already show
	// the whole thing fits the base case
	if m.semiExtNodes(nSam) {
		ccs := m.componentMap(left, level)
		n, numCCs := m.semiExternal(ccs, m.subEdges[level+1], m.subEdges[level])
		m.resetEdges(level)
		m.resetEdges(level + 1)
		m.clearLower(level)
		return n, numCCs
	}

	nLeft, ccsLeft := m.processLeft(level, minNode(nUpper, nLeftSam))

	nRightBound := minNode(
		minNode(nRightSam, nRightSam-nCommonSam+ccsLeft),
		minNode(minNode(nSam-nLeft+ccsLeft, nUpper), nUpper-nLeft+ccsLeft),
	)

	leftByComp := extsort.NewSorter[edgestream.Label](edgestream.LabelByComp{}, edgestream.LabelCodec{}, m.limits)
	_, ccsRight := m.processRight(level, nRightBound, leftByComp)

	m.mergeLeftRight(level, left, leftByComp)
	ccs := m.componentMap(left, level)

	m.clearLower(level)
	return edgestream.Node(ccs.Size()), ccsLeft + ccsRight
}

// contractedPath is the fully external flow with a leading contraction.
func (m *Manager) contractedPath(in EdgeInput, uq *edgestream.UniqueFilter[edgestream.Edge], nUpper2 edgestream.Node, level int, left bool, allowance uint64) (edgestream.Node, edgestream.Node) {
	contractionMap := extsort.NewSorter[edgestream.Label](edgestream.LabelByComp{}, edgestream.LabelCodec{}, m.limits)
	goal := m.policy.ContractCount(uint64(nUpper2), uint64(in.Size()), level, allowance)

	// pipelined base case: when the post-goal node bound already fits
	// semi-externally, pipe the contraction leftover straight into a
	// pipelined Kruskal and skip the recursion entirely
	if m.semiExtNodes(nUpper2-edgestream.Node(goal)) && m.strategy.SupportsMapOnlyReturn() {
		done := m.rec.Stage("contraction", in.Size())
		base := kruskal.NewPipelined(0)
		m.strategy.SemiExternal(uq, contractionMap, base, int(goal))
		contractionMap.SortReuse()
		mapSize := edgestream.Node(contractionMap.Size())
		done(contractionMap.Size())

		ccsContracted := extsort.NewSorter[edgestream.Label](edgestream.LabelByNode{}, edgestream.LabelCodec{}, m.limits)
		doneBase := m.rec.Stage("basecase", 0)
		base.Process(ccsContracted)
		ccsContracted.SortReuse()
		doneBase(ccsContracted.Size())

		m.mergeCCsOverCCs(contractionMap, ccsContracted, level, left)
		m.clearLower(level)
		return base.NumNodes() + mapSize, base.NumCCs()
	}

	contractedEdges := extsort.NewSorter[edgestream.Edge](edgestream.Lex{}, edgestream.EdgeCodec{}, m.limits)
	done := m.rec.Stage("contraction", in.Size())
	m.strategy.FullyExternal(uq, contractedEdges, contractionMap, int(goal))
	clearInput(in)
	contractedEdges.SortReuse()
	contractionMap.SortReuse()
	done(contractedEdges.Size())

	nContracted := minNode(nUpper2-edgestream.Node(goal), edgestream.Node(2*contractedEdges.Size()))

	// immediate empty: the contraction consumed every edge, so the
	// contraction map is the whole answer
	if contractedEdges.Size() == 0 {
		doneMerge := m.rec.Stage("merging", contractionMap.Size())
		ccs := m.componentMap(left, level)
		edgestream.Flush[edgestream.Label](contractionMap, ccs)
		contractionMap.Reset()
		ccs.SortReuse()
		doneMerge(ccs.Size())

		m.clearLower(level)
		return edgestream.Node(ccs.Size()), edgestream.Node(ccs.Size())
	}

	// immediate semi-external: the contracted graph fits the base case
	if m.semiExt(nContracted, contractedEdges.Size()) {
		ccsContracted := extsort.NewSorter[edgestream.Label](edgestream.LabelByNode{}, edgestream.LabelCodec{}, m.limits)
		n, numCCs := m.semiExternal(ccsContracted, contractedEdges)
		m.mergeCCsOverCCs(contractionMap, ccsContracted, level, left)
		m.clearLower(level)
		return n, numCCs
	}

	cuq := edgestream.NewUnique[edgestream.Edge](contractedEdges)
	k := m.policy.SampleBits(uint64(nContracted), uint64(contractedEdges.Size()), level, allowance)
	nSam, nLeftSam, nRightSam, nCommonSam := m.sampleEdges(cuq, level, true, k)

	nC := minNode(nSam, nContracted)
	nLeftBound := minNode(nC, nLeftSam)
	nRightBound := minNode(nC, nRightSam)
	contractedEdges.Reset()

	// after-sampling semi-external, under a contraction map
	if m.semiExtNodes(nSam) {
		ccsContracted := extsort.NewSorter[edgestream.Label](edgestream.LabelByNode{}, edgestream.LabelCodec{}, m.limits)
		n, numCCs := m.semiExternal(ccsContracted, m.subEdges[level+1], m.subEdges[level])
		m.resetEdges(level)
		m.resetEdges(level + 1)
		m.mergeCCsOverCCs(contractionMap, ccsContracted, level, left)
		m.clearLower(level)
		return n, numCCs
	}

	nLeft, ccsLeft := m.processLeft(level, nLeftBound)

	nRightBound = minNode(
		minNode(nRightBound, nRightBound-nCommonSam+ccsLeft),
		nC-nLeft+ccsLeft,
	)

	leftByComp := extsort.NewSorter[edgestream.Label](edgestream.LabelByComp{}, edgestream.LabelCodec{}, m.limits)
	_, ccsRight := m.processRight(level, nRightBound, leftByComp)

	// merge left with right, then re-integrate the contraction stars
	doneMerge := m.rec.Stage("merging", leftByComp.Size()+m.ccsRight[level+1].Size())
	withoutStars := extsort.NewSorter[edgestream.Label](edgestream.LabelByNode{}, edgestream.LabelCodec{}, m.limits)
	leftByComp.SortReuse()
	contract.MergeComponents(leftByComp, m.ccsRight[level+1], withoutStars)
	withoutStars.SortReuse()
	leftByComp.Reset()

	ccs := m.componentMap(left, level)
	contract.MergeComponents(contractionMap, withoutStars, ccs)
	contractionMap.Reset()
	withoutStars.Reset()
	ccs.SortReuse()
	doneMerge(ccs.Size())

	m.clearLower(level)
	return edgestream.Node(ccs.Size()), ccsLeft + ccsRight
}

// processLeft recursively solves the sampled branch.
func (m *Manager) processLeft(level int, bound edgestream.Node) (edgestream.Node, edgestream.Node) {
	leftEdges := m.subEdges[level+1]
	n, numCCs := m.process(leftEdges, bound, level+1, true)
	m.resetEdges(level + 1)
	return n, numCCs
}

// processRight relabels the unsampled branch through the left result
// and solves it, piping into the base case when the bound fits.
func (m *Manager) processRight(level int, bound edgestream.Node, leftByComp *labelSorter) (edgestream.Node, edgestream.Node) {
	rightEdges := m.subEdges[level]

	if m.semiExt(bound, rightEdges.Size()) {
		// combined relabelling and base case of the right subcall: the
		// second relabel feeds the pipelined Kruskal directly
		done := m.rec.Stage("relabelling", rightEdges.Size())
		ccsL := m.ccsLeft[level+1]
		ccsR := m.ccsRight[level+1]

		srcUpdated := extsort.NewSorter[edgestream.Edge](edgestream.ReverseLex{}, edgestream.EdgeCodec{}, m.limits)
		contract.RelabelSource(ccsL, rightEdges, srcUpdated, leftByComp, true)
		m.resetEdges(level)
		srcUpdated.SortReuse()

		ccsL.Rewind()
		base := kruskal.NewPipelined(0)
		srcUnique := edgestream.NewUnique[edgestream.Edge](srcUpdated)
		contract.RelabelTarget(ccsL, srcUnique, base, true)
		srcUpdated.Reset()
		done(int(base.NumNodes()))

		doneBase := m.rec.Stage("basecase", 0)
		base.Process(ccsR)
		ccsR.SortReuse()
		doneBase(ccsR.Size())
		return base.NumNodes(), base.NumCCs()
	}

	relabeled := extsort.NewSorter[edgestream.Edge](edgestream.Lex{}, edgestream.EdgeCodec{}, m.limits)
	nRelabel := m.relabelRightEdges(level, leftByComp, relabeled)
	return m.process(relabeled, minNode(nRelabel, bound), level+1, false)
}

// relabelRightEdges rewrites the right branch through the left result:
// sources first, a by-target sort, then targets, dropping self-loops
// and normalizing. Returns the node bound counted from source and
// target changes during the two passes.
func (m *Manager) relabelRightEdges(level int, leftByComp *labelSorter, out *extsort.Sorter[edgestream.Edge]) edgestream.Node {
	rightEdges := m.subEdges[level]
	ccsL := m.ccsLeft[level+1]
	done := m.rec.Stage("relabelling", rightEdges.Size())

	m.resetEdges(level + 1)

	var bound edgestream.Node
	lastSrc := edgestream.MaxNode

	srcUpdated := extsort.NewSorter[edgestream.Edge](edgestream.ReverseLex{}, edgestream.EdgeCodec{}, m.limits)
	mu := edgestream.NewUnique[edgestream.Label](ccsL)
	for !mu.Empty() {
		entry := mu.Peek()
		leftByComp.Push(entry)
		for !rightEdges.Empty() {
			e := rightEdges.Peek()
			if e.U > entry.Node {
				break
			}
			if e.U != lastSrc {
				bound++
			}
			lastSrc = e.U
			if e.U < entry.Node {
				srcUpdated.Push(e)
			} else if entry.Comp != e.V {
				srcUpdated.Push(edgestream.Edge{U: entry.Comp, V: e.V})
			}
			rightEdges.Next()
		}
		mu.Next()
	}
	for !rightEdges.Empty() {
		e := rightEdges.Peek()
		if e.U != lastSrc {
			bound++
		}
		lastSrc = e.U
		srcUpdated.Push(e)
		rightEdges.Next()
	}
	m.resetEdges(level)
	srcUpdated.SortReuse()

	lastTarget := edgestream.MaxNode
	srcUnique := edgestream.NewUnique[edgestream.Edge](srcUpdated)
	ccsL.Rewind()
	mu = edgestream.NewUnique[edgestream.Label](ccsL)
	for !mu.Empty() {
		entry := mu.Peek()
		for !srcUnique.Empty() {
			e := srcUnique.Peek()
			if e.V > entry.Node {
				break
			}
			if e.V != lastTarget {
				bound++
			}
			lastTarget = e.V
			if e.V < entry.Node {
				out.Push(e.Normalized())
			} else if entry.Comp != e.U {
				out.Push(edgestream.Edge{U: e.U, V: entry.Comp}.Normalized())
			}
			srcUnique.Next()
		}
		mu.Next()
	}
	for !srcUnique.Empty() {
		e := srcUnique.Peek()
		if e.V != lastTarget {
			bound++
		}
		lastTarget = e.V
		out.Push(e.Normalized())
		srcUnique.Next()
	}

	srcUpdated.Reset()
	out.SortReuse()
	done(out.Size())
	return bound
}

// mergeLeftRight merges the two child maps into this level's map.
func (m *Manager) mergeLeftRight(level int, left bool, leftByComp *labelSorter) {
	done := m.rec.Stage("merging", leftByComp.Size()+m.ccsRight[level+1].Size())
	ccs := m.componentMap(left, level)
	leftByComp.SortReuse()
	contract.MergeComponents(leftByComp, m.ccsRight[level+1], ccs)
	leftByComp.Reset()
	m.ccsLeft[level+1].Reset()
	m.ccsRight[level+1].Reset()
	ccs.SortReuse()
	done(ccs.Size())
}

// mergeCCsOverCCs re-maps the contraction stars through the component
// map of the contracted graph.
func (m *Manager) mergeCCsOverCCs(contractionMap *labelSorter, ccsContracted *labelSorter, level int, left bool) {
	done := m.rec.Stage("merging", contractionMap.Size()+ccsContracted.Size())
	ccs := m.componentMap(left, level)
	contract.MergeComponents(contractionMap, ccsContracted, ccs)
	contractionMap.Reset()
	ccsContracted.Reset()
	ccs.SortReuse()
	done(ccs.Size())
}

// sampleEdges splits the stream by a coin of probability 2^-bits into
// the next level's (sampled, left) and this level's (unsampled, right)
// sequences, tallying the combinatorial node bounds: every source or
// target change bumps the corresponding counter, and a source split
// across both sides bumps the shared counter.
func (m *Manager) sampleEdges(in edgestream.Stream[edgestream.Edge], level int, inPlace bool, bits int) (nAll, nLeft, nRight, nCommon edgestream.Node) {
	done := m.rec.Stage("sampling", 0)
	coin := edgestream.NewPowerOfTwoCoin(bits)

	var nextLevel, thisLevel *edgestream.EdgeStream
	var replaced *edgestream.EdgeStream
	if inPlace {
		m.resetEdges(level)
		nextLevel = m.subEdges[level+1]
		thisLevel = m.subEdges[level]
	} else {
		nextLevel = m.subEdges[level+1]
		thisLevel = edgestream.NewEdgeStream()
		replaced = m.subEdges[level]
	}

	edgeAll := edgestream.MaxEdge
	edgeLeft := edgestream.MaxEdge
	edgeRight := edgestream.MaxEdge
	srcAll, srcLeft, srcRight := true, false, false

	count := func(counter *edgestream.Node, curr *edgestream.Edge, next edgestream.Edge) {
		if curr.U != next.U {
			*counter++
		}
		if curr.V != next.V {
			*counter++
		}
		*curr = next
	}

	for !in.Empty() {
		e := in.Peek()
		srcAll = srcAll || e.U != edgeAll.U
		srcLeft = srcLeft && e.U == edgeAll.U
		srcRight = srcRight && e.U == edgeAll.U
		count(&nAll, &edgeAll, e)
		if coin.Toss(m.rng) {
			srcLeft = true
			nextLevel.Push(e)
			count(&nLeft, &edgeLeft, e)
		} else {
			srcRight = true
			thisLevel.Push(e)
			count(&nRight, &edgeRight, e)
		}
		if srcLeft && srcRight && srcAll {
			nCommon++
		}
		srcAll = !(srcLeft && srcRight)
		in.Next()
	}

	if replaced != nil {
		m.subEdges[level] = thisLevel
		replaced.Clear()
	}
	m.subEdges[level].Rewind()
	m.subEdges[level+1].Rewind()
	done(m.subEdges[level].Size() + m.subEdges[level+1].Size())
	return nAll, nLeft, nRight, nCommon
}

func minNode(a, b edgestream.Node) edgestream.Node {
	if a < b {
		return a
	}
	return b
}

// clearInput releases a fully consumed input's storage when it can.
func clearInput(in EdgeInput) {
	switch c := in.(type) {
	case interface{ Clear() }:
		c.Clear()
	case interface{ Reset() }:
		c.Reset()
	}
}
