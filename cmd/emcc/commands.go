package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/katalvlaran/emcc/bundles"
	"github.com/katalvlaran/emcc/cc"
	"github.com/katalvlaran/emcc/contract"
	"github.com/katalvlaran/emcc/edgefile"
	"github.com/katalvlaran/emcc/edgestream"
	"github.com/katalvlaran/emcc/extsort"
	"github.com/katalvlaran/emcc/kruskal"
	"github.com/katalvlaran/emcc/stats"
)

// cmdRun drives the recursive engine over a sorted binary edge file.
func cmdRun(args []string) error {
	fs := newFlagSet("run")
	configPath := fs.String("config", "", "YAML config file")
	input := fs.String("input", "", "input binary edge file (sorted, deduplicated)")
	output := fs.String("output", "", "output star file (omit to discard)")
	memory := fs.Uint64("memory", 0, "internal memory budget in bytes")
	numNodes := fs.Uint64("nodes", 0, "node count (0 = count with a streaming pass)")
	variant := fs.Int("variant", 0, "policy variant 0..9")
	strategy := fs.String("strategy", "sibeyn", "contraction strategy: sibeyn or star")
	seed := fs.Int64("seed", 1, "random seed")
	fs.Parse(args)

	cfg := engineConfig{Variant: -1}
	if *configPath != "" {
		if err := loadConfig(*configPath, &cfg); err != nil {
			return err
		}
	}
	applyFlag(fs, "input", &cfg.Input, *input)
	applyFlag(fs, "output", &cfg.Output, *output)
	applyFlagU64(fs, "memory", &cfg.MemoryBytes, *memory)
	applyFlagU64(fs, "nodes", &cfg.NumNodes, *numNodes)
	applyFlagInt(fs, "variant", &cfg.Variant, *variant)
	applyFlag(fs, "strategy", &cfg.Strategy, *strategy)
	applyFlagI64(fs, "seed", &cfg.Seed, *seed)
	if cfg.Variant < 0 {
		cfg.Variant = 0
	}
	if cfg.Strategy == "" {
		cfg.Strategy = "sibeyn"
	}
	if err := checkConfig(&cfg); err != nil {
		return err
	}

	limits := extsort.DefaultLimits()
	rec := stats.NewRecorder(os.Stdout)

	in := edgestream.NewEdgeStream()
	doneRead := rec.Stage("read_graph", 0)
	numEdges, dropped, err := edgefile.ReadIntoStream(cfg.Input, in)
	if err != nil {
		return err
	}
	in.Consume()
	doneRead(numEdges)
	if dropped > 0 {
		fmt.Fprintf(os.Stderr, "dropped %d parallel edges\n", dropped)
	}

	if cfg.NumNodes == 0 {
		doneCount := rec.Stage("count_nodes", numEdges)
		res, cerr := edgefile.CountNodes(cfg.Input, true, limits)
		if cerr != nil {
			return cerr
		}
		cfg.NumNodes = res.Nodes
		doneCount(int(res.Nodes))
	}

	policy, err := cc.Variant(cfg.Variant)
	if err != nil {
		return err
	}
	var strat contract.Strategy
	switch cfg.Strategy {
	case "star":
		strat = contract.NewStar(limits, rand.New(rand.NewSource(cfg.Seed+1)))
	default:
		strat = contract.NewSibeyn(limits)
	}

	mgr, err := cc.NewManager(in, strat, cc.Options{
		MemoryBytes: cfg.MemoryBytes,
		NumNodes:    edgestream.Node(cfg.NumNodes),
		Policy:      policy,
		Seed:        cfg.Seed,
		Limits:      limits,
		Stats:       rec,
	})
	if err != nil {
		return err
	}
	defer mgr.Close()

	doneOut := rec.Stage("write_output", 0)
	n, err := drainStars(cfg.Output, mgr)
	if err != nil {
		return err
	}
	doneOut(n)
	fmt.Fprintf(os.Stderr, "components: %d, labelled nodes: %d\n", mgr.NumComponents(), n)
	return nil
}

// cmdBoruvka runs Borůvka phases until no contracted edges remain.
func cmdBoruvka(args []string) error {
	fs := newFlagSet("boruvka")
	input := fs.String("input", "", "input binary edge file (sorted, deduplicated)")
	output := fs.String("output", "", "output star file (omit to discard)")
	fs.Parse(args)
	if *input == "" {
		return fmt.Errorf("invalid arguments: -input is required")
	}

	limits := extsort.DefaultLimits()
	rec := stats.NewRecorder(os.Stdout)
	strat := contract.NewBoruvka(limits)

	edges := extsort.NewSorter[edgestream.Edge](edgestream.Lex{}, edgestream.EdgeCodec{}, limits)
	in := edgestream.NewEdgeStream()
	if _, _, err := edgefile.ReadIntoStream(*input, in); err != nil {
		return err
	}
	in.Consume()
	edgestream.Flush[edgestream.Edge](in, edges)
	edges.Sort()

	// cumulative is the composed star map so far, sorted by component
	var cumulative *extsort.Sorter[edgestream.Label]
	phase := 0
	for edges.Size() > 0 {
		phase++
		done := rec.Stage(fmt.Sprintf("boruvka_phase_%d", phase), edges.Size())
		next := extsort.NewSorter[edgestream.Edge](edgestream.Lex{}, edgestream.EdgeCodec{}, limits)
		phaseMap := extsort.NewSorter[edgestream.Label](edgestream.LabelByNode{}, edgestream.LabelCodec{}, limits)

		uq := edgestream.NewUnique[edgestream.Edge](edges)
		strat.FullyExternal(uq, next, phaseMap, 0)
		edges.Reset()
		next.Sort()
		phaseMap.Sort()
		done(next.Size())

		if cumulative == nil {
			cumulative = extsort.NewSorter[edgestream.Label](edgestream.LabelByComp{}, edgestream.LabelCodec{}, limits)
			edgestream.Flush[edgestream.Label](phaseMap, cumulative)
			phaseMap.Reset()
		} else {
			merged := extsort.NewSorter[edgestream.Label](edgestream.LabelByComp{}, edgestream.LabelCodec{}, limits)
			cumulative.Rewind()
			contract.MergeComponents(cumulative, phaseMap, merged)
			cumulative.Reset()
			phaseMap.Reset()
			cumulative = merged
		}
		cumulative.Sort()
		edges = next
	}
	edges.Reset()

	if cumulative == nil {
		return fmt.Errorf("input graph is empty")
	}

	// emit sorted by node
	byNode := extsort.NewSorter[edgestream.Label](edgestream.LabelByNode{}, edgestream.LabelCodec{}, limits)
	cumulative.Rewind()
	edgestream.Flush[edgestream.Label](cumulative, byNode)
	cumulative.Reset()
	byNode.Sort()
	unique := edgestream.NewUnique[edgestream.Label](byNode)
	n, err := drainStars(*output, unique)
	byNode.Reset()
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "phases: %d, labelled nodes: %d\n", phase, n)
	return nil
}

// cmdKruskal runs the semi-external base case directly.
func cmdKruskal(args []string) error {
	fs := newFlagSet("kruskal")
	input := fs.String("input", "", "input binary edge file")
	output := fs.String("output", "", "output star file (omit to discard)")
	fs.Parse(args)
	if *input == "" {
		return fmt.Errorf("invalid arguments: -input is required")
	}

	limits := extsort.DefaultLimits()
	rec := stats.NewRecorder(os.Stdout)

	r, err := edgefile.OpenReader(*input)
	if err != nil {
		return err
	}
	defer r.Close()

	base := kruskal.NewPipelined(0)
	edges := 0
	done := rec.Stage("basecase", 0)
	for {
		e, rerr := r.Read()
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return rerr
		}
		base.Push(e)
		edges++
	}
	ccs := extsort.NewSorter[edgestream.Label](edgestream.LabelByNode{}, edgestream.LabelCodec{}, limits)
	base.Process(ccs)
	ccs.Sort()
	done(ccs.Size())

	n, err := drainStars(*output, ccs)
	ccs.Reset()
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "edges: %d, components: %d, labelled nodes: %d\n", edges, base.NumCCs(), n)
	return nil
}

// cmdBundles runs the bundled Sibeyn variant.
func cmdBundles(args []string) error {
	fs := newFlagSet("bundles")
	input := fs.String("input", "", "input binary edge file (normalized)")
	output := fs.String("output", "", "output star file (omit to discard)")
	memory := fs.Uint64("memory", 0, "internal memory budget in bytes")
	maxID := fs.Uint64("maxid", 0, "maximum node ID (0 = scan first)")
	minimize := fs.Bool("minimize", false, "minimize interbundle signals")
	fs.Parse(args)
	if *input == "" || *memory == 0 {
		return fmt.Errorf("invalid arguments: -input and -memory are required")
	}

	limits := extsort.DefaultLimits()
	rec := stats.NewRecorder(os.Stdout)

	if *maxID == 0 {
		res, err := edgefile.CountNodes(*input, false, limits)
		if err != nil {
			return err
		}
		*maxID = uint64(res.MaxID)
	}

	// the bundle count must let one BoundedInterval table fit all of M
	// while the per-bundle block buffers stay within M/2
	minBundles := (*maxID * kruskal.BoundedIntervalMemoryOverheadFactor * 8) / *memory
	if minBundles == 0 {
		minBundles = 1
	}
	maxBundles := (*memory / 2) / (2 * bundles.BundleBlockBytes)
	if maxBundles < minBundles {
		return fmt.Errorf("not enough memory: need %d bundles, buffers fit %d", minBundles, maxBundles)
	}
	if maxBundles > *maxID {
		maxBundles = *maxID
	}

	in := edgestream.NewEdgeStream()
	if _, _, err := edgefile.ReadIntoStream(*input, in); err != nil {
		return err
	}
	in.Consume()

	done := rec.Stage("sibeyn_bundles", in.Size())
	s := bundles.New(in, edgestream.Node(*maxID), bundles.Options{
		NumBundles:          int(maxBundles),
		MinimizeInterbundle: *minimize,
		Limits:              limits,
	})
	defer s.Close()

	n, err := drainStars(*output, s)
	done(n)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "labelled nodes: %d\n", n)
	return nil
}

// flagWasSet reports whether the flag was given explicitly.
func flagWasSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// The apply helpers let explicit flags override config-file values
// while flag defaults only fill gaps.

func applyFlag(fs *flag.FlagSet, name string, dst *string, v string) {
	if flagWasSet(fs, name) || *dst == "" {
		*dst = v
	}
}

func applyFlagU64(fs *flag.FlagSet, name string, dst *uint64, v uint64) {
	if flagWasSet(fs, name) || *dst == 0 {
		*dst = v
	}
}

func applyFlagI64(fs *flag.FlagSet, name string, dst *int64, v int64) {
	if flagWasSet(fs, name) || *dst == 0 {
		*dst = v
	}
}

func applyFlagInt(fs *flag.FlagSet, name string, dst *int, v int) {
	if flagWasSet(fs, name) || *dst < 0 {
		*dst = v
	}
}
