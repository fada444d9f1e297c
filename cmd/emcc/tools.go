package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/katalvlaran/emcc/edgefile"
	"github.com/katalvlaran/emcc/edgestream"
	"github.com/katalvlaran/emcc/extsort"
	"github.com/katalvlaran/emcc/gen"
)

// edgeFileSink adapts a binary writer to the generator push interface.
type edgeFileSink struct {
	w   *edgefile.Writer
	err error
}

func (s *edgeFileSink) Push(e edgestream.Edge) {
	if s.err != nil {
		return
	}
	s.err = s.w.WriteEdge(e)
}

// cmdGenerate emits one of the benchmark graph families.
func cmdGenerate(args []string) error {
	fs := newFlagSet("generate")
	kind := fs.String("type", "", "graph family: path, grid, cliques, cube, er")
	output := fs.String("output", "", "output binary edge file")
	n := fs.Uint64("n", 0, "node count (path, er)")
	width := fs.Uint64("width", 0, "grid/cube width")
	height := fs.Uint64("height", 0, "grid/cube height")
	layers := fs.Uint64("layers", 1, "cube layers")
	distance := fs.Uint64("distance", 1, "cube neighbor distance")
	cliqueSize := fs.Uint64("clique-size", 0, "nodes per clique")
	numCliques := fs.Uint64("cliques", 0, "number of cliques")
	ratio := fs.Float64("ratio", 0, "er edge/node ratio")
	seed := fs.Int64("seed", 1, "er random seed")
	fs.Parse(args)
	if *output == "" {
		return fmt.Errorf("invalid arguments: -output is required")
	}

	switch *kind {
	case "path", "er":
		if *n < 2 {
			return fmt.Errorf("invalid arguments: -n must be at least 2")
		}
		if *kind == "er" && *ratio <= 0 {
			return fmt.Errorf("invalid arguments: -ratio must be positive")
		}
	case "grid", "cube":
		if *width < 2 || *height < 2 {
			return fmt.Errorf("invalid arguments: -width and -height must be at least 2")
		}
		if *kind == "cube" && (*layers < 1 || *distance < 1) {
			return fmt.Errorf("invalid arguments: -layers and -distance must be at least 1")
		}
	case "cliques":
		if *cliqueSize < 2 || *numCliques < 1 {
			return fmt.Errorf("invalid arguments: -clique-size must be at least 2 and -cliques at least 1")
		}
	default:
		return fmt.Errorf("invalid arguments: unknown graph type %q", *kind)
	}

	w, err := edgefile.CreateWriter(*output)
	if err != nil {
		return err
	}
	sink := &edgeFileSink{w: w}

	switch *kind {
	case "path":
		gen.Path(edgestream.Node(*n), sink)
	case "grid":
		gen.Grid(edgestream.Node(*width), edgestream.Node(*height), sink)
	case "cliques":
		gen.Cliques(edgestream.Node(*cliqueSize), edgestream.Node(*numCliques), sink)
	case "cube":
		gen.Cube(edgestream.Node(*width), edgestream.Node(*height), edgestream.Node(*layers), edgestream.Node(*distance), sink)
	case "er":
		gen.Gilbert(edgestream.Node(*n), *ratio, rand.New(rand.NewSource(*seed)), sink)
	}
	if sink.err != nil {
		w.Close()
		return sink.err
	}
	if err := w.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %d edges\n", w.Count())
	return nil
}

// cmdConvert translates between the ASCII and binary edge formats.
func cmdConvert(args []string) error {
	fs := newFlagSet("convert")
	mode := fs.String("mode", "", "a2b (ASCII to binary) or b2a")
	input := fs.String("input", "", "input file")
	output := fs.String("output", "", "output file")
	skip := fs.Int("skip", 0, "a2b: leading lines to skip")
	offset := fs.Int64("offset", 0, "a2b: signed ID adjustment")
	fs.Parse(args)
	if *input == "" || *output == "" {
		return fmt.Errorf("invalid arguments: -input and -output are required")
	}

	in, err := os.Open(*input)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(*output)
	if err != nil {
		return err
	}

	var count int
	switch *mode {
	case "a2b":
		count, err = edgefile.ASCIIToBinary(in, out, *skip, *offset)
	case "b2a":
		count, err = edgefile.BinaryToASCII(in, out)
	default:
		out.Close()
		return fmt.Errorf("invalid arguments: unknown mode %q", *mode)
	}
	if err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "converted %d edges\n", count)
	return nil
}

// cmdCount scans a binary edge file for node and edge counts.
func cmdCount(args []string) error {
	fs := newFlagSet("count")
	input := fs.String("input", "", "input binary edge file")
	external := fs.Bool("external", false, "use fully-external sort-based counting")
	fs.Parse(args)
	if *input == "" {
		return fmt.Errorf("invalid arguments: -input is required")
	}

	res, err := edgefile.CountNodes(*input, *external, extsort.DefaultLimits())
	if err != nil {
		return err
	}
	fmt.Printf("number of nodes,%d\n", res.Nodes)
	fmt.Printf("number of edges,%d\n", res.Edges)
	fmt.Printf("max node id,%d\n", res.MaxID)
	return nil
}

// cmdCheck verifies a star file.
func cmdCheck(args []string) error {
	fs := newFlagSet("check")
	input := fs.String("input", "", "input star file")
	fs.Parse(args)
	if *input == "" {
		return fmt.Errorf("invalid arguments: -input is required")
	}

	check, err := edgefile.CheckStars(*input)
	if err != nil {
		return err
	}
	fmt.Printf("labels,%d\n", check.Labels)
	fmt.Printf("components,%d\n", check.Components)
	if !check.OK {
		return fmt.Errorf("star file is malformed")
	}
	return nil
}
