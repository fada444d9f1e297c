// Command emcc runs the external-memory connected-components engine and
// its companion tools on binary edge files.
//
// Usage:
//
//	emcc run      -input G.bin -memory 536870912 [-nodes N] [-variant 0..9] [-strategy sibeyn|star] [-seed S] [-output CC.bin]
//	emcc boruvka  -input G.bin [-output CC.bin]
//	emcc kruskal  -input G.bin [-output CC.bin]
//	emcc bundles  -input G.bin -memory 536870912 [-maxid N] [-minimize] [-output CC.bin]
//	emcc generate -type path|grid|cliques|cube|er [params...] -output G.bin
//	emcc convert  -mode a2b|b2a -input in -output out [-skip N] [-offset D]
//	emcc count    -input G.bin [-external]
//	emcc check    -input CC.bin
//
// -memory is a byte count.
// Flags may also come from a YAML file via -config; explicit flags win.
// The exit code is non-zero iff arguments fail to parse or validate.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/katalvlaran/emcc/edgestream"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "run":
		err = cmdRun(os.Args[2:])
	case "boruvka":
		err = cmdBoruvka(os.Args[2:])
	case "kruskal":
		err = cmdKruskal(os.Args[2:])
	case "bundles":
		err = cmdBundles(os.Args[2:])
	case "generate":
		err = cmdGenerate(os.Args[2:])
	case "convert":
		err = cmdConvert(os.Args[2:])
	case "count":
		err = cmdCount(os.Args[2:])
	case "check":
		err = cmdCheck(os.Args[2:])
	case "-h", "-help", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "emcc: unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "emcc: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: emcc <run|boruvka|kruskal|bundles|generate|convert|count|check> [flags]")
	fmt.Fprintln(os.Stderr, "run 'emcc <command> -h' for command flags")
}

// newFlagSet returns a flag set that exits(2) on parse errors, keeping
// the argument-error contract: bad flags never reach the engine.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("emcc "+name, flag.ExitOnError)
	return fs
}

// drainStars writes a label stream to a star file, or counts it when no
// path is given.
func drainStars(out string, labels edgestream.Stream[edgestream.Label]) (int, error) {
	if out == "" {
		n := 0
		for !labels.Empty() {
			n++
			labels.Next()
		}
		return n, nil
	}
	w, err := createStarWriter(out)
	if err != nil {
		return 0, err
	}
	n := 0
	for !labels.Empty() {
		if err := w.WriteLabel(labels.Peek()); err != nil {
			w.Close()
			return n, err
		}
		n++
		labels.Next()
	}
	return n, w.Close()
}
