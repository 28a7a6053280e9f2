// Command crochetlayout reads a crochet-pattern graph description (spec
// §6's grammar) from a file or stdin, runs the full layout pipeline, and
// writes the serialized positions to stdout.
//
// Grounded on the teacher's examples/ package-main demonstrations
// (single-purpose, flag-free, reading a fixed scenario) generalized
// into a real CLI per SPEC_FULL.md, since the reference corpus never
// ships one itself.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/svtassev/crochetlayout/config"
	"github.com/svtassev/crochetlayout/layout"
	"github.com/svtassev/crochetlayout/parse"
)

func main() {
	var (
		inputPath  = flag.String("input", "", "path to the input file (default: stdin)")
		seed       = flag.Int64("seed", -1, "override the PRNG seed (-1: use the parsed/default value)")
		iterations = flag.Int("iterations", -1, "override the stress solver's iteration count (-1: use the parsed/default value)")
		dim        = flag.Int("dim", -1, "override the embedding dimension, 2 or 3 (-1: use the parsed value)")
	)
	flag.Parse()

	in := os.Stdin
	if *inputPath != "" {
		f, err := os.Open(*inputPath)
		if err != nil {
			log.Fatalf("crochetlayout: %v", err)
		}
		defer f.Close()
		in = f
	}

	doc, err := parse.Parse(in)
	if err != nil {
		log.Fatalf("crochetlayout: %v", err)
	}

	cfg := doc.Config
	if *seed >= 0 {
		cfg.Seed = *seed
	}
	if *iterations > 0 {
		cfg.Iterations = *iterations
	}
	if *dim == 2 || *dim == 3 {
		cfg.Dim = *dim
	}

	g := parse.Build(doc)

	out, err := layout.Run(cfg, g)
	if err != nil {
		log.Fatalf("crochetlayout: %v", err)
	}

	fmt.Print(out)
}
