// Package parse implements the input-format tokenizer spec.md §6 treats
// as an external collaborator's concern: a line-oriented grammar of a
// dimension line, quoted node/edge/Jacobian records, and free-form
// scalar configuration lines. The tokenizer itself never builds a
// graph.Graph; Build does that separately so a caller can inspect or
// mutate the parsed document first.
//
// Grounded on the teacher's builder package's plain field-by-field
// parsing idiom — no parser-combinator or regex-heavy third-party
// library appears anywhere in the reference corpus, so this package
// uses bufio.Scanner plus stdlib regexp (justified in DESIGN.md) — and
// on original_source/crochet-editor/old/graph.cpp's readDotFile for the
// exact grammar and left-context disambiguation rules.
package parse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/svtassev/crochetlayout/config"
	"github.com/svtassev/crochetlayout/graph"
)

// ErrMissingDimensionLine indicates the input was empty or its first
// line was not a valid integer.
var ErrMissingDimensionLine = errors.New("parse: missing or invalid dimension line")

var (
	nodeWithPosRe = regexp.MustCompile(`"([^"]+)"\s*\{([^}]+)\}`)
	nodeOnlyRe    = regexp.MustCompile(`"([^"]+)"\s*`)
	edgeRe        = regexp.MustCompile(`"([^"]+)"\s*--\s*"([^"]+)"\s*(\S+)`)
	jacobianRe    = regexp.MustCompile(`"([^"]+)"\s*---\s*"([^"]+)"\s*---\s*"([^"]+)"\s*---\s*"([^"]+)"\s*---\s*(\d*\.?\d*)`)
)

// NodeSpec is one parsed node line.
type NodeSpec struct {
	Label string
	Pos   []float64
}

// EdgeSpec is one parsed edge line, still referring to nodes by label.
type EdgeSpec struct {
	Source string
	Target string
	Length float64
}

// JacobianSpec is one parsed Jacobian line, still referring to nodes by
// label.
type JacobianSpec struct {
	A, B, C, D string
	Value      float64
}

// Document is the fully-tokenized input: the structural records plus the
// resolved scalar configuration.
type Document struct {
	Dim       int
	Nodes     []NodeSpec
	Edges     []EdgeSpec
	Jacobians []JacobianSpec
	Config    config.Config
}

// Parse tokenizes r per spec §6's grammar. Scalar configuration lines are
// folded into the returned Document's Config via the same functional
// options the rest of the engine uses; ic_guess and inflate set their
// companion enable flags exactly as the original's pointer-based
// out-parameters did.
func Parse(r io.Reader) (*Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		return nil, ErrMissingDimensionLine
	}
	dim, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || (dim != 2 && dim != 3) {
		return nil, fmt.Errorf("%w: %q", ErrMissingDimensionLine, scanner.Text())
	}

	doc := &Document{Dim: dim}
	opts := []config.Option{config.WithDim(dim)}

	for scanner.Scan() {
		line := strings.TrimLeft(scanner.Text(), " \t")
		if line == "" {
			continue
		}

		switch {
		case !strings.HasPrefix(line, `"`):
			opts = parseScalarLine(line, opts)
		case strings.Contains(line, "---"):
			if m := jacobianRe.FindStringSubmatch(line); m != nil {
				value, err := strconv.ParseFloat(m[5], 64)
				if err == nil {
					doc.Jacobians = append(doc.Jacobians, JacobianSpec{A: m[1], B: m[2], C: m[3], D: m[4], Value: value})
				}
			}
		case strings.Contains(line, "--"):
			if m := edgeRe.FindStringSubmatch(line); m != nil {
				length, err := strconv.ParseFloat(m[3], 64)
				if err == nil {
					doc.Edges = append(doc.Edges, EdgeSpec{Source: m[1], Target: m[2], Length: length})
				}
			}
		default:
			doc.Nodes = append(doc.Nodes, parseNodeLine(line))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	doc.Config = config.New(opts...)

	return doc, nil
}

func parseNodeLine(line string) NodeSpec {
	if m := nodeWithPosRe.FindStringSubmatch(line); m != nil {
		var pos []float64
		for _, tok := range strings.Split(m[2], ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
			if err == nil {
				pos = append(pos, v)
			}
		}

		return NodeSpec{Label: m[1], Pos: pos}
	}
	if m := nodeOnlyRe.FindStringSubmatch(line); m != nil {
		return NodeSpec{Label: m[1]}
	}

	return NodeSpec{}
}

// numericField finds key's first occurrence and returns the numeric
// token that immediately follows it, mirroring readDotFile's
// find-then-find_first_of scanning.
func numericField(line, key string, allowDecimal bool) (string, bool) {
	idx := strings.Index(line, key)
	if idx < 0 {
		return "", false
	}

	rest := line[idx+len(key):]
	charset := "0123456789"
	if allowDecimal {
		charset += "."
	}

	start := strings.IndexFunc(rest, func(r rune) bool { return strings.ContainsRune(charset, r) })
	if start < 0 {
		return "", false
	}
	rest = rest[start:]

	end := strings.IndexFunc(rest, func(r rune) bool { return !strings.ContainsRune(charset, r) })
	if end < 0 {
		end = len(rest)
	}

	return rest[:end], true
}

// parseScalarLine folds one free-form key/value configuration line into
// opts, disambiguating "iterations" from "viscous_iterations" by left
// context exactly as spec §6 requires.
func parseScalarLine(line string, opts []config.Option) []config.Option {
	if tok, ok := numericField(line, "start", false); ok {
		if v, err := strconv.ParseInt(tok, 10, 64); err == nil {
			opts = append(opts, config.WithSeed(v))
		}
	}
	if !strings.Contains(line, "viscous_iterations") {
		if tok, ok := numericField(line, "iterations", false); ok {
			if v, err := strconv.Atoi(tok); err == nil && v > 0 {
				opts = append(opts, config.WithIterations(v))
			}
		}
	}
	if tok, ok := numericField(line, "viscous_iterations", false); ok {
		if v, err := strconv.Atoi(tok); err == nil {
			opts = append(opts, config.WithViscousIterations(v))
		}
	}
	if tok, ok := numericField(line, "repulsion_radius", true); ok {
		if v, err := strconv.ParseFloat(tok, 64); err == nil && v > 0 {
			opts = append(opts, config.WithRepulsionRadius(v))
		}
	}
	if tok, ok := numericField(line, "viscous_timestep", true); ok {
		if v, err := strconv.ParseFloat(tok, 64); err == nil && v > 0 {
			opts = append(opts, config.WithViscousTimestep(v))
		}
	}
	if tok, ok := numericField(line, "viscous_damping", true); ok {
		if v, err := strconv.ParseFloat(tok, 64); err == nil {
			opts = append(opts, config.WithViscousDamping(v))
		}
	}
	if tok, ok := numericField(line, "inflate", true); ok {
		if v, err := strconv.ParseFloat(tok, 64); err == nil {
			opts = append(opts, config.WithInflate(v))
		}
	}
	if idx := strings.Index(line, "ic_guess"); idx >= 0 {
		if strings.ContainsAny(line[idx:], "tT1") {
			opts = append(opts, config.WithICGuess(true))
		}
	}
	if tok, ok := numericField(line, "learning_rate", true); ok {
		if v, err := strconv.ParseFloat(tok, 64); err == nil && v > 0 {
			opts = append(opts, config.WithLearningRate(v))
		}
	}
	if tok, ok := numericField(line, "separate", true); ok {
		if v, err := strconv.ParseFloat(tok, 64); err == nil {
			opts = append(opts, config.WithSeparateFactor(v))
		}
	}

	return opts
}

// Build resolves a Document's label-keyed records into a graph.Graph.
// Edge or Jacobian records that reference an undefined node label are
// logged to stderr and skipped, never treated as fatal (spec §7).
func Build(doc *Document) *graph.Graph {
	index := make(map[string]int, len(doc.Nodes))
	for i, n := range doc.Nodes {
		index[n.Label] = i
	}

	g := graph.New(len(doc.Nodes))
	for i, n := range doc.Nodes {
		_ = g.AddNode(i, n.Label, n.Pos, doc.Config.ICGuess)
	}

	for _, e := range doc.Edges {
		u, uOK := index[e.Source]
		v, vOK := index[e.Target]
		if !uOK || !vOK {
			fmt.Fprintf(os.Stderr, "Error: Node not found for edge: %s -- %s\n", e.Source, e.Target)
			continue
		}
		if err := g.AddEdge(u, v, e.Length); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}

	for _, j := range doc.Jacobians {
		a, aOK := index[j.A]
		b, bOK := index[j.B]
		c, cOK := index[j.C]
		d, dOK := index[j.D]
		if !aOK || !bOK || !cOK || !dOK {
			fmt.Fprintf(os.Stderr, "Error: Node not found for jacobian: %s --- %s --- %s --- %s\n", j.A, j.B, j.C, j.D)
			continue
		}
		_ = g.AddJacobian(graph.JacobianTuple{I1: a, I2: b, I3: c, I4: d, Value: j.Value})
	}

	return g
}
