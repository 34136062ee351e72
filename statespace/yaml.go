package statespace

import (
	"fmt"
	"io"

	"github.com/crfchain/crfcore/indexer"
	"gopkg.in/yaml.v3"
)

// declaration is the human-authored YAML shape for declaring a StateSpace
// over string-named states:
//
//	states: [START, A, B, STOP]
//	transitions:
//	  - from: START
//	    to: A
//	  - from: A
//	    to: A
//	start: START
//	stop: STOP
//
// This is distinct from the binary Indexer persistence format; it is a
// convenience for hand-authoring label graphs.
type declaration struct {
	States      []string        `yaml:"states"`
	Transitions []pairDecl      `yaml:"transitions"`
	Start       string          `yaml:"start"`
	Stop        string          `yaml:"stop"`
}

type pairDecl struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// LoadYAML reads a StateSpace[string] declaration from r and builds the
// StateSpace, applying the same validation New does.
func LoadYAML(r io.Reader) (*StateSpace[string], error) {
	var decl declaration
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&decl); err != nil {
		return nil, fmt.Errorf("statespace.LoadYAML: decoding: %w", err)
	}

	states := indexer.Of(decl.States)
	pairs := make([]Pair[string], len(decl.Transitions))
	for i, p := range decl.Transitions {
		pairs[i] = Pair[string]{From: p.From, To: p.To}
	}

	return New(states, pairs, decl.Start, decl.Stop)
}
