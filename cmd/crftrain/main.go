// Command crftrain fits a linear-chain CRF's parameter vector against a
// labeled training set and writes the result to its model directory.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/crfchain/crfcore/config"
	"github.com/crfchain/crfcore/modelio"
	"github.com/crfchain/crfcore/objective"
	"github.com/crfchain/crfcore/orchestrator"
	"github.com/crfchain/crfcore/statespace"
)

// wirePredicate is the JSON form of a single feature activation, mirroring
// server.WirePredicate without importing the server package into a
// training-only binary.
type wirePredicate struct {
	Index int     `json:"index"`
	Value float64 `json:"value"`
}

// trainingExample is one element of a training set's JSON array: predicate activations
// per position/gap plus the gold label name at every position (including
// the leading start state and trailing stop state).
type trainingExample struct {
	NodePredicates [][]wirePredicate `json:"nodePredicates"`
	EdgePredicates [][]wirePredicate `json:"edgePredicates"`
	GoldLabels     []string          `json:"goldLabels"`
}

func main() {
	configPath := flag.String("config", "", "path to a crftrain YAML config file")
	flag.Parse()

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "crftrain: -config is required")
		os.Exit(2)
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "crftrain: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.TrainingFromYaml(configPath)
	if err != nil {
		return err
	}

	logger := log.New(os.Stdout, "crftrain: ", log.LstdFlags)

	ssFile, err := os.Open(filepath.Join(cfg.ModelDir, "statespace.yaml"))
	if err != nil {
		return fmt.Errorf("opening statespace declaration: %w", err)
	}
	defer ssFile.Close()

	ss, err := statespace.LoadYAML(ssFile)
	if err != nil {
		return fmt.Errorf("loading statespace: %w", err)
	}

	examples, numNodePredicates, numEdgePredicates, err := loadDataset(cfg.DataPath, ss)
	if err != nil {
		return fmt.Errorf("loading training set: %w", err)
	}
	logger.Printf("loaded %d examples, %d node predicates, %d edge predicates", len(examples), numNodePredicates, numEdgePredicates)

	encoder := objective.NewDenseEncoder(ss, numNodePredicates, numEdgePredicates)
	obj := objective.New(encoder)
	orch := orchestrator.New(obj)

	theta := make([]float64, encoder.NumWeights())
	gradient := make([]float64, encoder.NumWeights())

	ctx := context.Background()
	for iter := 0; iter < cfg.MaxIterations; iter++ {
		loss, grad, err := orch.Run(ctx, examples, theta, cfg.Workers)
		if err != nil {
			return fmt.Errorf("iteration %d: %w", iter, err)
		}
		copy(gradient, grad)

		for i := range theta {
			theta[i] += cfg.LearningRate * (gradient[i] - cfg.L2Strength*theta[i])
		}

		logger.Printf("iteration %d: log-likelihood=%.6f", iter, loss)
	}

	if err := os.MkdirAll(cfg.ModelDir, 0o755); err != nil {
		return fmt.Errorf("creating model directory: %w", err)
	}

	weightsPath := filepath.Join(cfg.ModelDir, "weights.bin")
	weightsFile, err := os.Create(weightsPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", weightsPath, err)
	}
	defer weightsFile.Close()

	w := modelio.Weights{NumNodePredicates: numNodePredicates, NumEdgePredicates: numEdgePredicates, Theta: theta}
	if err := modelio.Save(weightsFile, w); err != nil {
		return fmt.Errorf("writing %s: %w", weightsPath, err)
	}

	logger.Printf("wrote %s", weightsPath)
	return nil
}

// loadDataset decodes path's JSON training set into IndexedExamples
// against ss, along with the predicate-space dimensions the widest
// activation in the set implies.
func loadDataset(path string, ss *statespace.StateSpace[string]) ([]*objective.IndexedExample, int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()

	var raw []trainingExample
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return nil, 0, 0, fmt.Errorf("decoding: %w", err)
	}

	var numNodePredicates, numEdgePredicates int
	examples := make([]*objective.IndexedExample, len(raw))
	for i, ex := range raw {
		goldLabels := make([]int, len(ex.GoldLabels))
		for j, name := range ex.GoldLabels {
			idx := ss.States().IndexOf(name)
			if idx < 0 {
				return nil, 0, 0, fmt.Errorf("example %d position %d: unknown state %q", i, j, name)
			}
			goldLabels[j] = idx
		}

		nodePredicates := make([]objective.PredicateIterator, len(ex.NodePredicates))
		for j, ps := range ex.NodePredicates {
			nodePredicates[j] = objective.NewSlicePredicates(toPredicates(ps, &numNodePredicates))
		}

		edgePredicates := make([]objective.PredicateIterator, len(ex.EdgePredicates))
		for j, ps := range ex.EdgePredicates {
			edgePredicates[j] = objective.NewSlicePredicates(toPredicates(ps, &numEdgePredicates))
		}

		examples[i] = &objective.IndexedExample{
			NodePredicates: nodePredicates,
			EdgePredicates: edgePredicates,
			GoldLabels:     goldLabels,
		}
	}

	return examples, numNodePredicates, numEdgePredicates, nil
}

// toPredicates converts wire predicates to objective.Predicate, widening
// *width to cover the largest index seen so the caller can size a
// DenseEncoder after a single pass over the whole set.
func toPredicates(ps []wirePredicate, width *int) []objective.Predicate {
	out := make([]objective.Predicate, len(ps))
	for i, p := range ps {
		out[i] = objective.Predicate{Index: p.Index, Value: p.Value}
		if p.Index+1 > *width {
			*width = p.Index + 1
		}
	}
	return out
}
