package objective

import "github.com/crfchain/crfcore/forwardbackward"

// WeightsEncoder materializes log-potentials from the current parameter
// vector and maps (predicate, state-or-transition) pairs to indices in the
// weight/gradient vector. This package never inspects theta's layout
// directly; all of that lives behind this interface.
type WeightsEncoder interface {
	// FillPotentials computes the potential matrix for ex under theta:
	// shape (L-1, T), -Inf for illegal transitions.
	FillPotentials(theta []float64, ex *IndexedExample) ([][]float64, error)

	// NodeWeightIndex returns the weight-vector index for the node feature
	// (predicateIndex, stateIndex).
	NodeWeightIndex(predicateIndex, stateIndex int) int

	// EdgeWeightIndex returns the weight-vector index for the edge feature
	// (predicateIndex, transitionIndex).
	EdgeWeightIndex(predicateIndex, transitionIndex int) int

	// StateSpace returns the graph potentials are defined over.
	StateSpace() forwardbackward.Graph
}
