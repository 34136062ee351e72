package objective

import (
	"fmt"

	"github.com/crfchain/crfcore/forwardbackward"
)

// DenseEncoder is the reference WeightsEncoder: a flat parameter vector
// laid out as [node features | edge features], node feature (p, s) at
// p*NumStates+s and edge feature (p, t) at the node block's size plus
// p*NumTransitions+t. This mirrors the layout used by comparable
// linear-chain CRF implementations in the wild, adapted here to separate
// node/edge predicate spaces rather than a single shared attribute
// alphabet.
type DenseEncoder struct {
	ss                forwardbackward.Graph
	numNodePredicates int
	numEdgePredicates int
}

// NewDenseEncoder returns a DenseEncoder over ss with numNodePredicates
// distinct node predicate indices and numEdgePredicates distinct edge
// predicate indices.
func NewDenseEncoder(ss forwardbackward.Graph, numNodePredicates, numEdgePredicates int) *DenseEncoder {
	return &DenseEncoder{ss: ss, numNodePredicates: numNodePredicates, numEdgePredicates: numEdgePredicates}
}

// StateSpace returns the graph this encoder fills potentials over.
func (e *DenseEncoder) StateSpace() forwardbackward.Graph { return e.ss }

// NodeWeightIndex returns the flat weight index for node feature (p, s).
func (e *DenseEncoder) NodeWeightIndex(predicateIndex, stateIndex int) int {
	return predicateIndex*e.ss.NumStates() + stateIndex
}

// nodeBlockSize is the width of the node-feature region of theta.
func (e *DenseEncoder) nodeBlockSize() int {
	return e.numNodePredicates * e.ss.NumStates()
}

// EdgeWeightIndex returns the flat weight index for edge feature (p, t).
func (e *DenseEncoder) EdgeWeightIndex(predicateIndex, transitionIndex int) int {
	return e.nodeBlockSize() + predicateIndex*e.ss.NumTransitions() + transitionIndex
}

// NumWeights returns the total dimension of theta/gradient this encoder
// expects.
func (e *DenseEncoder) NumWeights() int {
	return e.nodeBlockSize() + e.numEdgePredicates*e.ss.NumTransitions()
}

// FillPotentials computes pot[i][t] = edgeScore(i, t) + nodeScore(i+1,
// t.To): the transition's own edge-feature score, plus the node-feature
// score of the state it lands on. Every transition the StateSpace
// declares is legal by construction, so no entry needs a -Inf default.
func (e *DenseEncoder) FillPotentials(theta []float64, ex *IndexedExample) ([][]float64, error) {
	if !assertFinite(theta) {
		return nil, fmt.Errorf("objective.DenseEncoder.FillPotentials: %w", errNonFiniteTheta)
	}

	l := ex.Len()
	numStates := e.ss.NumStates()
	numTrans := e.ss.NumTransitions()
	transitions := e.ss.Transitions()

	pot := make([][]float64, l-1)
	for i := 0; i < l-1; i++ {
		nodeScore := make([]float64, numStates)
		np := ex.NodePredicates[i+1]
		np.Reset()
		for !np.Exhausted() {
			p, v := np.Index(), np.Value()
			for s := 0; s < numStates; s++ {
				nodeScore[s] += theta[e.NodeWeightIndex(p, s)] * v
			}
			np.Advance()
		}

		edgeScore := make([]float64, numTrans)
		ep := ex.EdgePredicates[i]
		ep.Reset()
		for !ep.Exhausted() {
			p, v := ep.Index(), ep.Value()
			for t := 0; t < numTrans; t++ {
				edgeScore[t] += theta[e.EdgeWeightIndex(p, t)] * v
			}
			ep.Advance()
		}

		row := make([]float64, numTrans)
		for _, tr := range transitions {
			row[tr.Self] = edgeScore[tr.Self] + nodeScore[tr.To]
		}
		pot[i] = row
	}

	return pot, nil
}
