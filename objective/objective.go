package objective

import (
	"fmt"
	"math"

	"github.com/crfchain/crfcore/forwardbackward"
)

// goldLogZSlack bounds the debug assertion logNum <= logZ + slack; a
// violation beyond this slack indicates a numerical or model bug, not
// ordinary floating-point noise.
const goldLogZSlack = 1e-6

// DebugAssertions enables a sanity check that the gold path's log-score
// never exceeds logZ by more than goldLogZSlack. Training binaries should
// enable it; a production tagging server should leave it false and let a
// misbehaving example surface as an unusually large loss instead of a
// panic.
var DebugAssertions = false

// LogLikelihoodObjective computes an example's contribution to
// log-likelihood L(theta) = log p(gold | observation) and its sparse
// gradient.
type LogLikelihoodObjective struct {
	Encoder WeightsEncoder
	kernel  *forwardbackward.Kernel
}

// New returns a LogLikelihoodObjective over enc.
func New(enc WeightsEncoder) *LogLikelihoodObjective {
	return &LogLikelihoodObjective{Encoder: enc, kernel: forwardbackward.NewKernel()}
}

// Evaluate computes ex's log-likelihood contribution under theta and
// accumulates its sparse gradient into g (which must be the same
// dimension as theta and is not zeroed by this call; callers accumulating
// over a batch should zero g once per batch, not per example).
//
// Fails with ErrUnlabeledExample if ex has no gold labels,
// ErrIllegalGoldPath if the gold sequence uses a transition the StateSpace
// does not declare, or any error forwardbackward.Kernel.Run returns
// (ErrDimensionMismatch, ErrInfeasibleExample, ErrNumericError).
//
// Summation order is fixed (positions ascending, predicates in iterator
// order, states/transitions in index order) so identical inputs yield
// bit-identical outputs.
func (o *LogLikelihoodObjective) Evaluate(theta, g []float64, ex *IndexedExample) (float64, error) {
	if !ex.Labeled() {
		return 0, ErrUnlabeledExample
	}

	pot, err := o.Encoder.FillPotentials(theta, ex)
	if err != nil {
		return 0, fmt.Errorf("objective.Evaluate: filling potentials: %w", err)
	}

	ss := o.Encoder.StateSpace()
	res, err := o.kernel.Run(ss, pot)
	if err != nil {
		return 0, fmt.Errorf("objective.Evaluate: %w", err)
	}

	logNum, err := o.accumulateGold(ss, pot, ex, g)
	if err != nil {
		return 0, err
	}

	o.accumulateExpected(ss, ex, res, g)

	logDen := res.LogZ
	if DebugAssertions && logNum > logDen+goldLogZSlack {
		panic(fmt.Sprintf("objective: gold log-score %g exceeds logZ %g beyond slack %g", logNum, logDen, goldLogZSlack))
	}

	return logNum - logDen, nil
}

// accumulateGold walks the gold path, summing its potential score and
// adding its observed feature counts into g. Node predicates are
// attributed across all L positions to the gold state occupying that
// position; edge predicates are attributed across the L-1 gaps to the
// gold transition crossing that gap.
func (o *LogLikelihoodObjective) accumulateGold(ss forwardbackward.Graph, pot [][]float64, ex *IndexedExample, g []float64) (float64, error) {
	var logNum float64
	l := ex.Len()

	for i := 0; i < l-1; i++ {
		from, to := ex.GoldLabels[i], ex.GoldLabels[i+1]
		tr, ok := ss.TransitionFor(from, to)
		if !ok {
			return 0, fmt.Errorf("objective.Evaluate: position %d, state %d -> %d: %w", i, from, to, ErrIllegalGoldPath)
		}
		logNum += pot[i][tr.Self]

		edge := ex.EdgePredicates[i]
		edge.Reset()
		for !edge.Exhausted() {
			g[o.Encoder.EdgeWeightIndex(edge.Index(), tr.Self)] += edge.Value()
			edge.Advance()
		}
	}

	for i := 0; i < l; i++ {
		node := ex.NodePredicates[i]
		node.Reset()
		for !node.Exhausted() {
			g[o.Encoder.NodeWeightIndex(node.Index(), ex.GoldLabels[i])] += node.Value()
			node.Advance()
		}
	}

	return logNum, nil
}

// accumulateExpected subtracts the expected feature counts under the
// model's current node/edge marginals from g, over the same position
// ranges as accumulateGold.
func (o *LogLikelihoodObjective) accumulateExpected(ss forwardbackward.Graph, ex *IndexedExample, res *forwardbackward.Result, g []float64) {
	numStates := ss.NumStates()
	numTrans := ss.NumTransitions()
	l := ex.Len()

	for i := 0; i < l-1; i++ {
		edge := ex.EdgePredicates[i]
		edge.Reset()
		for !edge.Exhausted() {
			p, v := edge.Index(), edge.Value()
			for t := 0; t < numTrans; t++ {
				g[o.Encoder.EdgeWeightIndex(p, t)] -= v * res.EdgeMarginals[i][t]
			}
			edge.Advance()
		}
	}

	for i := 0; i < l; i++ {
		node := ex.NodePredicates[i]
		node.Reset()
		for !node.Exhausted() {
			p, v := node.Index(), node.Value()
			for s := 0; s < numStates; s++ {
				g[o.Encoder.NodeWeightIndex(p, s)] -= v * res.NodeMarginals[i][s]
			}
			node.Advance()
		}
	}
}

// assertFinite is a small guard, used by DenseEncoder.FillPotentials, to
// fail fast on a NaN/Inf parameter vector rather than let it silently
// propagate into a confusing forwardbackward.ErrNumericError.
func assertFinite(theta []float64) bool {
	for _, v := range theta {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
