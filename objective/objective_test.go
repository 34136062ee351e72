package objective_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/crfchain/crfcore/indexer"
	"github.com/crfchain/crfcore/objective"
	"github.com/crfchain/crfcore/statespace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func empty() *objective.SlicePredicates {
	return objective.NewSlicePredicates(nil)
}

// twoStateChain is the same START->A->A->STOP fixture forwardbackward's
// tests use.
func twoStateChain(t *testing.T) *statespace.StateSpace[string] {
	t.Helper()
	states := indexer.Of([]string{"START", "A", "STOP"})
	pairs := []statespace.Pair[string]{
		{From: "START", To: "A"},
		{From: "A", To: "A"},
		{From: "A", To: "STOP"},
	}
	ss, err := statespace.New(states, pairs, "START", "STOP")
	require.NoError(t, err)
	return ss
}

// ambiguousTwoPath is the same branching fixture forwardbackward's tests
// use: START branches to A or B, both rejoining at STOP.
func ambiguousTwoPath(t *testing.T) *statespace.StateSpace[string] {
	t.Helper()
	states := indexer.Of([]string{"START", "A", "B", "STOP"})
	pairs := []statespace.Pair[string]{
		{From: "START", To: "A"},
		{From: "START", To: "B"},
		{From: "A", To: "STOP"},
		{From: "B", To: "STOP"},
	}
	ss, err := statespace.New(states, pairs, "START", "STOP")
	require.NoError(t, err)
	return ss
}

func TestEvaluate_UnlabeledExample(t *testing.T) {
	ss := twoStateChain(t)
	enc := objective.NewDenseEncoder(ss, 0, 0)
	obj := objective.New(enc)

	ex := &objective.IndexedExample{
		NodePredicates: []objective.PredicateIterator{empty(), empty(), empty(), empty()},
		EdgePredicates: []objective.PredicateIterator{empty(), empty(), empty()},
	}

	theta := make([]float64, enc.NumWeights())
	g := make([]float64, enc.NumWeights())
	_, err := obj.Evaluate(theta, g, ex)
	assert.ErrorIs(t, err, objective.ErrUnlabeledExample)
}

func TestEvaluate_IllegalGoldPath(t *testing.T) {
	ss := twoStateChain(t)
	enc := objective.NewDenseEncoder(ss, 0, 0)
	obj := objective.New(enc)

	startIdx := ss.StartStateIndex()
	stopIdx := ss.StopStateIndex()

	// L=3, so START->A->STOP keeps the example itself feasible, while the
	// gold path opens with a direct START->STOP jump, which this chain
	// never declares.
	ex := &objective.IndexedExample{
		NodePredicates: []objective.PredicateIterator{empty(), empty(), empty()},
		EdgePredicates: []objective.PredicateIterator{empty(), empty()},
		GoldLabels:     []int{startIdx, stopIdx, stopIdx},
	}

	theta := make([]float64, enc.NumWeights())
	g := make([]float64, enc.NumWeights())
	_, err := obj.Evaluate(theta, g, ex)
	assert.ErrorIs(t, err, objective.ErrIllegalGoldPath)
}

func TestEvaluate_UniquePathIsZeroLoss(t *testing.T) {
	ss := twoStateChain(t)
	enc := objective.NewDenseEncoder(ss, 0, 0)
	obj := objective.New(enc)

	aIdx := ss.States().IndexOf("A")
	ex := &objective.IndexedExample{
		NodePredicates: []objective.PredicateIterator{empty(), empty(), empty(), empty()},
		EdgePredicates: []objective.PredicateIterator{empty(), empty(), empty()},
		GoldLabels:     []int{ss.StartStateIndex(), aIdx, aIdx, ss.StopStateIndex()},
	}

	theta := make([]float64, enc.NumWeights())
	g := make([]float64, enc.NumWeights())
	ll, err := obj.Evaluate(theta, g, ex)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, ll, 1e-9, "the only legal path is gold, so its probability is 1")
	for i, v := range g {
		assert.InDelta(t, 0.0, v, 1e-9, "weight %d: gold counts should exactly cancel expected counts", i)
	}
}

// TestEvaluate_GradientMatchesClosedForm checks the closed-form gradient
// for a single node predicate of value v at an interior position, state A
// in gold: g[nodeWeightIndex(p,A)] must equal v*(1-nodeMarginals[i][A]) and
// g[nodeWeightIndex(p,s)] for s != A must equal -v*nodeMarginals[i][s].
func TestEvaluate_GradientMatchesClosedForm(t *testing.T) {
	ss := ambiguousTwoPath(t)
	enc := objective.NewDenseEncoder(ss, 1, 1)
	obj := objective.New(enc)

	aIdx := ss.States().IndexOf("A")
	bIdx := ss.States().IndexOf("B")
	const v = 2.0

	// theta chosen so FillPotentials reproduces ambiguousTwoPath's known
	// potentials (1.0 into A, 0.5 into B at the one branching position)
	// entirely via the node predicate at position 1, scaled by v.
	theta := make([]float64, enc.NumWeights())
	theta[enc.NodeWeightIndex(0, aIdx)] = 1.0 / v
	theta[enc.NodeWeightIndex(0, bIdx)] = 0.5 / v

	ex := &objective.IndexedExample{
		NodePredicates: []objective.PredicateIterator{
			empty(),
			objective.NewSlicePredicates([]objective.Predicate{{Index: 0, Value: v}}),
			empty(),
		},
		EdgePredicates: []objective.PredicateIterator{empty(), empty()},
		GoldLabels:     []int{ss.StartStateIndex(), aIdx, ss.StopStateIndex()},
	}

	g := make([]float64, enc.NumWeights())
	_, err := obj.Evaluate(theta, g, ex)
	require.NoError(t, err)

	wantPA := math.Exp(1.0) / (math.Exp(1.0) + math.Exp(0.5))
	wantPB := 1 - wantPA

	assert.InDelta(t, v*(1-wantPA), g[enc.NodeWeightIndex(0, aIdx)], 1e-9)
	assert.InDelta(t, -v*wantPB, g[enc.NodeWeightIndex(0, bIdx)], 1e-9)
}

// TestEvaluate_GradientMatchesCentralDifference checks the analytic
// gradient generically rather than against one hand-derived fixture: for a
// random parameter vector theta and several random sparse directions d,
// the central-difference quotient (L(theta+eps*d)-L(theta-eps*d))/(2*eps)
// must agree with the analytic directional derivative gradient.d.
func TestEvaluate_GradientMatchesCentralDifference(t *testing.T) {
	ss := ambiguousTwoPath(t)
	enc := objective.NewDenseEncoder(ss, 3, 2)
	obj := objective.New(enc)

	aIdx := ss.States().IndexOf("A")

	ex := &objective.IndexedExample{
		NodePredicates: []objective.PredicateIterator{
			empty(),
			objective.NewSlicePredicates([]objective.Predicate{{Index: 0, Value: 1.0}, {Index: 2, Value: -0.5}}),
			empty(),
		},
		EdgePredicates: []objective.PredicateIterator{
			objective.NewSlicePredicates([]objective.Predicate{{Index: 1, Value: 0.75}}),
			objective.NewSlicePredicates([]objective.Predicate{{Index: 0, Value: -1.25}}),
		},
		GoldLabels: []int{ss.StartStateIndex(), aIdx, ss.StopStateIndex()},
	}

	rng := rand.New(rand.NewSource(20260730))
	n := enc.NumWeights()
	theta := make([]float64, n)
	for i := range theta {
		theta[i] = rng.NormFloat64() * 0.5
	}

	gradient := make([]float64, n)
	_, err := obj.Evaluate(theta, gradient, ex)
	require.NoError(t, err)

	const eps = 1e-4
	const trials = 5
	const nonZerosPerDirection = 3

	for trial := 0; trial < trials; trial++ {
		d := make([]float64, n)
		for k := 0; k < nonZerosPerDirection; k++ {
			d[rng.Intn(n)] = rng.NormFloat64()
		}

		var directional float64
		thetaPlus := make([]float64, n)
		thetaMinus := make([]float64, n)
		for i := range theta {
			thetaPlus[i] = theta[i] + eps*d[i]
			thetaMinus[i] = theta[i] - eps*d[i]
			directional += gradient[i] * d[i]
		}

		lossPlus, err := obj.Evaluate(thetaPlus, make([]float64, n), ex)
		require.NoError(t, err)
		lossMinus, err := obj.Evaluate(thetaMinus, make([]float64, n), ex)
		require.NoError(t, err)

		quotient := (lossPlus - lossMinus) / (2 * eps)
		assert.InDelta(t, directional, quotient, 1e-5, "direction %d", trial)
	}
}

func TestEvaluate_NonFiniteThetaRejected(t *testing.T) {
	ss := twoStateChain(t)
	enc := objective.NewDenseEncoder(ss, 1, 0)
	obj := objective.New(enc)

	aIdx := ss.States().IndexOf("A")
	ex := &objective.IndexedExample{
		NodePredicates: []objective.PredicateIterator{empty(), empty(), empty(), empty()},
		EdgePredicates: []objective.PredicateIterator{empty(), empty(), empty()},
		GoldLabels:     []int{ss.StartStateIndex(), aIdx, aIdx, ss.StopStateIndex()},
	}

	theta := make([]float64, enc.NumWeights())
	theta[0] = math.NaN()
	g := make([]float64, enc.NumWeights())

	_, err := obj.Evaluate(theta, g, ex)
	require.Error(t, err)
}
