// Package objective implements the per-example log-likelihood loss and
// sparse gradient for a linear-chain CRF: given a labeled IndexedExample
// and the current parameter vector, it combines the gold (observed) path's
// feature activations with the expected activations under the model's
// current marginals.
//
// The numerical work is delegated to forwardbackward.Kernel; this package
// owns only the gold-vs-expected bookkeeping. A collaborating
// WeightsEncoder materializes potentials from parameters and maps
// (predicate, state-or-transition) pairs to weight-vector indices; feature
// extraction from raw observations stays outside this package's concern.
package objective
