// Package forwardbackward implements the log-domain forward-backward
// message-passing kernel at the heart of the linear-chain CRF: given a
// statespace.StateSpace and a per-position potential matrix, it computes a
// Viterbi best path, the log partition logZ, and node/edge marginals in one
// numerically stable pass.
//
// Everything runs in log space. Log-sum-exp uses the standard max-subtract
// trick so that LSE(-Inf, -Inf) = -Inf without ever producing NaN; +Inf
// potentials are rejected as a programmer error (they cannot arise from a
// correctly built potential matrix), while a NaN surfacing in alpha, beta,
// or logZ despite stabilization is reported as ErrNumericError rather than
// silently propagated.
//
// A Kernel is reusable across examples: it holds no per-call configuration,
// only its own scratch matrices, which later calls reuse and grow, and it
// does not retain references to caller-owned data after Run returns.
package forwardbackward
