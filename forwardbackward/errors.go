package forwardbackward

import "errors"

// Sentinel errors returned by the forward-backward kernel.
var (
	// ErrDimensionMismatch indicates a row of the potential matrix does not
	// have the graph's transition count as its length.
	ErrDimensionMismatch = errors.New("forwardbackward: potential matrix dimensions disagree with state space")

	// ErrInfeasibleExample indicates forward-backward computed logZ = -Inf:
	// no legal path exists under the declared transitions for this
	// potential matrix.
	ErrInfeasibleExample = errors.New("forwardbackward: no legal path (logZ = -Inf)")

	// ErrNumericError indicates a NaN appeared in alpha, beta, or logZ
	// despite log-sum-exp stabilization, which can only happen from a
	// caller-supplied NaN potential (since +Inf potentials are rejected
	// outright as a programmer error; see positiveInfinityPanic).
	ErrNumericError = errors.New("forwardbackward: NaN encountered in message passing")
)

// positiveInfinityPanic is the panic value raised when a potential entry is
// +Inf. A correctly built potential matrix can only ever contain finite
// values or -Inf for illegal transitions, so +Inf signals a bug in the
// caller's encoder rather than a recoverable input condition.
const positiveInfinityPanic = "forwardbackward: potential matrix contains +Inf; this is a programmer error, not recoverable input"
