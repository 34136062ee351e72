package objective

import "errors"

// Sentinel errors returned by LogLikelihoodObjective.Evaluate.
var (
	// ErrUnlabeledExample indicates Evaluate was called on an example with
	// no GoldLabels; this is a training-time operation and requires one.
	ErrUnlabeledExample = errors.New("objective: example has no gold labels")

	// ErrIllegalGoldPath indicates the gold label sequence contains a
	// transition not present in the StateSpace.
	ErrIllegalGoldPath = errors.New("objective: gold label sequence uses an illegal transition")

	// errNonFiniteTheta indicates DenseEncoder.FillPotentials was given a
	// parameter vector containing NaN or +/-Inf.
	errNonFiniteTheta = errors.New("objective: theta contains a non-finite value")
)
