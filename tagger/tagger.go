package tagger

import (
	"fmt"

	"github.com/crfchain/crfcore/forwardbackward"
	"github.com/crfchain/crfcore/objective"
)

// Mode selects the decoding strategy BestGuess uses.
type Mode int

const (
	// ModeViterbi returns the single highest-scoring legal state sequence.
	ModeViterbi Mode = iota

	// ModeMaxToken returns the legal state sequence maximizing the
	// product of per-position edge marginals instead of the joint path
	// score; it may diverge from ModeViterbi's answer.
	ModeMaxToken
)

// Tagger composes a WeightsEncoder with a forwardbackward.Kernel to answer
// "what is the best label sequence for this example" without exposing the
// forward-backward machinery to callers. A Tagger's kernel is not safe for
// concurrent BestGuess calls; give each goroutine its own Tagger over a
// shared, read-only Encoder.
type Tagger struct {
	Encoder objective.WeightsEncoder
	kernel  *forwardbackward.Kernel
}

// New returns a Tagger over enc.
func New(enc objective.WeightsEncoder) *Tagger {
	return &Tagger{Encoder: enc, kernel: forwardbackward.NewKernel()}
}

// BestGuess fills potentials for ex under theta and decodes a label
// sequence per mode. The returned sequence has length ex.Len(), including
// the leading start-state and trailing stop-state indices; stripping those
// is the caller's choice.
func (tg *Tagger) BestGuess(theta []float64, ex *objective.IndexedExample, mode Mode) ([]int, error) {
	pot, err := tg.Encoder.FillPotentials(theta, ex)
	if err != nil {
		return nil, fmt.Errorf("tagger.BestGuess: filling potentials: %w", err)
	}

	ss := tg.Encoder.StateSpace()
	res, err := tg.kernel.Run(ss, pot)
	if err != nil {
		return nil, fmt.Errorf("tagger.BestGuess: %w", err)
	}

	switch mode {
	case ModeViterbi:
		return res.Viterbi, nil
	case ModeMaxToken:
		path, err := tg.kernel.DecodeMaxToken(ss, res)
		if err != nil {
			return nil, fmt.Errorf("tagger.BestGuess: max-token decode: %w", err)
		}
		return path, nil
	default:
		return nil, fmt.Errorf("tagger.BestGuess: %w: %d", ErrUnknownMode, mode)
	}
}
