package server

import (
	"errors"

	"github.com/crfchain/crfcore/forwardbackward"
)

// ErrUnknownDecodeMode indicates a TagRequest named a Mode other than
// "", "viterbi", or "maxtoken".
var ErrUnknownDecodeMode = errors.New("server: unknown decode mode")

// isClientCausedTagError reports whether err stems from the request's own
// predicates rather than a server-side fault: an infeasible example (no
// legal path through the declared transitions) is the caller's StateSpace
// or predicate data, not ours.
func isClientCausedTagError(err error) bool {
	return errors.Is(err, forwardbackward.ErrInfeasibleExample)
}
