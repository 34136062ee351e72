package tagger

import "errors"

// ErrUnknownMode indicates BestGuess was called with a Mode value other
// than ModeViterbi or ModeMaxToken.
var ErrUnknownMode = errors.New("tagger: unknown decode mode")
