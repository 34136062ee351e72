// Package tagger provides the thin inference-time composition: given a
// parameter vector and an already-encoded example, fill potentials once via
// a WeightsEncoder and run forwardbackward.Kernel either once (Viterbi
// mode) or twice (MaxToken mode, a second pass over the first pass's edge
// marginals) to produce the best-guess label sequence.
package tagger
