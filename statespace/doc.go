// Package statespace models the finite, directed state graph a linear-chain
// CRF is constrained to: a set of states (including distinguished start and
// stop sentinels) and the legal transitions between them, pre-indexed for
// O(1) lookup during the hot forward-backward and Viterbi loops.
//
// A StateSpace is built once from an indexer.Indexer[S] of states and a set
// of allowed (from, to) pairs, then shared read-only by every example a
// forwardbackward.Kernel or objective.Evaluate call processes. It is never
// mutated after New returns.
//
// Construction validates that every declared transition resolves to known
// states, that no (from, to) pair is declared twice, and that the stop
// state is reachable from the start state — catching a typo'd transition
// graph at build time instead of as a silent InfeasibleExample later.
package statespace
