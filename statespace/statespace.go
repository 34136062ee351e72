package statespace

import (
	"errors"
	"fmt"

	"github.com/crfchain/crfcore/indexer"
)

// Sentinel errors returned by StateSpace construction and lookup.
var (
	// ErrUnknownState indicates start, stop, or a transition endpoint is
	// not present in the supplied state Indexer.
	ErrUnknownState = errors.New("statespace: unknown state")

	// ErrDuplicateTransition indicates the same (from, to) pair was
	// declared more than once.
	ErrDuplicateTransition = errors.New("statespace: duplicate transition")

	// ErrStopUnreachable indicates no path exists from the start state to
	// the stop state under the declared transitions.
	ErrStopUnreachable = errors.New("statespace: stop state unreachable from start state")
)

// Pair is an ordered (from, to) pair of states, as supplied to New.
type Pair[S comparable] struct {
	From, To S
}

// Transition is the triple (fromState, toState, selfIndex) described by the
// specification: fromState and toState are state indices, and selfIndex is
// a dense transition index assigned at StateSpace construction, unique
// across all transitions of the StateSpace.
type Transition struct {
	From, To int
	Self     int
}

// StateSpace is a finite, directed graph over state indices: the legal
// transitions a CRF's chain may take, including which states may start and
// end a sequence.
//
// StateSpace is immutable after New returns and safe for concurrent,
// read-only use by many examples at once.
type StateSpace[S comparable] struct {
	states      *indexer.Indexer[S]
	transitions []Transition
	byPair      map[[2]int]int
	outgoing    [][]int // outgoing[from] = indices into transitions
	incoming    [][]int // incoming[to] = indices into transitions
	start, stop int
}

// New builds a StateSpace from states and the allowed (from, to) pairs,
// including pairs originating at start and pairs ending at stop. Each pair
// is assigned a dense selfIndex in the order given, after duplicate
// detection.
//
// Fails with ErrUnknownState if start, stop, or any pair endpoint is not in
// states; ErrDuplicateTransition if a (from, to) pair appears twice; and
// ErrStopUnreachable if no path from start reaches stop under the declared
// transitions.
func New[S comparable](states *indexer.Indexer[S], pairs []Pair[S], start, stop S) (*StateSpace[S], error) {
	n := states.Size()

	startIdx := states.IndexOf(start)
	if startIdx < 0 {
		return nil, fmt.Errorf("statespace.New: start %v: %w", start, ErrUnknownState)
	}
	stopIdx := states.IndexOf(stop)
	if stopIdx < 0 {
		return nil, fmt.Errorf("statespace.New: stop %v: %w", stop, ErrUnknownState)
	}

	transitions := make([]Transition, 0, len(pairs))
	byPair := make(map[[2]int]int, len(pairs))
	outgoing := make([][]int, n)
	incoming := make([][]int, n)

	for _, p := range pairs {
		fromIdx := states.IndexOf(p.From)
		if fromIdx < 0 {
			return nil, fmt.Errorf("statespace.New: transition from %v: %w", p.From, ErrUnknownState)
		}
		toIdx := states.IndexOf(p.To)
		if toIdx < 0 {
			return nil, fmt.Errorf("statespace.New: transition to %v: %w", p.To, ErrUnknownState)
		}

		key := [2]int{fromIdx, toIdx}
		if _, dup := byPair[key]; dup {
			return nil, fmt.Errorf("statespace.New: %v -> %v: %w", p.From, p.To, ErrDuplicateTransition)
		}

		self := len(transitions)
		t := Transition{From: fromIdx, To: toIdx, Self: self}
		transitions = append(transitions, t)
		byPair[key] = self
		outgoing[fromIdx] = append(outgoing[fromIdx], self)
		incoming[toIdx] = append(incoming[toIdx], self)
	}

	ss := &StateSpace[S]{
		states:      states,
		transitions: transitions,
		byPair:      byPair,
		outgoing:    outgoing,
		incoming:    incoming,
		start:       startIdx,
		stop:        stopIdx,
	}

	if !ss.stopReachableFromStart() {
		return nil, fmt.Errorf("statespace.New: %w", ErrStopUnreachable)
	}

	return ss, nil
}

// States returns the Indexer of states backing this StateSpace.
func (ss *StateSpace[S]) States() *indexer.Indexer[S] {
	return ss.states
}

// Transitions returns all Transitions, ordered by selfIndex. The returned
// slice is a copy; mutating it does not affect the StateSpace.
func (ss *StateSpace[S]) Transitions() []Transition {
	out := make([]Transition, len(ss.transitions))
	copy(out, ss.transitions)
	return out
}

// NumTransitions returns the dense transition count T, the width of a
// potential matrix row and the bound on forward-backward's per-position
// work.
func (ss *StateSpace[S]) NumTransitions() int {
	return len(ss.transitions)
}

// NumStates returns the dense state count S, the width of a node-marginal
// row.
func (ss *StateSpace[S]) NumStates() int {
	return ss.states.Size()
}

// TransitionFor returns the Transition for (from, to), or false if that
// edge is illegal under this StateSpace.
//
// Complexity: O(1).
func (ss *StateSpace[S]) TransitionFor(from, to int) (Transition, bool) {
	i, ok := ss.byPair[[2]int{from, to}]
	if !ok {
		return Transition{}, false
	}
	return ss.transitions[i], true
}

// TransitionsFrom returns the Transitions outgoing from state s, in
// selfIndex order.
func (ss *StateSpace[S]) TransitionsFrom(s int) []Transition {
	return ss.subset(ss.outgoing[s])
}

// TransitionsTo returns the Transitions incoming to state s, in selfIndex
// order.
func (ss *StateSpace[S]) TransitionsTo(s int) []Transition {
	return ss.subset(ss.incoming[s])
}

func (ss *StateSpace[S]) subset(idxs []int) []Transition {
	out := make([]Transition, len(idxs))
	for i, t := range idxs {
		out[i] = ss.transitions[t]
	}
	return out
}

// StartStateIndex returns the designated start state's index.
func (ss *StateSpace[S]) StartStateIndex() int {
	return ss.start
}

// StopStateIndex returns the designated stop state's index.
func (ss *StateSpace[S]) StopStateIndex() int {
	return ss.stop
}

// stopReachableFromStart runs a breadth-first sweep over outgoing edges
// from the start state. It exists only as a one-shot connectivity check
// performed once at construction, not as a general traversal API.
func (ss *StateSpace[S]) stopReachableFromStart() bool {
	visited := make([]bool, ss.NumStates())
	queue := []int{ss.start}
	visited[ss.start] = true

	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if s == ss.stop {
			return true
		}
		for _, t := range ss.outgoing[s] {
			if !visited[ss.transitions[t].To] {
				visited[ss.transitions[t].To] = true
				queue = append(queue, ss.transitions[t].To)
			}
		}
	}

	return visited[ss.stop]
}
