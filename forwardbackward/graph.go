package forwardbackward

import "github.com/crfchain/crfcore/statespace"

// Graph is the subset of statespace.StateSpace[S] the kernel needs. It is
// defined independently of the state element type S so the numerical core
// never touches S, only the dense integer indices a StateSpace assigns it.
//
// Every *statespace.StateSpace[S], for any comparable S, satisfies Graph.
type Graph interface {
	NumStates() int
	NumTransitions() int
	StartStateIndex() int
	StopStateIndex() int
	TransitionsFrom(s int) []statespace.Transition
	TransitionsTo(s int) []statespace.Transition
	Transitions() []statespace.Transition
}
