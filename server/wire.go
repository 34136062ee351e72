package server

import "github.com/crfchain/crfcore/objective"

// WirePredicate is the JSON wire form of objective.Predicate.
type WirePredicate struct {
	Index int     `json:"index"`
	Value float64 `json:"value"`
}

// TagRequest is the JSON body POST /tag and each /tag/stream message
// expects: one predicate-iterator slice per position (NodePredicates,
// length L) and one per transition gap (EdgePredicates, length L-1), plus
// a decode Mode ("viterbi" or "maxtoken", defaulting to "viterbi" if
// empty).
type TagRequest struct {
	NodePredicates [][]WirePredicate `json:"nodePredicates"`
	EdgePredicates [][]WirePredicate `json:"edgePredicates"`
	Mode           string            `json:"mode"`
}

// TagResponse is the JSON response body: the decoded state index
// sequence, including the leading start state and trailing stop state.
type TagResponse struct {
	Path []int `json:"path"`
}

// toIndexedExample converts the wire predicate slices into an
// objective.IndexedExample backed by objective.SlicePredicates.
func (req *TagRequest) toIndexedExample() *objective.IndexedExample {
	ex := &objective.IndexedExample{
		NodePredicates: make([]objective.PredicateIterator, len(req.NodePredicates)),
		EdgePredicates: make([]objective.PredicateIterator, len(req.EdgePredicates)),
	}
	for i, ps := range req.NodePredicates {
		ex.NodePredicates[i] = objective.NewSlicePredicates(toPredicates(ps))
	}
	for i, ps := range req.EdgePredicates {
		ex.EdgePredicates[i] = objective.NewSlicePredicates(toPredicates(ps))
	}
	return ex
}

func toPredicates(ps []WirePredicate) []objective.Predicate {
	out := make([]objective.Predicate, len(ps))
	for i, p := range ps {
		out[i] = objective.Predicate{Index: p.Index, Value: p.Value}
	}
	return out
}
