package objective

// IndexedExample is an observation sequence already compiled into sparse
// feature activations; feature extraction from raw observations is out of
// this core's scope.
//
// NodePredicates has length L (one iterator per position); EdgePredicates
// has length L-1 (one iterator per transition-bearing gap between
// positions). GoldLabels has length L when the example is labeled, with
// GoldLabels[0] the start state index and GoldLabels[L-1] the stop state
// index; it is nil for an unlabeled example used only for tagging.
type IndexedExample struct {
	NodePredicates []PredicateIterator
	EdgePredicates []PredicateIterator
	GoldLabels     []int
}

// Len returns the sequence length L. A well-formed example has L >= 2:
// at least a start state and a stop state.
func (ex *IndexedExample) Len() int {
	return len(ex.NodePredicates)
}

// Labeled reports whether GoldLabels is present.
func (ex *IndexedExample) Labeled() bool {
	return ex.GoldLabels != nil
}
