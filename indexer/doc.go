// Package indexer provides Indexer[T], an immutable, build-once bijection
// between distinct values of T and dense integer indices in [0, N).
//
// An Indexer is built from a stream of elements that may contain
// duplicates; the first occurrence of each distinct element fixes its
// index. Once built, both directions (index→value, value→index) resolve
// in O(1) and the Indexer never changes shape again.
//
// Indexer is the naming primitive behind statespace.StateSpace: states are
// named by dense indices assigned by an Indexer (transitions get their own
// dense indices from statespace.New), so the numerical core never touches
// T directly, only ints.
//
// Persistence:
//
//	Save/Load implement a fixed wire format: a length-prefixed UTF-8
//	version tag, then a length-prefixed list of length-prefixed UTF-8
//	strings in index order.
//	Non-string element types round-trip only through a caller-supplied
//	stringify/parse pair (Save's toString and Load's fromString
//	arguments); see Save and Load.
package indexer
