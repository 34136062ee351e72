package indexer

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Sentinel errors returned by the indexer package.
var (
	// ErrOutOfRange indicates Get was called with an index outside [0, Size()).
	ErrOutOfRange = errors.New("indexer: index out of range")

	// ErrVersionMismatch indicates Load read a version tag that does not
	// match the version the caller expected.
	ErrVersionMismatch = errors.New("indexer: version mismatch")

	// ErrStringTooLong indicates an element's string form exceeds the
	// 16-bit length prefix used by the wire format.
	ErrStringTooLong = errors.New("indexer: string exceeds maximum encodable length")
)

// absentIndex is returned by IndexOf for a value not present in the
// Indexer. -1 is the only absence marker; callers must not treat this as
// if it were a valid index 0.
const absentIndex = -1

// Indexer is an immutable, build-once bijection between distinct values of
// T and dense integer indices in [0, Size()).
//
// Construct with Of; an Indexer is never mutated after that call returns.
type Indexer[T comparable] struct {
	values []T
	lookup map[T]int
}

// Of builds an Indexer from elements, which may contain duplicates. The
// first occurrence of each distinct value fixes its index; later
// occurrences are skipped. The result is immutable.
//
// Complexity: O(n) in len(elements).
func Of[T comparable](elements []T) *Indexer[T] {
	values := make([]T, 0, len(elements))
	lookup := make(map[T]int, len(elements))
	for _, e := range elements {
		if _, seen := lookup[e]; seen {
			continue
		}
		lookup[e] = len(values)
		values = append(values, e)
	}

	return &Indexer[T]{values: values, lookup: lookup}
}

// Size returns the number of distinct elements, i.e. the bound N such that
// indices span [0, N).
//
// Complexity: O(1).
func (ix *Indexer[T]) Size() int {
	return len(ix.values)
}

// Get returns the value at index i, or ErrOutOfRange if i is not in
// [0, Size()).
//
// Complexity: O(1).
func (ix *Indexer[T]) Get(i int) (T, error) {
	if i < 0 || i >= len(ix.values) {
		var zero T
		return zero, fmt.Errorf("indexer.Get(%d): %w", i, ErrOutOfRange)
	}

	return ix.values[i], nil
}

// MustGet is Get without an error return, for callers that have already
// validated i (e.g. loop bounds derived from Size()). It panics on an
// out-of-range index, signaling a programmer error rather than bad input.
//
// Complexity: O(1).
func (ix *Indexer[T]) MustGet(i int) T {
	v, err := ix.Get(i)
	if err != nil {
		panic(err)
	}

	return v
}

// IndexOf returns the index of x, or -1 if x is not present. Absence is
// never signaled by the zero value 0; -1 is the only absence marker.
//
// Complexity: O(1).
func (ix *Indexer[T]) IndexOf(x T) int {
	if i, ok := ix.lookup[x]; ok {
		return i
	}

	return absentIndex
}

// Contains reports whether x is present in the Indexer.
//
// Complexity: O(1).
func (ix *Indexer[T]) Contains(x T) bool {
	_, ok := ix.lookup[x]
	return ok
}

// All returns the elements in index order. The returned slice is a copy;
// mutating it does not affect the Indexer.
//
// Complexity: O(n).
func (ix *Indexer[T]) All() []T {
	out := make([]T, len(ix.values))
	copy(out, ix.values)
	return out
}

const wireVersion = "1.0"

// Save writes ix to w in the documented persistence format: a
// length-prefixed UTF-8 version tag, then a length-prefixed list of
// length-prefixed UTF-8 strings in index order. toString renders each
// element as its persisted string form.
//
// Non-string element types are persisted only through toString/fromString
// (see Load); round-tripping such types is the caller's responsibility.
func Save[T comparable](w io.Writer, ix *Indexer[T], toString func(T) string) error {
	bw := bufio.NewWriter(w)
	if err := writeUTF(bw, wireVersion); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.BigEndian, uint32(len(ix.values))); err != nil {
		return err
	}
	for _, v := range ix.values {
		if err := writeUTF(bw, toString(v)); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Load reads an Indexer back from r in the format written by Save.
// wantVersion must match the persisted version tag exactly, or
// ErrVersionMismatch is returned. fromString parses each persisted string
// back into T.
func Load[T comparable](r io.Reader, wantVersion string, fromString func(string) (T, error)) (*Indexer[T], error) {
	br := bufio.NewReader(r)
	gotVersion, err := readUTF(br)
	if err != nil {
		return nil, err
	}
	if gotVersion != wantVersion {
		return nil, fmt.Errorf("indexer.Load: tag %q, want %q: %w", gotVersion, wantVersion, ErrVersionMismatch)
	}

	var n uint32
	if err := binary.Read(br, binary.BigEndian, &n); err != nil {
		return nil, fmt.Errorf("indexer.Load: reading element count: %w", err)
	}

	elements := make([]T, 0, n)
	for i := uint32(0); i < n; i++ {
		s, err := readUTF(br)
		if err != nil {
			return nil, fmt.Errorf("indexer.Load: reading element %d: %w", i, err)
		}
		v, err := fromString(s)
		if err != nil {
			return nil, fmt.Errorf("indexer.Load: parsing element %d (%q): %w", i, s, err)
		}
		elements = append(elements, v)
	}

	return Of(elements), nil
}

// writeUTF writes s as a 16-bit big-endian length prefix followed by its
// UTF-8 bytes, mirroring the wire format's length-prefixed string shape.
func writeUTF(w io.Writer, s string) error {
	if len(s) > 0xFFFF {
		return fmt.Errorf("indexer: string of %d bytes: %w", len(s), ErrStringTooLong)
	}
	if err := binary.Write(w, binary.BigEndian, uint16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

// readUTF reads a string written by writeUTF.
func readUTF(r io.Reader) (string, error) {
	var n uint16
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}

	return string(buf), nil
}
