package indexer_test

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/crfchain/crfcore/indexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOf_DedupesAndAssignsDenseIndices(t *testing.T) {
	ix := indexer.Of([]string{"A", "B", "A", "C", "B"})

	assert.Equal(t, 3, ix.Size())
	assert.Equal(t, []string{"A", "B", "C"}, ix.All())
}

func TestIndexer_RoundTrip(t *testing.T) {
	ix := indexer.Of([]string{"START", "A", "B", "STOP"})

	for i, want := range []string{"START", "A", "B", "STOP"} {
		got, err := ix.Get(i)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, i, ix.IndexOf(want))
	}
}

func TestIndexer_AbsentLookupReturnsNegativeOne(t *testing.T) {
	ix := indexer.Of([]string{"A", "B"})

	assert.Equal(t, -1, ix.IndexOf("Z"))
	assert.False(t, ix.Contains("Z"))
}

func TestIndexer_GetOutOfRange(t *testing.T) {
	ix := indexer.Of([]string{"A"})

	_, err := ix.Get(1)
	assert.ErrorIs(t, err, indexer.ErrOutOfRange)

	_, err = ix.Get(-1)
	assert.ErrorIs(t, err, indexer.ErrOutOfRange)
}

func TestSaveLoad_StringRoundTrip(t *testing.T) {
	ix := indexer.Of([]string{"START", "A", "B", "STOP"})

	var buf bytes.Buffer
	identity := func(s string) string { return s }
	require.NoError(t, indexer.Save(&buf, ix, identity))

	loaded, err := indexer.Load(&buf, "1.0", func(s string) (string, error) { return s, nil })
	require.NoError(t, err)
	assert.Equal(t, ix.All(), loaded.All())
}

func TestSaveLoad_NonStringElementViaStringify(t *testing.T) {
	ix := indexer.Of([]int{3, 1, 4, 1, 5})

	var buf bytes.Buffer
	toString := func(i int) string { return strconv.Itoa(i) }
	require.NoError(t, indexer.Save(&buf, ix, toString))

	fromString := func(s string) (int, error) { return strconv.Atoi(s) }
	loaded, err := indexer.Load(&buf, "1.0", fromString)
	require.NoError(t, err)
	assert.Equal(t, ix.All(), loaded.All())
}

func TestLoad_VersionMismatch(t *testing.T) {
	ix := indexer.Of([]string{"A"})
	var buf bytes.Buffer
	require.NoError(t, indexer.Save(&buf, ix, func(s string) string { return s }))

	_, err := indexer.Load(&buf, "2.0", func(s string) (string, error) { return s, nil })
	assert.ErrorIs(t, err, indexer.ErrVersionMismatch)
}
