package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/crfchain/crfcore/indexer"
	"github.com/crfchain/crfcore/statespace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoStateChain(t *testing.T) *statespace.StateSpace[string] {
	t.Helper()
	states := indexer.Of([]string{"START", "A", "STOP"})
	pairs := []statespace.Pair[string]{
		{From: "START", To: "A"},
		{From: "A", To: "A"},
		{From: "A", To: "STOP"},
	}
	ss, err := statespace.New(states, pairs, "START", "STOP")
	require.NoError(t, err)
	return ss
}

func writeDataset(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "train.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadDataset_ResolvesGoldLabelsAndInfersWidth(t *testing.T) {
	ss := twoStateChain(t)
	path := writeDataset(t, `[
		{
			"nodePredicates": [[], [{"index": 2, "value": 1.0}], []],
			"edgePredicates": [[], []],
			"goldLabels": ["START", "A", "STOP"]
		}
	]`)

	examples, numNode, numEdge, err := loadDataset(path, ss)
	require.NoError(t, err)

	require.Len(t, examples, 1)
	assert.Equal(t, 3, examples[0].Len())
	assert.Equal(t, []int{ss.StartStateIndex(), ss.States().IndexOf("A"), ss.StopStateIndex()}, examples[0].GoldLabels)
	// widest node predicate index seen is 2, so width must cover indices 0..2.
	assert.Equal(t, 3, numNode)
	assert.Equal(t, 0, numEdge)
}

func TestLoadDataset_UnknownGoldLabel(t *testing.T) {
	ss := twoStateChain(t)
	path := writeDataset(t, `[
		{
			"nodePredicates": [[], [], []],
			"edgePredicates": [[], []],
			"goldLabels": ["START", "NOT_A_STATE", "STOP"]
		}
	]`)

	_, _, _, err := loadDataset(path, ss)
	assert.Error(t, err)
}

func TestLoadDataset_MissingFile(t *testing.T) {
	ss := twoStateChain(t)
	_, _, _, err := loadDataset(filepath.Join(t.TempDir(), "missing.json"), ss)
	assert.Error(t, err)
}
