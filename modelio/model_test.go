package modelio_test

import (
	"bytes"
	"testing"

	"github.com/crfchain/crfcore/modelio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	want := modelio.Weights{
		NumNodePredicates: 3,
		NumEdgePredicates: 2,
		Theta:             []float64{0.5, -1.25, 0, 3.0, -0.001},
	}

	var buf bytes.Buffer
	require.NoError(t, modelio.Save(&buf, want))

	got, err := modelio.Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoad_VersionMismatch(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0x00, 0x03, '9', '.', '9'})

	_, err := modelio.Load(&buf)
	assert.ErrorIs(t, err, modelio.ErrVersionMismatch)
}

func TestSaveLoad_EmptyTheta(t *testing.T) {
	want := modelio.Weights{NumNodePredicates: 0, NumEdgePredicates: 0, Theta: []float64{}}

	var buf bytes.Buffer
	require.NoError(t, modelio.Save(&buf, want))

	got, err := modelio.Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, 0, len(got.Theta))
}
