package notation

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSMF(t *testing.T) {
	notes := interpretSource(t, "C3:v80 D3/2 [E3 G3]*2; R G2 A2")

	var buf bytes.Buffer
	err := WriteSMF(&buf, notes, 120)
	require.NoError(t, err)

	data := buf.Bytes()
	require.Greater(t, len(data), 14)
	assert.Equal(t, []byte("MThd"), data[:4], "SMF header chunk")
	assert.Contains(t, string(data), "MTrk", "at least one track chunk")
}

func TestWriteSMF_NoNotes(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSMF(&buf, nil, 120)
	require.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestWriteSMF_DefaultsBPM(t *testing.T) {
	notes := interpretSource(t, "C3")

	var buf bytes.Buffer
	err := WriteSMF(&buf, notes, 0)
	require.NoError(t, err)
	assert.NotZero(t, buf.Len())
}
