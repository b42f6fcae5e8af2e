package bdtoolkit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadMatrix(t *testing.T) {
	path := writeTemp(t, "w.csv", "0, 1.5\n-2, 0\n")
	m, err := LoadMatrix(path)
	require.NoError(t, err)
	r, c := m.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 1.5, m.At(0, 1))
	assert.Equal(t, -2.0, m.At(1, 0))
}

func TestLoadMatrixMalformed(t *testing.T) {
	_, err := LoadMatrix(writeTemp(t, "bad.csv", "1,2\n3\n"))
	assert.Error(t, err)
	_, err = LoadMatrix(writeTemp(t, "nan.csv", "1,spam\n"))
	assert.Error(t, err)
	_, err = LoadMatrix(writeTemp(t, "empty.csv", ""))
	assert.Error(t, err)
	_, err = LoadMatrix(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestLoadMatrixChoiceAborted(t *testing.T) {
	// An empty path is an aborted selection: no model, no error.
	m, ok, err := LoadMatrixChoice("")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, m)
}

func TestLoadVector(t *testing.T) {
	v, err := LoadVector(writeTemp(t, "col.csv", "1\n2\n3\n"))
	require.NoError(t, err)
	require.Equal(t, 3, v.Len())
	assert.Equal(t, 2.0, v.At(1, 0))

	v, err = LoadVector(writeTemp(t, "row.csv", "4,5,6\n"))
	require.NoError(t, err)
	require.Equal(t, 3, v.Len())
	assert.Equal(t, 6.0, v.At(2, 0))

	_, err = LoadVector(writeTemp(t, "mat.csv", "1,2\n3,4\n"))
	assert.Error(t, err)
}

func TestNewHopfieldNetFromFiles(t *testing.T) {
	wPath := writeTemp(t, "w.csv", "0,1\n1,0\n")
	iPath := writeTemp(t, "i.csv", "0.5\n-0.5\n")
	net, ok, err := NewHopfieldNetFromFiles(wPath, iPath, 1, 10, nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, net.Size())
	assert.Equal(t, 0.5, net.I.At(0, 0))

	// Aborted selection produces no model, not an error.
	net, ok, err = NewHopfieldNetFromFiles("", iPath, 1, 10, nil)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, net)

	// A missing current file falls back to a random one of matching length.
	net, ok, err = NewHopfieldNetFromFiles(wPath, "", 1, 10, nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, net.I.Len())
}
