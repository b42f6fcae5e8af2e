package bdtoolkit

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gonum/matrix/mat64"
)

/* Model-file loading. Matrices are stored as plain CSV, one row per line.
An empty path means the user aborted the selection: that is a "no model"
result, not an error. */

// LoadMatrix reads a numeric matrix from a CSV file. Relative paths resolve
// against the configured model directory. All rows must have the same number
// of columns.
func LoadMatrix(path string) (*mat64.Dense, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(bdConfig().modelDir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readMatrix(f)
}

// LoadMatrixChoice is LoadMatrix for a user-driven file selection: an empty
// path reports an aborted selection (nil matrix, ok=false, no error).
func LoadMatrixChoice(path string) (*mat64.Dense, bool, error) {
	if path == "" {
		return nil, false, nil
	}
	m, err := LoadMatrix(path)
	if err != nil {
		return nil, false, err
	}
	return m, true, nil
}

// LoadVector reads a length-n vector from a CSV file holding either a single
// row or a single column.
func LoadVector(path string) (*mat64.Vector, error) {
	m, err := LoadMatrix(path)
	if err != nil {
		return nil, err
	}
	r, c := m.Dims()
	switch {
	case c == 1:
		return mat64.NewVector(r, mat64.Col(nil, 0, m)), nil
	case r == 1:
		return mat64.NewVector(c, mat64.Row(nil, 0, m)), nil
	default:
		return nil, fmt.Errorf("bdtoolkit: %s holds a %dx%d matrix, want a vector", path, r, c)
	}
}

func readMatrix(r io.Reader) (*mat64.Dense, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	var data []float64
	rows, cols := 0, 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if cols == 0 {
			cols = len(record)
		} else if len(record) != cols {
			return nil, fmt.Errorf("bdtoolkit: row %d has %d columns, want %d", rows, len(record), cols)
		}
		for _, field := range record {
			val, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("bdtoolkit: row %d: %s", rows, err)
			}
			data = append(data, val)
		}
		rows++
	}
	if rows == 0 {
		return nil, fmt.Errorf("bdtoolkit: empty matrix file")
	}
	return mat64.NewDense(rows, cols, data), nil
}

// NewHopfieldNetFromFiles builds a Hopfield network from a weight-matrix file
// and an optional applied-current file. An empty weight path is an aborted
// selection and produces no model. With no current file, I is sampled at
// random for the loaded dimension.
func NewHopfieldNetFromFiles(wPath, iPath string, b, tau float64, rng *rand.Rand) (*HopfieldNet, bool, error) {
	W, ok, err := LoadMatrixChoice(wPath)
	if err != nil || !ok {
		return nil, false, err
	}
	n, _ := W.Dims()
	var I *mat64.Vector
	if iPath == "" {
		I = randVec(n, rng)
	} else if I, err = LoadVector(iPath); err != nil {
		return nil, false, err
	}
	return NewHopfieldNet(W, I, b, tau), true, nil
}
