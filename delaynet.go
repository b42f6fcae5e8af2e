package bdtoolkit

import (
	"fmt"
	"math/rand"

	"github.com/gonum/matrix/mat64"
)

// DelayNet defines a firing-rate network of n neurons whose n² connections
// each carry an independent transmission delay:
//
//	dV_i/dt = (-V_i + sigmoid(a*Σ_j K[i,j]*Vij[i,j] + I_i)) / tau
//
// where Vij[i,j] is the potential carried by connection (i,j) evaluated
// D[i,j] time units in the past. The delayed values are supplied by the
// solver through a lag-grouped history block, see LaggedValues.
type DelayNet struct {
	K   *mat64.Dense  // coupling strength from neuron j to neuron i
	D   *mat64.Dense  // transmission delay for connection (i,j), time units, >= 0
	I   *mat64.Vector // constant injection current per neuron
	A   float64       // coupling gain
	Tau float64       // membrane time constant
	V0  []float64     // initial potentials, also the pre-history state
}

// NewDelayNet returns a delayed network with the provided parameters.
// K and D must be square with matching dimensions; I and v0 must match.
func NewDelayNet(K, D *mat64.Dense, I *mat64.Vector, a, tau float64, v0 []float64) *DelayNet {
	r, c := K.Dims()
	if r != c {
		panic(fmt.Errorf("bdtoolkit: coupling matrix is %dx%d, must be square", r, c))
	}
	if dr, dc := D.Dims(); dr != r || dc != r {
		panic(fmt.Errorf("bdtoolkit: delay matrix is %dx%d, coupling expects %dx%d", dr, dc, r, r))
	}
	if I.Len() != r {
		panic(fmt.Errorf("bdtoolkit: injection current has %d entries, coupling expects %d", I.Len(), r))
	}
	if len(v0) != r {
		panic(fmt.Errorf("bdtoolkit: initial state has %d entries, coupling expects %d", len(v0), r))
	}
	return &DelayNet{K: K, D: D, I: I, A: a, Tau: tau, V0: v0}
}

// NewRandomDelayNet returns a delayed network of n neurons with a symmetric
// random coupling matrix, random nonnegative lags, Gaussian random injection
// currents, a=1/n, tau=10 and random initial potentials. Pass a nil rng for
// a time-seeded source.
func NewRandomDelayNet(n int, rng *rand.Rand) *DelayNet {
	rng = newRand(rng)
	v0 := make([]float64, n)
	for i := range v0 {
		v0[i] = rng.Float64()
	}
	return NewDelayNet(symRandMat(n, rng), nonNegRandMat(n, 1, rng), randVec(n, rng), 1/float64(n), 10, v0)
}

// Size returns the number of neurons.
func (d *DelayNet) Size() int {
	n, _ := d.K.Dims()
	return n
}

// Lags returns the declared lag set: the delay matrix flattened column by
// column, one lag per ordered connection pair. The solver evaluates one full
// history vector per entry, in this exact order; LaggedValues depends on it.
func (d *DelayNet) Lags() []float64 {
	n := d.Size()
	lags := make([]float64, n*n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			lags[j*n+i] = d.D.At(i, j)
		}
	}
	return lags
}

// History returns the network state before the start of the integration.
func (d *DelayNet) History(t float64) []float64 {
	v := make([]float64, len(d.V0))
	copy(v, d.V0)
	return v
}

// LaggedValues extracts the per-connection lagged potentials from a solver
// history block. The block z holds n² columns of n entries each: column k is
// the full state evaluated at the k-th declared lag (see Lags). Grouping the
// columns into n consecutive n×n blocks, the value carried by connection
// (i, zi) sits on the diagonal of block zi, because lag index zi*n+i is
// where D[i, zi] landed in the column-major flattening. Column zi of the
// returned matrix is therefore the diagonal of block zi. This pairing must
// not be reordered: any other extraction silently scrambles which delay
// applies to which connection.
func LaggedValues(z *mat64.Dense) *mat64.Dense {
	n, c := z.Dims()
	if c != n*n {
		panic(fmt.Errorf("bdtoolkit: history block is %dx%d, want %dx%d", n, c, n, n*n))
	}
	vij := mat64.NewDense(n, n, nil)
	for zi := 0; zi < n; zi++ {
		for i := 0; i < n; i++ {
			vij.Set(i, zi, z.At(i, zi*n+i))
		}
	}
	return vij
}

// Func is the vector field of the delayed network. v holds the current
// potentials and z the solver's history block for the declared lag set; the
// returned derivative vector is newly allocated. The system is autonomous,
// so t is unused.
func (d *DelayNet) Func(t float64, v []float64, z *mat64.Dense) []float64 {
	n := d.Size()
	if len(v) != n {
		panic(fmt.Errorf("bdtoolkit: state has %d entries, coupling expects %d", len(v), n))
	}
	vij := LaggedValues(z)
	if r, _ := vij.Dims(); r != n {
		panic(fmt.Errorf("bdtoolkit: history block is for %d neurons, coupling expects %d", r, n))
	}
	dv := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < n; j++ {
			sum += d.K.At(i, j) * vij.At(i, j)
		}
		dv[i] = (-v[i] + sigmoid(d.A*sum+d.I.At(i, 0))) / d.Tau
	}
	return dv
}

// System returns the solver-facing descriptor of this network.
func (d *DelayNet) System() *System {
	return &System{
		Name:         "NeuralNetDDE",
		Size:         d.Size(),
		InitialState: d.History(0),
		DelayField:   d.Func,
		Lags:         d.Lags(),
		Display: &Display{
			PanelTitle: "Delayed Neural Network",
			Equations:  []string{`\dot{V_i} = \frac{-V_i + \sigma(a \sum_j K_{ij} V_j(t - D_{ij}) + I_i)}{\tau}`},
			Solver:     "dde-rk4",
		},
	}
}
