package bdtoolkit

import (
	"fmt"
	"math/rand"

	"github.com/gonum/matrix/mat64"
)

// HopfieldNet defines a continuous Hopfield network of n neurons whose
// potentials evolve as dV/dt = (-V + W*tanh(b*V) + I)/tau.
type HopfieldNet struct {
	W   *mat64.Dense  // synaptic weight from neuron j to neuron i
	I   *mat64.Vector // constant applied current per neuron
	B   float64       // activation slope
	Tau float64       // membrane time constant
}

// NewHopfieldNet returns a Hopfield network with the provided parameters.
// W must be square and I must match its dimension. Symmetry and a zero
// diagonal are conventions of the caller, not requirements.
func NewHopfieldNet(W *mat64.Dense, I *mat64.Vector, b, tau float64) *HopfieldNet {
	r, c := W.Dims()
	if r != c {
		panic(fmt.Errorf("bdtoolkit: weight matrix is %dx%d, must be square", r, c))
	}
	if I.Len() != r {
		panic(fmt.Errorf("bdtoolkit: applied current has %d entries, weights expect %d", I.Len(), r))
	}
	return &HopfieldNet{W: W, I: I, B: b, Tau: tau}
}

// NewRandomHopfieldNet returns a Hopfield network of n neurons with a
// symmetric random weight matrix, Gaussian random applied currents, b=1 and
// tau=10. Pass a nil rng for a time-seeded source.
func NewRandomHopfieldNet(n int, rng *rand.Rand) *HopfieldNet {
	rng = newRand(rng)
	return NewHopfieldNet(symRandMat(n, rng), randVec(n, rng), 1, 10)
}

// Size returns the number of neurons.
func (h *HopfieldNet) Size() int {
	n, _ := h.W.Dims()
	return n
}

// Func is the vector field of the network: given the current potentials it
// returns a newly allocated derivative vector. The system is autonomous, so
// t is unused.
func (h *HopfieldNet) Func(t float64, v []float64) []float64 {
	n := h.Size()
	if len(v) != n {
		panic(fmt.Errorf("bdtoolkit: state has %d entries, weights expect %d", len(v), n))
	}
	act := tanhVec(h.B, mat64.NewVector(n, v))
	coupled := mat64.NewVector(n, nil)
	coupled.MulVec(h.W, act)
	dv := make([]float64, n)
	for i := 0; i < n; i++ {
		dv[i] = (-v[i] + coupled.At(i, 0) + h.I.At(i, 0)) / h.Tau
	}
	return dv
}

// System returns the solver-facing descriptor of this network, starting from
// the given initial potentials.
func (h *HopfieldNet) System(v0 []float64) *System {
	n := h.Size()
	if len(v0) != n {
		panic(fmt.Errorf("bdtoolkit: initial state has %d entries, weights expect %d", len(v0), n))
	}
	return &System{
		Name:         "HopfieldNet",
		Size:         n,
		InitialState: v0,
		Field:        h.Func,
		Display: &Display{
			PanelTitle: "Hopfield Network",
			Equations:  []string{`\dot{V} = \frac{-V + W \tanh(b V) + I}{\tau}`},
			Solver:     "rk4",
		},
	}
}
