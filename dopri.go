package bdtoolkit

import (
	"fmt"

	"github.com/ready-steady/ode/dopri"
)

// RelaxUntil propagates the network with the adaptive Dormand-Prince
// integrator instead of the fixed-step RK4, returning one state row per
// requested time. times must be increasing and start at the initial time of
// v0.
func (h *HopfieldNet) RelaxUntil(v0 []float64, times []float64) ([][]float64, error) {
	n := h.Size()
	if len(v0) != n {
		return nil, fmt.Errorf("bdtoolkit: initial state has %d entries, network expects %d", len(v0), n)
	}
	if len(times) < 2 {
		return nil, fmt.Errorf("bdtoolkit: need at least two time points, got %d", len(times))
	}
	integrator, err := dopri.New(dopri.DefaultConfig())
	if err != nil {
		return nil, err
	}
	values, _, err := integrator.Compute(func(x float64, v, f []float64) {
		copy(f, h.Func(x, v))
	}, v0, times)
	if err != nil {
		return nil, err
	}
	states := make([][]float64, len(times))
	for k := range times {
		states[k] = values[k*n : (k+1)*n : (k+1)*n]
	}
	return states, nil
}
