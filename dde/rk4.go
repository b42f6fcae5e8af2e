package dde

import (
	"fmt"
	"sort"

	"github.com/gonum/matrix/mat64"
)

// RK4 defines a fixed-step RK4 delay-differential driver. Past states are
// kept at every accepted step and looked up by linear interpolation when a
// lag falls between grid points. The step size must not exceed the smallest
// nonzero lag: stage evaluations then never need history ahead of the last
// accepted step (a zero lag always resolves to the current stage state).
type RK4 struct {
	X0         float64    // The initial x0.
	StepSize   float64    // The step size.
	Integrator Integrable // What is to be integrated.

	times  []float64
	states [][]float64
}

// NewRK4 returns a new RK4 delay driver instance.
func NewRK4(x0 float64, stepSize float64, inte Integrable) *RK4 {
	if stepSize <= 0 {
		panic("config StepSize must be positive")
	}
	if inte == nil {
		panic("config Integrator may not be nil")
	}
	for _, lag := range inte.Lags() {
		if lag < 0 {
			panic(fmt.Errorf("dde: negative lag %f declared", lag))
		}
		if lag > 0 && lag < stepSize {
			panic(fmt.Errorf("dde: lag %f is smaller than step size %f", lag, stepSize))
		}
	}
	return &RK4{X0: x0, StepSize: stepSize, Integrator: inte}
}

// Solve solves the configured delay RK4.
// Returns the number of iterations performed and the last X_i, or an error.
func (r *RK4) Solve() (uint64, float64, error) {
	const (
		half     = 1 / 2.0
		oneSixth = 1 / 6.0
		oneThird = 1 / 3.0
	)

	iterNum := uint64(0)
	xi := r.X0
	r.times = []float64{xi}
	r.states = [][]float64{r.Integrator.GetState()}
	for !r.Integrator.Stop(xi) {
		halfStep := r.StepSize * half
		state := r.Integrator.GetState()
		newState := make([]float64, len(state))
		k1 := make([]float64, len(state))
		k2 := make([]float64, len(state))
		k3 := make([]float64, len(state))
		k4 := make([]float64, len(state))
		tState := make([]float64, len(state))

		// Compute the k's, assembling a fresh history block per stage.
		for i, y := range r.Integrator.Func(xi, state, r.block(xi, state)) {
			k1[i] = y * r.StepSize
			tState[i] = state[i] + k1[i]*half
		}
		for i, y := range r.Integrator.Func(xi+halfStep, tState, r.block(xi+halfStep, tState)) {
			k2[i] = y * r.StepSize
			tState[i] = state[i] + k2[i]*half
		}
		for i, y := range r.Integrator.Func(xi+halfStep, tState, r.block(xi+halfStep, tState)) {
			k3[i] = y * r.StepSize
			tState[i] = state[i] + k3[i]
		}
		for i, y := range r.Integrator.Func(xi+r.StepSize, tState, r.block(xi+r.StepSize, tState)) {
			k4[i] = y * r.StepSize
			newState[i] = state[i] + oneSixth*(k1[i]+k4[i]) + oneThird*(k2[i]+k3[i])
		}
		xi += r.StepSize
		r.Integrator.SetState(xi, newState)
		r.times = append(r.times, xi)
		r.states = append(r.states, newState)

		iterNum++ // Don't forget to increment the number of iterations.
	}

	return iterNum, xi, nil
}

// block builds the history block for an evaluation at time t with stage
// state cur: one column per declared lag, each holding the full state at
// t minus that lag.
func (r *RK4) block(t float64, cur []float64) *mat64.Dense {
	lags := r.Integrator.Lags()
	n := len(cur)
	z := mat64.NewDense(n, len(lags), nil)
	for k, lag := range lags {
		var s []float64
		if lag == 0 {
			s = cur
		} else {
			s = r.lookup(t - lag)
		}
		for i := 0; i < n; i++ {
			z.Set(i, k, s[i])
		}
	}
	return z
}

// lookup returns the state at time t: the integrable's own history before
// x0, linear interpolation between accepted steps after, and the last
// accepted state for queries inside the current step.
func (r *RK4) lookup(t float64) []float64 {
	if t <= r.X0 {
		return r.Integrator.History(t)
	}
	last := len(r.times) - 1
	if t >= r.times[last] {
		return r.states[last]
	}
	hi := sort.SearchFloat64s(r.times, t)
	lo := hi - 1
	span := r.times[hi] - r.times[lo]
	w := (t - r.times[lo]) / span
	s := make([]float64, len(r.states[lo]))
	for i := range s {
		s[i] = (1-w)*r.states[lo][i] + w*r.states[hi][i]
	}
	return s
}
