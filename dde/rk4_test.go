package dde

import (
	"math"
	"testing"

	"github.com/gonum/matrix/mat64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scalarDelay integrates dv/dt = -v(t-1) with v(t)=1 for t<=0. The exact
// solution is v(t)=1-t on [0,1] and v(t)=1-t+(t-1)^2/2 on [1,2].
type scalarDelay struct {
	v     []float64
	stopT float64
}

func (s *scalarDelay) GetState() []float64 {
	return []float64{s.v[0]}
}

func (s *scalarDelay) SetState(t float64, v []float64) {
	s.v[0] = v[0]
}

func (s *scalarDelay) Stop(t float64) bool {
	return t >= s.stopT-1e-9
}

func (s *scalarDelay) Lags() []float64 {
	return []float64{1}
}

func (s *scalarDelay) History(t float64) []float64 {
	return []float64{1}
}

func (s *scalarDelay) Func(t float64, v []float64, z *mat64.Dense) []float64 {
	return []float64{-z.At(0, 0)}
}

func TestRK4ScalarDelay(t *testing.T) {
	sys := &scalarDelay{v: []float64{1}, stopT: 2}
	iters, lastX, err := NewRK4(0, 0.25, sys).Solve()
	require.NoError(t, err)
	assert.Equal(t, uint64(8), iters)
	assert.InDelta(t, 2.0, lastX, 1e-9)
	// v(2) = 1 - 2 + 1/2 = -0.5
	assert.InDelta(t, -0.5, sys.v[0], 1e-6)
}

func TestRK4ZeroLagUsesStageState(t *testing.T) {
	// With a zero lag the history column must carry the current stage state,
	// so dv/dt = -v(t) integrates to exponential decay.
	sys := &zeroLag{v: []float64{1}, stopT: 1}
	_, _, err := NewRK4(0, 0.05, sys).Solve()
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-1), sys.v[0], 1e-6)
}

type zeroLag struct {
	v     []float64
	stopT float64
}

func (s *zeroLag) GetState() []float64             { return []float64{s.v[0]} }
func (s *zeroLag) SetState(t float64, v []float64) { s.v[0] = v[0] }
func (s *zeroLag) Stop(t float64) bool             { return t >= s.stopT-1e-9 }
func (s *zeroLag) Lags() []float64                 { return []float64{0} }
func (s *zeroLag) History(t float64) []float64     { return []float64{1} }
func (s *zeroLag) Func(t float64, v []float64, z *mat64.Dense) []float64 {
	return []float64{-z.At(0, 0)}
}

func TestNewRK4Validation(t *testing.T) {
	sys := &scalarDelay{v: []float64{1}, stopT: 1}
	assert.Panics(t, func() { NewRK4(0, 0, sys) })
	assert.Panics(t, func() { NewRK4(0, 0.1, nil) })
	// A nonzero lag below the step size cannot be resolved by this driver.
	assert.Panics(t, func() { NewRK4(0, 2, sys) })
	assert.Panics(t, func() { NewRK4(0, 0.1, &negLag{}) })
}

type negLag struct{ scalarDelay }

func (s *negLag) Lags() []float64 { return []float64{-0.5} }

func TestLookupInterpolation(t *testing.T) {
	r := &RK4{X0: 0, StepSize: 1, Integrator: &scalarDelay{v: []float64{0}}}
	r.times = []float64{0, 1, 2}
	r.states = [][]float64{{0}, {10}, {30}}
	assert.InDelta(t, 5.0, r.lookup(0.5)[0], 1e-12)
	assert.InDelta(t, 25.0, r.lookup(1.75)[0], 1e-12)
	assert.InDelta(t, 30.0, r.lookup(2.5)[0], 1e-12, "beyond the grid clamps to the last state")
	assert.InDelta(t, 1.0, r.lookup(-3)[0], 1e-12, "before x0 defers to the integrable history")
}
