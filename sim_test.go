package bdtoolkit

import (
	"math"
	"testing"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

func TestSimulationDecay(t *testing.T) {
	// With W=0 and I=0 each neuron decays as dV/dt = -V/tau.
	net := NewHopfieldNet(mat64.NewDense(1, 1, nil), mat64.NewVector(1, nil), 1, 1)
	sim := NewPreciseSimulation(net, []float64{1}, 0, 5, 0.01, ExportConfig{})
	sim.Propagate()
	if !floats.EqualWithinAbs(sim.V[0], math.Exp(-5), 1e-4) {
		t.Fatalf("V(5)=%f, want %f", sim.V[0], math.Exp(-5))
	}
}

func TestSimulationMismatchedInitialState(t *testing.T) {
	net := NewHopfieldNet(mat64.NewDense(2, 2, nil), mat64.NewVector(2, nil), 1, 10)
	assertPanic(t, func() { NewSimulation(net, []float64{0}, 0, 1, ExportConfig{}) })
}

func TestSimulationFuncPanicsOnNaN(t *testing.T) {
	net := NewHopfieldNet(mat64.NewDense(1, 1, nil), mat64.NewVector(1, nil), 1, 0)
	sim := NewPreciseSimulation(net, []float64{0}, 0, 1, 0.1, ExportConfig{})
	// tau=0 with a zero numerator yields 0/0 = NaN, which must fail loudly.
	assertPanic(t, func() { sim.Func(0, []float64{0}) })
}

func TestDelaySimulationEquilibrium(t *testing.T) {
	// With K=0 the delays are irrelevant and dV/dt = (-V + sigmoid(I))/tau,
	// so every neuron relaxes to sigmoid(0) = 0.5.
	n := 2
	D := mat64.NewDense(n, n, []float64{1, 1, 1, 1})
	net := NewDelayNet(mat64.NewDense(n, n, nil), D, mat64.NewVector(n, nil), 1, 1, make([]float64, n))
	sim := NewDelaySimulation(net, 0, 10, 0.5, ExportConfig{})
	sim.Propagate()
	for i := 0; i < n; i++ {
		if !floats.EqualWithinAbs(sim.V[i], 0.5, 1e-3) {
			t.Fatalf("V[%d]=%f, want 0.5", i, sim.V[i])
		}
	}
}

func TestSystemDescriptors(t *testing.T) {
	hop := NewRandomHopfieldNet(3, nil)
	sys := hop.System(make([]float64, 3))
	if sys.Delayed() {
		t.Fatal("Hopfield system must not require a delay solver")
	}
	if sys.Size != 3 || len(sys.InitialState) != 3 || sys.Field == nil {
		t.Fatalf("malformed descriptor %+v", sys)
	}

	del := NewRandomDelayNet(3, nil)
	dsys := del.System()
	if !dsys.Delayed() {
		t.Fatal("delayed system must require a delay solver")
	}
	if len(dsys.Lags) != 9 || dsys.DelayField == nil {
		t.Fatalf("malformed descriptor %+v", dsys)
	}
}
