package bdtoolkit

import (
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/ChristopherRabotin/ode"
	kitlog "github.com/go-kit/kit/log"
)

const (
	// StepSize is the default integration step, in model time units.
	StepSize = 0.1
)

var wg sync.WaitGroup

/* Handles the neural trajectory propagations. */

// Simulation drives a Hopfield network through the external fixed-step RK4
// integrator.
type Simulation struct {
	Net                     *HopfieldNet
	V                       []float64 // current potentials
	StartT, StopT, CurrentT float64
	step                    float64
	stopChan                chan (bool)
	histChan                chan<- (State)
	logger                  kitlog.Logger
	done                    bool
}

// NewSimulation is the same as NewPreciseSimulation with the default step size.
func NewSimulation(net *HopfieldNet, v0 []float64, start, end float64, conf ExportConfig) *Simulation {
	return NewPreciseSimulation(net, v0, start, end, StepSize, conf)
}

// NewPreciseSimulation returns a new Simulation instance with custom provided time step.
func NewPreciseSimulation(net *HopfieldNet, v0 []float64, start, end float64, step float64, conf ExportConfig) *Simulation {
	if len(v0) != net.Size() {
		panic(fmt.Errorf("bdtoolkit: initial state has %d entries, network expects %d", len(v0), net.Size()))
	}
	// If no filepath is provided, then no output will be written.
	var histChan chan (State)
	if !conf.IsUseless() {
		histChan = make(chan (State), 1000) // a 1k entry buffer
		wg.Add(1)
		go func() {
			defer wg.Done()
			StreamStates(conf, histChan)
		}()
	} else {
		histChan = nil
	}
	v := make([]float64, len(v0))
	copy(v, v0)
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	klog = kitlog.With(klog, "subsys", "sim", "model", "hopfield")
	s := &Simulation{net, v, start, end, start, step, make(chan (bool), 1), histChan, klog, false}
	// Write the first data point.
	if histChan != nil {
		histChan <- State{start, v}
	}
	if end <= start {
		s.logger.Log("level", "warning", "message", "empty time span")
	}
	return s
}

// LogStatus returns the status of the propagation.
func (s *Simulation) LogStatus() {
	s.logger.Log("level", "info", "t", s.CurrentT, "V[0]", s.V[0])
}

// PropagateUntil propagates until the given time is reached.
func (s *Simulation) PropagateUntil(t float64) {
	s.StopT = t
	s.Propagate()
}

// Propagate starts the propagation.
func (s *Simulation) Propagate() {
	// Add a ticker status report based on the duration of the simulation.
	s.LogStatus()
	ticker := time.NewTicker(10 * time.Second)
	go func() {
		for range ticker.C {
			if s.done {
				break
			}
			s.LogStatus()
		}
	}()
	ode.NewRK4(s.StartT, s.step, s).Solve() // Blocking.
	s.done = true
	ticker.Stop()
	s.logger.Log("level", "notice", "status", "finished", "t", s.CurrentT)
	wg.Wait() // Don't return until we're done writing all the files.
}

// StopPropagation is used to stop the propagation before it is completed.
func (s *Simulation) StopPropagation() {
	s.stopChan <- true
}

// Stop implements the stop call of the integrator. To stop the propagation, call StopPropagation().
func (s *Simulation) Stop(t float64) bool {
	select {
	case <-s.stopChan:
		if s.histChan != nil {
			close(s.histChan)
		}
		return true // Stop because there is a request to stop.
	default:
		s.CurrentT += s.step
		if s.CurrentT > s.StopT+s.step/2 {
			if s.histChan != nil {
				close(s.histChan)
			}
			return true // Stop, we've reached the end of the simulation.
		}
	}
	return false
}

// GetState returns the potentials for the integrator.
func (s *Simulation) GetState() []float64 {
	v := make([]float64, len(s.V))
	copy(v, s.V)
	return v
}

// SetState sets the updated potentials.
func (s *Simulation) SetState(t float64, v []float64) {
	copy(s.V, v)
	if s.histChan != nil {
		s.histChan <- State{s.CurrentT, s.GetState()}
	}
}

// Func is the integration function, delegating to the network vector field.
func (s *Simulation) Func(t float64, v []float64) []float64 {
	dv := s.Net.Func(t, v)
	for i := range dv {
		if math.IsNaN(dv[i]) {
			panic(fmt.Errorf("dV[%d]=NaN @ t=%f\nV=%+v", i, t, v))
		}
	}
	return dv
}

// State stores a propagated state.
type State struct {
	T float64
	V []float64
}
