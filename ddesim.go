package bdtoolkit

import (
	"fmt"
	"math"
	"os"

	kitlog "github.com/go-kit/kit/log"
	"github.com/gonum/matrix/mat64"

	"github.com/ihaqi/bdtoolkit/dde"
)

// DelaySimulation drives a delayed network through the fixed-step delay
// driver. It is the delay-aware counterpart of Simulation.
type DelaySimulation struct {
	Net                     *DelayNet
	V                       []float64 // current potentials
	StartT, StopT, CurrentT float64
	step                    float64
	stopChan                chan (bool)
	histChan                chan<- (State)
	logger                  kitlog.Logger
	done                    bool
}

// NewDelaySimulation returns a new DelaySimulation starting from the
// network's own initial potentials.
func NewDelaySimulation(net *DelayNet, start, end float64, step float64, conf ExportConfig) *DelaySimulation {
	var histChan chan (State)
	if !conf.IsUseless() {
		histChan = make(chan (State), 1000)
		wg.Add(1)
		go func() {
			defer wg.Done()
			StreamStates(conf, histChan)
		}()
	} else {
		histChan = nil
	}
	v := net.History(start)
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	klog = kitlog.With(klog, "subsys", "sim", "model", "delaynet")
	d := &DelaySimulation{net, v, start, end, start, step, make(chan (bool), 1), histChan, klog, false}
	if histChan != nil {
		histChan <- State{start, net.History(start)}
	}
	if end <= start {
		d.logger.Log("level", "warning", "message", "empty time span")
	}
	return d
}

// Propagate starts the propagation.
func (d *DelaySimulation) Propagate() {
	d.logger.Log("level", "info", "t", d.CurrentT, "V[0]", d.V[0])
	dde.NewRK4(d.StartT, d.step, d).Solve() // Blocking.
	d.done = true
	d.logger.Log("level", "notice", "status", "finished", "t", d.CurrentT)
	wg.Wait()
}

// StopPropagation is used to stop the propagation before it is completed.
func (d *DelaySimulation) StopPropagation() {
	d.stopChan <- true
}

// Stop implements the stop call of the delay driver.
func (d *DelaySimulation) Stop(t float64) bool {
	select {
	case <-d.stopChan:
		if d.histChan != nil {
			close(d.histChan)
		}
		return true
	default:
		if t >= d.StopT-d.step/2 {
			if d.histChan != nil {
				close(d.histChan)
			}
			return true
		}
	}
	return false
}

// GetState returns the potentials for the delay driver.
func (d *DelaySimulation) GetState() []float64 {
	v := make([]float64, len(d.V))
	copy(v, d.V)
	return v
}

// SetState sets the updated potentials at time t.
func (d *DelaySimulation) SetState(t float64, v []float64) {
	copy(d.V, v)
	d.CurrentT = t
	if d.histChan != nil {
		d.histChan <- State{t, d.GetState()}
	}
}

// Lags declares the per-connection lag set of the underlying network.
func (d *DelaySimulation) Lags() []float64 {
	return d.Net.Lags()
}

// History returns the pre-integration state of the underlying network.
func (d *DelaySimulation) History(t float64) []float64 {
	return d.Net.History(t)
}

// Func is the integration function, delegating to the network vector field.
func (d *DelaySimulation) Func(t float64, v []float64, z *mat64.Dense) []float64 {
	dv := d.Net.Func(t, v, z)
	for i := range dv {
		if math.IsNaN(dv[i]) {
			panic(fmt.Errorf("dV[%d]=NaN @ t=%f\nV=%+v", i, t, v))
		}
	}
	return dv
}
