// Package dde implements a fixed-step Runge-Kutta driver for delay
// differential equations with a finite set of constant lags.
package dde

import "github.com/gonum/matrix/mat64"

// Integrable defines something which can be integrated under delays, i.e.
// has a state vector and a history.
// WARNING: Implementation must manage its own state based on the time.
type Integrable interface {
	// GetState gets the latest state of this integrable.
	GetState() []float64
	// SetState sets the state s at time t.
	SetState(t float64, s []float64)
	// Stop returns whether to stop the integration at time t.
	Stop(t float64) bool
	// Lags declares the lag set, one entry per history column.
	Lags() []float64
	// History returns the state at a time t <= x0, before the integration started.
	History(t float64) []float64
	// Func is the DDE function from time t, state s and history block z; it
	// must return a new derivative vector.
	Func(t float64, s []float64, z *mat64.Dense) []float64
}
