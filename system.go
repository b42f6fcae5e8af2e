package bdtoolkit

import "github.com/gonum/matrix/mat64"

/* Solver-facing system descriptors. The numeric record and the display
metadata are deliberately separate: the host GUI consumes Display, the
solver consumes everything else, and neither needs the other. */

// VectorField is the right-hand side of an ODE: given time and state it
// returns a newly allocated derivative vector.
type VectorField func(t float64, v []float64) []float64

// DelayVectorField is the right-hand side of a DDE: z is the solver's
// history block holding one full state vector per declared lag.
type DelayVectorField func(t float64, v []float64, z *mat64.Dense) []float64

// System bundles a model's numeric parameters with its evolution function.
// Exactly one of Field and DelayField is set; Lags is empty for plain ODE
// systems.
type System struct {
	Name         string
	Size         int
	InitialState []float64
	Field        VectorField
	DelayField   DelayVectorField
	Lags         []float64
	Display      *Display // optional, host GUI only
}

// Delayed reports whether this system needs a delay-aware solver.
func (s *System) Delayed() bool {
	return s.DelayField != nil
}

// Display holds presentation metadata for the host GUI. It carries no
// computational contract.
type Display struct {
	PanelTitle string   `json:"panelTitle"`
	Equations  []string `json:"equations,omitempty"`
	Solver     string   `json:"solver,omitempty"`
}
