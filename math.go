package bdtoolkit

import (
	"math"
	"math/rand"
	"time"

	"github.com/gonum/matrix/mat64"
	"github.com/gonum/stat/distmv"
)

// sigmoid returns the logistic function 1/(1+e^-x).
func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// tanhVec applies tanh(b*v) elementwise and returns a new vector.
func tanhVec(b float64, v *mat64.Vector) *mat64.Vector {
	r := mat64.NewVector(v.Len(), nil)
	for i := 0; i < v.Len(); i++ {
		r.SetVec(i, math.Tanh(b*v.At(i, 0)))
	}
	return r
}

// newRand returns rng itself, or a time-seeded source if rng is nil.
func newRand(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// symRandMat returns a symmetric n×n matrix with entries drawn uniformly from [-1, 1).
func symRandMat(n int, rng *rand.Rand) *mat64.Dense {
	rng = newRand(rng)
	m := mat64.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := 2*rng.Float64() - 1
			m.Set(i, j, v)
			m.Set(j, i, v)
		}
	}
	return m
}

// nonNegRandMat returns an n×n matrix with entries drawn uniformly from [0, scale).
func nonNegRandMat(n int, scale float64, rng *rand.Rand) *mat64.Dense {
	rng = newRand(rng)
	m := mat64.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			m.Set(i, j, scale*rng.Float64())
		}
	}
	return m
}

// randVec returns a length-n vector sampled from a standard multivariate Gaussian.
func randVec(n int, rng *rand.Rand) *mat64.Vector {
	rng = newRand(rng)
	sigma := mat64.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		sigma.SetSym(i, i, 1)
	}
	dist, ok := distmv.NewNormal(make([]float64, n), sigma, rng)
	if !ok {
		panic("NOK in Gaussian")
	}
	return mat64.NewVector(n, dist.Rand(nil))
}
