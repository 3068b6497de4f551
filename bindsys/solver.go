package bindsys

import (
	"math"
)

const (
	steadyStateTol = 1e-9
	steadyMaxSteps = 5000000
)

// solveSteadyState integrates ds/dt = deriv(s) from the zero state with
// fixed-step RK4 until the derivative vanishes relative to the state.
func solveSteadyState(dim int, dt float64, deriv func(s, ds []float64)) (s []float64, err error) {
	s = make([]float64, dim)

	k1 := make([]float64, dim)
	k2 := make([]float64, dim)
	k3 := make([]float64, dim)
	k4 := make([]float64, dim)
	tmp := make([]float64, dim)

	for step := 0; step < steadyMaxSteps; step++ {
		deriv(s, k1)

		if converged(s, k1) {
			return
		}

		if diverged(s) {
			err = ErrNotConverged

			return
		}

		for i := range tmp {
			tmp[i] = s[i] + dt/2*k1[i]
		}

		deriv(tmp, k2)

		for i := range tmp {
			tmp[i] = s[i] + dt/2*k2[i]
		}

		deriv(tmp, k3)

		for i := range tmp {
			tmp[i] = s[i] + dt*k3[i]
		}

		deriv(tmp, k4)

		for i := range s {
			s[i] += dt / 6 * (k1[i] + 2*k2[i] + 2*k3[i] + k4[i])
		}
	}

	err = ErrNotConverged

	return
}

// diverged catches unphysical rate constants (for example a negative Kd
// probed by a fitter) before the state runs away.
func diverged(s []float64) bool {
	for i := range s {
		if math.IsNaN(s[i]) || math.Abs(s[i]) > 1e15 {
			return true
		}
	}

	return false
}

func converged(s, ds []float64) bool {
	var sMax, dsMax float64

	for i := range s {
		sMax = math.Max(sMax, math.Abs(s[i]))
		dsMax = math.Max(dsMax, math.Abs(ds[i]))
	}

	return dsMax <= steadyStateTol*(1+sMax)
}
