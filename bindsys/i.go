package bindsys

// System is a binding equilibrium model: a set of named concentration and
// dissociation-constant arguments mapped to observable species readouts.
//
// Analytical systems carry a closed-form solution with a single implicit
// readout, reached through Query. Numerically solved systems track several
// species and must be asked for one through QueryReadout.
type System interface {
	Analytical() bool
	Arguments() []string
	Readouts() []string
	DefaultReadout() string

	Query(params Params) (ys []float64, err error)
	QueryReadout(params Params, readout string) (ys []float64, err error)
}
