package bindsys

import (
	"math"
)

// NewOneToOne returns the analytical 1:1 binding system: P + L <-> PL with
// dissociation constant kdpl. The implicit readout is the complex pl.
func NewOneToOne() System {
	return &oneToOneAnalytical{}
}

type oneToOneAnalytical struct {
}

func (sys *oneToOneAnalytical) Analytical() bool {
	return true
}

func (sys *oneToOneAnalytical) Arguments() []string {
	return []string{"p", "l", "kdpl"}
}

func (sys *oneToOneAnalytical) Readouts() []string {
	return []string{"pl"}
}

func (sys *oneToOneAnalytical) DefaultReadout() string {
	return "pl"
}

func (sys *oneToOneAnalytical) Query(params Params) (ys []float64, err error) {
	return sweepEval(params, sys.Arguments(), func(vals map[string]float64) (float64, error) {
		p, l, kd := vals["p"], vals["l"], vals["kdpl"]

		s := p + l + kd

		return (s - math.Sqrt(clampNonNegative(s*s-4*p*l))) / 2, nil
	})
}

func (sys *oneToOneAnalytical) QueryReadout(params Params, _ string) (ys []float64, err error) {
	// The readout of an analytical system is implicit in its equations.
	return sys.Query(params)
}

// NewHomodimerFormation returns the analytical homodimer formation system:
// P + P <-> PP with dissociation constant kdpp. The implicit readout is the
// dimer pp.
func NewHomodimerFormation() System {
	return &homodimerAnalytical{}
}

type homodimerAnalytical struct {
}

func (sys *homodimerAnalytical) Analytical() bool {
	return true
}

func (sys *homodimerAnalytical) Arguments() []string {
	return []string{"p", "kdpp"}
}

func (sys *homodimerAnalytical) Readouts() []string {
	return []string{"pp"}
}

func (sys *homodimerAnalytical) DefaultReadout() string {
	return "pp"
}

func (sys *homodimerAnalytical) Query(params Params) (ys []float64, err error) {
	return sweepEval(params, sys.Arguments(), func(vals map[string]float64) (float64, error) {
		p, kd := vals["p"], vals["kdpp"]

		// Kd*pp = (p - 2pp)^2, taking the physical root.
		s := 4*p + kd

		return (s - math.Sqrt(clampNonNegative(s*s-16*p*p))) / 8, nil
	})
}

func (sys *homodimerAnalytical) QueryReadout(params Params, _ string) (ys []float64, err error) {
	return sys.Query(params)
}

func clampNonNegative(d float64) float64 {
	if d < 0 {
		return 0
	}

	return d
}
