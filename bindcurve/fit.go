package bindcurve

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/bindkit/libbinding/bindsys"
	"github.com/sgostarter/i/l"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// Fit adjusts the parameters named in toFit so the system's predicted curve
// matches observedY, starting from the supplied guesses. params must carry
// the swept x values as its single sequence-valued entry; xParam, when
// non-empty, names which parameter that must be. Bounds are optional
// (min, max) pairs per fitted parameter, ±Inf for one-sided.
//
// The caller's params are never mutated; the returned set is a copy with the
// fitted values merged in. Standard errors are estimated from the Jacobian at
// the optimum and are nil when it is singular there.
func (bc *BindingCurve) Fit(params bindsys.Params, toFit map[string]float64, observedY []float64,
	xParam, yParam string, bounds map[string][2]float64) (fitted bindsys.Params, stderrs FitStdErrs, err error) {
	if bc.system == nil {
		err = ErrNoSystem

		return
	}

	if len(toFit) == 0 {
		bc.logger.Error("nothing to fit, insert parameters to fit into the toFit map")

		err = ErrNothingToFit

		return
	}

	var missing []string

	for _, arg := range bc.system.Arguments() {
		if params.Has(arg) {
			continue
		}

		if _, ok := toFit[arg]; ok {
			continue
		}

		missing = append(missing, arg)
	}

	if len(missing) > 0 {
		sort.Strings(missing)

		bc.logger.WithFields(l.StringField("missing", strings.Join(missing, ", "))).
			Error("not all system parameters included in params or toFit")

		err = &bindsys.MissingParametersError{Names: missing}

		return
	}

	changing := params.ChangingParameters()
	if len(changing) != 1 || (xParam != "" && !strings.EqualFold(changing[0], xParam)) {
		err = ErrInvalidSweep

		return
	}

	defer watchSlow(bc.logger, "fit", time.Second*30)()

	names := make([]string, 0, len(toFit))

	for name := range toFit {
		names = append(names, name)
	}

	sort.Strings(names)

	transforms := make([]boundedTransform, len(names))
	x0 := make([]float64, len(names))

	for idx, name := range names {
		if b, ok := bounds[name]; ok {
			transforms[idx] = newBoundedTransform(b[0], b[1])
		} else {
			transforms[idx] = newBoundedTransform(math.Inf(-1), math.Inf(1))
		}

		x0[idx] = transforms[idx].internal(toFit[name])
	}

	residual := func(ext []float64) (rs []float64, err error) {
		working := params.Clone()

		for idx, name := range names {
			working.Set(name, ext[idx])
		}

		var ys []float64

		if bc.system.Analytical() {
			ys, err = bc.system.Query(working)
		} else {
			ys, err = bc.system.QueryReadout(working, strings.ToLower(yParam))
		}

		if err != nil {
			return
		}

		if len(ys) != len(observedY) {
			err = fmt.Errorf("predicted %d values for %d observations", len(ys), len(observedY))

			return
		}

		rs = make([]float64, len(ys))

		for idx := range ys {
			rs[idx] = ys[idx] - observedY[idx]
		}

		return
	}

	external := func(internal []float64) []float64 {
		ext := make([]float64, len(internal))

		for idx := range internal {
			ext[idx] = transforms[idx].external(internal[idx])
		}

		return ext
	}

	// Surface residual failures (wrong sweep, solver breakdown) before
	// handing the objective to the minimizer.
	_, err = residual(external(x0))
	if err != nil {
		return
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			rs, rErr := residual(external(x))
			if rErr != nil {
				return math.Inf(1)
			}

			return floats.Dot(rs, rs)
		},
	}

	result, err := optimize.Minimize(problem, x0, nil, &optimize.NelderMead{})
	if err != nil {
		err = fmt.Errorf("minimize: %w", err)

		return
	}

	best := external(result.X)

	fitted = params.Clone()

	for idx, name := range names {
		fitted.Set(name, best[idx])
	}

	stderrs = bc.estimateStdErrs(names, best, result.F, residual, len(observedY))

	return
}

// estimateStdErrs derives per-parameter standard errors from a forward
// finite-difference Jacobian of the residual at the optimum:
// cov = (J'J)^-1 * ssr/(n-p). A singular or undersized problem yields nil
// entries across the board.
func (bc *BindingCurve) estimateStdErrs(names []string, best []float64, ssr float64,
	residual func([]float64) ([]float64, error), nObs int) FitStdErrs {
	stderrs := make(FitStdErrs, len(names))

	for _, name := range names {
		stderrs[name] = nil
	}

	nParams := len(names)
	if nObs <= nParams {
		return stderrs
	}

	jacErr := false

	jac := mat.NewDense(nObs, nParams, nil)

	fd.Jacobian(jac, func(dst, x []float64) {
		rs, err := residual(x)
		if err != nil {
			jacErr = true

			for idx := range dst {
				dst[idx] = math.NaN()
			}

			return
		}

		copy(dst, rs)
	}, best, nil)

	if jacErr {
		return stderrs
	}

	var jtj mat.Dense

	jtj.Mul(jac.T(), jac)

	var cov mat.Dense

	err := cov.Inverse(&jtj)
	if err != nil {
		if _, conditioned := err.(mat.Condition); !conditioned {
			return stderrs
		}
	}

	sigma2 := ssr / float64(nObs-nParams)

	for idx, name := range names {
		v := cov.At(idx, idx) * sigma2
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}

		se := math.Sqrt(v)
		stderrs[name] = &se
	}

	return stderrs
}

// boundedTransform maps a bounded external parameter onto the unbounded
// internal axis the minimizer walks, the same sin/sqrt change of variables
// MINUIT-family fitters use.
type boundedTransform struct {
	min, max       float64
	hasMin, hasMax bool
}

func newBoundedTransform(min, max float64) boundedTransform {
	return boundedTransform{
		min:    min,
		max:    max,
		hasMin: !math.IsInf(min, -1),
		hasMax: !math.IsInf(max, 1),
	}
}

func (t boundedTransform) external(i float64) float64 {
	switch {
	case t.hasMin && t.hasMax:
		return t.min + (math.Sin(i)+1)*(t.max-t.min)/2
	case t.hasMin:
		return t.min - 1 + math.Sqrt(i*i+1)
	case t.hasMax:
		return t.max + 1 - math.Sqrt(i*i+1)
	}

	return i
}

func (t boundedTransform) internal(v float64) float64 {
	switch {
	case t.hasMin && t.hasMax:
		d := 2*(v-t.min)/(t.max-t.min) - 1

		return math.Asin(math.Max(-1, math.Min(1, d)))
	case t.hasMin:
		d := math.Max(v-t.min, 0) + 1

		return math.Sqrt(d*d - 1)
	case t.hasMax:
		d := math.Max(t.max-v, 0) + 1

		return math.Sqrt(d*d - 1)
	}

	return v
}
