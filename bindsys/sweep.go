package bindsys

import (
	"sort"
	"strings"
)

// sweepEval drives a scalar evaluator across the single changing parameter,
// producing one y per swept value. With no changing parameter a single value
// is produced; more than one changing parameter is a caller error.
func sweepEval(params Params, args []string, eval func(vals map[string]float64) (float64, error)) (ys []float64, err error) {
	var missing []string

	for _, arg := range args {
		if !params.Has(arg) {
			missing = append(missing, arg)
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)

		err = &MissingParametersError{Names: missing}

		return
	}

	changing := params.ChangingParameters()
	if len(changing) > 1 {
		err = ErrInvalidSweep

		return
	}

	vals := make(map[string]float64, len(args))

	sweptArg := ""

	for _, arg := range args {
		if len(changing) == 1 && strings.EqualFold(changing[0], arg) {
			sweptArg = arg

			continue
		}

		vals[arg], err = params.Float(arg)
		if err != nil {
			return
		}
	}

	if len(changing) == 1 && sweptArg == "" {
		// The sequence sits on a parameter the system does not use.
		err = ErrInvalidSweep

		return
	}

	if sweptArg == "" {
		var y float64

		y, err = eval(vals)
		if err != nil {
			return
		}

		ys = []float64{y}

		return
	}

	xs, err := params.Floats(sweptArg)
	if err != nil {
		return
	}

	ys = make([]float64, len(xs))

	for idx, x := range xs {
		vals[sweptArg] = x

		ys[idx], err = eval(vals)
		if err != nil {
			return
		}
	}

	return
}
