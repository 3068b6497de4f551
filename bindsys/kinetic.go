package bindsys

import (
	"strings"
)

// kineticSystem solves a mass-action rate system to steady state. The
// association rate constant is normalized to 1 so each dissociation constant
// doubles as its off-rate.
type kineticSystem struct {
	args           []string
	readouts       []string
	defaultReadout string
	dim            int

	deriv   func(vals map[string]float64, s, ds []float64)
	extract func(vals map[string]float64, s []float64, readout string) float64
}

func (sys *kineticSystem) Analytical() bool {
	return false
}

func (sys *kineticSystem) Arguments() []string {
	return sys.args
}

func (sys *kineticSystem) Readouts() []string {
	return sys.readouts
}

func (sys *kineticSystem) DefaultReadout() string {
	return sys.defaultReadout
}

func (sys *kineticSystem) Query(_ Params) (ys []float64, err error) {
	err = ErrMissingReadout

	return
}

func (sys *kineticSystem) QueryReadout(params Params, readout string) (ys []float64, err error) {
	if readout == "" {
		err = ErrMissingReadout

		return
	}

	readout = strings.ToLower(readout)

	known := false

	for _, r := range sys.readouts {
		if r == readout {
			known = true

			break
		}
	}

	if !known {
		err = ErrUnknownReadout

		return
	}

	return sweepEval(params, sys.args, func(vals map[string]float64) (float64, error) {
		s, err := solveSteadyState(sys.dim, sys.timeStep(vals), func(s, ds []float64) {
			sys.deriv(vals, s, ds)
		})
		if err != nil {
			return 0, err
		}

		return sys.extract(vals, s, readout), nil
	})
}

// timeStep picks a step small against the fastest rate in play.
func (sys *kineticSystem) timeStep(vals map[string]float64) float64 {
	rate := 1.0

	for _, v := range vals {
		if v > rate {
			rate = v
		}
	}

	return 0.1 / rate
}

// NewOneToOneKinetic returns the numerically solved 1:1 system. It tracks the
// free species alongside the complex, so pl, p and l are all valid readouts.
func NewOneToOneKinetic() System {
	return &kineticSystem{
		args:           []string{"p", "l", "kdpl"},
		readouts:       []string{"pl", "p", "l"},
		defaultReadout: "pl",
		dim:            1,
		deriv: func(vals map[string]float64, s, ds []float64) {
			pl := s[0]
			ds[0] = (vals["p"]-pl)*(vals["l"]-pl) - vals["kdpl"]*pl
		},
		extract: func(vals map[string]float64, s []float64, readout string) float64 {
			switch readout {
			case "p":
				return vals["p"] - s[0]
			case "l":
				return vals["l"] - s[0]
			}

			return s[0]
		},
	}
}

// NewHomodimerFormationKinetic returns the numerically solved homodimer
// formation system with readouts pp and p.
func NewHomodimerFormationKinetic() System {
	return &kineticSystem{
		args:           []string{"p", "kdpp"},
		readouts:       []string{"pp", "p"},
		defaultReadout: "pp",
		dim:            1,
		deriv: func(vals map[string]float64, s, ds []float64) {
			free := vals["p"] - 2*s[0]
			ds[0] = free*free - vals["kdpp"]*s[0]
		},
		extract: func(vals map[string]float64, s []float64, readout string) float64 {
			if readout == "p" {
				return vals["p"] - 2*s[0]
			}

			return s[0]
		},
	}
}

// NewCompetition returns the 1:1:1 competition system: P + L <-> PL and
// P + I <-> PI sharing the protein pool.
func NewCompetition() System {
	return &kineticSystem{
		args:           []string{"p", "l", "i", "kdpl", "kdpi"},
		readouts:       []string{"pl", "pi", "p", "l", "i"},
		defaultReadout: "pl",
		dim:            2,
		deriv: func(vals map[string]float64, s, ds []float64) {
			pl, pi := s[0], s[1]
			free := vals["p"] - pl - pi

			ds[0] = free*(vals["l"]-pl) - vals["kdpl"]*pl
			ds[1] = free*(vals["i"]-pi) - vals["kdpi"]*pi
		},
		extract: func(vals map[string]float64, s []float64, readout string) float64 {
			switch readout {
			case "pi":
				return s[1]
			case "p":
				return vals["p"] - s[0] - s[1]
			case "l":
				return vals["l"] - s[0]
			case "i":
				return vals["i"] - s[1]
			}

			return s[0]
		},
	}
}

// NewHomodimerBreaking returns the homodimer breaking system: P + P <-> PP
// with an inhibitor sequestering monomer through P + I <-> PI.
func NewHomodimerBreaking() System {
	return &kineticSystem{
		args:           []string{"p", "i", "kdpp", "kdpi"},
		readouts:       []string{"pp", "pi", "p", "i"},
		defaultReadout: "pp",
		dim:            2,
		deriv: func(vals map[string]float64, s, ds []float64) {
			pp, pi := s[0], s[1]
			free := vals["p"] - 2*pp - pi

			ds[0] = free*free - vals["kdpp"]*pp
			ds[1] = free*(vals["i"]-pi) - vals["kdpi"]*pi
		},
		extract: func(vals map[string]float64, s []float64, readout string) float64 {
			switch readout {
			case "pi":
				return s[1]
			case "p":
				return vals["p"] - 2*s[0] - s[1]
			case "i":
				return vals["i"] - s[1]
			}

			return s[0]
		},
	}
}
