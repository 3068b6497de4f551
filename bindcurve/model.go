package bindcurve

// Curve is one traced series: equal-length x and y coordinates plus a display
// name. Immutable once recorded.
type Curve struct {
	ID   uint64    `yaml:"id"`
	Name string    `yaml:"name"`
	X    []float64 `yaml:"x"`
	Y    []float64 `yaml:"y"`
}

// ScatterSeries is an overlay of observed data points.
type ScatterSeries struct {
	X []float64 `yaml:"x"`
	Y []float64 `yaml:"y"`
}

type Storage interface {
	Save(key string, curves []*Curve) error
	Load(key string) (curves []*Curve, err error)
}

// FitStdErrs maps fitted parameter names to estimated standard errors; an
// entry is nil when the minimizer could not estimate it.
type FitStdErrs map[string]*float64
