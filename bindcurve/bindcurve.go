package bindcurve

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/bindkit/libbinding/bindsys"
	"github.com/godruoyi/go-snowflake"
	"github.com/patrickmn/go-cache"
	"github.com/sgostarter/i/l"
)

// BindingCurve accumulates simulated binding curves and observed data points
// for one logical plot, and fits system parameters against observations.
//
// An instance is not safe for concurrent mutation and must not be re-entered
// from evaluator or fitter callbacks; build parallel plots on independent
// instances.
type BindingCurve struct {
	logger  l.Wrapper
	system  bindsys.System
	storage Storage

	queryCache *cache.Cache

	curves  []*Curve
	scatter []*ScatterSeries

	numAddedTraces int

	minX, maxX float64
	minY, maxY float64

	lastChangingParameter string
	lastReadout           string
}

func New(system bindsys.System, storage Storage, logger l.Wrapper) *BindingCurve {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "bindingCurve"))

	if system == nil {
		logger.Error("no system configured")
	}

	return &BindingCurve{
		logger:                logger,
		system:                system,
		storage:               storage,
		queryCache:            cache.New(time.Minute*5, time.Minute*10),
		lastChangingParameter: "X",
		lastReadout:           "Y",
	}
}

// NewWithName resolves a built-in system by name. An unrecognized name leaves
// the system unset; every operation on the result reports ErrNoSystem.
func NewWithName(name string, storage Storage, logger l.Wrapper) *BindingCurve {
	system, err := bindsys.FromName(name)
	if err != nil {
		if logger == nil {
			logger = l.NewNopLoggerWrapper()
		}

		logger.WithFields(l.ErrorField(err), l.StringField("name", name)).
			Error("invalid system specified, try one of: simple, homodimer, competition, homodimerbreaking")
	}

	return New(system, storage, logger)
}

func (bc *BindingCurve) System() bindsys.System {
	return bc.system
}

func (bc *BindingCurve) Curves() []*Curve {
	return bc.curves
}

// Query evaluates the configured system, memoizing results for repeated
// parameter sets. Fitting bypasses this cache.
func (bc *BindingCurve) Query(params bindsys.Params) (ys []float64, err error) {
	return bc.cachedQuery(params, "")
}

func (bc *BindingCurve) QueryReadout(params bindsys.Params, readout string) (ys []float64, err error) {
	return bc.cachedQuery(params, readout)
}

func (bc *BindingCurve) cachedQuery(params bindsys.Params, readout string) (ys []float64, err error) {
	if bc.system == nil {
		err = ErrNoSystem

		return
	}

	sig := querySignature(params, readout)

	if v, ok := bc.queryCache.Get(sig); ok {
		ys, _ = v.([]float64)

		return
	}

	if bc.system.Analytical() {
		ys, err = bc.system.Query(params)
	} else {
		ys, err = bc.system.QueryReadout(params, readout)
	}

	if err != nil {
		return
	}

	bc.queryCache.SetDefault(sig, ys)

	return
}

// AddCurve sweeps the single changing parameter through the system and
// records the resulting curve. All validation happens before any plot state
// is touched.
func (bc *BindingCurve) AddCurve(params bindsys.Params, readout, curveName string) (c *Curve, err error) {
	if bc.system == nil {
		bc.logger.Error("no system defined, could not proceed")

		err = ErrNoSystem

		return
	}

	changing := params.ChangingParameters()
	if len(changing) != 1 {
		bc.logger.WithFields(l.IntField("changing", len(changing))).
			Error("must have 1 changing parameter, no curves added")

		err = ErrInvalidSweep

		return
	}

	var ys []float64

	if bc.system.Analytical() {
		ys, err = bc.system.Query(params)
	} else {
		ys, err = bc.system.QueryReadout(params, readout)
	}

	if err != nil {
		return
	}

	xs, err := params.Floats(changing[0])
	if err != nil {
		return
	}

	bc.numAddedTraces++

	if curveName == "" {
		curveName = fmt.Sprintf("Curve %d", bc.numAddedTraces)
	}

	c = &Curve{
		ID:   snowflake.ID(),
		Name: curveName,
		X:    xs,
		Y:    ys,
	}

	bc.curves = append(bc.curves, c)
	bc.recordCurveBounds(c)

	bc.lastChangingParameter = changing[0]

	if readout == "" {
		readout = bc.system.DefaultReadout()
	}

	bc.lastReadout = readout

	return
}

// AddPointsToPlot records a scatter overlay, typically experimental
// observations. Y axis bounds are extended from the points.
func (bc *BindingCurve) AddPointsToPlot(xs, ys any) (err error) {
	xds, err := bindsys.ToFloats(xs)
	if err != nil {
		return
	}

	yds, err := bindsys.ToFloats(ys)
	if err != nil {
		return
	}

	bc.scatter = append(bc.scatter, &ScatterSeries{X: xds, Y: yds})

	for _, y := range yds {
		bc.minY = nanMin(bc.minY, y)
		bc.maxY = nanMax(bc.maxY, y)
	}

	return
}

// SaveCurves persists the accumulated curves under the given key.
func (bc *BindingCurve) SaveCurves(key string) error {
	if bc.storage == nil {
		return ErrNoStorage
	}

	return bc.storage.Save(key, bc.curves)
}

// LoadCurves appends previously saved curves, replaying their axis bounds.
func (bc *BindingCurve) LoadCurves(key string) (err error) {
	if bc.storage == nil {
		err = ErrNoStorage

		return
	}

	curves, err := bc.storage.Load(key)
	if err != nil {
		return
	}

	for _, c := range curves {
		bc.curves = append(bc.curves, c)
		bc.recordCurveBounds(c)
		bc.numAddedTraces++
	}

	return
}

func (bc *BindingCurve) recordCurveBounds(c *Curve) {
	if len(c.X) > 0 {
		bc.minX = nanMin(bc.minX, c.X[0])
		bc.maxX = nanMax(bc.maxX, c.X[len(c.X)-1])
	}

	// Running min/max across all curves, NaN values skipped.
	for _, y := range c.Y {
		bc.minY = nanMin(bc.minY, y)
		bc.maxY = nanMax(bc.maxY, y)
	}
}

func nanMin(a, b float64) float64 {
	if math.IsNaN(b) {
		return a
	}

	if math.IsNaN(a) {
		return b
	}

	return math.Min(a, b)
}

func nanMax(a, b float64) float64 {
	if math.IsNaN(b) {
		return a
	}

	if math.IsNaN(a) {
		return b
	}

	return math.Max(a, b)
}

func querySignature(params bindsys.Params, readout string) string {
	keys := make([]string, 0, len(params))

	for k := range params {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	var sb strings.Builder

	sb.WriteString(strings.ToLower(readout))

	for _, k := range keys {
		sb.WriteString("|")
		sb.WriteString(strings.ToLower(k))
		sb.WriteString("=")
		sb.WriteString(fmt.Sprintf("%v", params[k]))
	}

	return sb.String()
}
