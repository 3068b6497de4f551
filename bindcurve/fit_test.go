package bindcurve

import (
	"errors"
	"math"
	"testing"

	"github.com/bindkit/libbinding/bindsys"
	"github.com/stretchr/testify/assert"
)

func fitXs() []float64 {
	xs := make([]float64, 12)

	for idx := range xs {
		xs[idx] = float64(idx)
	}

	return xs
}

func TestFitRecoversKd(t *testing.T) {
	bc := NewWithName("simple", nil, nil)

	xs := fitXs()

	observed, err := bc.Query(bindsys.Params{"p": 1.0, "l": xs, "kdpl": 1.0})
	assert.Nil(t, err)

	fitted, stderrs, err := bc.Fit(
		bindsys.Params{"p": 1.0, "l": xs},
		map[string]float64{"kdpl": 3.0},
		observed, "l", "pl", nil)
	assert.Nil(t, err)

	kd, err := fitted.Float("kdpl")
	assert.Nil(t, err)
	assert.InDelta(t, 1.0, kd, 1e-4)

	assert.NotNil(t, stderrs["kdpl"])
	assert.Less(t, *stderrs["kdpl"], 0.01)
}

func TestFitDoesNotMutateCaller(t *testing.T) {
	bc := NewWithName("simple", nil, nil)

	xs := fitXs()

	observed, err := bc.Query(bindsys.Params{"p": 1.0, "l": xs, "kdpl": 1.0})
	assert.Nil(t, err)

	base := bindsys.Params{"p": 1.0, "l": xs}

	_, _, err = bc.Fit(base, map[string]float64{"kdpl": 2.0}, observed, "", "pl", nil)
	assert.Nil(t, err)

	assert.False(t, base.Has("kdpl"))
}

func TestFitNothingToFit(t *testing.T) {
	bc := NewWithName("simple", nil, nil)

	_, _, err := bc.Fit(bindsys.Params{"p": 1.0, "l": fitXs(), "kdpl": 1.0},
		nil, []float64{1}, "", "pl", nil)
	assert.ErrorIs(t, err, ErrNothingToFit)

	_, _, err = bc.Fit(bindsys.Params{"p": 1.0, "l": fitXs(), "kdpl": 1.0},
		map[string]float64{}, []float64{1}, "", "pl", nil)
	assert.ErrorIs(t, err, ErrNothingToFit)
}

func TestFitMissingParameters(t *testing.T) {
	bc := NewWithName("simple", nil, nil)

	_, _, err := bc.Fit(bindsys.Params{"l": fitXs()},
		map[string]float64{"kdpl": 1.0}, []float64{1}, "", "pl", nil)

	var mpe *bindsys.MissingParametersError

	assert.True(t, errors.As(err, &mpe))
	assert.EqualValues(t, []string{"p"}, mpe.Names)

	_, _, err = bc.Fit(bindsys.Params{"l": fitXs()},
		map[string]float64{"x": 1.0}, []float64{1}, "", "pl", nil)

	assert.True(t, errors.As(err, &mpe))
	assert.EqualValues(t, []string{"kdpl", "p"}, mpe.Names)
}

func TestFitWithBounds(t *testing.T) {
	bc := NewWithName("simple", nil, nil)

	xs := fitXs()

	observed, err := bc.Query(bindsys.Params{"p": 1.0, "l": xs, "kdpl": 1.0})
	assert.Nil(t, err)

	fitted, _, err := bc.Fit(
		bindsys.Params{"p": 1.0, "l": xs},
		map[string]float64{"kdpl": 1.5},
		observed, "l", "pl",
		map[string][2]float64{"kdpl": {0.5, 2}})
	assert.Nil(t, err)

	kd, err := fitted.Float("kdpl")
	assert.Nil(t, err)
	assert.GreaterOrEqual(t, kd, 0.5)
	assert.LessOrEqual(t, kd, 2.0)
	assert.InDelta(t, 1.0, kd, 1e-3)
}

func TestFitTwoParameters(t *testing.T) {
	bc := NewWithName("simple", nil, nil)

	xs := fitXs()

	observed, err := bc.Query(bindsys.Params{"p": 2.0, "l": xs, "kdpl": 0.5})
	assert.Nil(t, err)

	fitted, _, err := bc.Fit(
		bindsys.Params{"l": xs},
		map[string]float64{"p": 1.0, "kdpl": 1.0},
		observed, "l", "pl",
		map[string][2]float64{
			"p":    {0, math.Inf(1)},
			"kdpl": {0, math.Inf(1)},
		})
	assert.Nil(t, err)

	p, err := fitted.Float("p")
	assert.Nil(t, err)
	assert.InDelta(t, 2.0, p, 1e-2)

	kd, err := fitted.Float("kdpl")
	assert.Nil(t, err)
	assert.InDelta(t, 0.5, kd, 1e-2)
}

func TestFitKineticSystem(t *testing.T) {
	bc := NewWithName("simplekinetic", nil, nil)

	xs := []float64{0, 0.5, 1, 2, 4, 8}

	observed, err := bc.QueryReadout(bindsys.Params{"p": 1.0, "l": xs, "kdpl": 1.0}, "pl")
	assert.Nil(t, err)

	fitted, _, err := bc.Fit(
		bindsys.Params{"p": 1.0, "l": xs},
		map[string]float64{"kdpl": 2.0},
		observed, "l", "pl", nil)
	assert.Nil(t, err)

	kd, err := fitted.Float("kdpl")
	assert.Nil(t, err)
	assert.InDelta(t, 1.0, kd, 1e-3)
}

func TestFitSweepMismatch(t *testing.T) {
	bc := NewWithName("simple", nil, nil)

	// Swept parameter is l but xParam says p.
	_, _, err := bc.Fit(bindsys.Params{"p": 1.0, "l": fitXs()},
		map[string]float64{"kdpl": 1.0}, []float64{1}, "p", "pl", nil)
	assert.ErrorIs(t, err, ErrInvalidSweep)

	// Observation count differs from the sweep length.
	_, _, err = bc.Fit(bindsys.Params{"p": 1.0, "l": fitXs()},
		map[string]float64{"kdpl": 1.0}, []float64{1, 2}, "l", "pl", nil)
	assert.NotNil(t, err)
}

func TestBoundedTransformRoundTrip(t *testing.T) {
	cases := []struct {
		min, max float64
		v        float64
	}{
		{0.5, 2, 1.0},
		{0, math.Inf(1), 3.0},
		{math.Inf(-1), 10, 3.0},
		{math.Inf(-1), math.Inf(1), -7.0},
	}

	for _, c := range cases {
		tr := newBoundedTransform(c.min, c.max)
		assert.InDelta(t, c.v, tr.external(tr.internal(c.v)), 1e-9)
	}
}
