package bindsys

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromName(t *testing.T) {
	for _, name := range []string{"simple", "1:1", "Simple", "SIMPLE"} {
		sys, err := FromName(name)
		assert.Nil(t, err)
		assert.True(t, sys.Analytical())
		assert.EqualValues(t, "pl", sys.DefaultReadout())
	}

	for _, name := range []string{"simplekinetic", "1:1 kinetic", "homodimerkinetic",
		"homodimer formation kinetic", "competition", "1:1:1", "homodimerbreaking"} {
		sys, err := FromName(name)
		assert.Nil(t, err)
		assert.False(t, sys.Analytical())
	}

	sys, err := FromName("homodimer formation")
	assert.Nil(t, err)
	assert.True(t, sys.Analytical())

	_, err = FromName("tetramer")
	assert.ErrorIs(t, err, ErrUnknownSystem)
}

func TestOneToOneSweep(t *testing.T) {
	sys := NewOneToOne()

	ys, err := sys.Query(Params{
		"p":    1.0,
		"l":    []float64{0, 1, 2, 5, 10},
		"kdpl": 1.0,
	})
	assert.Nil(t, err)
	assert.Len(t, ys, 5)

	assert.EqualValues(t, 0, ys[0])

	for idx := 1; idx < len(ys); idx++ {
		assert.GreaterOrEqual(t, ys[idx], ys[idx-1])
		assert.Less(t, ys[idx], 1.0)
	}
}

func TestOneToOneScalar(t *testing.T) {
	sys := NewOneToOne()

	ys, err := sys.Query(Params{"p": 1, "l": 1, "kdpl": 1})
	assert.Nil(t, err)
	assert.Len(t, ys, 1)
	assert.InDelta(t, (3-math.Sqrt(5))/2, ys[0], 1e-12)
}

func TestTwoChangingParameters(t *testing.T) {
	sys := NewOneToOne()

	_, err := sys.Query(Params{
		"p":    []float64{1, 2},
		"l":    []float64{1, 2},
		"kdpl": 1.0,
	})
	assert.ErrorIs(t, err, ErrInvalidSweep)
}

func TestMissingParameters(t *testing.T) {
	sys := NewOneToOne()

	_, err := sys.Query(Params{"p": 1.0})

	var mpe *MissingParametersError

	assert.True(t, errors.As(err, &mpe))
	assert.EqualValues(t, []string{"kdpl", "l"}, mpe.Names)
}

func TestKineticMatchesAnalytical(t *testing.T) {
	params := Params{"p": 2.0, "l": 3.0, "kdpl": 0.5}

	ays, err := NewOneToOne().Query(params)
	assert.Nil(t, err)

	kys, err := NewOneToOneKinetic().QueryReadout(params, "pl")
	assert.Nil(t, err)

	assert.InDelta(t, ays[0], kys[0], 1e-6)
}

func TestHomodimerKineticMatchesAnalytical(t *testing.T) {
	params := Params{"p": 10.0, "kdpp": 1.0}

	ays, err := NewHomodimerFormation().Query(params)
	assert.Nil(t, err)
	assert.InDelta(t, 4, ays[0], 1e-12)

	kys, err := NewHomodimerFormationKinetic().QueryReadout(params, "pp")
	assert.Nil(t, err)
	assert.InDelta(t, 4, kys[0], 1e-5)
}

func TestCompetitionNoInhibitor(t *testing.T) {
	ays, err := NewOneToOne().Query(Params{"p": 1.0, "l": 2.0, "kdpl": 1.0})
	assert.Nil(t, err)

	cys, err := NewCompetition().QueryReadout(Params{
		"p":    1.0,
		"l":    2.0,
		"i":    0.0,
		"kdpl": 1.0,
		"kdpi": 1.0,
	}, "pl")
	assert.Nil(t, err)

	assert.InDelta(t, ays[0], cys[0], 1e-6)
}

func TestCompetitionInhibitorSweep(t *testing.T) {
	ys, err := NewCompetition().QueryReadout(Params{
		"p":    1.0,
		"l":    2.0,
		"i":    []float64{0, 1, 5, 20, 100},
		"kdpl": 1.0,
		"kdpi": 0.5,
	}, "pl")
	assert.Nil(t, err)
	assert.Len(t, ys, 5)

	// More inhibitor, less complex.
	for idx := 1; idx < len(ys); idx++ {
		assert.Less(t, ys[idx], ys[idx-1])
	}
}

func TestHomodimerBreaking(t *testing.T) {
	sys := NewHomodimerBreaking()

	ys, err := sys.QueryReadout(Params{
		"p":    10.0,
		"i":    []float64{0, 5, 50},
		"kdpp": 1.0,
		"kdpi": 0.1,
	}, "pp")
	assert.Nil(t, err)
	assert.Len(t, ys, 3)
	assert.InDelta(t, 4, ys[0], 1e-5)

	for idx := 1; idx < len(ys); idx++ {
		assert.Less(t, ys[idx], ys[idx-1])
	}
}

func TestKineticReadoutRequired(t *testing.T) {
	sys := NewOneToOneKinetic()

	_, err := sys.Query(Params{"p": 1, "l": 1, "kdpl": 1})
	assert.ErrorIs(t, err, ErrMissingReadout)

	_, err = sys.QueryReadout(Params{"p": 1, "l": 1, "kdpl": 1}, "")
	assert.ErrorIs(t, err, ErrMissingReadout)

	_, err = sys.QueryReadout(Params{"p": 1, "l": 1, "kdpl": 1}, "pp")
	assert.ErrorIs(t, err, ErrUnknownReadout)
}

func TestAnalyticalIgnoresReadout(t *testing.T) {
	sys := NewOneToOne()

	ys1, err := sys.Query(Params{"p": 1, "l": 1, "kdpl": 1})
	assert.Nil(t, err)

	ys2, err := sys.QueryReadout(Params{"p": 1, "l": 1, "kdpl": 1}, "whatever")
	assert.Nil(t, err)

	assert.EqualValues(t, ys1, ys2)
}

func TestChangingParameters(t *testing.T) {
	params := Params{
		"p":    1.0,
		"l":    []int{1, 2, 3},
		"kdpl": []float64{0.1, 0.2},
	}

	assert.EqualValues(t, []string{"kdpl", "l"}, params.ChangingParameters())

	xs, err := params.Floats("l")
	assert.Nil(t, err)
	assert.EqualValues(t, []float64{1, 2, 3}, xs)
}
