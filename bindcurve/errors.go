package bindcurve

import (
	"errors"

	"github.com/bindkit/libbinding/bindsys"
)

var (
	ErrNoSystem     = errors.New("no system configured")
	ErrNothingToFit = errors.New("nothing to fit")
	ErrNoStorage    = errors.New("no storage")

	ErrInvalidSweep   = bindsys.ErrInvalidSweep
	ErrMissingReadout = bindsys.ErrMissingReadout
)
