package bindsys

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownSystem  = errors.New("unknown system")
	ErrUnknownReadout = errors.New("unknown readout")
	ErrMissingReadout = errors.New("missing readout")
	ErrInvalidSweep   = errors.New("invalid sweep")
	ErrNotConverged   = errors.New("not converged")
)

type MissingParametersError struct {
	Names []string
}

func (e *MissingParametersError) Error() string {
	return fmt.Sprintf("missing parameters: %s", strings.Join(e.Names, ", "))
}
