package bindcurve

import (
	"time"

	"github.com/sgostarter/i/l"
)

// watchSlow logs a warning when an operation runs past warnAfter. Fits and
// numerically solved sweeps block the caller until done; this is the only
// visibility into a slow one. The returned func stops the watch.
func watchSlow(logger l.Wrapper, op string, warnAfter time.Duration) func() {
	done := make(chan struct{})

	go func() {
		timer := time.NewTimer(warnAfter)

		defer timer.Stop()

		select {
		case <-done:
		case <-timer.C:
			logger.WithFields(l.StringField("op", op), l.StringField("after", warnAfter.String())).
				Warn("operation still running")
		}
	}()

	return func() {
		close(done)
	}
}
