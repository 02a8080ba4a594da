package mint

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// Reaper sweeps pending requests whose randomness never resolved, cancelling
// and refunding them once the grace period has passed. It is a convenience
// over the permissionless Cancel path; an external scheduler decides when to
// run it, since nothing cancels stuck requests on its own.
type Reaper struct {
	engine *Engine
	log    *logrus.Logger
}

// NewReaper creates a reaper over the engine.
func NewReaper(e *Engine) *Reaper {
	return &Reaper{engine: e, log: e.log}
}

// Sweep cancels every pending request older than the engine's cancel delay as
// of now. It returns the number of requests cancelled. Requests that vanish
// or become too young between listing and cancelling are skipped; other
// cancel failures are logged and do not stop the sweep.
func (r *Reaper) Sweep(now int64) (int, error) {
	ids, err := r.engine.expiredRequests(now)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, id := range ids {
		switch err := r.engine.Cancel(id, now); {
		case err == nil:
			cancelled++
		case errors.Is(err, ErrRequestNotFound), errors.Is(err, ErrCancelTooEarly):
			// Raced with a reveal or a competing cancel; nothing to do.
		default:
			r.log.WithError(err).WithField("request", id.String()).Error("sweep: cancel failed")
		}
	}

	if cancelled > 0 {
		r.log.WithFields(logrus.Fields{
			"cancelled": cancelled,
			"now":       now,
		}).Info("sweep complete")
	}
	return cancelled, nil
}
