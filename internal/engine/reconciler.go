package engine

import "github.com/mgpai22/cueshift/internal/logging"

// Reconciler keeps the animation loop in step with play, pause and seek.
type Reconciler struct {
	loop        *Loop
	clock       Clock
	logger      *logging.Logger
	unsubscribe func()
}

func NewReconciler(loop *Loop, clock Clock, logger *logging.Logger) *Reconciler {
	return &Reconciler{
		loop:   loop,
		clock:  clock,
		logger: logging.OrNop(logger).Named("reconciler"),
	}
}

// subscribes to the video's events, replacing any earlier subscription
func (r *Reconciler) Attach(signals Signals) {
	r.Detach()
	r.unsubscribe = signals.Subscribe(r.Handle)
}

func (r *Reconciler) Detach() {
	if r.unsubscribe != nil {
		r.unsubscribe()
		r.unsubscribe = nil
	}
}

func (r *Reconciler) Handle(ev Event) {
	switch ev {
	case EventPlay:
		r.loop.Start()
	case EventPause:
		r.loop.Stop()
	case EventSeeking:
		t := r.clock.CurrentTime()
		moved := r.loop.Update(t)
		r.logger.Debugw("Forced update after seek",
			"time", t,
			"moved", moved,
			"loop", r.loop.State().String(),
		)
	default:
		r.logger.Debugw("Ignoring unknown playback event", "event", int(ev))
	}
}
