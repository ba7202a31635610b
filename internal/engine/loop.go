package engine

import (
	"github.com/mgpai22/cueshift/internal/cue"
	"github.com/mgpai22/cueshift/internal/logging"
	"github.com/mgpai22/cueshift/internal/overlay"
)

// animation loop state
type State int

const (
	StateIdle State = iota
	StateRunning
)

func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "idle"
}

// Loop moves every active move directive once per presented frame while
// playback runs.
type Loop struct {
	clock     Clock
	scheduler FrameScheduler
	registry  *Registry
	manager   *overlay.Manager
	logger    *logging.Logger

	state      State
	handle     FrameHandle
	generation uint64

	afterUpdate func(t float64, moved int)
}

func NewLoop(
	clock Clock,
	scheduler FrameScheduler,
	registry *Registry,
	manager *overlay.Manager,
	logger *logging.Logger,
) *Loop {
	return &Loop{
		clock:     clock,
		scheduler: scheduler,
		registry:  registry,
		manager:   manager,
		logger:    logging.OrNop(logger).Named("loop"),
	}
}

func (l *Loop) State() State {
	return l.state
}

// OnUpdate registers fn to run after every update pass, with the time used
// and the number of elements moved.
func (l *Loop) OnUpdate(fn func(t float64, moved int)) {
	l.afterUpdate = fn
}

// Start moves the loop to running, updating once immediately and arming
// the next frame. It reports false when the loop was already running.
func (l *Loop) Start() bool {
	if l.state == StateRunning {
		return false
	}
	l.state = StateRunning
	l.logger.Debugw("Animation loop started", "time", l.clock.CurrentTime())

	l.Update(l.clock.CurrentTime())
	l.arm()
	return true
}

// Stop cancels the pending frame callback. It reports false when the
// loop was already idle.
func (l *Loop) Stop() bool {
	if l.state != StateRunning {
		return false
	}
	l.state = StateIdle
	l.scheduler.CancelFrame(l.handle)
	l.handle = 0
	l.generation++
	l.logger.Debugw("Animation loop stopped", "time", l.clock.CurrentTime())
	return true
}

// Update applies positions for time t to every move directive in the
// registry and returns how many elements were moved.
func (l *Loop) Update(t float64) int {
	moved := 0
	for _, d := range l.registry.Directives() {
		switch d := d.(type) {
		case cue.Move:
			if l.manager.Place(d.ID, cue.Position(d, t)) {
				moved++
			}
		case cue.Static:
			// static captions never move
		}
	}
	if l.afterUpdate != nil {
		l.afterUpdate(t, moved)
	}
	return moved
}

func (l *Loop) arm() {
	l.generation++
	generation := l.generation
	l.handle = l.scheduler.RequestFrame(func(FrameInfo) {
		l.onFrame(generation)
	})
}

func (l *Loop) onFrame(generation uint64) {
	// a callback that fires after Stop, or after being superseded, is ignored
	if l.state != StateRunning || generation != l.generation {
		return
	}
	l.Update(l.clock.CurrentTime())
	l.arm()
}
