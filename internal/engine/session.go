package engine

import (
	"github.com/mgpai22/cueshift/internal/cue"
	"github.com/mgpai22/cueshift/internal/logging"
	"github.com/mgpai22/cueshift/internal/overlay"
)

// Session wires the registry, overlay manager, animation loop and
// reconciler to one video and one surface. It is created at startup,
// rebuilt on every activation change and torn down with Close.
type Session struct {
	registry   *Registry
	manager    *overlay.Manager
	loop       *Loop
	reconciler *Reconciler
	logger     *logging.Logger
	closed     bool
}

func NewSession(
	video Video,
	surface overlay.Surface,
	logger *logging.Logger,
) *Session {
	logger = logging.OrNop(logger)
	registry := NewRegistry()
	manager := overlay.NewManager(surface, logger)
	loop := NewLoop(video, video, registry, manager, logger)
	reconciler := NewReconciler(loop, video, logger)
	reconciler.Attach(video)

	return &Session{
		registry:   registry,
		manager:    manager,
		loop:       loop,
		reconciler: reconciler,
		logger:     logger.Named("session"),
	}
}

func (s *Session) Registry() *Registry {
	return s.registry
}

func (s *Session) Loop() *Loop {
	return s.loop
}

// HandleCueChange rebuilds the registry and all visuals from the
// oracle's current active cues, keeping the oracle's order.
func (s *Session) HandleCueChange(active []cue.Source) {
	if s.closed {
		return
	}

	if len(active) == 0 {
		s.registry.Clear()
		s.manager.Clear()
		s.logger.Debugw("Active cue set emptied")
		return
	}

	next := make([]cue.Directive, 0, len(active))
	for _, src := range active {
		d, fallback := cue.ParseReport(src)
		if fallback != cue.FallbackNone {
			s.logger.Debugw("Cue payload rendered as text",
				"cue_id", src.ID,
				"reason", fallback.String(),
			)
		}
		next = append(next, d)
	}

	s.registry.Replace(next)
	s.manager.Materialize(next)

	s.logger.Debugw("Rebuilt active cues",
		"count", len(next),
	)
}

// Close stops the loop, unsubscribes from the video and removes all visuals.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.loop.Stop()
	s.reconciler.Detach()
	s.registry.Clear()
	s.manager.Clear()
}
