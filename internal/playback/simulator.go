package playback

import (
	"fmt"
	"math"
	"sort"

	"github.com/mgpai22/cueshift/internal/engine"
	"github.com/mgpai22/cueshift/internal/logging"
)

// simulator settings
type Options struct {
	FPS       float64 // presented frames per second of media time
	Duration  float64 // media length in seconds
	DropEvery int     // every n-th frame advances time without being presented; 0 disables
}

// Simulator is a deterministic, single-threaded video. Time only advances
// through Step, and frame callbacks fire only for presented frames.
type Simulator struct {
	fps       float64
	duration  float64
	dropEvery int
	logger    *logging.Logger

	paused bool
	// media time is anchor + sinceAnchor/fps, which avoids accumulating
	// rounding error across long runs
	anchor      float64
	sinceAnchor int
	now         float64

	frames    int
	presented int

	nextHandle engine.FrameHandle
	pending    map[engine.FrameHandle]func(engine.FrameInfo)

	nextListener int
	listeners    map[int]func(engine.Event)
	timeHooks    []func(t float64)
}

var _ engine.Video = (*Simulator)(nil)

func NewSimulator(opts Options, logger *logging.Logger) (*Simulator, error) {
	if opts.FPS <= 0 || math.IsNaN(opts.FPS) || math.IsInf(opts.FPS, 0) {
		return nil, fmt.Errorf("fps must be positive, got %v", opts.FPS)
	}
	if opts.Duration < 0 || math.IsNaN(opts.Duration) || math.IsInf(opts.Duration, 0) {
		return nil, fmt.Errorf("duration must be a non-negative number, got %v", opts.Duration)
	}
	if opts.DropEvery < 0 {
		return nil, fmt.Errorf("drop-every must not be negative, got %d", opts.DropEvery)
	}

	return &Simulator{
		fps:       opts.FPS,
		duration:  opts.Duration,
		dropEvery: opts.DropEvery,
		logger:    logging.OrNop(logger).Named("playback"),
		paused:    true,
		pending:   make(map[engine.FrameHandle]func(engine.FrameInfo)),
		listeners: make(map[int]func(engine.Event)),
	}, nil
}

func (s *Simulator) CurrentTime() float64 {
	return s.now
}

func (s *Simulator) Duration() float64 {
	return s.duration
}

func (s *Simulator) FPS() float64 {
	return s.fps
}

func (s *Simulator) Paused() bool {
	return s.paused
}

func (s *Simulator) Ended() bool {
	return s.now >= s.duration
}

// number of frames presented so far
func (s *Simulator) Presented() int {
	return s.presented
}

func (s *Simulator) RequestFrame(cb func(engine.FrameInfo)) engine.FrameHandle {
	s.nextHandle++
	s.pending[s.nextHandle] = cb
	return s.nextHandle
}

func (s *Simulator) CancelFrame(h engine.FrameHandle) {
	delete(s.pending, h)
}

func (s *Simulator) Subscribe(fn func(engine.Event)) func() {
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	return func() {
		delete(s.listeners, id)
	}
}

// OnTimeUpdate registers fn to run whenever media time changes, before the
// frame for that time is presented.
func (s *Simulator) OnTimeUpdate(fn func(t float64)) {
	s.timeHooks = append(s.timeHooks, fn)
}

// Play resumes playback, restarting from zero when the media has ended.
func (s *Simulator) Play() {
	if !s.paused {
		return
	}
	if s.Ended() && s.duration > 0 {
		s.Seek(0)
	}
	s.paused = false
	s.reanchor()
	s.logger.Debugw("Play", "time", s.now)
	s.emit(engine.EventPlay)
}

func (s *Simulator) Pause() {
	if s.paused {
		return
	}
	s.paused = true
	s.logger.Debugw("Pause", "time", s.now)
	s.emit(engine.EventPause)
}

// Seek jumps to t, clamped to the media, fires seeking and then lets the
// new time propagate to time-update hooks.
func (s *Simulator) Seek(t float64) {
	if math.IsNaN(t) {
		return
	}
	s.now = math.Max(0, math.Min(t, s.duration))
	s.reanchor()
	s.logger.Debugw("Seek", "time", s.now)
	s.emit(engine.EventSeeking)
	s.marchTime()
}

// Step advances one frame interval while playing. It reports false when
// paused. Reaching the end of the media pauses playback.
func (s *Simulator) Step() bool {
	if s.paused {
		return false
	}

	s.frames++
	s.sinceAnchor++
	s.now = math.Min(s.anchor+float64(s.sinceAnchor)/s.fps, s.duration)
	s.marchTime()

	if s.dropEvery > 0 && s.frames%s.dropEvery == 0 {
		s.logger.Debugw("Dropped frame", "frame", s.frames, "time", s.now)
	} else {
		s.present()
	}

	if s.Ended() {
		s.Pause()
	}
	return true
}

func (s *Simulator) reanchor() {
	s.anchor = s.now
	s.sinceAnchor = 0
}

func (s *Simulator) marchTime() {
	for _, hook := range s.timeHooks {
		hook(s.now)
	}
}

// fires the callbacks pending when the frame is presented; callbacks
// requested while firing wait for the next frame
func (s *Simulator) present() {
	handles := make([]engine.FrameHandle, 0, len(s.pending))
	for h := range s.pending {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	callbacks := make([]func(engine.FrameInfo), 0, len(handles))
	for _, h := range handles {
		callbacks = append(callbacks, s.pending[h])
		delete(s.pending, h)
	}

	s.presented++
	info := engine.FrameInfo{
		MediaTime:       s.now,
		PresentedFrames: s.presented,
	}
	for _, cb := range callbacks {
		cb(info)
	}
}

func (s *Simulator) emit(ev engine.Event) {
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := s.listeners[id]; ok {
			fn(ev)
		}
	}
}
