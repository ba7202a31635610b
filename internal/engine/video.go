package engine

// playback signal emitted by the video
type Event int

const (
	EventPlay Event = iota
	EventPause
	EventSeeking
)

func (e Event) String() string {
	switch e {
	case EventPlay:
		return "play"
	case EventPause:
		return "pause"
	case EventSeeking:
		return "seeking"
	default:
		return "unknown"
	}
}

// cancelable reference to a pending frame callback; zero is never issued
type FrameHandle uint64

// metadata passed to frame callbacks
type FrameInfo struct {
	MediaTime       float64
	PresentedFrames int
}

// current playback position in seconds
type Clock interface {
	CurrentTime() float64
}

// FrameScheduler invokes a callback once, when the next video frame is
// presented. Callbacks are one-shot and must be re-requested.
type FrameScheduler interface {
	RequestFrame(cb func(FrameInfo)) FrameHandle
	CancelFrame(h FrameHandle)
}

// source of play/pause/seeking events
type Signals interface {
	Subscribe(fn func(Event)) (unsubscribe func())
}

// Video is everything the overlay engine consumes from the player.
type Video interface {
	Clock
	FrameScheduler
	Signals
}
