package render

import (
	"github.com/mgpai22/cueshift/internal/overlay"
)

// why a frame was captured
type Reason string

const (
	ReasonFrame   Reason = "frame"
	ReasonRebuild Reason = "rebuild"
)

// Frame is a snapshot of every overlay element at one media time.
type Frame struct {
	Time     float64           `json:"time"`
	Reason   Reason            `json:"reason"`
	Elements []overlay.Element `json:"elements"`
}

// Recorder is an in-memory overlay surface that keeps a history of
// snapshots taken with Capture.
type Recorder struct {
	*overlay.MemorySurface
	frames []Frame
}

var _ overlay.Surface = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{
		MemorySurface: overlay.NewMemorySurface(),
	}
}

// snapshots the current elements at media time t
func (r *Recorder) Capture(t float64, reason Reason) {
	r.frames = append(r.frames, Frame{
		Time:     t,
		Reason:   reason,
		Elements: r.Elements(),
	})
}

func (r *Recorder) Frames() []Frame {
	out := make([]Frame, len(r.frames))
	copy(out, r.frames)
	return out
}
