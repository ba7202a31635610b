package render

import (
	"context"
	"fmt"

	"github.com/mgpai22/cueshift/internal/cue"
	"github.com/mgpai22/cueshift/internal/engine"
	"github.com/mgpai22/cueshift/internal/logging"
	"github.com/mgpai22/cueshift/internal/playback"
	"github.com/mgpai22/cueshift/internal/track"
)

// Job describes one simulated playback of a track.
type Job struct {
	Track    *track.Track
	Script   *playback.Script // nil plays from Start to the end
	Playback playback.Options
	Start    float64 // initial seek, applied before the script
}

// Result holds what a simulated playback produced.
type Result struct {
	Frames    []Frame
	Presented int
	EndTime   float64
	Duration  float64
}

// Simulate drives a session over a simulated video and records the overlay
// after every loop update, and after every rebuild made while paused.
func Simulate(ctx context.Context, job Job, logger *logging.Logger) (*Result, error) {
	if job.Track == nil {
		return nil, fmt.Errorf("no track to simulate")
	}
	logger = logging.OrNop(logger)

	sim, err := playback.NewSimulator(job.Playback, logger)
	if err != nil {
		return nil, err
	}

	rec := NewRecorder()
	session := engine.NewSession(sim, rec, logger)
	defer session.Close()

	session.Loop().OnUpdate(func(t float64, moved int) {
		rec.Capture(t, ReasonFrame)
	})

	oracle := track.NewOracle(job.Track, func(active []cue.Source) {
		session.HandleCueChange(active)
		if sim.Paused() {
			rec.Capture(sim.CurrentTime(), ReasonRebuild)
		}
	})
	sim.OnTimeUpdate(func(t float64) {
		oracle.Sync(t)
	})

	oracle.Sync(sim.CurrentTime())
	if job.Start > 0 {
		sim.Seek(job.Start)
	}

	script := job.Script
	if script == nil {
		script = playback.DefaultScript()
	}
	if err := sim.Run(ctx, script); err != nil {
		return nil, fmt.Errorf("playback: %w", err)
	}

	logger.Debugw("Simulation finished",
		"frames", len(rec.frames),
		"presented", sim.Presented(),
		"time", sim.CurrentTime(),
	)

	return &Result{
		Frames:    rec.Frames(),
		Presented: sim.Presented(),
		EndTime:   sim.CurrentTime(),
		Duration:  sim.Duration(),
	}, nil
}
