package playback

import (
	"context"
	"math"
	"testing"

	"github.com/mgpai22/cueshift/internal/engine"
)

func newTestSimulator(t *testing.T, opts Options) *Simulator {
	t.Helper()
	sim, err := NewSimulator(opts, nil)
	if err != nil {
		t.Fatalf("NewSimulator failed: %v", err)
	}
	return sim
}

func recordEvents(sim *Simulator) *[]engine.Event {
	var events []engine.Event
	sim.Subscribe(func(ev engine.Event) {
		events = append(events, ev)
	})
	return &events
}

func TestNewSimulatorValidatesOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"zero fps", Options{FPS: 0, Duration: 10}},
		{"negative duration", Options{FPS: 30, Duration: -1}},
		{"nan duration", Options{FPS: 30, Duration: math.NaN()}},
		{"negative drop", Options{FPS: 30, Duration: 10, DropEvery: -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSimulator(tt.opts, nil); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestPlayPauseEmitOnce(t *testing.T) {
	sim := newTestSimulator(t, Options{FPS: 10, Duration: 5})
	events := recordEvents(sim)

	sim.Play()
	sim.Play()
	sim.Pause()
	sim.Pause()

	want := []engine.Event{engine.EventPlay, engine.EventPause}
	if len(*events) != len(want) {
		t.Fatalf("expected events %v, got %v", want, *events)
	}
	for i := range want {
		if (*events)[i] != want[i] {
			t.Errorf("event %d: expected %s, got %s", i, want[i], (*events)[i])
		}
	}
}

func TestStepAdvancesAndPresents(t *testing.T) {
	sim := newTestSimulator(t, Options{FPS: 4, Duration: 10})

	var infos []engine.FrameInfo
	sim.RequestFrame(func(info engine.FrameInfo) { infos = append(infos, info) })

	if sim.Step() {
		t.Fatal("Step should not advance while paused")
	}

	sim.Play()
	sim.Step()
	sim.Step()

	if got := sim.CurrentTime(); got != 0.5 {
		t.Errorf("expected time 0.5 after two frames at 4fps, got %v", got)
	}
	if len(infos) != 1 {
		t.Fatalf("one-shot callback fired %d times", len(infos))
	}
	if infos[0].MediaTime != 0.25 || infos[0].PresentedFrames != 1 {
		t.Errorf("unexpected frame info %+v", infos[0])
	}
}

func TestCancelFrame(t *testing.T) {
	sim := newTestSimulator(t, Options{FPS: 4, Duration: 10})
	fired := false
	h := sim.RequestFrame(func(engine.FrameInfo) { fired = true })
	sim.CancelFrame(h)

	sim.Play()
	sim.Step()

	if fired {
		t.Error("cancelled callback fired")
	}
}

func TestCallbacksRequestedDuringPresentWaitForNextFrame(t *testing.T) {
	sim := newTestSimulator(t, Options{FPS: 10, Duration: 10})
	count := 0
	var rearm func(engine.FrameInfo)
	rearm = func(engine.FrameInfo) {
		count++
		sim.RequestFrame(rearm)
	}
	sim.RequestFrame(rearm)

	sim.Play()
	for i := 0; i < 3; i++ {
		sim.Step()
	}

	if count != 3 {
		t.Errorf("expected 3 callbacks over 3 frames, got %d", count)
	}
}

func TestDroppedFramesAdvanceTimeWithoutPresenting(t *testing.T) {
	sim := newTestSimulator(t, Options{FPS: 10, Duration: 10, DropEvery: 3})
	sim.Play()
	for i := 0; i < 9; i++ {
		sim.Step()
	}

	if sim.Presented() != 6 {
		t.Errorf("expected 6 presented frames, got %d", sim.Presented())
	}
	if math.Abs(sim.CurrentTime()-0.9) > 1e-9 {
		t.Errorf("expected time 0.9, got %v", sim.CurrentTime())
	}
}

func TestSeekEmitsSeekingThenTimeUpdate(t *testing.T) {
	sim := newTestSimulator(t, Options{FPS: 30, Duration: 60})
	var order []string
	sim.Subscribe(func(ev engine.Event) { order = append(order, ev.String()) })
	sim.OnTimeUpdate(func(float64) { order = append(order, "timeupdate") })

	sim.Seek(90)

	if sim.CurrentTime() != 60 {
		t.Errorf("expected seek clamped to 60, got %v", sim.CurrentTime())
	}
	if len(order) != 2 || order[0] != "seeking" || order[1] != "timeupdate" {
		t.Errorf("unexpected event order %v", order)
	}
}

func TestReachingEndPauses(t *testing.T) {
	sim := newTestSimulator(t, Options{FPS: 10, Duration: 1})
	events := recordEvents(sim)

	if err := sim.Run(context.Background(), DefaultScript()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !sim.Paused() || !sim.Ended() {
		t.Error("expected paused at end of media")
	}
	if sim.CurrentTime() != 1 {
		t.Errorf("expected time 1, got %v", sim.CurrentTime())
	}
	if sim.Presented() != 10 {
		t.Errorf("expected 10 presented frames, got %d", sim.Presented())
	}
	last := (*events)[len(*events)-1]
	if last != engine.EventPause {
		t.Errorf("expected final pause event, got %s", last)
	}
}

func TestPlayAfterEndRestarts(t *testing.T) {
	sim := newTestSimulator(t, Options{FPS: 10, Duration: 1})
	sim.Seek(1)
	sim.Play()

	if sim.CurrentTime() != 0 {
		t.Errorf("expected restart from 0, got %v", sim.CurrentTime())
	}
}

func TestRunHonoursContext(t *testing.T) {
	sim := newTestSimulator(t, Options{FPS: 10, Duration: 100})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := sim.Run(ctx, DefaultScript()); err == nil {
		t.Error("expected context error")
	}
}
