package playback

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestParseScript(t *testing.T) {
	data := []byte(`steps:
  - action: seek
    to: 12.5
  - action: play
  - action: advance
    seconds: 1
  - action: pause
  - action: seek
    to: 0
`)

	script, err := ParseScript(data)
	if err != nil {
		t.Fatalf("ParseScript failed: %v", err)
	}
	if len(script.Steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(script.Steps))
	}
	if script.Steps[0].To == nil || *script.Steps[0].To != 12.5 {
		t.Errorf("unexpected seek target %v", script.Steps[0].To)
	}
	if script.Steps[4].To == nil || *script.Steps[4].To != 0 {
		t.Error("expected explicit seek to 0 to be kept")
	}
}

func TestParseScriptRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", "steps: []\n"},
		{"unknown action", "steps:\n  - action: rewind\n"},
		{"seek without target", "steps:\n  - action: seek\n"},
		{"advance without amount", "steps:\n  - action: advance\n"},
		{"unknown field", "steps:\n  - action: play\n    speed: 2\n"},
		{"two documents", "steps:\n  - action: play\n---\nsteps: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseScript([]byte(tt.data)); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func TestLoadScriptAndRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	content := "steps:\n  - action: play\n  - action: advance\n    frames: 5\n  - action: pause\n  - action: advance\n    frames: 5\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	script, err := LoadScript(path)
	if err != nil {
		t.Fatalf("LoadScript failed: %v", err)
	}

	sim := newTestSimulator(t, Options{FPS: 10, Duration: 10})
	if err := sim.Run(context.Background(), script); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if math.Abs(sim.CurrentTime()-0.5) > 1e-9 {
		t.Errorf("expected 0.5s after 5 frames then pause, got %v", sim.CurrentTime())
	}
	if !sim.Paused() {
		t.Error("expected simulator paused")
	}
}
