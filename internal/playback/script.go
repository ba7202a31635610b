package playback

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// playback script action
type Action string

const (
	ActionPlay    Action = "play"
	ActionPause   Action = "pause"
	ActionSeek    Action = "seek"
	ActionAdvance Action = "advance"
	ActionRun     Action = "run"
)

// one scripted step; To is required for seek, Frames or Seconds for advance
type Step struct {
	Action  Action   `yaml:"action"`
	To      *float64 `yaml:"to,omitempty"`
	Frames  int      `yaml:"frames,omitempty"`
	Seconds float64  `yaml:"seconds,omitempty"`
}

// Script is an ordered list of user actions applied to a Simulator.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// plays from the current position to the end
func DefaultScript() *Script {
	return &Script{Steps: []Step{
		{Action: ActionPlay},
		{Action: ActionRun},
	}}
}

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return ParseScript(data)
}

func ParseScript(data []byte) (*Script, error) {
	var script Script
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&script); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parse script: multiple YAML documents are not supported")
		}
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if err := script.Validate(); err != nil {
		return nil, err
	}
	return &script, nil
}

func (sc *Script) Validate() error {
	if len(sc.Steps) == 0 {
		return fmt.Errorf("script has no steps")
	}
	for i, step := range sc.Steps {
		switch step.Action {
		case ActionPlay, ActionPause, ActionRun:
		case ActionSeek:
			if step.To == nil {
				return fmt.Errorf("step %d: seek requires 'to'", i+1)
			}
			if *step.To < 0 || math.IsNaN(*step.To) {
				return fmt.Errorf("step %d: seek target must be non-negative", i+1)
			}
		case ActionAdvance:
			if step.Frames < 0 || step.Seconds < 0 {
				return fmt.Errorf("step %d: advance amount must not be negative", i+1)
			}
			if step.Frames == 0 && step.Seconds == 0 {
				return fmt.Errorf("step %d: advance requires 'frames' or 'seconds'", i+1)
			}
		default:
			return fmt.Errorf("step %d: unknown action %q", i+1, step.Action)
		}
	}
	return nil
}

// Run applies the script step by step, checking ctx between frames.
func (s *Simulator) Run(ctx context.Context, script *Script) error {
	for i, step := range script.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch step.Action {
		case ActionPlay:
			s.Play()
		case ActionPause:
			s.Pause()
		case ActionSeek:
			s.Seek(*step.To)
		case ActionAdvance:
			frames := step.Frames
			if step.Seconds > 0 {
				frames += int(math.Ceil(step.Seconds * s.fps))
			}
			for n := 0; n < frames; n++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if !s.Step() {
					break
				}
			}
		case ActionRun:
			for s.Step() {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("step %d: unknown action %q", i+1, step.Action)
		}
	}
	return nil
}
