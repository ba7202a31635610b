package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mgpai22/cueshift/internal/overlay"
	"github.com/mgpai22/cueshift/internal/playback"
	"github.com/mgpai22/cueshift/internal/render"
	"github.com/spf13/cobra"
)

var traceCmd = &cobra.Command{
	Use:   "trace [track_file]",
	Short: "Simulate playback and print every overlay update",
	Long: `Simulate frame-by-frame playback of a cue track and print the overlay
after every update: the media time, why the snapshot was taken, and the
position of each element.

Without --script the track is played from the start position to the end.
A script is a YAML list of steps:

  steps:
    - action: play
    - action: advance
      seconds: 2
    - action: pause
    - action: seek
      to: 15
    - action: run

Examples:
  cueshift trace overlay.vtt
  cueshift trace overlay.vtt --fps 60 --json -o trace.jsonl
  cueshift trace overlay.vtt --script seek.yaml --drop-every 4`,
	Args: cobra.ExactArgs(1),
	RunE: runTrace,
}

func init() {
	rootCmd.AddCommand(traceCmd)

	traceCmd.Flags().String("script", "", "YAML playback script")
	traceCmd.Flags().Float64("fps", 0, "Frames per second (default from config)")
	traceCmd.Flags().
		Float64("duration", 0, "Media duration in seconds (default: end of the last cue)")
	traceCmd.Flags().Float64("start", 0, "Seek here before playback (default from config)")
	traceCmd.Flags().
		Int("drop-every", 0, "Drop every n-th frame (default from config)")
	traceCmd.Flags().Bool("json", false, "Print one JSON object per snapshot")
	traceCmd.Flags().Bool("no-color", false, "Disable colored output")
}

func runTrace(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	scriptPath, _ := cmd.Flags().GetString("script")
	asJSON, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")
	outputPath, _ := cmd.Flags().GetString("output")

	tr, err := loadTrack(args[0])
	if err != nil {
		return err
	}

	var script *playback.Script
	if scriptPath != "" {
		script, err = playback.LoadScript(scriptPath)
		if err != nil {
			return err
		}
	}

	job, err := jobFromFlags(cmd, tr.End())
	if err != nil {
		return err
	}
	job.Track = tr
	job.Script = script

	logger.Infow("Tracing playback",
		"track", args[0],
		"fps", job.Playback.FPS,
		"duration", job.Playback.Duration,
		"start", job.Start,
	)

	result, err := render.Simulate(ctx, job, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
		noColor = true
	}

	if asJSON {
		err = writeTraceJSON(out, result.Frames)
	} else {
		err = writeTraceText(out, result.Frames, noColor)
	}
	if err != nil {
		return fmt.Errorf("failed to write trace: %w", err)
	}

	logger.Infow("Trace complete",
		"snapshots", len(result.Frames),
		"presented", result.Presented,
		"end_time", result.EndTime,
	)
	return nil
}

// playback settings from config, overridden by any flags that were set
func jobFromFlags(cmd *cobra.Command, trackEnd float64) (render.Job, error) {
	opts := playback.Options{
		FPS:       cfg.Playback.FPS,
		Duration:  trackEnd,
		DropEvery: cfg.Playback.DropEvery,
	}
	start := cfg.Playback.StartTime

	flags := cmd.Flags()
	if flags.Changed("fps") {
		opts.FPS, _ = flags.GetFloat64("fps")
	}
	if flags.Changed("duration") {
		opts.Duration, _ = flags.GetFloat64("duration")
	}
	if flags.Changed("drop-every") {
		opts.DropEvery, _ = flags.GetInt("drop-every")
	}
	if flags.Changed("start") {
		start, _ = flags.GetFloat64("start")
	}

	if start < 0 {
		return render.Job{}, fmt.Errorf("start must not be negative, got %v", start)
	}
	if start > opts.Duration {
		opts.Duration = start
	}

	return render.Job{Playback: opts, Start: start}, nil
}

func writeTraceJSON(w io.Writer, frames []render.Frame) error {
	enc := json.NewEncoder(w)
	for _, frame := range frames {
		if frame.Elements == nil {
			frame.Elements = []overlay.Element{}
		}
		if err := enc.Encode(frame); err != nil {
			return err
		}
	}
	return nil
}

func writeTraceText(w io.Writer, frames []render.Frame, noColor bool) error {
	for _, frame := range frames {
		prefix := fmt.Sprintf("%9.3f  %-7s", frame.Time, frame.Reason)
		if len(frame.Elements) == 0 {
			line := prefix + "  (empty)"
			if _, err := fmt.Fprintln(w, stylize(line, noColor, lipgloss.Color("240"))); err != nil {
				return err
			}
			continue
		}
		for _, el := range frame.Elements {
			if _, err := fmt.Fprintln(w, prefix+"  "+describeElement(el, noColor)); err != nil {
				return err
			}
		}
	}
	return nil
}

func describeElement(el overlay.Element, noColor bool) string {
	if el.Kind != overlay.KindPositioned {
		return stylize(fmt.Sprintf("%s  inline  %q", el.ID, el.Text), noColor, lipgloss.Color("246"))
	}
	pos := fmt.Sprintf("(%.2f, %.2f)", el.Position.X, el.Position.Y)
	return fmt.Sprintf("%s  %s  %q", el.ID, stylize(pos, noColor, lipgloss.Color("42")), el.Text)
}
