package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mgpai22/cueshift/internal/config"
	"github.com/mgpai22/cueshift/internal/render"
	"github.com/mgpai22/cueshift/internal/subtitle"
	"github.com/mgpai22/cueshift/internal/track"
	"github.com/mgpai22/cueshift/internal/video"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var renderCmd = &cobra.Command{
	Use:   "render [video_file] [track_file]",
	Short: "Render a cue track's overlay to ASS, optionally burning it in",
	Long: `Play a cue track against a video at the video's own frame rate and
write the resulting overlay as an ASS subtitle file. Moving elements are
positioned with \pos overrides in the video's pixel space; captions sit at
the bottom centre.

With --burn the overlay is also rendered onto a copy of the video.

Examples:
  cueshift render movie.mp4 overlay.vtt
  cueshift render movie.mp4 overlay.vtt -o overlay.ass --burn movie.overlay.mp4`,
	Args: cobra.ExactArgs(2),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().String("burn", "", "Burn the overlay into a copy of the video at this path")
	renderCmd.Flags().Float64("start", 0, "Seek here before playback (default from config)")
}

func runRender(cmd *cobra.Command, args []string) error {
	videoPath, trackPath := args[0], args[1]
	ctx := context.Background()

	burnPath, _ := cmd.Flags().GetString("burn")
	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".overlay.ass"
	}

	processor := video.NewProcessor()

	var (
		info *video.Info
		tr   *track.Track
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		info, err = processor.GetInfo(gctx, videoPath)
		if err != nil {
			return fmt.Errorf("failed to probe video: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		tr, err = loadTrack(trackPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	job, err := jobFromFlags(cmd, info.Duration.Seconds())
	if err != nil {
		return err
	}
	job.Track = tr
	if info.FrameRate > 0 {
		job.Playback.FPS = info.FrameRate
	}
	if job.Playback.Duration == 0 {
		job.Playback.Duration = tr.End()
	}

	logger.Infow("Rendering overlay",
		"video", videoPath,
		"track", trackPath,
		"fps", job.Playback.FPS,
		"duration", job.Playback.Duration,
		"size", fmt.Sprintf("%dx%d", info.Width, info.Height),
	)

	result, err := render.Simulate(ctx, job, logger)
	if err != nil {
		return err
	}

	sub := render.NewTimeline(result.Frames, result.Duration).Subtitle()

	writer, err := assWriter(cfg.Render, info)
	if err != nil {
		return err
	}
	writer.Title = filepath.Base(trackPath)

	if err := writer.Write(sub, outputPath); err != nil {
		return fmt.Errorf("failed to write overlay: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Overlay rendered successfully: %s\n", absOutput)
	fmt.Fprintf(out, "  Events: %d\n", len(sub.Entries))
	fmt.Fprintf(out, "  Frames: %d\n", result.Presented)

	if burnPath == "" {
		return nil
	}

	logger.Infow("Burning overlay into video",
		"output", burnPath,
	)
	if err := processor.BurnSubtitles(ctx, videoPath, outputPath, burnPath); err != nil {
		return err
	}

	absBurn, _ := filepath.Abs(burnPath)
	fmt.Fprintf(out, "  Video: %s\n", absBurn)
	return nil
}

// ASS writer styled from config, with the canvas matching the video when known
func assWriter(rc config.RenderConfig, info *video.Info) (*subtitle.ASSWriter, error) {
	primary, err := config.ASSColor(rc.PrimaryColor)
	if err != nil {
		return nil, fmt.Errorf("render.primary_color: %w", err)
	}
	outline, err := config.ASSColor(rc.OutlineColor)
	if err != nil {
		return nil, fmt.Errorf("render.outline_color: %w", err)
	}

	w := subtitle.NewASSWriter()
	w.FontName = rc.Font
	w.FontSize = rc.FontSize
	w.PrimaryColour = primary
	w.OutlineColour = outline
	w.Outline = rc.Outline
	w.PlayResX = rc.Width
	w.PlayResY = rc.Height
	if info != nil && info.Width > 0 && info.Height > 0 {
		w.PlayResX = info.Width
		w.PlayResY = info.Height
	}
	return w, nil
}
