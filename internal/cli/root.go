package cli

import (
	"github.com/mgpai22/cueshift/internal/config"
	"github.com/mgpai22/cueshift/internal/ffmpeg"
	"github.com/mgpai22/cueshift/internal/logging"
	"github.com/spf13/cobra"
)

// commands annotated with this do not read the config file
const skipConfigAnnotation = "skip_config"

var (
	verbose    bool
	configPath string
	logger     *logging.Logger
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "cueshift",
	Short: "Play back animated cue overlays against a video timeline",
	Long: `Cueshift reads metadata text tracks (WebVTT or SRT) whose cues carry
overlay directives, and keeps the overlay in step with video playback.

A cue payload is either plain caption text or a JSON move directive:

  {"type":"move","text":"Hi","from":{"x":0,"y":0},"to":{"x":100,"y":0}}

Move cues glide linearly from 'from' to 'to' across the cue window. Playback
is simulated frame by frame, so overlays can be inspected, traced and
rendered to ASS or burned into the video.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)

		if cmd.Annotations[skipConfigAnnotation] == "true" {
			cfg = config.DefaultConfig()
			return nil
		}

		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		ffmpeg.SetOverrides(ffmpeg.BinaryPaths{
			FFmpeg:  cfg.FFmpeg.FFmpegPath,
			FFprobe: cfg.FFmpeg.FFprobePath,
		})
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/cueshift/config.toml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
}
