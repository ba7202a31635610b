package cli

import (
	"context"
	"fmt"

	"github.com/mgpai22/cueshift/internal/video"
	"github.com/spf13/cobra"
)

var probeCmd = &cobra.Command{
	Use:   "probe [video_file]",
	Short: "Show the frame rate, size and duration of a video",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := video.NewProcessor().GetInfo(context.Background(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n", info.Path)
		fmt.Fprintf(out, "  Codec: %s\n", info.Codec)
		fmt.Fprintf(out, "  Size: %dx%d\n", info.Width, info.Height)
		fmt.Fprintf(out, "  Frame rate: %.3f fps\n", info.FrameRate)
		fmt.Fprintf(out, "  Duration: %s\n", info.Duration.String())
		fmt.Fprintf(out, "  Audio: %t\n", info.HasAudio)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)
}
