package cli

import (
	"fmt"
	"os"

	"github.com/mgpai22/cueshift/internal/subtitle"
	"github.com/mgpai22/cueshift/internal/track"
)

// reads a WebVTT or SRT file into an ordered cue track
func loadTrack(path string) (*track.Track, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("track file not found: %s", path)
	}

	sub, err := subtitle.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load track: %w", err)
	}

	tr := track.FromSubtitle(sub)
	logger.Debugw("Loaded track",
		"path", path,
		"cues", tr.Len(),
		"end", tr.End(),
	)
	return tr, nil
}
