package ffmpeg

import (
	"fmt"
	"os"
	"os/exec"
	"sync"
)

const (
	envFFmpegPath  = "CUESHIFT_FFMPEG_PATH"
	envFFprobePath = "CUESHIFT_FFPROBE_PATH"
)

type BinaryPaths struct {
	FFmpeg  string
	FFprobe string
}

func (p BinaryPaths) complete() bool {
	return p.FFmpeg != "" && p.FFprobe != ""
}

// fills whichever path is still empty from other
func (p BinaryPaths) merge(other BinaryPaths) BinaryPaths {
	if p.FFmpeg == "" {
		p.FFmpeg = other.FFmpeg
	}
	if p.FFprobe == "" {
		p.FFprobe = other.FFprobe
	}
	return p
}

var (
	mu        sync.Mutex
	overrides BinaryPaths
	resolved  *BinaryPaths
)

// SetOverrides records configured binary paths. Environment variables
// still take precedence. It must be called before the first lookup to
// have an effect.
func SetOverrides(paths BinaryPaths) {
	mu.Lock()
	defer mu.Unlock()
	overrides = paths
}

// Ensure resolves both binaries once per process.
func Ensure() (BinaryPaths, error) {
	mu.Lock()
	defer mu.Unlock()
	if resolved != nil {
		return *resolved, nil
	}

	paths, err := resolve(os.Getenv, exec.LookPath, overrides)
	if err != nil {
		return BinaryPaths{}, err
	}
	resolved = &paths
	return paths, nil
}

func FFmpegPath() (string, error) {
	paths, err := Ensure()
	if err != nil {
		return "", err
	}
	return paths.FFmpeg, nil
}

func FFprobePath() (string, error) {
	paths, err := Ensure()
	if err != nil {
		return "", err
	}
	return paths.FFprobe, nil
}

// environment first, then configured paths, then PATH
func resolve(
	getenv func(string) string,
	lookPath func(string) (string, error),
	configured BinaryPaths,
) (BinaryPaths, error) {
	paths := BinaryPaths{
		FFmpeg:  getenv(envFFmpegPath),
		FFprobe: getenv(envFFprobePath),
	}
	paths = paths.merge(configured)

	if paths.FFmpeg == "" {
		if p, err := lookPath("ffmpeg"); err == nil {
			paths.FFmpeg = p
		}
	}
	if paths.FFprobe == "" {
		if p, err := lookPath("ffprobe"); err == nil {
			paths.FFprobe = p
		}
	}

	if !paths.complete() {
		return BinaryPaths{}, fmt.Errorf(
			"ffmpeg and ffprobe not found: install them, set %s/%s or the [ffmpeg] config section",
			envFFmpegPath,
			envFFprobePath,
		)
	}
	return paths, nil
}
