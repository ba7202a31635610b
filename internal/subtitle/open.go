package subtitle

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// parses a text track, choosing the format from the file extension
func Open(path string) (*Subtitle, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".srt":
		return openWith(path, "SRT", ParseSRT)
	case ".vtt":
		return openWith(path, "VTT", ParseVTT)
	default:
		return nil, fmt.Errorf("unsupported text track format: %s", ext)
	}
}

func openWith(
	path, name string,
	parse func(r io.Reader) (*Subtitle, error),
) (*Subtitle, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file: %w", name, err)
	}
	defer func() {
		_ = file.Close()
	}()

	return parse(file)
}
