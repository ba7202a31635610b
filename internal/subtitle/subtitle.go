package subtitle

import (
	"time"
)

// represents single timed cue
type Entry struct {
	Index     int
	ID        string // cue identifier, empty when the file has none
	StartTime time.Duration
	EndTime   time.Duration
	Text      string
}

// represents complete text track
type Subtitle struct {
	Entries  []Entry
	Language string
	Format   string
}

// represents supported subtitle formats
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
	FormatASS Format = "ass"
)

// interface for writing subtitles to files
type Writer interface {
	Write(subtitle *Subtitle, path string) error
}
