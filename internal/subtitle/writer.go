package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// SubRip format
type SRTWriter struct{}

// WebVTT format
type VTTWriter struct{}

// Advanced SubStation Alpha format
type ASSWriter struct {
	Title         string
	FontName      string
	FontSize      int
	PrimaryColour string // &HAABBGGRR
	OutlineColour string
	Outline       float64
	PlayResX      int
	PlayResY      int
}

func NewWriter(format Format) (Writer, error) {
	switch format {
	case FormatSRT:
		return &SRTWriter{}, nil
	case FormatVTT:
		return &VTTWriter{}, nil
	case FormatASS:
		return NewASSWriter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// ASS writer with the default overlay style on a 1920x1080 canvas
func NewASSWriter() *ASSWriter {
	return &ASSWriter{
		Title:         "cueshift overlay",
		FontName:      "Arial",
		FontSize:      48,
		PrimaryColour: "&H00FFFFFF",
		OutlineColour: "&H00000000",
		Outline:       2,
		PlayResX:      1920,
		PlayResY:      1080,
	}
}

// writes the subtitle to an SRT file, numbering cues from 1
func (w *SRTWriter) Write(sub *Subtitle, path string) error {
	return writeCues(path, "", sub, ",", func(i int, _ Entry) string {
		return strconv.Itoa(i + 1)
	})
}

// writes the subtitle to a VTT file, keeping cue identifiers
func (w *VTTWriter) Write(sub *Subtitle, path string) error {
	return writeCues(path, "WEBVTT\n\n", sub, ".", func(i int, e Entry) string {
		if e.ID != "" {
			return e.ID
		}
		return strconv.Itoa(i + 1)
	})
}

// shared SRT/VTT layout: label line, timing line, payload, blank line
func writeCues(
	path, header string,
	sub *Subtitle,
	sep string,
	label func(i int, e Entry) string,
) error {
	var sb strings.Builder
	sb.WriteString(header)
	for i, entry := range sub.Entries {
		fmt.Fprintf(&sb, "%s\n%s --> %s\n%s\n\n",
			label(i, entry),
			formatTimestamp(entry.StartTime, sep),
			formatTimestamp(entry.EndTime, sep),
			entry.Text)
	}
	return writeFile(path, sb.String())
}

// writes the subtitle to an ASS file; override tags in the text are kept
// and the cue identifier goes in the Name field
func (w *ASSWriter) Write(sub *Subtitle, path string) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "[Script Info]\nTitle: %s\nScriptType: v4.00+\n", w.Title)
	fmt.Fprintf(&sb, "PlayResX: %d\nPlayResY: %d\n", w.PlayResX, w.PlayResY)
	sb.WriteString("WrapStyle: 2\nScaledBorderAndShadow: yes\nCollisions: Normal\n\n")

	sb.WriteString("[V4+ Styles]\n")
	sb.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	// alignment 2 is bottom centre; positioned events override it with \an7
	fmt.Fprintf(&sb, "Style: Default,%s,%d,%s,&H000000FF,%s,&H00000000,0,0,0,0,100,100,0,0,1,%.1f,0,2,10,10,10,1\n\n",
		w.FontName, w.FontSize, w.PrimaryColour, w.OutlineColour, w.Outline)

	sb.WriteString("[Events]\n")
	sb.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")
	for _, entry := range sub.Entries {
		fmt.Fprintf(&sb, "Dialogue: 0,%s,%s,Default,%s,0,0,0,,%s\n",
			formatASSTimestamp(entry.StartTime),
			formatASSTimestamp(entry.EndTime),
			strings.ReplaceAll(entry.ID, ",", ";"),
			escapeASSText(entry.Text))
	}

	return writeFile(path, sb.String())
}

func escapeASSText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\\N")
	return strings.ReplaceAll(text, "\n", "\\N")
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return os.WriteFile(path, []byte(content), 0644)
}

// subtitle format based on file extension
func GetFormatFromExtension(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".srt":
		return FormatSRT
	case ".vtt":
		return FormatVTT
	case ".ass", ".ssa":
		return FormatASS
	default:
		return FormatSRT
	}
}
