package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// hours are optional and may have more than two digits; cue settings
// after the end timestamp are ignored
var vttTimingRegex = regexp.MustCompile(
	`^(?:(\d{2,}):)?(\d{2}):(\d{2})\.(\d{3})\s+-->\s+(?:(\d{2,}):)?(\d{2}):(\d{2})\.(\d{3})(?:\s|$)`,
)

// parses a WebVTT track, keeping cue identifiers and multi-line payloads
func ParseVTT(r io.Reader) (*Subtitle, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var entries []Entry
	var current *Entry
	var textLines []string
	var pendingID string
	lineNum := 0
	headerParsed := false
	skipBlock := false

	flush := func() {
		if current != nil {
			current.Text = strings.Join(textLines, "\n")
			entries = append(entries, *current)
		}
		current = nil
		textLines = nil
		pendingID = ""
	}

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
			if !strings.HasPrefix(line, "WEBVTT") {
				return nil, fmt.Errorf("missing WEBVTT header")
			}
			headerParsed = true
			skipBlock = true
			continue
		}

		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			flush()
			skipBlock = false
			continue
		}

		if skipBlock {
			continue
		}

		if current == nil && pendingID == "" && isVTTMetaBlock(trimmed) {
			skipBlock = true
			continue
		}

		// an arrow inside cue text ends the cue and starts a new one
		// without an identifier
		if current != nil && strings.Contains(line, "-->") {
			flush()
		}

		if current == nil {
			if matches := vttTimingRegex.FindStringSubmatch(trimmed); matches != nil {
				start, err := parseTimestamp(matches[1], matches[2], matches[3], matches[4])
				if err != nil {
					return nil, fmt.Errorf("invalid start timestamp at line %d: %w", lineNum, err)
				}
				end, err := parseTimestamp(matches[5], matches[6], matches[7], matches[8])
				if err != nil {
					return nil, fmt.Errorf("invalid end timestamp at line %d: %w", lineNum, err)
				}
				current = &Entry{
					Index:     len(entries) + 1,
					ID:        pendingID,
					StartTime: start,
					EndTime:   end,
				}
				continue
			}

			if strings.Contains(trimmed, "-->") {
				// malformed timing line; the block is not a cue
				pendingID = ""
				skipBlock = true
				continue
			}

			if pendingID != "" {
				// not a cue block; skip it like a browser would
				pendingID = ""
				skipBlock = true
				continue
			}
			pendingID = trimmed
			continue
		}

		textLines = append(textLines, line)
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading VTT file: %w", err)
	}
	if !headerParsed {
		return nil, fmt.Errorf("missing WEBVTT header")
	}

	return &Subtitle{
		Entries: entries,
		Format:  string(FormatVTT),
	}, nil
}

func isVTTMetaBlock(line string) bool {
	for _, keyword := range []string{"NOTE", "STYLE", "REGION"} {
		if line == keyword ||
			strings.HasPrefix(line, keyword+" ") ||
			strings.HasPrefix(line, keyword+"\t") {
			return true
		}
	}
	return false
}
