package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

var srtTimingRegex = regexp.MustCompile(
	`^(\d{2,}):(\d{2}):(\d{2}),(\d{3})\s*-->\s*(\d{2,}):(\d{2}):(\d{2}),(\d{3})`,
)

// lines between blank lines, with the file line number of the first one
type srtBlock struct {
	line  int
	lines []string
}

// parses a SubRip track; the numeric counter becomes the cue identifier.
// Blocks without a counter and timing line are skipped.
func ParseSRT(r io.Reader) (*Subtitle, error) {
	blocks, err := readSRTBlocks(r)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, block := range blocks {
		if len(block.lines) < 2 {
			continue
		}
		counter := strings.TrimSpace(block.lines[0])
		index, err := strconv.Atoi(counter)
		if err != nil {
			continue
		}
		m := srtTimingRegex.FindStringSubmatch(strings.TrimSpace(block.lines[1]))
		if m == nil {
			continue
		}

		start, err := parseTimestamp(m[1], m[2], m[3], m[4])
		if err != nil {
			return nil, fmt.Errorf("invalid start timestamp at line %d: %w", block.line+1, err)
		}
		end, err := parseTimestamp(m[5], m[6], m[7], m[8])
		if err != nil {
			return nil, fmt.Errorf("invalid end timestamp at line %d: %w", block.line+1, err)
		}

		entries = append(entries, Entry{
			Index:     index,
			ID:        counter,
			StartTime: start,
			EndTime:   end,
			Text:      strings.Join(block.lines[2:], "\n"),
		})
	}

	return &Subtitle{
		Entries: entries,
		Format:  string(FormatSRT),
	}, nil
}

func readSRTBlocks(r io.Reader) ([]srtBlock, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var blocks []srtBlock
	var current *srtBlock
	lineNum := 0
	for scanner.Scan() {
		line := scanner.Text()
		lineNum++
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		if strings.TrimSpace(line) == "" {
			if current != nil {
				blocks = append(blocks, *current)
				current = nil
			}
			continue
		}
		if current == nil {
			current = &srtBlock{line: lineNum}
		}
		current.lines = append(current.lines, line)
	}
	if current != nil {
		blocks = append(blocks, *current)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading SRT file: %w", err)
	}
	return blocks, nil
}
