package render

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mgpai22/cueshift/internal/overlay"
	"github.com/mgpai22/cueshift/internal/subtitle"
)

// run of identical element state between two media times
type span struct {
	element overlay.Element
	start   float64
	end     float64
	order   int
}

// Timeline turns captured frames into timed subtitle events. Each element
// state is held from the frame it appears in until the next frame that
// changes or removes it.
type Timeline struct {
	spans []span
}

// NewTimeline collapses frames into spans. Frames must be in capture
// order; spans that would end before they start are dropped. end closes
// whatever is still visible after the last frame.
func NewTimeline(frames []Frame, end float64) *Timeline {
	open := make(map[string]*span)
	var closed []span
	order := 0

	closeSpan := func(id string, at float64) {
		s := open[id]
		delete(open, id)
		s.end = at
		if s.end > s.start {
			closed = append(closed, *s)
		}
	}

	for _, frame := range frames {
		seen := make(map[string]bool, len(frame.Elements))
		for _, el := range frame.Elements {
			seen[el.ID] = true
			if s, ok := open[el.ID]; ok {
				if s.element == el {
					continue
				}
				closeSpan(el.ID, frame.Time)
			}
			open[el.ID] = &span{element: el, start: frame.Time, order: order}
			order++
		}
		for _, id := range sortedIDs(open) {
			if !seen[id] {
				closeSpan(id, frame.Time)
			}
		}
	}
	for _, id := range sortedIDs(open) {
		closeSpan(id, end)
	}

	sort.SliceStable(closed, func(i, j int) bool {
		if closed[i].start != closed[j].start {
			return closed[i].start < closed[j].start
		}
		return closed[i].order < closed[j].order
	})

	return &Timeline{spans: closed}
}

func (tl *Timeline) Len() int {
	return len(tl.spans)
}

// Subtitle renders the timeline as ASS-ready entries. Positioned elements
// carry a top-left anchored \pos override; inline elements use the
// default bottom-centre placement.
func (tl *Timeline) Subtitle() *subtitle.Subtitle {
	sub := &subtitle.Subtitle{
		Format:  string(subtitle.FormatASS),
		Entries: make([]subtitle.Entry, 0, len(tl.spans)),
	}
	for i, s := range tl.spans {
		sub.Entries = append(sub.Entries, subtitle.Entry{
			Index:     i + 1,
			ID:        s.element.ID,
			StartTime: toDuration(s.start),
			EndTime:   toDuration(s.end),
			Text:      eventText(s.element),
		})
	}
	return sub
}

func eventText(el overlay.Element) string {
	text := escapeBraces(el.Text)
	if el.Kind != overlay.KindPositioned {
		return text
	}
	return fmt.Sprintf("{\\an7\\pos(%s,%s)}%s",
		formatCoord(el.Position.X),
		formatCoord(el.Position.Y),
		text)
}

// literal braces would otherwise open an override block
func escapeBraces(text string) string {
	text = strings.ReplaceAll(text, "{", "\\{")
	return strings.ReplaceAll(text, "}", "\\}")
}

func formatCoord(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func toDuration(seconds float64) time.Duration {
	return time.Duration(math.Round(seconds * float64(time.Second)))
}

func sortedIDs(m map[string]*span) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
