package track

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mgpai22/cueshift/internal/cue"
	"github.com/mgpai22/cueshift/internal/subtitle"
)

// namespace for ids derived from cue timing when a track has none
var cueNamespace = uuid.MustParse("9f1c2b52-6d1e-4a53-9a7e-3c8f4b1d2e60")

// Track is an ordered list of cues from one metadata text track.
type Track struct {
	cues []cue.Source
}

// FromSubtitle orders entries by start time, then by end time descending,
// keeping file order for ties. Entries without an identifier get a stable
// derived one and duplicate identifiers are suffixed.
func FromSubtitle(sub *subtitle.Subtitle) *Track {
	entries := make([]subtitle.Entry, len(sub.Entries))
	copy(entries, sub.Entries)
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].StartTime != entries[j].StartTime {
			return entries[i].StartTime < entries[j].StartTime
		}
		return entries[i].EndTime > entries[j].EndTime
	})

	taken := make(map[string]bool, len(entries))
	cues := make([]cue.Source, 0, len(entries))
	for i, entry := range entries {
		id := entry.ID
		if id == "" {
			id = derivedID(i, entry)
		}
		id = uniqueID(id, taken)
		taken[id] = true

		cues = append(cues, cue.Source{
			ID:        id,
			StartTime: entry.StartTime.Seconds(),
			EndTime:   entry.EndTime.Seconds(),
			Payload:   entry.Text,
		})
	}

	return &Track{cues: cues}
}

// id itself when free, otherwise the first free "<id>-<n>" from n = 2
func uniqueID(id string, taken map[string]bool) string {
	if !taken[id] {
		return id
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", id, n)
		if !taken[candidate] {
			return candidate
		}
	}
}

func New(cues []cue.Source) *Track {
	out := make([]cue.Source, len(cues))
	copy(out, cues)
	return &Track{cues: out}
}

func derivedID(index int, entry subtitle.Entry) string {
	name := fmt.Sprintf("%d-%d-%d", index, entry.StartTime.Milliseconds(), entry.EndTime.Milliseconds())
	return uuid.NewSHA1(cueNamespace, []byte(name)).String()
}

func (t *Track) Cues() []cue.Source {
	out := make([]cue.Source, len(t.cues))
	copy(out, t.cues)
	return out
}

func (t *Track) Len() int {
	return len(t.cues)
}

// latest end time across all cues
func (t *Track) End() float64 {
	end := 0.0
	for _, c := range t.cues {
		if c.EndTime > end {
			end = c.EndTime
		}
	}
	return end
}

// cues whose window contains t, in track order
func (t *Track) ActiveAt(at float64) []cue.Source {
	var active []cue.Source
	for _, c := range t.cues {
		if isActive(c, at) {
			active = append(active, c)
		}
	}
	return active
}

func isActive(c cue.Source, at float64) bool {
	if c.EndTime <= c.StartTime {
		return at == c.StartTime
	}
	return c.StartTime <= at && at < c.EndTime
}

// Subtitle converts the ordered cues back into text track entries, with the
// resolved identifiers and untouched payloads.
func (t *Track) Subtitle() *subtitle.Subtitle {
	sub := &subtitle.Subtitle{Entries: make([]subtitle.Entry, 0, len(t.cues))}
	for i, c := range t.cues {
		sub.Entries = append(sub.Entries, subtitle.Entry{
			Index:     i + 1,
			ID:        c.ID,
			StartTime: seconds(c.StartTime),
			EndTime:   seconds(c.EndTime),
			Text:      c.Payload,
		})
	}
	return sub
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
