package track

import (
	"github.com/mgpai22/cueshift/internal/cue"
)

// Oracle reports the active cue set of a track whenever it changes.
// The set starts out empty.
type Oracle struct {
	track    *Track
	listener func(active []cue.Source)
	lastIDs  []string
	force    bool
}

func NewOracle(track *Track, listener func(active []cue.Source)) *Oracle {
	return &Oracle{
		track:    track,
		listener: listener,
	}
}

// Sync computes the active set at t and notifies the listener when it
// differs from the previous one. It reports whether a change was signalled.
func (o *Oracle) Sync(t float64) bool {
	active := o.track.ActiveAt(t)
	ids := make([]string, len(active))
	for i, c := range active {
		ids[i] = c.ID
	}

	if !o.force && equalIDs(ids, o.lastIDs) {
		return false
	}

	o.force = false
	o.lastIDs = ids
	if o.listener != nil {
		o.listener(active)
	}
	return true
}

// makes the next Sync signal even if the set is unchanged
func (o *Oracle) Reset() {
	o.force = true
	o.lastIDs = nil
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
