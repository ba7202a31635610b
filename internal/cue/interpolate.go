package cue

import "math"

// fraction of the window [start, end] elapsed at t, clamped to [0, 1].
// A window with end <= start has no duration and is always complete.
func Progress(start, end, t float64) float64 {
	if !(end > start) {
		return 1
	}
	p := (t - start) / (end - start)
	switch {
	case math.IsNaN(p), p <= 0:
		return 0
	case p >= 1:
		return 1
	}
	return p
}

// on-screen coordinate of a move directive at playback time t
func Position(m Move, t float64) Point {
	p := Progress(m.StartTime, m.EndTime, t)
	switch p {
	case 0:
		return m.From
	case 1:
		return m.To
	}
	return Point{
		X: lerp(m.From.X, m.To.X, p),
		Y: lerp(m.From.Y, m.To.Y, p),
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
