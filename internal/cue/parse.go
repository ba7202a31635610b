package cue

import (
	"github.com/tidwall/gjson"
)

const moveType = "move"

// why a payload was rendered as plain text instead of its declared form
type Fallback int

const (
	FallbackNone Fallback = iota
	// payload is not valid JSON
	FallbackMalformed
	// payload is JSON but not an object
	FallbackNotObject
	// declared move is missing from/to or carries non-numeric coordinates
	FallbackIncompleteMove
)

func (f Fallback) String() string {
	switch f {
	case FallbackNone:
		return "none"
	case FallbackMalformed:
		return "malformed"
	case FallbackNotObject:
		return "not_object"
	case FallbackIncompleteMove:
		return "incomplete_move"
	default:
		return "unknown"
	}
}

// Parse decodes a cue payload into a directive. It never fails: anything
// that is not a complete move object degrades to a Static directive.
func Parse(src Source) Directive {
	d, _ := ParseReport(src)
	return d
}

// ParseReport is Parse plus the reason for any degradation. Plain-text
// payloads without a type are FallbackNone only when they decode to an object.
func ParseReport(src Source) (Directive, Fallback) {
	meta := Meta{
		ID:        src.ID,
		StartTime: src.StartTime,
		EndTime:   src.EndTime,
		Text:      src.Payload,
	}

	if !gjson.Valid(src.Payload) {
		return Static{Meta: meta}, FallbackMalformed
	}

	doc := gjson.Parse(src.Payload)
	if !doc.IsObject() {
		return Static{Meta: meta}, FallbackNotObject
	}

	if text := field(doc, "text"); text.Type == gjson.String {
		meta.Text = text.Str
	}

	kind := field(doc, "type")
	if kind.Type != gjson.String || kind.Str != moveType {
		return Static{Meta: meta}, FallbackNone
	}

	from, okFrom := decodePoint(field(doc, "from"))
	to, okTo := decodePoint(field(doc, "to"))
	if !okFrom || !okTo {
		return Static{Meta: meta}, FallbackIncompleteMove
	}

	return Move{Meta: meta, From: from, To: to}, FallbackNone
}

func decodePoint(r gjson.Result) (Point, bool) {
	if !r.IsObject() {
		return Point{}, false
	}
	x := field(r, "x")
	y := field(r, "y")
	if x.Type != gjson.Number || y.Type != gjson.Number {
		return Point{}, false
	}
	return Point{X: x.Num, Y: y.Num}, true
}

// value of key in an object; when a key repeats the last one wins
func field(obj gjson.Result, key string) gjson.Result {
	var found gjson.Result
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.Str == key {
			found = v
		}
		return true
	})
	return found
}
