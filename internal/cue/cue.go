package cue

// a coordinate in overlay-local pixel space
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// one active cue as reported by the track activation oracle
type Source struct {
	ID        string
	StartTime float64 // seconds
	EndTime   float64 // seconds
	Payload   string
}

// fields shared by every directive variant
type Meta struct {
	ID        string
	StartTime float64
	EndTime   float64
	Text      string
}

// Directive is the typed form of a cue's intended visual behaviour.
// The only implementations are Move and Static; consumers switch over
// both and nothing else.
type Directive interface {
	Info() Meta
	sealed()
}

// text that travels linearly from From to To over the cue window
type Move struct {
	Meta
	From Point
	To   Point
}

// stationary caption
type Static struct {
	Meta
}

func (m Move) Info() Meta { return m.Meta }
func (Move) sealed()      {}

func (s Static) Info() Meta { return s.Meta }
func (Static) sealed()      {}

// directive variant name, used for display and logging
type Kind string

const (
	KindMove   Kind = "move"
	KindStatic Kind = "static"
)

func KindOf(d Directive) Kind {
	switch d.(type) {
	case Move:
		return KindMove
	case Static:
		return KindStatic
	default:
		panic("cue: unknown directive variant")
	}
}

// identifier of the visual element that renders the directive with this id
func ElementID(id string) string {
	return "cue-" + id
}
