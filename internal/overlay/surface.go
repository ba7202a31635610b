package overlay

import "github.com/mgpai22/cueshift/internal/cue"

// how an element is laid out on the overlay
type Kind string

const (
	// absolutely positioned, driven by a move directive
	KindPositioned Kind = "positioned"
	// inline caption, never moves
	KindInline Kind = "inline"
)

// Element is one visual element on the overlay. Position is only
// meaningful for positioned elements.
type Element struct {
	ID       string    `json:"id"`
	Kind     Kind      `json:"kind"`
	Text     string    `json:"text"`
	DataText string    `json:"data_text,omitempty"`
	Position cue.Point `json:"position"`
}

// Surface is the visible overlay region. Callers write element existence
// and positions; they never read layout back from it.
type Surface interface {
	// adds an element; an element with the same id is replaced
	Append(el Element)
	// repositions an element, reporting false when no such element exists
	Move(id string, p cue.Point) bool
	// removes every element
	Clear()
}

// MemorySurface keeps elements in insertion order in memory.
type MemorySurface struct {
	order    []string
	elements map[string]*Element
}

func NewMemorySurface() *MemorySurface {
	return &MemorySurface{
		elements: make(map[string]*Element),
	}
}

func (s *MemorySurface) Append(el Element) {
	if existing, ok := s.elements[el.ID]; ok {
		*existing = el
		return
	}
	stored := el
	s.elements[el.ID] = &stored
	s.order = append(s.order, el.ID)
}

func (s *MemorySurface) Move(id string, p cue.Point) bool {
	el, ok := s.elements[id]
	if !ok {
		return false
	}
	el.Position = p
	return true
}

func (s *MemorySurface) Clear() {
	s.order = nil
	s.elements = make(map[string]*Element)
}

// removes a single element; used to emulate outside interference
func (s *MemorySurface) Remove(id string) {
	if _, ok := s.elements[id]; !ok {
		return
	}
	delete(s.elements, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *MemorySurface) Get(id string) (Element, bool) {
	el, ok := s.elements[id]
	if !ok {
		return Element{}, false
	}
	return *el, true
}

func (s *MemorySurface) Len() int {
	return len(s.order)
}

// copy of every element in insertion order
func (s *MemorySurface) Elements() []Element {
	out := make([]Element, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.elements[id])
	}
	return out
}
