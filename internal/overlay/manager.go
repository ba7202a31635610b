package overlay

import (
	"github.com/mgpai22/cueshift/internal/cue"
	"github.com/mgpai22/cueshift/internal/logging"
)

// Manager owns the visual elements for the current directive set.
type Manager struct {
	surface Surface
	logger  *logging.Logger
}

func NewManager(surface Surface, logger *logging.Logger) *Manager {
	return &Manager{
		surface: surface,
		logger:  logging.OrNop(logger).Named("overlay"),
	}
}

// removes every visual element
func (m *Manager) Clear() {
	m.surface.Clear()
}

// Materialize replaces all visuals with one element per directive,
// in directive order.
func (m *Manager) Materialize(directives []cue.Directive) {
	m.surface.Clear()
	for _, d := range directives {
		m.surface.Append(elementFor(d))
	}
}

// Place moves the element for directive id. A missing element is skipped;
// the next rebuild recreates it.
func (m *Manager) Place(id string, p cue.Point) bool {
	elementID := cue.ElementID(id)
	if !m.surface.Move(elementID, p) {
		m.logger.Debugw("Skipping update for missing element",
			"element", elementID,
		)
		return false
	}
	return true
}

func elementFor(d cue.Directive) Element {
	switch d := d.(type) {
	case cue.Move:
		return Element{
			ID:       cue.ElementID(d.ID),
			Kind:     KindPositioned,
			Text:     d.Text,
			DataText: d.Text,
			Position: d.From,
		}
	case cue.Static:
		return Element{
			ID:   cue.ElementID(d.ID),
			Kind: KindInline,
			Text: d.Text,
		}
	default:
		panic("overlay: unknown directive variant")
	}
}
