package overlay

import (
	"testing"

	"github.com/mgpai22/cueshift/internal/cue"
)

func testDirectives() []cue.Directive {
	return []cue.Directive{
		cue.Move{
			Meta: cue.Meta{ID: "1", StartTime: 10, EndTime: 20, Text: "Hi"},
			From: cue.Point{X: 5, Y: 6},
			To:   cue.Point{X: 100, Y: 0},
		},
		cue.Static{
			Meta: cue.Meta{ID: "2", StartTime: 10, EndTime: 30, Text: "Caption"},
		},
	}
}

func TestMaterializeCreatesOneElementPerDirective(t *testing.T) {
	surface := NewMemorySurface()
	m := NewManager(surface, nil)

	m.Materialize(testDirectives())

	elements := surface.Elements()
	if len(elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(elements))
	}

	moved := elements[0]
	if moved.ID != "cue-1" {
		t.Errorf("expected id cue-1, got %q", moved.ID)
	}
	if moved.Kind != KindPositioned {
		t.Errorf("expected positioned element, got %s", moved.Kind)
	}
	if moved.Position != (cue.Point{X: 5, Y: 6}) {
		t.Errorf("expected element at from point, got %+v", moved.Position)
	}
	if moved.Text != "Hi" || moved.DataText != "Hi" {
		t.Errorf("unexpected text %q / data %q", moved.Text, moved.DataText)
	}

	caption := elements[1]
	if caption.ID != "cue-2" || caption.Kind != KindInline || caption.Text != "Caption" {
		t.Errorf("unexpected inline element: %+v", caption)
	}
}

func TestMaterializeClearsPreviousElements(t *testing.T) {
	surface := NewMemorySurface()
	m := NewManager(surface, nil)

	m.Materialize(testDirectives())
	m.Materialize([]cue.Directive{
		cue.Static{Meta: cue.Meta{ID: "3", Text: "Only"}},
	})

	if surface.Len() != 1 {
		t.Fatalf("expected 1 element after rematerialize, got %d", surface.Len())
	}
	if _, ok := surface.Get("cue-1"); ok {
		t.Error("stale element cue-1 leaked from previous set")
	}
	if _, ok := surface.Get("cue-3"); !ok {
		t.Error("expected element cue-3")
	}
}

func TestClearRemovesEverything(t *testing.T) {
	surface := NewMemorySurface()
	m := NewManager(surface, nil)

	m.Materialize(testDirectives())
	m.Clear()

	if surface.Len() != 0 {
		t.Errorf("expected empty surface, got %d elements", surface.Len())
	}
}

func TestPlaceMissingElementIsSkipped(t *testing.T) {
	surface := NewMemorySurface()
	m := NewManager(surface, nil)
	m.Materialize(testDirectives())

	surface.Remove("cue-1")

	if m.Place("1", cue.Point{X: 1, Y: 1}) {
		t.Error("expected Place to report a missing element")
	}
	if !m.Place("2", cue.Point{X: 7, Y: 8}) {
		t.Error("expected Place to find cue-2")
	}
	el, _ := surface.Get("cue-2")
	if el.Position != (cue.Point{X: 7, Y: 8}) {
		t.Errorf("expected cue-2 at {7 8}, got %+v", el.Position)
	}
}

func TestMemorySurfaceAppendReplacesSameID(t *testing.T) {
	s := NewMemorySurface()
	s.Append(Element{ID: "cue-a", Text: "one"})
	s.Append(Element{ID: "cue-b", Text: "two"})
	s.Append(Element{ID: "cue-a", Text: "three"})

	elements := s.Elements()
	if len(elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(elements))
	}
	if elements[0].ID != "cue-a" || elements[0].Text != "three" {
		t.Errorf("expected replaced cue-a in first slot, got %+v", elements[0])
	}
}
