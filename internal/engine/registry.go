package engine

import "github.com/mgpai22/cueshift/internal/cue"

// Registry holds the directives for the current activation set. The
// sequence is only ever swapped whole, so a reader sees either the old set
// or the new one.
type Registry struct {
	directives []cue.Directive
}

func NewRegistry() *Registry {
	return &Registry{}
}

// installs a fully built sequence; ds is copied
func (r *Registry) Replace(ds []cue.Directive) {
	next := make([]cue.Directive, len(ds))
	copy(next, ds)
	r.directives = next
}

func (r *Registry) Clear() {
	r.directives = nil
}

// Directives returns the current sequence. Callers must not modify it.
func (r *Registry) Directives() []cue.Directive {
	return r.directives
}

func (r *Registry) Len() int {
	return len(r.directives)
}
