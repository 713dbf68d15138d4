package backend

import "github.com/dshills/inputcore/key"

// Source delivers raw key events from a hardware or terminal backend.
// Poll must not block: it returns every event that arrived since the
// previous call, in chronological order, or an empty slice.
type Source interface {
	Poll() []key.Event
}

// Func adapts a plain function to the Source interface.
type Func func() []key.Event

// Poll calls f.
func (f Func) Poll() []key.Event { return f() }
