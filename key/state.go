package key

// State is the logical state carried by a key event.
// The pipeline does not depend on this exact enumeration; the processing
// and history layers accept any comparable state type together with an
// activity predicate. State is the engine's default for digital backends.
type State uint8

const (
	// StateReleased indicates the key is up.
	StateReleased State = iota
	// StatePressed indicates the key went down.
	StatePressed
	// StateRepeated indicates an auto-repeat while the key is down.
	StateRepeated
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StatePressed:
		return "pressed"
	case StateRepeated:
		return "repeated"
	default:
		return "released"
	}
}

// Active reports whether the state counts as "key is down".
// This is the default activity predicate for the pipeline.
func (s State) Active() bool {
	return s == StatePressed || s == StateRepeated
}

// StateActive is Active as a free function, in the form the processing
// and history layers accept.
func StateActive(s State) bool {
	return s.Active()
}
