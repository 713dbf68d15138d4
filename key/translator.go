package key

// Translator converts between a backend's own key representation and the
// engine-native Code. B is whatever the backend uses to identify keys:
// an OS scancode, a library enum, a HID usage, a rune.
//
// Both directions are partial: a backend may produce keys the engine does
// not model, and the engine namespace may contain codes a backend cannot
// emit. Unknown values report ok=false, never an error.
type Translator[B any] interface {
	// FromBackend converts a backend key to the engine-native code.
	FromBackend(b B) (Code, bool)

	// ToBackend converts an engine-native code to the backend key.
	ToBackend(c Code) (B, bool)
}

// Equivalent reports whether a backend key maps to the given native code
// under the translator.
func Equivalent[B any](t Translator[B], native Code, backend B) bool {
	c, ok := t.FromBackend(backend)
	return ok && c == native
}
