// Package key defines the identity model shared by every layer of the
// input pipeline: key codes, event states, device kinds, and the atomic
// Event record.
//
// The engine-native Code namespace covers keyboards, mice, and gamepads.
// Backends that use their own identifiers implement Translator to convert
// in both directions; the rest of the pipeline never sees backend types.
//
// The pipeline layers (processing, history) are generic over the state
// type and only require an activity predicate, so a backend with richer
// states than Pressed/Released/Repeated can supply its own tag type
// without touching this package.
package key
