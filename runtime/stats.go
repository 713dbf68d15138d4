package runtime

import (
	"github.com/dshills/inputcore/key"
)

// Stats counts runtime activity for debugging and tooling. All counts
// are cumulative since the runtime was created; the runtime is
// single-threaded so plain fields suffice.
type Stats struct {
	// Frames is the number of frames begun.
	Frames uint64

	// Events is the number of events accepted into open frames.
	Events uint64

	// EventsByDevice breaks Events down by the device class the
	// runtime's classifier assigns to each code. Nil until the first
	// event is accepted; without a classifier everything counts under
	// key.DeviceOther.
	EventsByDevice map[key.DeviceKind]uint64

	// Dropped is the number of events pushed outside an open frame.
	Dropped uint64

	// Resolutions is the number of completed resolve passes.
	Resolutions uint64

	// Resets is the number of runtime resets.
	Resets uint64

	// PeakEventsPerFrame is the largest event count seen in one frame.
	PeakEventsPerFrame uint64
}
