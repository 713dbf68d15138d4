package key

import (
	"fmt"
	"time"
)

// Event represents a single atomic input occurrence: one key or button
// changing state at one instant. Events are immutable once produced.
type Event struct {
	// Code identifies the key or button.
	Code Code

	// State is the new logical state carried by the event.
	State State

	// Device identifies the class of device that produced the event.
	Device DeviceKind

	// Time is when the event occurred.
	Time time.Time
}

// NewEvent creates an event with an explicit timestamp.
func NewEvent(code Code, state State, device DeviceKind, at time.Time) Event {
	return Event{
		Code:   code,
		State:  state,
		Device: device,
		Time:   at,
	}
}

// NewPress creates a keyboard press event stamped with the current time.
func NewPress(code Code) Event {
	return NewEvent(code, StatePressed, DeviceKeyboard, time.Now())
}

// NewRelease creates a keyboard release event stamped with the current time.
func NewRelease(code Code) Event {
	return NewEvent(code, StateReleased, DeviceKeyboard, time.Now())
}

// Equals returns true if two events represent the same occurrence.
// Timestamps are not compared.
func (e Event) Equals(other Event) bool {
	return e.Code == other.Code &&
		e.State == other.State &&
		e.Device == other.Device
}

// Age returns the time elapsed since the event occurred.
func (e Event) Age() time.Duration {
	return time.Since(e.Time)
}

// String returns a human-readable representation.
// Examples: "space pressed", "a released (gamepad)"
func (e Event) String() string {
	if e.Device == DeviceKeyboard {
		return fmt.Sprintf("%s %s", e.Code, e.State)
	}
	return fmt.Sprintf("%s %s (%s)", e.Code, e.State, e.Device)
}
