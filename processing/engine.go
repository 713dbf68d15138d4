package processing

import (
	"time"
)

// Event is one raw input occurrence as consumed by the engine.
// C is the key code type, S the backend-defined state type.
type Event[C comparable, S comparable] struct {
	// Code identifies the key or button.
	Code C

	// State is the new state carried by the event.
	State S

	// Time is when the event occurred.
	Time time.Time
}

// Engine tracks the immediate logical state of every key: current and
// previous frame snapshots, frame-local transitions, and press timing.
//
// It holds no long-term history; multi-frame pattern detection lives in
// the history package. The engine is strictly frame-stepped: BeginFrame,
// zero or more Update calls, EndFrame. Transitions are computed only at
// EndFrame because the full event set for the frame may not be known
// before then.
//
// All queries are total: unknown keys read as never active.
type Engine[C comparable, S comparable] struct {
	active func(S) bool
	clock  func() time.Time

	now  map[C]S
	prev map[C]S

	pressStart  map[C]time.Time
	lastRelease map[C]time.Time

	justPressed  map[C]struct{}
	justReleased map[C]struct{}

	anyPressed  bool
	anyReleased bool

	frameTime time.Time
	inFrame   bool
}

// Option configures an Engine.
type Option[C comparable, S comparable] func(*Engine[C, S])

// WithClock sets the time source used for duration queries.
// The default is time.Now. Tests use this for determinism.
func WithClock[C comparable, S comparable](clock func() time.Time) Option[C, S] {
	return func(e *Engine[C, S]) {
		e.clock = clock
	}
}

// NewEngine creates an engine for states classified by the given activity
// predicate: active(s) reports whether state s counts as "key is down".
func NewEngine[C comparable, S comparable](active func(S) bool, opts ...Option[C, S]) *Engine[C, S] {
	e := &Engine[C, S]{
		active:       active,
		clock:        time.Now,
		now:          make(map[C]S),
		prev:         make(map[C]S),
		pressStart:   make(map[C]time.Time),
		lastRelease:  make(map[C]time.Time),
		justPressed:  make(map[C]struct{}),
		justReleased: make(map[C]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BeginFrame starts a new frame: the current snapshot becomes the
// previous one and the prior frame's transitions are discarded.
// Must precede any Update call this frame. A second BeginFrame without
// an intervening EndFrame is a no-op.
func (e *Engine[C, S]) BeginFrame() {
	if e.inFrame {
		return
	}
	e.inFrame = true
	e.frameTime = e.clock()

	// Snapshot now -> prev.
	clear(e.prev)
	for k, s := range e.now {
		e.prev[k] = s
	}

	e.clearTransitions()
}

// Update folds a batch of events into the current snapshot and records
// press-start and last-release timestamps on activity transitions.
// May be called any number of times per frame. Transitions are not
// computed here; that happens in EndFrame.
func (e *Engine[C, S]) Update(events []Event[C, S]) {
	for _, ev := range events {
		e.Apply(ev.Code, ev.State, ev.Time)
	}
}

// Apply folds a single event into the current snapshot.
func (e *Engine[C, S]) Apply(code C, state S, at time.Time) {
	if !e.inFrame {
		return
	}
	wasActive := e.activeIn(e.now, code)
	e.now[code] = state

	isActive := e.active(state)
	switch {
	case isActive && !wasActive:
		e.pressStart[code] = at
	case !isActive && wasActive:
		e.lastRelease[code] = at
	}
}

// EndFrame computes this frame's transitions by diffing the current
// snapshot against the previous one. The transition queries stay valid
// until the next BeginFrame.
func (e *Engine[C, S]) EndFrame() {
	if !e.inFrame {
		return
	}
	e.inFrame = false

	for k := range e.now {
		nowActive := e.activeIn(e.now, k)
		prevActive := e.activeIn(e.prev, k)
		switch {
		case nowActive && !prevActive:
			e.justPressed[k] = struct{}{}
			e.anyPressed = true
		case !nowActive && prevActive:
			e.justReleased[k] = struct{}{}
			e.anyReleased = true
		}
	}
	// Keys that vanished from now (after a Clear mid-frame) count as released.
	for k := range e.prev {
		if _, ok := e.now[k]; ok {
			continue
		}
		if e.activeIn(e.prev, k) {
			e.justReleased[k] = struct{}{}
			e.anyReleased = true
		}
	}
}

// Reset discards all state: snapshots, transitions, and timers.
// Used on scene change or focus loss.
func (e *Engine[C, S]) Reset() {
	clear(e.now)
	clear(e.prev)
	clear(e.pressStart)
	clear(e.lastRelease)
	e.clearTransitions()
	e.inFrame = false
}

// Clear is Reset under its lifecycle name.
func (e *Engine[C, S]) Clear() {
	e.Reset()
}

// ClearTransitions discards only this frame's transition flags, leaving
// snapshots and timers intact. UI layers use this to consume input.
func (e *Engine[C, S]) ClearTransitions() {
	e.clearTransitions()
}

func (e *Engine[C, S]) clearTransitions() {
	clear(e.justPressed)
	clear(e.justReleased)
	e.anyPressed = false
	e.anyReleased = false
}

func (e *Engine[C, S]) activeIn(m map[C]S, code C) bool {
	s, ok := m[code]
	return ok && e.active(s)
}

// IsPressed reports whether the key is currently down.
func (e *Engine[C, S]) IsPressed(code C) bool {
	return e.activeIn(e.now, code)
}

// IsReleased reports whether the key is currently up.
func (e *Engine[C, S]) IsReleased(code C) bool {
	return !e.IsPressed(code)
}

// IsHeld reports whether the key is being held. Identical to IsPressed;
// the name reads better in game logic.
func (e *Engine[C, S]) IsHeld(code C) bool {
	return e.IsPressed(code)
}

// KeyState returns the current logical state of the key.
// ok is false if no event for the key has ever been seen.
func (e *Engine[C, S]) KeyState(code C) (S, bool) {
	s, ok := e.now[code]
	return s, ok
}

// JustPressed reports whether the key went down in the frame that most
// recently ended.
func (e *Engine[C, S]) JustPressed(code C) bool {
	_, ok := e.justPressed[code]
	return ok
}

// JustReleased reports whether the key went up in the frame that most
// recently ended.
func (e *Engine[C, S]) JustReleased(code C) bool {
	_, ok := e.justReleased[code]
	return ok
}

// AnyJustPressed reports whether any key went down this frame.
func (e *Engine[C, S]) AnyJustPressed() bool {
	return e.anyPressed
}

// AnyJustReleased reports whether any key went up this frame.
func (e *Engine[C, S]) AnyJustReleased() bool {
	return e.anyReleased
}

// ComboPressed reports whether every key in the combo is currently down.
// An empty combo reports false.
func (e *Engine[C, S]) ComboPressed(combo []C) bool {
	if len(combo) == 0 {
		return false
	}
	for _, c := range combo {
		if !e.IsPressed(c) {
			return false
		}
	}
	return true
}

// JustPressedCombo reports whether every key in the combo went down in
// this frame. An empty combo reports false.
func (e *Engine[C, S]) JustPressedCombo(combo []C) bool {
	if len(combo) == 0 {
		return false
	}
	for _, c := range combo {
		if !e.JustPressed(c) {
			return false
		}
	}
	return true
}

// PressedDuration returns how long the key has been held, measured to
// the current frame's start. ok is false if the key is not down.
// The value is non-decreasing across consecutive frames while held.
func (e *Engine[C, S]) PressedDuration(code C) (time.Duration, bool) {
	if !e.IsPressed(code) {
		return 0, false
	}
	start, ok := e.pressStart[code]
	if !ok {
		return 0, false
	}
	d := e.frameTime.Sub(start)
	if d < 0 {
		d = 0
	}
	return d, true
}

// TimeSinceRelease returns the time since the key was last released,
// measured to the current frame's start. ok is false if no release has
// been recorded.
func (e *Engine[C, S]) TimeSinceRelease(code C) (time.Duration, bool) {
	last, ok := e.lastRelease[code]
	if !ok {
		return 0, false
	}
	d := e.frameTime.Sub(last)
	if d < 0 {
		d = 0
	}
	return d, true
}

// PressedKeys returns all keys currently down. The slice is freshly
// allocated; order is unspecified.
func (e *Engine[C, S]) PressedKeys() []C {
	keys := make([]C, 0, len(e.now))
	for k := range e.now {
		if e.activeIn(e.now, k) {
			keys = append(keys, k)
		}
	}
	return keys
}

// SnapshotEntry pairs a key with its current logical state.
type SnapshotEntry[C comparable, S comparable] struct {
	Code  C
	State S
}

// Snapshot returns the current state of every known key, for logging,
// debugging, or editor tooling. Order is unspecified.
func (e *Engine[C, S]) Snapshot() []SnapshotEntry[C, S] {
	out := make([]SnapshotEntry[C, S], 0, len(e.now))
	for k, s := range e.now {
		out = append(out, SnapshotEntry[C, S]{Code: k, State: s})
	}
	return out
}

// FrameTime returns the timestamp captured at the current frame's start.
// Zero before the first BeginFrame.
func (e *Engine[C, S]) FrameTime() time.Time {
	return e.frameTime
}

// InFrame reports whether a frame is open (BeginFrame without EndFrame).
func (e *Engine[C, S]) InFrame() bool {
	return e.inFrame
}
