package history

import (
	"time"
)

// Default retention bounds. Queries scale with the retained log, not the
// whole session, so the log is kept small.
const (
	DefaultMaxEntries = 1024
	DefaultMaxFrames  = 120
)

// Entry is one recorded input occurrence.
type Entry[C comparable, S comparable] struct {
	// Code identifies the key or button.
	Code C

	// State is the state carried by the event.
	State S

	// Time is when the event occurred.
	Time time.Time
}

// Log is an append-only chronological record of raw events with
// frame-boundary bookkeeping. It answers temporal pattern queries that
// span multiple frames: combos, frame windows, ordered sequences.
//
// The log does not interpret state beyond the injected activity
// predicate and does not resolve actions; it only remembers.
//
// Retention: entries older than MaxFrames frame boundaries or beyond
// MaxEntries are pruned at EndFrame. The latest entry per key is kept in
// a separate table that survives pruning, so MatchCombo's
// latest-state-per-key semantics hold across arbitrarily old presses.
type Log[C comparable, S comparable] struct {
	active func(S) bool
	clock  func() time.Time

	maxEntries int
	maxFrames  int

	entries []Entry[C, S]

	// frames holds the entry count at each BeginFrame, oldest first.
	frames []int

	// latest tracks the most recent entry per key, pruning-proof.
	latest map[C]Entry[C, S]

	// Continuous-hold bookkeeping.
	holdStart map[C]time.Time
	holdDur   map[C]time.Duration

	lastTime  time.Time
	frameTime time.Time
	inFrame   bool
}

// Option configures a Log.
type Option[C comparable, S comparable] func(*Log[C, S])

// WithMaxEntries bounds the number of retained entries.
func WithMaxEntries[C comparable, S comparable](n int) Option[C, S] {
	return func(l *Log[C, S]) {
		if n > 0 {
			l.maxEntries = n
		}
	}
}

// WithMaxFrames bounds the number of retained frame windows.
func WithMaxFrames[C comparable, S comparable](n int) Option[C, S] {
	return func(l *Log[C, S]) {
		if n > 0 {
			l.maxFrames = n
		}
	}
}

// WithClock sets the time source used for time-window queries.
// The default is time.Now. Tests use this for determinism.
func WithClock[C comparable, S comparable](clock func() time.Time) Option[C, S] {
	return func(l *Log[C, S]) {
		l.clock = clock
	}
}

// NewLog creates a log for states classified by the given activity
// predicate.
func NewLog[C comparable, S comparable](active func(S) bool, opts ...Option[C, S]) *Log[C, S] {
	l := &Log[C, S]{
		active:     active,
		clock:      time.Now,
		maxEntries: DefaultMaxEntries,
		maxFrames:  DefaultMaxFrames,
		latest:     make(map[C]Entry[C, S]),
		holdStart:  make(map[C]time.Time),
		holdDur:    make(map[C]time.Duration),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// BeginFrame marks a frame boundary for frame-windowed queries.
// A second BeginFrame without an intervening EndFrame is a no-op.
func (l *Log[C, S]) BeginFrame() {
	if l.inFrame {
		return
	}
	l.inFrame = true
	l.frameTime = l.clock()
	l.frames = append(l.frames, len(l.entries))
}

// AddEvent appends an entry and updates hold bookkeeping. Timestamps
// must be non-decreasing; an earlier timestamp is clamped forward to
// preserve chronological order.
func (l *Log[C, S]) AddEvent(code C, state S, at time.Time) {
	if at.Before(l.lastTime) {
		at = l.lastTime
	}
	l.lastTime = at

	entry := Entry[C, S]{Code: code, State: state, Time: at}

	wasActive := l.latestActive(code)
	isActive := l.active(state)
	switch {
	case isActive && !wasActive:
		l.holdStart[code] = at
		l.holdDur[code] = 0
	case !isActive && wasActive:
		if start, ok := l.holdStart[code]; ok {
			l.holdDur[code] = at.Sub(start)
		}
	}

	l.entries = append(l.entries, entry)
	l.latest[code] = entry
}

// EndFrame consolidates hold durations for keys still active and prunes
// entries outside the retention policy.
func (l *Log[C, S]) EndFrame() {
	if !l.inFrame {
		return
	}
	l.inFrame = false

	for code, start := range l.holdStart {
		if !l.latestActive(code) {
			continue
		}
		if d := l.frameTime.Sub(start); d > l.holdDur[code] {
			l.holdDur[code] = d
		}
	}

	l.prune()
}

// prune drops entries beyond the frame and entry bounds, keeping frame
// boundary offsets consistent.
func (l *Log[C, S]) prune() {
	cut := 0
	if excess := len(l.frames) - l.maxFrames; excess > 0 {
		cut = l.frames[excess]
		l.frames = l.frames[excess:]
	}
	if over := len(l.entries) - l.maxEntries; over > cut {
		cut = over
	}
	if cut == 0 {
		return
	}

	l.entries = append(l.entries[:0:0], l.entries[cut:]...)
	frames := l.frames[:0]
	for _, f := range l.frames {
		f -= cut
		if f < 0 {
			f = 0
		}
		frames = append(frames, f)
	}
	l.frames = frames
}

// Clear empties the log: entries, frame boundaries, latest-state table,
// and hold bookkeeping.
func (l *Log[C, S]) Clear() {
	l.entries = nil
	l.frames = nil
	clear(l.latest)
	clear(l.holdStart)
	clear(l.holdDur)
	l.lastTime = time.Time{}
	l.inFrame = false
}

// IsEmpty reports whether the log holds no entries.
func (l *Log[C, S]) IsEmpty() bool {
	return len(l.entries) == 0
}

// Len returns the number of retained entries.
func (l *Log[C, S]) Len() int {
	return len(l.entries)
}

// History returns the retained entries, oldest first. The slice is a
// view over the log's backing storage, valid until the next mutation;
// callers must not modify it.
func (l *Log[C, S]) History() []Entry[C, S] {
	return l.entries
}

// HoldDuration returns the accumulated continuous-hold duration for the
// key: while the key is active, the time from hold start to the current
// frame; after release, the length of the last completed hold.
// ok is false if the key has never been active.
func (l *Log[C, S]) HoldDuration(code C) (time.Duration, bool) {
	d, ok := l.holdDur[code]
	if !ok {
		if start, sok := l.holdStart[code]; sok && l.latestActive(code) {
			return l.frameTime.Sub(start), true
		}
		return 0, false
	}
	return d, true
}

// latestActive reports whether the key's most recent recorded state is
// active.
func (l *Log[C, S]) latestActive(code C) bool {
	e, ok := l.latest[code]
	return ok && l.active(e.State)
}

// windowStart returns the entry offset of the window covering the last
// prevFrames frame boundaries. prevFrames <= 0 selects only the open
// frame; a count beyond the retained boundaries selects everything.
func (l *Log[C, S]) windowStart(prevFrames int) int {
	if prevFrames <= 0 {
		prevFrames = 1
	}
	if prevFrames >= len(l.frames) {
		return 0
	}
	return l.frames[len(l.frames)-prevFrames]
}
