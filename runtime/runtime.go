package runtime

import (
	"time"

	"github.com/dshills/inputcore/history"
	"github.com/dshills/inputcore/key"
	"github.com/dshills/inputcore/mapping"
	"github.com/dshills/inputcore/processing"
)

// Runtime owns the three pipeline components and steps them through the
// frame cycle: BeginFrame propagates in dependency order (processing,
// history, mapping), events are pushed one at a time into history and
// processing, and EndFrame finalizes processing, finalizes history,
// resolves mapping, and seals the resolved actions.
//
// The runtime is single-threaded and strictly frame-synchronous. If raw
// events originate on another thread, marshaling them onto the frame
// thread is the raw-event source's job (see the backend package).
//
// Frame misuse never corrupts state: a second BeginFrame before
// EndFrame is a no-op, and events pushed outside an open frame are
// dropped and counted.
type Runtime[C comparable, S comparable] struct {
	proc   *processing.Engine[C, S]
	hist   *history.Log[C, S]
	mapper *mapping.Resolver[C]

	classify func(C) key.DeviceKind

	stats Stats

	// frameEvents counts events pushed into the open frame, feeding
	// the peak counter.
	frameEvents uint64

	inFrame bool
}

// Option configures a Runtime.
type Option[C comparable, S comparable] func(*config[C, S])

type config[C comparable, S comparable] struct {
	procOpts []processing.Option[C, S]
	histOpts []history.Option[C, S]
	classify func(C) key.DeviceKind
}

// WithProcessingOptions forwards options to the processing engine.
func WithProcessingOptions[C comparable, S comparable](opts ...processing.Option[C, S]) Option[C, S] {
	return func(c *config[C, S]) {
		c.procOpts = append(c.procOpts, opts...)
	}
}

// WithHistoryOptions forwards options to the history log.
func WithHistoryOptions[C comparable, S comparable](opts ...history.Option[C, S]) Option[C, S] {
	return func(c *config[C, S]) {
		c.histOpts = append(c.histOpts, opts...)
	}
}

// WithDeviceClassifier sets the function that assigns a device class to
// each code for the per-device event counters. Without one, all events
// count under key.DeviceOther.
func WithDeviceClassifier[C comparable, S comparable](fn func(C) key.DeviceKind) Option[C, S] {
	return func(c *config[C, S]) {
		c.classify = fn
	}
}

// NewRuntime creates a runtime for states classified by the given
// activity predicate.
func NewRuntime[C comparable, S comparable](active func(S) bool, opts ...Option[C, S]) *Runtime[C, S] {
	var cfg config[C, S]
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Runtime[C, S]{
		proc:     processing.NewEngine[C](active, cfg.procOpts...),
		hist:     history.NewLog[C](active, cfg.histOpts...),
		mapper:   mapping.NewResolver[C](),
		classify: cfg.classify,
	}
}

// New creates a runtime over the engine-native key types, classified by
// key.StateActive, with device counters keyed by key.Code.Device.
func New(opts ...Option[key.Code, key.State]) *Runtime[key.Code, key.State] {
	opts = append([]Option[key.Code, key.State]{
		WithDeviceClassifier[key.Code, key.State](key.Code.Device),
	}, opts...)
	return NewRuntime[key.Code, key.State](key.StateActive, opts...)
}

// BeginFrame opens a frame, propagating to processing, history, and
// mapping in dependency order. Idempotent while a frame is open.
func (r *Runtime[C, S]) BeginFrame() {
	if r.inFrame {
		return
	}
	r.inFrame = true
	r.frameEvents = 0
	r.proc.BeginFrame()
	r.hist.BeginFrame()
	r.mapper.BeginFrame()
	r.stats.Frames++
}

// Push feeds one raw event into the open frame: history first, then
// processing, preserving arrival order. Events outside an open frame
// are dropped and counted in Stats.
func (r *Runtime[C, S]) Push(code C, state S, at time.Time) {
	if !r.inFrame {
		r.stats.Dropped++
		return
	}
	r.hist.AddEvent(code, state, at)
	r.proc.Apply(code, state, at)
	r.stats.Events++
	device := key.DeviceOther
	if r.classify != nil {
		device = r.classify(code)
	}
	if r.stats.EventsByDevice == nil {
		r.stats.EventsByDevice = make(map[key.DeviceKind]uint64)
	}
	r.stats.EventsByDevice[device]++
	r.frameEvents++
	if r.frameEvents > r.stats.PeakEventsPerFrame {
		r.stats.PeakEventsPerFrame = r.frameEvents
	}
}

// PushEvent feeds one raw event expressed as a processing.Event.
func (r *Runtime[C, S]) PushEvent(ev processing.Event[C, S]) {
	r.Push(ev.Code, ev.State, ev.Time)
}

// EndFrame closes the frame: processing transitions are finalized,
// history bookkeeping is consolidated, mapping resolves actions from
// the finalized views, and the resolved set is sealed. A stray EndFrame
// without an open frame is a no-op.
func (r *Runtime[C, S]) EndFrame() {
	if !r.inFrame {
		return
	}
	r.inFrame = false
	r.proc.EndFrame()
	r.hist.EndFrame()
	r.mapper.Resolve(r.proc, r.hist)
	r.mapper.EndFrame()
	r.stats.Resolutions++
}

// Reset discards processing state and history, and clears the resolved
// action cache. Bindings and contexts survive; use this on scene change
// or focus loss.
func (r *Runtime[C, S]) Reset() {
	r.proc.Reset()
	r.hist.Clear()
	r.mapper.ClearResolved()
	r.inFrame = false
	r.stats.Resets++
}

// InFrame reports whether a frame is open.
func (r *Runtime[C, S]) InFrame() bool {
	return r.inFrame
}

// Processing returns the mutable processing engine handle.
func (r *Runtime[C, S]) Processing() *processing.Engine[C, S] {
	return r.proc
}

// History returns the mutable history log handle.
func (r *Runtime[C, S]) History() *history.Log[C, S] {
	return r.hist
}

// Mapping returns the mutable mapping resolver handle.
func (r *Runtime[C, S]) Mapping() *mapping.Resolver[C] {
	return r.mapper
}

// Game returns the read-only facade for gameplay code.
func (r *Runtime[C, S]) Game() Game[C, S] {
	return Game[C, S]{rt: r}
}

// Stats returns a copy of the runtime counters.
func (r *Runtime[C, S]) Stats() Stats {
	s := r.stats
	if r.stats.EventsByDevice != nil {
		s.EventsByDevice = make(map[key.DeviceKind]uint64, len(r.stats.EventsByDevice))
		for d, n := range r.stats.EventsByDevice {
			s.EventsByDevice[d] = n
		}
	}
	return s
}

