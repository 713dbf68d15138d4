package mapping

import (
	"time"
)

// ActionState is the per-frame resolution of one bound action. It is
// derived, not authoritative: it is recomputed every frame from the
// processing and history views and sealed until the next frame.
type ActionState struct {
	// Pressed is true only in the frame the bound key went down.
	Pressed bool

	// Released is true only in the frame the bound key went up.
	Released bool

	// Held is true while the bound key is down.
	Held bool

	// Value is the analog magnitude of the action. Digital backends
	// yield 0.0 or 1.0 from Held.
	Value float32

	// Duration is how long the action has been held.
	Duration time.Duration
}

// KeyQuerier is the processing-engine view resolution reads from.
// *processing.Engine satisfies it.
type KeyQuerier[C comparable] interface {
	JustPressed(code C) bool
	JustReleased(code C) bool
	IsHeld(code C) bool
	PressedDuration(code C) (time.Duration, bool)
}

// HoldEstimator is the history view resolution falls back to when the
// processing engine cannot supply a press duration. *history.Log
// satisfies it.
type HoldEstimator[C comparable] interface {
	HoldDuration(code C) (time.Duration, bool)
}

// BeginFrame discards the previous frame's resolved action cache.
// A second BeginFrame without an intervening EndFrame is a no-op.
func (r *Resolver[C]) BeginFrame() {
	if r.inFrame {
		return
	}
	r.inFrame = true
	r.sealed = false
	clear(r.resolved)
}

// Resolve computes the action states of every bound action in the
// current enabled context. With no current context, or a disabled one,
// the resolved set is empty. Actions sharing a key derive uniformly
// from that key's single source of truth.
//
// hist may be nil; the duration fallback is then skipped.
func (r *Resolver[C]) Resolve(proc KeyQuerier[C], hist HoldEstimator[C]) {
	if r.sealed || proc == nil {
		return
	}
	t, ok := r.currentEnabled()
	if !ok {
		return
	}

	for _, name := range t.order {
		s := t.actions[name]
		if !s.mapped {
			continue
		}
		state := ActionState{
			Pressed:  proc.JustPressed(s.key),
			Released: proc.JustReleased(s.key),
			Held:     proc.IsHeld(s.key),
		}
		if state.Held {
			state.Value = 1.0
		}
		if d, ok := proc.PressedDuration(s.key); ok {
			state.Duration = d
		} else if hist != nil && state.Held {
			if d, ok := hist.HoldDuration(s.key); ok {
				state.Duration = d
			}
		}
		r.resolved[name] = state
	}
}

// EndFrame seals the resolved cache for read-only consumption until the
// next BeginFrame.
func (r *Resolver[C]) EndFrame() {
	if !r.inFrame {
		return
	}
	r.inFrame = false
	r.sealed = true
}

// ClearResolved drops the resolved action cache outside the normal
// frame cycle, e.g. on a runtime reset. The next frame rebuilds it.
func (r *Resolver[C]) ClearResolved() {
	clear(r.resolved)
	r.sealed = false
	r.inFrame = false
}

// Action returns the sealed resolution of an action. Unknown, unbound,
// and out-of-context actions all read as fully inactive.
func (r *Resolver[C]) Action(name string) ActionState {
	return r.resolved[name]
}

// ResolvedActions returns the names of all actions resolved this frame.
// Order is unspecified; the slice is freshly allocated.
func (r *Resolver[C]) ResolvedActions() []string {
	out := make([]string, 0, len(r.resolved))
	for name := range r.resolved {
		out = append(out, name)
	}
	return out
}
