package mapping

import (
	"testing"
	"time"

	"github.com/dshills/inputcore/key"
)

// fakeQuerier is a canned processing-engine view.
type fakeQuerier struct {
	justPressed  map[key.Code]bool
	justReleased map[key.Code]bool
	held         map[key.Code]bool
	durations    map[key.Code]time.Duration
}

func (q *fakeQuerier) JustPressed(c key.Code) bool  { return q.justPressed[c] }
func (q *fakeQuerier) JustReleased(c key.Code) bool { return q.justReleased[c] }
func (q *fakeQuerier) IsHeld(c key.Code) bool       { return q.held[c] }

func (q *fakeQuerier) PressedDuration(c key.Code) (time.Duration, bool) {
	d, ok := q.durations[c]
	return d, ok
}

// fakeEstimator is a canned history view.
type fakeEstimator struct {
	holds map[key.Code]time.Duration
}

func (e *fakeEstimator) HoldDuration(c key.Code) (time.Duration, bool) {
	d, ok := e.holds[c]
	return d, ok
}

func resolveFrame(r *Resolver[key.Code], proc KeyQuerier[key.Code], hist HoldEstimator[key.Code]) {
	r.BeginFrame()
	r.Resolve(proc, hist)
	r.EndFrame()
}

func TestResolveActionStates(t *testing.T) {
	r := newGameplayResolver(t)
	r.AddAction("jump")
	r.AddAction("fire")
	r.AddAction("crouch")
	r.AddAction("taunt") // unbound
	r.MapAction("jump", key.CodeSpace)
	r.MapAction("fire", key.CodeF)
	r.MapAction("crouch", key.CodeC)

	proc := &fakeQuerier{
		justPressed:  map[key.Code]bool{key.CodeSpace: true},
		justReleased: map[key.Code]bool{key.CodeF: true},
		held:         map[key.Code]bool{key.CodeSpace: true, key.CodeC: true},
		durations:    map[key.Code]time.Duration{key.CodeC: 300 * time.Millisecond},
	}
	resolveFrame(r, proc, nil)

	jump := r.Action("jump")
	if !jump.Pressed || !jump.Held || jump.Released {
		t.Errorf("jump = %+v, want pressed and held", jump)
	}
	if jump.Value != 1.0 {
		t.Errorf("jump.Value = %v, want 1.0", jump.Value)
	}

	fire := r.Action("fire")
	if !fire.Released || fire.Pressed || fire.Held {
		t.Errorf("fire = %+v, want released only", fire)
	}
	if fire.Value != 0 {
		t.Errorf("fire.Value = %v, want 0", fire.Value)
	}

	crouch := r.Action("crouch")
	if !crouch.Held || crouch.Duration != 300*time.Millisecond {
		t.Errorf("crouch = %+v, want held for 300ms", crouch)
	}

	// Unbound and unknown actions read as fully inactive.
	if got := r.Action("taunt"); got != (ActionState{}) {
		t.Errorf("taunt = %+v, want zero", got)
	}
	if got := r.Action("no_such_action"); got != (ActionState{}) {
		t.Errorf("unknown action = %+v, want zero", got)
	}

	if n := len(r.ResolvedActions()); n != 3 {
		t.Errorf("ResolvedActions = %d entries, want 3 (unbound skipped)", n)
	}
}

func TestResolveSharedKeyUniform(t *testing.T) {
	r := newGameplayResolver(t)
	r.AddAction("jump")
	r.AddAction("confirm")
	r.MapAction("jump", key.CodeSpace)
	r.MapAction("confirm", key.CodeSpace)

	proc := &fakeQuerier{
		justPressed: map[key.Code]bool{key.CodeSpace: true},
		held:        map[key.Code]bool{key.CodeSpace: true},
		durations:   map[key.Code]time.Duration{key.CodeSpace: 50 * time.Millisecond},
	}
	resolveFrame(r, proc, nil)

	if r.Action("jump") != r.Action("confirm") {
		t.Errorf("shared-key actions diverged: %+v vs %+v",
			r.Action("jump"), r.Action("confirm"))
	}
}

func TestResolveHistoryFallback(t *testing.T) {
	r := newGameplayResolver(t)
	r.AddAction("charge")
	r.MapAction("charge", key.CodeSpace)

	// Held but the engine has no press-start (e.g. after its reset):
	// duration falls back to the history estimate.
	proc := &fakeQuerier{held: map[key.Code]bool{key.CodeSpace: true}}
	hist := &fakeEstimator{holds: map[key.Code]time.Duration{key.CodeSpace: 2 * time.Second}}
	resolveFrame(r, proc, hist)

	if got := r.Action("charge").Duration; got != 2*time.Second {
		t.Errorf("fallback duration = %v, want 2s", got)
	}

	// Not held: no fallback even when history has a figure.
	r.ClearResolved()
	proc = &fakeQuerier{}
	resolveFrame(r, proc, hist)
	if got := r.Action("charge").Duration; got != 0 {
		t.Errorf("duration = %v for released action, want 0", got)
	}
}

func TestResolveNoCurrentOrDisabledContext(t *testing.T) {
	r := NewResolver[key.Code]()
	r.AddContext("gameplay")
	r.AddActionIn("gameplay", "jump")
	r.MapActionIn("gameplay", "jump", key.CodeSpace)

	proc := &fakeQuerier{held: map[key.Code]bool{key.CodeSpace: true}}

	// No current context: resolution yields nothing.
	resolveFrame(r, proc, nil)
	if len(r.ResolvedActions()) != 0 {
		t.Error("resolution produced actions with no current context")
	}

	r.SetCurrentContext("gameplay")
	r.DisableContext("gameplay")
	resolveFrame(r, proc, nil)
	if len(r.ResolvedActions()) != 0 {
		t.Error("resolution produced actions for a disabled current context")
	}
	if r.Action("jump").Held {
		t.Error("Action reads through a disabled context")
	}

	r.EnableContext("gameplay")
	resolveFrame(r, proc, nil)
	if !r.Action("jump").Held {
		t.Error("resolution missing after re-enable")
	}
}

func TestResolveFrameDiscipline(t *testing.T) {
	r := newGameplayResolver(t)
	r.AddAction("jump")
	r.MapAction("jump", key.CodeSpace)

	proc := &fakeQuerier{held: map[key.Code]bool{key.CodeSpace: true}}
	resolveFrame(r, proc, nil)
	if !r.Action("jump").Held {
		t.Fatal("baseline resolution failed")
	}

	// Resolve after EndFrame is a no-op: the frame is sealed.
	quiet := &fakeQuerier{}
	r.Resolve(quiet, nil)
	if !r.Action("jump").Held {
		t.Error("sealed resolution was overwritten")
	}

	// Next BeginFrame discards the previous cache.
	r.BeginFrame()
	if r.Action("jump").Held {
		t.Error("stale resolution visible after BeginFrame")
	}
	r.Resolve(quiet, nil)
	r.EndFrame()
	if r.Action("jump").Held {
		t.Error("jump still held with quiet engine")
	}

	// Nil engine: nothing resolves, nothing panics.
	r.BeginFrame()
	r.Resolve(nil, nil)
	r.EndFrame()
	if len(r.ResolvedActions()) != 0 {
		t.Error("nil engine produced resolutions")
	}
}
