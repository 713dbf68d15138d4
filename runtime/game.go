package runtime

import (
	"time"

	"github.com/dshills/inputcore/history"
	"github.com/dshills/inputcore/mapping"
	"github.com/dshills/inputcore/processing"
)

// ProcessingView is the read-only surface of the processing engine.
type ProcessingView[C comparable, S comparable] interface {
	IsPressed(code C) bool
	IsReleased(code C) bool
	IsHeld(code C) bool
	KeyState(code C) (S, bool)
	JustPressed(code C) bool
	JustReleased(code C) bool
	AnyJustPressed() bool
	AnyJustReleased() bool
	ComboPressed(combo []C) bool
	JustPressedCombo(combo []C) bool
	PressedDuration(code C) (time.Duration, bool)
	TimeSinceRelease(code C) (time.Duration, bool)
	PressedKeys() []C
	Snapshot() []processing.SnapshotEntry[C, S]
}

// HistoryView is the read-only surface of the history log.
type HistoryView[C comparable, S comparable] interface {
	IsEmpty() bool
	Len() int
	History() []history.Entry[C, S]
	HoldDuration(code C) (time.Duration, bool)
	MatchCombo(combo []C) bool
	MatchComboInFrames(combo []C, prevFrames int) bool
	MatchKeyInFrames(code C, state S, prevFrames int) bool
	MatchComboInTimeWindow(combo []C, window time.Duration) bool
	MatchOrderedSequence(sequence []C, maxInterval time.Duration) bool
	MatchRecentOrderedSequence(sequence []C, maxInterval time.Duration) bool
}

// MappingView is the read-only surface of the mapping resolver.
type MappingView[C comparable] interface {
	CurrentContext() (string, bool)
	Contexts() []string
	HasContext(name string) bool
	IsContextEnabled(name string) bool
	KeyForAction(action string) (C, bool)
	KeyForActionIn(ctx, action string) (C, bool)
	HasAction(action string) bool
	HasActionIn(ctx, action string) bool
	IsActionMapped(action string) bool
	IsActionMappedIn(ctx, action string) bool
	Actions() []string
	ActionsIn(ctx string) []string
	ActionsForKey(key C) []string
	ActionsForKeyIn(ctx string, key C) []string
	IsKeyMapped(key C) bool
	IsKeyMappedIn(ctx string, key C) bool
	Bindings() []mapping.Binding[C]
	BindingsIn(ctx string) []mapping.Binding[C]
	Action(name string) mapping.ActionState
	ResolvedActions() []string
}

// Game is the read-only facade gameplay code consumes: per-action
// queries over the sealed resolution of the last completed frame, plus
// read-only handles into the three pipeline components for tooling and
// introspection. Unknown and unbound actions read as fully inactive.
type Game[C comparable, S comparable] struct {
	rt *Runtime[C, S]
}

// ActionPressed reports whether the action's key went down this frame.
func (g Game[C, S]) ActionPressed(action string) bool {
	return g.rt.mapper.Action(action).Pressed
}

// ActionReleased reports whether the action's key went up this frame.
func (g Game[C, S]) ActionReleased(action string) bool {
	return g.rt.mapper.Action(action).Released
}

// ActionHeld reports whether the action's key is down.
func (g Game[C, S]) ActionHeld(action string) bool {
	return g.rt.mapper.Action(action).Held
}

// ActionValue returns the action's analog magnitude; digital backends
// yield 0.0 or 1.0.
func (g Game[C, S]) ActionValue(action string) float32 {
	return g.rt.mapper.Action(action).Value
}

// ActionDuration returns how long the action has been held. Zero when
// the action is inactive or unknown.
func (g Game[C, S]) ActionDuration(action string) time.Duration {
	return g.rt.mapper.Action(action).Duration
}

// Processing returns the read-only processing view.
func (g Game[C, S]) Processing() ProcessingView[C, S] {
	return g.rt.proc
}

// History returns the read-only history view.
func (g Game[C, S]) History() HistoryView[C, S] {
	return g.rt.hist
}

// Mapping returns the read-only mapping view.
func (g Game[C, S]) Mapping() MappingView[C] {
	return g.rt.mapper
}
