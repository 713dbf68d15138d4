// Package runtime wires the processing engine, history log, and mapping
// resolver into one frame-stepped pipeline and exposes the read-only
// game facade.
//
// One frame is:
//
//	rt.BeginFrame()
//	for _, ev := range source.Poll() {
//		rt.Push(ev.Code, ev.State, ev.Time)
//	}
//	rt.EndFrame()
//
//	game := rt.Game()
//	if game.ActionPressed("jump") {
//		player.Jump()
//	}
//
// Frames never overlap: a second BeginFrame before EndFrame is a no-op,
// and events pushed outside a frame are dropped, never corrupting
// state.
package runtime
