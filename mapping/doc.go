// Package mapping owns contexts, action names, and action-to-key
// bindings, and resolves named action states once per frame from the
// processing and history views.
//
// A context is an independent binding namespace (gameplay, UI, vehicle).
// Within a context an action binds to at most one key, while one key may
// drive many actions; the resolver maintains the reverse index
// incrementally. Exactly one context is current at a time, and only an
// enabled current context produces resolved actions.
//
// Mutations follow a single/"In"/"All" scoping pattern: the bare form
// targets the current context, the In form a named context, and the All
// form every context. Every mutation is all-or-nothing and reports
// success with a bool.
//
// The optional serialization bridge is an injectable Codec strategy;
// JSONCodec ships as the default wire form for hosts that want one.
package mapping
