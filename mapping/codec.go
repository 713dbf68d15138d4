package mapping

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Errors reported by the serialization bridge.
var (
	// ErrNoCodec is returned by Export and Import when no codec has
	// been injected.
	ErrNoCodec = errors.New("mapping: no codec configured")

	// ErrBadSnapshot is returned by Import when the payload cannot be
	// decoded into a snapshot.
	ErrBadSnapshot = errors.New("mapping: malformed snapshot")
)

// Snapshot is a serializable image of all contexts and bindings.
type Snapshot[C comparable] struct {
	// Current is the name of the current context, or "".
	Current string

	// Contexts holds every context in registration order.
	Contexts []ContextSnapshot[C]
}

// ContextSnapshot is one context's image.
type ContextSnapshot[C comparable] struct {
	Name    string
	Enabled bool
	Actions []ActionSnapshot[C]
}

// ActionSnapshot is one action's image. Key is meaningful only when
// Mapped is true.
type ActionSnapshot[C comparable] struct {
	Name   string
	Key    C
	Mapped bool
}

// Codec turns mapping snapshots into an opaque wire form and back.
// The wire format belongs to the embedding application; the resolver
// only brokers the bytes.
type Codec[C comparable] interface {
	Encode(snap Snapshot[C]) ([]byte, error)
	Decode(data []byte) (Snapshot[C], error)
}

// SetCodec injects the serialization strategy used by Export and
// Import. A nil codec disables both.
func (r *Resolver[C]) SetCodec(c Codec[C]) {
	r.codec = c
}

// Snapshot captures the full mapping state.
func (r *Resolver[C]) Snapshot() Snapshot[C] {
	snap := Snapshot[C]{Current: r.current}
	for _, name := range r.order {
		t := r.contexts[name]
		cs := ContextSnapshot[C]{Name: name, Enabled: t.enabled}
		for _, action := range t.order {
			s := t.actions[action]
			cs.Actions = append(cs.Actions, ActionSnapshot[C]{
				Name:   action,
				Key:    s.key,
				Mapped: s.mapped,
			})
		}
		snap.Contexts = append(snap.Contexts, cs)
	}
	return snap
}

// Restore applies a snapshot. With merge false the resolver is rebuilt
// from the snapshot alone; with merge true the snapshot is overlaid
// onto the existing state (contexts and actions are created as needed,
// bindings in the snapshot win). A snapshot current context that does
// not resolve to an existing enabled context leaves no current context
// (replace) or the previous one (merge).
func (r *Resolver[C]) Restore(snap Snapshot[C], merge bool) {
	if !merge {
		r.contexts = make(map[string]*contextTable[C])
		r.order = nil
		r.current = ""
	}

	for _, cs := range snap.Contexts {
		t, ok := r.contexts[cs.Name]
		if !ok {
			r.AddContext(cs.Name)
			t = r.contexts[cs.Name]
		}
		t.enabled = cs.Enabled
		for _, as := range cs.Actions {
			t.addAction(as.Name)
			if as.Mapped {
				t.bind(as.Name, as.Key)
			}
		}
	}

	if snap.Current != "" {
		r.SetCurrentContext(snap.Current)
	}
}

// Export serializes the full mapping state through the injected codec.
func (r *Resolver[C]) Export() ([]byte, error) {
	if r.codec == nil {
		return nil, ErrNoCodec
	}
	return r.codec.Encode(r.Snapshot())
}

// Import replaces or merges mapping state from a codec payload.
// On decode failure nothing changes.
func (r *Resolver[C]) Import(data []byte, merge bool) error {
	if r.codec == nil {
		return ErrNoCodec
	}
	snap, err := r.codec.Decode(data)
	if err != nil {
		return err
	}
	r.Restore(snap, merge)
	return nil
}

// JSONCodec is a Codec over a stable JSON layout:
//
//	{
//	  "current": "gameplay",
//	  "contexts": [
//	    {"name": "gameplay", "enabled": true,
//	     "actions": [{"name": "jump", "key": "space"}, {"name": "taunt"}]}
//	  ]
//	}
//
// Keys are encoded with the injected EncodeKey/DecodeKey pair, so the
// codec works for any key type that has a textual name.
type JSONCodec[C comparable] struct {
	// EncodeKey renders a key as text.
	EncodeKey func(C) string

	// DecodeKey parses a key from text, reporting unknown names with
	// ok=false.
	DecodeKey func(string) (C, bool)
}

// Encode implements Codec.
func (jc JSONCodec[C]) Encode(snap Snapshot[C]) ([]byte, error) {
	out := []byte(`{}`)
	var err error
	if out, err = sjson.SetBytes(out, "current", snap.Current); err != nil {
		return nil, err
	}
	if out, err = sjson.SetRawBytes(out, "contexts", []byte(`[]`)); err != nil {
		return nil, err
	}
	for i, cs := range snap.Contexts {
		base := fmt.Sprintf("contexts.%d", i)
		if out, err = sjson.SetBytes(out, base+".name", cs.Name); err != nil {
			return nil, err
		}
		if out, err = sjson.SetBytes(out, base+".enabled", cs.Enabled); err != nil {
			return nil, err
		}
		if out, err = sjson.SetRawBytes(out, base+".actions", []byte(`[]`)); err != nil {
			return nil, err
		}
		for j, as := range cs.Actions {
			ab := fmt.Sprintf("%s.actions.%d", base, j)
			if out, err = sjson.SetBytes(out, ab+".name", as.Name); err != nil {
				return nil, err
			}
			if !as.Mapped {
				continue
			}
			if out, err = sjson.SetBytes(out, ab+".key", jc.EncodeKey(as.Key)); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// Decode implements Codec.
func (jc JSONCodec[C]) Decode(data []byte) (Snapshot[C], error) {
	var snap Snapshot[C]
	if !gjson.ValidBytes(data) {
		return snap, ErrBadSnapshot
	}
	root := gjson.ParseBytes(data)
	snap.Current = root.Get("current").String()

	var decodeErr error
	root.Get("contexts").ForEach(func(_, ctx gjson.Result) bool {
		cs := ContextSnapshot[C]{
			Name:    ctx.Get("name").String(),
			Enabled: true,
		}
		if e := ctx.Get("enabled"); e.Exists() {
			cs.Enabled = e.Bool()
		}
		if cs.Name == "" {
			decodeErr = fmt.Errorf("%w: context without name", ErrBadSnapshot)
			return false
		}
		ctx.Get("actions").ForEach(func(_, act gjson.Result) bool {
			as := ActionSnapshot[C]{Name: act.Get("name").String()}
			if as.Name == "" {
				decodeErr = fmt.Errorf("%w: action without name in context %q", ErrBadSnapshot, cs.Name)
				return false
			}
			if k := act.Get("key"); k.Exists() {
				code, ok := jc.DecodeKey(k.String())
				if !ok {
					decodeErr = fmt.Errorf("%w: unknown key %q for action %q", ErrBadSnapshot, k.String(), as.Name)
					return false
				}
				as.Key = code
				as.Mapped = true
			}
			cs.Actions = append(cs.Actions, as)
			return true
		})
		if decodeErr != nil {
			return false
		}
		snap.Contexts = append(snap.Contexts, cs)
		return true
	})
	if decodeErr != nil {
		return Snapshot[C]{}, decodeErr
	}
	return snap, nil
}
