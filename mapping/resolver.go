package mapping

// Resolver owns contexts, action names, and action-to-key bindings, and
// translates processing/history facts into named action states once per
// frame.
//
// Every context is an independent binding namespace: action names are
// unique within a context but unrelated across contexts. At most one
// context is current; resolution only considers the current context,
// and only while it is enabled.
//
// All mutating operations are all-or-nothing and report success with a
// bool; nothing panics and nothing partially applies.
type Resolver[C comparable] struct {
	contexts map[string]*contextTable[C]

	// order preserves context registration order for Contexts.
	order []string

	// current is the name of the current context, or "" for none.
	current string

	codec Codec[C]

	// resolved is the per-frame action cache, sealed at EndFrame.
	resolved map[string]ActionState
	sealed   bool
	inFrame  bool
}

// contextTable is one context's binding namespace.
type contextTable[C comparable] struct {
	enabled bool

	// actions maps action name to its binding slot.
	actions map[string]slot[C]

	// order preserves action creation order for Actions and Bindings.
	order []string

	// reverse maps a key to the actions bound to it.
	reverse map[C][]string
}

// slot is the binding state of one action.
type slot[C comparable] struct {
	key    C
	mapped bool
}

// NewResolver creates an empty resolver with no contexts.
func NewResolver[C comparable]() *Resolver[C] {
	return &Resolver[C]{
		contexts: make(map[string]*contextTable[C]),
		resolved: make(map[string]ActionState),
	}
}

func newContextTable[C comparable]() *contextTable[C] {
	return &contextTable[C]{
		enabled: true,
		actions: make(map[string]slot[C]),
		reverse: make(map[C][]string),
	}
}

// AddContext registers a new, enabled, empty context.
// Returns false if the name is already registered.
func (r *Resolver[C]) AddContext(name string) bool {
	if name == "" {
		return false
	}
	if _, ok := r.contexts[name]; ok {
		return false
	}
	r.contexts[name] = newContextTable[C]()
	r.order = append(r.order, name)
	return true
}

// RemoveContext deletes a context and everything in it. If the context
// was current, the resolver is left with no current context and
// resolution yields no actions until a new current context is set.
func (r *Resolver[C]) RemoveContext(name string) bool {
	if _, ok := r.contexts[name]; !ok {
		return false
	}
	delete(r.contexts, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if r.current == name {
		r.current = ""
	}
	return true
}

// CloneContext deep-copies all actions and bindings of context from
// into context to, creating to if absent and replacing its contents if
// present. Later mutation of either context does not affect the other.
// Returns false if from does not exist or the names are equal.
func (r *Resolver[C]) CloneContext(to, from string) bool {
	src, ok := r.contexts[from]
	if !ok || to == "" || to == from {
		return false
	}

	dst, existed := r.contexts[to]
	if !existed {
		dst = newContextTable[C]()
		r.contexts[to] = dst
		r.order = append(r.order, to)
	}

	dst.actions = make(map[string]slot[C], len(src.actions))
	for name, s := range src.actions {
		dst.actions[name] = s
	}
	dst.order = append([]string(nil), src.order...)
	dst.reverse = make(map[C][]string, len(src.reverse))
	for k, acts := range src.reverse {
		dst.reverse[k] = append([]string(nil), acts...)
	}
	return true
}

// SetCurrentContext switches the current context. The target must exist
// and be enabled; on failure the current context is unchanged.
func (r *Resolver[C]) SetCurrentContext(name string) bool {
	t, ok := r.contexts[name]
	if !ok || !t.enabled {
		return false
	}
	r.current = name
	return true
}

// CurrentContext returns the current context name. ok is false if no
// context is current.
func (r *Resolver[C]) CurrentContext() (string, bool) {
	if r.current == "" {
		return "", false
	}
	return r.current, true
}

// Contexts returns all registered context names in registration order.
// The slice is a view valid until the next context mutation.
func (r *Resolver[C]) Contexts() []string {
	return r.order
}

// HasContext reports whether the context exists.
func (r *Resolver[C]) HasContext(name string) bool {
	_, ok := r.contexts[name]
	return ok
}

// IsContextEnabled reports whether the context exists and is enabled.
func (r *Resolver[C]) IsContextEnabled(name string) bool {
	t, ok := r.contexts[name]
	return ok && t.enabled
}

// EnableContext marks a context eligible to become current.
func (r *Resolver[C]) EnableContext(name string) bool {
	t, ok := r.contexts[name]
	if !ok {
		return false
	}
	t.enabled = true
	return true
}

// DisableContext makes a context ineligible to become current without
// deleting it. A disabled context can still be mutated. If the context
// is current it stays current, but resolution yields no actions until
// it is re-enabled.
func (r *Resolver[C]) DisableContext(name string) bool {
	t, ok := r.contexts[name]
	if !ok {
		return false
	}
	t.enabled = false
	return true
}

// table returns the named context, or the current one for name "".
func (r *Resolver[C]) table(name string) (*contextTable[C], bool) {
	if name == "" {
		if r.current == "" {
			return nil, false
		}
		name = r.current
	}
	t, ok := r.contexts[name]
	return t, ok
}

// currentEnabled returns the current context's table only if it exists
// and is enabled; resolution treats anything else as "no actions".
func (r *Resolver[C]) currentEnabled() (*contextTable[C], bool) {
	if r.current == "" {
		return nil, false
	}
	t, ok := r.contexts[r.current]
	if !ok || !t.enabled {
		return nil, false
	}
	return t, true
}
