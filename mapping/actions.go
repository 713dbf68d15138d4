package mapping

// Binding pairs an action with the key it is bound to.
type Binding[C comparable] struct {
	Action string
	Key    C
}

// addAction creates an unbound action in the table.
func (t *contextTable[C]) addAction(action string) bool {
	if action == "" {
		return false
	}
	if _, ok := t.actions[action]; ok {
		return false
	}
	t.actions[action] = slot[C]{}
	t.order = append(t.order, action)
	return true
}

// deleteAction removes the action and its reverse index entry.
func (t *contextTable[C]) deleteAction(action string) bool {
	if _, ok := t.actions[action]; !ok {
		return false
	}
	t.unbind(action)
	delete(t.actions, action)
	for i, n := range t.order {
		if n == action {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// bind assigns key to an existing action, replacing any previous key
// and keeping the reverse index consistent.
func (t *contextTable[C]) bind(action string, key C) bool {
	if _, ok := t.actions[action]; !ok {
		return false
	}
	t.unbind(action)
	t.actions[action] = slot[C]{key: key, mapped: true}
	t.reverse[key] = append(t.reverse[key], action)
	return true
}

// unbind removes the action's key assignment, if any.
func (t *contextTable[C]) unbind(action string) bool {
	s, ok := t.actions[action]
	if !ok || !s.mapped {
		return false
	}
	t.actions[action] = slot[C]{}

	acts := t.reverse[s.key]
	for i, n := range acts {
		if n == action {
			acts = append(acts[:i], acts[i+1:]...)
			break
		}
	}
	if len(acts) == 0 {
		delete(t.reverse, s.key)
	} else {
		t.reverse[s.key] = acts
	}
	return true
}

// rename moves the action to a new name, preserving its binding.
// Fails if the old name is absent or the new name is taken.
func (t *contextTable[C]) rename(oldName, newName string) bool {
	if newName == "" || oldName == newName {
		return false
	}
	s, ok := t.actions[oldName]
	if !ok {
		return false
	}
	if _, taken := t.actions[newName]; taken {
		return false
	}

	delete(t.actions, oldName)
	t.actions[newName] = s
	for i, n := range t.order {
		if n == oldName {
			t.order[i] = newName
			break
		}
	}
	if s.mapped {
		acts := t.reverse[s.key]
		for i, n := range acts {
			if n == oldName {
				acts[i] = newName
				break
			}
		}
	}
	return true
}

// reset clears every key assignment, keeping the action names.
func (t *contextTable[C]) reset() {
	for name := range t.actions {
		t.actions[name] = slot[C]{}
	}
	clear(t.reverse)
}

// AddAction creates an unbound action in the current context.
// Returns false if the action already exists or no context is current.
func (r *Resolver[C]) AddAction(action string) bool {
	return r.AddActionIn("", action)
}

// AddActionIn creates an unbound action in the named context.
func (r *Resolver[C]) AddActionIn(ctx, action string) bool {
	t, ok := r.table(ctx)
	if !ok {
		return false
	}
	return t.addAction(action)
}

// AddActionAll creates the action in every context where it does not
// already exist. Returns true if it was created anywhere.
func (r *Resolver[C]) AddActionAll(action string) bool {
	added := false
	for _, name := range r.order {
		if r.contexts[name].addAction(action) {
			added = true
		}
	}
	return added
}

// DeleteAction removes an action from the current context, including
// its forward and reverse index entries.
func (r *Resolver[C]) DeleteAction(action string) bool {
	return r.DeleteActionIn("", action)
}

// DeleteActionIn removes an action from the named context.
func (r *Resolver[C]) DeleteActionIn(ctx, action string) bool {
	t, ok := r.table(ctx)
	if !ok {
		return false
	}
	return t.deleteAction(action)
}

// DeleteActionAll removes the action from every context where it
// exists. Returns true if it was deleted anywhere.
func (r *Resolver[C]) DeleteActionAll(action string) bool {
	deleted := false
	for _, name := range r.order {
		if r.contexts[name].deleteAction(action) {
			deleted = true
		}
	}
	return deleted
}

// DeleteAllActions removes every action from the current context.
func (r *Resolver[C]) DeleteAllActions() bool {
	return r.DeleteAllActionsIn("")
}

// DeleteAllActionsIn removes every action from the named context.
func (r *Resolver[C]) DeleteAllActionsIn(ctx string) bool {
	t, ok := r.table(ctx)
	if !ok {
		return false
	}
	clear(t.actions)
	clear(t.reverse)
	t.order = t.order[:0]
	return true
}

// MapAction binds a key to an existing action in the current context,
// replacing any previous key. Multiple actions may share one key.
// Returns false if the action does not exist.
func (r *Resolver[C]) MapAction(action string, key C) bool {
	return r.MapActionIn("", action, key)
}

// MapActionIn binds a key to an existing action in the named context.
func (r *Resolver[C]) MapActionIn(ctx, action string, key C) bool {
	t, ok := r.table(ctx)
	if !ok {
		return false
	}
	return t.bind(action, key)
}

// MapActionAll binds the key to the action in every context where the
// action exists. Returns true if it was bound anywhere.
func (r *Resolver[C]) MapActionAll(action string, key C) bool {
	bound := false
	for _, name := range r.order {
		if r.contexts[name].bind(action, key) {
			bound = true
		}
	}
	return bound
}

// UnmapAction removes the key assignment of an action in the current
// context, leaving the action defined but unbound.
func (r *Resolver[C]) UnmapAction(action string) bool {
	return r.UnmapActionIn("", action)
}

// UnmapActionIn removes the key assignment in the named context.
func (r *Resolver[C]) UnmapActionIn(ctx, action string) bool {
	t, ok := r.table(ctx)
	if !ok {
		return false
	}
	return t.unbind(action)
}

// UnmapActionAll removes the action's key assignment in every context.
// Returns true if anything was unbound.
func (r *Resolver[C]) UnmapActionAll(action string) bool {
	unbound := false
	for _, name := range r.order {
		if r.contexts[name].unbind(action) {
			unbound = true
		}
	}
	return unbound
}

// RenameAction renames an action within the current context. Fails if
// the destination name is already taken there.
func (r *Resolver[C]) RenameAction(oldName, newName string) bool {
	return r.RenameActionIn("", oldName, newName)
}

// RenameActionIn renames an action within the named context.
func (r *Resolver[C]) RenameActionIn(ctx, oldName, newName string) bool {
	t, ok := r.table(ctx)
	if !ok {
		return false
	}
	return t.rename(oldName, newName)
}

// RenameActionAll renames the action in every context where it exists.
// All-or-nothing: if the destination name is taken in any context that
// holds the old name, nothing changes anywhere.
func (r *Resolver[C]) RenameActionAll(oldName, newName string) bool {
	if newName == "" || oldName == newName {
		return false
	}
	found := false
	for _, name := range r.order {
		t := r.contexts[name]
		if _, ok := t.actions[oldName]; !ok {
			continue
		}
		found = true
		if _, taken := t.actions[newName]; taken {
			return false
		}
	}
	if !found {
		return false
	}
	for _, name := range r.order {
		t := r.contexts[name]
		if _, ok := t.actions[oldName]; ok {
			t.rename(oldName, newName)
		}
	}
	return true
}

// ResetContext clears every key assignment in the current context,
// preserving the action names.
func (r *Resolver[C]) ResetContext() bool {
	return r.ResetContextIn("")
}

// ResetContextIn clears every key assignment in the named context.
func (r *Resolver[C]) ResetContextIn(ctx string) bool {
	t, ok := r.table(ctx)
	if !ok {
		return false
	}
	t.reset()
	return true
}

// ResetAllContexts clears key assignments in every context.
func (r *Resolver[C]) ResetAllContexts() {
	for _, name := range r.order {
		r.contexts[name].reset()
	}
}

// KeyForAction returns the key bound to the action in the current
// context. ok is false if the action is missing or unbound.
func (r *Resolver[C]) KeyForAction(action string) (C, bool) {
	return r.KeyForActionIn("", action)
}

// KeyForActionIn returns the key bound to the action in the named
// context.
func (r *Resolver[C]) KeyForActionIn(ctx, action string) (C, bool) {
	var zero C
	t, ok := r.table(ctx)
	if !ok {
		return zero, false
	}
	s, ok := t.actions[action]
	if !ok || !s.mapped {
		return zero, false
	}
	return s.key, true
}

// HasAction reports whether the action exists in the current context.
func (r *Resolver[C]) HasAction(action string) bool {
	return r.HasActionIn("", action)
}

// HasActionIn reports whether the action exists in the named context.
func (r *Resolver[C]) HasActionIn(ctx, action string) bool {
	t, ok := r.table(ctx)
	if !ok {
		return false
	}
	_, ok = t.actions[action]
	return ok
}

// IsActionMapped reports whether the action has a key assigned in the
// current context.
func (r *Resolver[C]) IsActionMapped(action string) bool {
	return r.IsActionMappedIn("", action)
}

// IsActionMappedIn reports whether the action has a key assigned in the
// named context.
func (r *Resolver[C]) IsActionMappedIn(ctx, action string) bool {
	t, ok := r.table(ctx)
	if !ok {
		return false
	}
	s, ok := t.actions[action]
	return ok && s.mapped
}

// Actions returns the current context's action names in creation order.
// The slice is a view valid until the next mutation of the context.
func (r *Resolver[C]) Actions() []string {
	return r.ActionsIn("")
}

// ActionsIn returns the named context's action names in creation order.
func (r *Resolver[C]) ActionsIn(ctx string) []string {
	t, ok := r.table(ctx)
	if !ok {
		return nil
	}
	return t.order
}

// ActionsForKey returns the actions bound to the key in the current
// context. One key may trigger many actions. The slice is a view valid
// until the next mutation of the context.
func (r *Resolver[C]) ActionsForKey(key C) []string {
	return r.ActionsForKeyIn("", key)
}

// ActionsForKeyIn returns the actions bound to the key in the named
// context.
func (r *Resolver[C]) ActionsForKeyIn(ctx string, key C) []string {
	t, ok := r.table(ctx)
	if !ok {
		return nil
	}
	return t.reverse[key]
}

// IsKeyMapped reports whether the key is bound to at least one action
// in the current context.
func (r *Resolver[C]) IsKeyMapped(key C) bool {
	return r.IsKeyMappedIn("", key)
}

// IsKeyMappedIn reports whether the key is bound to at least one action
// in the named context.
func (r *Resolver[C]) IsKeyMappedIn(ctx string, key C) bool {
	t, ok := r.table(ctx)
	if !ok {
		return false
	}
	return len(t.reverse[key]) > 0
}

// Bindings returns every (action, key) pair of the current context in
// action creation order. Unbound actions are omitted.
func (r *Resolver[C]) Bindings() []Binding[C] {
	return r.BindingsIn("")
}

// BindingsIn returns every (action, key) pair of the named context.
func (r *Resolver[C]) BindingsIn(ctx string) []Binding[C] {
	t, ok := r.table(ctx)
	if !ok {
		return nil
	}
	out := make([]Binding[C], 0, len(t.order))
	for _, name := range t.order {
		if s := t.actions[name]; s.mapped {
			out = append(out, Binding[C]{Action: name, Key: s.key})
		}
	}
	return out
}
