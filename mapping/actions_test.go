package mapping

import (
	"testing"

	"github.com/dshills/inputcore/key"
)

func TestActionLifecycle(t *testing.T) {
	r := newGameplayResolver(t)

	if !r.AddAction("jump") {
		t.Fatal("AddAction failed")
	}
	if r.AddAction("jump") {
		t.Error("AddAction succeeded for duplicate")
	}
	if r.AddAction("") {
		t.Error("AddAction succeeded for empty name")
	}
	if !r.HasAction("jump") {
		t.Error("HasAction = false after AddAction")
	}
	if r.IsActionMapped("jump") {
		t.Error("new action already mapped")
	}

	if r.MapAction("nope", key.CodeSpace) {
		t.Error("MapAction succeeded for undefined action")
	}
	if !r.MapAction("jump", key.CodeSpace) {
		t.Fatal("MapAction failed")
	}
	if k, ok := r.KeyForAction("jump"); !ok || k != key.CodeSpace {
		t.Errorf("KeyForAction = (%v, %v), want (space, true)", k, ok)
	}
	if !r.IsKeyMapped(key.CodeSpace) {
		t.Error("IsKeyMapped = false for bound key")
	}

	// Rebinding replaces, never stacks.
	if !r.MapAction("jump", key.CodeW) {
		t.Fatal("rebind failed")
	}
	if k, _ := r.KeyForAction("jump"); k != key.CodeW {
		t.Errorf("KeyForAction after rebind = %v, want w", k)
	}
	if r.IsKeyMapped(key.CodeSpace) {
		t.Error("old key still mapped after rebind")
	}

	if !r.UnmapAction("jump") {
		t.Error("UnmapAction failed")
	}
	if r.UnmapAction("jump") {
		t.Error("UnmapAction succeeded for already-unbound action")
	}
	if !r.HasAction("jump") {
		t.Error("UnmapAction deleted the action")
	}
	if r.IsActionMapped("jump") {
		t.Error("IsActionMapped = true after unmap")
	}

	if !r.DeleteAction("jump") {
		t.Error("DeleteAction failed")
	}
	if r.HasAction("jump") {
		t.Error("HasAction = true after delete")
	}
	if r.DeleteAction("jump") {
		t.Error("DeleteAction succeeded twice")
	}
}

func TestSharedKey(t *testing.T) {
	r := newGameplayResolver(t)
	r.AddAction("jump")
	r.AddAction("confirm")
	r.MapAction("jump", key.CodeSpace)
	r.MapAction("confirm", key.CodeSpace)

	acts := r.ActionsForKey(key.CodeSpace)
	if len(acts) != 2 {
		t.Fatalf("ActionsForKey = %v, want 2 actions", acts)
	}

	r.DeleteAction("jump")
	acts = r.ActionsForKey(key.CodeSpace)
	if len(acts) != 1 || acts[0] != "confirm" {
		t.Errorf("ActionsForKey after delete = %v, want [confirm]", acts)
	}
	if !r.IsKeyMapped(key.CodeSpace) {
		t.Error("IsKeyMapped = false while one action remains")
	}
}

func TestNamespaceIsolation(t *testing.T) {
	r := newGameplayResolver(t)
	r.AddContext("menu")

	r.AddAction("select")
	r.MapAction("select", key.CodeEnter)
	r.AddActionIn("menu", "select")
	r.MapActionIn("menu", "select", key.CodeSpace)

	if k, _ := r.KeyForActionIn("gameplay", "select"); k != key.CodeEnter {
		t.Errorf("gameplay select = %v, want enter", k)
	}
	if k, _ := r.KeyForActionIn("menu", "select"); k != key.CodeSpace {
		t.Errorf("menu select = %v, want space", k)
	}

	// Per-context delete leaves the namesake alone.
	r.DeleteActionIn("menu", "select")
	if !r.HasActionIn("gameplay", "select") {
		t.Error("delete in menu removed gameplay's action")
	}
}

func TestAllContextOps(t *testing.T) {
	r := newGameplayResolver(t)
	r.AddContext("menu")
	r.AddContext("debug")

	if !r.AddActionAll("pause") {
		t.Fatal("AddActionAll failed")
	}
	for _, ctx := range []string{"gameplay", "menu", "debug"} {
		if !r.HasActionIn(ctx, "pause") {
			t.Errorf("pause missing in %s", ctx)
		}
	}
	// Already present everywhere: nothing to create.
	if r.AddActionAll("pause") {
		t.Error("AddActionAll reported creation when present everywhere")
	}

	if !r.MapActionAll("pause", key.CodeEscape) {
		t.Fatal("MapActionAll failed")
	}
	for _, ctx := range []string{"gameplay", "menu", "debug"} {
		if k, _ := r.KeyForActionIn(ctx, "pause"); k != key.CodeEscape {
			t.Errorf("%s pause = %v, want escape", ctx, k)
		}
	}

	if !r.UnmapActionAll("pause") {
		t.Fatal("UnmapActionAll failed")
	}
	if r.IsActionMappedIn("menu", "pause") {
		t.Error("pause still mapped in menu after UnmapActionAll")
	}

	if !r.DeleteActionAll("pause") {
		t.Fatal("DeleteActionAll failed")
	}
	if r.HasActionIn("debug", "pause") {
		t.Error("pause still present in debug after DeleteActionAll")
	}
	if r.DeleteActionAll("pause") {
		t.Error("DeleteActionAll reported deletion of a missing action")
	}
}

func TestRenameAction(t *testing.T) {
	r := newGameplayResolver(t)
	r.AddAction("jump")
	r.AddAction("fire")
	r.MapAction("jump", key.CodeSpace)

	if r.RenameAction("jump", "fire") {
		t.Error("RenameAction succeeded onto a taken name")
	}
	if r.RenameAction("jump", "jump") {
		t.Error("RenameAction succeeded for identical names")
	}
	if r.RenameAction("nope", "hop") {
		t.Error("RenameAction succeeded for missing action")
	}

	if !r.RenameAction("jump", "hop") {
		t.Fatal("RenameAction failed")
	}
	if r.HasAction("jump") {
		t.Error("old name still present after rename")
	}
	if k, ok := r.KeyForAction("hop"); !ok || k != key.CodeSpace {
		t.Errorf("binding did not follow rename: (%v, %v)", k, ok)
	}
	if acts := r.ActionsForKey(key.CodeSpace); len(acts) != 1 || acts[0] != "hop" {
		t.Errorf("reverse index after rename = %v, want [hop]", acts)
	}
}

func TestRenameActionAllAtomic(t *testing.T) {
	r := newGameplayResolver(t)
	r.AddContext("menu")

	r.AddActionAll("jump")
	r.MapActionIn("gameplay", "jump", key.CodeSpace)
	// menu already has an action named hop: the bulk rename must not
	// touch any context.
	r.AddActionIn("menu", "hop")

	if r.RenameActionAll("jump", "hop") {
		t.Fatal("RenameActionAll succeeded despite a conflict")
	}
	if !r.HasActionIn("gameplay", "jump") {
		t.Error("conflicting bulk rename mutated gameplay")
	}
	if !r.HasActionIn("menu", "jump") {
		t.Error("conflicting bulk rename mutated menu")
	}

	r.DeleteActionIn("menu", "hop")
	if !r.RenameActionAll("jump", "hop") {
		t.Fatal("RenameActionAll failed after conflict removed")
	}
	if k, ok := r.KeyForActionIn("gameplay", "hop"); !ok || k != key.CodeSpace {
		t.Errorf("gameplay hop = (%v, %v), want (space, true)", k, ok)
	}
	if !r.HasActionIn("menu", "hop") {
		t.Error("menu missing hop after bulk rename")
	}
	if r.RenameActionAll("missing", "x") {
		t.Error("RenameActionAll succeeded for an action no context holds")
	}
}

func TestResetContexts(t *testing.T) {
	r := newGameplayResolver(t)
	r.AddContext("menu")
	r.AddActionAll("jump")
	r.MapActionAll("jump", key.CodeSpace)

	if !r.ResetContext() {
		t.Fatal("ResetContext failed")
	}
	if r.IsActionMapped("jump") {
		t.Error("current context still mapped after ResetContext")
	}
	if !r.HasAction("jump") {
		t.Error("ResetContext deleted action names")
	}
	if !r.IsActionMappedIn("menu", "jump") {
		t.Error("ResetContext leaked into another context")
	}

	r.ResetAllContexts()
	if r.IsActionMappedIn("menu", "jump") {
		t.Error("menu still mapped after ResetAllContexts")
	}
}

func TestDeleteAllActions(t *testing.T) {
	r := newGameplayResolver(t)
	r.AddAction("a")
	r.AddAction("b")
	r.MapAction("a", key.CodeA)

	if !r.DeleteAllActions() {
		t.Fatal("DeleteAllActions failed")
	}
	if len(r.Actions()) != 0 {
		t.Errorf("Actions = %v after DeleteAllActions", r.Actions())
	}
	if r.IsKeyMapped(key.CodeA) {
		t.Error("reverse index survived DeleteAllActions")
	}
}

func TestBindingsOrder(t *testing.T) {
	r := newGameplayResolver(t)
	r.AddAction("jump")
	r.AddAction("fire")
	r.AddAction("taunt") // left unbound
	r.MapAction("jump", key.CodeSpace)
	r.MapAction("fire", key.CodeF)

	b := r.Bindings()
	if len(b) != 2 {
		t.Fatalf("Bindings = %v, want 2 entries", b)
	}
	if b[0].Action != "jump" || b[0].Key != key.CodeSpace {
		t.Errorf("Bindings[0] = %+v", b[0])
	}
	if b[1].Action != "fire" || b[1].Key != key.CodeF {
		t.Errorf("Bindings[1] = %+v", b[1])
	}
}

func TestOpsWithNoCurrentContext(t *testing.T) {
	r := NewResolver[key.Code]()

	if r.AddAction("jump") {
		t.Error("AddAction succeeded with no current context")
	}
	if r.MapAction("jump", key.CodeSpace) {
		t.Error("MapAction succeeded with no current context")
	}
	if _, ok := r.KeyForAction("jump"); ok {
		t.Error("KeyForAction ok = true with no current context")
	}
	if r.Actions() != nil {
		t.Error("Actions non-nil with no current context")
	}
	if r.ResetContext() {
		t.Error("ResetContext succeeded with no current context")
	}
}
