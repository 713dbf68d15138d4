// Package script evaluates Lua binding scripts. A script returns a
// profile table describing contexts and bindings, letting layouts be
// computed instead of written out by hand:
//
//	local movement = { up = "w", down = "s", left = "a", right = "d" }
//	return {
//	    current = "gameplay",
//	    contexts = {
//	        { name = "gameplay", enabled = true, bindings = movement },
//	    },
//	}
//
// The Lua state is sandboxed: only the base, table, string, and math
// libraries are opened, so scripts cannot touch the filesystem or
// spawn processes.
package script

import (
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/inputcore/config"
	"github.com/dshills/inputcore/key"
	"github.com/dshills/inputcore/mapping"
)

// DefaultInstructionLimit bounds runaway scripts.
const DefaultInstructionLimit = 1_000_000

// Evaluator runs binding scripts in a sandboxed Lua state. Not
// goroutine-safe; use from one goroutine only.
type Evaluator struct {
	instructionLimit int64
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithInstructionLimit overrides the per-script instruction budget.
// Advisory: gopher-lua cannot interrupt straight-line Lua mid-run.
func WithInstructionLimit(limit int64) Option {
	return func(e *Evaluator) { e.instructionLimit = limit }
}

// NewEvaluator creates a script evaluator.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{instructionLimit: DefaultInstructionLimit}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EvalFile runs the script at path and returns the profile it built.
func (e *Evaluator) EvalFile(path string) (*config.Profile, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script %s: %w", path, err)
	}
	return e.Eval(string(src), path)
}

// Eval runs a script and returns the profile it built. name appears in
// error messages.
func (e *Evaluator) Eval(src, name string) (*config.Profile, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	e.openSandbox(L)

	fn, err := L.LoadString(src)
	if err != nil {
		return nil, fmt.Errorf("compiling script %s: %w", name, err)
	}
	L.Push(fn)
	if err := L.PCall(0, 1, nil); err != nil {
		return nil, fmt.Errorf("running script %s: %w", name, err)
	}
	ret := L.Get(-1)
	L.Pop(1)

	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("script %s: expected a profile table, got %s", name, ret.Type())
	}
	p, err := profileFromTable(tbl)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", name, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("script %s: %w", name, err)
	}
	return p, nil
}

// Apply runs the script at path and installs the result on a resolver.
func (e *Evaluator) Apply(path string, r *mapping.Resolver[key.Code]) error {
	p, err := e.EvalFile(path)
	if err != nil {
		return err
	}
	return p.Apply(r)
}

// openSandbox opens only the libraries a binding script needs.
func (e *Evaluator) openSandbox(L *lua.LState) {
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	// Drop escape hatches the base library leaves behind.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
}

func profileFromTable(t *lua.LTable) (*config.Profile, error) {
	p := &config.Profile{}
	if cur, ok := t.RawGetString("current").(lua.LString); ok {
		p.Current = string(cur)
	}
	ctxs, ok := t.RawGetString("contexts").(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("profile table has no contexts array")
	}
	var convErr error
	ctxs.ForEach(func(_, v lua.LValue) {
		if convErr != nil {
			return
		}
		ct, ok := v.(*lua.LTable)
		if !ok {
			convErr = fmt.Errorf("contexts entry is %s, want table", v.Type())
			return
		}
		ctx, err := contextFromTable(ct)
		if err != nil {
			convErr = err
			return
		}
		p.Contexts = append(p.Contexts, ctx)
	})
	if convErr != nil {
		return nil, convErr
	}
	return p, nil
}

func contextFromTable(t *lua.LTable) (config.ProfileContext, error) {
	var ctx config.ProfileContext
	name, ok := t.RawGetString("name").(lua.LString)
	if !ok {
		return ctx, fmt.Errorf("context table has no name")
	}
	ctx.Name = string(name)
	if en, ok := t.RawGetString("enabled").(lua.LBool); ok {
		v := bool(en)
		ctx.Enabled = &v
	}
	if bt, ok := t.RawGetString("bindings").(*lua.LTable); ok {
		ctx.Bindings = make(map[string]string)
		var convErr error
		bt.ForEach(func(k, v lua.LValue) {
			if convErr != nil {
				return
			}
			action, ok := k.(lua.LString)
			if !ok {
				convErr = fmt.Errorf("context %q: binding key is %s, want string", ctx.Name, k.Type())
				return
			}
			keyName, ok := v.(lua.LString)
			if !ok {
				convErr = fmt.Errorf("context %q: binding %q is %s, want string", ctx.Name, action, v.Type())
				return
			}
			ctx.Bindings[string(action)] = string(keyName)
		})
		if convErr != nil {
			return ctx, convErr
		}
	}
	return ctx, nil
}
