package config

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/inputcore/key"
	"github.com/dshills/inputcore/mapping"
)

// Profile is a declarative binding layout loaded from TOML. Each
// context names its actions and the key each action is bound to; an
// action with an empty key is declared but left unmapped.
//
//	current = "gameplay"
//
//	[[context]]
//	name = "gameplay"
//	enabled = true
//	[context.bindings]
//	jump = "space"
//	fire = "mouse1"
type Profile struct {
	Current  string           `toml:"current"`
	Contexts []ProfileContext `toml:"context"`
}

// ProfileContext is one context block in a profile.
type ProfileContext struct {
	Name     string            `toml:"name"`
	Enabled  *bool             `toml:"enabled"`
	Bindings map[string]string `toml:"bindings"`
}

// Load reads a profile from a TOML file.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile %s: %w", path, err)
	}
	return Parse(data)
}

// LoadFrom reads a profile from an io.Reader.
func LoadFrom(r io.Reader) (*Profile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	return Parse(data)
}

// Parse decodes a profile from TOML bytes and validates it.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the profile for structural problems: unnamed or
// duplicate contexts, unknown key names, and a current context that no
// block declares.
func (p *Profile) Validate() error {
	seen := make(map[string]bool, len(p.Contexts))
	for i, ctx := range p.Contexts {
		if ctx.Name == "" {
			return fmt.Errorf("context %d: missing name", i)
		}
		if seen[ctx.Name] {
			return fmt.Errorf("context %q: declared twice", ctx.Name)
		}
		seen[ctx.Name] = true
		for action, keyName := range ctx.Bindings {
			if action == "" {
				return fmt.Errorf("context %q: binding with empty action name", ctx.Name)
			}
			if keyName == "" {
				continue
			}
			if _, ok := key.FromName(keyName); !ok {
				return fmt.Errorf("context %q: action %q: unknown key %q", ctx.Name, action, keyName)
			}
		}
	}
	if p.Current != "" && !seen[p.Current] {
		return fmt.Errorf("current context %q is not declared", p.Current)
	}
	return nil
}

// Apply installs the profile onto a resolver. Contexts are created if
// missing and their listed actions bound; actions already present in
// an existing context are rebound, others are left alone. The
// profile's current context, if any, becomes current.
func (p *Profile) Apply(r *mapping.Resolver[key.Code]) error {
	for _, ctx := range p.Contexts {
		if !r.HasContext(ctx.Name) {
			if !r.AddContext(ctx.Name) {
				return fmt.Errorf("adding context %q", ctx.Name)
			}
		}
		if ctx.Enabled != nil {
			if *ctx.Enabled {
				r.EnableContext(ctx.Name)
			} else {
				r.DisableContext(ctx.Name)
			}
		}
		for action, keyName := range ctx.Bindings {
			if !r.HasActionIn(ctx.Name, action) {
				if !r.AddActionIn(ctx.Name, action) {
					return fmt.Errorf("context %q: adding action %q", ctx.Name, action)
				}
			}
			if keyName == "" {
				continue
			}
			code, ok := key.FromName(keyName)
			if !ok {
				return fmt.Errorf("context %q: action %q: unknown key %q", ctx.Name, action, keyName)
			}
			if !r.MapActionIn(ctx.Name, action, code) {
				return fmt.Errorf("context %q: mapping %q to %q", ctx.Name, action, keyName)
			}
		}
	}
	if p.Current != "" {
		if !r.SetCurrentContext(p.Current) {
			return fmt.Errorf("setting current context %q", p.Current)
		}
	}
	return nil
}

// FromResolver captures a resolver's contexts and bindings as a
// profile suitable for writing back to TOML.
func FromResolver(r *mapping.Resolver[key.Code]) *Profile {
	p := &Profile{}
	if cur, ok := r.CurrentContext(); ok {
		p.Current = cur
	}
	for _, name := range r.Contexts() {
		enabled := r.IsContextEnabled(name)
		ctx := ProfileContext{
			Name:     name,
			Enabled:  &enabled,
			Bindings: make(map[string]string),
		}
		for _, action := range r.ActionsIn(name) {
			if code, ok := r.KeyForActionIn(name, action); ok {
				ctx.Bindings[action] = code.String()
			} else {
				ctx.Bindings[action] = ""
			}
		}
		p.Contexts = append(p.Contexts, ctx)
	}
	return p
}

// Encode renders the profile as TOML.
func (p *Profile) Encode() ([]byte, error) {
	data, err := toml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encoding profile: %w", err)
	}
	return data, nil
}
