// Package config loads binding profiles from TOML and watches them for
// changes. A profile declares contexts, their actions, and the key
// each action is bound to; Apply installs a profile onto a mapping
// resolver.
package config
