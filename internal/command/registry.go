package command

import (
	"fmt"
	"strings"
	"sync"
)

// Scope selects which kind of message a command is registered for.
type Scope int

// Registration scopes.
const (
	// ScopeChannel registers a command for channel messages.
	ScopeChannel Scope = iota
	// ScopePrivate registers a command for private messages.
	ScopePrivate
)

// String returns the scope name as used in catalogs.
func (s Scope) String() string {
	switch s {
	case ScopeChannel:
		return "channel"
	case ScopePrivate:
		return "private"
	default:
		return fmt.Sprintf("Scope(%d)", int(s))
	}
}

// Registry is the live command table. It maps command names to definitions,
// separately for channel and private messages, and may be read and updated
// concurrently.
type Registry struct {
	mu       sync.RWMutex
	caseFold bool
	tables   map[Scope]map[string]*Definition
}

// NewRegistry creates an empty Registry.
//
// Postcondition: Returns a Registry; lookups fold case iff caseFold is set.
func NewRegistry(caseFold bool) *Registry {
	return &Registry{
		caseFold: caseFold,
		tables: map[Scope]map[string]*Definition{
			ScopeChannel: make(map[string]*Definition),
			ScopePrivate: make(map[string]*Definition),
		},
	}
}

func (r *Registry) fold(name string) string {
	if r.caseFold {
		return strings.ToLower(name)
	}
	return name
}

// Register adds a command definition to the tables for the given scopes.
//
// Precondition: def must be non-nil with a non-empty name; at least one scope
// must be given.
// Postcondition: Returns nil, or an error if the name is already taken in
// one of the scopes (in which case no scope was modified).
func (r *Registry) Register(def *Definition, scopes ...Scope) error {
	if def.Name == "" {
		return fmt.Errorf("command name must not be empty")
	}
	if len(scopes) == 0 {
		return fmt.Errorf("command %q registered without a scope", def.Name)
	}
	name := r.fold(def.Name)

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, scope := range scopes {
		table, ok := r.tables[scope]
		if !ok {
			return fmt.Errorf("unknown scope %v for command %q", scope, def.Name)
		}
		if _, exists := table[name]; exists {
			return fmt.Errorf("duplicate %v command name %q", scope, def.Name)
		}
	}
	for _, scope := range scopes {
		r.tables[scope][name] = def
	}
	return nil
}

// Unregister removes a command name from the given scopes. Unknown names are
// ignored.
func (r *Registry) Unregister(name string, scopes ...Scope) {
	folded := r.fold(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, scope := range scopes {
		delete(r.tables[scope], folded)
	}
}

// Resolve looks up a command definition by name.
//
// Postcondition: Returns (definition, true) if the name is registered in the
// scope, or (nil, false).
func (r *Registry) Resolve(scope Scope, name string) (*Definition, bool) {
	folded := r.fold(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.tables[scope][folded]
	return def, ok
}

// Commands returns all definitions registered in the scope, in no particular
// order.
func (r *Registry) Commands(scope Scope) []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Definition, 0, len(r.tables[scope]))
	for _, def := range r.tables[scope] {
		result = append(result, def)
	}
	return result
}
