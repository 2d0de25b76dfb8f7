// Package roles holds the persona catalog and the per-user role assignments
// used to shape prompts sent to the AI backend.
package roles

import (
	"errors"
	"fmt"
)

// ErrUnknownRole is returned when a role identifier is not present in the catalog.
var ErrUnknownRole = errors.New("unknown role")

// Role is a named persona: an identifier plus the behavioral instruction
// injected as system context into every prompt sent on behalf of a user
// with that role selected.
type Role struct {
	Name        string
	Description string
}

// Registry is a fixed, ordered catalog of personas. It is built once at
// startup from configuration and never mutated afterwards, which makes
// lookups safe for concurrent use without locking.
type Registry struct {
	descriptions map[string]string
	ordered      []Role
}

// NewRegistry builds a registry from the given catalog, preserving catalog
// order for enumeration. Role names must be unique and both names and
// descriptions must be non-empty.
func NewRegistry(catalog []Role) (*Registry, error) {
	if len(catalog) == 0 {
		return nil, fmt.Errorf("role catalog is empty")
	}

	r := &Registry{
		descriptions: make(map[string]string, len(catalog)),
		ordered:      make([]Role, 0, len(catalog)),
	}
	for _, role := range catalog {
		if role.Name == "" {
			return nil, fmt.Errorf("role with empty name in catalog")
		}
		if role.Description == "" {
			return nil, fmt.Errorf("role %q has an empty description", role.Name)
		}
		if _, exists := r.descriptions[role.Name]; exists {
			return nil, fmt.Errorf("duplicate role %q in catalog", role.Name)
		}
		r.descriptions[role.Name] = role.Description
		r.ordered = append(r.ordered, role)
	}

	return r, nil
}

// Describe returns the persona description for the given role name.
func (r *Registry) Describe(name string) (string, error) {
	desc, ok := r.descriptions[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, name)
	}
	return desc, nil
}

// Exists reports whether the given role name is registered.
func (r *Registry) Exists(name string) bool {
	_, ok := r.descriptions[name]
	return ok
}

// List returns the full catalog in registration order. The returned slice is
// a copy and may be modified by the caller.
func (r *Registry) List() []Role {
	out := make([]Role, len(r.ordered))
	copy(out, r.ordered)
	return out
}
