package roles

import (
	"fmt"
	"sync"
)

// UserRoles tracks which persona each user has selected. Assignments live for
// the process lifetime only; a user with no assignment resolves to the
// configured default role. The store is safe for concurrent use; writes to
// the same user resolve last-write-wins.
type UserRoles struct {
	registry    *Registry
	defaultRole string

	mu       sync.RWMutex
	assigned map[int64]string
}

// NewUserRoles creates an empty assignment store backed by the given
// registry. The default role must exist in the registry.
func NewUserRoles(registry *Registry, defaultRole string) (*UserRoles, error) {
	if registry == nil {
		return nil, fmt.Errorf("registry is nil")
	}
	if !registry.Exists(defaultRole) {
		return nil, fmt.Errorf("%w: default role %q", ErrUnknownRole, defaultRole)
	}

	return &UserRoles{
		registry:    registry,
		defaultRole: defaultRole,
		assigned:    make(map[int64]string),
	}, nil
}

// Get returns the role selected by the given user, or the default role when
// the user has never selected one. Get never fails: every value it returns
// is guaranteed to resolve in the registry because Set validates on write.
func (s *UserRoles) Get(userID int64) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if role, ok := s.assigned[userID]; ok {
		return role
	}
	return s.defaultRole
}

// Set assigns a role to a user, overwriting any previous assignment. The
// role is validated against the registry before the store is touched, so a
// rejected Set leaves the previous assignment intact.
func (s *UserRoles) Set(userID int64, role string) error {
	if !s.registry.Exists(role) {
		return fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	s.mu.Lock()
	s.assigned[userID] = role
	s.mu.Unlock()
	return nil
}
