package roles

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func newTestStore(t *testing.T) *UserRoles {
	t.Helper()

	registry, err := NewRegistry(testCatalog())
	if err != nil {
		t.Fatalf("NewRegistry() failed: %v", err)
	}
	store, err := NewUserRoles(registry, "normal")
	if err != nil {
		t.Fatalf("NewUserRoles() failed: %v", err)
	}
	return store
}

func TestNewUserRolesRejectsUnknownDefault(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry(testCatalog())
	if err != nil {
		t.Fatalf("NewRegistry() failed: %v", err)
	}

	_, err = NewUserRoles(registry, "poet")
	if !errors.Is(err, ErrUnknownRole) {
		t.Errorf("NewUserRoles(unknown default) error = %v, want ErrUnknownRole", err)
	}
}

func TestUserRolesGetDefault(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	if got := store.Get(42); got != "normal" {
		t.Errorf("Get(unassigned user) = %q, want %q", got, "normal")
	}
}

func TestUserRolesSetAndGet(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	if err := store.Set(42, "teacher"); err != nil {
		t.Fatalf("Set(teacher) failed: %v", err)
	}
	if got := store.Get(42); got != "teacher" {
		t.Errorf("Get() after Set = %q, want %q", got, "teacher")
	}

	// Overwrite wins.
	if err := store.Set(42, "chef"); err != nil {
		t.Fatalf("Set(chef) failed: %v", err)
	}
	if got := store.Get(42); got != "chef" {
		t.Errorf("Get() after second Set = %q, want %q", got, "chef")
	}
}

func TestUserRolesSetUnknownRoleLeavesAssignmentUnchanged(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	if err := store.Set(42, "teacher"); err != nil {
		t.Fatalf("Set(teacher) failed: %v", err)
	}

	err := store.Set(42, "poet")
	if !errors.Is(err, ErrUnknownRole) {
		t.Errorf("Set(unknown) error = %v, want ErrUnknownRole", err)
	}
	if got := store.Get(42); got != "teacher" {
		t.Errorf("Get() after rejected Set = %q, want %q", got, "teacher")
	}
}

func TestUserRolesConcurrentAccess(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	// 10 users, 10 concurrent set/get rounds each. Each user always sets
	// the same role, so a cross-user mixup is detectable afterwards.
	const users = 10
	const rounds = 10

	catalog := testCatalog()
	roleFor := func(userID int64) string {
		return catalog[userID%int64(len(catalog))].Name
	}

	var wg sync.WaitGroup
	for u := int64(1); u <= users; u++ {
		for r := 0; r < rounds; r++ {
			wg.Add(1)
			go func(userID int64) {
				defer wg.Done()
				if err := store.Set(userID, roleFor(userID)); err != nil {
					t.Errorf("Set(%d) failed: %v", userID, err)
				}
				_ = store.Get(userID)
			}(u)
		}
	}
	wg.Wait()

	for u := int64(1); u <= users; u++ {
		want := roleFor(u)
		if got := store.Get(u); got != want {
			t.Errorf("Get(%d) = %q, want %q", u, got, want)
		}
	}
}

func ExampleUserRoles_Get() {
	registry, _ := NewRegistry([]Role{{Name: "normal", Description: "Respond in a neutral and general way."}})
	store, _ := NewUserRoles(registry, "normal")

	fmt.Println(store.Get(123))
	// Output: normal
}
