package roles

import (
	"errors"
	"testing"
)

func testCatalog() []Role {
	return []Role{
		{Name: "normal", Description: "Respond in a neutral and general way."},
		{Name: "teacher", Description: "Respond as a knowledgeable and patient teacher."},
		{Name: "chef", Description: "Respond as a professional chef with recipe ideas and cooking tips."},
	}
}

func TestNewRegistryValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		catalog []Role
		wantErr bool
	}{
		{
			name:    "valid catalog",
			catalog: testCatalog(),
			wantErr: false,
		},
		{
			name:    "empty catalog",
			catalog: nil,
			wantErr: true,
		},
		{
			name: "duplicate role name",
			catalog: []Role{
				{Name: "normal", Description: "first"},
				{Name: "normal", Description: "second"},
			},
			wantErr: true,
		},
		{
			name: "empty role name",
			catalog: []Role{
				{Name: "", Description: "something"},
			},
			wantErr: true,
		},
		{
			name: "empty description",
			catalog: []Role{
				{Name: "normal", Description: ""},
			},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewRegistry(tc.catalog)
			if (err != nil) != tc.wantErr {
				t.Errorf("NewRegistry() error = %v, wantErr = %v", err, tc.wantErr)
			}
		})
	}
}

func TestRegistryDescribe(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry(testCatalog())
	if err != nil {
		t.Fatalf("NewRegistry() failed: %v", err)
	}

	// Every registered role resolves, and resolution is stable across calls.
	for _, role := range testCatalog() {
		for i := 0; i < 2; i++ {
			desc, err := registry.Describe(role.Name)
			if err != nil {
				t.Errorf("Describe(%q) failed: %v", role.Name, err)
			}
			if desc != role.Description {
				t.Errorf("Describe(%q) = %q, want %q", role.Name, desc, role.Description)
			}
		}
	}

	_, err = registry.Describe("poet")
	if !errors.Is(err, ErrUnknownRole) {
		t.Errorf("Describe(unknown) error = %v, want ErrUnknownRole", err)
	}
}

func TestRegistryExists(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry(testCatalog())
	if err != nil {
		t.Fatalf("NewRegistry() failed: %v", err)
	}

	if !registry.Exists("teacher") {
		t.Error("Exists(teacher) = false, want true")
	}
	if registry.Exists("poet") {
		t.Error("Exists(poet) = true, want false")
	}
}

func TestRegistryListOrder(t *testing.T) {
	t.Parallel()

	catalog := testCatalog()
	registry, err := NewRegistry(catalog)
	if err != nil {
		t.Fatalf("NewRegistry() failed: %v", err)
	}

	listed := registry.List()
	if len(listed) != len(catalog) {
		t.Fatalf("List() returned %d roles, want %d", len(listed), len(catalog))
	}
	for i, role := range catalog {
		if listed[i] != role {
			t.Errorf("List()[%d] = %+v, want %+v", i, listed[i], role)
		}
	}

	// Mutating the returned slice must not affect the registry.
	listed[0].Name = "mutated"
	again := registry.List()
	if again[0].Name != catalog[0].Name {
		t.Error("List() does not return a defensive copy")
	}
}
