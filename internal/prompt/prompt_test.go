package prompt

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestCompose(t *testing.T) {
	t.Parallel()

	const description = "Respond as a knowledgeable and patient teacher."

	tests := []struct {
		name     string
		text     string
		wantText string
		wantErr  error
	}{
		{
			name:     "simple text",
			text:     "explain recursion",
			wantText: "explain recursion",
		},
		{
			name:     "surrounding whitespace trimmed",
			text:     "  explain recursion \n",
			wantText: "explain recursion",
		},
		{
			name:    "empty text",
			text:    "",
			wantErr: ErrEmptyInput,
		},
		{
			name:    "whitespace only",
			text:    " \t\n ",
			wantErr: ErrEmptyInput,
		},
		{
			name:     "long text preserved untruncated",
			text:     strings.Repeat("x", 5000),
			wantText: strings.Repeat("x", 5000),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			payload, err := Compose(description, tc.text)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("Compose() error = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Compose() failed: %v", err)
			}

			if payload.Instruction != description {
				t.Errorf("Instruction = %q, want the description verbatim", payload.Instruction)
			}
			if len(payload.Turns) != 1 {
				t.Fatalf("got %d turns, want 1", len(payload.Turns))
			}
			if payload.Turns[0].Role != RoleUser {
				t.Errorf("turn role = %q, want %q", payload.Turns[0].Role, RoleUser)
			}
			if payload.Turns[0].Content != tc.wantText {
				t.Errorf("turn content = %q, want %q", payload.Turns[0].Content, tc.wantText)
			}
		})
	}
}

func TestComposeDeterministic(t *testing.T) {
	t.Parallel()

	first, err := Compose("Respond as a motivating fitness trainer.", "plan my week")
	if err != nil {
		t.Fatalf("Compose() failed: %v", err)
	}
	second, err := Compose("Respond as a motivating fitness trainer.", "plan my week")
	if err != nil {
		t.Fatalf("Compose() failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Compose() is not deterministic: %+v != %+v", first, second)
	}
}
