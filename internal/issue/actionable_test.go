// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			name: "operation only",
			err:  &ActionableError{Operation: "activate environment"},
			want: "failed to activate environment",
		},
		{
			name: "with resource",
			err:  &ActionableError{Operation: "load configuration", Resource: "vlaunch.cue"},
			want: "failed to load configuration: vlaunch.cue",
		},
		{
			name: "with resource and cause",
			err: &ActionableError{
				Operation: "load configuration",
				Resource:  "vlaunch.cue",
				Cause:     errors.New("permission denied"),
			},
			want: "failed to load configuration: vlaunch.cue: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorContextBuilder(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := NewErrorContext().
		WithOperation("run script").
		WithResource("app.py").
		WithSuggestion("Check the script for syntax errors").
		WithSuggestion("Run with --verbose").
		Wrap(cause).
		Build()

	if err.Operation != "run script" {
		t.Errorf("Operation = %q", err.Operation)
	}
	if err.Resource != "app.py" {
		t.Errorf("Resource = %q", err.Resource)
	}
	if len(err.Suggestions) != 2 {
		t.Fatalf("Suggestions = %v, want 2 entries", err.Suggestions)
	}
	if !errors.Is(err, cause) {
		t.Error("ActionableError does not unwrap to its cause")
	}
}

func TestBuildErrorAs(t *testing.T) {
	t.Parallel()

	err := NewErrorContext().WithOperation("locate venv").BuildError()

	var actErr *ActionableError
	if !errors.As(err, &actErr) {
		t.Fatalf("BuildError() = %T, want *ActionableError", err)
	}
}

func TestFormatSuggestions(t *testing.T) {
	t.Parallel()

	err := NewErrorContext().
		WithOperation("locate venv").
		WithSuggestion("Create the environment first").
		Build()

	out := err.Format(false)
	if !strings.Contains(out, "Create the environment first") {
		t.Errorf("Format() = %q, suggestion missing", out)
	}
	if strings.Contains(out, "Error chain") {
		t.Error("non-verbose Format() included the error chain")
	}
}

func TestFormatVerboseChain(t *testing.T) {
	t.Parallel()

	inner := errors.New("no such file")
	middle := fmt.Errorf("stat failed: %w", inner)
	err := NewErrorContext().WithOperation("locate venv").Wrap(middle).Build()

	out := err.Format(true)
	if !strings.Contains(out, "Error chain:") {
		t.Fatalf("Format(true) = %q, chain header missing", out)
	}
	if !strings.Contains(out, "stat failed") || !strings.Contains(out, "no such file") {
		t.Errorf("Format(true) = %q, chain entries missing", out)
	}
}
