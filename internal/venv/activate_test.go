// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"bytes"
	"context"
	"errors"
	"os"
	"runtime"
	"strings"
	"testing"
)

func writeActivate(t *testing.T, v *Venv, body string) string {
	t.Helper()

	script := v.ActivateScript()
	if err := os.WriteFile(script, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write activate script: %v", err)
	}
	return script
}

func locateTestVenv(t *testing.T) *Venv {
	t.Helper()

	baseDir := t.TempDir()
	newVenvLayout(t, baseDir, "venv_py310")
	v, err := Locate(baseDir, "venv_py310")
	if err != nil {
		t.Fatalf("Locate() failed: %v", err)
	}
	return v
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("sourcing exercises the POSIX activate script")
	}
}

func TestSourceCapturesExportedVars(t *testing.T) {
	skipOnWindows(t)
	t.Parallel()

	v := locateTestVenv(t)
	script := writeActivate(t, v, `
export VIRTUAL_ENV="`+v.Root+`"
export APP_READY=1
LOCAL_ONLY=nope
`)

	activation, err := Source(context.Background(), v, script, &bytes.Buffer{}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Source() failed: %v", err)
	}

	if activation.Mode != ActivationSourced {
		t.Errorf("Mode = %q, want %q", activation.Mode, ActivationSourced)
	}
	if got := activation.Env["APP_READY"]; got != "1" {
		t.Errorf("APP_READY = %q, want %q", got, "1")
	}
	if got := activation.Env["VIRTUAL_ENV"]; got != v.Root {
		t.Errorf("VIRTUAL_ENV = %q, want %q", got, v.Root)
	}
	if _, ok := activation.Env["LOCAL_ONLY"]; ok {
		t.Error("non-exported variable leaked into the activation environment")
	}
	if !strings.Contains(activation.Env["PATH"], v.BinDir()) {
		t.Errorf("PATH %q does not contain the venv bin dir", activation.Env["PATH"])
	}
}

func TestSourcePropagatesExitStatus(t *testing.T) {
	skipOnWindows(t)
	t.Parallel()

	v := locateTestVenv(t)
	script := writeActivate(t, v, "exit 42\n")

	_, err := Source(context.Background(), v, script, &bytes.Buffer{}, &bytes.Buffer{})
	if err == nil {
		t.Fatal("Source() succeeded for a failing script")
	}

	var srcErr *SourceError
	if !errors.As(err, &srcErr) {
		t.Fatalf("Source() error = %T, want *SourceError", err)
	}
	if srcErr.ExitStatus != 42 {
		t.Errorf("ExitStatus = %d, want 42", srcErr.ExitStatus)
	}
	if !errors.Is(err, ErrActivationScript) {
		t.Error("SourceError does not wrap ErrActivationScript")
	}
}

func TestSourceParseError(t *testing.T) {
	skipOnWindows(t)
	t.Parallel()

	v := locateTestVenv(t)
	script := writeActivate(t, v, "if then fi\n")

	_, err := Source(context.Background(), v, script, &bytes.Buffer{}, &bytes.Buffer{})

	var srcErr *SourceError
	if !errors.As(err, &srcErr) {
		t.Fatalf("Source() error = %T, want *SourceError", err)
	}
	if srcErr.ExitStatus != 1 {
		t.Errorf("ExitStatus = %d, want 1", srcErr.ExitStatus)
	}
}

func TestActivateFallsBackToSynthesis(t *testing.T) {
	skipOnWindows(t)
	t.Parallel()

	// No activate script in the layout.
	v := locateTestVenv(t)

	activation, err := Activate(context.Background(), v, &bytes.Buffer{}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Activate() failed: %v", err)
	}
	if activation.Mode != ActivationSynthesized {
		t.Errorf("Mode = %q, want %q", activation.Mode, ActivationSynthesized)
	}
}

func TestSynthesize(t *testing.T) {
	// t.Setenv forbids parallel subtests.
	t.Setenv("PYTHONHOME", "/opt/python")
	t.Setenv("PATH", "/usr/bin")

	v := locateTestVenv(t)
	activation := Synthesize(v)

	if activation.Mode != ActivationSynthesized {
		t.Errorf("Mode = %q, want %q", activation.Mode, ActivationSynthesized)
	}
	if got := activation.Env["VIRTUAL_ENV"]; got != v.Root {
		t.Errorf("VIRTUAL_ENV = %q, want %q", got, v.Root)
	}
	if _, ok := activation.Env["PYTHONHOME"]; ok {
		t.Error("PYTHONHOME survived synthesis")
	}

	wantPath := v.BinDir() + string(os.PathListSeparator) + "/usr/bin"
	if got := activation.Env["PATH"]; got != wantPath {
		t.Errorf("PATH = %q, want %q", got, wantPath)
	}
}

func TestSynthesizeKeepsBinDirFirstOnce(t *testing.T) {
	v := locateTestVenv(t)
	t.Setenv("PATH", v.BinDir()+string(os.PathListSeparator)+"/usr/bin")

	activation := Synthesize(v)

	if got := activation.Env["PATH"]; strings.Count(got, v.BinDir()) != 1 {
		t.Errorf("PATH = %q, venv bin dir must appear exactly once", got)
	}
}

func TestActivationEnviron(t *testing.T) {
	t.Parallel()

	activation := &Activation{Env: map[string]string{"A": "1", "B": "two"}}

	environ := activation.Environ()
	if len(environ) != 2 {
		t.Fatalf("Environ() returned %d entries, want 2", len(environ))
	}
	found := map[string]bool{}
	for _, kv := range environ {
		found[kv] = true
	}
	if !found["A=1"] || !found["B=two"] {
		t.Errorf("Environ() = %v, want A=1 and B=two", environ)
	}
}

func TestEnvironMap(t *testing.T) {
	t.Parallel()

	env := environMap([]string{"A=1", "B=x=y", "MALFORMED"})

	if env["A"] != "1" {
		t.Errorf("A = %q, want %q", env["A"], "1")
	}
	if env["B"] != "x=y" {
		t.Errorf("B = %q, want %q", env["B"], "x=y")
	}
	if _, ok := env["MALFORMED"]; ok {
		t.Error("malformed entry leaked into the map")
	}
}
