// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// newVenvLayout creates a venv directory with pyvenv.cfg and an empty
// executable directory, returning its root.
func newVenvLayout(t *testing.T, baseDir, name string) string {
	t.Helper()

	root := filepath.Join(baseDir, name)
	binName := "bin"
	if runtime.GOOS == "windows" {
		binName = "Scripts"
	}
	if err := os.MkdirAll(filepath.Join(root, binName), 0o755); err != nil {
		t.Fatalf("failed to create venv layout: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "pyvenv.cfg"), []byte("home = /usr/bin\n"), 0o644); err != nil {
		t.Fatalf("failed to write pyvenv.cfg: %v", err)
	}
	return root
}

func TestLocate(t *testing.T) {
	t.Parallel()

	t.Run("valid layout", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		root := newVenvLayout(t, baseDir, "venv_py310")

		v, err := Locate(baseDir, "venv_py310")
		if err != nil {
			t.Fatalf("Locate() failed: %v", err)
		}
		resolvedRoot, err := filepath.EvalSymlinks(v.Root)
		if err != nil {
			t.Fatalf("EvalSymlinks(%q) failed: %v", v.Root, err)
		}
		wantRoot, err := filepath.EvalSymlinks(root)
		if err != nil {
			t.Fatalf("EvalSymlinks(%q) failed: %v", root, err)
		}
		if resolvedRoot != wantRoot {
			t.Errorf("Locate().Root = %q, want %q", resolvedRoot, wantRoot)
		}
		if v.Name != "venv_py310" {
			t.Errorf("Locate().Name = %q, want %q", v.Name, "venv_py310")
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		_, err := Locate(t.TempDir(), "venv_py310")
		if !errors.Is(err, ErrVenvNotFound) {
			t.Errorf("Locate() error = %v, want ErrVenvNotFound", err)
		}
	})

	t.Run("file instead of directory", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		if err := os.WriteFile(filepath.Join(baseDir, "venv_py310"), []byte("not a venv"), 0o644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		_, err := Locate(baseDir, "venv_py310")
		if !errors.Is(err, ErrInvalidLayout) {
			t.Errorf("Locate() error = %v, want ErrInvalidLayout", err)
		}
	})

	t.Run("missing pyvenv.cfg", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		if err := os.MkdirAll(filepath.Join(baseDir, "venv_py310", "bin"), 0o755); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}

		_, err := Locate(baseDir, "venv_py310")
		if !errors.Is(err, ErrInvalidLayout) {
			t.Errorf("Locate() error = %v, want ErrInvalidLayout", err)
		}
	})
}

func TestVenvBinDir(t *testing.T) {
	t.Parallel()

	v := &Venv{Root: filepath.Join("proj", "venv_py310"), Name: "venv_py310"}

	want := filepath.Join(v.Root, "bin")
	if runtime.GOOS == "windows" {
		want = filepath.Join(v.Root, "Scripts")
	}
	if got := v.BinDir(); got != want {
		t.Errorf("BinDir() = %q, want %q", got, want)
	}
}

func TestVenvActivateScript(t *testing.T) {
	t.Parallel()

	v := &Venv{Root: "venv_py310", Name: "venv_py310"}
	if got, want := v.ActivateScript(), filepath.Join(v.BinDir(), "activate"); got != want {
		t.Errorf("ActivateScript() = %q, want %q", got, want)
	}
}

func TestVenvPython(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("exercises the POSIX candidate list")
	}
	t.Parallel()

	t.Run("resolves python3 first", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		root := newVenvLayout(t, baseDir, "venv_py310")
		for _, name := range []string{"python3", "python"} {
			if err := os.WriteFile(filepath.Join(root, "bin", name), []byte("#!/bin/sh\n"), 0o755); err != nil {
				t.Fatalf("failed to write %s: %v", name, err)
			}
		}

		v := &Venv{Root: root, Name: "venv_py310"}
		got, err := v.Python()
		if err != nil {
			t.Fatalf("Python() failed: %v", err)
		}
		if want := filepath.Join(root, "bin", "python3"); got != want {
			t.Errorf("Python() = %q, want %q", got, want)
		}
	})

	t.Run("empty bin dir", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		root := newVenvLayout(t, baseDir, "venv_py310")

		v := &Venv{Root: root, Name: "venv_py310"}
		if _, err := v.Python(); !errors.Is(err, ErrInterpreterNotFound) {
			t.Errorf("Python() error = %v, want ErrInterpreterNotFound", err)
		}
	})
}
