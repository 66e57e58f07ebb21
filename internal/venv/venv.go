// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"vlaunch/pkg/platform"
)

// cfgFileName marks a directory as a virtual environment. Every venv
// created by the venv module or virtualenv carries one at its root.
const cfgFileName = "pyvenv.cfg"

var (
	// ErrVenvNotFound is the sentinel error wrapped by NotFoundError.
	ErrVenvNotFound = errors.New("virtual environment not found")
	// ErrInvalidLayout is the sentinel error wrapped by InvalidLayoutError.
	ErrInvalidLayout = errors.New("invalid virtual environment layout")
	// ErrInterpreterNotFound is the sentinel error wrapped by InterpreterNotFoundError.
	ErrInterpreterNotFound = errors.New("venv interpreter not found")
)

type (
	// Venv is a located virtual environment directory.
	Venv struct {
		// Root is the absolute path of the venv directory.
		Root string
		// Name is the directory name the venv was located by.
		Name string
	}

	// NotFoundError is returned when the venv directory does not exist.
	NotFoundError struct {
		Path string
	}

	// InvalidLayoutError is returned when the venv directory exists but
	// does not look like a virtual environment.
	InvalidLayoutError struct {
		Path   string
		Reason string
	}

	// InterpreterNotFoundError is returned when no python executable can
	// be resolved inside the venv's executable directory.
	InterpreterNotFoundError struct {
		BinDir string
	}
)

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("virtual environment not found at %q", e.Path)
}

// Unwrap returns ErrVenvNotFound so callers can use errors.Is for programmatic detection.
func (e *NotFoundError) Unwrap() error { return ErrVenvNotFound }

// Error implements the error interface.
func (e *InvalidLayoutError) Error() string {
	return fmt.Sprintf("%q is not a virtual environment: %s", e.Path, e.Reason)
}

// Unwrap returns ErrInvalidLayout so callers can use errors.Is for programmatic detection.
func (e *InvalidLayoutError) Unwrap() error { return ErrInvalidLayout }

// Error implements the error interface.
func (e *InterpreterNotFoundError) Error() string {
	return fmt.Sprintf("no python executable found in %q", e.BinDir)
}

// Unwrap returns ErrInterpreterNotFound so callers can use errors.Is for programmatic detection.
func (e *InterpreterNotFoundError) Unwrap() error { return ErrInterpreterNotFound }

// Locate resolves the virtual environment directory name relative to
// baseDir and validates its layout.
func Locate(baseDir, name string) (*Venv, error) {
	root := filepath.Join(baseDir, name)
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: root}
		}
		return nil, fmt.Errorf("failed to inspect %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, &InvalidLayoutError{Path: root, Reason: "not a directory"}
	}

	if _, err := os.Stat(filepath.Join(root, cfgFileName)); err != nil {
		if os.IsNotExist(err) {
			return nil, &InvalidLayoutError{Path: root, Reason: cfgFileName + " is missing"}
		}
		return nil, fmt.Errorf("failed to inspect %q: %w", root, err)
	}

	return &Venv{Root: root, Name: name}, nil
}

// BinDir returns the venv's executable directory: Scripts on Windows,
// bin everywhere else.
func (v *Venv) BinDir() string {
	if platform.IsWindows() {
		return filepath.Join(v.Root, "Scripts")
	}
	return filepath.Join(v.Root, "bin")
}

// ActivateScript returns the path of the venv's POSIX activation script.
// The file is not guaranteed to exist; Activate falls back to synthesis
// when it does not.
func (v *Venv) ActivateScript() string {
	return filepath.Join(v.BinDir(), "activate")
}

// Python resolves the venv's python executable.
func (v *Venv) Python() (string, error) {
	binDir := v.BinDir()

	candidates := []string{"python3", "python"}
	if platform.IsWindows() {
		candidates = []string{"python.exe", "python3.exe"}
	}

	for _, name := range candidates {
		path := filepath.Join(binDir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}

	return "", &InterpreterNotFoundError{BinDir: binDir}
}
