// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidVenvDirName is the sentinel error wrapped by InvalidVenvDirNameError.
	ErrInvalidVenvDirName = errors.New("invalid venv directory name")
	// ErrInvalidEntryPoint is the sentinel error wrapped by InvalidEntryPointError.
	ErrInvalidEntryPoint = errors.New("invalid entry point")
	// ErrInvalidColorScheme is the sentinel error wrapped by InvalidColorSchemeError.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// VenvDirName is the virtual environment directory name, resolved
	// relative to the launcher's base directory.
	VenvDirName string

	// InvalidVenvDirNameError is returned when a VenvDirName is empty or
	// whitespace-only. It wraps ErrInvalidVenvDirName for errors.Is() compatibility.
	InvalidVenvDirNameError struct {
		Value VenvDirName
	}

	// EntryPoint is the script file passed to the interpreter.
	EntryPoint string

	// InvalidEntryPointError is returned when an EntryPoint is empty or
	// whitespace-only. It wraps ErrInvalidEntryPoint for errors.Is() compatibility.
	InvalidEntryPointError struct {
		Value EntryPoint
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not
	// recognized. It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidConfigError aggregates the validation errors of a Config.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		Errors []error
	}
)

// Error implements the error interface.
func (e *InvalidVenvDirNameError) Error() string {
	return fmt.Sprintf("invalid venv directory name %q (must be non-empty)", e.Value)
}

// Unwrap returns ErrInvalidVenvDirName so callers can use errors.Is for programmatic detection.
func (e *InvalidVenvDirNameError) Unwrap() error { return ErrInvalidVenvDirName }

// Error implements the error interface.
func (e *InvalidEntryPointError) Error() string {
	return fmt.Sprintf("invalid entry point %q (must be non-empty)", e.Value)
}

// Unwrap returns ErrInvalidEntryPoint so callers can use errors.Is for programmatic detection.
func (e *InvalidEntryPointError) Unwrap() error { return ErrInvalidEntryPoint }

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (must be auto, dark, or light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme so callers can use errors.Is for programmatic detection.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig so callers can use errors.Is for programmatic detection.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// IsValid returns whether the VenvDirName is non-empty, and a list of
// validation errors if it is not.
func (n VenvDirName) IsValid() (bool, []error) {
	if strings.TrimSpace(string(n)) == "" {
		return false, []error{&InvalidVenvDirNameError{Value: n}}
	}
	return true, nil
}

// String returns the directory name as a plain string.
func (n VenvDirName) String() string { return string(n) }

// IsValid returns whether the EntryPoint is non-empty, and a list of
// validation errors if it is not.
func (p EntryPoint) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidEntryPointError{Value: p}}
	}
	return true, nil
}

// String returns the entry point as a plain string.
func (p EntryPoint) String() string { return string(p) }

// IsValid returns whether the ColorScheme is one of the defined schemes,
// and a list of validation errors if it is not.
func (s ColorScheme) IsValid() (bool, []error) {
	switch s {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: s}}
	}
}

// String returns the color scheme as a plain string.
func (s ColorScheme) String() string { return string(s) }
