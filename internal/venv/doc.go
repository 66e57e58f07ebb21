// SPDX-License-Identifier: MPL-2.0

// Package venv locates Python virtual environments and produces the
// process environment their activation routine would establish.
//
// Activation has two modes. On hosts with a POSIX activate script the
// script is sourced inside the embedded shell interpreter (mvdan/sh) and
// its exported variables are captured; the script's exit status is the
// activation status. On Windows, or when no activate script exists, the
// activation environment is synthesized directly from the venv layout:
// VIRTUAL_ENV is set, the venv executable directory is prepended to PATH,
// and PYTHONHOME is dropped.
package venv
