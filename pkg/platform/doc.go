// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// This package centralizes the platform-specific concerns shared by the
// launcher: GOOS name constants and the per-OS user configuration
// directory conventions.
package platform
