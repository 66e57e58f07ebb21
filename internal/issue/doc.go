// SPDX-License-Identifier: MPL-2.0

// Package issue provides the launcher's user-facing error surface: a
// catalog of known failure conditions rendered as markdown panels, plus
// ActionableError, a structured error type carrying the failed operation,
// the resource involved, and suggestions for fixing the problem.
package issue
