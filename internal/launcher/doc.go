// SPDX-License-Identifier: MPL-2.0

// Package launcher orchestrates the launch sequence: enter the project
// directory, activate the virtual environment, run the entry-point script
// under the venv interpreter, and restore the original working directory.
//
// The sequence is strictly fail-fast. Each stage's exit status is checked
// before the next stage starts, the first non-zero status aborts the run,
// and that status becomes the launcher's own exit code. The working
// directory is restored on every exit path, and every branch (success and
// both failures) blocks on user acknowledgment before returning.
package launcher
