// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"vlaunch/pkg/platform"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Activation mode constants.
const (
	// ActivationSourced means the venv's activate script was sourced in the
	// embedded shell interpreter and its exported variables captured.
	ActivationSourced ActivationMode = "sourced"
	// ActivationSynthesized means the activation environment was derived
	// from the venv layout without running any script.
	ActivationSynthesized ActivationMode = "synthesized"
)

// ErrActivationScript is the sentinel error wrapped by SourceError.
var ErrActivationScript = errors.New("activation script failed")

type (
	// ActivationMode identifies how the activation environment was produced.
	ActivationMode string

	// Activation is the environment established by activating a venv.
	Activation struct {
		// Env is the full process environment after activation.
		Env map[string]string
		// Mode records how the environment was produced.
		Mode ActivationMode

		venv *Venv
	}

	// SourceError reports a failure while sourcing the activate script.
	// ExitStatus carries the script's exit status (1 for parse or
	// interpreter setup failures).
	SourceError struct {
		Script     string
		ExitStatus int
		Cause      error
	}
)

// Error implements the error interface.
func (e *SourceError) Error() string {
	return fmt.Sprintf("sourcing %q failed with status %d: %v", e.Script, e.ExitStatus, e.Cause)
}

// Unwrap exposes the sentinel and the underlying cause for errors.Is/As traversal.
func (e *SourceError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrActivationScript, e.Cause}
	}
	return []error{ErrActivationScript}
}

// Activate produces the activation environment for the venv. POSIX hosts
// with an activate script present get the sourced mode; everything else
// gets the synthesized mode.
func Activate(ctx context.Context, v *Venv, stdout, stderr io.Writer) (*Activation, error) {
	if platform.IsWindows() {
		return Synthesize(v), nil
	}

	script := v.ActivateScript()
	if _, err := os.Stat(script); err != nil {
		if os.IsNotExist(err) {
			return Synthesize(v), nil
		}
		return nil, fmt.Errorf("failed to inspect %q: %w", script, err)
	}

	return Source(ctx, v, script, stdout, stderr)
}

// Source runs the activate script inside the embedded shell interpreter
// and captures the exported variables it leaves behind, the in-process
// equivalent of `source bin/activate` in a login shell. The script's
// non-zero exit status surfaces as a SourceError.
func Source(ctx context.Context, v *Venv, script string, stdout, stderr io.Writer) (*Activation, error) {
	content, err := os.ReadFile(script)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", script, err)
	}

	prog, err := syntax.NewParser().Parse(bytes.NewReader(content), filepath.Base(script))
	if err != nil {
		return nil, &SourceError{Script: script, ExitStatus: 1, Cause: fmt.Errorf("parse error: %w", err)}
	}

	runner, err := interp.New(
		interp.Dir(filepath.Dir(v.Root)),
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.StdIO(nil, stdout, stderr),
	)
	if err != nil {
		return nil, &SourceError{Script: script, ExitStatus: 1, Cause: fmt.Errorf("interpreter setup: %w", err)}
	}

	if err := runner.Run(ctx, prog); err != nil {
		var status interp.ExitStatus
		if errors.As(err, &status) {
			return nil, &SourceError{Script: script, ExitStatus: int(status), Cause: err}
		}
		return nil, &SourceError{Script: script, ExitStatus: 1, Cause: err}
	}

	env := environMap(os.Environ())
	for name, vr := range runner.Vars {
		if !vr.IsSet() {
			delete(env, name)
			continue
		}
		if !vr.Exported {
			continue
		}
		env[name] = vr.String()
	}
	applyLayoutGuarantees(env, v)

	return &Activation{Env: env, Mode: ActivationSourced, venv: v}, nil
}

// Synthesize derives the activation environment from the venv layout
// without running any script.
func Synthesize(v *Venv) *Activation {
	env := environMap(os.Environ())
	applyLayoutGuarantees(env, v)
	delete(env, "PYTHONHOME")

	return &Activation{Env: env, Mode: ActivationSynthesized, venv: v}
}

// Python resolves the interpreter of the activated venv.
func (a *Activation) Python() (string, error) {
	return a.venv.Python()
}

// Environ returns the activation environment as KEY=VALUE pairs suitable
// for exec.Cmd.Env.
func (a *Activation) Environ() []string {
	environ := make([]string, 0, len(a.Env))
	for k, v := range a.Env {
		environ = append(environ, k+"="+v)
	}
	return environ
}

// applyLayoutGuarantees enforces the two invariants every activation mode
// must provide: VIRTUAL_ENV points at the venv root and the venv's
// executable directory wins PATH resolution.
func applyLayoutGuarantees(env map[string]string, v *Venv) {
	if env["VIRTUAL_ENV"] == "" {
		env["VIRTUAL_ENV"] = v.Root
	}

	binDir := v.BinDir()
	path := env["PATH"]
	for _, dir := range filepath.SplitList(path) {
		if dir == binDir {
			return
		}
	}
	if path == "" {
		env["PATH"] = binDir
		return
	}
	env["PATH"] = binDir + string(os.PathListSeparator) + path
}

func environMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		env[name] = value
	}
	return env
}
