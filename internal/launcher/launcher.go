// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"vlaunch/internal/venv"

	"github.com/charmbracelet/log"
)

type (
	// Session contains all information needed for one launch.
	Session struct {
		// Context is the Go context for cancellation.
		Context context.Context
		// BaseDir is the project directory the launcher runs from
		// (the directory containing the launcher binary, unless overridden).
		BaseDir string
		// VenvDir is the virtual environment directory name, relative to BaseDir.
		VenvDir string
		// EntryPoint is the script file passed to the interpreter.
		EntryPoint string
		// Interpreter overrides the venv-resolved interpreter when non-empty.
		Interpreter string
		// Pause controls whether each exit branch blocks on user acknowledgment.
		Pause bool
		// Stdout is where to write standard output and status lines.
		Stdout io.Writer
		// Stderr is where to write standard error.
		Stderr io.Writer
		// Stdin is where to read standard input (and the pause acknowledgment).
		Stdin io.Reader
		// Logger receives diagnostic output. Nil disables logging.
		Logger *log.Logger
	}

	// Launcher runs the fail-fast launch sequence.
	Launcher struct{}
)

// New creates a new Launcher.
func New() *Launcher {
	return &Launcher{}
}

// Run executes the launch sequence against the session and returns the
// result whose exit code the caller must propagate. The working directory
// is restored before Run returns, on every path.
func (l *Launcher) Run(s *Session) *Result {
	logger := s.logger()

	restore, err := EnterDir(s.BaseDir)
	if err != nil {
		fmt.Fprintln(s.Stdout, msgWorkdirError)
		l.pause(s)
		return NewErrorResult(1, &StageError{Stage: StagePreparation, Code: 1, Cause: err})
	}
	defer func() {
		if rerr := restore(); rerr != nil {
			logger.Error("working directory restoration failed", "err", rerr)
		}
	}()
	logger.Debug("entered project directory", "dir", s.BaseDir)

	fmt.Fprintf(s.Stdout, msgActivating, s.VenvDir)
	activation, res := l.activate(s, logger)
	if res != nil {
		fmt.Fprintln(s.Stdout, msgActivationError)
		l.pause(s)
		return res
	}

	fmt.Fprintf(s.Stdout, msgRunning, s.EntryPoint)
	res = l.execute(s, activation, logger)
	if !res.IsSuccess() {
		fmt.Fprintln(s.Stdout, msgExecutionError)
		l.pause(s)
		return res
	}

	fmt.Fprintln(s.Stdout, msgSuccess)
	l.pause(s)
	return NewSuccessResult()
}

// activate locates the virtual environment and runs its activation
// routine. A nil Result means activation succeeded.
func (l *Launcher) activate(s *Session, logger *log.Logger) (*venv.Activation, *Result) {
	v, err := venv.Locate(s.BaseDir, s.VenvDir)
	if err != nil {
		return nil, NewErrorResult(1, &StageError{Stage: StageActivation, Code: 1, Cause: err})
	}
	logger.Debug("virtual environment located", "root", v.Root)

	activation, err := venv.Activate(s.context(), v, s.Stdout, s.Stderr)
	if err != nil {
		code := ExitCode(1)
		var srcErr *venv.SourceError
		if errors.As(err, &srcErr) {
			code = ExitCode(srcErr.ExitStatus)
		}
		return nil, NewErrorResult(code, &StageError{Stage: StageActivation, Code: code, Cause: err})
	}
	logger.Debug("virtual environment activated", "mode", activation.Mode)

	return activation, nil
}

// execute invokes the interpreter with the entry point as its single
// argument, under the activated environment with stdio passed through.
func (l *Launcher) execute(s *Session, activation *venv.Activation, logger *log.Logger) *Result {
	interpreter := s.Interpreter
	if interpreter == "" {
		python, err := activation.Python()
		if err != nil {
			return NewErrorResult(1, &StageError{Stage: StageExecution, Code: 1, Cause: err})
		}
		interpreter = python
	}
	logger.Debug("resolved interpreter", "path", interpreter)

	cmd := exec.CommandContext(s.context(), interpreter, s.EntryPoint)
	cmd.Dir = s.BaseDir
	cmd.Env = activation.Environ()
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr
	cmd.Stdin = s.Stdin

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := ExitCodeFromError(err)
			logger.Debug("entry point exited", "code", code)
			return NewExitCodeResult(code)
		}
		return NewErrorResult(1, &StageError{Stage: StageExecution, Code: 1, Cause: err})
	}

	return NewSuccessResult()
}

// pause blocks on user acknowledgment when the session asks for it.
func (l *Launcher) pause(s *Session) {
	if !s.Pause {
		return
	}
	waitForAck(s.Stdin, s.Stdout)
}

func (s *Session) context() context.Context {
	if s.Context == nil {
		return context.Background()
	}
	return s.Context
}

func (s *Session) logger() *log.Logger {
	if s.Logger == nil {
		return log.New(io.Discard)
	}
	return s.Logger
}

// DefaultBaseDir resolves the directory containing the launcher binary.
// This mirrors the original behavior of running relative to the script's
// own location rather than the caller's working directory.
func DefaultBaseDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate launcher executable: %w", err)
	}
	return filepath.Dir(exe), nil
}
