// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"errors"
	"fmt"
)

// Stage constants for the fallible launch stages.
const (
	// StagePreparation covers entering the project directory, before any
	// activation work starts.
	StagePreparation Stage = "preparation"
	// StageActivation covers locating the virtual environment and running
	// its activation routine.
	StageActivation Stage = "activation"
	// StageExecution covers invoking the interpreter with the entry point.
	StageExecution Stage = "execution"
)

var (
	// ErrPreparationFailed is the sentinel error for preparation-stage failures.
	ErrPreparationFailed = errors.New("project directory preparation failed")
	// ErrActivationFailed is the sentinel error for activation-stage failures.
	ErrActivationFailed = errors.New("virtual environment activation failed")
	// ErrExecutionFailed is the sentinel error for execution-stage failures.
	ErrExecutionFailed = errors.New("entry point execution failed")
	// ErrInvalidStage is the sentinel error wrapped by InvalidStageError.
	ErrInvalidStage = errors.New("invalid launch stage")
)

type (
	// Stage identifies which step of the launch sequence failed.
	Stage string

	// InvalidStageError is returned when a Stage value is not recognized.
	// It wraps ErrInvalidStage for errors.Is() compatibility.
	InvalidStageError struct {
		Value Stage
	}

	// StageError reports a launch-stage failure along with the exit code to
	// propagate. It wraps the per-stage sentinel in addition to the
	// underlying cause.
	StageError struct {
		Stage Stage
		Code  ExitCode
		Cause error
	}
)

// Error implements the error interface.
func (e *InvalidStageError) Error() string {
	return fmt.Sprintf("invalid launch stage %q (must be %q, %q, or %q)",
		e.Value, StagePreparation, StageActivation, StageExecution)
}

// Unwrap returns ErrInvalidStage so callers can use errors.Is for programmatic detection.
func (e *InvalidStageError) Unwrap() error { return ErrInvalidStage }

// IsValid returns whether the Stage is one of the defined stages, and a
// list of validation errors if it is not.
func (s Stage) IsValid() (bool, []error) {
	switch s {
	case StagePreparation, StageActivation, StageExecution:
		return true, nil
	default:
		return false, []error{&InvalidStageError{Value: s}}
	}
}

// Sentinel returns the sentinel error associated with the stage.
func (s Stage) Sentinel() error {
	switch s {
	case StagePreparation:
		return ErrPreparationFailed
	case StageExecution:
		return ErrExecutionFailed
	default:
		return ErrActivationFailed
	}
}

// Error implements the error interface.
func (e *StageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s stage failed (exit code %s): %v", e.Stage, e.Code, e.Cause)
	}
	return fmt.Sprintf("%s stage failed (exit code %s)", e.Stage, e.Code)
}

// Unwrap exposes both the per-stage sentinel and the underlying cause for
// errors.Is/As traversal.
func (e *StageError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Stage.Sentinel(), e.Cause}
	}
	return []error{e.Stage.Sentinel()}
}
