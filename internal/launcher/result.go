// SPDX-License-Identifier: MPL-2.0

package launcher

type (
	// Result contains the outcome of a launch (or a single launch stage).
	Result struct {
		// ExitCode is the exit code to propagate to the launcher's caller.
		ExitCode ExitCode
		// Error contains any infrastructure error that occurred. A non-zero
		// ExitCode with a nil Error represents normal sub-process termination.
		Error error
	}
)

// NewSuccessResult creates a Result with exit code 0 and no error.
func NewSuccessResult() *Result {
	return &Result{}
}

// NewExitCodeResult creates a Result with the given exit code and no error.
// Use this for non-zero exits that represent normal process termination
// rather than infrastructure failures.
func NewExitCodeResult(code ExitCode) *Result {
	return &Result{ExitCode: code}
}

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// IsSuccess reports whether the result carries exit code 0 and no error.
func (r *Result) IsSuccess() bool {
	return r.ExitCode.IsSuccess() && r.Error == nil
}
