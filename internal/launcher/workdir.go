// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"fmt"
	"os"
)

// EnterDir changes the process working directory to dir and returns a
// restore function that switches back to the directory that was current
// when EnterDir was called.
//
// INVARIANT: callers must defer the restore function immediately after a
// successful return so the original directory comes back on every exit
// path, including early failure returns.
func EnterDir(dir string) (restore func() error, err error) {
	prev, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to read current working directory: %w", err)
	}

	if err := os.Chdir(dir); err != nil {
		return nil, fmt.Errorf("failed to change into %q: %w", dir, err)
	}

	return func() error {
		if err := os.Chdir(prev); err != nil {
			return fmt.Errorf("failed to restore working directory %q: %w", prev, err)
		}
		return nil
	}, nil
}
