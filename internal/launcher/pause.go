// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"bufio"
	"fmt"
	"io"
)

// waitForAck prints the pause prompt and blocks until the user presses
// ENTER (or the input reaches EOF). The original launcher paused in every
// branch so the console window stayed open long enough to read the
// diagnostics; EOF is treated as acknowledgment so piped and redirected
// input never hangs.
func waitForAck(in io.Reader, out io.Writer) {
	if in == nil {
		return
	}

	fmt.Fprint(out, msgPausePrompt)

	reader := bufio.NewReader(in)
	for {
		b, err := reader.ReadByte()
		if err != nil || b == '\n' {
			break
		}
	}
	fmt.Fprintln(out)
}
