// SPDX-License-Identifier: MPL-2.0

package main

import cmd "vlaunch/cmd/vlaunch"

func main() {
	cmd.Execute()
}
