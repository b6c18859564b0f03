// Command texcomplete edits LaTeX equations with command completion and
// begin/end synchronization, or runs the completion engine once over
// stdin for scripts.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "texcomplete:", err)
		os.Exit(1)
	}
}
