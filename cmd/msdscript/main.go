// Command msdscript is the CLI entrypoint (spec.md §6): it reads its mode
// from flags, evaluates an expression, and maps failures onto the exit
// codes spec.md §6/§7 define — 0 on success, 2 on a bad argument, and 1 on
// any other runtime failure with the message on stderr.
package main

import (
	"fmt"
	"os"

	"github.com/msdscript-go/msdscript/cmd/msdscript/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if _, ok := err.(*cmd.UsageError); ok {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
