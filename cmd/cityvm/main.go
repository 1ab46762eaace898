// Command cityvm is the persistent virtual-machine process: point it at a
// config file and it restores the latest snapshot (or loads startup
// sources from scratch), then runs until a termination signal or the
// program itself calls the shutdown host function.
package main

import (
	"fmt"
	"os"

	"github.com/Net-Set/CodeCity/cmd/cityvm/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
