// Command reals computes real numbers to arbitrary decimal precision.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/lazyreals/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
