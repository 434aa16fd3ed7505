// Command mechanisms runs, inspects and tests coal generator worlds.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/cebarrett/Silents-Mechanisms/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err == nil {
		return
	}

	// ExitErrors have already been reported through the output formatter.
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
