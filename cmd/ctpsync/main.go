// Command ctpsync syncs catalog drafts into a SQLite-backed commerce catalog.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/ctpsync/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err == nil {
		return
	}

	// Command results, including errors, were already written by the command.
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.Code)
	}

	// Usage errors come straight from cobra.
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(cli.ExitCommandError)
}
