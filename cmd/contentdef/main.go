// Package main is the entry point for the contentdef CLI.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/thoreinstein/contentdef/cmd/contentdef/commands"
	"github.com/thoreinstein/contentdef/internal/errors"
)

func main() {
	err := commands.Execute()
	if err != nil && !errors.Reported(err) {
		fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
		var exitErr *errors.ExitError
		if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
			fmt.Fprintln(os.Stderr, exitErr.Suggestion)
		}
	}
	os.Exit(errors.ExitCode(err))
}
