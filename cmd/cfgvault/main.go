// Package main is the entry point for the cfgvault CLI.
package main

import (
	"errors"
	"os"

	"github.com/pkeller/cfgvault/cmd/cfgvault/commands"
	cliErrors "github.com/pkeller/cfgvault/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		var exitErr *cliErrors.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(cliErrors.ExitUser)
	}
}
