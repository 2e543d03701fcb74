// Package main is the entry point for the confcheck CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/thoreinstein/confcheck/cmd/confcheck/commands"
	"github.com/thoreinstein/confcheck/internal/errors"
)

func main() {
	err := commands.Execute(context.Background())
	if err != nil {
		report(err)
	}
	os.Exit(errors.ExitCode(err))
}

func report(err error) {
	var exitErr *errors.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return
	}
	if exitErr.Err != nil {
		fmt.Fprintln(os.Stderr, "Error:", exitErr.Err)
	}
	if exitErr.Suggestion != "" {
		fmt.Fprintln(os.Stderr, exitErr.Suggestion)
	}
}
