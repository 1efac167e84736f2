// Package main provides the fleetcheck command-line tool for working with
// checklist templates offline.
package main

import (
	"context"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
)

func main() {
	command := &cli.Command{
		Name:                  "fleetcheck",
		Usage:                 "Validate checklist templates and dry-run checklists",
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			LintCommand(),
			CheckCommand(),
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "fleetcheck:", err)
		os.Exit(1)
	}
}
