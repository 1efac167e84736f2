package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dukex/fleetcheck/pkg/models"
	cli "github.com/urfave/cli/v3"
)

// LintCommand validates a template document without storing it: schema
// first, then the structural rules a create would enforce.
func LintCommand() *cli.Command {
	return &cli.Command{
		Name:      "lint",
		Usage:     "Validate a checklist template document",
		ArgsUsage: "<template.json>",
		Action: func(ctx context.Context, command *cli.Command) error {
			path := command.Args().First()
			if path == "" {
				return fmt.Errorf("usage: fleetcheck lint <template.json>")
			}

			document, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read template document: %w", err)
			}

			if err := lintTemplate(document); err != nil {
				return err
			}

			fmt.Fprintln(os.Stdout, "OK")

			return nil
		},
	}
}

func lintTemplate(document []byte) error {
	err := models.ValidateTemplateDocument(document)
	if err != nil {
		return err
	}

	var template models.Template
	if err := json.Unmarshal(document, &template); err != nil {
		return fmt.Errorf("malformed template document: %w", err)
	}

	if duplicates := template.DuplicateItemIDs(); len(duplicates) > 0 {
		return fmt.Errorf("duplicate item ids: %s", strings.Join(duplicates, ", "))
	}

	return nil
}
