package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dukex/fleetcheck/pkg/engine"
	"github.com/dukex/fleetcheck/pkg/models"
	cli "github.com/urfave/cli/v3"
)

// checkReport is what a dry run prints: the same numbers a finalize call
// would gate on, without touching any store.
type checkReport struct {
	Progress        models.Progress           `json:"progress"`
	Summary         *models.ValidationSummary `json:"validation_summary"`
	MissingRequired []string                  `json:"missing_required"`
	Finalizable     bool                      `json:"finalizable"`
}

// CheckCommand runs validation and progress over a template document and a
// responses file, printing the report as JSON. It exits non-zero when the
// finalization gate would refuse.
func CheckCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Dry-run validation and progress for a set of responses",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "template",
				Aliases:  []string{"t"},
				Usage:    "Path to the template document",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "responses",
				Aliases:  []string{"r"},
				Usage:    "Path to a JSON file mapping item IDs to responses",
				Required: true,
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			report, err := runCheck(command.String("template"), command.String("responses"))
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")

			if err := encoder.Encode(report); err != nil {
				return fmt.Errorf("failed to encode report: %w", err)
			}

			if !report.Finalizable {
				return fmt.Errorf("checklist would not finalize")
			}

			return nil
		},
	}
}

func runCheck(templatePath, responsesPath string) (*checkReport, error) {
	document, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read template document: %w", err)
	}

	if err := lintTemplate(document); err != nil {
		return nil, err
	}

	var template models.Template
	if err := json.Unmarshal(document, &template); err != nil {
		return nil, fmt.Errorf("malformed template document: %w", err)
	}

	raw, err := os.ReadFile(responsesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read responses: %w", err)
	}

	var rawResponses map[string]engine.RawResponse
	if err := json.Unmarshal(raw, &rawResponses); err != nil {
		return nil, fmt.Errorf("malformed responses file: %w", err)
	}

	responses := engine.SnapshotResponses(&template, rawResponses, nil, engine.ResponseContext{
		TemplateVersion: template.Version,
	})

	summary := engine.ValidateChecklist(&template, responses)
	missing := engine.MissingRequired(&template, responses)

	return &checkReport{
		Progress:        engine.ComputeProgress(&template, responses),
		Summary:         summary,
		MissingRequired: missing,
		Finalizable:     len(missing) == 0 && len(summary.Errors) == 0,
	}, nil
}
