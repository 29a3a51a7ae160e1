package main

import (
	"fmt"

	"github.com/spboyer/journeys/internal/artifacts"
	"github.com/spboyer/journeys/internal/reporting"
	"github.com/spf13/cobra"
)

func newReportCommand() *cobra.Command {
	var (
		reportFormat string
		reportJUnit  string
		name         string
		inputKey     string
	)

	cmd := &cobra.Command{
		Use:   "report <journeys.json>",
		Short: "Render the manifest of a previous batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := artifacts.ReadManifest(args[0])
			if err != nil {
				return err
			}

			if reportJUnit != "" {
				if err := reporting.WriteJUnit(reportJUnit, name, results); err != nil {
					return fmt.Errorf("failed to write JUnit XML: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			switch reportFormat {
			case "github-comment":
				opts := []reporting.CommentOption{reporting.WithInputKey(inputKey)}
				if name != "" {
					opts = append(opts, reporting.WithTitle(name))
				}
				fmt.Fprint(out, reporting.FormatGitHubComment(results, opts...))
			case "default":
				printSummary(out, results, inputKey)
			default:
				return fmt.Errorf("unknown output format: %s (supported: default, github-comment)", reportFormat)
			}
			return failureError(results)
		},
	}

	cmd.Flags().StringVar(&reportFormat, "format", "default", "Output format: default, github-comment")
	cmd.Flags().StringVar(&reportJUnit, "junit", "", "Write JUnit XML results to this path")
	cmd.Flags().StringVar(&name, "name", "", "Batch name used in report titles")
	cmd.Flags().StringVar(&inputKey, "input-key", "", "Input key used to find inputs the engines disagree on")

	return cmd
}
