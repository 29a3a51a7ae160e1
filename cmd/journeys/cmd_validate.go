package main

import (
	"fmt"
	"path/filepath"

	"github.com/spboyer/journeys/internal/artifacts"
	"github.com/spboyer/journeys/internal/models"
	"github.com/spboyer/journeys/internal/script"
	"github.com/spboyer/journeys/internal/validation"
	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <journey.yaml>",
		Short: "Check a journey file without running it",
		Long: `Validate a journey file against the journey schema, then check that its
steps compile and that every input and engine yields a usable run folder.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateJourney(cmd, args[0])
		},
	}
}

func validateJourney(cmd *cobra.Command, path string) error {
	out := cmd.OutOrStdout()

	schemaErrs, err := validation.ValidateJourneyFile(path)
	if err != nil {
		return err
	}
	if len(schemaErrs) > 0 {
		fmt.Fprintf(out, "❌ %s has %d schema error(s):\n", path, len(schemaErrs))
		for _, e := range schemaErrs {
			fmt.Fprintf(out, "  - %s\n", e)
		}
		return fmt.Errorf("%s is not a valid journey file", path)
	}

	spec, err := models.LoadJourneySpec(path)
	if err != nil {
		return fmt.Errorf("invalid journey: %w", err)
	}
	if _, err := script.Compile(spec.Steps); err != nil {
		return fmt.Errorf("invalid steps: %w", err)
	}

	inputs, err := spec.ResolveInputs(filepath.Dir(path))
	if err != nil {
		return fmt.Errorf("invalid inputs: %w", err)
	}
	engines := spec.EngineKeys()
	for _, in := range inputs {
		for _, e := range engines {
			if _, err := artifacts.RunFolderName(in, spec.InputKey, e); err != nil {
				return fmt.Errorf("invalid inputs: %w", err)
			}
		}
	}

	printer.Fprintf(out, "✅ %s is valid: %d input(s) x %d engine(s) = %d run(s)\n",
		path, len(inputs), len(engines), len(inputs)*len(engines))
	return nil
}
