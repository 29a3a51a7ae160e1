package main

import (
	"github.com/spboyer/journeys/internal/utils"
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journeys",
		Short: "Journeys - drive scripted browser journeys across engines",
		Long: `Journeys runs a scripted user journey once for every input and browser
engine, capturing a trace archive, an optional recording and timestamped
annotations for each run.

It can also validate journey files, inspect trace archives, render reports
from a previous batch, replay session logs and publish artifacts to Azure
Blob Storage.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		utils.ConfigureLogging(cmd.ErrOrStderr(), *debugLogging)
	}

	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newTraceCommand())
	cmd.AddCommand(newReportCommand())
	cmd.AddCommand(newCommitsCommand())
	cmd.AddCommand(newPublishCommand())
	cmd.AddCommand(newSessionCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
