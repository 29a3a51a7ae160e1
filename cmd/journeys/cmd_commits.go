package main

import (
	"fmt"

	"github.com/spboyer/journeys/internal/git"
	"github.com/spf13/cobra"
)

func newCommitsCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "commits <older> <newer>",
		Short: "List the commits between two refs, oldest first",
		Long: `List the commits reachable from newer but not from older, restricted to
the ancestry path between them. older is excluded and newer is included.
Useful for running a journey against each commit of a range.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !git.IsInRepo(dir) {
				return fmt.Errorf("not a git repository: %s", displayDir(dir))
			}
			commits, err := git.CommitsBetween(args[0], args[1], dir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, c := range commits {
				fmt.Fprintln(out, c)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Repository directory (default: current directory)")

	return cmd
}

func displayDir(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}
