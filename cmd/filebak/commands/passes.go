package commands

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"filebak/internal/logging"
	"filebak/internal/runner"
)

var pruneKeep int

func init() {
	passesCmd.AddCommand(passesPruneCmd)
	passesPruneCmd.Flags().IntVar(&pruneKeep, "keep", 5, "number of most recent passes to retain")
	rootCmd.AddCommand(passesCmd)
}

var passesCmd = &cobra.Command{
	Use:   "passes",
	Short: "List completed backup passes",
	Long: `List every completed pass under the destination root, newest first.

A pass directory counts as complete only if it contains a manifest;
directories left by interrupted passes are ignored.`,
	Example: `  # List passes
  filebak passes

  # Keep the 5 most recent passes, delete the rest
  filebak passes prune --keep 5`,
	RunE: runPasses,
}

func runPasses(cobraCmd *cobra.Command, _ []string) error {
	r, err := buildRunner(logging.FromContext(cobraCmd.Context()))
	if err != nil {
		return err
	}

	passes, err := r.Passes()
	if err != nil {
		if errors.Is(err, runner.ErrNoPassesFound) {
			fmt.Fprintln(cobraCmd.OutOrStdout(), "No passes found.")
			return nil
		}
		return err
	}

	w := cobraCmd.OutOrStdout()
	for _, pass := range passes {
		fmt.Fprintf(w, "%s  %s  %d files", pass.ID,
			pass.CreatedAt.Format(time.RFC3339), pass.FileCount())
		if n := pass.FailureCount(); n > 0 {
			fmt.Fprintf(w, "  (%d failures)", n)
		}
		fmt.Fprintln(w)
	}
	return nil
}

var passesPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old passes beyond the retention count",
	RunE:  runPassesPrune,
}

func runPassesPrune(cobraCmd *cobra.Command, _ []string) error {
	r, err := buildRunner(logging.FromContext(cobraCmd.Context()))
	if err != nil {
		return err
	}

	if err := r.Prune(pruneKeep); err != nil {
		return err
	}
	fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ pruned to %d most recent passes\n", pruneKeep)
	return nil
}
