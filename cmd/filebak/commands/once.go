package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"filebak/internal/logging"
	"filebak/internal/runner"
)

func init() {
	rootCmd.AddCommand(onceCmd)
}

var onceCmd = &cobra.Command{
	Use:   "once",
	Short: "Run a single backup pass",
	Long: `Run one backup pass immediately and exit.

Every configured source is evaluated and its matches are copied into a
fresh timestamped subdirectory of the destination root. Per-file copy
failures are reported but do not abort the pass.`,
	Example: `  # Run one pass with the default config
  filebak once

  # Run one pass with a specific config file
  filebak once --config /etc/filebak/config.yaml`,
	RunE: runOnce,
}

func runOnce(cobraCmd *cobra.Command, _ []string) error {
	logger := logging.FromContext(cobraCmd.Context())

	r, err := buildRunner(logger)
	if err != nil {
		return err
	}

	pass, err := r.RunOnce(cobraCmd.Context())
	if err != nil {
		return err
	}

	printPass(cobraCmd.OutOrStdout(), pass)
	return nil
}

func printPass(w io.Writer, pass *runner.Pass) {
	fmt.Fprintf(w, "✓ pass %s: %d files copied", pass.ID, pass.FileCount())
	if n := pass.FailureCount(); n > 0 {
		fmt.Fprintf(w, ", %d failures", n)
	}
	fmt.Fprintln(w)

	for _, rep := range pass.Reports {
		fmt.Fprintf(w, "  %s: %d files\n", rep.Root, len(rep.Files))
		for _, failure := range rep.Failures {
			fmt.Fprintf(w, "    failed: %s (%s)\n", failure.Path, failure.Err)
		}
	}
	for _, failure := range pass.SourceFailures {
		fmt.Fprintf(w, "  %s: failed (%s)\n", failure.Root, failure.Err)
	}
}
