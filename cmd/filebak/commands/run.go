package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"filebak/internal/logging"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run backup passes on the configured interval",
	Long: `Run the backup schedule until interrupted.

One pass runs immediately, then one per configured interval. SIGINT or
SIGTERM stops the schedule between passes; a pass in progress finishes
first, so no copy is ever aborted mid-file.`,
	Example: `  # Run on the configured interval
  filebak run

  # Run with debug logging
  filebak run -vv`,
	RunE: runRun,
}

func runRun(cobraCmd *cobra.Command, _ []string) error {
	logger := logging.FromContext(cobraCmd.Context())

	r, err := buildRunner(logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cobraCmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := r.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
