package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"filebak/internal/config"
	"filebak/internal/paths"
	"filebak/pkg/fileutil"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing configuration")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration",
	Long: `Create ~/.config/filebak/config.yaml with a commented example source.

Edit the file to declare your own sources, destination and interval,
then run 'filebak once' to try a pass.`,
	Example: `  # Initialize configuration
  filebak init

  # Force overwrite existing configuration
  filebak init --force`,
	RunE: runInit,
}

func runInit(cobraCmd *cobra.Command, _ []string) error {
	configPath := filepath.Join(paths.ConfigDir(), "config.yaml")
	w := cobraCmd.OutOrStdout()

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil && !initForce {
		fmt.Fprintf(w, "Configuration already exists at %s\n", configPath)
		fmt.Fprintln(w, "Use --force to overwrite")
		return nil
	}

	if err := paths.EnsureDir(paths.ConfigDir(), 0); err != nil {
		return err
	}
	if err := fileutil.AtomicWriteYAMLWithPerm(afero.NewOsFs(), configPath, config.Default(), 0o600); err != nil {
		return err
	}

	fmt.Fprintf(w, "✓ wrote %s\n", configPath)
	return nil
}
