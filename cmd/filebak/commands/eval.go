package commands

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"filebak/internal/expr"
	"filebak/internal/paths"
)

var (
	evalName       string
	evalLargerThan int64
	evalWritable   bool
	evalInvert     bool
)

func init() {
	evalCmd.Flags().StringVar(&evalName, "name", "", "glob the base name must match")
	evalCmd.Flags().Int64Var(&evalLargerThan, "larger-than", -1, "minimum size in bytes (exclusive)")
	evalCmd.Flags().BoolVar(&evalWritable, "writable", false, "only owner-writable files")
	evalCmd.Flags().BoolVar(&evalInvert, "invert", false, "select the complement of the rule")
	rootCmd.AddCommand(evalCmd)
}

var evalCmd = &cobra.Command{
	Use:   "eval <root>",
	Short: "Show which files a selection rule matches",
	Long: `Evaluate a selection rule against a directory and print the matches.

The given criteria are combined with and; --invert selects the
complement. Without criteria, every regular file matches. Useful for
checking a rule before putting it in config.yaml.`,
	Example: `  # Large mp3 files
  filebak eval /home/u/music --name '*.mp3' --larger-than 1048576

  # Everything except logs
  filebak eval /var/data --name '*.log' --invert`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func runEval(cobraCmd *cobra.Command, args []string) error {
	sel, err := evalSelector()
	if err != nil {
		return err
	}

	root := paths.ExpandHome(args[0])
	matches := sel.Evaluate(afero.NewOsFs(), root)

	w := cobraCmd.OutOrStdout()
	for _, path := range matches.Sorted() {
		fmt.Fprintln(w, path)
	}
	fmt.Fprintf(cobraCmd.ErrOrStderr(), "%d files matched\n", len(matches))
	return nil
}

// evalSelector builds the expression described by the eval flags.
func evalSelector() (expr.Expr, error) {
	sel := expr.All()

	if evalName != "" {
		named, err := expr.NameMatches(evalName)
		if err != nil {
			return nil, err
		}
		sel = expr.And(sel, named)
	}
	if evalLargerThan >= 0 {
		sel = expr.And(sel, expr.LargerThan(evalLargerThan))
	}
	if evalWritable {
		sel = expr.And(sel, expr.Writable())
	}
	if evalInvert {
		sel = expr.Not(sel)
	}

	return sel, nil
}
