package cmd

import (
	"fmt"

	"github.com/KaramelBytes/edakit/internal/analysis"
	"github.com/spf13/cobra"
)

var missingCmd = &cobra.Command{
	Use:   "missing <file>",
	Short: "Print per-column missing counts and render a missing-value heatmap",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		sess, err := startSession("missing", args[0])
		if err != nil {
			return err
		}
		defer func() { err = sess.finish(cmd.OutOrStdout(), err) }()
		t, err := loadTable(args[0], sess.log)
		if err != nil {
			return err
		}
		a := analysis.SimpleMissingValuesAnalysis{Out: cmd.OutOrStdout(), Renderer: sess.renderer}
		if err := analysis.AnalyzeMissingValues(a, t); err != nil {
			return fmt.Errorf("missing: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(missingCmd)
}
