package cmd

import (
	"fmt"

	"github.com/KaramelBytes/edakit/internal/analysis"
	"github.com/spf13/cobra"
)

var (
	multiFeatures []string
	multiDiagBins int
)

var multivariateCmd = &cobra.Command{
	Use:   "multivariate <file>",
	Short: "Render a correlation heatmap and a pair plot of numeric features",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		sess, err := startSession("multivariate", args[0])
		if err != nil {
			return err
		}
		defer func() { err = sess.finish(cmd.OutOrStdout(), err) }()
		t, err := loadTable(args[0], sess.log)
		if err != nil {
			return err
		}
		if len(multiFeatures) > 0 {
			if t, err = t.Select(multiFeatures...); err != nil {
				return err
			}
		}
		bins := multiDiagBins
		if bins <= 0 {
			bins = settings().HistBins
		}
		tpl := analysis.SimpleMultivariateAnalysis{Renderer: sess.renderer, DiagBins: bins}
		if err := analysis.AnalyzeMultivariate(tpl, t); err != nil {
			return fmt.Errorf("multivariate: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(multivariateCmd)
	multivariateCmd.Flags().StringSliceVar(&multiFeatures, "features", nil, "comma-separated columns to include (default: all numeric)")
	multivariateCmd.Flags().IntVar(&multiDiagBins, "diag-bins", 0, "pair plot diagonal histogram bins (default from config hist_bins)")
}
