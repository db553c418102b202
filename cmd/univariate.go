package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/edakit/internal/analysis"
	"github.com/KaramelBytes/edakit/internal/render"
	"github.com/KaramelBytes/edakit/internal/table"
	"github.com/spf13/cobra"
)

var (
	uniFeatures []string
	uniKind     string
	uniBins     int
)

var univariateCmd = &cobra.Command{
	Use:   "univariate <file>",
	Short: "Plot the distribution of one or more features",
	Long: `Univariate draws a histogram with a density curve for numeric features and a
count bar chart for categorical ones. --kind auto picks per feature from its type.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		if len(uniFeatures) == 0 {
			return fmt.Errorf("at least one --feature is required")
		}
		sess, err := startSession("univariate", args[0])
		if err != nil {
			return err
		}
		defer func() { err = sess.finish(cmd.OutOrStdout(), err) }()
		t, err := loadTable(args[0], sess.log)
		if err != nil {
			return err
		}
		bins := uniBins
		if bins <= 0 {
			bins = settings().HistBins
		}

		analyzer := analysis.NewUnivariateAnalyzer(nil)
		for _, feature := range uniFeatures {
			s, err := univariateStrategy(t, feature, uniKind, sess.renderer, bins)
			if err != nil {
				return err
			}
			analyzer.SetStrategy(s)
			if err := analyzer.ExecuteAnalysis(t, feature); err != nil {
				return fmt.Errorf("univariate %s: %w", feature, err)
			}
		}
		return nil
	},
}

func univariateStrategy(t *table.Table, feature, kind string, r render.Renderer, bins int) (analysis.UnivariateAnalysisStrategy, error) {
	switch strings.ToLower(kind) {
	case "numerical", "numeric":
		return analysis.NumericalUnivariateAnalysis{Renderer: r, Bins: bins}, nil
	case "categorical":
		return analysis.CategoricalUnivariateAnalysis{Renderer: r}, nil
	case "", "auto":
		k, err := t.Kind(feature)
		if err != nil {
			return nil, err
		}
		if k == table.KindNumeric {
			return analysis.NumericalUnivariateAnalysis{Renderer: r, Bins: bins}, nil
		}
		return analysis.CategoricalUnivariateAnalysis{Renderer: r}, nil
	default:
		return nil, fmt.Errorf("unsupported --kind: %s (use auto|numerical|categorical)", kind)
	}
}

func init() {
	rootCmd.AddCommand(univariateCmd)
	univariateCmd.Flags().StringSliceVarP(&uniFeatures, "feature", "f", nil, "feature(s) to plot (repeatable)")
	univariateCmd.Flags().StringVar(&uniKind, "kind", "auto", "strategy: auto|numerical|categorical")
	univariateCmd.Flags().IntVar(&uniBins, "bins", 0, "histogram bins (default from config hist_bins)")
}
