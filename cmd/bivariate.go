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
	biX    string
	biY    string
	biKind string
)

var bivariateCmd = &cobra.Command{
	Use:   "bivariate <file>",
	Short: "Plot the relationship between two features",
	Long: `Bivariate draws a scatter plot of two numeric features, or one box plot of the
numeric --y per category of --x. --kind auto picks from the column types.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		if biX == "" || biY == "" {
			return fmt.Errorf("both --x and --y are required")
		}
		sess, err := startSession("bivariate", args[0])
		if err != nil {
			return err
		}
		defer func() { err = sess.finish(cmd.OutOrStdout(), err) }()
		t, err := loadTable(args[0], sess.log)
		if err != nil {
			return err
		}
		s, err := bivariateStrategy(t, biX, biY, biKind, sess.renderer)
		if err != nil {
			return err
		}
		if err := analysis.NewBivariateAnalyzer(s).ExecuteAnalysis(t, biX, biY); err != nil {
			return fmt.Errorf("bivariate %s vs %s: %w", biX, biY, err)
		}
		return nil
	},
}

func bivariateStrategy(t *table.Table, x, y, kind string, r render.Renderer) (analysis.BivariateAnalysisStrategy, error) {
	switch strings.ToLower(kind) {
	case "numerical", "numeric":
		return analysis.NumericalVsNumericalAnalysis{Renderer: r}, nil
	case "categorical":
		return analysis.CategoricalVsNumericalAnalysis{Renderer: r}, nil
	case "", "auto":
		kx, err := t.Kind(x)
		if err != nil {
			return nil, err
		}
		ky, err := t.Kind(y)
		if err != nil {
			return nil, err
		}
		if ky != table.KindNumeric {
			return nil, fmt.Errorf("--y %s must be numeric, got %s", y, ky)
		}
		if kx == table.KindNumeric {
			return analysis.NumericalVsNumericalAnalysis{Renderer: r}, nil
		}
		return analysis.CategoricalVsNumericalAnalysis{Renderer: r}, nil
	default:
		return nil, fmt.Errorf("unsupported --kind: %s (use auto|numerical|categorical)", kind)
	}
}

func init() {
	rootCmd.AddCommand(bivariateCmd)
	bivariateCmd.Flags().StringVar(&biX, "x", "", "first feature (x axis; categories for box plots)")
	bivariateCmd.Flags().StringVar(&biY, "y", "", "second feature (y axis, numeric)")
	bivariateCmd.Flags().StringVar(&biKind, "kind", "auto", "strategy: auto|numerical|categorical")
}
