package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KaramelBytes/edakit/internal/analysis"
	"github.com/spf13/cobra"
)

var (
	inspStrategies []string
	inspHead       int
	inspSampleRows int
	inspOutlierThr float64
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <files...>",
	Short: "Print data types, non-null counts and summary statistics",
	Long: `Inspect runs one or more inspection strategies over each input:
  types    column dtypes and non-null counts
  summary  describe statistics, numeric then categorical
  profile  markdown profile with outliers, top values and correlations`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := expandInputs(args)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		strategies := make([]analysis.InspectionStrategy, 0, len(inspStrategies))
		for _, name := range inspStrategies {
			s, err := inspectionStrategy(name, out)
			if err != nil {
				return err
			}
			strategies = append(strategies, s)
		}
		if len(strategies) == 0 {
			return fmt.Errorf("no inspection strategy selected")
		}

		inspector := analysis.NewInspector(strategies[0])
		for i, path := range files {
			t, err := loadTable(path, logger)
			if err != nil {
				return err
			}
			if inspHead > 0 {
				t = t.Head(inspHead)
			}
			if len(files) > 1 {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "== %s (%d/%d) ==\n", filepath.Base(path), i+1, len(files))
			}
			for _, s := range strategies {
				inspector.SetStrategy(s)
				if err := inspector.ExecuteInspection(t); err != nil {
					return fmt.Errorf("inspect %s: %w", path, err)
				}
			}
		}
		return nil
	},
}

func inspectionStrategy(name string, out io.Writer) (analysis.InspectionStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "types", "dtypes", "info":
		return analysis.DataTypesInspection{Out: out}, nil
	case "summary", "describe":
		return analysis.SummaryStatisticsInspection{Out: out}, nil
	case "profile":
		return analysis.ProfileInspection{Out: out, SampleRows: inspSampleRows, OutlierThreshold: inspOutlierThr}, nil
	default:
		return nil, fmt.Errorf("unknown inspection strategy: %s (use types|summary|profile)", name)
	}
}

// expandInputs resolves globs and literal paths into a sorted, de-duplicated list.
func expandInputs(args []string) ([]string, error) {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			// treat as literal path if exists
			if _, err := os.Stat(arg); err != nil {
				return nil, fmt.Errorf("input not found: %s", arg)
			}
			matches = []string{arg}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringSliceVarP(&inspStrategies, "strategy", "s", []string{"types", "summary"}, "inspection strategies to run in order: types|summary|profile")
	inspectCmd.Flags().IntVar(&inspHead, "head", 0, "inspect only the first N rows (0 = all)")
	inspectCmd.Flags().IntVar(&inspSampleRows, "sample-rows", 5, "profile: number of leading rows to include")
	inspectCmd.Flags().Float64Var(&inspOutlierThr, "outlier-threshold", 3.5, "profile: robust |z| threshold for outliers (MAD-based)")
}
