package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/edakit/internal/config"
	"github.com/KaramelBytes/edakit/internal/render"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set edakit configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "extract_dir: %s\n", c.ExtractDir)
		fmt.Fprintf(out, "clean_extract_dir: %t\n", c.CleanExtractDir)
		fmt.Fprintf(out, "na_values: %s\n", quoteList(c.NAValues))
		fmt.Fprintf(out, "csv_delimiter: %q\n", c.CSVDelimiter)
		if c.XLSXSheet != "" {
			fmt.Fprintf(out, "xlsx_sheet: %s\n", c.XLSXSheet)
		}
		fmt.Fprintf(out, "output_dir: %s\n", c.OutputDir)
		fmt.Fprintf(out, "figure_format: %s\n", c.FigureFormat)
		fmt.Fprintf(out, "hist_bins: %d\n", c.HistBins)
		fmt.Fprintf(out, "log_level: %s\n", c.LogLevel)
		fmt.Fprintf(out, "log_format: %s\n", c.LogFormat)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c := settings()
		switch key {
		case "extract_dir":
			c.ExtractDir = val
		case "clean_extract_dir":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for clean_extract_dir: %v", val)
			}
			c.CleanExtractDir = b
		case "na_values":
			c.NAValues = strings.Split(val, ",")
		case "csv_delimiter":
			prev := c.CSVDelimiter
			c.CSVDelimiter = val
			if _, err := c.Delimiter(); err != nil {
				c.CSVDelimiter = prev
				return err
			}
		case "xlsx_sheet":
			c.XLSXSheet = val
		case "output_dir":
			c.OutputDir = val
		case "figure_format":
			f := strings.ToLower(strings.TrimPrefix(val, "."))
			ok := false
			for _, known := range render.Formats {
				ok = ok || known == f
			}
			if !ok {
				return fmt.Errorf("invalid figure_format: %s (use %s)", val, strings.Join(render.Formats, "|"))
			}
			c.FigureFormat = f
		case "hist_bins":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid positive int for hist_bins: %v", val)
			}
			c.HistBins = i
		case "log_level":
			switch strings.ToLower(val) {
			case "debug", "info", "warn", "warning", "error":
				c.LogLevel = strings.ToLower(val)
			default:
				return fmt.Errorf("invalid log_level: %s (use debug|info|warn|error)", val)
			}
		case "log_format":
			switch strings.ToLower(val) {
			case "text", "json":
				c.LogFormat = strings.ToLower(val)
			default:
				return fmt.Errorf("invalid log_format: %s (use text|json)", val)
			}
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func quoteList(vals []string) string {
	q := make([]string, len(vals))
	for i, v := range vals {
		q[i] = strconv.Quote(v)
	}
	return "[" + strings.Join(q, ", ") + "]"
}
