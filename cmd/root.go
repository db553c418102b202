package cmd

import (
	"fmt"
	"log/slog"
	"os"

	cfgpkg "github.com/KaramelBytes/edakit/internal/config"
	"github.com/KaramelBytes/edakit/internal/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// Output/ingest flags (override config if set)
	flagOutputDir  string
	flagExtractDir string
	flagFormat     string

	// Loaded configuration
	cfg *cfgpkg.Global
	// Process logger; per-run loggers add run_id.
	logger = logging.Discard()
)

var rootCmd = &cobra.Command{
	Use:   "edakit",
	Short: "edakit: exploratory data analysis for tabular datasets",
	Long: `edakit inspects a tabular dataset (CSV, TSV, XLSX, or a zip archive holding one CSV)
and produces summary tables on stdout and univariate, bivariate, multivariate and
missing-value figures in the output directory.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Initialize configuration before every command run
	cobra.OnInitialize(loadConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.edakit/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagOutputDir, "output-dir", "", "directory for figures and the run manifest (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagExtractDir, "extract-dir", "", "directory zip archives are extracted into (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "", "figure format: png|svg|pdf|jpg (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Default()
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("output-dir") && flagOutputDir != "" {
		cfg.OutputDir = flagOutputDir
	}
	if f.Changed("extract-dir") && flagExtractDir != "" {
		cfg.ExtractDir = flagExtractDir
	}
	if f.Changed("format") && flagFormat != "" {
		cfg.FigureFormat = flagFormat
	}
	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	logger = logging.New(logging.Options{Level: level, Format: cfg.LogFormat})
	slog.SetDefault(logger)
	logger.Debug("config loaded", "extract_dir", cfg.ExtractDir, "output_dir", cfg.OutputDir, "figure_format", cfg.FigureFormat)
}

// settings returns the loaded configuration, loading it if no command
// initializer has run yet.
func settings() *cfgpkg.Global {
	if cfg == nil {
		loadConfig()
	}
	return cfg
}
