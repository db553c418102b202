package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultNAValues mirrors the tokens most CSV exports use for empty cells.
var DefaultNAValues = []string{"", "NA", "N/A", "NaN", "nan", "null", "NULL", "None", "<nil>"}

// Global configuration structure.
type Global struct {
	// Ingestion
	ExtractDir      string   `mapstructure:"extract_dir" yaml:"extract_dir"`
	CleanExtractDir bool     `mapstructure:"clean_extract_dir" yaml:"clean_extract_dir"`
	NAValues        []string `mapstructure:"na_values" yaml:"na_values"`
	CSVDelimiter    string   `mapstructure:"csv_delimiter" yaml:"csv_delimiter"`
	XLSXSheet       string   `mapstructure:"xlsx_sheet" yaml:"xlsx_sheet"`

	// Figures
	OutputDir    string `mapstructure:"output_dir" yaml:"output_dir"`
	FigureFormat string `mapstructure:"figure_format" yaml:"figure_format"`
	HistBins     int    `mapstructure:"hist_bins" yaml:"hist_bins"`

	// Logging
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// Default returns the configuration used when no file or env overrides exist.
func Default() *Global {
	return &Global{
		ExtractDir:   "extracted_data",
		NAValues:     append([]string(nil), DefaultNAValues...),
		CSVDelimiter: ",",
		OutputDir:    "figures",
		FigureFormat: "png",
		HistBins:     30,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.edakit/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".edakit")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("EDAKIT")
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("extract_dir", d.ExtractDir)
	v.SetDefault("clean_extract_dir", d.CleanExtractDir)
	v.SetDefault("na_values", d.NAValues)
	v.SetDefault("csv_delimiter", d.CSVDelimiter)
	v.SetDefault("xlsx_sheet", d.XLSXSheet)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("figure_format", d.FigureFormat)
	v.SetDefault("hist_bins", d.HistBins)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".edakit"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read: a missing file is fine, a broken one is not
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.HistBins <= 0 {
		c.HistBins = d.HistBins
	}
	return &c, nil
}

// Delimiter converts the configured delimiter string into a rune.
func (c *Global) Delimiter() (rune, error) {
	switch c.CSVDelimiter {
	case "", ",":
		return ',', nil
	case ";":
		return ';', nil
	case "\t", "tab":
		return '\t', nil
	case "|":
		return '|', nil
	default:
		return 0, fmt.Errorf("unsupported csv_delimiter: %q (use ',' | ';' | 'tab' | '|')", c.CSVDelimiter)
	}
}
