package cmd

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/edakit/internal/ingest"
	"github.com/KaramelBytes/edakit/internal/run"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const housingCSV = `Id,LotArea,LotFrontage,Neighborhood,Alley,SalePrice
1,8450,65.0,CollgCr,,208500
2,9600,80.0,Veenker,,181500
3,11250,,CollgCr,Pave,223500
4,9550,60.0,Crawfor,,140000
5,14260,84.0,NoRidge,Grvl,250000
`

// resetFlags restores every flag to its default so state does not leak
// between invocations of the shared command tree.
func resetFlags(c *cobra.Command) {
	reset := func(fl *pflag.Flag) {
		if sv, ok := fl.Value.(pflag.SliceValue); ok {
			var vals []string
			if def := strings.Trim(fl.DefValue, "[]"); def != "" {
				vals = strings.Split(def, ",")
			}
			_ = sv.Replace(vals)
		} else {
			_ = fl.Value.Set(fl.DefValue)
		}
		fl.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execCmd runs the root command with args and returns its stdout.
func execCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// runCmd is a helper to execute the root command and fail on error.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execCmd(t, args...)
	require.NoError(t, err, "command %v failed:\n%s", args, out)
	return out
}

// workspace isolates HOME and returns dirs for inputs, extraction and figures.
func workspace(t *testing.T) (home, extractDir, outputDir string) {
	t.Helper()
	home = t.TempDir()
	t.Setenv("HOME", home)
	return home, filepath.Join(home, "extracted"), filepath.Join(home, "figures")
}

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func TestCLI_IngestZipRoundTrip(t *testing.T) {
	home, extractDir, _ := workspace(t)
	archive := filepath.Join(home, "archive.zip")
	writeZip(t, archive, map[string]string{"housing.csv": housingCSV})

	out := runCmd(t, "ingest", archive, "--extract-dir", extractDir, "--head", "2")
	assert.Contains(t, out, "✓ Loaded housing.csv: 5 rows x 6 columns")
	assert.FileExists(t, filepath.Join(extractDir, "housing.csv"))

	out = runCmd(t, "ingest", "--list")
	assert.Contains(t, out, ".zip")
	assert.Contains(t, out, ".xlsx")
}

func TestCLI_IngestRejectsAmbiguousArchive(t *testing.T) {
	home, extractDir, _ := workspace(t)
	archive := filepath.Join(home, "archive.zip")
	writeZip(t, archive, map[string]string{"a.csv": housingCSV, "b.csv": housingCSV})

	_, err := execCmd(t, "ingest", archive, "--extract-dir", extractDir)
	assert.ErrorIs(t, err, ingest.ErrMultipleCSVFound)

	_, err = execCmd(t, "ingest", filepath.Join(home, "data.parquet"))
	assert.ErrorIs(t, err, ingest.ErrUnsupportedExtension)
}

func TestCLI_InspectDefaultStrategies(t *testing.T) {
	home, _, _ := workspace(t)
	csvPath := filepath.Join(home, "housing.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(housingCSV), 0o644))

	out := runCmd(t, "inspect", csvPath)
	types := strings.Index(out, "Data Types and Non-null Counts:")
	summary := strings.Index(out, "Summary Statistics (Numerical Features):")
	require.GreaterOrEqual(t, types, 0)
	assert.Greater(t, summary, types)
	assert.Contains(t, out, "Summary Statistics (Categorical Features)")

	out = runCmd(t, "inspect", csvPath, "--strategy", "profile")
	assert.Contains(t, out, "[DATASET SUMMARY]")
	assert.NotContains(t, out, "Data Types and Non-null Counts:")

	_, err := execCmd(t, "inspect", csvPath, "--strategy", "bogus")
	assert.Error(t, err)
}

func TestCLI_UnivariateWritesFiguresAndManifest(t *testing.T) {
	home, _, outputDir := workspace(t)
	csvPath := filepath.Join(home, "housing.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(housingCSV), 0o644))

	out := runCmd(t, "univariate", csvPath, "-f", "SalePrice", "-f", "Neighborhood",
		"--output-dir", outputDir, "--format", "svg")
	assert.Contains(t, out, "✓ Wrote 2 figure(s)")

	m, err := run.Load(outputDir)
	require.NoError(t, err)
	assert.Equal(t, "univariate", m.Command)
	assert.Equal(t, csvPath, m.Input)
	require.Len(t, m.Figures, 2)
	assert.Equal(t, "Distribution of SalePrice", m.Figures[0].Title)
	assert.FileExists(t, filepath.Join(outputDir, "distribution-of-saleprice.svg"))
	assert.FileExists(t, filepath.Join(outputDir, "distribution-of-neighborhood.svg"))

	_, err = execCmd(t, "univariate", csvPath, "-f", "Neighborhood", "--kind", "numerical", "--output-dir", outputDir)
	assert.Error(t, err)
	m, err = run.Load(outputDir)
	require.NoError(t, err)
	assert.Len(t, m.Figures, 2, "a failed run without figures keeps the previous manifest")
	assert.Empty(t, m.Error)
}

func TestCLI_FailedRunRecordsPartialFigures(t *testing.T) {
	home, _, outputDir := workspace(t)
	csvPath := filepath.Join(home, "housing.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(housingCSV), 0o644))

	out, err := execCmd(t, "univariate", csvPath, "-f", "SalePrice", "-f", "Neighborhood",
		"--kind", "numerical", "--output-dir", outputDir, "--format", "svg")
	require.Error(t, err)
	assert.NotContains(t, out, "✓ Wrote")

	m, err := run.Load(outputDir)
	require.NoError(t, err)
	require.Len(t, m.Figures, 1)
	assert.Equal(t, "Distribution of SalePrice", m.Figures[0].Title)
	assert.Contains(t, m.Error, "Neighborhood")
}

func TestCLI_BivariateAutoPicksStrategy(t *testing.T) {
	home, _, outputDir := workspace(t)
	csvPath := filepath.Join(home, "housing.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(housingCSV), 0o644))

	runCmd(t, "bivariate", csvPath, "--x", "LotArea", "--y", "SalePrice", "--output-dir", outputDir, "--format", "svg")
	runCmd(t, "bivariate", csvPath, "--x", "Neighborhood", "--y", "SalePrice", "--output-dir", outputDir, "--format", "svg")
	assert.FileExists(t, filepath.Join(outputDir, "lotarea-vs-saleprice.svg"))
	assert.FileExists(t, filepath.Join(outputDir, "neighborhood-vs-saleprice.svg"))

	_, err := execCmd(t, "bivariate", csvPath, "--x", "SalePrice", "--y", "Neighborhood", "--output-dir", outputDir)
	assert.Error(t, err)
}

func TestCLI_MultivariateAndMissing(t *testing.T) {
	home, extractDir, outputDir := workspace(t)
	archive := filepath.Join(home, "archive.zip")
	writeZip(t, archive, map[string]string{"housing.csv": housingCSV})

	out := runCmd(t, "multivariate", archive, "--features", "LotArea,LotFrontage,SalePrice",
		"--extract-dir", extractDir, "--output-dir", outputDir, "--format", "svg")
	assert.Contains(t, out, "✓ Wrote 2 figure(s)")
	assert.FileExists(t, filepath.Join(outputDir, "correlation-heatmap.svg"))
	assert.FileExists(t, filepath.Join(outputDir, "pair-plot-of-selected-features.svg"))

	out = runCmd(t, "missing", archive, "--extract-dir", extractDir, "--output-dir", outputDir, "--format", "svg")
	assert.Contains(t, out, "Missing Values count by columns:\nLotFrontage    1\n")
	assert.Contains(t, out, "dtype: int64")
	assert.Contains(t, out, "Visualizing Missing Values")
	assert.FileExists(t, filepath.Join(outputDir, "missing-values-heatmap.svg"))

	m, err := run.Load(outputDir)
	require.NoError(t, err)
	assert.Equal(t, "missing", m.Command, "each run rewrites the manifest")
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	home, _, _ := workspace(t)

	runCmd(t, "config", "set", "hist_bins", "12")
	runCmd(t, "config", "set", "figure_format", "SVG")
	assert.FileExists(t, filepath.Join(home, ".edakit", "config.yaml"))

	out := runCmd(t, "config", "show")
	assert.Contains(t, out, "hist_bins: 12")
	assert.Contains(t, out, "figure_format: svg")

	_, err := execCmd(t, "config", "set", "figure_format", "bmp")
	assert.Error(t, err)
	_, err = execCmd(t, "config", "set", "nope", "1")
	assert.Error(t, err)
}
