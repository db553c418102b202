package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "extracted_data", c.ExtractDir)
	assert.Equal(t, "figures", c.OutputDir)
	assert.Equal(t, "png", c.FigureFormat)
	assert.Equal(t, 30, c.HistBins)
	assert.Equal(t, "info", c.LogLevel)
	assert.Contains(t, c.NAValues, "")
	assert.Contains(t, c.NAValues, "NA")
}

func TestSaveThenLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "edakit.yaml")

	c := Default()
	c.OutputDir = filepath.Join(dir, "plots")
	c.FigureFormat = "svg"
	c.HistBins = 12
	c.CleanExtractDir = true
	require.NoError(t, Save(c, path))

	_, err := os.Stat(path)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c.OutputDir, got.OutputDir)
	assert.Equal(t, "svg", got.FigureFormat)
	assert.Equal(t, 12, got.HistBins)
	assert.True(t, got.CleanExtractDir)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("EDAKIT_EXTRACT_DIR", "/tmp/elsewhere")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/elsewhere", c.ExtractDir)
}

func TestDelimiter(t *testing.T) {
	c := Default()
	r, err := c.Delimiter()
	require.NoError(t, err)
	assert.Equal(t, ',', r)

	c.CSVDelimiter = "tab"
	r, err = c.Delimiter()
	require.NoError(t, err)
	assert.Equal(t, '\t', r)

	c.CSVDelimiter = "#"
	_, err = c.Delimiter()
	assert.Error(t, err)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "figures", c.OutputDir)
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_dir: [unclosed\n  hist_bins: : 3\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "read config")

	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".edakit"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".edakit", "config.yaml"), []byte("hist_bins: [1, 2\n"), 0o644))
	_, err = Load("")
	assert.ErrorContains(t, err, "read config")
}
