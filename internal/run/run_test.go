package run_test

import (
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/KaramelBytes/edakit/internal/render"
	"github.com/KaramelBytes/edakit/internal/run"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifestSaveAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "figures")
	m := run.New("univariate", "data/archive.zip", dir)
	require.NotEmpty(t, m.ID)

	m.AddFigures(render.Figure{ID: "f1", Title: "Distribution of SalePrice", Path: filepath.Join(dir, "distribution-of-saleprice.png"), CreatedAt: time.Now()})
	require.NoError(t, m.Save())
	assert.Equal(t, filepath.Join(dir, "manifest.json"), m.Path())

	got, err := run.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)
	assert.Equal(t, "univariate", got.Command)
	assert.Equal(t, "data/archive.zip", got.Input)
	require.Len(t, got.Figures, 1)
	assert.Equal(t, "Distribution of SalePrice", got.Figures[0].Title)
	assert.False(t, got.FinishedAt.Before(got.StartedAt))
	assert.Equal(t, dir, got.Dir())
}

func TestManifestWithoutFiguresAndMissingDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, run.New("inspect", "a.csv", dir).Save())
	got, err := run.Load(dir)
	require.NoError(t, err)
	assert.NotNil(t, got.Figures)
	assert.Empty(t, got.Figures)

	_, err = run.Load(filepath.Join(dir, "nope"))
	assert.ErrorIs(t, err, fs.ErrNotExist)

	var m run.Manifest
	assert.Error(t, m.Save())
}
