package analysis

import (
	"testing"

	"github.com/KaramelBytes/edakit/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"
)

func TestBivariateAnalyzerSwapsStrategies(t *testing.T) {
	tbl := loadHousing(t)
	rec := &recorder{}

	a := NewBivariateAnalyzer(NumericalVsNumericalAnalysis{Renderer: rec})
	require.NoError(t, a.ExecuteAnalysis(tbl, "LotArea", "SalePrice"))
	a.SetStrategy(CategoricalVsNumericalAnalysis{Renderer: rec})
	require.NoError(t, a.ExecuteAnalysis(tbl, "Neighborhood", "SalePrice"))
	assert.Equal(t, []string{"LotArea vs SalePrice", "Neighborhood vs SalePrice"}, rec.titles)

	var got [][2]string
	a.SetStrategy(BivariateFunc(func(_ *table.Table, f1, f2 string) error {
		got = append(got, [2]string{f1, f2})
		return nil
	}))
	require.NoError(t, a.ExecuteAnalysis(tbl, "a", "b"))
	assert.Equal(t, [][2]string{{"a", "b"}}, got)

	a.SetStrategy(nil)
	assert.ErrorIs(t, a.ExecuteAnalysis(tbl, "a", "b"), ErrNoStrategy)
}

func TestPairedPointsDropIncompleteRows(t *testing.T) {
	pts, err := pairedPoints(loadHousing(t), "LotFrontage", "SalePrice")
	require.NoError(t, err)
	assert.Equal(t, plotter.XYs{
		{X: 65, Y: 208500},
		{X: 80, Y: 181500},
		{X: 60, Y: 140000},
		{X: 84, Y: 250000},
	}, pts)

	_, err = pairedPoints(fromRows(t, "x,y", "1,NA", "NA,2"), "x", "y")
	assert.ErrorIs(t, err, ErrNoData)
}

func TestNumericalVsNumericalLabels(t *testing.T) {
	p, err := NumericalVsNumericalAnalysis{}.Plot(loadHousing(t), "LotArea", "SalePrice")
	require.NoError(t, err)
	assert.Equal(t, "LotArea vs SalePrice", p.Title.Text)
	assert.Equal(t, "LotArea", p.X.Label.Text)
	assert.Equal(t, "SalePrice", p.Y.Label.Text)

	_, err = NumericalVsNumericalAnalysis{}.Plot(loadHousing(t), "Neighborhood", "SalePrice")
	assert.ErrorIs(t, err, table.ErrNotNumeric)
}

func TestCategoricalVsNumericalOneBoxPerCategory(t *testing.T) {
	p, err := CategoricalVsNumericalAnalysis{}.Plot(loadHousing(t), "Neighborhood", "SalePrice")
	require.NoError(t, err)

	var labels []string
	for _, tk := range p.X.Tick.Marker.Ticks(p.X.Min, p.X.Max) {
		labels = append(labels, tk.Label)
	}
	assert.Equal(t, []string{"CollgCr", "Veenker", "Crawfor", "NoRidge"}, labels)
	assert.NotZero(t, p.X.Tick.Label.Rotation)

	// Alley is null on most rows; only the complete rows form boxes.
	p, err = CategoricalVsNumericalAnalysis{}.Plot(loadHousing(t), "Alley", "LotFrontage")
	require.NoError(t, err)
	labels = nil
	for _, tk := range p.X.Tick.Marker.Ticks(p.X.Min, p.X.Max) {
		labels = append(labels, tk.Label)
	}
	assert.Equal(t, []string{"Grvl"}, labels)

	err = CategoricalVsNumericalAnalysis{}.Analyze(loadHousing(t), "Neighborhood", "SalePrice")
	assert.ErrorIs(t, err, ErrNoRenderer)
}
