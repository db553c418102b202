package analysis

import (
	"strings"
	"testing"

	"github.com/KaramelBytes/edakit/internal/render"
	"github.com/KaramelBytes/edakit/internal/table"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
)

var housingCSV = strings.Join([]string{
	"Id,LotArea,LotFrontage,Neighborhood,Alley,SalePrice",
	"1,8450,65.0,CollgCr,,208500",
	"2,9600,80.0,Veenker,,181500",
	"3,11250,,CollgCr,Pave,223500",
	"4,9550,60.0,Crawfor,,140000",
	"5,14260,84.0,NoRidge,Grvl,250000",
}, "\n")

func loadHousing(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.ReadCSV(strings.NewReader(housingCSV), "housing.csv", table.Options{NAValues: []string{"", "NA"}})
	require.NoError(t, err)
	return tbl
}

func fromRows(t *testing.T, rows ...string) *table.Table {
	t.Helper()
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = strings.Split(r, ",")
	}
	tbl, err := table.FromRecords(records, "fixture", table.Options{NAValues: []string{"", "NA"}})
	require.NoError(t, err)
	return tbl
}

// recorder is a render.Renderer that keeps plots in memory.
type recorder struct {
	titles []string
	sizes  []render.Size
	plots  []*plot.Plot
	grids  [][][]*plot.Plot
}

func (r *recorder) Render(title string, p *plot.Plot, size render.Size) (string, error) {
	r.titles = append(r.titles, title)
	r.sizes = append(r.sizes, size)
	r.plots = append(r.plots, p)
	return title, nil
}

func (r *recorder) RenderGrid(title string, plots [][]*plot.Plot, size render.Size) (string, error) {
	r.titles = append(r.titles, title)
	r.sizes = append(r.sizes, size)
	r.grids = append(r.grids, plots)
	return title, nil
}
