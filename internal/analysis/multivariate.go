package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/KaramelBytes/edakit/internal/render"
	"github.com/KaramelBytes/edakit/internal/table"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

const (
	heatmapTitle  = "correlation heatmap"
	pairplotTitle = "Pair plot of selected features"
	pairCell      = 2.5 * vg.Inch
	// pairMaxSide bounds the pair plot canvas; wider grids shrink their cells.
	pairMaxSide   = 25 * vg.Inch
)

// MultivariateAnalysisTemplate supplies the steps AnalyzeMultivariate runs.
type MultivariateAnalysisTemplate interface {
	GenerateCorrelationHeatmap(t *table.Table) error
	GeneratePairplot(t *table.Table) error
}

// AnalyzeMultivariate runs the correlation heatmap step, then the pair plot
// step, stopping at the first error.
func AnalyzeMultivariate(tpl MultivariateAnalysisTemplate, t *table.Table) error {
	if err := tpl.GenerateCorrelationHeatmap(t); err != nil {
		return fmt.Errorf("correlation heatmap: %w", err)
	}
	if err := tpl.GeneratePairplot(t); err != nil {
		return fmt.Errorf("pair plot: %w", err)
	}
	return nil
}

// SimpleMultivariateAnalysis renders an annotated correlation heatmap and a
// pair plot over the numeric columns of the table.
type SimpleMultivariateAnalysis struct {
	Renderer render.Renderer
	// DiagBins is the histogram bin count on the pair plot diagonal.
	// Zero or less picks the square root of the value count.
	DiagBins int
}

func (s SimpleMultivariateAnalysis) GenerateCorrelationHeatmap(t *table.Table) error {
	if s.Renderer == nil {
		return ErrNoRenderer
	}
	p, err := HeatmapPlot(t)
	if err != nil {
		return err
	}
	_, err = s.Renderer.Render(heatmapTitle, p, render.Square)
	return err
}

func (s SimpleMultivariateAnalysis) GeneratePairplot(t *table.Table) error {
	if s.Renderer == nil {
		return ErrNoRenderer
	}
	grid, err := PairplotGrid(t, s.DiagBins)
	if err != nil {
		return err
	}
	_, err = s.Renderer.RenderGrid(pairplotTitle, grid, pairplotSize(len(grid)))
	return err
}

// pairplotSize gives an n x n grid square cells plus room for the title.
func pairplotSize(n int) render.Size {
	side := min(vg.Length(n)*pairCell, pairMaxSide)
	return render.Size{Width: side, Height: side + vg.Inch/2}
}

// corrGrid lays the matrix out with row 0 at the top.
type corrGrid struct{ m *CorrMatrix }

func (g corrGrid) Dims() (c, r int) { return len(g.m.Columns), len(g.m.Columns) }

func (g corrGrid) Z(c, r int) float64 {
	v := g.m.Values[len(g.m.Columns)-1-r][c]
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func (g corrGrid) X(c int) float64 { return float64(c) }
func (g corrGrid) Y(r int) float64 { return float64(r) }

// HeatmapPlot builds the annotated correlation heatmap.
func HeatmapPlot(t *table.Table) (*plot.Plot, error) {
	cm, err := CorrelationMatrix(t)
	if err != nil {
		return nil, err
	}
	n := len(cm.Columns)

	colors := moreland.SmoothBlueRed()
	colors.SetMin(-1)
	colors.SetMax(1)
	hm := plotter.NewHeatMap(corrGrid{cm}, colors.Palette(255))
	hm.Min, hm.Max = -1, 1

	p := plot.New()
	p.Title.Text = heatmapTitle
	p.Add(hm)

	var lbl plotter.XYLabels
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			v := cm.Values[r][c]
			s := "nan"
			if !math.IsNaN(v) {
				s = fmt.Sprintf("%.2f", v)
			}
			lbl.XYs = append(lbl.XYs, plotter.XY{X: float64(c), Y: float64(n - 1 - r)})
			lbl.Labels = append(lbl.Labels, s)
		}
	}
	labels, err := plotter.NewLabels(lbl)
	if err != nil {
		return nil, fmt.Errorf("heatmap labels: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YCenter
	}
	p.Add(labels)

	xt := make([]plot.Tick, n)
	yt := make([]plot.Tick, n)
	for i, name := range cm.Columns {
		xt[i] = plot.Tick{Value: float64(i), Label: name}
		yt[i] = plot.Tick{Value: float64(n - 1 - i), Label: name}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xt)
	p.Y.Tick.Marker = plot.ConstantTicks(yt)
	rotateXTicks(p)
	return p, nil
}

// PairplotGrid builds an n x n grid over the numeric columns: histograms on
// the diagonal, scatter plots of column j against column i elsewhere.
func PairplotGrid(t *table.Table, diagBins int) ([][]*plot.Plot, error) {
	cols := t.NumericColumns()
	if len(cols) == 0 {
		return nil, ErrNoNumericColumns
	}
	n := len(cols)
	grid := make([][]*plot.Plot, n)
	for i := range grid {
		grid[i] = make([]*plot.Plot, n)
		for j := range grid[i] {
			p := plot.New()
			if i == n-1 {
				p.X.Label.Text = cols[j]
			}
			if j == 0 {
				p.Y.Label.Text = cols[i]
			}
			if i == j {
				if err := addDiagonal(p, t, cols[i], diagBins); err != nil {
					return nil, err
				}
			} else if err := addOffDiagonal(p, t, cols[j], cols[i]); err != nil {
				return nil, err
			}
			grid[i][j] = p
		}
	}
	return grid, nil
}

func addDiagonal(p *plot.Plot, t *table.Table, col string, bins int) error {
	vals, err := t.Floats(col)
	if err != nil {
		return err
	}
	if len(vals) == 0 {
		return nil
	}
	h, err := diagonalHistogram(vals, bins)
	if err != nil {
		return fmt.Errorf("histogram %q: %w", col, err)
	}
	p.Add(h)
	return nil
}

// diagonalHistogram bins vals, using ceil(sqrt(n)) bins when bins <= 0.
func diagonalHistogram(vals []float64, bins int) (*plotter.Histogram, error) {
	if bins <= 0 {
		bins = max(1, int(math.Ceil(math.Sqrt(float64(len(vals))))))
	}
	h, err := plotter.NewHist(plotter.Values(vals), bins)
	if err != nil {
		return nil, err
	}
	h.FillColor = plotutil.Color(2)
	return h, nil
}

func addOffDiagonal(p *plot.Plot, t *table.Table, x, y string) error {
	pts, err := pairedPoints(t, x, y)
	if errors.Is(err, ErrNoData) {
		// no shared rows; the cell stays empty
		return nil
	}
	if err != nil {
		return err
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("scatter %q vs %q: %w", x, y, err)
	}
	s.Color = plotutil.Color(0)
	s.Radius = vg.Points(1.5)
	p.Add(s)
	return nil
}
