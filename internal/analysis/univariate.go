package analysis

import (
	"fmt"
	"math"

	"github.com/KaramelBytes/edakit/internal/render"
	"github.com/KaramelBytes/edakit/internal/table"
	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

// DefaultHistBins is the histogram bin count when none is configured.
const DefaultHistBins = 30

// kdePoints is the number of points the density curve is evaluated at.
const kdePoints = 200

// UnivariateAnalysisStrategy analyzes a single feature.
type UnivariateAnalysisStrategy interface {
	Analyze(t *table.Table, feature string) error
}

// UnivariateFunc adapts a plain function to UnivariateAnalysisStrategy.
type UnivariateFunc func(t *table.Table, feature string) error

func (f UnivariateFunc) Analyze(t *table.Table, feature string) error { return f(t, feature) }

// UnivariateAnalyzer runs whichever univariate strategy is currently set.
type UnivariateAnalyzer struct {
	strategy UnivariateAnalysisStrategy
}

func NewUnivariateAnalyzer(s UnivariateAnalysisStrategy) *UnivariateAnalyzer {
	return &UnivariateAnalyzer{strategy: s}
}

func (a *UnivariateAnalyzer) SetStrategy(s UnivariateAnalysisStrategy) { a.strategy = s }

func (a *UnivariateAnalyzer) Strategy() UnivariateAnalysisStrategy { return a.strategy }

// ExecuteAnalysis forwards to the active strategy.
func (a *UnivariateAnalyzer) ExecuteAnalysis(t *table.Table, feature string) error {
	if a.strategy == nil {
		return ErrNoStrategy
	}
	return a.strategy.Analyze(t, feature)
}

// NumericalUnivariateAnalysis draws a histogram of a numeric feature with a
// kernel density estimate scaled to counts.
type NumericalUnivariateAnalysis struct {
	Renderer render.Renderer
	// Bins defaults to DefaultHistBins.
	Bins int
}

// Plot builds the figure without rendering it.
func (n NumericalUnivariateAnalysis) Plot(t *table.Table, feature string) (*plot.Plot, error) {
	vals, err := t.Floats(feature)
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoData, feature)
	}
	bins := n.Bins
	if bins <= 0 {
		bins = DefaultHistBins
	}

	p := plot.New()
	p.Title.Text = "Distribution of " + feature
	p.X.Label.Text = feature
	p.Y.Label.Text = "Frequency"

	h, line, err := histogramWithDensity(vals, bins)
	if err != nil {
		return nil, fmt.Errorf("histogram %q: %w", feature, err)
	}
	p.Add(h)
	if line != nil {
		p.Add(line)
	}
	return p, nil
}

// histogramWithDensity bins vals and, when the sample carries a density,
// returns the KDE curve scaled to counts. line is nil otherwise.
func histogramWithDensity(vals []float64, bins int) (h *plotter.Histogram, line *plotter.Line, err error) {
	h, err = plotter.NewHist(plotter.Values(vals), bins)
	if err != nil {
		return nil, nil, err
	}
	h.FillColor = plotutil.Color(2)

	line, ok, err := densityLine(vals, float64(len(vals))*h.Width)
	if err != nil || !ok {
		return h, nil, err
	}
	line.Color = plotutil.Color(1)
	line.Width = vg.Points(2)
	return h, line, nil
}

func (n NumericalUnivariateAnalysis) Analyze(t *table.Table, feature string) error {
	if n.Renderer == nil {
		return ErrNoRenderer
	}
	p, err := n.Plot(t, feature)
	if err != nil {
		return err
	}
	_, err = n.Renderer.Render(p.Title.Text, p, render.Standard)
	return err
}

// densityLine evaluates a Gaussian KDE over the data range, multiplied by
// scale. ok is false when the sample cannot carry a density (fewer than two
// values or zero spread).
func densityLine(vals []float64, scale float64) (*plotter.Line, bool, error) {
	if len(vals) < 2 {
		return nil, false, nil
	}
	s := stats.Sample{Xs: vals}
	if sd := s.StdDev(); sd == 0 || math.IsNaN(sd) {
		return nil, false, nil
	}
	lo, hi := s.Bounds()
	kde := &stats.KDE{Sample: s}
	pts := make(plotter.XYs, kdePoints)
	step := (hi - lo) / float64(kdePoints-1)
	for i := range pts {
		x := lo + float64(i)*step
		pts[i] = plotter.XY{X: x, Y: kde.PDF(x) * scale}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, false, err
	}
	return line, true, nil
}

// CategoricalUnivariateAnalysis draws a count bar per category value, in
// order of first appearance.
type CategoricalUnivariateAnalysis struct {
	Renderer render.Renderer
}

// Plot builds the figure without rendering it.
func (c CategoricalUnivariateAnalysis) Plot(t *table.Table, feature string) (*plot.Plot, error) {
	vals, err := t.Strings(feature)
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoData, feature)
	}
	heights, names := categoryHeights(vals)

	p := plot.New()
	p.Title.Text = "Distribution of " + feature
	p.X.Label.Text = feature
	p.Y.Label.Text = "count"

	bars, err := plotter.NewBarChart(heights, vg.Points(20))
	if err != nil {
		return nil, fmt.Errorf("bar chart %q: %w", feature, err)
	}
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(names...)
	rotateXTicks(p)
	return p, nil
}

func (c CategoricalUnivariateAnalysis) Analyze(t *table.Table, feature string) error {
	if c.Renderer == nil {
		return ErrNoRenderer
	}
	p, err := c.Plot(t, feature)
	if err != nil {
		return err
	}
	_, err = c.Renderer.Render(p.Title.Text, p, render.Standard)
	return err
}

// categoryHeights returns one count per distinct value with its label, in
// order of first appearance.
func categoryHeights(vals []string) (plotter.Values, []string) {
	counts := valueCounts(vals)
	heights := make(plotter.Values, len(counts))
	names := make([]string, len(counts))
	for i, cc := range counts {
		heights[i] = float64(cc.Count)
		names[i] = cc.Value
	}
	return heights, names
}

// rotateXTicks tilts x tick labels by 45 degrees.
func rotateXTicks(p *plot.Plot) {
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter
}
