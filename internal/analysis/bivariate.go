package analysis

import (
	"fmt"

	"github.com/KaramelBytes/edakit/internal/render"
	"github.com/KaramelBytes/edakit/internal/table"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// BivariateAnalysisStrategy analyzes the relationship between two features.
type BivariateAnalysisStrategy interface {
	Analyze(t *table.Table, feature1, feature2 string) error
}

// BivariateFunc adapts a plain function to BivariateAnalysisStrategy.
type BivariateFunc func(t *table.Table, feature1, feature2 string) error

func (f BivariateFunc) Analyze(t *table.Table, feature1, feature2 string) error {
	return f(t, feature1, feature2)
}

// BivariateAnalyzer runs whichever bivariate strategy is currently set.
type BivariateAnalyzer struct {
	strategy BivariateAnalysisStrategy
}

func NewBivariateAnalyzer(s BivariateAnalysisStrategy) *BivariateAnalyzer {
	return &BivariateAnalyzer{strategy: s}
}

func (a *BivariateAnalyzer) SetStrategy(s BivariateAnalysisStrategy) { a.strategy = s }

func (a *BivariateAnalyzer) Strategy() BivariateAnalysisStrategy { return a.strategy }

// ExecuteAnalysis forwards to the active strategy.
func (a *BivariateAnalyzer) ExecuteAnalysis(t *table.Table, feature1, feature2 string) error {
	if a.strategy == nil {
		return ErrNoStrategy
	}
	return a.strategy.Analyze(t, feature1, feature2)
}

// NumericalVsNumericalAnalysis draws a scatter plot of two numeric features
// over the rows where both are present.
type NumericalVsNumericalAnalysis struct {
	Renderer render.Renderer
}

// Plot builds the figure without rendering it.
func (n NumericalVsNumericalAnalysis) Plot(t *table.Table, feature1, feature2 string) (*plot.Plot, error) {
	pts, err := pairedPoints(t, feature1, feature2)
	if err != nil {
		return nil, err
	}
	p := plot.New()
	p.Title.Text = feature1 + " vs " + feature2
	p.X.Label.Text = feature1
	p.Y.Label.Text = feature2

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("scatter %q vs %q: %w", feature1, feature2, err)
	}
	s.Color = plotutil.Color(0)
	s.Radius = vg.Points(2.5)
	p.Add(s)
	return p, nil
}

func (n NumericalVsNumericalAnalysis) Analyze(t *table.Table, feature1, feature2 string) error {
	if n.Renderer == nil {
		return ErrNoRenderer
	}
	p, err := n.Plot(t, feature1, feature2)
	if err != nil {
		return err
	}
	_, err = n.Renderer.Render(p.Title.Text, p, render.Standard)
	return err
}

func pairedPoints(t *table.Table, feature1, feature2 string) (plotter.XYs, error) {
	xs, xNull, err := t.RawFloats(feature1)
	if err != nil {
		return nil, err
	}
	ys, yNull, err := t.RawFloats(feature2)
	if err != nil {
		return nil, err
	}
	pts := make(plotter.XYs, 0, len(xs))
	for i := range xs {
		if xNull[i] || yNull[i] {
			continue
		}
		pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("%w: %q and %q share no rows", ErrNoData, feature1, feature2)
	}
	return pts, nil
}

// CategoricalVsNumericalAnalysis draws one box plot of the numeric feature2
// per category of feature1, categories in order of first appearance.
type CategoricalVsNumericalAnalysis struct {
	Renderer render.Renderer
}

// Plot builds the figure without rendering it.
func (c CategoricalVsNumericalAnalysis) Plot(t *table.Table, feature1, feature2 string) (*plot.Plot, error) {
	cats, catNull, err := t.RawStrings(feature1)
	if err != nil {
		return nil, err
	}
	vals, valNull, err := t.RawFloats(feature2)
	if err != nil {
		return nil, err
	}
	var order []string
	groups := map[string]plotter.Values{}
	for i := range cats {
		if catNull[i] || valNull[i] {
			continue
		}
		if _, ok := groups[cats[i]]; !ok {
			order = append(order, cats[i])
		}
		groups[cats[i]] = append(groups[cats[i]], vals[i])
	}
	if len(order) == 0 {
		return nil, fmt.Errorf("%w: %q and %q share no rows", ErrNoData, feature1, feature2)
	}

	p := plot.New()
	p.Title.Text = feature1 + " vs " + feature2
	p.X.Label.Text = feature1
	p.Y.Label.Text = feature2
	for i, name := range order {
		box, err := plotter.NewBoxPlot(vg.Points(20), float64(i), groups[name])
		if err != nil {
			return nil, fmt.Errorf("box plot %q=%q: %w", feature1, name, err)
		}
		box.FillColor = plotutil.Color(i)
		p.Add(box)
	}
	p.NominalX(order...)
	rotateXTicks(p)
	return p, nil
}

func (c CategoricalVsNumericalAnalysis) Analyze(t *table.Table, feature1, feature2 string) error {
	if c.Renderer == nil {
		return ErrNoRenderer
	}
	p, err := c.Plot(t, feature1, feature2)
	if err != nil {
		return err
	}
	_, err = c.Renderer.Render(p.Title.Text, p, render.Standard)
	return err
}
