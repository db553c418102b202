package analysis

import (
	"fmt"
	"image/color"
	"io"
	"strconv"

	"github.com/KaramelBytes/edakit/internal/render"
	"github.com/KaramelBytes/edakit/internal/table"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
)

const missingHeatmapTitle = "Missing values heatmap"

// MissingValuesAnalysis supplies the steps AnalyzeMissingValues runs.
type MissingValuesAnalysis interface {
	IdentifyMissingValues(t *table.Table) error
	VisualizeMissingValues(t *table.Table) error
}

// AnalyzeMissingValues identifies missing values, then visualizes them,
// stopping at the first error.
func AnalyzeMissingValues(a MissingValuesAnalysis, t *table.Table) error {
	if err := a.IdentifyMissingValues(t); err != nil {
		return fmt.Errorf("identify missing values: %w", err)
	}
	if err := a.VisualizeMissingValues(t); err != nil {
		return fmt.Errorf("visualize missing values: %w", err)
	}
	return nil
}

// MissingCounts returns the columns with at least one null, in table order.
func MissingCounts(t *table.Table) []table.ColumnCount {
	var out []table.ColumnCount
	for _, c := range t.NullCounts() {
		if c.Count > 0 {
			out = append(out, c)
		}
	}
	return out
}

// SimpleMissingValuesAnalysis prints per-column null counts and renders a
// null-position heatmap.
type SimpleMissingValuesAnalysis struct {
	Out      io.Writer
	Renderer render.Renderer
}

func (s SimpleMissingValuesAnalysis) IdentifyMissingValues(t *table.Table) error {
	w := writerOr(s.Out)
	fmt.Fprintln(w, "\nMissing Values count by columns:")
	return WriteMissingCounts(w, MissingCounts(t))
}

// WriteMissingCounts writes counts as a column listing followed by a dtype
// line, or an empty-series marker when there are none.
func WriteMissingCounts(w io.Writer, counts []table.ColumnCount) error {
	if len(counts) == 0 {
		_, err := fmt.Fprintln(w, "Series([], dtype: int64)")
		return err
	}
	nameWidth, numWidth := 0, 0
	for _, c := range counts {
		nameWidth = max(nameWidth, len(c.Column))
		numWidth = max(numWidth, len(strconv.Itoa(c.Count)))
	}
	for _, c := range counts {
		if _, err := fmt.Fprintf(w, "%-*s    %*d\n", nameWidth, c.Column, numWidth, c.Count); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "dtype: int64")
	return err
}

func (s SimpleMissingValuesAnalysis) VisualizeMissingValues(t *table.Table) error {
	fmt.Fprintln(writerOr(s.Out), "\nVisualizing Missing Values")
	if s.Renderer == nil {
		return ErrNoRenderer
	}
	p, err := MissingHeatmapPlot(t)
	if err != nil {
		return err
	}
	_, err = s.Renderer.Render(missingHeatmapTitle, p, render.Wide)
	return err
}

// maskGrid lays the null mask out with row 0 at the top.
type maskGrid struct {
	mask [][]bool
	ncol int
}

func (g maskGrid) Dims() (c, r int) { return g.ncol, len(g.mask) }

func (g maskGrid) Z(c, r int) float64 {
	if g.mask[len(g.mask)-1-r][c] {
		return 1
	}
	return 0
}

func (g maskGrid) X(c int) float64 { return float64(c) }
func (g maskGrid) Y(r int) float64 { return float64(r) }

// binaryPalette colors present cells dark and null cells bright, the two ends
// of viridis.
type binaryPalette struct{}

func (binaryPalette) Colors() []color.Color {
	return []color.Color{
		color.RGBA{R: 0x44, G: 0x01, B: 0x54, A: 0xff},
		color.RGBA{R: 0xfd, G: 0xe7, B: 0x25, A: 0xff},
	}
}

// MissingHeatmapPlot builds the rows x columns null-position heatmap.
func MissingHeatmapPlot(t *table.Table) (*plot.Plot, error) {
	if t.Nrow() == 0 || t.Ncol() == 0 {
		return nil, ErrEmptyTable
	}
	names := t.Names()
	hm := plotter.NewHeatMap(maskGrid{mask: t.NullMask(), ncol: len(names)}, binaryPalette{})
	hm.Min, hm.Max = 0, 1

	p := plot.New()
	p.Title.Text = missingHeatmapTitle
	p.Add(hm)

	ticks := make([]plot.Tick, len(names))
	for i, name := range names {
		ticks[i] = plot.Tick{Value: float64(i), Label: name}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.Y.Tick.Marker = rowTicks{n: t.Nrow()}
	rotateXTicks(p)
	return p, nil
}

// rowTicks labels row positions top-down, at most about 20 of them.
type rowTicks struct{ n int }

func (r rowTicks) Ticks(_, _ float64) []plot.Tick {
	step := max(1, r.n/20)
	var ticks []plot.Tick
	for row := 0; row < r.n; row += step {
		ticks = append(ticks, plot.Tick{Value: float64(r.n - 1 - row), Label: strconv.Itoa(row)})
	}
	return ticks
}
