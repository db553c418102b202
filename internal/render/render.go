// Package render writes gonum/plot figures to files. It stands in for the
// interactive plot window: every figure an analysis produces becomes a file
// in the output directory.
package render

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/KaramelBytes/edakit/internal/utils"
	"github.com/google/uuid"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"
)

// Size is a figure size.
type Size struct {
	Width, Height vg.Length
}

var (
	Standard = Size{Width: 10 * vg.Inch, Height: 6 * vg.Inch}
	Wide     = Size{Width: 12 * vg.Inch, Height: 8 * vg.Inch}
	Square   = Size{Width: 12 * vg.Inch, Height: 10 * vg.Inch}
)

// Formats accepted by NewFileRenderer.
var Formats = []string{"png", "svg", "pdf", "jpg"}

// Figure records one written figure.
type Figure struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
}

// Renderer turns plots into figures and returns where they were written.
type Renderer interface {
	Render(title string, p *plot.Plot, size Size) (string, error)
	RenderGrid(title string, plots [][]*plot.Plot, size Size) (string, error)
}

// FileRenderer writes figures into a directory, one file per figure.
type FileRenderer struct {
	dir    string
	format string
	log    *slog.Logger

	mu      sync.Mutex
	used    map[string]int
	figures []Figure
}

// NewFileRenderer validates format and returns a renderer targeting dir.
func NewFileRenderer(dir, format string, log *slog.Logger) (*FileRenderer, error) {
	format = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
	if format == "" {
		format = "png"
	}
	ok := false
	for _, f := range Formats {
		if f == format {
			ok = true
			break
		}
	}
	if !ok {
		return nil, fmt.Errorf("unsupported figure format: %s (use %s)", format, strings.Join(Formats, "|"))
	}
	if log == nil {
		log = slog.Default()
	}
	return &FileRenderer{dir: dir, format: format, log: log, used: map[string]int{}}, nil
}

// Dir returns the output directory.
func (r *FileRenderer) Dir() string { return r.dir }

// Figures returns the figures written so far, in order.
func (r *FileRenderer) Figures() []Figure {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Figure, len(r.figures))
	copy(out, r.figures)
	return out
}

// reserve picks a file path for title; repeated titles get __N suffixes.
func (r *FileRenderer) reserve(title string) (string, error) {
	if err := utils.EnsureDir(r.dir); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	base := utils.Slugify(title, "figure")
	r.mu.Lock()
	r.used[base]++
	n := r.used[base]
	r.mu.Unlock()
	if n > 1 {
		base = fmt.Sprintf("%s__%d", base, n)
	}
	return filepath.Join(r.dir, base+"."+r.format), nil
}

func (r *FileRenderer) record(title, path string) {
	r.mu.Lock()
	r.figures = append(r.figures, Figure{ID: uuid.NewString(), Title: title, Path: path, CreatedAt: time.Now()})
	r.mu.Unlock()
	r.log.Info("figure written", "title", title, "path", path)
}

func (r *FileRenderer) Render(title string, p *plot.Plot, size Size) (string, error) {
	path, err := r.reserve(title)
	if err != nil {
		return "", err
	}
	if err := p.Save(size.Width, size.Height, path); err != nil {
		return "", fmt.Errorf("save figure %q: %w", title, err)
	}
	r.record(title, path)
	return path, nil
}

// RenderGrid tiles plots row-major under a shared title.
func (r *FileRenderer) RenderGrid(title string, plots [][]*plot.Plot, size Size) (string, error) {
	if len(plots) == 0 || len(plots[0]) == 0 {
		return "", fmt.Errorf("render grid %q: no plots", title)
	}
	path, err := r.reserve(title)
	if err != nil {
		return "", err
	}
	c, err := draw.NewFormattedCanvas(size.Width, size.Height, r.format)
	if err != nil {
		return "", fmt.Errorf("canvas for %q: %w", title, err)
	}
	dc := draw.New(c)

	titleHeight := vg.Points(0)
	if title != "" {
		sty := plot.New().Title.TextStyle
		sty.XAlign = text.XCenter
		sty.YAlign = text.YTop
		titleHeight = sty.Height(title) + vg.Points(8)
		at := vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y - vg.Points(4)}
		dc.FillText(sty, at, title)
	}
	body := draw.Crop(dc, 0, 0, 0, -titleHeight)

	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      len(plots[0]),
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter,
		PadTop:    vg.Points(2),
		PadBottom: vg.Points(2),
		PadLeft:   vg.Points(2),
		PadRight:  vg.Points(2),
	}
	canvases := plot.Align(plots, tiles, body)
	for i := range plots {
		for j := range plots[i] {
			if plots[i][j] != nil {
				plots[i][j].Draw(canvases[i][j])
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return "", fmt.Errorf("write grid %q: %w", title, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	r.record(title, path)
	return path, nil
}
