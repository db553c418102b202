// Package ingest loads tables from files on disk. An extension-keyed factory
// returns a ready-to-use Ingestor; the zip ingestor extracts an archive and
// loads the single CSV it contains.
package ingest

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KaramelBytes/edakit/internal/table"
)

// DefaultExtractDir is the working-directory-relative extraction target.
const DefaultExtractDir = "extracted_data"

var (
	ErrNotZipFile           = errors.New("the provided file is not a .zip file")
	ErrNoCSVFound           = errors.New("no CSV file found in the extracted data")
	ErrMultipleCSVFound     = errors.New("multiple CSV files found, please specify which one to use")
	ErrUnsupportedExtension = errors.New("no ingestor for file extension")
	ErrUnsafeArchivePath    = errors.New("archive entry escapes extraction directory")
)

// Ingestor loads a table from the file at path.
type Ingestor interface {
	Ingest(path string) (*table.Table, error)
}

// IngestFunc adapts a plain function to Ingestor.
type IngestFunc func(path string) (*table.Table, error)

func (f IngestFunc) Ingest(path string) (*table.Table, error) { return f(path) }

// Options are shared by every ingestor the factory builds.
type Options struct {
	// ExtractDir receives zip contents. Empty means DefaultExtractDir.
	ExtractDir string
	// CleanExtractDir removes ExtractDir before extracting.
	CleanExtractDir bool
	// Sheet selects the XLSX sheet; empty means the first sheet.
	Sheet string
	// Table controls null tokens and CSV delimiter.
	Table  table.Options
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

type constructor func(Options) Ingestor

var registry = map[string]constructor{}

// Register maps a file extension (with leading dot) to an ingestor constructor.
func Register(ext string, c constructor) {
	registry[strings.ToLower(ext)] = c
}

func init() {
	Register(".zip", func(o Options) Ingestor { return &ZipIngestor{opt: o} })
	Register(".csv", func(o Options) Ingestor { return &CSVIngestor{opt: o} })
	Register(".tsv", func(o Options) Ingestor { return &CSVIngestor{opt: o} })
	Register(".xlsx", func(o Options) Ingestor { return &XLSXIngestor{opt: o} })
}

// Extensions lists the registered extensions in sorted order.
func Extensions() []string {
	out := make([]string, 0, len(registry))
	for ext := range registry {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// NewIngestor returns the ingestor registered for ext, ready to ingest.
func NewIngestor(ext string, opt Options) (Ingestor, error) {
	c, ok := registry[strings.ToLower(ext)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedExtension, ext, strings.Join(Extensions(), ", "))
	}
	return c(opt), nil
}

// File picks an ingestor from the path's extension and loads the table.
func File(path string, opt Options) (*table.Table, error) {
	ing, err := NewIngestor(filepath.Ext(path), opt)
	if err != nil {
		return nil, err
	}
	return ing.Ingest(path)
}
