package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/edakit/internal/table"
)

// CSVIngestor loads a plain .csv or .tsv file.
type CSVIngestor struct {
	opt Options
}

func (c *CSVIngestor) Ingest(path string) (*table.Table, error) {
	return readCSVFile(path, c.opt.Table)
}

func readCSVFile(path string, opt table.Options) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	if opt.Delimiter == 0 {
		opt.Delimiter = sniffDelimiter(path)
	}
	return table.ReadCSV(f, filepath.Base(path), opt)
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
