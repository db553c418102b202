package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/edakit/internal/table"
	"github.com/xuri/excelize/v2"
)

// XLSXIngestor loads one worksheet of an .xlsx workbook; the first row is the header.
type XLSXIngestor struct {
	opt Options
}

func (x *XLSXIngestor) Ingest(path string) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook '%s' has no sheets", filepath.Base(path))
	}
	sheet := sheets[0]
	if x.opt.Sheet != "" {
		sheet = ""
		for _, s := range sheets {
			if strings.EqualFold(s, x.opt.Sheet) {
				sheet = s
				break
			}
		}
		if sheet == "" {
			return nil, fmt.Errorf("sheet '%s' not found in workbook '%s'.\nAvailable sheets: %s",
				x.opt.Sheet, filepath.Base(path), strings.Join(sheets, ", "))
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet '%s' is empty", sheet)
	}
	// excelize drops trailing empty cells; pad every row to the header width.
	ncol := len(rows[0])
	for i, r := range rows {
		if len(r) < ncol {
			padded := make([]string, ncol)
			copy(padded, r)
			rows[i] = padded
		} else if len(r) > ncol {
			rows[i] = r[:ncol]
		}
	}
	x.opt.logger().Debug("xlsx sheet loaded", "path", path, "sheet", sheet, "rows", len(rows)-1)
	return table.FromRecords(rows, filepath.Base(path), x.opt.Table)
}
