package analysis

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/KaramelBytes/edakit/internal/table"
)

// Report is a markdown-friendly profile of a table.
type Report struct {
	Name    string
	Rows    int
	Cols    []ColumnSummary
	Samples [][]string
	Corr    *CorrMatrix
}

// ColumnSummary captures kind and statistics per column.
type ColumnSummary struct {
	Name    string
	DType   string
	Kind    table.Kind
	NonNull int
	Missing int
	Unique  int
	// Numeric stats
	Min  float64
	Max  float64
	Mean float64
	Std  float64
	// Outliers (robust Z via MAD)
	OutliersCount    int
	OutliersMaxAbsZ  float64
	OutlierThreshold float64
	// Categorical top values
	TopValues []CategoryCount
}

// ProfileInspection prints a compact Markdown profile: schema with per-column
// statistics, MAD outliers, top categories, strongest correlations and the
// first rows.
type ProfileInspection struct {
	Out io.Writer
	// SampleRows is how many leading rows to include. Defaults to 5.
	SampleRows int
	// OutlierThreshold is the robust |z| above which a value counts as an
	// outlier. Defaults to 3.5.
	OutlierThreshold float64
}

func (p ProfileInspection) Inspect(t *table.Table) error {
	rep, err := Profile(t, p.SampleRows, p.OutlierThreshold)
	if err != nil {
		return err
	}
	_, err = io.WriteString(writerOr(p.Out), rep.Markdown())
	return err
}

// Profile builds a Report for t.
func Profile(t *table.Table, sampleRows int, outlierThreshold float64) (*Report, error) {
	if sampleRows <= 0 {
		sampleRows = 5
	}
	if outlierThreshold <= 0 {
		outlierThreshold = 3.5
	}
	rep := &Report{Name: t.Name, Rows: t.Nrow()}
	for _, name := range t.Names() {
		nonNull, err := t.NonNullCount(name)
		if err != nil {
			return nil, err
		}
		kind, _ := t.Kind(name)
		dtype, _ := t.DType(name)
		s := ColumnSummary{Name: name, DType: dtype, Kind: kind, NonNull: nonNull, Missing: t.Nrow() - nonNull}
		switch kind {
		case table.KindNumeric:
			vals, err := t.Floats(name)
			if err != nil {
				return nil, err
			}
			sum := Summarize(name, vals)
			s.Min, s.Max, s.Mean, s.Std = sum.Min, sum.Max, sum.Mean, sum.Std
			if len(vals) >= 8 {
				s.OutlierThreshold = outlierThreshold
				s.OutliersCount, s.OutliersMaxAbsZ = robustOutliers(vals, outlierThreshold)
			}
		default:
			vals, err := t.Strings(name)
			if err != nil {
				return nil, err
			}
			tops := valueCounts(vals)
			s.Unique = len(tops)
			sort.SliceStable(tops, func(i, j int) bool { return tops[i].Count > tops[j].Count })
			if len(tops) > 8 {
				tops = tops[:8]
			}
			s.TopValues = tops
		}
		rep.Cols = append(rep.Cols, s)
	}

	if len(t.NumericColumns()) >= 2 {
		cm, err := CorrelationMatrix(t)
		if err != nil {
			return nil, err
		}
		rep.Corr = cm
	}

	head := t.Head(sampleRows)
	for r := 0; r < head.Nrow(); r++ {
		rep.Samples = append(rep.Samples, make([]string, head.Ncol()))
	}
	for c, name := range head.Names() {
		vals, nulls, err := head.RawStrings(name)
		if err != nil {
			return nil, err
		}
		for r := range vals {
			if !nulls[r] {
				rep.Samples[r][c] = vals[r]
			}
		}
	}
	return rep, nil
}

// robustOutliers counts values whose modified z-score exceeds thr.
func robustOutliers(vals []float64, thr float64) (count int, maxAbsZ float64) {
	median, mad := medianMAD(vals)
	if mad == 0 {
		return 0, 0
	}
	for _, v := range vals {
		az := math.Abs(0.6745 * (v - median) / mad)
		if az > thr {
			count++
		}
		if az > maxAbsZ {
			maxAbsZ = az
		}
	}
	return count, maxAbsZ
}

// Markdown renders the report.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(r.Cols)))

	b.WriteString("[SCHEMA]\n")
	for _, c := range r.Cols {
		missPct := 0.0
		if total := c.NonNull + c.Missing; total > 0 {
			missPct = float64(c.Missing) * 100.0 / float64(total)
		}
		b.WriteString(fmt.Sprintf("- %s: %s %s (non-null %d, missing %.1f%%)", safeName(c.Name), c.Kind, c.DType, c.NonNull, missPct))
		switch c.Kind {
		case table.KindNumeric:
			if c.NonNull > 0 {
				b.WriteString(fmt.Sprintf("; min %.4g, max %.4g, mean %.4g, std %.4g", c.Min, c.Max, c.Mean, c.Std))
			}
			if c.OutlierThreshold > 0 {
				b.WriteString(fmt.Sprintf("; outliers: %d above |z|>%.1f", c.OutliersCount, c.OutlierThreshold))
				if c.OutliersMaxAbsZ > 0 {
					b.WriteString(fmt.Sprintf(" (max |z|≈%.2f)", c.OutliersMaxAbsZ))
				}
			}
		default:
			if len(c.TopValues) > 0 {
				b.WriteString("; top: ")
				for i, kv := range c.TopValues {
					if i > 0 {
						b.WriteString(", ")
					}
					b.WriteString(fmt.Sprintf("%s(%d)", safeVal(kv.Value), kv.Count))
				}
				if c.Unique > len(c.TopValues) {
					b.WriteString(fmt.Sprintf("; unique=%d", c.Unique))
				}
			}
		}
		b.WriteString("\n")
	}

	if pairs := r.Corr.TopPairs(10); len(pairs) > 0 {
		b.WriteString("\n[CORRELATIONS]\n")
		for _, p := range pairs {
			b.WriteString(fmt.Sprintf("- %s ~ %s: r=%.3f\n", p.A, p.B, p.R))
		}
	}

	if len(r.Samples) > 0 {
		b.WriteString("\n[HEAD]\n| ")
		for i, c := range r.Cols {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(safeName(c.Name))
		}
		b.WriteString(" |\n| ")
		for i := range r.Cols {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString("---")
		}
		b.WriteString(" |\n")
		for _, row := range r.Samples {
			b.WriteString("| ")
			for i, val := range row {
				if i > 0 {
					b.WriteString(" | ")
				}
				b.WriteString(safeVal(truncate(val, 80)))
			}
			b.WriteString(" |\n")
		}
	}
	return b.String()
}

// truncate shortens s to at most n runes, ending in "..." when cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }

// medianMAD computes median and MAD (median absolute deviation) of values.
func medianMAD(vals []float64) (median, mad float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	median = quantile(cp, 0.5)
	dev := make([]float64, len(cp))
	for i, v := range cp {
		dev[i] = math.Abs(v - median)
	}
	sort.Float64s(dev)
	mad = quantile(dev, 0.5)
	return
}
