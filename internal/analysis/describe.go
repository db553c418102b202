package analysis

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/KaramelBytes/edakit/internal/table"
	"github.com/aclements/go-moremath/stats"
)

// NumericSummary holds describe statistics of one numeric column. Std is the
// sample standard deviation and is NaN with fewer than two values; every
// other field is NaN when the column has no values.
type NumericSummary struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Q50    float64
	Q75    float64
	Max    float64
}

// CategoricalSummary holds describe statistics of one object column. Top is
// the most frequent value, ties going to the value seen first.
type CategoricalSummary struct {
	Column string
	Count  int
	Unique int
	Top    string
	Freq   int
}

// Summarize computes the numeric summary of vals.
func Summarize(column string, vals []float64) NumericSummary {
	s := NumericSummary{Column: column, Count: len(vals)}
	if len(vals) == 0 {
		nan := math.NaN()
		s.Mean, s.Std, s.Min, s.Q25, s.Q50, s.Q75, s.Max = nan, nan, nan, nan, nan, nan, nan
		return s
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	sample := stats.Sample{Xs: sorted, Sorted: true}
	s.Mean = sample.Mean()
	s.Std = math.NaN()
	if len(vals) > 1 {
		s.Std = sample.StdDev()
	}
	s.Min, s.Max = sample.Bounds()
	s.Q25 = quantile(sorted, 0.25)
	s.Q50 = quantile(sorted, 0.5)
	s.Q75 = quantile(sorted, 0.75)
	return s
}

// DescribeNumeric summarizes every numeric column in table order.
func DescribeNumeric(t *table.Table) ([]NumericSummary, error) {
	cols := t.NumericColumns()
	out := make([]NumericSummary, 0, len(cols))
	for _, name := range cols {
		vals, err := t.Floats(name)
		if err != nil {
			return nil, err
		}
		out = append(out, Summarize(name, vals))
	}
	return out, nil
}

// DescribeCategorical summarizes every object column in table order.
func DescribeCategorical(t *table.Table) ([]CategoricalSummary, error) {
	cols := t.CategoricalColumns()
	out := make([]CategoricalSummary, 0, len(cols))
	for _, name := range cols {
		vals, err := t.Strings(name)
		if err != nil {
			return nil, err
		}
		cs := CategoricalSummary{Column: name, Count: len(vals)}
		counts := valueCounts(vals)
		cs.Unique = len(counts)
		for _, c := range counts {
			if c.Count > cs.Freq {
				cs.Top, cs.Freq = c.Value, c.Count
			}
		}
		out = append(out, cs)
	}
	return out, nil
}

// WriteNumericDescribe writes one column per feature and one row per
// statistic, values in %f.
func WriteNumericDescribe(w io.Writer, sums []NumericSummary) error {
	if len(sums) == 0 {
		_, err := fmt.Fprintln(w, "(no numerical columns)")
		return err
	}
	header := make([]string, len(sums))
	for i, s := range sums {
		header[i] = s.Column
	}
	rows := []struct {
		label string
		get   func(NumericSummary) float64
	}{
		{"count", func(s NumericSummary) float64 { return float64(s.Count) }},
		{"mean", func(s NumericSummary) float64 { return s.Mean }},
		{"std", func(s NumericSummary) float64 { return s.Std }},
		{"min", func(s NumericSummary) float64 { return s.Min }},
		{"25%", func(s NumericSummary) float64 { return s.Q25 }},
		{"50%", func(s NumericSummary) float64 { return s.Q50 }},
		{"75%", func(s NumericSummary) float64 { return s.Q75 }},
		{"max", func(s NumericSummary) float64 { return s.Max }},
	}
	body := make([][]string, len(rows))
	labels := make([]string, len(rows))
	for i, r := range rows {
		labels[i] = r.label
		body[i] = make([]string, len(sums))
		for j, s := range sums {
			body[i][j] = formatStat(r.get(s))
		}
	}
	return writeGrid(w, header, labels, body)
}

// WriteCategoricalDescribe writes count, unique, top and freq per column.
func WriteCategoricalDescribe(w io.Writer, sums []CategoricalSummary) error {
	if len(sums) == 0 {
		_, err := fmt.Fprintln(w, "(no categorical columns)")
		return err
	}
	header := make([]string, len(sums))
	body := make([][]string, 4)
	for i := range body {
		body[i] = make([]string, len(sums))
	}
	for j, s := range sums {
		header[j] = s.Column
		body[0][j] = fmt.Sprint(s.Count)
		body[1][j] = fmt.Sprint(s.Unique)
		if s.Count == 0 {
			body[2][j], body[3][j] = "NaN", "NaN"
			continue
		}
		body[2][j] = oneLine(s.Top)
		body[3][j] = fmt.Sprint(s.Freq)
	}
	return writeGrid(w, header, []string{"count", "unique", "top", "freq"}, body)
}

func formatStat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%f", v)
}

func oneLine(s string) string {
	return strings.NewReplacer("\n", " ", "\t", " ").Replace(s)
}

// writeGrid right-aligns a labelled matrix under a header row.
func writeGrid(w io.Writer, header, labels []string, body [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "\t")
	for _, h := range header {
		fmt.Fprintf(tw, "%s\t", oneLine(h))
	}
	fmt.Fprintln(tw)
	for i, l := range labels {
		fmt.Fprintf(tw, "%s\t", l)
		for _, cell := range body[i] {
			fmt.Fprintf(tw, "%s\t", cell)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
