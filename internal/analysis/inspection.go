package analysis

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/KaramelBytes/edakit/internal/table"
)

// InspectionStrategy prints one kind of inspection of a table.
type InspectionStrategy interface {
	Inspect(t *table.Table) error
}

// InspectionFunc adapts a plain function to InspectionStrategy.
type InspectionFunc func(t *table.Table) error

func (f InspectionFunc) Inspect(t *table.Table) error { return f(t) }

// Inspector runs whichever inspection strategy is currently set.
type Inspector struct {
	strategy InspectionStrategy
}

func NewInspector(s InspectionStrategy) *Inspector {
	return &Inspector{strategy: s}
}

// SetStrategy replaces the active strategy.
func (i *Inspector) SetStrategy(s InspectionStrategy) { i.strategy = s }

func (i *Inspector) Strategy() InspectionStrategy { return i.strategy }

// ExecuteInspection forwards to the active strategy.
func (i *Inspector) ExecuteInspection(t *table.Table) error {
	if i.strategy == nil {
		return ErrNoStrategy
	}
	return i.strategy.Inspect(t)
}

// DataTypesInspection prints the dtype and non-null count of every column.
type DataTypesInspection struct {
	Out io.Writer
}

func (d DataTypesInspection) Inspect(t *table.Table) error {
	w := writerOr(d.Out)
	fmt.Fprintln(w, "\nData Types and Non-null Counts:")
	return WriteInfo(w, t)
}

// WriteInfo writes a concise column listing: entries, per-column non-null
// counts and dtypes, and a dtype tally.
func WriteInfo(w io.Writer, t *table.Table) error {
	nrow := t.Nrow()
	if nrow == 0 {
		fmt.Fprintln(w, "RangeIndex: 0 entries")
	} else {
		fmt.Fprintf(w, "RangeIndex: %d entries, 0 to %d\n", nrow, nrow-1)
	}
	fmt.Fprintf(w, "Data columns (total %d columns):\n", t.Ncol())

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, " #\tColumn\tNon-Null Count\tDtype")
	fmt.Fprintln(tw, "---\t------\t--------------\t-----")
	tally := map[string]int{}
	for i, name := range t.Names() {
		nn, err := t.NonNullCount(name)
		if err != nil {
			return err
		}
		dt, err := t.DType(name)
		if err != nil {
			return err
		}
		tally[dt]++
		fmt.Fprintf(tw, " %d\t%s\t%d non-null\t%s\n", i, name, nn, dt)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	kinds := make([]string, 0, len(tally))
	for k := range tally {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = fmt.Sprintf("%s(%d)", k, tally[k])
	}
	fmt.Fprintf(w, "dtypes: %s\n", strings.Join(parts, ", "))
	return nil
}

// SummaryStatisticsInspection prints describe-style statistics, numeric
// columns first, then categorical columns.
type SummaryStatisticsInspection struct {
	Out io.Writer
}

func (s SummaryStatisticsInspection) Inspect(t *table.Table) error {
	w := writerOr(s.Out)

	fmt.Fprintln(w, "\nSummary Statistics (Numerical Features):")
	num, err := DescribeNumeric(t)
	if err != nil {
		return err
	}
	if err := WriteNumericDescribe(w, num); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nSummary Statistics (Categorical Features)")
	cat, err := DescribeCategorical(t)
	if err != nil {
		return err
	}
	return WriteCategoricalDescribe(w, cat)
}
