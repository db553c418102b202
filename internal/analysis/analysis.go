// Package analysis holds the exploratory-data-analysis strategies. Each
// capability is a small interface with interchangeable implementations and,
// where callers pick between them at runtime, a dispatcher that holds the
// active strategy and forwards calls to it.
//
// Text output goes to the strategy's Out writer (stdout when nil). Figures go
// to the strategy's render.Renderer.
package analysis

import (
	"errors"
	"io"
	"os"
)

var (
	// ErrNoStrategy is returned by a dispatcher with no active strategy.
	ErrNoStrategy = errors.New("no strategy set")
	// ErrNoRenderer is returned by plotting strategies without a renderer.
	ErrNoRenderer = errors.New("no renderer configured")
	// ErrNoData is returned when a feature has no non-null values to plot.
	ErrNoData = errors.New("no non-null values")
	// ErrNoNumericColumns is returned by analyses that need numeric columns.
	ErrNoNumericColumns = errors.New("table has no numeric columns")
	// ErrEmptyTable is returned when a table has no rows or no columns.
	ErrEmptyTable = errors.New("table is empty")
)

func writerOr(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}

// CategoryCount is a category value with its frequency.
type CategoryCount struct {
	Value string
	Count int
}

// valueCounts tallies values in first-appearance order.
func valueCounts(vals []string) []CategoryCount {
	idx := map[string]int{}
	var out []CategoryCount
	for _, v := range vals {
		i, ok := idx[v]
		if !ok {
			i = len(out)
			idx[v] = i
			out = append(out, CategoryCount{Value: v})
		}
		out[i].Count++
	}
	return out
}
