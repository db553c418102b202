package analysis

import (
	"math"
	"sort"

	"github.com/KaramelBytes/edakit/internal/table"
	"gonum.org/v1/gonum/stat"
)

// CorrMatrix holds a symmetric Pearson correlation matrix across numeric columns.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64 // row-major, Values[i][j]
}

// PairCorr is a simple correlation pair summary.
type PairCorr struct {
	A, B string
	R    float64
}

// CorrelationMatrix computes Pearson correlations between every pair of
// numeric columns using the rows where both are non-null. A cell is NaN when
// fewer than two such rows exist or either side is constant over them.
func CorrelationMatrix(t *table.Table) (*CorrMatrix, error) {
	cols := t.NumericColumns()
	if len(cols) == 0 {
		return nil, ErrNoNumericColumns
	}
	vals := make([][]float64, len(cols))
	nulls := make([][]bool, len(cols))
	for i, name := range cols {
		v, n, err := t.RawFloats(name)
		if err != nil {
			return nil, err
		}
		vals[i], nulls[i] = v, n
	}

	n := len(cols)
	mat := make([][]float64, n)
	for i := range mat {
		mat[i] = make([]float64, n)
	}
	for a := 0; a < n; a++ {
		for b := a; b < n; b++ {
			r := pearson(vals[a], nulls[a], vals[b], nulls[b])
			mat[a][b], mat[b][a] = r, r
		}
	}
	return &CorrMatrix{Columns: cols, Values: mat}, nil
}

func pearson(x []float64, xNull []bool, y []float64, yNull []bool) float64 {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if xNull[i] || yNull[i] {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return math.NaN()
	}
	return math.Max(-1, math.Min(1, r))
}

// TopPairs lists up to limit off-diagonal pairs by descending |r|, skipping
// undefined cells. It is safe on a nil matrix.
func (m *CorrMatrix) TopPairs(limit int) []PairCorr {
	if m == nil {
		return nil
	}
	var pairs []PairCorr
	for i := range m.Columns {
		for j := i + 1; j < len(m.Columns); j++ {
			r := m.Values[i][j]
			if math.IsNaN(r) {
				continue
			}
			pairs = append(pairs, PairCorr{A: m.Columns[i], B: m.Columns[j], R: r})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return math.Abs(pairs[i].R) > math.Abs(pairs[j].R)
	})
	if limit > 0 && len(pairs) > limit {
		pairs = pairs[:limit]
	}
	return pairs
}
