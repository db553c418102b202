// Package table wraps a gota DataFrame with the column-level helpers the
// analysis strategies need: type classification, null bookkeeping and
// extraction of non-null values.
package table

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Kind is the analysis-level classification of a column.
type Kind string

const (
	KindNumeric     Kind = "numeric"
	KindCategorical Kind = "categorical"
	KindBoolean     Kind = "boolean"
)

var (
	// ErrUnknownColumn is returned when a named feature is not a column of the table.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrNotNumeric is returned when numeric values are requested from a non-numeric column.
	ErrNotNumeric = errors.New("column is not numeric")
)

// Options controls how raw records become a Table.
type Options struct {
	// NAValues are raw cell values treated as null. Nil keeps gota's defaults.
	NAValues []string
	// Delimiter for CSV input. If 0, ',' is used.
	Delimiter rune
}

// ColumnCount pairs a column name with a count.
type ColumnCount struct {
	Column string
	Count  int
}

// Table is a rectangular in-memory dataset with named, typed columns.
// Analyses receive it by pointer and never mutate it.
type Table struct {
	Name string
	df   dataframe.DataFrame
}

func (o Options) loadOptions() []dataframe.LoadOption {
	opts := []dataframe.LoadOption{
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
	}
	if o.NAValues != nil {
		opts = append(opts, dataframe.NaNValues(o.NAValues))
	}
	if o.Delimiter != 0 {
		opts = append(opts, dataframe.WithDelimiter(o.Delimiter))
	}
	return opts
}

// ReadCSV loads a CSV stream whose first row is the header.
func ReadCSV(r io.Reader, name string, opt Options) (*Table, error) {
	df := dataframe.ReadCSV(r, opt.loadOptions()...)
	if df.Err != nil {
		return nil, fmt.Errorf("read csv %s: %w", name, df.Err)
	}
	return &Table{Name: name, df: df}, nil
}

// FromRecords builds a Table from string records; records[0] is the header.
func FromRecords(records [][]string, name string, opt Options) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("load records %s: no header row", name)
	}
	df := dataframe.LoadRecords(records, opt.loadOptions()...)
	if df.Err != nil {
		return nil, fmt.Errorf("load records %s: %w", name, df.Err)
	}
	return &Table{Name: name, df: df}, nil
}

// FromDataFrame wraps an existing DataFrame.
func FromDataFrame(name string, df dataframe.DataFrame) (*Table, error) {
	if df.Err != nil {
		return nil, fmt.Errorf("dataframe %s: %w", name, df.Err)
	}
	return &Table{Name: name, df: df}, nil
}

// DataFrame exposes the underlying gota frame.
func (t *Table) DataFrame() dataframe.DataFrame { return t.df }

func (t *Table) Nrow() int       { return t.df.Nrow() }
func (t *Table) Ncol() int       { return t.df.Ncol() }
func (t *Table) Names() []string { return t.df.Names() }
func (t *Table) String() string  { return t.df.String() }

// Column returns the named series or an error wrapping ErrUnknownColumn.
func (t *Table) Column(name string) (series.Series, error) {
	for _, n := range t.df.Names() {
		if n == name {
			s := t.df.Col(name)
			if s.Err != nil {
				return series.Series{}, fmt.Errorf("column %q: %w", name, s.Err)
			}
			return s, nil
		}
	}
	return series.Series{}, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
}

// DType returns a pandas-style dtype label for the column. Integer columns
// holding nulls report float64, since nulls force a float representation.
func (t *Table) DType(name string) (string, error) {
	s, err := t.Column(name)
	if err != nil {
		return "", err
	}
	if s.Type() == series.Int && s.HasNaN() {
		return "float64", nil
	}
	return dtypeOf(s.Type()), nil
}

func dtypeOf(typ series.Type) string {
	switch typ {
	case series.Int:
		return "int64"
	case series.Float:
		return "float64"
	case series.Bool:
		return "bool"
	default:
		return "object"
	}
}

// Kind classifies the column by its detected type.
func (t *Table) Kind(name string) (Kind, error) {
	s, err := t.Column(name)
	if err != nil {
		return "", err
	}
	return kindOf(s.Type()), nil
}

func kindOf(typ series.Type) Kind {
	switch typ {
	case series.Int, series.Float:
		return KindNumeric
	case series.Bool:
		return KindBoolean
	default:
		return KindCategorical
	}
}

// NumericColumns lists int and float columns in table order.
func (t *Table) NumericColumns() []string {
	return t.columnsOfKind(KindNumeric)
}

// CategoricalColumns lists string (object) columns in table order.
func (t *Table) CategoricalColumns() []string {
	return t.columnsOfKind(KindCategorical)
}

func (t *Table) columnsOfKind(k Kind) []string {
	var out []string
	types := t.df.Types()
	for i, name := range t.df.Names() {
		if kindOf(types[i]) == k {
			out = append(out, name)
		}
	}
	return out
}

// Floats returns the non-null values of a numeric column.
func (t *Table) Floats(name string) ([]float64, error) {
	s, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if kindOf(s.Type()) != KindNumeric {
		return nil, fmt.Errorf("%w: %q is %s", ErrNotNumeric, name, dtypeOf(s.Type()))
	}
	vals := s.Float()
	nulls := s.IsNaN()
	out := make([]float64, 0, len(vals))
	for i, v := range vals {
		if !nulls[i] {
			out = append(out, v)
		}
	}
	return out, nil
}

// RawFloats returns every row of a numeric column with its null mask, so that
// several columns can be aligned row by row.
func (t *Table) RawFloats(name string) ([]float64, []bool, error) {
	s, err := t.Column(name)
	if err != nil {
		return nil, nil, err
	}
	if kindOf(s.Type()) != KindNumeric {
		return nil, nil, fmt.Errorf("%w: %q is %s", ErrNotNumeric, name, dtypeOf(s.Type()))
	}
	return s.Float(), s.IsNaN(), nil
}

// RawStrings returns every row of a column as text with its null mask.
func (t *Table) RawStrings(name string) ([]string, []bool, error) {
	s, err := t.Column(name)
	if err != nil {
		return nil, nil, err
	}
	return s.Records(), s.IsNaN(), nil
}

// Strings returns the non-null values of any column rendered as text.
func (t *Table) Strings(name string) ([]string, error) {
	s, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	recs := s.Records()
	nulls := s.IsNaN()
	out := make([]string, 0, len(recs))
	for i, v := range recs {
		if !nulls[i] {
			out = append(out, v)
		}
	}
	return out, nil
}

// NullCounts returns the null count of every column in table order.
func (t *Table) NullCounts() []ColumnCount {
	names := t.df.Names()
	out := make([]ColumnCount, 0, len(names))
	for _, name := range names {
		n := 0
		for _, isNull := range t.df.Col(name).IsNaN() {
			if isNull {
				n++
			}
		}
		out = append(out, ColumnCount{Column: name, Count: n})
	}
	return out
}

// NonNullCount returns the number of non-null cells in the column.
func (t *Table) NonNullCount(name string) (int, error) {
	s, err := t.Column(name)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, isNull := range s.IsNaN() {
		if !isNull {
			n++
		}
	}
	return n, nil
}

// NullMask reports null positions as mask[row][col].
func (t *Table) NullMask() [][]bool {
	nrow, ncol := t.df.Nrow(), t.df.Ncol()
	mask := make([][]bool, nrow)
	for r := range mask {
		mask[r] = make([]bool, ncol)
	}
	for c, name := range t.df.Names() {
		for r, isNull := range t.df.Col(name).IsNaN() {
			mask[r][c] = isNull
		}
	}
	return mask
}

// Head returns a table with at most the first n rows.
func (t *Table) Head(n int) *Table {
	if n >= t.df.Nrow() {
		return t
	}
	if n < 0 {
		n = 0
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return &Table{Name: t.Name, df: t.df.Subset(idx)}
}

// Select returns a table restricted to the named columns, in the given order.
func (t *Table) Select(names ...string) (*Table, error) {
	for _, n := range names {
		if _, err := t.Column(n); err != nil {
			return nil, err
		}
	}
	df := t.df.Select(names)
	if df.Err != nil {
		return nil, fmt.Errorf("select: %w", df.Err)
	}
	return &Table{Name: t.Name, df: df}, nil
}
