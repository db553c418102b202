package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var housingCSV = strings.Join([]string{
	"Id,LotArea,LotFrontage,Neighborhood,Alley,SalePrice",
	"1,8450,65.0,CollgCr,,208500",
	"2,9600,80.0,Veenker,,181500",
	"3,11250,,CollgCr,Pave,223500",
	"4,9550,60.0,Crawfor,,140000",
	"5,14260,84.0,NoRidge,Grvl,250000",
}, "\n")

func loadHousing(t *testing.T) *Table {
	t.Helper()
	tbl, err := ReadCSV(strings.NewReader(housingCSV), "housing.csv", Options{NAValues: []string{"", "NA"}})
	require.NoError(t, err)
	return tbl
}

func TestReadCSVShapeAndTypes(t *testing.T) {
	tbl := loadHousing(t)
	assert.Equal(t, 5, tbl.Nrow())
	assert.Equal(t, 6, tbl.Ncol())
	assert.Equal(t, []string{"Id", "LotArea", "LotFrontage", "Neighborhood", "Alley", "SalePrice"}, tbl.Names())

	dt, err := tbl.DType("LotArea")
	require.NoError(t, err)
	assert.Equal(t, "int64", dt)

	dt, err = tbl.DType("LotFrontage")
	require.NoError(t, err)
	assert.Equal(t, "float64", dt)

	dt, err = tbl.DType("Neighborhood")
	require.NoError(t, err)
	assert.Equal(t, "object", dt)

	assert.Equal(t, []string{"Id", "LotArea", "LotFrontage", "SalePrice"}, tbl.NumericColumns())
	assert.Equal(t, []string{"Neighborhood", "Alley"}, tbl.CategoricalColumns())
}

func TestNullCountsAndMask(t *testing.T) {
	tbl := loadHousing(t)
	counts := map[string]int{}
	for _, c := range tbl.NullCounts() {
		counts[c.Column] = c.Count
	}
	assert.Equal(t, 1, counts["LotFrontage"])
	assert.Equal(t, 3, counts["Alley"])
	assert.Equal(t, 0, counts["SalePrice"])

	mask := tbl.NullMask()
	require.Len(t, mask, 5)
	require.Len(t, mask[0], 6)
	assert.True(t, mask[2][2], "row 3 LotFrontage is null")
	assert.False(t, mask[2][4], "row 3 Alley is set")
	assert.True(t, mask[0][4])

	nn, err := tbl.NonNullCount("Alley")
	require.NoError(t, err)
	assert.Equal(t, 2, nn)
}

func TestFloatsAndStringsSkipNulls(t *testing.T) {
	tbl := loadHousing(t)

	vals, err := tbl.Floats("LotFrontage")
	require.NoError(t, err)
	assert.Equal(t, []float64{65, 80, 60, 84}, vals)

	_, err = tbl.Floats("Neighborhood")
	assert.ErrorIs(t, err, ErrNotNumeric)

	strs, err := tbl.Strings("Alley")
	require.NoError(t, err)
	assert.Equal(t, []string{"Pave", "Grvl"}, strs)
}

func TestRawAccessorsKeepRowAlignment(t *testing.T) {
	tbl := loadHousing(t)

	vals, nulls, err := tbl.RawFloats("LotFrontage")
	require.NoError(t, err)
	require.Len(t, vals, 5)
	assert.Equal(t, []bool{false, false, true, false, false}, nulls)
	assert.Equal(t, 84.0, vals[4])

	strs, nulls, err := tbl.RawStrings("Neighborhood")
	require.NoError(t, err)
	assert.Equal(t, "Crawfor", strs[3])
	assert.NotContains(t, nulls, true)
}

func TestUnknownColumn(t *testing.T) {
	tbl := loadHousing(t)
	_, err := tbl.Column("GarageArea")
	assert.ErrorIs(t, err, ErrUnknownColumn)
	_, err = tbl.Kind("GarageArea")
	assert.ErrorIs(t, err, ErrUnknownColumn)
	_, err = tbl.Select("Id", "GarageArea")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestHeadAndSelect(t *testing.T) {
	tbl := loadHousing(t)

	head := tbl.Head(2)
	assert.Equal(t, 2, head.Nrow())
	assert.Equal(t, 5, tbl.Nrow(), "source table is untouched")
	assert.Same(t, tbl, tbl.Head(50))

	sel, err := tbl.Select("SalePrice", "LotArea")
	require.NoError(t, err)
	assert.Equal(t, []string{"SalePrice", "LotArea"}, sel.Names())
	assert.Equal(t, 5, sel.Nrow())
}

func TestFromRecordsWithDelimiterFreeInput(t *testing.T) {
	tbl, err := FromRecords([][]string{
		{"Kind", "Value"},
		{"a", "1.5"},
		{"b", "NA"},
	}, "sheet", Options{NAValues: []string{"", "NA"}})
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Nrow())

	k, err := tbl.Kind("Value")
	require.NoError(t, err)
	assert.Equal(t, KindNumeric, k)

	_, err = FromRecords(nil, "empty", Options{})
	assert.Error(t, err)
}

func TestDTypeWithNulls(t *testing.T) {
	tbl, err := FromRecords([][]string{
		{"Rooms", "PoolArea", "Empty"},
		{"3", "0", ""},
		{"NA", "512", ""},
		{"4", "0", ""},
	}, "nulls", Options{NAValues: []string{"", "NA"}})
	require.NoError(t, err)

	dt, err := tbl.DType("Rooms")
	require.NoError(t, err)
	assert.Equal(t, "float64", dt, "integer column with a null")
	k, err := tbl.Kind("Rooms")
	require.NoError(t, err)
	assert.Equal(t, KindNumeric, k)
	vals, err := tbl.Floats("Rooms")
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, vals)

	dt, err = tbl.DType("PoolArea")
	require.NoError(t, err)
	assert.Equal(t, "int64", dt)

	// nothing to infer from: stays text
	dt, err = tbl.DType("Empty")
	require.NoError(t, err)
	assert.Equal(t, "object", dt)
	assert.Equal(t, []string{"Empty"}, tbl.CategoricalColumns())
}
