package batch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

const negotiationCSV = `forecast_trend,forecast_price,market_trend,market_avg_price,offer_price,supplier_margin_pct,risk_factors
# greed scenario
stable,0.55,drop,0.50,0.58,5,
rise,0.60,stable,0.50,0.58,5,"disease,logistics_congestion"
`

func TestReadCSV(t *testing.T) {
	rows, err := ReadCSV(context.Background(), strings.NewReader(negotiationCSV))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 3, rows[0].Line)
	assert.Equal(t, "drop", rows[0].Get("market_trend"))
	assert.Equal(t, "", rows[0].Get("risk_factors"))
	assert.Equal(t, "disease,logistics_congestion", rows[1].Get("risk_factors"))
	assert.Equal(t, "", rows[1].Get("no_such_column"))
}

func TestReadCSV_HeaderNormalized(t *testing.T) {
	rows, err := ReadCSV(context.Background(), strings.NewReader("\ufeff Offer_Price ,x\n0.5,1\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "0.5", rows[0].Get("offer_price"))
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV(context.Background(), strings.NewReader(""))
	assert.Error(t, err)
}

func TestReadCSV_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ReadCSV(ctx, strings.NewReader(negotiationCSV))
	assert.Error(t, err)
}

func TestReadYAML(t *testing.T) {
	doc := `
- supplier_name: ABC Export Co.
  volume_trend: growth
  destinations: [high_standard, middle]
  buyer_tier: tier1
  export_history: recent
  dependency: low
- supplier_name: XYZ
  volume_trend: decline
  buyer_tier: unknown
  export_history: none
  dependency: high
`
	rows, err := ReadYAML(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Line)
	assert.Equal(t, "high_standard,middle", rows[0].Get("destinations"))
	assert.Equal(t, "XYZ", rows[1].Get("supplier_name"))
}

func TestReadYAML_Empty(t *testing.T) {
	rows, err := ReadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func createTestXLSX(t *testing.T, rows [][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Suppliers")
	require.NoError(t, err)
	for _, rowData := range rows {
		row := sheet.AddRow()
		for _, cellData := range rowData {
			row.AddCell().SetString(cellData)
		}
	}
	path := filepath.Join(t.TempDir(), "suppliers.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestReadXLSX(t *testing.T) {
	path := createTestXLSX(t, [][]string{
		{"supplier_name", "volume_trend", "buyer_tier", "export_history", "dependency"},
		{"ABC", "growth", "tier1", "recent", "low"},
		{"", "", "", "", ""},
		{"XYZ", "stable", "tier2", "past", "high"},
	})

	rows, err := ReadXLSX(path, "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, 4, rows[1].Line)
	assert.Equal(t, "tier2", rows[1].Get("buyer_tier"))

	_, err = ReadXLSX(path, "Missing")
	assert.Error(t, err)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(negotiationCSV), 0o644))

	rows, err := ReadFile(context.Background(), csvPath)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	_, err = ReadFile(context.Background(), filepath.Join(dir, "in.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}
