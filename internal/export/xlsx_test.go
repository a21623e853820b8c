package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"github.com/Skotchmaster/pearline_shop/internal/models"
)

func TestWriteQuotesXLSX(t *testing.T) {
	t.Parallel()

	quotes := []models.Quote{
		{
			ID:          1,
			Email:       "buyer@example.com",
			UserID:      "u-1",
			Status:      models.QuoteStatusPending,
			DateCreated: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
			Subtotal:    decimal.RequireFromString("40"),
			Tax:         decimal.Zero,
			TotalPrice:  decimal.RequireFromString("40"),
			Items: []models.QuoteItem{
				{Barcode: "A", ProductName: "Soap", IsCase: true, Quantity: 3, Subtotal: decimal.RequireFromString("30")},
				{Barcode: "B", ProductName: "Sponge", IsCase: false, Quantity: 5, Subtotal: decimal.RequireFromString("10")},
			},
		},
		{ID: 2, Email: "other@example.com", Status: models.QuoteStatusApproved, TotalPrice: decimal.RequireFromString("5.5")},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteQuotesXLSX(&buf, quotes))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)

	qs, ok := file.Sheet[QuotesSheet]
	require.True(t, ok)
	require.Len(t, qs.Rows, 3)
	assert.Equal(t, "QuoteID", qs.Rows[0].Cells[0].String())
	assert.Equal(t, "buyer@example.com", qs.Rows[1].Cells[1].String())
	assert.Equal(t, "Pending", qs.Rows[1].Cells[3].String())
	assert.Equal(t, "40.00", qs.Rows[1].Cells[7].String())
	assert.Equal(t, "5.50", qs.Rows[2].Cells[7].String())

	is, ok := file.Sheet[ItemsSheet]
	require.True(t, ok)
	require.Len(t, is.Rows, 3)
	assert.Equal(t, "Sponge", is.Rows[2].Cells[2].String())
	assert.Equal(t, "10.00", is.Rows[2].Cells[10].String())
}

func productSheet(t *testing.T, rows [][]string) []byte {
	t.Helper()

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	require.NoError(t, err)

	hr := sheet.AddRow()
	for _, h := range ProductColumns {
		hr.AddCell().SetValue(h)
	}
	for _, r := range rows {
		row := sheet.AddRow()
		for _, v := range r {
			row.AddCell().SetString(v)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))
	return buf.Bytes()
}

func TestReadProductsXLSX(t *testing.T) {
	t.Parallel()

	data := productSheet(t, [][]string{
		{"5000001", "Lavender Soap", "Pearline", "", "12", "10", "80", "3", "10.00", "1.00", "true", "desc", "", "", "Bath"},
		{"", "skipped"},
		{"5000002", "Sponge", "", "", "", "", "", "", "", "0.50", "", "", "", "", ""},
	})

	got, err := ReadProductsXLSX(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "5000001", got[0].Barcode)
	assert.Equal(t, 12, got[0].CaseSize)
	assert.True(t, got[0].CasePrice.Equal(decimal.RequireFromString("10")))
	require.NotNil(t, got[0].IsAvailable)
	assert.True(t, *got[0].IsAvailable)
	assert.Equal(t, "Bath", got[0].CategoryName)

	assert.Equal(t, "Sponge", got[1].ProductName)
	assert.Nil(t, got[1].IsAvailable)
	assert.True(t, got[1].UnitPrice.Equal(decimal.RequireFromString("0.5")))
}

func TestReadProductsXLSX_BadNumber(t *testing.T) {
	t.Parallel()

	data := productSheet(t, [][]string{
		{"5000001", "Soap", "", "", "twelve"},
	})

	_, err := ReadProductsXLSX(bytes.NewReader(data), int64(len(data)))
	require.ErrorIs(t, err, ErrBadSheet)
	assert.Contains(t, err.Error(), "CaseSize")
}

func TestReadProductsXLSX_NotASpreadsheet(t *testing.T) {
	t.Parallel()

	data := []byte("not a zip")
	_, err := ReadProductsXLSX(bytes.NewReader(data), int64(len(data)))
	require.ErrorIs(t, err, ErrBadSheet)
}
