package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuoteStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    QuoteStatus
		wantErr bool
	}{
		{name: "canonical", in: "Approved", want: QuoteStatusApproved},
		{name: "lower case", in: "pending", want: QuoteStatusPending},
		{name: "upper case with spaces", in: "  COMPLETED ", want: QuoteStatusCompleted},
		{name: "unknown", in: "Shipped", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseQuoteStatus(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidQuoteStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestInitialStatusIsFirst(t *testing.T) {
	t.Parallel()

	assert.Equal(t, QuoteStatuses[0], InitialQuoteStatus())
	assert.False(t, QuoteStatus("pending").Valid())
}

func TestSnapshotItem(t *testing.T) {
	t.Parallel()

	catID := uint(3)
	p := &Product{
		Barcode:     "B1",
		ProductName: "Soap",
		Brand:       "Pearline",
		CaseSize:    12,
		CasePrice:   decimal.RequireFromString("10.00"),
		UnitPrice:   decimal.RequireFromString("1.00"),
		IsAvailable: true,
		CategoryID:  &catID,
		Category:    &Category{ID: catID, Name: "Bath"},
	}
	line := CartItem{ProductBarcode: "B1", Product: p, Quantity: 2, IsCase: true}

	qi := SnapshotItem(line, decimal.RequireFromString("20.00"))
	assert.Equal(t, "Soap", qi.ProductName)
	assert.Equal(t, "Bath", qi.CategoryName)
	assert.Equal(t, 12, qi.CaseSize)
	assert.True(t, qi.CasePrice.Equal(decimal.RequireFromString("10")))

	// mutating the source after the copy must not leak into the snapshot
	p.ProductName = "Renamed"
	*p.CategoryID = 9
	assert.Equal(t, "Soap", qi.ProductName)
	require.NotNil(t, qi.CategoryID)
	assert.Equal(t, uint(3), *qi.CategoryID)

	missing := SnapshotItem(CartItem{ProductBarcode: "GONE", Quantity: 1}, decimal.Zero)
	assert.Equal(t, "GONE", missing.Barcode)
	assert.Empty(t, missing.ProductName)
	assert.False(t, missing.IsAvailable)
	assert.Nil(t, missing.CategoryID)
}
