package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Skotchmaster/pearline_shop/internal/models"
)

func TestLinePrice(t *testing.T) {
	t.Parallel()

	p := &models.Product{CasePrice: dec("10.00"), UnitPrice: dec("2.00")}
	assert.True(t, LinePrice(p, true).Equal(dec("10")))
	assert.True(t, LinePrice(p, false).Equal(dec("2")))
	assert.True(t, LinePrice(nil, true).IsZero())
	assert.True(t, LineSubtotal(p, true, 3).Equal(dec("30")))
}

func TestComputeTotals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		subtotals []string
		rate      string
		wantSub   string
		wantTax   string
		wantTotal string
	}{
		{name: "worked example no tax", subtotals: []string{"30.00", "10.00"}, rate: "0", wantSub: "40.00", wantTax: "0.00", wantTotal: "40.00"},
		{name: "tax rounds up", subtotals: []string{"10.10"}, rate: "0.075", wantSub: "10.10", wantTax: "0.76", wantTotal: "10.86"},
		{name: "half away from zero", subtotals: []string{"0.05"}, rate: "0.5", wantSub: "0.05", wantTax: "0.03", wantTotal: "0.08"},
		{name: "empty", subtotals: nil, rate: "0.2", wantSub: "0.00", wantTax: "0.00", wantTotal: "0.00"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			subs := make([]decimal.Decimal, len(tt.subtotals))
			for i, s := range tt.subtotals {
				subs[i] = dec(s)
			}
			got := ComputeTotals(subs, dec(tt.rate))
			assert.Equal(t, tt.wantSub, got.Subtotal.StringFixed(2))
			assert.Equal(t, tt.wantTax, got.Tax.StringFixed(2))
			assert.Equal(t, tt.wantTotal, got.Total.StringFixed(2))

			// total is always subtotal plus rounded tax, rounded
			assert.True(t, got.Total.Equal(got.Subtotal.Add(got.Tax).Round(2)))
		})
	}
}
