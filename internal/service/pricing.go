package service

import (
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/pearline_shop/internal/models"
)

// LinePrice is the case price for case lines and the unit price otherwise.
// A missing product prices at zero.
func LinePrice(p *models.Product, isCase bool) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	if isCase {
		return p.CasePrice
	}
	return p.UnitPrice
}

func LineSubtotal(p *models.Product, isCase bool, quantity int) decimal.Decimal {
	return LinePrice(p, isCase).Mul(decimal.NewFromInt(int64(quantity)))
}

type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals sums the line subtotals, applies taxRate and rounds tax and
// total to two places, half away from zero.
func ComputeTotals(subtotals []decimal.Decimal, taxRate decimal.Decimal) Totals {
	sum := decimal.Zero
	for _, s := range subtotals {
		sum = sum.Add(s)
	}
	tax := sum.Mul(taxRate).Round(2)
	return Totals{
		Subtotal: sum,
		Tax:      tax,
		Total:    sum.Add(tax).Round(2),
	}
}
