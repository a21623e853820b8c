package export

import (
	"fmt"
	"io"

	"github.com/tealeg/xlsx"

	"github.com/Skotchmaster/pearline_shop/internal/models"
)

const (
	QuotesSheet = "Quotes"
	ItemsSheet  = "Items"

	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	quoteHeaders = []string{
		"QuoteID", "Email", "UserID", "Status", "DateCreated",
		"Subtotal", "Tax", "TotalPrice", "ItemCount", "Comments",
	}
	itemHeaders = []string{
		"QuoteID", "Barcode", "ProductName", "Brand", "CategoryName",
		"IsCase", "Quantity", "CaseSize", "CasePrice", "UnitPrice", "Subtotal", "LeadTimeDays",
	}
)

// WriteQuotesXLSX renders quotes on one sheet and their lines on another.
func WriteQuotesXLSX(w io.Writer, quotes []models.Quote) error {
	file := xlsx.NewFile()

	qs, err := file.AddSheet(QuotesSheet)
	if err != nil {
		return fmt.Errorf("add quotes sheet: %w", err)
	}
	is, err := file.AddSheet(ItemsSheet)
	if err != nil {
		return fmt.Errorf("add items sheet: %w", err)
	}

	header(qs, quoteHeaders)
	header(is, itemHeaders)

	for _, q := range quotes {
		row := qs.AddRow()
		row.AddCell().SetValue(q.ID)
		row.AddCell().SetValue(q.Email)
		row.AddCell().SetValue(q.UserID)
		row.AddCell().SetValue(q.Status.String())
		row.AddCell().SetValue(q.DateCreated.UTC().Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(q.Subtotal.StringFixed(2))
		row.AddCell().SetValue(q.Tax.StringFixed(2))
		row.AddCell().SetValue(q.TotalPrice.StringFixed(2))
		row.AddCell().SetValue(len(q.Items))
		row.AddCell().SetValue(q.Comments)

		for _, it := range q.Items {
			ir := is.AddRow()
			ir.AddCell().SetValue(q.ID)
			ir.AddCell().SetValue(it.Barcode)
			ir.AddCell().SetValue(it.ProductName)
			ir.AddCell().SetValue(it.Brand)
			ir.AddCell().SetValue(it.CategoryName)
			ir.AddCell().SetValue(it.IsCase)
			ir.AddCell().SetValue(it.Quantity)
			ir.AddCell().SetValue(it.CaseSize)
			ir.AddCell().SetValue(it.CasePrice.StringFixed(2))
			ir.AddCell().SetValue(it.UnitPrice.StringFixed(2))
			ir.AddCell().SetValue(it.Subtotal.StringFixed(2))
			ir.AddCell().SetValue(it.LeadTimeDays)
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func header(sheet *xlsx.Sheet, names []string) {
	row := sheet.AddRow()
	for _, h := range names {
		row.AddCell().SetValue(h)
	}
}
