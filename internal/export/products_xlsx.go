package export

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"

	"github.com/Skotchmaster/pearline_shop/internal/transport"
)

var ErrBadSheet = errors.New("bad product sheet")

// ProductColumns is the column order of the product import sheet.
var ProductColumns = []string{
	"Barcode", "ProductName", "Brand", "ProductImage", "CaseSize",
	"CasesPerLayer", "CasesPerPallet", "LeadTimeDays", "CasePrice", "UnitPrice",
	"IsAvailable", "Description", "Ingredients", "Usage", "CategoryName",
}

// ReadProductsXLSX parses the first sheet. Row one is the header; rows with an
// empty barcode are skipped.
func ReadProductsXLSX(r io.ReaderAt, size int64) ([]transport.CreateProductRequest, error) {
	file, err := xlsx.OpenReaderAt(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSheet, err)
	}
	if len(file.Sheets) == 0 || file.Sheets[0].MaxRow < 2 {
		return nil, fmt.Errorf("%w: sheet is empty or missing header row", ErrBadSheet)
	}

	sheet := file.Sheets[0]
	out := make([]transport.CreateProductRequest, 0, sheet.MaxRow-1)

	for i := 1; i < len(sheet.Rows); i++ {
		row := sheet.Rows[i]
		get := func(col int) string {
			if row == nil || col >= len(row.Cells) {
				return ""
			}
			return strings.TrimSpace(row.Cells[col].String())
		}

		barcode := get(0)
		if barcode == "" {
			continue
		}

		req := transport.CreateProductRequest{
			Barcode:      barcode,
			ProductName:  get(1),
			Brand:        get(2),
			ProductImage: get(3),
			Description:  get(11),
			Ingredients:  get(12),
			Usage:        get(13),
			CategoryName: get(14),
		}

		ints := []*int{&req.CaseSize, &req.CasesPerLayer, &req.CasesPerPallet, &req.LeadTimeDays}
		for j, dst := range ints {
			v, err := atoiDefault(get(4 + j))
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %s: %v", ErrBadSheet, i+1, ProductColumns[4+j], err)
			}
			*dst = v
		}

		if req.CasePrice, err = decimalDefault(get(8)); err != nil {
			return nil, fmt.Errorf("%w: row %d column CasePrice: %v", ErrBadSheet, i+1, err)
		}
		if req.UnitPrice, err = decimalDefault(get(9)); err != nil {
			return nil, fmt.Errorf("%w: row %d column UnitPrice: %v", ErrBadSheet, i+1, err)
		}

		if v := get(10); v != "" {
			b, err := strconv.ParseBool(strings.ToLower(v))
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column IsAvailable: %v", ErrBadSheet, i+1, err)
			}
			req.IsAvailable = &b
		}

		out = append(out, req)
	}
	return out, nil
}

func atoiDefault(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func decimalDefault(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
