package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Quote struct {
	ID          uint            `gorm:"primaryKey"                  json:"id"`
	Email       string          `gorm:"index;not null"              json:"email"`
	Comments    string          `json:"comments"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"subtotal"`
	Tax         decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"tax"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"totalPrice"`
	DateCreated time.Time       `gorm:"index;not null"              json:"dateCreated"`
	UserID      string          `gorm:"index;not null"              json:"userId"`
	Status      QuoteStatus     `gorm:"type:varchar(16);not null;check:chk_quotes_status,status IN ('Pending','Approved','Rejected','Completed')" json:"status"`
	Items       []QuoteItem     `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.Status == "" {
		q.Status = InitialQuoteStatus()
	}
	if q.DateCreated.IsZero() {
		q.DateCreated = tx.NowFunc()
	}
	return nil
}

// QuoteItem is a value copy of a product taken at submission time.
// It carries no foreign key to products.
type QuoteItem struct {
	ID             uint            `gorm:"primaryKey"            json:"id"`
	QuoteID        uint            `gorm:"index;not null"        json:"quoteId"`
	Barcode        string          `gorm:"not null"              json:"barcode"`
	ProductName    string          `json:"productName"`
	Brand          string          `json:"brand"`
	ProductImage   string          `json:"productImage"`
	CaseSize       int             `json:"caseSize"`
	CasesPerLayer  int             `json:"casesPerLayer"`
	CasesPerPallet int             `json:"casesPerPallet"`
	LeadTimeDays   int             `json:"leadTimeDays"`
	CasePrice      decimal.Decimal `gorm:"type:decimal(18,2)"    json:"casePrice"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(18,2)"    json:"unitPrice"`
	IsAvailable    bool            `json:"isAvailable"`
	Description    string          `json:"description"`
	Ingredients    string          `json:"ingredients"`
	Usage          string          `json:"usage"`
	CategoryID     *uint           `json:"categoryId"`
	CategoryName   string          `json:"categoryName"`
	Quantity       int             `gorm:"not null"              json:"quantity"`
	IsCase         bool            `json:"isCase"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"subtotal"`
}

// SnapshotItem copies every product field of a cart line into a new QuoteItem.
// A line whose product is gone yields zero values except the barcode.
func SnapshotItem(item CartItem, subtotal decimal.Decimal) QuoteItem {
	qi := QuoteItem{
		Barcode:  item.ProductBarcode,
		Quantity: item.Quantity,
		IsCase:   item.IsCase,
		Subtotal: subtotal,
	}
	p := item.Product
	if p == nil {
		return qi
	}

	qi.ProductName = p.ProductName
	qi.Brand = p.Brand
	qi.ProductImage = p.ProductImage
	qi.CaseSize = p.CaseSize
	qi.CasesPerLayer = p.CasesPerLayer
	qi.CasesPerPallet = p.CasesPerPallet
	qi.LeadTimeDays = p.LeadTimeDays
	qi.CasePrice = p.CasePrice
	qi.UnitPrice = p.UnitPrice
	qi.IsAvailable = p.IsAvailable
	qi.Description = p.Description
	qi.Ingredients = p.Ingredients
	qi.Usage = p.Usage
	if p.CategoryID != nil {
		id := *p.CategoryID
		qi.CategoryID = &id
	}
	if p.Category != nil {
		qi.CategoryName = p.Category.Name
	}
	return qi
}
