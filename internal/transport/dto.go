package transport

import (
	"time"

	"github.com/shopspring/decimal"
)

type Paged[T any] struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalItems int64 `json:"totalItems"`
	Items      []T   `json:"items"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type DeletedResponse struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}

// cart

type CartLine struct {
	ID             uint            `json:"id"`
	Barcode        string          `json:"barcode"`
	ProductName    string          `json:"productName"`
	ProductImage   string          `json:"productImage"`
	CaseSize       int             `json:"caseSize"`
	CasesPerLayer  int             `json:"casesPerLayer"`
	CasesPerPallet int             `json:"casesPerPallet"`
	LeadTimeDays   int             `json:"leadTimeDays"`
	Quantity       int             `json:"quantity"`
	IsCase         bool            `json:"isCase"`
	PricePerItem   decimal.Decimal `json:"pricePerItem"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type CartResponse struct {
	ID    uint            `json:"id"`
	Items []CartLine      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// quotes

type SubmitQuoteRequest struct {
	Email    string `json:"email"`
	Comments string `json:"comments"`
}

type SubmitQuoteResponse struct {
	Message string          `json:"message"`
	QuoteID uint            `json:"quoteId"`
	Total   decimal.Decimal `json:"total"`
}

type QuoteSummary struct {
	ID          uint            `json:"id"`
	Email       string          `json:"email"`
	Status      string          `json:"status"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	DateCreated time.Time       `json:"dateCreated"`
	ItemCount   int             `json:"itemCount"`
}

type UpdateQuoteStatusRequest struct {
	Status string `json:"status"`
}

type QuoteStatusResponse struct {
	ID     uint   `json:"id"`
	Status string `json:"status"`
}

// catalog

type CreateProductRequest struct {
	Barcode        string          `json:"barcode"`
	ProductName    string          `json:"productName"`
	Brand          string          `json:"brand"`
	ProductImage   string          `json:"productImage"`
	CaseSize       int             `json:"caseSize"`
	CasesPerLayer  int             `json:"casesPerLayer"`
	CasesPerPallet int             `json:"casesPerPallet"`
	LeadTimeDays   int             `json:"leadTimeDays"`
	CasePrice      decimal.Decimal `json:"casePrice"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	IsAvailable    *bool           `json:"isAvailable"`
	Description    string          `json:"description"`
	Ingredients    string          `json:"ingredients"`
	Usage          string          `json:"usage"`
	CategoryID     *uint           `json:"categoryId"`
	CategoryName   string          `json:"categoryName"`
}

type PatchProductRequest struct {
	ProductName    *string          `json:"productName"`
	Brand          *string          `json:"brand"`
	ProductImage   *string          `json:"productImage"`
	CaseSize       *int             `json:"caseSize"`
	CasesPerLayer  *int             `json:"casesPerLayer"`
	CasesPerPallet *int             `json:"casesPerPallet"`
	LeadTimeDays   *int             `json:"leadTimeDays"`
	CasePrice      *decimal.Decimal `json:"casePrice"`
	UnitPrice      *decimal.Decimal `json:"unitPrice"`
	IsAvailable    *bool            `json:"isAvailable"`
	Description    *string          `json:"description"`
	Ingredients    *string          `json:"ingredients"`
	Usage          *string          `json:"usage"`
	CategoryID     *uint            `json:"categoryId"`
}

type BulkImportResponse struct {
	Imported int `json:"imported"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// contact

type ContactMessageRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
}

// auth

type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	MobileNumber    string `json:"mobileNumber"`
	CompanyName     string `json:"companyName"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type TokenResponse struct {
	AccessToken      string    `json:"accessToken"`
	RefreshToken     string    `json:"refreshToken"`
	AccessExpiresAt  time.Time `json:"accessExpiresAt"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
	UserID           string    `json:"userId"`
	Role             string    `json:"role"`
}

type WhoAmIResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type CreateAdminRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type UpdateProfileRequest struct {
	FirstName      *string `json:"firstName"`
	LastName       *string `json:"lastName"`
	MobileNumber   *string `json:"mobileNumber"`
	CompanyName    *string `json:"companyName"`
	CompanyWebsite *string `json:"companyWebsite"`
	VatNumber      *string `json:"vatNumber"`
	StreetAddress  *string `json:"streetAddress"`
	City           *string `json:"city"`
	Country        *string `json:"country"`
	State          *string `json:"state"`
	ZipCode        *string `json:"zipCode"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}
