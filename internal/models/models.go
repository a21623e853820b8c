package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	RoleUser       = "User"
	RoleAdmin      = "Admin"
	RoleSuperAdmin = "SuperAdmin"
)

func IsAdminRole(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}

type Category struct {
	ID   uint   `gorm:"primaryKey"          json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

type Product struct {
	Barcode        string          `gorm:"primaryKey"                json:"barcode"`
	ProductName    string          `gorm:"not null"                  json:"productName"`
	Brand          string          `json:"brand"`
	ProductImage   string          `json:"productImage"`
	CaseSize       int             `json:"caseSize"`
	CasesPerLayer  int             `json:"casesPerLayer"`
	CasesPerPallet int             `json:"casesPerPallet"`
	LeadTimeDays   int             `json:"leadTimeDays"`
	CasePrice      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"casePrice"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"unitPrice"`
	IsAvailable    bool            `gorm:"not null"                  json:"isAvailable"`
	Description    string          `json:"description"`
	Ingredients    string          `json:"ingredients"`
	Usage          string          `json:"usage"`
	CategoryID     *uint           `gorm:"index"                     json:"categoryId"`
	Category       *Category       `gorm:"constraint:OnDelete:SET NULL" json:"category,omitempty"`
}

type Cart struct {
	ID     uint       `gorm:"primaryKey"                        json:"id"`
	UserID string     `gorm:"uniqueIndex;not null"              json:"userId"`
	Items  []CartItem `gorm:"constraint:OnDelete:CASCADE"       json:"items"`
}

type CartItem struct {
	ID             uint     `gorm:"primaryKey"                                      json:"id"`
	CartID         uint     `gorm:"uniqueIndex:idx_cart_line;not null"              json:"cartId"`
	ProductBarcode string   `gorm:"uniqueIndex:idx_cart_line;not null"              json:"barcode"`
	Product        *Product `gorm:"foreignKey:ProductBarcode;references:Barcode;constraint:OnDelete:CASCADE" json:"product,omitempty"`
	Quantity       int      `gorm:"not null;check:quantity > 0"                     json:"quantity"`
	IsCase         bool     `gorm:"uniqueIndex:idx_cart_line;not null"              json:"isCase"`
}

type ContactMessage struct {
	ID        uint      `gorm:"primaryKey"       json:"id"`
	FirstName string    `gorm:"not null"         json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `gorm:"not null"         json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `gorm:"not null"         json:"message"`
	CreatedAt time.Time `gorm:"index"            json:"createdAt"`
}

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"  json:"id"`
	Email          string    `gorm:"uniqueIndex;not null"  json:"email"`
	PasswordHash   string    `gorm:"not null"              json:"-"`
	Role           string    `gorm:"not null"              json:"role"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	MobileNumber   string    `json:"mobileNumber"`
	CompanyName    string    `json:"companyName"`
	CompanyWebsite string    `json:"companyWebsite"`
	VatNumber      string    `json:"vatNumber"`
	StreetAddress  string    `json:"streetAddress"`
	City           string    `json:"city"`
	Country        string    `json:"country"`
	State          string    `json:"state"`
	ZipCode        string    `json:"zipCode"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"           json:"id"`
	JTI       string    `gorm:"uniqueIndex;not null" json:"jti"`
	TokenHash string    `gorm:"uniqueIndex;not null" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null"             json:"expires_at"`
	Revoked   bool      `gorm:"default:false"        json:"revoked"`
}
