package repo

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound       = errors.New("product not found")
	ErrProductExists         = errors.New("product already exists")
	ErrCategoryExists        = errors.New("category already exists")
	ErrCartNotFound          = errors.New("cart not found")
	ErrItemNotFound          = errors.New("item not found in cart")
	ErrCartEmpty             = errors.New("cart is empty")
	ErrUserAlreadyExist      = errors.New("user already exist")
	ErrTokenExpiredOrRevoked = errors.New("token expired or revoked")
)

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

// IsDuplicate reports a unique violation. pgx and sqlite errors arrive
// translated by gorm; lib/pq errors arrive raw.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
