package repo

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/pearline_shop/internal/models"
)

type QuoteFilter struct {
	From  *time.Time
	To    *time.Time
	Email string
}

// BuildQuoteFunc turns a loaded cart into an unsaved quote.
type BuildQuoteFunc func(cart *models.Cart) (*models.Quote, error)

func preloadQuoteItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("quote_items.id ASC")
	})
}

// CreateQuoteFromCart loads the user's cart, builds the quote from it and
// stores quote and items in one transaction. clearCart drops the cart lines
// in the same transaction.
func (r *GormRepo) CreateQuoteFromCart(ctx context.Context, userID string, build BuildQuoteFunc, clearCart bool) (*models.Quote, error) {
	var quote *models.Quote
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := preloadCartItems(tx).
			Preload("Items.Product").
			Preload("Items.Product.Category").
			Where("user_id = ?", userID).
			First(&cart).Error; err != nil {
			if isNotFound(err) {
				return ErrCartEmpty
			}
			return err
		}
		if len(cart.Items) == 0 {
			return ErrCartEmpty
		}

		q, err := build(&cart)
		if err != nil {
			return err
		}
		if err := tx.Create(q).Error; err != nil {
			return err
		}

		if clearCart {
			if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
		}
		quote = q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return quote, nil
}

func applyQuoteFilter(db *gorm.DB, f QuoteFilter) *gorm.DB {
	if f.From != nil {
		db = db.Where("date_created >= ?", f.From.UTC())
	}
	if f.To != nil {
		db = db.Where("date_created <= ?", f.To.UTC())
	}
	if email := strings.TrimSpace(f.Email); email != "" {
		db = db.Where("LOWER(email) LIKE ?", "%"+strings.ToLower(email)+"%")
	}
	return db
}

func (r *GormRepo) ListQuotes(ctx context.Context, f QuoteFilter, offset, limit int) (int64, []models.Quote, error) {
	var total int64
	if err := applyQuoteFilter(r.DB.WithContext(ctx).Model(&models.Quote{}), f).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var quotes []models.Quote
	if err := applyQuoteFilter(r.DB.WithContext(ctx), f).
		Order("date_created DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&quotes).Error; err != nil {
		return 0, nil, err
	}
	return total, quotes, nil
}

func (r *GormRepo) ListAllQuotes(ctx context.Context) ([]models.Quote, error) {
	var quotes []models.Quote
	if err := preloadQuoteItems(r.DB.WithContext(ctx)).
		Order("date_created DESC").Order("id DESC").
		Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

func (r *GormRepo) ListQuotesByUser(ctx context.Context, userID string, offset, limit int) (int64, []models.Quote, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Quote{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var quotes []models.Quote
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).
		Order("date_created DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&quotes).Error; err != nil {
		return 0, nil, err
	}
	return total, quotes, nil
}

// CountQuoteItems returns the number of lines per quote id.
func (r *GormRepo) CountQuoteItems(ctx context.Context, quoteIDs []uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(quoteIDs))
	if len(quoteIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		QuoteID uint
		N       int
	}
	if err := r.DB.WithContext(ctx).Model(&models.QuoteItem{}).
		Select("quote_id, COUNT(*) AS n").
		Where("quote_id IN ?", quoteIDs).
		Group("quote_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.QuoteID] = row.N
	}
	return counts, nil
}

func (r *GormRepo) GetQuote(ctx context.Context, id uint) (*models.Quote, error) {
	var quote models.Quote
	if err := preloadQuoteItems(r.DB.WithContext(ctx)).First(&quote, id).Error; err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *GormRepo) GetUserQuote(ctx context.Context, userID string, id uint) (*models.Quote, error) {
	var quote models.Quote
	if err := preloadQuoteItems(r.DB.WithContext(ctx)).
		Where("id = ? AND user_id = ?", id, userID).
		First(&quote).Error; err != nil {
		return nil, err
	}
	return &quote, nil
}

// UpdateQuoteStatus stores status and returns the previous one.
func (r *GormRepo) UpdateQuoteStatus(ctx context.Context, id uint, status models.QuoteStatus) (models.QuoteStatus, error) {
	var old models.QuoteStatus
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var quote models.Quote
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id", "status").First(&quote, id).Error; err != nil {
			return err
		}
		old = quote.Status
		return tx.Model(&quote).Update("status", status).Error
	})
	if err != nil {
		return "", err
	}
	return old, nil
}

func (r *GormRepo) DeleteQuote(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var quote models.Quote
		if err := tx.Select("id").First(&quote, id).Error; err != nil {
			return err
		}
		if err := tx.Where("quote_id = ?", id).Delete(&models.QuoteItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&quote).Error
	})
}

// DeleteAllQuotes wipes every quote with its items and returns how many
// quotes were removed. gorm.ErrRecordNotFound when there was nothing to delete.
func (r *GormRepo) DeleteAllQuotes(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Quote{}).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&models.QuoteItem{}).Error; err != nil {
			return err
		}
		return all.Delete(&models.Quote{}).Error
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
