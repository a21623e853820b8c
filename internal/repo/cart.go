package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/pearline_shop/internal/models"
)

func preloadCartItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("cart_items.id ASC")
	})
}

func (r *GormRepo) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	if err := preloadCartItems(r.DB.WithContext(ctx)).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddToCart creates the cart on first use and merges quantity into an existing
// line with the same barcode and pack type.
func (r *GormRepo) AddToCart(ctx context.Context, userID, barcode string, quantity int, isCase bool) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := productExists(tx, barcode); err != nil {
			return err
		}

		cart := models.Cart{UserID: userID}
		if err := tx.Where("user_id = ?", userID).FirstOrCreate(&cart).Error; err != nil {
			return err
		}

		res := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_barcode = ? AND is_case = ?", cart.ID, barcode, isCase).
			Update("quantity", gorm.Expr("quantity + ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		item := models.CartItem{
			CartID:         cart.ID,
			ProductBarcode: barcode,
			Quantity:       quantity,
			IsCase:         isCase,
		}
		return tx.Omit("Product").Create(&item).Error
	})
}

func (r *GormRepo) RemoveFromCart(ctx context.Context, userID, barcode string, isCase bool) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if isNotFound(err) {
				return ErrCartNotFound
			}
			return err
		}

		res := tx.Where("cart_id = ? AND product_barcode = ? AND is_case = ?", cart.ID, barcode, isCase).
			Delete(&models.CartItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrItemNotFound
		}
		return nil
	})
}

func (r *GormRepo) ClearCart(ctx context.Context, userID string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if isNotFound(err) {
				return ErrCartNotFound
			}
			return err
		}
		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
}
