package repo

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/pearline_shop/internal/models"
)

func (r *GormRepo) CreateUserIfNotExists(ctx context.Context, u *models.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	tx := r.DB.WithContext(ctx).Where("email = ?", u.Email).FirstOrCreate(u)
	if tx.Error != nil {
		if IsDuplicate(tx.Error) {
			return ErrUserAlreadyExist
		}
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrUserAlreadyExist
	}
	return nil
}

func (r *GormRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) SaveUser(ctx context.Context, u *models.User) error {
	return r.DB.WithContext(ctx).Save(u).Error
}

func (r *GormRepo) ListUsers(ctx context.Context, offset, limit int) (int64, []models.User, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var users []models.User
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Order("email ASC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return 0, nil, err
	}
	return total, users, nil
}

// DeleteUser removes the user with their cart and refresh tokens.
// Quotes are business records and stay.
func (r *GormRepo) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			return err
		}

		var cartIDs []uint
		if err := tx.Model(&models.Cart{}).Where("user_id = ?", id.String()).Pluck("id", &cartIDs).Error; err != nil {
			return err
		}
		if len(cartIDs) > 0 {
			if err := tx.Where("cart_id IN ?", cartIDs).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", cartIDs).Delete(&models.Cart{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}
