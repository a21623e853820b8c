package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/pearline_shop/internal/models"
)

func (r *GormRepo) AddRefreshToken(ctx context.Context, t *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *GormRepo) FindRefreshByJTI(ctx context.Context, jti string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := r.DB.WithContext(ctx).Where("jti = ?", jti).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// RotateRefreshToken revokes the token identified by oldJTI and oldHash and
// stores next, atomically. A missing, revoked or expired old token yields
// ErrTokenExpiredOrRevoked and nothing changes.
func (r *GormRepo) RotateRefreshToken(ctx context.Context, oldJTI, oldHash string, next *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var old models.RefreshToken
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("jti = ?", oldJTI).First(&old).Error; err != nil {
			if isNotFound(err) {
				return ErrTokenExpiredOrRevoked
			}
			return err
		}
		if old.Revoked || old.TokenHash != oldHash || old.ExpiresAt.Before(time.Now()) {
			return ErrTokenExpiredOrRevoked
		}

		if err := tx.Model(&old).Update("revoked", true).Error; err != nil {
			return err
		}
		return tx.Create(next).Error
	})
}

func (r *GormRepo) RevokeByHash(ctx context.Context, hash string) error {
	return r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token_hash = ?", hash).
		Update("revoked", true).Error
}
