package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/pearline_shop/internal/models"
)

func (r *GormRepo) CreateMessage(ctx context.Context, m *models.ContactMessage) error {
	return r.DB.WithContext(ctx).Create(m).Error
}

func (r *GormRepo) ListMessages(ctx context.Context) ([]models.ContactMessage, error) {
	var msgs []models.ContactMessage
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *GormRepo) GetMessage(ctx context.Context, id uint) (*models.ContactMessage, error) {
	var m models.ContactMessage
	if err := r.DB.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *GormRepo) DeleteMessage(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.ContactMessage{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) DeleteAllMessages(ctx context.Context) (int64, error) {
	res := r.DB.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.ContactMessage{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return res.RowsAffected, nil
}
