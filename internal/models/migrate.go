package models

import "gorm.io/gorm"

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Category{},
		&Product{},
		&Cart{},
		&CartItem{},
		&Quote{},
		&QuoteItem{},
		&ContactMessage{},
		&User{},
		&RefreshToken{},
	)
}
