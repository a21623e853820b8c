package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/pearline_shop/internal/models"
)

type ProductImport struct {
	Product      models.Product
	CategoryName string
}

func (r *GormRepo) GetProduct(ctx context.Context, barcode string) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Preload("Category").Where("barcode = ?", barcode).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) ListProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Product
	if err := r.DB.WithContext(ctx).Preload("Category").Order("barcode ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) ListProductsByCategory(ctx context.Context, categoryID uint) ([]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).Preload("Category").
		Where("category_id = ?", categoryID).
		Order("barcode ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetProductsByBarcodes(ctx context.Context, barcodes []string) ([]models.Product, error) {
	if len(barcodes) == 0 {
		return []models.Product{}, nil
	}
	var items []models.Product
	if err := r.DB.WithContext(ctx).Preload("Category").Where("barcode IN ?", barcodes).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateProductIfNotExists(ctx context.Context, p *models.Product) error {
	tx := r.DB.WithContext(ctx).Omit("Category").Where("barcode = ?", p.Barcode).FirstOrCreate(p)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrProductExists
	}
	return nil
}

func (r *GormRepo) SaveProduct(ctx context.Context, p *models.Product) error {
	return r.DB.WithContext(ctx).Omit("Category").Save(p).Error
}

func (r *GormRepo) DeleteProduct(ctx context.Context, barcode string) error {
	res := r.DB.WithContext(ctx).Where("barcode = ?", barcode).Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteProductsByCategory removes every product of the category and
// returns the deleted barcodes.
func (r *GormRepo) DeleteProductsByCategory(ctx context.Context, categoryID uint) ([]string, error) {
	var barcodes []string
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).Where("category_id = ?", categoryID).Pluck("barcode", &barcodes).Error; err != nil {
			return err
		}
		if len(barcodes) == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("barcode IN ?", barcodes).Delete(&models.Product{}).Error
	})
	if err != nil {
		return nil, err
	}
	return barcodes, nil
}

// BulkImport resolves categories by name, creating the missing ones, and
// inserts all products. Any failure rolls the whole batch back.
func (r *GormRepo) BulkImport(ctx context.Context, rows []ProductImport) ([]models.Product, error) {
	products := make([]models.Product, 0, len(rows))
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := map[string]uint{}
		for _, row := range rows {
			p := row.Product
			name := strings.TrimSpace(row.CategoryName)
			if name != "" {
				id, ok := categories[strings.ToLower(name)]
				if !ok {
					cat := models.Category{Name: name}
					if err := tx.Where("LOWER(name) = ?", strings.ToLower(name)).FirstOrCreate(&cat).Error; err != nil {
						return err
					}
					id = cat.ID
					categories[strings.ToLower(name)] = id
				}
				p.CategoryID = &id
			}
			products = append(products, p)
		}
		if len(products) == 0 {
			return nil
		}
		return tx.Omit("Category").CreateInBatches(&products, 100).Error
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *GormRepo) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var cat models.Category
	if err := r.DB.WithContext(ctx).First(&cat, id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *GormRepo) CreateCategoryIfNotExists(ctx context.Context, c *models.Category) error {
	tx := r.DB.WithContext(ctx).Where("LOWER(name) = ?", strings.ToLower(c.Name)).FirstOrCreate(c)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrCategoryExists
	}
	return nil
}

func productExists(tx *gorm.DB, barcode string) error {
	var count int64
	if err := tx.Model(&models.Product{}).Where("barcode = ?", barcode).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrProductNotFound
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
