package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/pearline_shop/internal/models"
	"github.com/Skotchmaster/pearline_shop/internal/mykafka"
	"github.com/Skotchmaster/pearline_shop/internal/repo"
	"github.com/Skotchmaster/pearline_shop/internal/transport"
	"github.com/Skotchmaster/pearline_shop/internal/util"
	"github.com/Skotchmaster/pearline_shop/pkg/logging"
)

type ProductIndexer interface {
	IndexProduct(ctx context.Context, p models.Product) error
	DeleteProduct(ctx context.Context, barcode string) error
	Search(ctx context.Context, query string, from, size int) (int64, []string, error)
}

type CatalogService struct {
	Repo   *repo.GormRepo
	Events EventPublisher
	Index  ProductIndexer
}

func (s *CatalogService) ListProducts(ctx context.Context, page, size int) (*transport.Paged[models.Product], error) {
	page, size = util.Clamp(page, size, util.DefaultPageSize, util.MaxPageSize)
	total, items, err := s.Repo.ListProducts(ctx, (page-1)*size, size)
	if err != nil {
		return nil, err
	}
	return &transport.Paged[models.Product]{Page: page, PageSize: size, TotalItems: total, Items: items}, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, barcode string) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, strings.TrimSpace(barcode))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product %s not found: %w", barcode, ErrNotFound)
	}
	return p, err
}

func (s *CatalogService) ListProductsByCategory(ctx context.Context, categoryID uint) ([]models.Product, error) {
	if _, err := s.Repo.GetCategory(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %d not found: %w", categoryID, ErrNotFound)
		}
		return nil, err
	}
	return s.Repo.ListProductsByCategory(ctx, categoryID)
}

func validateProduct(req transport.CreateProductRequest) error {
	if strings.TrimSpace(req.Barcode) == "" {
		return fmt.Errorf("barcode required: %w", ErrValidation)
	}
	if strings.TrimSpace(req.ProductName) == "" {
		return fmt.Errorf("product name required: %w", ErrValidation)
	}
	if req.CasePrice.IsNegative() || req.UnitPrice.IsNegative() {
		return fmt.Errorf("price cannot be negative: %w", ErrValidation)
	}
	if req.CaseSize < 0 || req.CasesPerLayer < 0 || req.CasesPerPallet < 0 || req.LeadTimeDays < 0 {
		return fmt.Errorf("case sizes and lead time cannot be negative: %w", ErrValidation)
	}
	return nil
}

func productFromRequest(req transport.CreateProductRequest) models.Product {
	p := models.Product{
		Barcode:        strings.TrimSpace(req.Barcode),
		ProductName:    strings.TrimSpace(req.ProductName),
		Brand:          req.Brand,
		ProductImage:   req.ProductImage,
		CaseSize:       req.CaseSize,
		CasesPerLayer:  req.CasesPerLayer,
		CasesPerPallet: req.CasesPerPallet,
		LeadTimeDays:   req.LeadTimeDays,
		CasePrice:      req.CasePrice,
		UnitPrice:      req.UnitPrice,
		IsAvailable:    true,
		Description:    req.Description,
		Ingredients:    req.Ingredients,
		Usage:          req.Usage,
		CategoryID:     req.CategoryID,
	}
	if req.IsAvailable != nil {
		p.IsAvailable = *req.IsAvailable
	}
	return p
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}
	if req.CategoryID != nil {
		if _, err := s.Repo.GetCategory(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("category %d not found: %w", *req.CategoryID, ErrValidation)
			}
			return nil, err
		}
	}

	p := productFromRequest(req)
	if err := s.Repo.CreateProductIfNotExists(ctx, &p); err != nil {
		if errors.Is(err, repo.ErrProductExists) || repo.IsDuplicate(err) {
			return nil, fmt.Errorf("product %s already exists: %w", p.Barcode, ErrConflict)
		}
		return nil, err
	}

	created, err := s.Repo.GetProduct(ctx, p.Barcode)
	if err != nil {
		return nil, err
	}
	s.indexProduct(ctx, *created)
	s.productEvent(ctx, "product_created", created.Barcode, created.ProductName)
	return created, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, barcode string, req transport.PatchProductRequest) (*models.Product, error) {
	p, err := s.GetProduct(ctx, barcode)
	if err != nil {
		return nil, err
	}

	if req.ProductName != nil {
		if strings.TrimSpace(*req.ProductName) == "" {
			return nil, fmt.Errorf("product name cannot be empty: %w", ErrValidation)
		}
		p.ProductName = strings.TrimSpace(*req.ProductName)
	}
	if req.CasePrice != nil {
		if req.CasePrice.IsNegative() {
			return nil, fmt.Errorf("price cannot be negative: %w", ErrValidation)
		}
		p.CasePrice = *req.CasePrice
	}
	if req.UnitPrice != nil {
		if req.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("price cannot be negative: %w", ErrValidation)
		}
		p.UnitPrice = *req.UnitPrice
	}
	if req.CategoryID != nil {
		cat, err := s.Repo.GetCategory(ctx, *req.CategoryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("category %d not found: %w", *req.CategoryID, ErrValidation)
			}
			return nil, err
		}
		p.CategoryID = &cat.ID
		p.Category = cat
	}
	setString(&p.Brand, req.Brand)
	setString(&p.ProductImage, req.ProductImage)
	setString(&p.Description, req.Description)
	setString(&p.Ingredients, req.Ingredients)
	setString(&p.Usage, req.Usage)
	setInt(&p.CaseSize, req.CaseSize)
	setInt(&p.CasesPerLayer, req.CasesPerLayer)
	setInt(&p.CasesPerPallet, req.CasesPerPallet)
	setInt(&p.LeadTimeDays, req.LeadTimeDays)
	if req.IsAvailable != nil {
		p.IsAvailable = *req.IsAvailable
	}

	if err := s.Repo.SaveProduct(ctx, p); err != nil {
		return nil, err
	}

	s.indexProduct(ctx, *p)
	s.productEvent(ctx, "product_updated", p.Barcode, p.ProductName)
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, barcode string) error {
	barcode = strings.TrimSpace(barcode)
	if err := s.Repo.DeleteProduct(ctx, barcode); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product %s not found: %w", barcode, ErrNotFound)
		}
		return err
	}

	s.unindexProduct(ctx, barcode)
	s.productEvent(ctx, "product_deleted", barcode, "")
	return nil
}

func (s *CatalogService) DeleteProductsByCategory(ctx context.Context, categoryID uint) (int, error) {
	barcodes, err := s.Repo.DeleteProductsByCategory(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("no products in category %d: %w", categoryID, ErrNotFound)
		}
		return 0, err
	}

	for _, b := range barcodes {
		s.unindexProduct(ctx, b)
		s.productEvent(ctx, "product_deleted", b, "")
	}
	return len(barcodes), nil
}

// BulkImport validates every row first; the insert is all or nothing.
func (s *CatalogService) BulkImport(ctx context.Context, rows []transport.CreateProductRequest) (int, error) {
	if len(rows) == 0 {
		return 0, fmt.Errorf("no products to import: %w", ErrValidation)
	}

	seen := make(map[string]struct{}, len(rows))
	imports := make([]repo.ProductImport, 0, len(rows))
	for i, row := range rows {
		if err := validateProduct(row); err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
		b := strings.TrimSpace(row.Barcode)
		if _, dup := seen[b]; dup {
			return 0, fmt.Errorf("row %d: duplicate barcode %s: %w", i+1, b, ErrValidation)
		}
		seen[b] = struct{}{}
		imports = append(imports, repo.ProductImport{Product: productFromRequest(row), CategoryName: row.CategoryName})
	}

	products, err := s.Repo.BulkImport(ctx, imports)
	if err != nil {
		if repo.IsDuplicate(err) {
			return 0, fmt.Errorf("a barcode already exists: %w", ErrConflict)
		}
		return 0, err
	}

	logging.FromContext(ctx).Info("products_imported", "count", len(products))
	for _, p := range products {
		s.indexProduct(ctx, p)
	}
	publish(ctx, s.Events, mykafka.TopicProductEvents, "bulk", map[string]any{
		"type":  "products_imported",
		"count": len(products),
	})
	return len(products), nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name required: %w", ErrValidation)
	}

	cat := models.Category{Name: name}
	if err := s.Repo.CreateCategoryIfNotExists(ctx, &cat); err != nil {
		if errors.Is(err, repo.ErrCategoryExists) || repo.IsDuplicate(err) {
			return nil, fmt.Errorf("category %s already exists: %w", name, ErrConflict)
		}
		return nil, err
	}
	return &cat, nil
}

// SearchProducts asks the index for matching barcodes and loads the
// products from the database in hit order.
func (s *CatalogService) SearchProducts(ctx context.Context, q string, page, size int) (*transport.Paged[models.Product], error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, fmt.Errorf("query required: %w", ErrValidation)
	}
	if s.Index == nil {
		return nil, ErrSearchUnavailable
	}

	page, size = util.Clamp(page, size, util.DefaultPageSize, util.MaxPageSize)
	total, barcodes, err := s.Index.Search(ctx, q, (page-1)*size, size)
	if err != nil {
		return nil, fmt.Errorf("search products: %v: %w", err, ErrUnavailable)
	}

	found, err := s.Repo.GetProductsByBarcodes(ctx, barcodes)
	if err != nil {
		return nil, err
	}
	byBarcode := make(map[string]models.Product, len(found))
	for _, p := range found {
		byBarcode[p.Barcode] = p
	}
	items := make([]models.Product, 0, len(barcodes))
	for _, b := range barcodes {
		if p, ok := byBarcode[b]; ok {
			items = append(items, p)
		}
	}

	return &transport.Paged[models.Product]{Page: page, PageSize: size, TotalItems: total, Items: items}, nil
}

func (s *CatalogService) indexProduct(ctx context.Context, p models.Product) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexProduct(ctx, p); err != nil {
		logging.FromContext(ctx).Error("es_index_error", "barcode", p.Barcode, "error", err)
	}
}

func (s *CatalogService) unindexProduct(ctx context.Context, barcode string) {
	if s.Index == nil {
		return
	}
	if err := s.Index.DeleteProduct(ctx, barcode); err != nil {
		logging.FromContext(ctx).Error("es_delete_error", "barcode", barcode, "error", err)
	}
}

func (s *CatalogService) productEvent(ctx context.Context, typ, barcode, name string) {
	event := map[string]any{"type": typ, "barcode": barcode}
	if name != "" {
		event["name"] = name
	}
	publish(ctx, s.Events, mykafka.TopicProductEvents, barcode, event)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
