package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/pearline_shop/internal/models"
	"github.com/Skotchmaster/pearline_shop/internal/transport"
)

type fakeIndex struct {
	mu        sync.Mutex
	indexed   map[string]models.Product
	deleted   []string
	hits      []string
	searchErr error
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{indexed: map[string]models.Product{}}
}

func (f *fakeIndex) IndexProduct(_ context.Context, p models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.indexed[p.Barcode] = p
	return nil
}

func (f *fakeIndex) DeleteProduct(_ context.Context, barcode string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.indexed, barcode)
	f.deleted = append(f.deleted, barcode)
	return nil
}

func (f *fakeIndex) Search(_ context.Context, _ string, _, _ int) (int64, []string, error) {
	if f.searchErr != nil {
		return 0, nil, f.searchErr
	}
	return int64(len(f.hits)), f.hits, nil
}

func productReq(barcode, name string) transport.CreateProductRequest {
	return transport.CreateProductRequest{
		Barcode:     barcode,
		ProductName: name,
		CaseSize:    6,
		CasePrice:   dec("12.00"),
		UnitPrice:   dec("2.00"),
	}
}

func TestCatalogService_CreateProduct(t *testing.T) {
	t.Parallel()

	r := newRepo(t)
	idx := newFakeIndex()
	pub := &recordingPublisher{}
	svc := &CatalogService{Repo: r, Index: idx, Events: pub}
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, productReq("5000001", "Soap"))
	require.NoError(t, err)
	assert.Equal(t, "5000001", p.Barcode)
	assert.True(t, p.IsAvailable)
	assert.Contains(t, idx.indexed, "5000001")
	assert.Equal(t, []string{"product_created"}, pub.types())

	_, err = svc.CreateProduct(ctx, productReq("5000001", "Other"))
	require.ErrorIs(t, err, ErrConflict)

	off := false
	req := productReq("5000002", "Hidden")
	req.IsAvailable = &off
	p, err = svc.CreateProduct(ctx, req)
	require.NoError(t, err)
	assert.False(t, p.IsAvailable)
}

func TestCatalogService_CreateProduct_Validation(t *testing.T) {
	t.Parallel()

	svc := &CatalogService{Repo: newRepo(t)}
	missingCat := uint(42)

	tests := []struct {
		name string
		req  transport.CreateProductRequest
	}{
		{name: "no barcode", req: productReq("", "Soap")},
		{name: "no name", req: productReq("1", " ")},
		{name: "negative price", req: func() transport.CreateProductRequest {
			r := productReq("1", "Soap")
			r.UnitPrice = dec("-1")
			return r
		}()},
		{name: "unknown category", req: func() transport.CreateProductRequest {
			r := productReq("1", "Soap")
			r.CategoryID = &missingCat
			return r
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProduct(context.Background(), tt.req)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCatalogService_UpdateAndDelete(t *testing.T) {
	t.Parallel()

	r := newRepo(t)
	idx := newFakeIndex()
	svc := &CatalogService{Repo: r, Index: idx}
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, productReq("A", "Soap"))
	require.NoError(t, err)
	cat, err := svc.CreateCategory(ctx, "Bath")
	require.NoError(t, err)

	name := "Lavender Soap"
	price := dec("14.50")
	p, err := svc.UpdateProduct(ctx, "A", transport.PatchProductRequest{ProductName: &name, CasePrice: &price, CategoryID: &cat.ID})
	require.NoError(t, err)
	assert.Equal(t, "Lavender Soap", p.ProductName)

	got, err := svc.GetProduct(ctx, "A")
	require.NoError(t, err)
	assert.True(t, got.CasePrice.Equal(dec("14.5")))
	assert.True(t, got.UnitPrice.Equal(dec("2")), "untouched field kept")
	require.NotNil(t, got.Category)
	assert.Equal(t, "Bath", got.Category.Name)

	neg := dec("-1")
	_, err = svc.UpdateProduct(ctx, "A", transport.PatchProductRequest{UnitPrice: &neg})
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.UpdateProduct(ctx, "NOPE", transport.PatchProductRequest{ProductName: &name})
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.DeleteProduct(ctx, "A"))
	assert.Equal(t, []string{"A"}, idx.deleted)
	require.ErrorIs(t, svc.DeleteProduct(ctx, "A"), ErrNotFound)
	_, err = svc.GetProduct(ctx, "A")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogService_Categories(t *testing.T) {
	t.Parallel()

	r := newRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	bath, err := svc.CreateCategory(ctx, "Bath")
	require.NoError(t, err)
	_, err = svc.CreateCategory(ctx, "bath")
	require.ErrorIs(t, err, ErrConflict)
	_, err = svc.CreateCategory(ctx, "")
	require.ErrorIs(t, err, ErrValidation)

	for _, b := range []string{"1", "2"} {
		req := productReq(b, "P"+b)
		req.CategoryID = &bath.ID
		_, err := svc.CreateProduct(ctx, req)
		require.NoError(t, err)
	}
	_, err = svc.CreateProduct(ctx, productReq("3", "Loose"))
	require.NoError(t, err)

	inCat, err := svc.ListProductsByCategory(ctx, bath.ID)
	require.NoError(t, err)
	assert.Len(t, inCat, 2)

	_, err = svc.ListProductsByCategory(ctx, 999)
	require.ErrorIs(t, err, ErrNotFound)

	n, err := svc.DeleteProductsByCategory(ctx, bath.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	_, err = svc.DeleteProductsByCategory(ctx, bath.ID)
	require.ErrorIs(t, err, ErrNotFound)

	page, err := svc.ListProducts(ctx, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.TotalItems)

	cats, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 1)
}

func TestCatalogService_BulkImport(t *testing.T) {
	t.Parallel()

	r := newRepo(t)
	idx := newFakeIndex()
	svc := &CatalogService{Repo: r, Index: idx}
	ctx := context.Background()

	rows := []transport.CreateProductRequest{productReq("1", "Soap"), productReq("2", "Sponge"), productReq("3", "Towel")}
	rows[0].CategoryName = "Bath"
	rows[1].CategoryName = "bath"
	rows[2].CategoryName = "Linen"

	n, err := svc.BulkImport(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Len(t, idx.indexed, 3)

	cats, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 2, "category names match case-insensitively")

	// all or nothing: an existing barcode aborts the batch
	_, err = svc.BulkImport(ctx, []transport.CreateProductRequest{productReq("4", "New"), productReq("1", "Dup")})
	require.ErrorIs(t, err, ErrConflict)
	_, err = svc.GetProduct(ctx, "4")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.BulkImport(ctx, []transport.CreateProductRequest{productReq("5", "A"), productReq("5", "B")})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.BulkImport(ctx, nil)
	require.ErrorIs(t, err, ErrValidation)
}

func TestCatalogService_SearchProducts(t *testing.T) {
	t.Parallel()

	r := newRepo(t)
	seedProduct(t, r, "A", "Soap", "1", "1")
	seedProduct(t, r, "B", "Sponge", "1", "1")
	ctx := context.Background()

	_, err := (&CatalogService{Repo: r}).SearchProducts(ctx, "soap", 1, 10)
	require.ErrorIs(t, err, ErrUnavailable)

	idx := newFakeIndex()
	idx.hits = []string{"B", "STALE", "A"}
	svc := &CatalogService{Repo: r, Index: idx}

	_, err = svc.SearchProducts(ctx, "  ", 1, 10)
	require.ErrorIs(t, err, ErrValidation)

	res, err := svc.SearchProducts(ctx, "s", 1, 10)
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "B", res.Items[0].Barcode, "hit order kept")
	assert.Equal(t, "A", res.Items[1].Barcode)

	idx.searchErr = errors.New("cluster down")
	_, err = svc.SearchProducts(ctx, "s", 1, 10)
	require.ErrorIs(t, err, ErrUnavailable)
}
