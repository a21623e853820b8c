package repo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/pearline_shop/internal/models"
	"github.com/Skotchmaster/pearline_shop/internal/testutil"
)

func TestIsDuplicate(t *testing.T) {
	t.Parallel()

	assert.False(t, IsDuplicate(nil))
	assert.True(t, IsDuplicate(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicate(fmt.Errorf("create: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, IsDuplicate(&pq.Error{Code: "23505"}))
	assert.False(t, IsDuplicate(&pq.Error{Code: "23503"}))
	assert.False(t, IsDuplicate(errors.New("boom")))
}

func TestGormRepo_DuplicateBarcodeIsDetected(t *testing.T) {
	t.Parallel()

	r := New(testutil.NewDB(t))
	p := models.Product{Barcode: "A", ProductName: "Soap"}
	require.NoError(t, r.DB.Create(&p).Error)

	dup := models.Product{Barcode: "A", ProductName: "Soap again"}
	err := r.DB.Create(&dup).Error
	require.Error(t, err)
	assert.True(t, IsDuplicate(err))

	err = r.CreateProductIfNotExists(context.Background(), &models.Product{Barcode: "A", ProductName: "x"})
	require.ErrorIs(t, err, ErrProductExists)
}

func TestGormRepo_AddToCart_CreatesCartLazily(t *testing.T) {
	t.Parallel()

	r := New(testutil.NewDB(t))
	ctx := context.Background()
	require.NoError(t, r.DB.Create(&models.Product{Barcode: "A", ProductName: "Soap"}).Error)

	_, err := r.GetCart(ctx, "u1")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.ErrorIs(t, r.AddToCart(ctx, "u1", "MISSING", 1, true), ErrProductNotFound)
	_, err = r.GetCart(ctx, "u1")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound, "failed add must not leave a cart behind")

	require.NoError(t, r.AddToCart(ctx, "u1", "A", 2, true))
	require.NoError(t, r.AddToCart(ctx, "u1", "A", 3, true))

	cart, err := r.GetCart(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	require.NotNil(t, cart.Items[0].Product)
	assert.Equal(t, "Soap", cart.Items[0].Product.ProductName)
}

func TestGormRepo_CreateQuoteFromCart_RollsBackOnBuildError(t *testing.T) {
	t.Parallel()

	r := New(testutil.NewDB(t))
	ctx := context.Background()
	require.NoError(t, r.DB.Create(&models.Product{Barcode: "A", ProductName: "Soap"}).Error)
	require.NoError(t, r.AddToCart(ctx, "u1", "A", 1, true))

	boom := errors.New("boom")
	_, err := r.CreateQuoteFromCart(ctx, "u1", func(*models.Cart) (*models.Quote, error) {
		return nil, boom
	}, true)
	require.ErrorIs(t, err, boom)

	cart, err := r.GetCart(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)

	var n int64
	require.NoError(t, r.DB.Model(&models.Quote{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestGormRepo_QuoteStatusCheckConstraint(t *testing.T) {
	t.Parallel()

	r := New(testutil.NewDB(t))
	q := models.Quote{Email: "a@example.com", UserID: "u1", Status: "Shipped"}
	require.Error(t, r.DB.Create(&q).Error)
}

func TestGormRepo_DeleteUserRemovesCartAndTokens(t *testing.T) {
	t.Parallel()

	r := New(testutil.NewDB(t))
	ctx := context.Background()

	u := models.User{Email: "a@example.com", PasswordHash: "x"}
	require.NoError(t, r.CreateUserIfNotExists(ctx, &u))
	require.ErrorIs(t, r.CreateUserIfNotExists(ctx, &models.User{Email: "A@example.com", PasswordHash: "y"}), ErrUserAlreadyExist)

	require.NoError(t, r.DB.Create(&models.Product{Barcode: "A", ProductName: "Soap"}).Error)
	require.NoError(t, r.AddToCart(ctx, u.ID.String(), "A", 1, true))
	require.NoError(t, r.AddRefreshToken(ctx, &models.RefreshToken{JTI: "j1", TokenHash: "h1", UserID: u.ID}))

	require.NoError(t, r.DeleteUser(ctx, u.ID))

	var carts, items, toks int64
	require.NoError(t, r.DB.Model(&models.Cart{}).Count(&carts).Error)
	require.NoError(t, r.DB.Model(&models.CartItem{}).Count(&items).Error)
	require.NoError(t, r.DB.Model(&models.RefreshToken{}).Count(&toks).Error)
	assert.Zero(t, carts)
	assert.Zero(t, items)
	assert.Zero(t, toks)

	require.ErrorIs(t, r.DeleteUser(ctx, u.ID), gorm.ErrRecordNotFound)
}
