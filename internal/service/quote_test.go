package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/pearline_shop/internal/models"
	"github.com/Skotchmaster/pearline_shop/internal/repo"
)

var fixedNow = time.Date(2026, 5, 4, 12, 30, 0, 0, time.UTC)

func newQuoteService(r *repo.GormRepo, pub EventPublisher) *QuoteService {
	return &QuoteService{
		Repo:    r,
		Events:  pub,
		TaxRate: decimal.Zero,
		Now:     func() time.Time { return fixedNow },
	}
}

// fillCart puts 3 cases of A at 10.00 and 5 units of B at 2.00 into the cart.
func fillCart(t *testing.T, r *repo.GormRepo, userID string) {
	t.Helper()

	seedProduct(t, r, "A", "Soap", "10.00", "1.00")
	seedProduct(t, r, "B", "Sponge", "20.00", "2.00")
	ctx := context.Background()
	require.NoError(t, r.AddToCart(ctx, userID, "A", 3, true))
	require.NoError(t, r.AddToCart(ctx, userID, "B", 5, false))
}

func TestQuoteService_Submit_WorkedExample(t *testing.T) {
	t.Parallel()

	r := newRepo(t)
	fillCart(t, r, "user-1")
	pub := &recordingPublisher{}
	svc := newQuoteService(r, pub)
	ctx := context.Background()

	res, err := svc.Submit(ctx, SubmitQuoteInput{UserID: "user-1", UserEmail: "buyer@example.com", Comments: " pallet please "})
	require.NoError(t, err)
	assert.NotZero(t, res.QuoteID)
	assert.Equal(t, "40.00", res.Total.StringFixed(2))

	q, err := r.GetQuote(ctx, res.QuoteID)
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", q.Email)
	assert.Equal(t, "pallet please", q.Comments)
	assert.Equal(t, models.QuoteStatusPending, q.Status)
	assert.True(t, q.DateCreated.Equal(fixedNow))
	assert.True(t, q.TotalPrice.Equal(dec("40")))
	assert.True(t, q.Tax.IsZero())

	require.Len(t, q.Items, 2)
	assert.Equal(t, "A", q.Items[0].Barcode)
	assert.True(t, q.Items[0].IsCase)
	assert.True(t, q.Items[0].Subtotal.Equal(dec("30")))
	assert.Equal(t, "B", q.Items[1].Barcode)
	assert.False(t, q.Items[1].IsCase)
	assert.True(t, q.Items[1].Subtotal.Equal(dec("10")))

	sum := decimal.Zero
	for _, it := range q.Items {
		sum = sum.Add(it.Subtotal)
	}
	assert.True(t, q.TotalPrice.Equal(sum.Round(2)))

	// cart is kept unless the clear policy is on
	cart, err := r.GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)

	assert.Equal(t, []string{"quote_submitted"}, pub.types())
}

func TestQuoteService_Submit_ExplicitEmailWins(t *testing.T) {
	t.Parallel()

	r := newRepo(t)
	fillCart(t, r, "user-1")
	svc := newQuoteService(r, nil)

	res, err := svc.Submit(context.Background(), SubmitQuoteInput{UserID: "user-1", UserEmail: "login@example.com", Email: "purchasing@example.com"})
	require.NoError(t, err)

	q, err := r.GetQuote(context.Background(), res.QuoteID)
	require.NoError(t, err)
	assert.Equal(t, "purchasing@example.com", q.Email)
}

func TestQuoteService_Submit_WithTax(t *testing.T) {
	t.Parallel()

	r := newRepo(t)
	fillCart(t, r, "user-1")
	svc := newQuoteService(r, nil)
	svc.TaxRate = dec("0.075")

	res, err := svc.Submit(context.Background(), SubmitQuoteInput{UserID: "user-1", UserEmail: "b@example.com"})
	require.NoError(t, err)
	// 40.00 * 0.075 = 3.00
	assert.Equal(t, "43.00", res.Total.StringFixed(2))

	q, err := r.GetQuote(context.Background(), res.QuoteID)
	require.NoError(t, err)
	assert.Equal(t, "3.00", q.Tax.StringFixed(2))
	assert.Equal(t, "40.00", q.Subtotal.StringFixed(2))
}

func TestQuoteService_Submit_EmptyCart(t *testing.T) {
	t.Parallel()

	r := newRepo(t)
	seedProduct(t, r, "A", "Soap", "10.00", "1.00")
	svc := newQuoteService(r, nil)
	ctx := context.Background()

	_, err := svc.Submit(ctx, SubmitQuoteInput{UserID: "user-1", UserEmail: "b@example.com"})
	require.ErrorIs(t, err, ErrEmptyCart, "no cart at all")
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Cart is empty", err.Error()[:len("Cart is empty")])

	require.NoError(t, r.AddToCart(ctx, "user-1", "A", 1, true))
	require.NoError(t, r.ClearCart(ctx, "user-1"))

	_, err = svc.Submit(ctx, SubmitQuoteInput{UserID: "user-1", UserEmail: "b@example.com"})
	require.ErrorIs(t, err, ErrEmptyCart, "cart without lines")

	var quotes, items int64
	require.NoError(t, r.DB.Model(&models.Quote{}).Count(&quotes).Error)
	require.NoError(t, r.DB.Model(&models.QuoteItem{}).Count(&items).Error)
	assert.Zero(t, quotes)
	assert.Zero(t, items)
}

func TestQuoteService_Submit_Validation(t *testing.T) {
	t.Parallel()

	svc := newQuoteService(newRepo(t), nil)

	_, err := svc.Submit(context.Background(), SubmitQuoteInput{UserEmail: "b@example.com"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Submit(context.Background(), SubmitQuoteInput{UserID: "user-1"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestQuoteService_SnapshotIsolation(t *testing.T) {
	t.Parallel()

	r := newRepo(t)
	fillCart(t, r, "user-1")
	svc := newQuoteService(r, nil)
	ctx := context.Background()

	res, err := svc.Submit(ctx, SubmitQuoteInput{UserID: "user-1", UserEmail: "b@example.com"})
	require.NoError(t, err)

	a, err := r.GetProduct(ctx, "A")
	require.NoError(t, err)
	a.ProductName = "Renamed Soap"
	a.CasePrice = dec("99.99")
	require.NoError(t, r.SaveProduct(ctx, a))
	require.NoError(t, r.DeleteProduct(ctx, "B"))

	q, err := r.GetQuote(ctx, res.QuoteID)
	require.NoError(t, err)
	require.Len(t, q.Items, 2)
	assert.Equal(t, "Soap", q.Items[0].ProductName)
	assert.True(t, q.Items[0].CasePrice.Equal(dec("10")))
	assert.Equal(t, "Sponge", q.Items[1].ProductName)
	assert.True(t, q.Items[1].UnitPrice.Equal(dec("2")))
	assert.True(t, q.TotalPrice.Equal(dec("40")))
}

func TestQuoteService_Submit_ClearCartPolicy(t *testing.T) {
	t.Parallel()

	r := newRepo(t)
	fillCart(t, r, "user-1")
	svc := newQuoteService(r, nil)
	svc.ClearCartOnSubmit = true
	ctx := context.Background()

	_, err := svc.Submit(ctx, SubmitQuoteInput{UserID: "user-1", UserEmail: "b@example.com"})
	require.NoError(t, err)

	cart, err := r.GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = svc.Submit(ctx, SubmitQuoteInput{UserID: "user-1", UserEmail: "b@example.com"})
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestQuoteService_BuildQuote_MissingProduct(t *testing.T) {
	t.Parallel()

	svc := &QuoteService{TaxRate: decimal.Zero}
	cart := &models.Cart{Items: []models.CartItem{
		{ProductBarcode: "GONE", Quantity: 4, IsCase: true},
		{ProductBarcode: "A", Quantity: 2, IsCase: false, Product: &models.Product{Barcode: "A", UnitPrice: dec("1.25")}},
	}}

	q := svc.BuildQuote(cart, SubmitQuoteInput{UserID: "u", Email: "e@example.com"}, fixedNow)
	require.Len(t, q.Items, 2)
	assert.Equal(t, "GONE", q.Items[0].Barcode)
	assert.True(t, q.Items[0].Subtotal.IsZero())
	assert.Equal(t, "2.50", q.TotalPrice.StringFixed(2))
	assert.Equal(t, models.QuoteStatusPending, q.Status)
}

func TestQuoteService_ListMineAndGetMine(t *testing.T) {
	t.Parallel()

	r := newRepo(t)
	fillCart(t, r, "user-1")
	svc := newQuoteService(r, nil)
	ctx := context.Background()

	_, err := svc.ListMine(ctx, "user-1")
	require.ErrorIs(t, err, ErrNotFound)

	res, err := svc.Submit(ctx, SubmitQuoteInput{UserID: "user-1", UserEmail: "b@example.com"})
	require.NoError(t, err)

	mine, err := svc.ListMine(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, 2, mine[0].ItemCount)
	assert.Equal(t, "Pending", mine[0].Status)

	q, err := svc.GetMine(ctx, "user-1", res.QuoteID)
	require.NoError(t, err)
	assert.Len(t, q.Items, 2)

	_, err = svc.GetMine(ctx, "someone-else", res.QuoteID)
	require.ErrorIs(t, err, ErrNotFound)
}
