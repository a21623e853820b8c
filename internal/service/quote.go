package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/pearline_shop/internal/models"
	"github.com/Skotchmaster/pearline_shop/internal/mykafka"
	"github.com/Skotchmaster/pearline_shop/internal/repo"
	"github.com/Skotchmaster/pearline_shop/internal/transport"
	"github.com/Skotchmaster/pearline_shop/pkg/logging"
)

type QuoteService struct {
	Repo              *repo.GormRepo
	Events            EventPublisher
	TaxRate           decimal.Decimal
	ClearCartOnSubmit bool
	Now               func() time.Time
}

type SubmitQuoteInput struct {
	UserID    string
	UserEmail string
	Email     string
	Comments  string
}

type SubmitResult struct {
	QuoteID uint
	Total   decimal.Decimal
}

func (s *QuoteService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// BuildQuote snapshots every cart line and computes the totals.
// It does not touch the database.
func (s *QuoteService) BuildQuote(cart *models.Cart, in SubmitQuoteInput, now time.Time) *models.Quote {
	items := make([]models.QuoteItem, 0, len(cart.Items))
	subtotals := make([]decimal.Decimal, 0, len(cart.Items))

	for _, line := range cart.Items {
		sub := LineSubtotal(line.Product, line.IsCase, line.Quantity)
		items = append(items, models.SnapshotItem(line, sub))
		subtotals = append(subtotals, sub)
	}

	totals := ComputeTotals(subtotals, s.TaxRate)
	return &models.Quote{
		Email:       in.Email,
		Comments:    in.Comments,
		Subtotal:    totals.Subtotal,
		Tax:         totals.Tax,
		TotalPrice:  totals.Total,
		DateCreated: now,
		UserID:      in.UserID,
		Status:      models.InitialQuoteStatus(),
		Items:       items,
	}
}

func (s *QuoteService) Submit(ctx context.Context, in SubmitQuoteInput) (*SubmitResult, error) {
	l := logging.FromContext(ctx).With("svc", "quote.submit", "user_id", in.UserID)

	if in.UserID == "" {
		return nil, fmt.Errorf("user id required: %w", ErrValidation)
	}
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" {
		in.Email = in.UserEmail
	}
	if in.Email == "" {
		return nil, fmt.Errorf("email required: %w", ErrValidation)
	}
	in.Comments = strings.TrimSpace(in.Comments)

	now := s.now()
	quote, err := s.Repo.CreateQuoteFromCart(ctx, in.UserID, func(cart *models.Cart) (*models.Quote, error) {
		return s.BuildQuote(cart, in, now), nil
	}, s.ClearCartOnSubmit)
	if err != nil {
		if errors.Is(err, repo.ErrCartEmpty) {
			return nil, ErrEmptyCart
		}
		l.Error("quote_submit_error", "error", err)
		return nil, err
	}

	l.Info("quote_submitted", "quote_id", quote.ID, "items", len(quote.Items), "total", quote.TotalPrice.StringFixed(2))
	publish(ctx, s.Events, mykafka.TopicQuoteEvents, in.UserID, map[string]any{
		"type":      "quote_submitted",
		"quoteID":   quote.ID,
		"userID":    in.UserID,
		"email":     quote.Email,
		"total":     quote.TotalPrice.StringFixed(2),
		"itemCount": len(quote.Items),
	})

	return &SubmitResult{QuoteID: quote.ID, Total: quote.TotalPrice}, nil
}

// ListMine returns the user's quotes newest first.
func (s *QuoteService) ListMine(ctx context.Context, userID string) ([]transport.QuoteSummary, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id required: %w", ErrValidation)
	}

	_, quotes, err := s.Repo.ListQuotesByUser(ctx, userID, 0, -1)
	if err != nil {
		return nil, err
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("no quotes found: %w", ErrNotFound)
	}
	return summaries(ctx, s.Repo, quotes)
}

func (s *QuoteService) GetMine(ctx context.Context, userID string, id uint) (*models.Quote, error) {
	q, err := s.Repo.GetUserQuote(ctx, userID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("quote %d not found: %w", id, ErrNotFound)
	}
	return q, err
}

func summaries(ctx context.Context, r *repo.GormRepo, quotes []models.Quote) ([]transport.QuoteSummary, error) {
	ids := make([]uint, len(quotes))
	for i, q := range quotes {
		ids[i] = q.ID
	}
	counts, err := r.CountQuoteItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]transport.QuoteSummary, len(quotes))
	for i, q := range quotes {
		out[i] = transport.QuoteSummary{
			ID:          q.ID,
			Email:       q.Email,
			Status:      q.Status.String(),
			TotalPrice:  q.TotalPrice,
			DateCreated: q.DateCreated,
			ItemCount:   counts[q.ID],
		}
	}
	return out, nil
}
