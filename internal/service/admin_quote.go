package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/pearline_shop/internal/export"
	"github.com/Skotchmaster/pearline_shop/internal/models"
	"github.com/Skotchmaster/pearline_shop/internal/mykafka"
	"github.com/Skotchmaster/pearline_shop/internal/repo"
	"github.com/Skotchmaster/pearline_shop/internal/transport"
	"github.com/Skotchmaster/pearline_shop/internal/util"
)

const (
	AdminQuotesPageSize = 25
	UserQuotesPageSize  = 50
	MaxQuotesPageSize   = 500
)

type AdminQuoteService struct {
	Repo   *repo.GormRepo
	Events EventPublisher
}

func (s *AdminQuoteService) List(ctx context.Context, f repo.QuoteFilter, page, pageSize int) (*transport.Paged[transport.QuoteSummary], error) {
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return nil, fmt.Errorf("from must not be after to: %w", ErrValidation)
	}
	page, pageSize = util.Clamp(page, pageSize, AdminQuotesPageSize, MaxQuotesPageSize)

	total, quotes, err := s.Repo.ListQuotes(ctx, f, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	items, err := summaries(ctx, s.Repo, quotes)
	if err != nil {
		return nil, err
	}

	return &transport.Paged[transport.QuoteSummary]{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		Items:      items,
	}, nil
}

func (s *AdminQuoteService) ListAll(ctx context.Context) ([]models.Quote, error) {
	return s.Repo.ListAllQuotes(ctx)
}

// Export writes every quote with its items as an xlsx workbook.
func (s *AdminQuoteService) Export(ctx context.Context, w io.Writer) error {
	quotes, err := s.Repo.ListAllQuotes(ctx)
	if err != nil {
		return err
	}
	return export.WriteQuotesXLSX(w, quotes)
}

func (s *AdminQuoteService) Get(ctx context.Context, id uint) (*models.Quote, error) {
	q, err := s.Repo.GetQuote(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("quote %d not found: %w", id, ErrNotFound)
	}
	return q, err
}

func (s *AdminQuoteService) ListByUser(ctx context.Context, userID string, page, pageSize int) (*transport.Paged[transport.QuoteSummary], error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("user id required: %w", ErrValidation)
	}
	page, pageSize = util.Clamp(page, pageSize, UserQuotesPageSize, MaxQuotesPageSize)

	total, quotes, err := s.Repo.ListQuotesByUser(ctx, userID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, fmt.Errorf("no quotes found for user %s: %w", userID, ErrNotFound)
	}
	items, err := summaries(ctx, s.Repo, quotes)
	if err != nil {
		return nil, err
	}

	return &transport.Paged[transport.QuoteSummary]{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		Items:      items,
	}, nil
}

func (s *AdminQuoteService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteQuote(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("quote %d not found: %w", id, ErrNotFound)
		}
		return err
	}

	publish(ctx, s.Events, mykafka.TopicQuoteEvents, fmt.Sprint(id), map[string]any{
		"type":    "quote_deleted",
		"quoteID": id,
	})
	return nil
}

func (s *AdminQuoteService) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.Repo.DeleteAllQuotes(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("no quotes to delete: %w", ErrNotFound)
		}
		return 0, err
	}

	publish(ctx, s.Events, mykafka.TopicQuoteEvents, "all", map[string]any{
		"type":    "quotes_deleted",
		"deleted": n,
	})
	return n, nil
}
