package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/pearline_shop/internal/models"
	"github.com/Skotchmaster/pearline_shop/internal/mykafka"
)

func (s *AdminQuoteService) Statuses() []models.QuoteStatus {
	out := make([]models.QuoteStatus, len(models.QuoteStatuses))
	copy(out, models.QuoteStatuses)
	return out
}

// SetStatus stores any status of the vocabulary; there is no transition
// graph. An unknown value leaves the quote untouched.
func (s *AdminQuoteService) SetStatus(ctx context.Context, id uint, raw string) (models.QuoteStatus, error) {
	status, err := models.ParseQuoteStatus(raw)
	if err != nil {
		return "", fmt.Errorf("%q is not a valid status: %w", raw, ErrValidation)
	}

	old, err := s.Repo.UpdateQuoteStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("quote %d not found: %w", id, ErrNotFound)
		}
		return "", err
	}

	publish(ctx, s.Events, mykafka.TopicQuoteEvents, fmt.Sprint(id), map[string]any{
		"type":      "quote_status_changed",
		"quoteID":   id,
		"oldStatus": old.String(),
		"newStatus": status.String(),
	})
	return status, nil
}
