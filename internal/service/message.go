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
)

type MessageService struct {
	Repo   *repo.GormRepo
	Events EventPublisher
}

func (s *MessageService) Send(ctx context.Context, req transport.ContactMessageRequest) (*models.ContactMessage, error) {
	msg := models.ContactMessage{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Message:   strings.TrimSpace(req.Message),
	}
	if msg.FirstName == "" || msg.Email == "" || msg.Message == "" {
		return nil, fmt.Errorf("first name, email and message are required: %w", ErrValidation)
	}
	if !strings.Contains(msg.Email, "@") {
		return nil, fmt.Errorf("invalid email: %w", ErrValidation)
	}

	if err := s.Repo.CreateMessage(ctx, &msg); err != nil {
		return nil, err
	}

	publish(ctx, s.Events, mykafka.TopicContactEvents, fmt.Sprint(msg.ID), map[string]any{
		"type":      "contact_message_received",
		"messageID": msg.ID,
		"email":     msg.Email,
	})
	return &msg, nil
}

func (s *MessageService) List(ctx context.Context) ([]models.ContactMessage, error) {
	return s.Repo.ListMessages(ctx)
}

func (s *MessageService) Get(ctx context.Context, id uint) (*models.ContactMessage, error) {
	m, err := s.Repo.GetMessage(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("message %d not found: %w", id, ErrNotFound)
	}
	return m, err
}

func (s *MessageService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteMessage(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("message %d not found: %w", id, ErrNotFound)
		}
		return err
	}
	return nil
}

func (s *MessageService) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.Repo.DeleteAllMessages(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("no messages to delete: %w", ErrNotFound)
		}
		return 0, err
	}
	return n, nil
}
