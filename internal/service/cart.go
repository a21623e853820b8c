package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/pearline_shop/internal/models"
	"github.com/Skotchmaster/pearline_shop/internal/mykafka"
	"github.com/Skotchmaster/pearline_shop/internal/repo"
	"github.com/Skotchmaster/pearline_shop/internal/transport"
)

type CartService struct {
	Repo   *repo.GormRepo
	Events EventPublisher
}

type AddToCartInput struct {
	Barcode  string
	Quantity int
	IsCase   bool
}

func (s *CartService) GetCart(ctx context.Context, userID string) (*transport.CartResponse, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id required: %w", ErrValidation)
	}

	cart, err := s.Repo.GetCart(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &transport.CartResponse{Items: []transport.CartLine{}, Total: decimal.Zero}, nil
	}
	if err != nil {
		return nil, err
	}
	return cartResponse(cart), nil
}

func (s *CartService) AddToCart(ctx context.Context, userID string, in AddToCartInput) (*transport.CartResponse, error) {
	in.Barcode = strings.TrimSpace(in.Barcode)
	if userID == "" {
		return nil, fmt.Errorf("user id required: %w", ErrValidation)
	}
	if in.Barcode == "" {
		return nil, fmt.Errorf("barcode required: %w", ErrValidation)
	}
	if in.Quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", ErrValidation)
	}

	if err := s.Repo.AddToCart(ctx, userID, in.Barcode, in.Quantity, in.IsCase); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			return nil, fmt.Errorf("product %s not found: %w", in.Barcode, ErrNotFound)
		}
		return nil, err
	}

	publish(ctx, s.Events, mykafka.TopicCartEvents, userID, map[string]any{
		"type":     "cart_item_added",
		"userID":   userID,
		"barcode":  in.Barcode,
		"quantity": in.Quantity,
		"isCase":   in.IsCase,
	})

	return s.GetCart(ctx, userID)
}

func (s *CartService) RemoveFromCart(ctx context.Context, userID, barcode string, isCase bool) (*transport.CartResponse, error) {
	barcode = strings.TrimSpace(barcode)
	if userID == "" || barcode == "" {
		return nil, fmt.Errorf("user id and barcode required: %w", ErrValidation)
	}

	if err := s.Repo.RemoveFromCart(ctx, userID, barcode, isCase); err != nil {
		switch {
		case errors.Is(err, repo.ErrCartNotFound):
			return nil, fmt.Errorf("cart not found: %w", ErrNotFound)
		case errors.Is(err, repo.ErrItemNotFound):
			return nil, fmt.Errorf("item not found in cart: %w", ErrNotFound)
		}
		return nil, err
	}

	publish(ctx, s.Events, mykafka.TopicCartEvents, userID, map[string]any{
		"type":    "cart_item_removed",
		"userID":  userID,
		"barcode": barcode,
		"isCase":  isCase,
	})

	return s.GetCart(ctx, userID)
}

func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("user id required: %w", ErrValidation)
	}

	if err := s.Repo.ClearCart(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrCartNotFound) {
			return fmt.Errorf("cart not found: %w", ErrNotFound)
		}
		return err
	}

	publish(ctx, s.Events, mykafka.TopicCartEvents, userID, map[string]any{
		"type":   "cart_cleared",
		"userID": userID,
	})
	return nil
}

func cartResponse(cart *models.Cart) *transport.CartResponse {
	resp := &transport.CartResponse{
		ID:    cart.ID,
		Items: make([]transport.CartLine, 0, len(cart.Items)),
		Total: decimal.Zero,
	}

	for _, item := range cart.Items {
		price := LinePrice(item.Product, item.IsCase)
		subtotal := price.Mul(decimal.NewFromInt(int64(item.Quantity)))

		line := transport.CartLine{
			ID:           item.ID,
			Barcode:      item.ProductBarcode,
			Quantity:     item.Quantity,
			IsCase:       item.IsCase,
			CaseSize:     1,
			PricePerItem: price,
			Subtotal:     subtotal,
		}
		if p := item.Product; p != nil {
			line.ProductName = p.ProductName
			line.ProductImage = p.ProductImage
			if p.CaseSize > 0 {
				line.CaseSize = p.CaseSize
			}
			line.CasesPerLayer = p.CasesPerLayer
			line.CasesPerPallet = p.CasesPerPallet
			line.LeadTimeDays = p.LeadTimeDays
		}

		resp.Items = append(resp.Items, line)
		resp.Total = resp.Total.Add(subtotal)
	}
	return resp
}
