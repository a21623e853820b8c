package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/pearline_shop/internal/models"
	"github.com/Skotchmaster/pearline_shop/internal/mykafka"
	"github.com/Skotchmaster/pearline_shop/internal/repo"
	"github.com/Skotchmaster/pearline_shop/internal/transport"
	"github.com/Skotchmaster/pearline_shop/internal/util"
	pkg_hash "github.com/Skotchmaster/pearline_shop/pkg/hash"
)

type UserService struct {
	Repo   *repo.GormRepo
	Events EventPublisher
}

func (s *UserService) GetProfile(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := s.Repo.GetUserByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user not found: %w", ErrNotFound)
	}
	return u, err
}

func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req transport.UpdateProfileRequest) (*models.User, error) {
	u, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	setString(&u.FirstName, req.FirstName)
	setString(&u.LastName, req.LastName)
	setString(&u.MobileNumber, req.MobileNumber)
	setString(&u.CompanyName, req.CompanyName)
	setString(&u.CompanyWebsite, req.CompanyWebsite)
	setString(&u.VatNumber, req.VatNumber)
	setString(&u.StreetAddress, req.StreetAddress)
	setString(&u.City, req.City)
	setString(&u.Country, req.Country)
	setString(&u.State, req.State)
	setString(&u.ZipCode, req.ZipCode)

	if err := s.Repo.SaveUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) ChangePassword(ctx context.Context, id uuid.UUID, oldPassword, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters: %w", minPasswordLen, ErrValidation)
	}

	u, err := s.GetProfile(ctx, id)
	if err != nil {
		return err
	}
	if !pkg_hash.CheckPassword(u.PasswordHash, oldPassword) {
		return fmt.Errorf("current password is incorrect: %w", ErrValidation)
	}

	h, err := pkg_hash.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = h
	return s.Repo.SaveUser(ctx, u)
}

func (s *UserService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	return s.deleteUser(ctx, id, "account_deleted")
}

func (s *UserService) ListUsers(ctx context.Context, page, size int) (*transport.Paged[models.User], error) {
	page, size = util.Clamp(page, size, util.DefaultPageSize, util.MaxPageSize)
	total, users, err := s.Repo.ListUsers(ctx, (page-1)*size, size)
	if err != nil {
		return nil, err
	}
	return &transport.Paged[models.User]{Page: page, PageSize: size, TotalItems: total, Items: users}, nil
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.GetProfile(ctx, id)
}

// DeleteUser is the admin removal path. SuperAdmin accounts are protected.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	u, err := s.GetProfile(ctx, id)
	if err != nil {
		return err
	}
	if u.Role == models.RoleSuperAdmin {
		return fmt.Errorf("super admin cannot be deleted: %w", ErrForbidden)
	}
	return s.deleteUser(ctx, id, "user_deleted")
}

func (s *UserService) deleteUser(ctx context.Context, id uuid.UUID, eventType string) error {
	if err := s.Repo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user not found: %w", ErrNotFound)
		}
		return err
	}

	publish(ctx, s.Events, mykafka.TopicUserEvents, id.String(), map[string]any{
		"type":   eventType,
		"userID": id.String(),
	})
	return nil
}
