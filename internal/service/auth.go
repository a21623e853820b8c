package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/pearline_shop/internal/models"
	"github.com/Skotchmaster/pearline_shop/internal/mykafka"
	"github.com/Skotchmaster/pearline_shop/internal/repo"
	"github.com/Skotchmaster/pearline_shop/internal/transport"
	pkg_hash "github.com/Skotchmaster/pearline_shop/pkg/hash"
	"github.com/Skotchmaster/pearline_shop/pkg/logging"
	"github.com/Skotchmaster/pearline_shop/pkg/tokens"
)

const minPasswordLen = 6

type AuthService struct {
	Repo          *repo.GormRepo
	Events        EventPublisher
	JWTSecret     []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
	UserID       string
	Email        string
	Role         string
}

func (s *AuthService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return 15 * time.Minute
}

func (s *AuthService) refreshTTL() time.Duration {
	if s.RefreshTTL > 0 {
		return s.RefreshTTL
	}
	return 7 * 24 * time.Hour
}

func validateCredentials(email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("email and password required: %w", ErrValidation)
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("invalid email: %w", ErrValidation)
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters: %w", minPasswordLen, ErrValidation)
	}
	return nil
}

func (s *AuthService) createUser(ctx context.Context, u *models.User, password string) error {
	pwHash, err := pkg_hash.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = pwHash

	if err := s.Repo.CreateUserIfNotExists(ctx, u); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			return fmt.Errorf("user %s already exists: %w", u.Email, ErrConflict)
		}
		return err
	}
	return nil
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateCredentials(email, req.Password); err != nil {
		return nil, err
	}
	if req.Password != req.ConfirmPassword {
		return nil, fmt.Errorf("passwords do not match: %w", ErrValidation)
	}

	user := models.User{
		Email:        email,
		Role:         models.RoleUser,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		MobileNumber: strings.TrimSpace(req.MobileNumber),
		CompanyName:  strings.TrimSpace(req.CompanyName),
	}
	if err := s.createUser(ctx, &user, req.Password); err != nil {
		if !errors.Is(err, ErrConflict) {
			l.Error("register_error", "status", 500, "error", err)
		}
		return nil, err
	}

	publish(ctx, s.Events, mykafka.TopicUserEvents, user.ID.String(), map[string]any{
		"type":   "user_registered",
		"userID": user.ID.String(),
		"email":  user.Email,
	})
	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "status", 401, "reason", "unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !pkg_hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 401, "reason", "wrong password", "user_id", user.ID.String())
		return nil, ErrInvalidCredentials
	}

	return s.issue(ctx, user)
}

// AdminLogin is Login restricted to Admin and SuperAdmin accounts.
func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !pkg_hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if !models.IsAdminRole(user.Role) {
		return nil, fmt.Errorf("admin access required: %w", ErrForbidden)
	}
	return s.issue(ctx, user)
}

func (s *AuthService) issue(ctx context.Context, user *models.User) (*LoginResult, error) {
	now := time.Now().UTC()
	accessExp := now.Add(s.accessTTL())
	refreshExp := now.Add(s.refreshTTL())
	userID := user.ID.String()

	access, err := tokens.NewAccessToken(s.JWTSecret, userID, user.Email, user.Role, accessExp)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	jti := tokens.NewJTI()
	refresh, err := tokens.NewRefreshToken(s.RefreshSecret, userID, jti, refreshExp)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	if err := s.Repo.AddRefreshToken(ctx, &models.RefreshToken{
		JTI:       jti,
		TokenHash: tokens.Sha256Hex(refresh),
		UserID:    user.ID,
		ExpiresAt: refreshExp,
	}); err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  access,
		RefreshToken: refresh,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
		UserID:       userID,
		Email:        user.Email,
		Role:         user.Role,
	}, nil
}

// Refresh revokes the presented refresh token and issues a new pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	now := time.Now().UTC()
	accessExp := now.Add(s.accessTTL())
	refreshExp := now.Add(s.refreshTTL())

	access, err := tokens.NewAccessToken(s.JWTSecret, user.ID.String(), user.Email, user.Role, accessExp)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	jti := tokens.NewJTI()
	refresh, err := tokens.NewRefreshToken(s.RefreshSecret, user.ID.String(), jti, refreshExp)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	next := &models.RefreshToken{
		JTI:       jti,
		TokenHash: tokens.Sha256Hex(refresh),
		UserID:    user.ID,
		ExpiresAt: refreshExp,
	}
	if err := s.Repo.RotateRefreshToken(ctx, claims.ID, tokens.Sha256Hex(refreshToken), next); err != nil {
		if errors.Is(err, repo.ErrTokenExpiredOrRevoked) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	return &LoginResult{
		AccessToken:  access,
		RefreshToken: refresh,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
		UserID:       user.ID.String(),
		Email:        user.Email,
		Role:         user.Role,
	}, nil
}

func (s *AuthService) LogOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.Repo.RevokeByHash(ctx, tokens.Sha256Hex(refreshToken))
}

func (s *AuthService) CreateAdmin(ctx context.Context, req transport.CreateAdminRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateCredentials(email, req.Password); err != nil {
		return nil, err
	}

	user := models.User{
		Email:     email,
		Role:      models.RoleAdmin,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	}
	if err := s.createUser(ctx, &user, req.Password); err != nil {
		return nil, err
	}

	publish(ctx, s.Events, mykafka.TopicUserEvents, user.ID.String(), map[string]any{
		"type":   "admin_created",
		"userID": user.ID.String(),
		"email":  user.Email,
	})
	return &user, nil
}

// SeedSuperAdmin creates the super admin once. It reports whether a user was created.
func (s *AuthService) SeedSuperAdmin(ctx context.Context, email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return false, nil
	}

	user := models.User{Email: email, Role: models.RoleSuperAdmin}
	if err := s.createUser(ctx, &user, password); err != nil {
		if errors.Is(err, ErrConflict) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
