package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/pearline_shop/internal/service"
	"github.com/Skotchmaster/pearline_shop/internal/transport"
	"github.com/Skotchmaster/pearline_shop/pkg/logging"
	"github.com/Skotchmaster/pearline_shop/pkg/tokens"
)

type AuthHTTP struct {
	Svc  *service.AuthService
	User *service.UserService
}

func setAuthCookies(c echo.Context, res *service.LoginResult) {
	c.SetCookie(tokens.CreateCookie(tokens.AccessCookie, res.AccessToken, "/", res.AccessExp))
	c.SetCookie(tokens.CreateCookie(tokens.RefreshCookie, res.RefreshToken, "/", res.RefreshExp))
}

func tokenResponse(res *service.LoginResult) transport.TokenResponse {
	return transport.TokenResponse{
		AccessToken:      res.AccessToken,
		RefreshToken:     res.RefreshToken,
		AccessExpiresAt:  res.AccessExp,
		RefreshExpiresAt: res.RefreshExp,
		UserID:           res.UserID,
		Role:             res.Role,
	}
}

// refreshFrom prefers the JSON body and falls back to the refresh cookie.
func refreshFrom(c echo.Context) string {
	var req transport.RefreshRequest
	if err := c.Bind(&req); err == nil && req.RefreshToken != "" {
		return req.RefreshToken
	}
	if ck, err := c.Cookie(tokens.RefreshCookie); err == nil {
		return ck.Value
	}
	return ""
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "register_error", err)
	}

	user, err := h.Svc.Register(ctx, req)
	if err != nil {
		return toHTTPError(l, "register_error", err)
	}

	l.Info("user registered", "user_id", user.ID.String())
	return c.JSON(http.StatusCreated, transport.WhoAmIResponse{
		UserID: user.ID.String(),
		Email:  user.Email,
		Role:   user.Role,
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "login_error", err)
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return toHTTPError(l, "login_error", err)
	}

	setAuthCookies(c, res)
	l.Info("user logged in", "user_id", res.UserID)
	return c.JSON(http.StatusOK, tokenResponse(res))
}

func (h *AuthHTTP) AdminLogin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.admin_login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "admin_login_error", err)
	}

	res, err := h.Svc.AdminLogin(ctx, req.Email, req.Password)
	if err != nil {
		return toHTTPError(l, "admin_login_error", err)
	}

	setAuthCookies(c, res)
	l.Info("admin logged in", "user_id", res.UserID, "role", res.Role)
	return c.JSON(http.StatusOK, tokenResponse(res))
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.refresh")

	raw := refreshFrom(c)
	if raw == "" {
		l.Warn("refresh_error", "status", http.StatusUnauthorized, "reason", "no refresh token")
		return echo.NewHTTPError(http.StatusUnauthorized, "refresh token required")
	}

	res, err := h.Svc.Refresh(ctx, raw)
	if err != nil {
		return toHTTPError(l, "refresh_error", err)
	}

	setAuthCookies(c, res)
	return c.JSON(http.StatusOK, tokenResponse(res))
}

func (h *AuthHTTP) LogOut(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	if err := h.Svc.LogOut(ctx, refreshFrom(c)); err != nil {
		return toHTTPError(l, "logout_error", err)
	}

	c.SetCookie(tokens.DeleteCookie(tokens.AccessCookie, "/"))
	c.SetCookie(tokens.DeleteCookie(tokens.RefreshCookie, "/"))
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Logged out"})
}

func (h *AuthHTTP) WhoAmI(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.whoami")

	userID, err := GetID(c)
	if err != nil {
		return unauthorized(l, "whoami_error")
	}
	return c.JSON(http.StatusOK, transport.WhoAmIResponse{
		UserID: userID,
		Email:  GetEmail(c),
		Role:   GetRole(c),
	})
}

func (h *AuthHTTP) DeleteAccount(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.delete_account")

	id, err := GetUUID(c)
	if err != nil {
		return unauthorized(l, "delete_account_error")
	}
	if err := h.User.DeleteAccount(ctx, id); err != nil {
		return toHTTPError(l, "delete_account_error", err)
	}

	c.SetCookie(tokens.DeleteCookie(tokens.AccessCookie, "/"))
	c.SetCookie(tokens.DeleteCookie(tokens.RefreshCookie, "/"))
	l.Info("account deleted", "user_id", id.String())
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Account deleted"})
}

func (h *AuthHTTP) CreateAdmin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.create_admin")

	var req transport.CreateAdminRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "create_admin_error", err)
	}

	user, err := h.Svc.CreateAdmin(ctx, req)
	if err != nil {
		return toHTTPError(l, "create_admin_error", err)
	}

	l.Info("admin created", "user_id", user.ID.String(), "by", GetEmail(c))
	return c.JSON(http.StatusCreated, transport.WhoAmIResponse{
		UserID: user.ID.String(),
		Email:  user.Email,
		Role:   user.Role,
	})
}
