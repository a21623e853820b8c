package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/Skotchmaster/pearline_shop/pkg/tokens"
	"github.com/labstack/echo/v4"
)

const (
	CtxUserID = "user_id"
	CtxRole   = "role"
	CtxEmail  = "email"
)

type Auth struct {
	JWTSecret []byte
}

func NewAuth(secret []byte) *Auth {
	return &Auth{JWTSecret: secret}
}

// RequireAuth accepts "Authorization: Bearer <jwt>" and falls back to the
// accessToken cookie.
func (m *Auth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := bearerToken(c)
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := tokens.AccessClaimsFromToken(raw, m.JWTSecret)
		if err != nil || claims == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}
		if claims.Subject == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "token has no subject")
		}

		c.Set(CtxUserID, claims.Subject)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxEmail, claims.Email)

		return next(c)
	}
}

// RequireRoles must run after RequireAuth.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if role == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing role")
			}
			if !slices.Contains(roles, role) {
				return echo.NewHTTPError(http.StatusForbidden, "you don't have enough rights")
			}
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if scheme, value, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(value)
	}

	if ck, err := c.Cookie(tokens.AccessCookie); err == nil {
		return ck.Value
	}
	return ""
}
