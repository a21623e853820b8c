package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

type Config struct {
	CookieName string
	HeaderName string
	// SessionCookie is the cookie that authenticates the browser. Requests
	// that do not carry it are not checked.
	SessionCookie string
	Secure        bool
	MaxAge        time.Duration
	SkipPaths     []string
}

func DefaultConfig(sessionCookie string) Config {
	return Config{
		CookieName:    "XSRF-TOKEN",
		HeaderName:    "X-CSRF-Token",
		SessionCookie: sessionCookie,
		Secure:        true,
		MaxAge:        24 * time.Hour,
	}
}

// Middleware implements double-submit tokens for cookie sessions: every
// response refreshes a readable token cookie and unsafe methods must echo it
// in HeaderName. Bearer-authenticated requests pass through.
func Middleware(cfg Config) echo.MiddlewareFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if _, ok := skip[req.URL.Path]; ok {
				return next(c)
			}

			token := cookieValue(req, cfg.CookieName)
			if token == "" {
				var err error
				if token, err = newToken(); err != nil {
					return echo.NewHTTPError(http.StatusInternalServerError, "failed to create CSRF token")
				}
			}
			c.SetCookie(&http.Cookie{
				Name:     cfg.CookieName,
				Value:    token,
				Path:     "/",
				Secure:   cfg.Secure,
				MaxAge:   int(cfg.MaxAge.Seconds()),
				SameSite: http.SameSiteLaxMode,
			})

			if safeMethod(req.Method) || !cookieSession(req, cfg.SessionCookie) {
				return next(c)
			}

			provided := req.Header.Get(cfg.HeaderName)
			if provided == "" || subtle.ConstantTimeCompare([]byte(token), []byte(provided)) != 1 {
				return echo.NewHTTPError(http.StatusForbidden, "invalid CSRF token")
			}
			return next(c)
		}
	}
}

func safeMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func cookieSession(req *http.Request, name string) bool {
	if scheme, _, ok := strings.Cut(req.Header.Get(echo.HeaderAuthorization), " "); ok && strings.EqualFold(scheme, "Bearer") {
		return false
	}
	return cookieValue(req, name) != ""
}

func cookieValue(req *http.Request, name string) string {
	c, err := req.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
