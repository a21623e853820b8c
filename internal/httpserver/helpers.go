package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/pearline_shop/internal/service"
	middleware "github.com/Skotchmaster/pearline_shop/pkg/middleware/auth"
)

var errUnauthorized = errors.New("unauthorized")

func GetID(c echo.Context) (string, error) {
	s, ok := c.Get(middleware.CtxUserID).(string)
	if !ok || s == "" {
		return "", errUnauthorized
	}
	return s, nil
}

func GetUUID(c echo.Context) (uuid.UUID, error) {
	s, err := GetID(c)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errUnauthorized
	}
	return id, nil
}

func GetEmail(c echo.Context) string {
	s, _ := c.Get(middleware.CtxEmail).(string)
	return s
}

func GetRole(c echo.Context) string {
	s, _ := c.Get(middleware.CtxRole).(string)
	return s
}

func uintParam(c echo.Context, name string) (uint, error) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(n), nil
}

func boolQuery(c echo.Context, name string, def bool) (bool, error) {
	v := c.QueryParam(name)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(strings.ToLower(v))
	if err != nil {
		return false, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return b, nil
}

func intQuery(c echo.Context, name string, def int) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return n, nil
}

var sentinels = []struct {
	err  error
	code int
}{
	{service.ErrValidation, http.StatusBadRequest},
	{service.ErrUnauthorized, http.StatusUnauthorized},
	{service.ErrForbidden, http.StatusForbidden},
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrConflict, http.StatusConflict},
	{service.ErrUnavailable, http.StatusServiceUnavailable},
}

// toHTTPError logs err under event and maps the service sentinel it wraps to
// an echo.HTTPError. The sentinel suffix is dropped from the message.
func toHTTPError(l *slog.Logger, event string, err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		l.Warn(event, "status", he.Code, "error", err)
		return he
	}

	for _, s := range sentinels {
		if errors.Is(err, s.err) {
			msg := strings.TrimSuffix(err.Error(), ": "+s.err.Error())
			l.Warn(event, "status", s.code, "reason", msg)
			return echo.NewHTTPError(s.code, msg)
		}
	}

	l.Error(event, "status", http.StatusInternalServerError, "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}

func unauthorized(l *slog.Logger, event string) error {
	l.Warn(event, "status", http.StatusUnauthorized, "reason", "no user in context")
	return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
}

func badBody(l *slog.Logger, event string, err error) error {
	l.Warn(event, "status", http.StatusBadRequest, "reason", "invalid body", "error", err)
	return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
}
