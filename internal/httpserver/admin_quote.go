package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/pearline_shop/internal/export"
	"github.com/Skotchmaster/pearline_shop/internal/repo"
	"github.com/Skotchmaster/pearline_shop/internal/service"
	"github.com/Skotchmaster/pearline_shop/internal/transport"
	"github.com/Skotchmaster/pearline_shop/pkg/logging"
)

type AdminQuoteHTTP struct {
	Svc *service.AdminQuoteService
}

const dateOnly = "2006-01-02"

// parseBound accepts RFC3339 or a bare date. A bare "to" date covers the
// whole day.
func parseBound(raw string, endOfDay bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateOnly, raw)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func (h *AdminQuoteHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.quotes.list")

	from, err := parseBound(c.QueryParam("from"), false)
	if err != nil {
		l.Warn("list_quotes_error", "status", http.StatusBadRequest, "reason", "invalid from")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid from")
	}
	to, err := parseBound(c.QueryParam("to"), true)
	if err != nil {
		l.Warn("list_quotes_error", "status", http.StatusBadRequest, "reason", "invalid to")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid to")
	}
	page, err := intQuery(c, "page", 1)
	if err != nil {
		return toHTTPError(l, "list_quotes_error", err)
	}
	pageSize, err := intQuery(c, "pageSize", service.AdminQuotesPageSize)
	if err != nil {
		return toHTTPError(l, "list_quotes_error", err)
	}

	res, err := h.Svc.List(ctx, repo.QuoteFilter{From: from, To: to, Email: c.QueryParam("email")}, page, pageSize)
	if err != nil {
		return toHTTPError(l, "list_quotes_error", err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *AdminQuoteHTTP) ListAll(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.quotes.all")

	quotes, err := h.Svc.ListAll(ctx)
	if err != nil {
		return toHTTPError(l, "list_all_quotes_error", err)
	}
	return c.JSON(http.StatusOK, quotes)
}

func (h *AdminQuoteHTTP) Export(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.quotes.export")

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, export.ContentTypeXLSX)
	res.Header().Set(echo.HeaderContentDisposition, `attachment; filename="quotes.xlsx"`)
	res.WriteHeader(http.StatusOK)

	if err := h.Svc.Export(ctx, res); err != nil {
		l.Error("export_quotes_error", "error", err)
		return err
	}
	return nil
}

func (h *AdminQuoteHTTP) Statuses(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Svc.Statuses())
}

func (h *AdminQuoteHTTP) ListByUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.quotes.user")

	page, err := intQuery(c, "page", 1)
	if err != nil {
		return toHTTPError(l, "list_user_quotes_error", err)
	}
	pageSize, err := intQuery(c, "pageSize", service.UserQuotesPageSize)
	if err != nil {
		return toHTTPError(l, "list_user_quotes_error", err)
	}

	res, err := h.Svc.ListByUser(ctx, c.Param("userId"), page, pageSize)
	if err != nil {
		return toHTTPError(l, "list_user_quotes_error", err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *AdminQuoteHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.quotes.get")

	id, err := uintParam(c, "id")
	if err != nil {
		return toHTTPError(l, "get_quote_error", err)
	}
	q, err := h.Svc.Get(ctx, id)
	if err != nil {
		return toHTTPError(l, "get_quote_error", err)
	}
	return c.JSON(http.StatusOK, q)
}

func (h *AdminQuoteHTTP) SetStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.quotes.status")

	id, err := uintParam(c, "id")
	if err != nil {
		return toHTTPError(l, "set_quote_status_error", err)
	}
	var req transport.UpdateQuoteStatusRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "set_quote_status_error", err)
	}

	st, err := h.Svc.SetStatus(ctx, id, req.Status)
	if err != nil {
		return toHTTPError(l, "set_quote_status_error", err)
	}

	l.Info("quote status updated", "quote_id", id, "status", st)
	return c.JSON(http.StatusOK, transport.QuoteStatusResponse{ID: id, Status: st.String()})
}

func (h *AdminQuoteHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.quotes.delete")

	id, err := uintParam(c, "id")
	if err != nil {
		return toHTTPError(l, "delete_quote_error", err)
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return toHTTPError(l, "delete_quote_error", err)
	}

	l.Info("quote deleted", "quote_id", id)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Quote deleted"})
}

func (h *AdminQuoteHTTP) DeleteAll(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.quotes.delete_all")

	n, err := h.Svc.DeleteAll(ctx)
	if err != nil {
		return toHTTPError(l, "delete_all_quotes_error", err)
	}

	l.Info("all quotes deleted", "count", n)
	return c.JSON(http.StatusOK, transport.DeletedResponse{Message: "All quotes deleted", Deleted: n})
}
