package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/pearline_shop/internal/service"
	"github.com/Skotchmaster/pearline_shop/internal/transport"
	"github.com/Skotchmaster/pearline_shop/pkg/logging"
)

type QuoteHTTP struct {
	Svc *service.QuoteService
}

func (h *QuoteHTTP) Submit(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "quote.submit")

	userID, err := GetID(c)
	if err != nil {
		return unauthorized(l, "submit_quote_error")
	}

	var req transport.SubmitQuoteRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "submit_quote_error", err)
	}

	res, err := h.Svc.Submit(ctx, service.SubmitQuoteInput{
		UserID:    userID,
		UserEmail: GetEmail(c),
		Email:     req.Email,
		Comments:  req.Comments,
	})
	if err != nil {
		return toHTTPError(l, "submit_quote_error", err)
	}

	return c.JSON(http.StatusOK, transport.SubmitQuoteResponse{
		Message: "Quote submitted successfully",
		QuoteID: res.QuoteID,
		Total:   res.Total,
	})
}

func (h *QuoteHTTP) ListMine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "quote.my")

	userID, err := GetID(c)
	if err != nil {
		return unauthorized(l, "list_my_quotes_error")
	}

	quotes, err := h.Svc.ListMine(ctx, userID)
	if err != nil {
		return toHTTPError(l, "list_my_quotes_error", err)
	}
	return c.JSON(http.StatusOK, quotes)
}

func (h *QuoteHTTP) GetMine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "quote.get")

	userID, err := GetID(c)
	if err != nil {
		return unauthorized(l, "get_quote_error")
	}
	id, err := uintParam(c, "id")
	if err != nil {
		return toHTTPError(l, "get_quote_error", err)
	}

	q, err := h.Svc.GetMine(ctx, userID, id)
	if err != nil {
		return toHTTPError(l, "get_quote_error", err)
	}
	return c.JSON(http.StatusOK, q)
}
