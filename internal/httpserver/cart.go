package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/pearline_shop/internal/service"
	"github.com/Skotchmaster/pearline_shop/internal/transport"
	"github.com/Skotchmaster/pearline_shop/pkg/logging"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID, err := GetID(c)
	if err != nil {
		return unauthorized(l, "get_cart_error")
	}

	cart, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		return toHTTPError(l, "get_cart_error", err)
	}
	return c.JSON(http.StatusOK, cart)
}

// AddToCart reads barcode, quantity (default 1) and isCase (default true)
// from the query string.
func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	userID, err := GetID(c)
	if err != nil {
		return unauthorized(l, "add_to_cart_error")
	}

	qty, err := intQuery(c, "quantity", 1)
	if err != nil {
		return toHTTPError(l, "add_to_cart_error", err)
	}
	isCase, err := boolQuery(c, "isCase", true)
	if err != nil {
		return toHTTPError(l, "add_to_cart_error", err)
	}

	cart, err := h.Svc.AddToCart(ctx, userID, service.AddToCartInput{
		Barcode:  c.QueryParam("barcode"),
		Quantity: qty,
		IsCase:   isCase,
	})
	if err != nil {
		return toHTTPError(l, "add_to_cart_error", err)
	}

	l.Info("item added to cart", "barcode", c.QueryParam("barcode"), "quantity", qty, "is_case", isCase)
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	userID, err := GetID(c)
	if err != nil {
		return unauthorized(l, "remove_from_cart_error")
	}
	isCase, err := boolQuery(c, "isCase", true)
	if err != nil {
		return toHTTPError(l, "remove_from_cart_error", err)
	}

	cart, err := h.Svc.RemoveFromCart(ctx, userID, c.Param("barcode"), isCase)
	if err != nil {
		return toHTTPError(l, "remove_from_cart_error", err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	userID, err := GetID(c)
	if err != nil {
		return unauthorized(l, "clear_cart_error")
	}

	if err := h.Svc.ClearCart(ctx, userID); err != nil {
		return toHTTPError(l, "clear_cart_error", err)
	}

	l.Info("cart cleared")
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Cart cleared"})
}
