package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/pearline_shop/internal/service"
	"github.com/Skotchmaster/pearline_shop/internal/transport"
	"github.com/Skotchmaster/pearline_shop/pkg/logging"
)

type MessageHTTP struct {
	Svc *service.MessageService
}

func (h *MessageHTTP) Send(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "contact.send")

	var req transport.ContactMessageRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "send_message_error", err)
	}

	msg, err := h.Svc.Send(ctx, req)
	if err != nil {
		return toHTTPError(l, "send_message_error", err)
	}

	l.Info("contact message received", "message_id", msg.ID)
	return c.JSON(http.StatusCreated, transport.MessageResponse{Message: "Message sent"})
}

func (h *MessageHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "messages.list")

	msgs, err := h.Svc.List(ctx)
	if err != nil {
		return toHTTPError(l, "list_messages_error", err)
	}
	return c.JSON(http.StatusOK, msgs)
}

func (h *MessageHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "messages.get")

	id, err := uintParam(c, "id")
	if err != nil {
		return toHTTPError(l, "get_message_error", err)
	}
	msg, err := h.Svc.Get(ctx, id)
	if err != nil {
		return toHTTPError(l, "get_message_error", err)
	}
	return c.JSON(http.StatusOK, msg)
}

func (h *MessageHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "messages.delete")

	id, err := uintParam(c, "id")
	if err != nil {
		return toHTTPError(l, "delete_message_error", err)
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return toHTTPError(l, "delete_message_error", err)
	}
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Message deleted"})
}

func (h *MessageHTTP) DeleteAll(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "messages.delete_all")

	n, err := h.Svc.DeleteAll(ctx)
	if err != nil {
		return toHTTPError(l, "delete_all_messages_error", err)
	}
	return c.JSON(http.StatusOK, transport.DeletedResponse{Message: "All messages deleted", Deleted: n})
}
