package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/pearline_shop/internal/service"
	"github.com/Skotchmaster/pearline_shop/internal/transport"
	"github.com/Skotchmaster/pearline_shop/internal/util"
	"github.com/Skotchmaster/pearline_shop/pkg/logging"
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.get")

	id, err := GetUUID(c)
	if err != nil {
		return unauthorized(l, "get_profile_error")
	}
	u, err := h.Svc.GetProfile(ctx, id)
	if err != nil {
		return toHTTPError(l, "get_profile_error", err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.update")

	id, err := GetUUID(c)
	if err != nil {
		return unauthorized(l, "update_profile_error")
	}
	var req transport.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "update_profile_error", err)
	}

	u, err := h.Svc.UpdateProfile(ctx, id, req)
	if err != nil {
		return toHTTPError(l, "update_profile_error", err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserHTTP) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.change_password")

	id, err := GetUUID(c)
	if err != nil {
		return unauthorized(l, "change_password_error")
	}
	var req transport.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "change_password_error", err)
	}

	if err := h.Svc.ChangePassword(ctx, id, req.OldPassword, req.NewPassword); err != nil {
		return toHTTPError(l, "change_password_error", err)
	}
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Password changed"})
}

func (h *UserHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.list")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	res, err := h.Svc.ListUsers(ctx, page, size)
	if err != nil {
		return toHTTPError(l, "list_users_error", err)
	}
	return c.JSON(http.StatusOK, res)
}

func userParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func (h *UserHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.get")

	id, err := userParam(c)
	if err != nil {
		return toHTTPError(l, "get_user_error", err)
	}
	u, err := h.Svc.GetUser(ctx, id)
	if err != nil {
		return toHTTPError(l, "get_user_error", err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.delete")

	id, err := userParam(c)
	if err != nil {
		return toHTTPError(l, "delete_user_error", err)
	}
	if err := h.Svc.DeleteUser(ctx, id); err != nil {
		return toHTTPError(l, "delete_user_error", err)
	}

	l.Info("user deleted", "user_id", id.String())
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "User deleted"})
}
