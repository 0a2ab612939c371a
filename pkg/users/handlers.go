package users

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/libriverse/libriverse/pkg/auth"
	"github.com/libriverse/libriverse/pkg/errcodes"
)

type handler struct {
	usersService *Service
}

// updateProfile handles PUT /user/profile.
func (h *handler) updateProfile(c echo.Context) error {
	ctx := c.Request().Context()

	user, ok := auth.GetUserFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	params := UpdateProfilePayload{}
	if err := c.Bind(&params); err != nil {
		return err
	}

	err := h.usersService.UpdateProfile(ctx, user, UpdateProfileOptions{
		Name:            params.Name,
		Email:           params.Email,
		Password:        params.Password,
		CurrentPassword: params.CurrentPassword,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// deleteAccount handles DELETE /user.
func (h *handler) deleteAccount(c echo.Context) error {
	ctx := c.Request().Context()

	user, ok := auth.GetUserFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	params := DeleteAccountPayload{}
	if err := c.Bind(&params); err != nil {
		return err
	}

	err := h.usersService.DeleteAccount(ctx, user, params.Password)
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
