package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/libriverse/libriverse/pkg/errcodes"
	"github.com/pkg/errors"
)

type handler struct {
	authService *Service
}

// register creates a new account and returns a token for it.
func (h *handler) register(c echo.Context) error {
	ctx := c.Request().Context()

	params := RegisterPayload{}
	if err := c.Bind(&params); err != nil {
		return err
	}

	user, err := h.authService.Register(ctx, params.Name, params.Email, params.Password)
	if err != nil {
		return err
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusCreated, TokenResponse{Token: token, User: user})
}

// login exchanges credentials for a bearer token.
func (h *handler) login(c echo.Context) error {
	ctx := c.Request().Context()

	params := LoginPayload{}
	if err := c.Bind(&params); err != nil {
		return err
	}

	user, err := h.authService.Authenticate(ctx, params.Email, params.Password)
	if err != nil {
		return err
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, TokenResponse{Token: token, User: user})
}

// me returns the current authenticated user.
func (h *handler) me(c echo.Context) error {
	ctx := c.Request().Context()

	token := bearerToken(c)
	if token == "" {
		return errcodes.Unauthorized("Authentication required")
	}

	claims, err := h.authService.ValidateToken(token)
	if err != nil {
		return errcodes.Unauthorized("Authentication required")
	}

	user, err := h.authService.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return errcodes.Unauthorized("Authentication required")
	}

	return c.JSON(http.StatusOK, user)
}

// forgotPassword issues a password-reset code. The response is identical
// whether or not the email has an account.
func (h *handler) forgotPassword(c echo.Context) error {
	ctx := c.Request().Context()

	params := ForgotPasswordPayload{}
	if err := c.Bind(&params); err != nil {
		return err
	}

	if err := h.authService.RequestPasswordReset(ctx, params.Email); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "If an account exists for that email, a verification code has been sent.",
	})
}

// verifyCode checks a password-reset code without consuming it.
func (h *handler) verifyCode(c echo.Context) error {
	ctx := c.Request().Context()

	params := VerifyCodePayload{}
	if err := c.Bind(&params); err != nil {
		return err
	}

	if err := h.authService.VerifyCode(ctx, params.Email, params.Code); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Code verified."})
}

// resetPassword sets a new password after verifying the code.
func (h *handler) resetPassword(c echo.Context) error {
	ctx := c.Request().Context()

	params := ResetPasswordPayload{}
	if err := c.Bind(&params); err != nil {
		return err
	}

	err := h.authService.ResetPassword(ctx, params.Email, params.Code, params.NewPassword)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Password has been reset."})
}
