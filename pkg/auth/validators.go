package auth

import "github.com/libriverse/libriverse/pkg/models"

// RegisterPayload is the payload for registering a new account.
type RegisterPayload struct {
	Name     string `json:"name" mod:"trim" validate:"required,max=100"`
	Email    string `json:"email" mod:"trim" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginPayload is the payload for logging in.
type LoginPayload struct {
	Email    string `json:"email" mod:"trim" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordPayload is the payload for requesting a password-reset code.
type ForgotPasswordPayload struct {
	Email string `json:"email" mod:"trim" validate:"required,email"`
}

// VerifyCodePayload is the payload for checking a password-reset code.
type VerifyCodePayload struct {
	Email string `json:"email" mod:"trim" validate:"required,email"`
	Code  string `json:"code" mod:"trim" validate:"required,len=6,numeric"`
}

// ResetPasswordPayload is the payload for completing a password reset.
type ResetPasswordPayload struct {
	Email       string `json:"email" mod:"trim" validate:"required,email"`
	Code        string `json:"code" mod:"trim" validate:"required,len=6,numeric"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

// TokenResponse is returned by register and login.
type TokenResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}
