package auth

import (
	"github.com/labstack/echo/v4"
	"github.com/libriverse/libriverse/pkg/mailer"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers all auth routes.
func RegisterRoutes(g *echo.Group, db *bun.DB, jwtSecret string, mail mailer.Mailer) *Service {
	authService := NewService(db, jwtSecret, mail)

	h := &handler{
		authService: authService,
	}

	auth := g.Group("/auth")
	auth.POST("/register", h.register)
	auth.POST("/login", h.login)
	auth.POST("/forgot-password", h.forgotPassword)
	auth.POST("/verify-code", h.verifyCode)
	auth.POST("/reset-password", h.resetPassword)

	// /auth/me validates its own token so the rest of the auth group can
	// stay unauthenticated.
	auth.GET("/me", h.me)

	return authService
}
