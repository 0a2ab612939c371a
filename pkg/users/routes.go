package users

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers profile routes on an authenticated group.
func RegisterRoutes(g *echo.Group, db *bun.DB) {
	usersService := NewService(db)

	h := &handler{
		usersService: usersService,
	}

	g.PUT("/user/profile", h.updateProfile)
	g.DELETE("/user", h.deleteAccount)
}
