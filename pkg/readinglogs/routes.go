package readinglogs

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers reading log routes on an authenticated group.
// Logs are append-only, so there are no update or delete routes.
func RegisterRoutes(g *echo.Group, db *bun.DB) {
	readingLogService := NewService(db)

	h := &handler{
		readingLogService: readingLogService,
	}

	g.GET("/reading-logs", h.list)
	g.POST("/reading-logs", h.create)
}
