package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/libriverse/libriverse/pkg/adminbooks"
	"github.com/libriverse/libriverse/pkg/auth"
	"github.com/libriverse/libriverse/pkg/binder"
	"github.com/libriverse/libriverse/pkg/config"
	"github.com/libriverse/libriverse/pkg/errcodes"
	"github.com/libriverse/libriverse/pkg/library"
	"github.com/libriverse/libriverse/pkg/mailer"
	"github.com/libriverse/libriverse/pkg/notes"
	"github.com/libriverse/libriverse/pkg/readinglogs"
	"github.com/libriverse/libriverse/pkg/search"
	"github.com/libriverse/libriverse/pkg/settings"
	"github.com/libriverse/libriverse/pkg/users"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/uptrace/bun"
)

// New builds the HTTP server with the full route table resolved up front.
func New(cfg *config.Config, db *bun.DB) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORS())

	health.RegisterRoutes(e)

	api := e.Group("/api")

	mail := mailer.New(cfg)
	authService := auth.RegisterRoutes(api, db, cfg.Auth.JWTSecret, mail)
	authMiddleware := auth.NewMiddleware(authService)

	// Everything outside /api/auth requires a valid bearer token.
	authed := api.Group("", authMiddleware.Authenticate)
	library.RegisterRoutes(authed, db)
	search.RegisterRoutes(authed, db)
	notes.RegisterRoutes(authed, db)
	readinglogs.RegisterRoutes(authed, db)
	settings.RegisterRoutes(authed, db)
	users.RegisterRoutes(authed, db)
	adminbooks.RegisterRoutes(authed, db, authMiddleware)

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
