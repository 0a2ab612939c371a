package errcodes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/errutils"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Handle is an Echo error handler that renders HTTP errors as
// {"error": "<message>"}. Any generic error is reported as an internal
// server error; its details stay in the server logs.
func (h *Handler) Handle(err error, c echo.Context) {
	if errutils.IsIgnorableErr(err) {
		logger.FromEchoContext(c).Err(err).Warn("broken pipe")
		return
	}

	httpCode, msg := h.resolve(err)

	if httpCode == http.StatusInternalServerError {
		logger.FromEchoContext(c).Err(err).Error("server error")
	}

	if err := c.JSON(httpCode, map[string]string{"error": msg}); err != nil {
		logger.FromEchoContext(c).Err(errors.WithStack(err)).Error("error handler json error")
	}
}

func (h *Handler) resolve(err error) (int, string) {
	// Echo errors, e.g. 405 Method Not Allowed from the router.
	var he *echo.HTTPError
	if ok := errors.As(err, &he); ok {
		if msg, isStr := he.Message.(string); isStr {
			return he.Code, msg
		}
		return he.Code, http.StatusText(he.Code)
	}

	var e *Error
	if ok := errors.As(err, &e); ok {
		return e.HTTPCode, e.Message
	}

	return http.StatusInternalServerError, "Internal Server Error"
}
