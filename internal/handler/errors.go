package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/fyyur/internal/render"
)

// HTTPErrorHandler renders the 404 and 500 pages.  Other HTTP errors answer
// with their status text.
func (h *Handler) HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = http.StatusText(code)
		if m, ok := he.Message.(string); ok && m != "" {
			msg = m
		}
	}

	if code >= http.StatusInternalServerError {
		h.Log.Error("unhandled error",
			zap.String("method", c.Request().Method),
			zap.String("uri", c.Request().RequestURI),
			zap.Error(err),
		)
	}

	var werr error
	switch {
	case c.Request().Method == http.MethodHead:
		werr = c.NoContent(code)
	case wantsJSON(c):
		werr = c.JSON(code, echo.Map{"error": msg})
	case code == http.StatusNotFound:
		werr = h.page(c, code, "errors/404.html", render.View{Title: "Not Found"})
	case code >= http.StatusInternalServerError:
		werr = h.page(c, code, "errors/500.html", render.View{Title: "Server Error"})
	default:
		werr = c.String(code, msg)
	}
	if werr != nil {
		h.Log.Error("write error response", zap.Error(werr))
	}
}
