package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/middleware"
	"github.com/iliyamo/fyyur/internal/render"
	"github.com/iliyamo/fyyur/internal/utils"
)

const (
	flashSuccess = utils.FlashSuccess
	flashError   = utils.FlashError
)

// page renders an HTML page, or the view data as JSON when the client asks
// for it.  Form pages are always HTML.
func (h *Handler) page(c echo.Context, status int, name string, view render.View) error {
	if view.Form == nil && wantsJSON(c) {
		return c.JSON(status, view.Data)
	}
	view.Flashes = middleware.Flashes(c).Take()
	return c.Render(status, name, view)
}

func wantsJSON(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}

func flash(c echo.Context, category, message string) {
	middleware.Flashes(c).Add(category, message)
}

// seeOther redirects after a form post.
func seeOther(c echo.Context, url string) error {
	return c.Redirect(http.StatusSeeOther, url)
}

// parseID reads the :id path parameter.
func parseID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// formValues returns the parsed request body, or an empty set when the body
// cannot be read.
func formValues(c echo.Context) url.Values {
	values, err := c.FormParams()
	if err != nil {
		return url.Values{}
	}
	return values
}
