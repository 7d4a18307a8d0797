package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/render"
	"github.com/iliyamo/fyyur/internal/repository"
)

// Home renders the landing page with the latest listings.
func (h *Handler) Home(c echo.Context) error {
	ctx := c.Request().Context()
	venues, err := h.Venues.ListRecent(ctx, repository.RecentLimit)
	if err != nil {
		return err
	}
	artists, err := h.Artists.ListRecent(ctx, repository.RecentLimit)
	if err != nil {
		return err
	}
	return h.page(c, http.StatusOK, "home.html", render.View{Data: homePage{Venues: venues, Artists: artists}})
}
