package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/metrics"
	"github.com/iliyamo/fyyur/internal/render"
	"github.com/iliyamo/fyyur/internal/repository"
)

// ListVenues renders every venue grouped by city and state.
func (h *Handler) ListVenues(c echo.Context) error {
	venues, err := h.Venues.ListSummaries(c.Request().Context(), h.now())
	if err != nil {
		return err
	}
	return h.page(c, http.StatusOK, "venues.html", render.View{Title: "Venues", Data: groupByArea(venues)})
}

// SearchVenues matches venue names against search_term, ignoring case.
func (h *Handler) SearchVenues(c echo.Context) error {
	term := c.FormValue("search_term")
	venues, err := h.Venues.Search(c.Request().Context(), term, h.now())
	if err != nil {
		return err
	}
	res := searchResult{Count: len(venues), Data: venues, SearchTerm: term}
	return h.page(c, http.StatusOK, "search_venues.html", render.View{Title: "Venue Search", Data: res})
}

// ShowVenue renders a venue with its past and upcoming shows.
func (h *Handler) ShowVenue(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return echo.ErrNotFound
	}
	ctx := c.Request().Context()
	v, err := h.Venues.GetByID(ctx, id)
	if errors.Is(err, repository.ErrVenueNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	shows, err := h.Shows.ListByVenue(ctx, id)
	if err != nil {
		return err
	}
	return h.page(c, http.StatusOK, "show_venue.html", render.View{Title: v.Name, Data: newVenueDetail(v, shows, h.now())})
}

// NewVenueForm renders an empty venue form.
func (h *Handler) NewVenueForm(c echo.Context) error {
	return h.page(c, http.StatusOK, "new_venue.html", render.View{Title: "New Venue", Form: form.Venue{}})
}

// CreateVenue validates the submitted form and lists the venue.
func (h *Handler) CreateVenue(c echo.Context) error {
	f := form.ParseVenue(formValues(c))
	if err := f.Validate(); err != nil {
		flash(c, flashError, "Please correct the errors below and try again.")
		return h.page(c, http.StatusUnprocessableEntity, "new_venue.html", render.View{Title: "New Venue", Form: f, Errors: err})
	}

	v := f.Model()
	if err := h.Venues.Create(c.Request().Context(), v); err != nil {
		h.Log.Error("create venue", zap.String("name", f.Name), zap.Error(err))
		flash(c, flashError, fmt.Sprintf("An error occurred. Venue %s could not be listed. Error: %v", f.Name, err))
		return h.page(c, http.StatusInternalServerError, "new_venue.html", render.View{Title: "New Venue", Form: f})
	}
	metrics.ListingsCreatedTotal.WithLabelValues("venue").Inc()
	flash(c, flashSuccess, fmt.Sprintf("Venue %s was successfully listed!", v.Name))
	return seeOther(c, "/")
}

// DeleteVenue removes a venue together with its shows.
func (h *Handler) DeleteVenue(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		flash(c, flashError, "Venue not found.")
		return seeOther(c, "/")
	}
	ctx := c.Request().Context()
	v, err := h.Venues.GetByID(ctx, id)
	if errors.Is(err, repository.ErrVenueNotFound) {
		flash(c, flashError, "Venue not found.")
		return seeOther(c, "/")
	}
	if err == nil {
		err = h.Venues.Delete(ctx, id)
	}
	switch {
	case errors.Is(err, repository.ErrVenueNotFound):
		flash(c, flashError, "Venue not found.")
	case err != nil:
		h.Log.Error("delete venue", zap.Uint64("venue_id", id), zap.Error(err))
		flash(c, flashError, fmt.Sprintf("An error occurred. Venue could not be deleted. Error: %v", err))
	default:
		flash(c, flashSuccess, fmt.Sprintf("Venue %s was successfully deleted!", v.Name))
	}
	return seeOther(c, "/")
}

// EditVenueForm renders the venue form filled with the stored values.
func (h *Handler) EditVenueForm(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		flash(c, flashError, "Venue not found!")
		return seeOther(c, "/venues")
	}
	v, err := h.Venues.GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrVenueNotFound) {
		flash(c, flashError, "Venue not found!")
		return seeOther(c, "/venues")
	}
	if err != nil {
		return err
	}
	return h.page(c, http.StatusOK, "edit_venue.html", render.View{
		Title: "Edit Venue",
		Data:  formTarget{ID: v.ID, Name: v.Name},
		Form:  form.VenueFromModel(v),
	})
}

// UpdateVenue applies the submitted form to an existing venue.
func (h *Handler) UpdateVenue(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		flash(c, flashError, "Venue not found!")
		return seeOther(c, "/venues")
	}
	ctx := c.Request().Context()
	current, err := h.Venues.GetByID(ctx, id)
	if errors.Is(err, repository.ErrVenueNotFound) {
		flash(c, flashError, "Venue not found!")
		return seeOther(c, "/venues")
	}
	if err != nil {
		return err
	}

	f := form.ParseVenue(formValues(c))
	if err := f.Validate(); err != nil {
		flash(c, flashError, "Please correct the errors below and try again.")
		return h.page(c, http.StatusUnprocessableEntity, "edit_venue.html", render.View{
			Title:  "Edit Venue",
			Data:   formTarget{ID: current.ID, Name: current.Name},
			Form:   f,
			Errors: err,
		})
	}

	v := f.Model()
	v.ID = id
	detail := fmt.Sprintf("/venues/%d", id)
	if err := h.Venues.Update(ctx, v); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			flash(c, flashError, "Venue not found!")
			return seeOther(c, "/venues")
		}
		h.Log.Error("update venue", zap.Uint64("venue_id", id), zap.Error(err))
		flash(c, flashError, fmt.Sprintf("An error occurred. Venue %s could not be updated. Error: %v", current.Name, err))
		return seeOther(c, detail)
	}
	flash(c, flashSuccess, fmt.Sprintf("Venue %s was successfully updated!", v.Name))
	return seeOther(c, detail)
}
