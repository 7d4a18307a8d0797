package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/metrics"
	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/render"
	"github.com/iliyamo/fyyur/internal/repository"
)

// ListShows renders every show with its venue and artist.
func (h *Handler) ListShows(c echo.Context) error {
	shows, err := h.Shows.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return h.page(c, http.StatusOK, "shows.html", render.View{Title: "Shows", Data: newShowRows(shows)})
}

// NewShowForm renders the show form with the artists and venues to pick from.
func (h *Handler) NewShowForm(c echo.Context) error {
	return h.showForm(c, http.StatusOK, form.NewShow(h.now()), nil)
}

func (h *Handler) showForm(c echo.Context, status int, f form.Show, errs error) error {
	ctx := c.Request().Context()
	artists, err := h.Artists.ListSummaries(ctx, h.now())
	if err != nil {
		return err
	}
	venues, err := h.Venues.ListSummaries(ctx, h.now())
	if err != nil {
		return err
	}
	return h.page(c, status, "new_show.html", render.View{
		Title:  "New Show",
		Data:   showFormData{Artists: artists, Venues: venues},
		Form:   f,
		Errors: errs,
	})
}

// CreateShow books an artist at a venue and announces the booking.
func (h *Handler) CreateShow(c echo.Context) error {
	f := form.ParseShow(formValues(c))
	if err := f.Validate(); err != nil {
		flash(c, flashError, "Please correct the errors below and try again.")
		return h.showForm(c, http.StatusUnprocessableEntity, f, err)
	}

	ctx := c.Request().Context()
	listing, err := h.Shows.Create(ctx, f.Model())
	if err != nil {
		msg := fmt.Sprintf("An error occurred. Show could not be listed. Error: %v", err)
		if errors.Is(err, repository.ErrArtistNotFound) || errors.Is(err, repository.ErrVenueNotFound) {
			flash(c, flashError, msg)
			return h.showForm(c, http.StatusUnprocessableEntity, f, nil)
		}
		h.Log.Error("create show", zap.Uint64("artist_id", f.ArtistID), zap.Uint64("venue_id", f.VenueID), zap.Error(err))
		flash(c, flashError, msg)
		return h.showForm(c, http.StatusInternalServerError, f, nil)
	}
	metrics.ListingsCreatedTotal.WithLabelValues("show").Inc()

	// failures are logged by the publisher
	_ = h.Publisher.PublishShowBooked(ctx, h.bookedEvent(listing))
	flash(c, flashSuccess, "Show was successfully listed!")
	return seeOther(c, "/")
}

func (h *Handler) bookedEvent(s *model.ShowListing) queue.ShowBookedEvent {
	return queue.ShowBookedEvent{
		ShowID:     s.ID,
		ArtistID:   s.ArtistID,
		ArtistName: s.ArtistName,
		VenueID:    s.VenueID,
		VenueName:  s.VenueName,
		StartTime:  formatStart(s.StartTime),
		BookedAt:   formatStart(h.Now()),
	}
}
