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

// ListArtists renders every artist ordered by id.
func (h *Handler) ListArtists(c echo.Context) error {
	artists, err := h.Artists.ListSummaries(c.Request().Context(), h.now())
	if err != nil {
		return err
	}
	return h.page(c, http.StatusOK, "artists.html", render.View{Title: "Artists", Data: artists})
}

func (h *Handler) SearchArtists(c echo.Context) error {
	term := c.FormValue("search_term")
	artists, err := h.Artists.Search(c.Request().Context(), term, h.now())
	if err != nil {
		return err
	}
	res := searchResult{Count: len(artists), Data: artists, SearchTerm: term}
	return h.page(c, http.StatusOK, "search_artists.html", render.View{Title: "Artist Search", Data: res})
}

// ShowArtist renders an artist with the venues it played and will play.
func (h *Handler) ShowArtist(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return echo.ErrNotFound
	}
	ctx := c.Request().Context()
	a, err := h.Artists.GetByID(ctx, id)
	if errors.Is(err, repository.ErrArtistNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	shows, err := h.Shows.ListByArtist(ctx, id)
	if err != nil {
		return err
	}
	return h.page(c, http.StatusOK, "show_artist.html", render.View{Title: a.Name, Data: newArtistDetail(a, shows, h.now())})
}

func (h *Handler) NewArtistForm(c echo.Context) error {
	return h.page(c, http.StatusOK, "new_artist.html", render.View{Title: "New Artist", Form: form.Artist{}})
}

// CreateArtist validates the submitted form and lists the artist.
func (h *Handler) CreateArtist(c echo.Context) error {
	f := form.ParseArtist(formValues(c))
	if err := f.Validate(); err != nil {
		flash(c, flashError, "An error occurred. The form data was not valid.")
		return h.page(c, http.StatusUnprocessableEntity, "new_artist.html", render.View{Title: "New Artist", Form: f, Errors: err})
	}

	a := f.Model()
	if err := h.Artists.Create(c.Request().Context(), a); err != nil {
		h.Log.Error("create artist", zap.String("name", f.Name), zap.Error(err))
		flash(c, flashError, fmt.Sprintf("An error occurred. Artist %s could not be listed. Error: %v", f.Name, err))
		return h.page(c, http.StatusInternalServerError, "new_artist.html", render.View{Title: "New Artist", Form: f})
	}
	metrics.ListingsCreatedTotal.WithLabelValues("artist").Inc()
	flash(c, flashSuccess, fmt.Sprintf("Artist %s was successfully listed!", a.Name))
	return seeOther(c, "/")
}

func (h *Handler) EditArtistForm(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		flash(c, flashError, "Artist not found!")
		return seeOther(c, "/artists")
	}
	a, err := h.Artists.GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrArtistNotFound) {
		flash(c, flashError, "Artist not found!")
		return seeOther(c, "/artists")
	}
	if err != nil {
		return err
	}
	return h.page(c, http.StatusOK, "edit_artist.html", render.View{
		Title: "Edit Artist",
		Data:  formTarget{ID: a.ID, Name: a.Name},
		Form:  form.ArtistFromModel(a),
	})
}

// UpdateArtist applies the submitted form to an existing artist.
func (h *Handler) UpdateArtist(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		flash(c, flashError, "Artist not found!")
		return seeOther(c, "/artists")
	}
	ctx := c.Request().Context()
	current, err := h.Artists.GetByID(ctx, id)
	if errors.Is(err, repository.ErrArtistNotFound) {
		flash(c, flashError, "Artist not found!")
		return seeOther(c, "/artists")
	}
	if err != nil {
		return err
	}

	f := form.ParseArtist(formValues(c))
	if err := f.Validate(); err != nil {
		flash(c, flashError, "Form validation failed. Please check the input values.")
		return h.page(c, http.StatusUnprocessableEntity, "edit_artist.html", render.View{
			Title:  "Edit Artist",
			Data:   formTarget{ID: current.ID, Name: current.Name},
			Form:   f,
			Errors: err,
		})
	}

	a := f.Model()
	a.ID = id
	detail := fmt.Sprintf("/artists/%d", id)
	if err := h.Artists.Update(ctx, a); err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			flash(c, flashError, "Artist not found!")
			return seeOther(c, "/artists")
		}
		h.Log.Error("update artist", zap.Uint64("artist_id", id), zap.Error(err))
		flash(c, flashError, fmt.Sprintf("An error occurred. Artist %s could not be updated. Error: %v", current.Name, err))
		return seeOther(c, detail)
	}
	flash(c, flashSuccess, fmt.Sprintf("Artist %s was successfully updated!", a.Name))
	return seeOther(c, detail)
}
