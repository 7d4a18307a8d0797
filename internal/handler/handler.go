// Package handler implements the Fyyur pages.  Every handler is a method on
// Handler so the repositories, the event publisher and the clock are shared.
package handler

import (
	"time" // time supplies the default clock

	"go.uber.org/zap" // zap logs persistence failures

	"github.com/iliyamo/fyyur/internal/repository" // repository holds the data access layer
	"github.com/iliyamo/fyyur/internal/service"    // service publishes booking events
)

// Handler bundles the dependencies of the page handlers.
type Handler struct {
	Venues    *repository.VenueRepo  // Venues provides venue persistence
	Artists   *repository.ArtistRepo // Artists provides artist persistence
	Shows     *repository.ShowRepo   // Shows provides show persistence
	Publisher service.Publisher      // Publisher announces booked shows
	Log       *zap.Logger            // Log records failures
	Now       func() time.Time       // Now is the single clock used to split past and upcoming shows
}

// New constructs a Handler and panics if a repository is missing.  A nil
// publisher or logger is replaced by a no-op.
func New(venues *repository.VenueRepo, artists *repository.ArtistRepo, shows *repository.ShowRepo, pub service.Publisher, log *zap.Logger) *Handler {
	if venues == nil || artists == nil || shows == nil {
		panic("nil repository passed to handler.New")
	}
	if pub == nil {
		pub = service.NopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		Venues:    venues,
		Artists:   artists,
		Shows:     shows,
		Publisher: pub,
		Log:       log,
		Now:       time.Now,
	}
}

// now reads the clock in UTC at second precision, the precision shows are
// stored with.
func (h *Handler) now() time.Time {
	return h.Now().UTC().Truncate(time.Second)
}
