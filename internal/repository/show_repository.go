package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/model"
)

// ShowRepo encapsulates all database queries related to shows.
type ShowRepo struct {
	db     *sqlx.DB
	flavor sqlbuilder.Flavor
}

// NewShowRepo constructs a ShowRepo with the provided DB handle.
func NewShowRepo(db *sqlx.DB) *ShowRepo {
	return &ShowRepo{db: db, flavor: flavorOf(db)}
}

// listings selects shows joined with their venue and artist.
func (r *ShowRepo) listings() *sqlbuilder.SelectBuilder {
	sb := r.flavor.NewSelectBuilder()
	sb.Select(
		"s.id", "s.start_time",
		"s.venue_id", "v.name AS venue_name", "v.image_link AS venue_image_link",
		"s.artist_id", "a.name AS artist_name", "a.image_link AS artist_image_link",
	).
		From("shows s").
		Join("venues v", "v.id = s.venue_id").
		Join("artists a", "a.id = s.artist_id")
	return sb
}

// Create books a show. The artist and the venue are checked inside the same
// transaction as the insert; a missing one yields ErrArtistNotFound or
// ErrVenueNotFound and nothing is written. The stored show is returned
// joined with its artist and venue names.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) (*model.ShowListing, error) {
	var out *model.ShowListing
	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		ok, err := exists(ctx, tx, r.flavor, "artists", s.ArtistID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrArtistNotFound
		}
		ok, err = exists(ctx, tx, r.flavor, "venues", s.VenueID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrVenueNotFound
		}

		s.StartTime = utc(s.StartTime)
		ib := r.flavor.NewInsertBuilder()
		ib.InsertInto("shows").
			Cols("start_time", "venue_id", "artist_id").
			Values(s.StartTime, s.VenueID, s.ArtistID)
		query, args := ib.Build()

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("insert show: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert show: %w", err)
		}
		s.ID = uint64(id)

		out, err = r.get(ctx, tx, s.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads one show with its venue and artist or returns ErrShowNotFound.
func (r *ShowRepo) GetByID(ctx context.Context, id uint64) (*model.ShowListing, error) {
	return r.get(ctx, r.db, id)
}

func (r *ShowRepo) get(ctx context.Context, q sqlx.QueryerContext, id uint64) (*model.ShowListing, error) {
	sb := r.listings()
	sb.Where(sb.Equal("s.id", id))
	query, args := sb.Build()

	var s model.ShowListing
	if err := sqlx.GetContext(ctx, q, &s, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowNotFound
		}
		return nil, fmt.Errorf("get show %d: %w", id, err)
	}
	return &s, nil
}

// ListAll returns every show ordered by start time.
func (r *ShowRepo) ListAll(ctx context.Context) ([]model.ShowListing, error) {
	return r.list(ctx, "", 0)
}

// ListByVenue returns the shows booked at a venue ordered by start time.
func (r *ShowRepo) ListByVenue(ctx context.Context, venueID uint64) ([]model.ShowListing, error) {
	return r.list(ctx, "s.venue_id", venueID)
}

// ListByArtist returns the shows an artist plays ordered by start time.
func (r *ShowRepo) ListByArtist(ctx context.Context, artistID uint64) ([]model.ShowListing, error) {
	return r.list(ctx, "s.artist_id", artistID)
}

func (r *ShowRepo) list(ctx context.Context, column string, id uint64) ([]model.ShowListing, error) {
	sb := r.listings()
	if column != "" {
		sb.Where(sb.Equal(column, id))
	}
	sb.OrderBy("s.start_time", "s.id")
	query, args := sb.Build()

	out := []model.ShowListing{}
	if err := sqlx.SelectContext(ctx, r.db, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}
	return out, nil
}
