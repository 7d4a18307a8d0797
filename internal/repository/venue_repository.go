package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/model"
)

// venueColumns lists the venues table columns in model order.
var venueColumns = []string{
	"id", "name", "city", "state", "address", "phone", "image_link",
	"facebook_link", "website", "genres", "seeking_talent", "seeking_description",
}

// VenueRepo encapsulates all database queries related to venues.
type VenueRepo struct {
	db     *sqlx.DB
	flavor sqlbuilder.Flavor
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sqlx.DB) *VenueRepo {
	return &VenueRepo{db: db, flavor: flavorOf(db)}
}

// Ping checks that the database still answers.
func (r *VenueRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Create inserts a new venue. On success v.ID holds the generated id.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		ib := r.flavor.NewInsertBuilder()
		ib.InsertInto("venues").
			Cols(venueColumns[1:]...).
			Values(v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink,
				v.FacebookLink, v.Website, v.Genres, v.SeekingTalent, v.SeekingDescription)
		query, args := ib.Build()

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("insert venue: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert venue: %w", err)
		}
		v.ID = uint64(id)
		return nil
	})
}

// GetByID loads a single venue or returns ErrVenueNotFound.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	sb := r.flavor.NewSelectBuilder()
	sb.Select(venueColumns...).From("venues").Where(sb.Equal("id", id))
	query, args := sb.Build()

	var v model.Venue
	if err := sqlx.GetContext(ctx, r.db, &v, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("get venue %d: %w", id, err)
	}
	return &v, nil
}

// summaries builds the venue listing query: one row per venue with the
// number of shows starting at or after now.
func (r *VenueRepo) summaries(now time.Time) *sqlbuilder.SelectBuilder {
	sb := r.flavor.NewSelectBuilder()
	sb.Select("v.id", "v.name", "v.city", "v.state", "COUNT(s.id) AS num_upcoming_shows").
		From("venues v").
		JoinWithOption(sqlbuilder.LeftJoin, "shows s",
			"s.venue_id = v.id",
			sb.GreaterEqualThan("s.start_time", utc(now))).
		GroupBy("v.id", "v.name", "v.city", "v.state")
	return sb
}

// ListSummaries returns every venue ordered by city, state and id, which is
// the order the listing page groups them in.
func (r *VenueRepo) ListSummaries(ctx context.Context, now time.Time) ([]model.VenueSummary, error) {
	sb := r.summaries(now)
	sb.OrderBy("v.city", "v.state", "v.id")
	query, args := sb.Build()

	out := []model.VenueSummary{}
	if err := sqlx.SelectContext(ctx, r.db, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return out, nil
}

// Search returns venues whose name contains term, ignoring case.
func (r *VenueRepo) Search(ctx context.Context, term string, now time.Time) ([]model.VenueSummary, error) {
	sb := r.summaries(now)
	sb.Where(nameContains(sb, "v.name", term)).OrderBy("v.id")
	query, args := sb.Build()

	out := []model.VenueSummary{}
	if err := sqlx.SelectContext(ctx, r.db, &out, query, args...); err != nil {
		return nil, fmt.Errorf("search venues: %w", err)
	}
	return out, nil
}

// ListRecent returns the most recently listed venues, newest first.
func (r *VenueRepo) ListRecent(ctx context.Context, limit int) ([]model.Venue, error) {
	sb := r.flavor.NewSelectBuilder()
	sb.Select(venueColumns...).From("venues").OrderBy("id").Desc().Limit(limit)
	query, args := sb.Build()

	out := []model.Venue{}
	if err := sqlx.SelectContext(ctx, r.db, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list recent venues: %w", err)
	}
	return out, nil
}

// Update overwrites every mutable field of the venue identified by v.ID.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		ok, err := exists(ctx, tx, r.flavor, "venues", v.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrVenueNotFound
		}

		ub := r.flavor.NewUpdateBuilder()
		ub.Update("venues").
			Set(
				ub.Assign("name", v.Name),
				ub.Assign("city", v.City),
				ub.Assign("state", v.State),
				ub.Assign("address", v.Address),
				ub.Assign("phone", v.Phone),
				ub.Assign("image_link", v.ImageLink),
				ub.Assign("facebook_link", v.FacebookLink),
				ub.Assign("website", v.Website),
				ub.Assign("genres", v.Genres),
				ub.Assign("seeking_talent", v.SeekingTalent),
				ub.Assign("seeking_description", v.SeekingDescription),
			).
			Where(ub.Equal("id", v.ID))
		query, args := ub.Build()

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update venue %d: %w", v.ID, err)
		}
		return nil
	})
}

// Delete removes a venue together with every show booked at it.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		ok, err := exists(ctx, tx, r.flavor, "venues", id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrVenueNotFound
		}

		shows := r.flavor.NewDeleteBuilder()
		shows.DeleteFrom("shows").Where(shows.Equal("venue_id", id))
		query, args := shows.Build()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete shows of venue %d: %w", id, err)
		}

		venue := r.flavor.NewDeleteBuilder()
		venue.DeleteFrom("venues").Where(venue.Equal("id", id))
		query, args = venue.Build()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete venue %d: %w", id, err)
		}
		return nil
	})
}
