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

var artistColumns = []string{
	"id", "name", "city", "state", "phone", "genres", "image_link",
	"facebook_link", "website", "seeking_venue", "seeking_description",
}

// ArtistRepo encapsulates all database queries related to artists.
// Artists are never deleted.
type ArtistRepo struct {
	db     *sqlx.DB
	flavor sqlbuilder.Flavor
}

// NewArtistRepo constructs an ArtistRepo with the provided DB handle.
func NewArtistRepo(db *sqlx.DB) *ArtistRepo {
	return &ArtistRepo{db: db, flavor: flavorOf(db)}
}

// Create inserts a new artist. On success a.ID holds the generated id.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		ib := r.flavor.NewInsertBuilder()
		ib.InsertInto("artists").
			Cols(artistColumns[1:]...).
			Values(a.Name, a.City, a.State, a.Phone, a.Genres, a.ImageLink,
				a.FacebookLink, a.Website, a.SeekingVenue, a.SeekingDescription)
		query, args := ib.Build()

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("insert artist: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert artist: %w", err)
		}
		a.ID = uint64(id)
		return nil
	})
}

// GetByID loads a single artist or returns ErrArtistNotFound.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	sb := r.flavor.NewSelectBuilder()
	sb.Select(artistColumns...).From("artists").Where(sb.Equal("id", id))
	query, args := sb.Build()

	var a model.Artist
	if err := sqlx.GetContext(ctx, r.db, &a, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, fmt.Errorf("get artist %d: %w", id, err)
	}
	return &a, nil
}

func (r *ArtistRepo) summaries(now time.Time) *sqlbuilder.SelectBuilder {
	sb := r.flavor.NewSelectBuilder()
	sb.Select("a.id", "a.name", "COUNT(s.id) AS num_upcoming_shows").
		From("artists a").
		JoinWithOption(sqlbuilder.LeftJoin, "shows s",
			"s.artist_id = a.id",
			sb.GreaterEqualThan("s.start_time", utc(now))).
		GroupBy("a.id", "a.name")
	return sb
}

// ListSummaries returns every artist ordered by id.
func (r *ArtistRepo) ListSummaries(ctx context.Context, now time.Time) ([]model.ArtistSummary, error) {
	sb := r.summaries(now)
	sb.OrderBy("a.id")
	query, args := sb.Build()

	out := []model.ArtistSummary{}
	if err := sqlx.SelectContext(ctx, r.db, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	return out, nil
}

// Search returns artists whose name contains term, ignoring case.
func (r *ArtistRepo) Search(ctx context.Context, term string, now time.Time) ([]model.ArtistSummary, error) {
	sb := r.summaries(now)
	sb.Where(nameContains(sb, "a.name", term)).OrderBy("a.id")
	query, args := sb.Build()

	out := []model.ArtistSummary{}
	if err := sqlx.SelectContext(ctx, r.db, &out, query, args...); err != nil {
		return nil, fmt.Errorf("search artists: %w", err)
	}
	return out, nil
}

// ListRecent returns the most recently listed artists, newest first.
func (r *ArtistRepo) ListRecent(ctx context.Context, limit int) ([]model.Artist, error) {
	sb := r.flavor.NewSelectBuilder()
	sb.Select(artistColumns...).From("artists").OrderBy("id").Desc().Limit(limit)
	query, args := sb.Build()

	out := []model.Artist{}
	if err := sqlx.SelectContext(ctx, r.db, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list recent artists: %w", err)
	}
	return out, nil
}

// Update overwrites every mutable field of the artist identified by a.ID.
func (r *ArtistRepo) Update(ctx context.Context, a *model.Artist) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		ok, err := exists(ctx, tx, r.flavor, "artists", a.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrArtistNotFound
		}

		ub := r.flavor.NewUpdateBuilder()
		ub.Update("artists").
			Set(
				ub.Assign("name", a.Name),
				ub.Assign("city", a.City),
				ub.Assign("state", a.State),
				ub.Assign("phone", a.Phone),
				ub.Assign("genres", a.Genres),
				ub.Assign("image_link", a.ImageLink),
				ub.Assign("facebook_link", a.FacebookLink),
				ub.Assign("website", a.Website),
				ub.Assign("seeking_venue", a.SeekingVenue),
				ub.Assign("seeking_description", a.SeekingDescription),
			).
			Where(ub.Equal("id", a.ID))
		query, args := ub.Build()

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update artist %d: %w", a.ID, err)
		}
		return nil
	})
}
