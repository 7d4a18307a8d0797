package model

import "github.com/iliyamo/fyyur/internal/database"

// Artist is a performer that can be booked at venues.  It corresponds to a
// row in the `artists` table.  Artists have no street address and look for
// venues instead of talent.
type Artist struct {
	ID                 uint64          `db:"id" json:"id"`                                     // artists.id
	Name               string          `db:"name" json:"name"`                                 // artists.name
	City               string          `db:"city" json:"city"`                                 // artists.city
	State              string          `db:"state" json:"state"`                               // artists.state
	Phone              *string         `db:"phone" json:"phone"`                               // artists.phone
	Genres             database.Genres `db:"genres" json:"genres"`                             // artists.genres
	ImageLink          *string         `db:"image_link" json:"image_link"`                     // artists.image_link
	FacebookLink       *string         `db:"facebook_link" json:"facebook_link"`               // artists.facebook_link
	Website            *string         `db:"website" json:"website"`                           // artists.website
	SeekingVenue       bool            `db:"seeking_venue" json:"seeking_venue"`               // artists.seeking_venue
	SeekingDescription *string         `db:"seeking_description" json:"seeking_description"` // artists.seeking_description
}

// ArtistSummary is the short form used by the listing and search pages.
type ArtistSummary struct {
	ID               uint64 `db:"id" json:"id"`
	Name             string `db:"name" json:"name"`
	NumUpcomingShows int    `db:"num_upcoming_shows" json:"num_upcoming_shows"`
}
