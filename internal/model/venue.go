package model

import "github.com/iliyamo/fyyur/internal/database"

// Venue is a place that hosts shows.  It corresponds to a row in the
// `venues` table and owns the shows booked at it.
//
// Fields:
//  ID                 – primary key identifier.
//  Name               – display name of the venue.
//  City, State        – location used to group venues in listings.
//  Address            – street address.
//  Phone              – optional contact number.
//  ImageLink          – optional picture URL.
//  FacebookLink       – optional Facebook page.
//  Website            – optional website.
//  Genres             – ordered list of genres, never empty.
//  SeekingTalent      – whether the venue is looking for artists.
//  SeekingDescription – optional free text shown when seeking talent.
type Venue struct {
	ID                 uint64          `db:"id" json:"id"`                                     // venues.id
	Name               string          `db:"name" json:"name"`                                 // venues.name
	City               string          `db:"city" json:"city"`                                 // venues.city
	State              string          `db:"state" json:"state"`                               // venues.state
	Address            string          `db:"address" json:"address"`                           // venues.address
	Phone              *string         `db:"phone" json:"phone"`                               // venues.phone
	ImageLink          *string         `db:"image_link" json:"image_link"`                     // venues.image_link
	FacebookLink       *string         `db:"facebook_link" json:"facebook_link"`               // venues.facebook_link
	Website            *string         `db:"website" json:"website"`                           // venues.website
	Genres             database.Genres `db:"genres" json:"genres"`                             // venues.genres
	SeekingTalent      bool            `db:"seeking_talent" json:"seeking_talent"`             // venues.seeking_talent
	SeekingDescription *string         `db:"seeking_description" json:"seeking_description"` // venues.seeking_description
}

// VenueSummary is the short form used by the listing and search pages.
type VenueSummary struct {
	ID               uint64 `db:"id" json:"id"`
	Name             string `db:"name" json:"name"`
	City             string `db:"city" json:"-"`
	State            string `db:"state" json:"-"`
	NumUpcomingShows int    `db:"num_upcoming_shows" json:"num_upcoming_shows"`
}
