package model

import "time"

// ShowTimeLayout is the fixed string format used whenever a show's start
// time leaves the server (listings, detail pages, JSON, events).
const ShowTimeLayout = "2006-01-02T15:04:05.000000Z"

// Show is a booking of an artist at a venue at a given time.
//
// Fields:
//  ID        – primary key identifier.
//  StartTime – when the show begins, always UTC at second precision.
//  VenueID   – venue hosting the show.
//  ArtistID  – artist performing.
//
// A show is past when StartTime is before the current time and upcoming
// otherwise.  The classification is never stored.
type Show struct {
	ID        uint64    `db:"id" json:"id"`                 // shows.id
	StartTime time.Time `db:"start_time" json:"start_time"` // shows.start_time
	VenueID   uint64    `db:"venue_id" json:"venue_id"`     // shows.venue_id
	ArtistID  uint64    `db:"artist_id" json:"artist_id"`   // shows.artist_id
}

// ShowListing is a show joined with its venue and artist.
type ShowListing struct {
	ID              uint64    `db:"id"`
	StartTime       time.Time `db:"start_time"`
	VenueID         uint64    `db:"venue_id"`
	VenueName       string    `db:"venue_name"`
	VenueImageLink  *string   `db:"venue_image_link"`
	ArtistID        uint64    `db:"artist_id"`
	ArtistName      string    `db:"artist_name"`
	ArtistImageLink *string   `db:"artist_image_link"`
}

// IsPast reports whether the show started strictly before now.
func (s ShowListing) IsPast(now time.Time) bool {
	return s.StartTime.Before(now)
}
