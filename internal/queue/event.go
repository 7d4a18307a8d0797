// Package queue defines message payloads exchanged over the message broker
// and the consumer that turns them into the booking log.
package queue

// ShowBookedQueue is the durable queue carrying ShowBookedEvent messages.
const ShowBookedQueue = "show.booked"

// ShowBookedEvent is published after a show is committed.  It carries the
// artist and venue names so consumers do not need to query the database.
type ShowBookedEvent struct {
	ShowID     uint64 `json:"show_id"`
	ArtistID   uint64 `json:"artist_id"`
	ArtistName string `json:"artist_name"`
	VenueID    uint64 `json:"venue_id"`
	VenueName  string `json:"venue_name"`
	StartTime  string `json:"start_time"`
	BookedAt   string `json:"booked_at"`
}
