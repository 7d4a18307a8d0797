package handler

import (
	"time"

	"github.com/iliyamo/fyyur/internal/model"
)

// homePage lists the most recently listed venues and artists.
type homePage struct {
	Venues  []model.Venue  `json:"venues"`
	Artists []model.Artist `json:"artists"`
}

// venueArea groups the venues of one city and state.
type venueArea struct {
	City   string               `json:"city"`
	State  string               `json:"state"`
	Venues []model.VenueSummary `json:"venues"`
}

type searchResult struct {
	Count      int    `json:"count"`
	Data       any    `json:"data"`
	SearchTerm string `json:"search_term"`
}

// artistShow is a show as listed on a venue page.
type artistShow struct {
	ArtistID        uint64  `json:"artist_id"`
	ArtistName      string  `json:"artist_name"`
	ArtistImageLink *string `json:"artist_image_link"`
	StartTime       string  `json:"start_time"`
}

// venueShow is a show as listed on an artist page.
type venueShow struct {
	VenueID        uint64  `json:"venue_id"`
	VenueName      string  `json:"venue_name"`
	VenueImageLink *string `json:"venue_image_link"`
	StartTime      string  `json:"start_time"`
}

// showRow is one entry of the shows page.
type showRow struct {
	VenueID         uint64  `json:"venue_id"`
	VenueName       string  `json:"venue_name"`
	ArtistID        uint64  `json:"artist_id"`
	ArtistName      string  `json:"artist_name"`
	ArtistImageLink *string `json:"artist_image_link"`
	StartTime       string  `json:"start_time"`
}

type venueDetail struct {
	model.Venue
	PastShows          []artistShow `json:"past_shows"`
	UpcomingShows      []artistShow `json:"upcoming_shows"`
	PastShowsCount     int          `json:"past_shows_count"`
	UpcomingShowsCount int          `json:"upcoming_shows_count"`
}

type artistDetail struct {
	model.Artist
	PastShows          []venueShow `json:"past_shows"`
	UpcomingShows      []venueShow `json:"upcoming_shows"`
	PastShowsCount     int         `json:"past_shows_count"`
	UpcomingShowsCount int         `json:"upcoming_shows_count"`
}

// showFormData holds the choices offered by the new show page.
type showFormData struct {
	Artists []model.ArtistSummary
	Venues  []model.VenueSummary
}

// formTarget identifies the record an edit page posts back to.
type formTarget struct {
	ID   uint64
	Name string
}

func formatStart(t time.Time) string {
	return t.UTC().Format(model.ShowTimeLayout)
}

// groupByArea folds venue summaries, already ordered by city and state,
// into areas.
func groupByArea(venues []model.VenueSummary) []venueArea {
	areas := []venueArea{}
	for _, v := range venues {
		n := len(areas)
		if n == 0 || areas[n-1].City != v.City || areas[n-1].State != v.State {
			areas = append(areas, venueArea{City: v.City, State: v.State})
			n++
		}
		areas[n-1].Venues = append(areas[n-1].Venues, v)
	}
	return areas
}

func newVenueDetail(v *model.Venue, shows []model.ShowListing, now time.Time) venueDetail {
	d := venueDetail{Venue: *v, PastShows: []artistShow{}, UpcomingShows: []artistShow{}}
	for _, s := range shows {
		row := artistShow{
			ArtistID:        s.ArtistID,
			ArtistName:      s.ArtistName,
			ArtistImageLink: s.ArtistImageLink,
			StartTime:       formatStart(s.StartTime),
		}
		if s.IsPast(now) {
			d.PastShows = append(d.PastShows, row)
		} else {
			d.UpcomingShows = append(d.UpcomingShows, row)
		}
	}
	d.PastShowsCount = len(d.PastShows)
	d.UpcomingShowsCount = len(d.UpcomingShows)
	return d
}

func newArtistDetail(a *model.Artist, shows []model.ShowListing, now time.Time) artistDetail {
	d := artistDetail{Artist: *a, PastShows: []venueShow{}, UpcomingShows: []venueShow{}}
	for _, s := range shows {
		row := venueShow{
			VenueID:        s.VenueID,
			VenueName:      s.VenueName,
			VenueImageLink: s.VenueImageLink,
			StartTime:      formatStart(s.StartTime),
		}
		if s.IsPast(now) {
			d.PastShows = append(d.PastShows, row)
		} else {
			d.UpcomingShows = append(d.UpcomingShows, row)
		}
	}
	d.PastShowsCount = len(d.PastShows)
	d.UpcomingShowsCount = len(d.UpcomingShows)
	return d
}

func newShowRows(shows []model.ShowListing) []showRow {
	rows := make([]showRow, 0, len(shows))
	for _, s := range shows {
		rows = append(rows, showRow{
			VenueID:         s.VenueID,
			VenueName:       s.VenueName,
			ArtistID:        s.ArtistID,
			ArtistName:      s.ArtistName,
			ArtistImageLink: s.ArtistImageLink,
			StartTime:       formatStart(s.StartTime),
		})
	}
	return rows
}
