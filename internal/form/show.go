package form

import (
	"net/url"
	"strconv"
	"time"

	"github.com/iliyamo/fyyur/internal/model"
)

// InputTimeLayout is how the show form displays and most commonly receives
// start times.
const InputTimeLayout = "2006-01-02 15:04:05"

// startTimeLayouts are tried in order when reading start_time. Values
// without a zone are taken as UTC.
var startTimeLayouts = []string{
	InputTimeLayout,
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	model.ShowTimeLayout,
	time.RFC3339,
}

// Show is the input of the create show page.
type Show struct {
	ArtistID  uint64    `form:"artist_id" validate:"required"`
	VenueID   uint64    `form:"venue_id" validate:"required"`
	StartTime time.Time `form:"start_time" validate:"required"`

	// Raw values are echoed back when the form is redisplayed.
	RawArtistID  string `form:"-"`
	RawVenueID   string `form:"-"`
	RawStartTime string `form:"-"`

	parseErrs FieldErrors
}

// NewShow returns an empty show form whose start time defaults to now.
func NewShow(now time.Time) Show {
	return Show{RawStartTime: now.UTC().Format(InputTimeLayout)}
}

// ParseShow reads a submitted show form. Malformed ids or times are kept as
// field errors and reported by Validate.
func ParseShow(values url.Values) Show {
	f := Show{
		RawArtistID:  text(values, "artist_id"),
		RawVenueID:   text(values, "venue_id"),
		RawStartTime: text(values, "start_time"),
	}
	f.ArtistID = f.parseID("artist_id", f.RawArtistID)
	f.VenueID = f.parseID("venue_id", f.RawVenueID)
	if f.RawStartTime != "" {
		t, ok := parseStartTime(f.RawStartTime)
		if !ok {
			f.parseErrs = append(f.parseErrs, FieldError{Field: "start_time", Message: "Not a valid datetime value."})
		}
		f.StartTime = t
	}
	return f
}

func (f *Show) parseID(field, raw string) uint64 {
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		f.parseErrs = append(f.parseErrs, FieldError{Field: field, Message: "Not a valid integer value."})
		return 0
	}
	return id
}

func parseStartTime(raw string) (time.Time, bool) {
	for _, layout := range startTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func (f Show) Validate() error {
	return check(f, f.parseErrs)
}

// Model converts the form into a show row.
func (f Show) Model() *model.Show {
	return &model.Show{
		ArtistID:  f.ArtistID,
		VenueID:   f.VenueID,
		StartTime: f.StartTime.UTC().Truncate(time.Second),
	}
}
