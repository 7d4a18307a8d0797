package form

import (
	"net/url"

	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/model"
)

// Venue is the input of the create and edit venue pages.
type Venue struct {
	Name               string   `form:"name" validate:"required,max=120"`
	City               string   `form:"city" validate:"required,max=120"`
	State              string   `form:"state" validate:"required,us_state"`
	Address            string   `form:"address" validate:"required,max=120"`
	Phone              string   `form:"phone" validate:"omitempty,phone"`
	ImageLink          string   `form:"image_link" validate:"omitempty,url,max=500"`
	Genres             []string `form:"genres" validate:"required,min=1,dive,genre"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,url,max=120"`
	WebsiteLink        string   `form:"website_link" validate:"omitempty,url,max=120"`
	SeekingTalent      bool     `form:"seeking_talent"`
	SeekingDescription string   `form:"seeking_description" validate:"max=500"`
}

// ParseVenue reads a submitted venue form.
func ParseVenue(values url.Values) Venue {
	return Venue{
		Name:               text(values, "name"),
		City:               text(values, "city"),
		State:              text(values, "state"),
		Address:            text(values, "address"),
		Phone:              text(values, "phone"),
		ImageLink:          text(values, "image_link"),
		Genres:             list(values, "genres"),
		FacebookLink:       text(values, "facebook_link"),
		WebsiteLink:        text(values, "website_link", "website"),
		SeekingTalent:      checked(values, "seeking_talent"),
		SeekingDescription: text(values, "seeking_description"),
	}
}

// VenueFromModel pre-populates the edit page from a stored venue.
func VenueFromModel(v *model.Venue) Venue {
	return Venue{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              deref(v.Phone),
		ImageLink:          deref(v.ImageLink),
		Genres:             append([]string{}, v.Genres...),
		FacebookLink:       deref(v.FacebookLink),
		WebsiteLink:        deref(v.Website),
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: deref(v.SeekingDescription),
	}
}

// Validate returns FieldErrors when any constraint fails.
func (f Venue) Validate() error {
	return check(f, nil)
}

// Model converts the form into a venue row. Blank optional fields become NULL.
func (f Venue) Model() *model.Venue {
	return &model.Venue{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Address:            f.Address,
		Phone:              optional(f.Phone),
		ImageLink:          optional(f.ImageLink),
		FacebookLink:       optional(f.FacebookLink),
		Website:            optional(f.WebsiteLink),
		Genres:             database.Genres(append([]string{}, f.Genres...)),
		SeekingTalent:      f.SeekingTalent,
		SeekingDescription: optional(f.SeekingDescription),
	}
}

// HasGenre reports whether g is selected; the genre picker uses it.
func (f Venue) HasGenre(g string) bool {
	return contains(f.Genres, g)
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
