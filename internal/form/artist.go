package form

import (
	"net/url"

	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/model"
)

// Artist is the input of the create and edit artist pages.
type Artist struct {
	Name               string   `form:"name" validate:"required,max=120"`
	City               string   `form:"city" validate:"required,max=120"`
	State              string   `form:"state" validate:"required,us_state"`
	Phone              string   `form:"phone" validate:"omitempty,phone"`
	ImageLink          string   `form:"image_link" validate:"omitempty,url,max=500"`
	Genres             []string `form:"genres" validate:"required,min=1,dive,genre"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,url,max=120"`
	WebsiteLink        string   `form:"website_link" validate:"omitempty,url,max=120"`
	SeekingVenue       bool     `form:"seeking_venue"`
	SeekingDescription string   `form:"seeking_description" validate:"max=500"`
}

// ParseArtist reads a submitted artist form.
func ParseArtist(values url.Values) Artist {
	return Artist{
		Name:               text(values, "name"),
		City:               text(values, "city"),
		State:              text(values, "state"),
		Phone:              text(values, "phone"),
		ImageLink:          text(values, "image_link"),
		Genres:             list(values, "genres"),
		FacebookLink:       text(values, "facebook_link"),
		WebsiteLink:        text(values, "website_link", "website"),
		SeekingVenue:       checked(values, "seeking_venue"),
		SeekingDescription: text(values, "seeking_description"),
	}
}

// ArtistFromModel pre-populates the edit page from a stored artist.
func ArtistFromModel(a *model.Artist) Artist {
	return Artist{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              deref(a.Phone),
		ImageLink:          deref(a.ImageLink),
		Genres:             append([]string{}, a.Genres...),
		FacebookLink:       deref(a.FacebookLink),
		WebsiteLink:        deref(a.Website),
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: deref(a.SeekingDescription),
	}
}

func (f Artist) Validate() error {
	return check(f, nil)
}

// Model converts the form into an artist row. Blank optional fields become NULL.
func (f Artist) Model() *model.Artist {
	return &model.Artist{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              optional(f.Phone),
		Genres:             database.Genres(append([]string{}, f.Genres...)),
		ImageLink:          optional(f.ImageLink),
		FacebookLink:       optional(f.FacebookLink),
		Website:            optional(f.WebsiteLink),
		SeekingVenue:       f.SeekingVenue,
		SeekingDescription: optional(f.SeekingDescription),
	}
}

func (f Artist) HasGenre(g string) bool {
	return contains(f.Genres, g)
}
