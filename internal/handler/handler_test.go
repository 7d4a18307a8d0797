package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/handler"
	"github.com/iliyamo/fyyur/internal/middleware"
	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/router"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.ShowBookedEvent
	err    error
}

func (p *recordingPublisher) PublishShowBooked(_ context.Context, ev queue.ShowBookedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

type app struct {
	e   *echo.Echo
	db  *sqlx.DB
	h   *handler.Handler
	pub *recordingPublisher
}

func newApp(t *testing.T) *app {
	t.Helper()
	cfg := database.Config{Driver: database.DriverSQLite, Path: filepath.Join(t.TempDir(), "fyyur.db")}
	require.NoError(t, database.Migrate(cfg, zap.NewNop()))
	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	pub := &recordingPublisher{}
	h := handler.New(repository.NewVenueRepo(db), repository.NewArtistRepo(db), repository.NewShowRepo(db), pub, zap.NewNop())
	h.Now = func() time.Time { return now }

	e, err := router.New(h, router.Options{
		SecretKey: "test-secret",
		FlashTTL:  time.Minute,
		RateLimit: config.RateLimitConfig{Enabled: false},
	})
	require.NoError(t, err)
	return &app{e: e, db: db, h: h, pub: pub}
}

func (a *app) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *app) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	return a.do(req)
}

func (a *app) getJSON(t *testing.T, path string, out any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	rec := a.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func (a *app) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return a.do(req)
}

func (a *app) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, a.db.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}

func flashCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.FlashCookie {
			return ck
		}
	}
	return nil
}

func venueForm(name, city, state string) url.Values {
	return url.Values{
		"name":                {name},
		"city":                {city},
		"state":               {state},
		"address":             {"1015 Folsom Street"},
		"phone":               {"123-123-1234"},
		"genres":              {"Jazz", "Reggae"},
		"image_link":          {"https://images.example.com/hop.jpg"},
		"facebook_link":       {"https://www.facebook.com/TheMusicalHop"},
		"website_link":        {"https://www.themusicalhop.com"},
		"seeking_talent":      {"y"},
		"seeking_description": {"We are on the lookout for a local artist."},
	}
}

func artistForm(name string) url.Values {
	return url.Values{
		"name":       {name},
		"city":       {"San Francisco"},
		"state":      {"CA"},
		"genres":     {"Rock n Roll"},
		"image_link": {"https://images.example.com/" + url.PathEscape(name) + ".jpg"},
	}
}

func (a *app) createVenue(t *testing.T, name, city, state string) uint64 {
	t.Helper()
	rec := a.post("/venues/create", venueForm(name, city, state))
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	var id uint64
	require.NoError(t, a.db.Get(&id, "SELECT MAX(id) FROM venues"))
	return id
}

func (a *app) createArtist(t *testing.T, name string) uint64 {
	t.Helper()
	rec := a.post("/artists/create", artistForm(name))
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	var id uint64
	require.NoError(t, a.db.Get(&id, "SELECT MAX(id) FROM artists"))
	return id
}

func (a *app) createShow(t *testing.T, artistID, venueID uint64, start time.Time) {
	t.Helper()
	rec := a.post("/shows/create", url.Values{
		"artist_id":  {itoa(artistID)},
		"venue_id":   {itoa(venueID)},
		"start_time": {start.Format("2006-01-02 15:04:05")},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
}

func itoa(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func TestHealth(t *testing.T) {
	a := newApp(t)
	rec := a.get("/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	a := newApp(t)
	a.get("/venues")
	rec := a.get("/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fyyur_http_requests_total")
}

func TestStaticAssets(t *testing.T) {
	a := newApp(t)
	rec := a.get("/static/css/main.css")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateVenue_PersistsAndFlashes(t *testing.T) {
	a := newApp(t)

	rec := a.post("/venues/create", venueForm("The Musical Hop", "San Francisco", "CA"))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, 1, a.count(t, "venues"))

	ck := flashCookie(rec)
	require.NotNil(t, ck)
	home := a.get("/", ck)
	assert.Equal(t, http.StatusOK, home.Code)
	assert.Contains(t, home.Body.String(), "Venue The Musical Hop was successfully listed!")
	assert.Contains(t, home.Body.String(), "The Musical Hop")

	var detail map[string]any
	a.getJSON(t, "/venues/1", &detail)
	assert.Equal(t, "The Musical Hop", detail["name"])
	assert.Equal(t, "1015 Folsom Street", detail["address"])
	assert.Equal(t, "https://www.themusicalhop.com", detail["website"])
	assert.Equal(t, true, detail["seeking_talent"])
	assert.Equal(t, []any{"Jazz", "Reggae"}, detail["genres"])
	assert.EqualValues(t, 0, detail["past_shows_count"])
	assert.Equal(t, []any{}, detail["upcoming_shows"])
}

func TestCreateVenue_InvalidRedisplaysForm(t *testing.T) {
	a := newApp(t)

	f := venueForm("The Musical Hop", "", "XX")
	f.Set("phone", "not a phone")
	rec := a.post("/venues/create", f)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "This field is required.")
	assert.Contains(t, body, "Not a valid choice.")
	assert.Contains(t, body, "Invalid phone number.")
	assert.Contains(t, body, "Please correct the errors below and try again.")
	assert.Contains(t, body, `value="The Musical Hop"`)
	assert.Equal(t, 0, a.count(t, "venues"))
}

func TestListVenues_GroupsByArea(t *testing.T) {
	a := newApp(t)
	hop := a.createVenue(t, "The Musical Hop", "San Francisco", "CA")
	a.createVenue(t, "The Dueling Pianos Bar", "New York", "NY")
	park := a.createVenue(t, "Park Square Live Music & Coffee", "San Francisco", "CA")
	artist := a.createArtist(t, "Guns N Petals")
	a.createShow(t, artist, hop, now.Add(24*time.Hour))
	a.createShow(t, artist, hop, now.Add(-24*time.Hour))

	var areas []struct {
		City   string `json:"city"`
		State  string `json:"state"`
		Venues []struct {
			ID               uint64 `json:"id"`
			Name             string `json:"name"`
			NumUpcomingShows int    `json:"num_upcoming_shows"`
		} `json:"venues"`
	}
	a.getJSON(t, "/venues", &areas)

	require.Len(t, areas, 2)
	assert.Equal(t, "New York", areas[0].City)
	assert.Equal(t, "San Francisco", areas[1].City)
	require.Len(t, areas[1].Venues, 2)
	assert.Equal(t, hop, areas[1].Venues[0].ID)
	assert.Equal(t, 1, areas[1].Venues[0].NumUpcomingShows)
	assert.Equal(t, park, areas[1].Venues[1].ID)
	assert.Equal(t, 0, areas[1].Venues[1].NumUpcomingShows)

	html := a.get("/venues").Body.String()
	assert.Contains(t, html, "San Francisco, CA")
	assert.Contains(t, html, "Park Square Live Music &amp; Coffee")
}

func TestSearchVenues(t *testing.T) {
	a := newApp(t)
	a.createVenue(t, "The Musical Hop", "San Francisco", "CA")
	a.createVenue(t, "The Dueling Pianos Bar", "New York", "NY")
	a.createVenue(t, "Park Square Live Music & Coffee", "San Francisco", "CA")

	rec := a.post("/venues/search", url.Values{"search_term": {"Music"}})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `Number of search results for "Music": 2`)
	assert.Contains(t, body, "The Musical Hop")
	assert.NotContains(t, body, "Dueling")

	rec = a.post("/venues/search", url.Values{"search_term": {"hop"}})
	assert.Contains(t, rec.Body.String(), ": 1</h3>")
}

func TestShowVenue_NotFound(t *testing.T) {
	a := newApp(t)
	for _, path := range []string{"/venues/42", "/venues/abc", "/artists/42", "/nowhere"} {
		rec := a.get(path)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "Not Found", path)
	}
}

func TestShowVenue_RepeatedReadsAreIdentical(t *testing.T) {
	a := newApp(t)
	venue := a.createVenue(t, "The Musical Hop", "San Francisco", "CA")
	artist := a.createArtist(t, "Guns N Petals")
	a.createShow(t, artist, venue, now.Add(24*time.Hour))
	a.createShow(t, artist, venue, now.Add(-24*time.Hour))

	read := func() string {
		req := httptest.NewRequest(http.MethodGet, "/venues/"+itoa(venue), nil)
		req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
		rec := a.do(req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		return rec.Body.String()
	}

	first := read()
	second := read()
	assert.Equal(t, first, second)
	assert.Equal(t, 1, a.count(t, "venues"))
	assert.Equal(t, 2, a.count(t, "shows"))
}

func TestShowVenue_SplitsPastAndUpcoming(t *testing.T) {
	a := newApp(t)
	venue := a.createVenue(t, "The Musical Hop", "San Francisco", "CA")
	artist := a.createArtist(t, "Guns N Petals")
	a.createShow(t, artist, venue, now.Add(-48*time.Hour))
	a.createShow(t, artist, venue, now)
	a.createShow(t, artist, venue, now.Add(48*time.Hour))

	var detail struct {
		PastShows []struct {
			ArtistID   uint64 `json:"artist_id"`
			ArtistName string `json:"artist_name"`
			StartTime  string `json:"start_time"`
		} `json:"past_shows"`
		UpcomingShows []struct {
			StartTime string `json:"start_time"`
		} `json:"upcoming_shows"`
		PastShowsCount     int `json:"past_shows_count"`
		UpcomingShowsCount int `json:"upcoming_shows_count"`
	}
	a.getJSON(t, "/venues/1", &detail)

	assert.Equal(t, 1, detail.PastShowsCount)
	assert.Equal(t, 2, detail.UpcomingShowsCount)
	require.Len(t, detail.PastShows, 1)
	assert.Equal(t, "Guns N Petals", detail.PastShows[0].ArtistName)
	assert.Equal(t, "2025-05-30T12:00:00.000000Z", detail.PastShows[0].StartTime)
	assert.Equal(t, "2025-06-01T12:00:00.000000Z", detail.UpcomingShows[0].StartTime)

	html := a.get("/venues/1").Body.String()
	assert.Contains(t, html, "2 Upcoming Shows")
	assert.Contains(t, html, "1 Past Show")
	assert.Contains(t, html, "Friday May, 30, 2025 at 12:00PM")
}

func TestEditVenue(t *testing.T) {
	a := newApp(t)
	id := a.createVenue(t, "The Musical Hop", "San Francisco", "CA")

	rec := a.get("/venues/1/edit")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="1015 Folsom Street"`)

	f := venueForm("The Musical Hop", "Oakland", "CA")
	f.Del("seeking_talent")
	rec = a.post("/venues/1/edit", f)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/venues/1", rec.Header().Get(echo.HeaderLocation))

	var v model.Venue
	require.NoError(t, a.db.Get(&v, "SELECT * FROM venues WHERE id = ?", id))
	assert.Equal(t, "Oakland", v.City)
	assert.False(t, v.SeekingTalent)

	page := a.get("/venues/1", flashCookie(rec))
	assert.Contains(t, page.Body.String(), "Venue The Musical Hop was successfully updated!")
}

func TestEditVenue_Invalid(t *testing.T) {
	a := newApp(t)
	a.createVenue(t, "The Musical Hop", "San Francisco", "CA")

	f := venueForm("", "Oakland", "CA")
	rec := a.post("/venues/1/edit", f)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var city string
	require.NoError(t, a.db.Get(&city, "SELECT city FROM venues WHERE id = 1"))
	assert.Equal(t, "San Francisco", city)
}

func TestEditVenue_Missing(t *testing.T) {
	a := newApp(t)
	rec := a.get("/venues/7/edit")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/venues", rec.Header().Get(echo.HeaderLocation))

	rec = a.post("/venues/7/edit", venueForm("The Musical Hop", "Oakland", "CA"))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 0, a.count(t, "venues"))
}

func TestDeleteVenue(t *testing.T) {
	a := newApp(t)
	venue := a.createVenue(t, "The Musical Hop", "San Francisco", "CA")
	keep := a.createVenue(t, "The Dueling Pianos Bar", "New York", "NY")
	artist := a.createArtist(t, "Guns N Petals")
	a.createShow(t, artist, venue, now.Add(time.Hour))
	a.createShow(t, artist, keep, now.Add(time.Hour))

	req := httptest.NewRequest(http.MethodDelete, "/venues/1", nil)
	rec := a.do(req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, 1, a.count(t, "venues"))
	assert.Equal(t, 1, a.count(t, "shows"))

	home := a.get("/", flashCookie(rec))
	assert.Contains(t, home.Body.String(), "Venue The Musical Hop was successfully deleted!")
}

func TestDeleteVenue_MethodOverride(t *testing.T) {
	a := newApp(t)
	a.createVenue(t, "The Musical Hop", "San Francisco", "CA")

	rec := a.post("/venues/1", url.Values{"_method": {"DELETE"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 0, a.count(t, "venues"))
}

func TestDeleteVenue_Missing(t *testing.T) {
	a := newApp(t)
	a.createVenue(t, "The Musical Hop", "San Francisco", "CA")

	rec := a.do(httptest.NewRequest(http.MethodDelete, "/venues/99", nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 1, a.count(t, "venues"))

	home := a.get("/", flashCookie(rec))
	assert.Contains(t, home.Body.String(), "Venue not found.")
}

func TestArtists_CreateListSearchEdit(t *testing.T) {
	a := newApp(t)
	a.createArtist(t, "Guns N Petals")
	a.createArtist(t, "Matt Quevedo")
	a.createArtist(t, "The Wild Sax Band")

	var list []struct {
		ID   uint64 `json:"id"`
		Name string `json:"name"`
	}
	a.getJSON(t, "/artists", &list)
	require.Len(t, list, 3)
	assert.Equal(t, "Guns N Petals", list[0].Name)

	rec := a.post("/artists/search", url.Values{"search_term": {"A"}})
	assert.Contains(t, rec.Body.String(), ": 3</h3>")
	rec = a.post("/artists/search", url.Values{"search_term": {"band"}})
	assert.Contains(t, rec.Body.String(), "The Wild Sax Band")
	assert.Contains(t, rec.Body.String(), ": 1</h3>")

	f := artistForm("Guns N Petals")
	f.Set("seeking_venue", "on")
	f.Set("seeking_description", "Looking for shows to perform at in the San Francisco Bay Area!")
	rec = a.post("/artists/1/edit", f)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/artists/1", rec.Header().Get(echo.HeaderLocation))

	page := a.get("/artists/1", flashCookie(rec))
	body := page.Body.String()
	assert.Contains(t, body, "Artist Guns N Petals was successfully updated!")
	assert.Contains(t, body, "Currently seeking performance venues")
}

func TestCreateArtist_Invalid(t *testing.T) {
	a := newApp(t)
	f := artistForm("Guns N Petals")
	f.Set("genres", "Polka")
	rec := a.post("/artists/create", f)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "&#39;Polka&#39; is not a valid genre.")
	assert.Equal(t, 0, a.count(t, "artists"))
}

func TestArtistEdit_Missing(t *testing.T) {
	a := newApp(t)
	rec := a.get("/artists/3/edit")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/artists", rec.Header().Get(echo.HeaderLocation))
}

func TestCreateShow_PublishesEvent(t *testing.T) {
	a := newApp(t)
	venue := a.createVenue(t, "The Musical Hop", "San Francisco", "CA")
	artist := a.createArtist(t, "Guns N Petals")

	form := a.get("/shows/create")
	require.Equal(t, http.StatusOK, form.Code)
	assert.Contains(t, form.Body.String(), "Guns N Petals (ID 1)")
	assert.Contains(t, form.Body.String(), `value="2025-06-01 12:00:00"`)

	start := time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)
	a.createShow(t, artist, venue, start)
	assert.Equal(t, 1, a.count(t, "shows"))

	require.Len(t, a.pub.events, 1)
	ev := a.pub.events[0]
	assert.Equal(t, "Guns N Petals", ev.ArtistName)
	assert.Equal(t, "The Musical Hop", ev.VenueName)
	assert.Equal(t, "2035-04-01T20:00:00.000000Z", ev.StartTime)
	assert.Equal(t, "2025-06-01T12:00:00.000000Z", ev.BookedAt)

	var rows []struct {
		VenueName  string `json:"venue_name"`
		ArtistName string `json:"artist_name"`
		StartTime  string `json:"start_time"`
	}
	a.getJSON(t, "/shows", &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, "2035-04-01T20:00:00.000000Z", rows[0].StartTime)
}

func TestCreateShow_PublishFailureStillBooks(t *testing.T) {
	a := newApp(t)
	a.pub.err = errors.New("broker down")
	venue := a.createVenue(t, "The Musical Hop", "San Francisco", "CA")
	artist := a.createArtist(t, "Guns N Petals")

	rec := a.post("/shows/create", url.Values{
		"artist_id":  {itoa(artist)},
		"venue_id":   {itoa(venue)},
		"start_time": {now.Add(time.Hour).Format("2006-01-02 15:04:05")},
	})

	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	assert.Equal(t, 1, a.count(t, "shows"))
	assert.Len(t, a.pub.events, 1)
	home := a.get("/", flashCookie(rec))
	assert.Contains(t, home.Body.String(), "Show was successfully listed!")
}

func TestCreateShow_MissingArtist(t *testing.T) {
	a := newApp(t)
	venue := a.createVenue(t, "The Musical Hop", "San Francisco", "CA")

	rec := a.post("/shows/create", url.Values{
		"artist_id":  {"99"},
		"venue_id":   {itoa(venue)},
		"start_time": {"2035-04-01 20:00:00"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Show could not be listed.")
	assert.Equal(t, 0, a.count(t, "shows"))
	assert.Empty(t, a.pub.events)
}

func TestCreateShow_Invalid(t *testing.T) {
	a := newApp(t)
	rec := a.post("/shows/create", url.Values{
		"artist_id":  {"one"},
		"venue_id":   {""},
		"start_time": {"tomorrow"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Not a valid integer value.")
	assert.Contains(t, body, "This field is required.")
	assert.Contains(t, body, "Not a valid datetime value.")
}

func TestFlashIsShownOnce(t *testing.T) {
	a := newApp(t)
	rec := a.post("/artists/create", artistForm("Guns N Petals"))
	ck := flashCookie(rec)
	require.NotNil(t, ck)

	first := a.get("/", ck)
	assert.Contains(t, first.Body.String(), "successfully listed")
	cleared := flashCookie(first)
	require.NotNil(t, cleared)
	assert.Less(t, cleared.MaxAge, 0)
}

func TestHTTPErrorHandler_JSON(t *testing.T) {
	a := newApp(t)
	req := httptest.NewRequest(http.MethodGet, "/venues/404", nil)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	rec := a.do(req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())
}

func TestHTTPErrorHandler_MethodNotAllowed(t *testing.T) {
	a := newApp(t)
	rec := a.do(httptest.NewRequest(http.MethodPut, "/artists", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
