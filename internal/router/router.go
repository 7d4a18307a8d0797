package router // package router wires middleware and routes onto an echo instance

import (
	"time" // time sets the flash lifetime

	"github.com/google/uuid"                                                        // uuid generates request ids
	"github.com/labstack/echo/v4"                                                   // echo is the web framework
	echomw "github.com/labstack/echo/v4/middleware"                                 // stock echo middleware
	"github.com/prometheus/client_golang/prometheus/promhttp"                       // promhttp serves /metrics
	"github.com/redis/go-redis/v9"                                                  // redis backs the rate limiter
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho" // otelecho traces requests
	"go.uber.org/zap"                                                               // zap logs requests

	"github.com/iliyamo/fyyur/internal/config"     // config carries rate limit settings
	"github.com/iliyamo/fyyur/internal/handler"    // handler implements the pages
	"github.com/iliyamo/fyyur/internal/middleware" // middleware holds the project middleware
	"github.com/iliyamo/fyyur/internal/render"     // render provides templates and static files
)

// Options configures the middleware chain.
type Options struct {
	SecretKey   string                 // signs the flash cookie
	FlashTTL    time.Duration          // lifetime of pending flash messages
	RateLimit   config.RateLimitConfig // token bucket settings
	Redis       *redis.Client          // nil disables rate limiting
	Log         *zap.Logger            // request and error logging
	ServiceName string                 // name reported on spans
}

// New builds the echo instance serving Fyyur.
func New(h *handler.Handler, opts Options) (*echo.Echo, error) {
	renderer, err := render.New()
	if err != nil {
		return nil, err
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.ServiceName == "" {
		opts.ServiceName = "fyyur"
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.HTTPErrorHandler = h.HTTPErrorHandler

	// Forms can only send GET and POST; _method=DELETE turns a post into a delete.
	e.Pre(echomw.MethodOverrideWithConfig(echomw.MethodOverrideConfig{
		Getter: echomw.MethodFromForm("_method"),
	}))

	// Session must wrap Logger: error pages rendered from Logger read the flash bag.
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	}))
	e.Use(otelecho.Middleware(opts.ServiceName))
	e.Use(middleware.Session(opts.SecretKey, opts.FlashTTL))
	e.Use(middleware.Metrics())
	e.Use(middleware.Logger(opts.Log))
	e.Use(echomw.Recover())
	e.Use(middleware.NewTokenBucket(opts.RateLimit, opts.Redis, opts.Log))

	RegisterRoutes(e, h)
	return e, nil
}

// RegisterRoutes maps every Fyyur page onto e.
func RegisterRoutes(e *echo.Echo, h *handler.Handler) {
	// Operational endpoints.
	e.GET("/healthz", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.StaticFS("/static", render.Static())

	e.GET("/", h.Home)

	// Venues.  The literal paths are registered before /venues/:id.
	e.GET("/venues", h.ListVenues)
	e.POST("/venues/search", h.SearchVenues)
	e.GET("/venues/create", h.NewVenueForm)
	e.POST("/venues/create", h.CreateVenue)
	e.GET("/venues/:id", h.ShowVenue)
	e.DELETE("/venues/:id", h.DeleteVenue)
	e.GET("/venues/:id/edit", h.EditVenueForm)
	e.POST("/venues/:id/edit", h.UpdateVenue)

	// Artists.  They cannot be deleted.
	e.GET("/artists", h.ListArtists)
	e.POST("/artists/search", h.SearchArtists)
	e.GET("/artists/create", h.NewArtistForm)
	e.POST("/artists/create", h.CreateArtist)
	e.GET("/artists/:id", h.ShowArtist)
	e.GET("/artists/:id/edit", h.EditArtistForm)
	e.POST("/artists/:id/edit", h.UpdateArtist)

	// Shows.
	e.GET("/shows", h.ListShows)
	e.GET("/shows/create", h.NewShowForm)
	e.POST("/shows/create", h.CreateShow)
}
