package middleware // middleware contains reusable HTTP middleware functions

import (
	"net/http" // http provides cookie types
	"time"     // time sets the cookie lifetime

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware

	"github.com/iliyamo/fyyur/internal/utils" // utils signs and verifies the flash cookie
)

// FlashCookie is the name of the cookie carrying pending flash messages.
const FlashCookie = "fyyur_flash"

const flashKey = "flash"

// FlashBag collects the flash messages of one browser.  Messages added
// while handling a request are shown by the next page that renders them,
// which is either the current response or the page after a redirect.
type FlashBag struct {
	pending   []utils.Flash
	hadCookie bool
}

// Add queues a message.
func (b *FlashBag) Add(category, message string) {
	b.pending = append(b.pending, utils.Flash{Category: category, Message: message})
}

// Take returns every queued message and empties the bag.
func (b *FlashBag) Take() []utils.Flash {
	out := b.pending
	b.pending = nil
	return out
}

// Flashes returns the bag installed by Session.  Without the middleware a
// detached bag is returned so handlers never need a nil check.
func Flashes(c echo.Context) *FlashBag {
	if b, ok := c.Get(flashKey).(*FlashBag); ok {
		return b
	}
	b := &FlashBag{}
	c.Set(flashKey, b)
	return b
}

// Session restores flash messages from the signed cookie and writes the
// ones still pending back just before the response headers go out.  A
// cookie that fails verification is ignored.
func Session(secret string, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			bag := &FlashBag{}
			if ck, err := c.Cookie(FlashCookie); err == nil && ck.Value != "" {
				bag.hadCookie = true
				if msgs, err := utils.ParseFlashToken(secret, ck.Value); err == nil {
					bag.pending = msgs
				}
			}
			c.Set(flashKey, bag)

			c.Response().Before(func() {
				writeFlashCookie(c, secret, ttl, bag)
			})
			return next(c)
		}
	}
}

func writeFlashCookie(c echo.Context, secret string, ttl time.Duration, bag *FlashBag) {
	ck := &http.Cookie{
		Name:     FlashCookie,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	switch {
	case len(bag.pending) > 0:
		raw, err := utils.NewFlashToken(secret, bag.pending, ttl)
		if err != nil {
			return
		}
		ck.Value = raw
		ck.MaxAge = int(ttl / time.Second)
	case bag.hadCookie:
		// everything was shown, drop the cookie
		ck.MaxAge = -1
	default:
		return
	}
	c.SetCookie(ck)
}
