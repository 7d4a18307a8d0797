package utils // package utils provides helpers for signing the flash cookie

import (
	"errors" // errors builds the sentinel for bad tokens
	"time"   // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// Flash categories.  The layout styles each one as an alert-<category> box.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot message shown on the next rendered page.  Category is
// FlashSuccess or FlashError.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// ErrInvalidFlashToken is returned when a flash cookie cannot be trusted.
var ErrInvalidFlashToken = errors.New("invalid flash token")

// flashClaims is the payload of the flash cookie.  The registered claims
// carry the expiry so stale messages are dropped by the parser.
type flashClaims struct {
	Flashes []Flash `json:"flashes"`
	jwt.RegisteredClaims
}

// NewFlashToken builds and signs an HS256 JWT holding pending flash
// messages.  The token expires after ttl so an abandoned message does not
// show up days later.
func NewFlashToken(secret string, flashes []Flash, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := flashClaims{
		Flashes: flashes,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseFlashToken verifies the signature and expiry of a flash cookie and
// returns its messages.
func ParseFlashToken(secret, raw string) ([]Flash, error) {
	var claims flashClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		// Reject anything that is not HMAC signed.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidFlashToken
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid {
		return nil, ErrInvalidFlashToken
	}
	return claims.Flashes, nil
}
