// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow handlers to tell a missing
// record apart from a store failure with errors.Is.
package repository

import "errors"

// ErrVenueNotFound is returned when no venue has the requested id.
var ErrVenueNotFound = errors.New("venue not found")

// ErrArtistNotFound is returned when no artist has the requested id.
var ErrArtistNotFound = errors.New("artist not found")

// ErrShowNotFound is returned when no show has the requested id.
var ErrShowNotFound = errors.New("show not found")
