// Package repository contains data access logic separated from HTTP
// handlers.  Sentinel errors defined here let handlers distinguish
// failure scenarios without inspecting driver-specific errors; the
// repositories translate those at the storage boundary.
package repository

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrUsernameTaken is returned when a registration collides with an
	// existing username, whether caught by the pre-check or by the
	// unique constraint itself.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrUserNotFound is returned when no user carries the given username.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidPassword is returned when the password hash comparison fails.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrImageNotFound is returned when no image record has the given id.
	ErrImageNotFound = errors.New("image not found")

	// ErrFileMissing is returned when an image record exists but its
	// backing file is gone.  It is deliberately distinct from
	// ErrImageNotFound so callers can log the inconsistency even when
	// both end up as a 404.
	ErrFileMissing = errors.New("image file missing")

	// ErrCinemaNotFound is returned when no cinema has the given id.
	ErrCinemaNotFound = errors.New("cinema not found")

	// ErrInvalidPrice is returned when a create or update supplies a
	// negative price.  Validation happens before any write.
	ErrInvalidPrice = errors.New("price must be a non-negative number")
)

// timeLayout is the storage form of all timestamps.  Its fixed width
// makes lexical ordering match chronological ordering on both drivers.
const timeLayout = "2006-01-02 15:04:05"

func stamp(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// isDuplicate detects a unique-constraint violation from either
// supported driver (MySQL error 1062, SQLite "UNIQUE constraint
// failed").
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "1062") || strings.Contains(msg, "unique constraint")
}
