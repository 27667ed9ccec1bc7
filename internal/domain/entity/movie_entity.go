package entity

import (
	"time"
)

// Movie is an independent catalog aggregate; it carries no relation to User.
// ReleaseDate is free text as entered by the admin, no calendar validation.
type Movie struct {
	ID          int64
	Title       string
	Description string
	Image       string // stored poster URL or filename
	Genre       string
	Director    string
	ReleaseDate string
	Rating      float64
	CreatedAt   time.Time
}
