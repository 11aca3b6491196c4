package models

import "time"

// Movie represents a single catalog entry.
type Movie struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Year        int       `json:"year"`
	Rating      int       `json:"rating"`
	Poster      string    `json:"poster"`
	Cover       string    `json:"cover"`
	Genre       []string  `json:"genre"`
	CreatedAt   time.Time `json:"createdAt"`
	PostedBy    string    `json:"postedBy"` // ID of the user who created the movie
}

// MaxTitleLen mirrors the column limit on movies.title.
const MaxTitleLen = 50

// Year and rating are persisted as positive small integers.
const (
	MaxYear   = 32767
	MaxRating = 32767
)
