package models

import "time"

// Like records that a user liked a movie. There is no uniqueness constraint
// on (UserID, MovieID): the same user liking the same movie twice produces
// two rows.
type Like struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	MovieID   string    `json:"movieId"`
	CreatedAt time.Time `json:"createdAt"`
}
