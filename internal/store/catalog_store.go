package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/isdelr/streamy-api/internal/models"
)

const movieColumns = "id, title, description, url, year, rating, poster, cover, genre_json, created_at, posted_by"

// CatalogStore holds movie and like records.
type CatalogStore struct {
	q DBTX
}

// NewCatalogStore creates a CatalogStore over a database handle.
func NewCatalogStore(db *sql.DB) *CatalogStore {
	return &CatalogStore{q: db}
}

// WithTx returns a copy of the store bound to the given transaction.
func (s *CatalogStore) WithTx(tx *sql.Tx) *CatalogStore {
	return &CatalogStore{q: tx}
}

func scanMovie(scan func(dest ...any) error) (models.Movie, error) {
	var m models.Movie
	var genreJSON string
	err := scan(&m.ID, &m.Title, &m.Description, &m.URL, &m.Year, &m.Rating, &m.Poster, &m.Cover, &genreJSON, &m.CreatedAt, &m.PostedBy)
	if err != nil {
		return models.Movie{}, err
	}
	if err := json.Unmarshal([]byte(genreJSON), &m.Genre); err != nil {
		return models.Movie{}, fmt.Errorf("decode genre: %w", err)
	}
	return m, nil
}

// MovieByID retrieves a single movie.
func (s *CatalogStore) MovieByID(ctx context.Context, id string) (models.Movie, error) {
	row := s.q.QueryRowContext(ctx, "SELECT "+movieColumns+" FROM movies WHERE id = ?", id)
	m, err := scanMovie(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Movie{}, notFound("cannot find movie with the given movie id")
		}
		return models.Movie{}, fmt.Errorf("query movie: %w", err)
	}
	return m, nil
}

// Movies returns all movies, or, when search is non-empty, the movies whose
// title or description contains the search string case-insensitively.
func (s *CatalogStore) Movies(ctx context.Context, search string) ([]models.Movie, error) {
	query := "SELECT " + movieColumns + " FROM movies"
	args := []any{}
	if search != "" {
		query += " WHERE instr(lower(title), lower(?)) > 0 OR instr(lower(description), lower(?)) > 0"
		args = append(args, search, search)
	}
	query += " ORDER BY created_at"

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query movies: %w", err)
	}
	defer rows.Close()

	movies := []models.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

// CreateMovie inserts a movie record.
func (s *CatalogStore) CreateMovie(ctx context.Context, m models.Movie) error {
	genreJSON, err := json.Marshal(m.Genre)
	if err != nil {
		return fmt.Errorf("encode genre: %w", err)
	}
	_, err = s.q.ExecContext(ctx,
		"INSERT INTO movies (id, title, description, url, year, rating, poster, cover, genre_json, posted_by) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		m.ID, m.Title, m.Description, m.URL, m.Year, m.Rating, m.Poster, m.Cover, string(genreJSON), m.PostedBy,
	)
	if err != nil {
		return mapWriteErr(err, "insert movie")
	}
	return nil
}

// UpdateMovie overwrites the mutable fields of a movie record. The creation
// timestamp and posted_by reference are immutable and left untouched.
func (s *CatalogStore) UpdateMovie(ctx context.Context, m models.Movie) error {
	genreJSON, err := json.Marshal(m.Genre)
	if err != nil {
		return fmt.Errorf("encode genre: %w", err)
	}
	_, err = s.q.ExecContext(ctx,
		"UPDATE movies SET title = ?, description = ?, url = ?, year = ?, rating = ?, poster = ?, cover = ?, genre_json = ? WHERE id = ?",
		m.Title, m.Description, m.URL, m.Year, m.Rating, m.Poster, m.Cover, string(genreJSON), m.ID,
	)
	if err != nil {
		return mapWriteErr(err, "update movie")
	}
	return nil
}

// DeleteMovie removes a movie record; its likes are removed by the cascade
// rule.
func (s *CatalogStore) DeleteMovie(ctx context.Context, id string) error {
	res, err := s.q.ExecContext(ctx, "DELETE FROM movies WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notFound("cannot find movie with the given movie id")
	}
	return nil
}

// CreateLike inserts a like record. There is deliberately no uniqueness
// constraint on (user_id, movie_id).
func (s *CatalogStore) CreateLike(ctx context.Context, l models.Like) error {
	_, err := s.q.ExecContext(ctx,
		"INSERT INTO likes (id, user_id, movie_id) VALUES (?, ?, ?)",
		l.ID, l.UserID, l.MovieID,
	)
	if err != nil {
		return mapWriteErr(err, "insert like")
	}
	return nil
}

// LatestLike returns the most recently created like of the given user on the
// given movie. With duplicate likes present this picks exactly one.
func (s *CatalogStore) LatestLike(ctx context.Context, userID, movieID string) (models.Like, error) {
	var l models.Like
	row := s.q.QueryRowContext(ctx,
		"SELECT id, user_id, movie_id, created_at FROM likes WHERE user_id = ? AND movie_id = ? ORDER BY created_at DESC, id DESC LIMIT 1",
		userID, movieID,
	)
	err := row.Scan(&l.ID, &l.UserID, &l.MovieID, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Like{}, notFound("no like found for this movie")
		}
		return models.Like{}, fmt.Errorf("query like: %w", err)
	}
	return l, nil
}

// DeleteLike removes a single like record by ID.
func (s *CatalogStore) DeleteLike(ctx context.Context, id string) error {
	res, err := s.q.ExecContext(ctx, "DELETE FROM likes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notFound("no like found for this movie")
	}
	return nil
}

// Likes returns all like records.
func (s *CatalogStore) Likes(ctx context.Context) ([]models.Like, error) {
	rows, err := s.q.QueryContext(ctx, "SELECT id, user_id, movie_id, created_at FROM likes ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("query likes: %w", err)
	}
	defer rows.Close()

	likes := []models.Like{}
	for rows.Next() {
		var l models.Like
		if err := rows.Scan(&l.ID, &l.UserID, &l.MovieID, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan like: %w", err)
		}
		likes = append(likes, l)
	}
	return likes, rows.Err()
}
