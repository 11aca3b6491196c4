package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/isdelr/streamy-api/internal/models"
)

const userColumns = "id, username, email, first_name, last_name, password_hash, is_superuser, created_at"

// UserStore is the identity store: user records keyed by id, username and
// email.
type UserStore struct {
	q DBTX
}

// NewUserStore creates a UserStore over a database handle.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{q: db}
}

// WithTx returns a copy of the store bound to the given transaction.
func (s *UserStore) WithTx(tx *sql.Tx) *UserStore {
	return &UserStore{q: tx}
}

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	var superuser int
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &superuser, &u.CreatedAt)
	if err != nil {
		return models.User{}, err
	}
	u.IsSuperuser = superuser != 0
	return u, nil
}

func (s *UserStore) byField(ctx context.Context, field, value string) (models.User, error) {
	row := s.q.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE "+field+" = ?", value)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, notFound("user not found")
		}
		return models.User{}, fmt.Errorf("query user by %s: %w", field, err)
	}
	return u, nil
}

// ByID retrieves a single user by their ID.
func (s *UserStore) ByID(ctx context.Context, id string) (models.User, error) {
	return s.byField(ctx, "id", id)
}

// ByUsername retrieves a single user by their username.
func (s *UserStore) ByUsername(ctx context.Context, username string) (models.User, error) {
	return s.byField(ctx, "username", username)
}

// ByEmail retrieves a single user by their email.
func (s *UserStore) ByEmail(ctx context.Context, email string) (models.User, error) {
	return s.byField(ctx, "email", email)
}

// All returns every user record.
func (s *UserStore) All(ctx context.Context) ([]models.User, error) {
	rows, err := s.q.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		var superuser int
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &superuser, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.IsSuperuser = superuser != 0
		users = append(users, u)
	}
	return users, rows.Err()
}

// Create inserts a new user. Username and email collisions surface as
// Conflict.
func (s *UserStore) Create(ctx context.Context, u models.User) error {
	superuser := 0
	if u.IsSuperuser {
		superuser = 1
	}
	_, err := s.q.ExecContext(ctx,
		"INSERT INTO users (id, username, email, first_name, last_name, password_hash, is_superuser) VALUES (?, ?, ?, ?, ?, ?, ?)",
		u.ID, u.Username, u.Email, u.FirstName, u.LastName, u.PasswordHash, superuser,
	)
	if err != nil {
		return mapWriteErr(err, "insert user")
	}
	return nil
}

// UpdateNames overwrites the name fields of a user record.
func (s *UserStore) UpdateNames(ctx context.Context, id, firstName, lastName string) error {
	_, err := s.q.ExecContext(ctx, "UPDATE users SET first_name = ?, last_name = ? WHERE id = ?", firstName, lastName, id)
	if err != nil {
		return mapWriteErr(err, "update user names")
	}
	return nil
}

// UpdatePasswordHash replaces a user's credential hash.
func (s *UserStore) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	_, err := s.q.ExecContext(ctx, "UPDATE users SET password_hash = ? WHERE id = ?", hash, id)
	if err != nil {
		return mapWriteErr(err, "update password hash")
	}
	return nil
}

// Delete removes a user record. Movies posted by the user and likes made by
// the user are removed by the schema's cascade rules.
func (s *UserStore) Delete(ctx context.Context, id string) error {
	res, err := s.q.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notFound("user not found")
	}
	return nil
}
