// Package resolver implements the resolution layer: one handler per
// query/mutation operation. Each handler takes the requester identity as an
// explicit parameter, applies the authorization policy, shapes its input and
// talks to the stores. Every mutating handler runs its read-check-write
// sequence inside a single transaction so concurrent requests cannot race
// between the check and the write.
package resolver

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/isdelr/streamy-api/internal/store"
)

// Resolver orchestrates policy checks and store calls for every operation.
type Resolver struct {
	db      *sql.DB
	users   *store.UserStore
	catalog *store.CatalogStore
}

// New creates a Resolver over a database handle.
func New(db *sql.DB) *Resolver {
	return &Resolver{
		db:      db,
		users:   store.NewUserStore(db),
		catalog: store.NewCatalogStore(db),
	}
}

// UserStore exposes the identity store for collaborators that need lookups
// outside an operation, such as the token service and the auth middleware.
func (r *Resolver) UserStore() *store.UserStore {
	return r.users
}

// inTx runs fn with transaction-bound stores, committing on success.
func (r *Resolver) inTx(ctx context.Context, fn func(users *store.UserStore, catalog *store.CatalogStore) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(r.users.WithTx(tx), r.catalog.WithTx(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
