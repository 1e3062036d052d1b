// Package store is the domain access layer: typed queries and mutations over
// the questionnaire schema. Handlers never touch SQL directly.
package store

import (
	"database/sql"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrFormLocked marks a structural edit attempted on a form that is not
	// in draft status.
	ErrFormLocked = errors.New("form is not in draft status")
	// ErrInvalidState marks a user state outside the legal set.
	ErrInvalidState = errors.New("invalid user state")
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
