// Package store is the persistence layer. It hides gorm behind keyed lookups, inserts,
// updates, deletes and filtered scans, and reports failures as ErrNotFound or
// *UniqueViolationError so callers never inspect driver codes themselves.
package store

import (
	"context"

	"gorm.io/gorm"
)

// PageSize is the fixed number of rows returned by every paginated listing.
const PageSize = 20

// Page is a 1-indexed page number.
type Page int

// Offset returns the number of rows to skip; pages below 1 are treated as the first page.
func (p Page) Offset() int {
	if p < 1 {
		return 0
	}
	return (int(p) - 1) * PageSize
}

// Store wraps a gorm handle.
type Store struct {
	db *gorm.DB
}

// New creates a Store over db.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Transaction runs fn against a Store bound to a single database transaction.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}
