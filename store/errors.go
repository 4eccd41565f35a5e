package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation    = "23505"
	mysqlDuplicateEntry  = 1062
	mysqlDuplicateKeyTag = "for key '"
)

// ErrNotFound is returned when a keyed lookup matches no row.
var ErrNotFound = errors.New("record not found")

// UniqueViolationError reports a write rejected by a unique constraint.
// Constraint is empty when the driver does not expose the index name.
type UniqueViolationError struct {
	Constraint string
	Err        error
}

func (e *UniqueViolationError) Error() string {
	if e.Constraint == "" {
		return "unique constraint violated"
	}
	return fmt.Sprintf("unique constraint %q violated", e.Constraint)
}

func (e *UniqueViolationError) Unwrap() error { return e.Err }

// Kind is the outcome of Classify.
type Kind int

const (
	// Other covers every failure that is not a uniqueness conflict; callers treat it as fatal.
	Other Kind = iota
	UniqueViolation
)

// Classify tells uniqueness conflicts apart from every other persistence failure.
func Classify(err error) Kind {
	var uv *UniqueViolationError
	if errors.As(err, &uv) {
		return UniqueViolation
	}
	if asUniqueViolation(err) != nil {
		return UniqueViolation
	}
	return Other
}

// IsUniqueViolation is shorthand for Classify(err) == UniqueViolation.
func IsUniqueViolation(err error) bool {
	return err != nil && Classify(err) == UniqueViolation
}

// wrap converts driver failures into the typed errors this package promises.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if uv := asUniqueViolation(err); uv != nil {
		return uv
	}
	return fmt.Errorf("%s: %w", op, err)
}

func asUniqueViolation(err error) *UniqueViolationError {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return &UniqueViolationError{Constraint: pgErr.ConstraintName, Err: err}
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return &UniqueViolationError{Constraint: mysqlKeyName(myErr.Message), Err: err}
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &UniqueViolationError{Err: err}
	}
	return nil
}

// mysqlKeyName extracts the index from "Duplicate entry 'x' for key 'users.idx_users_login'".
func mysqlKeyName(msg string) string {
	i := strings.LastIndex(msg, mysqlDuplicateKeyTag)
	if i < 0 {
		return ""
	}
	key := strings.TrimSuffix(msg[i+len(mysqlDuplicateKeyTag):], "'")
	if dot := strings.LastIndex(key, "."); dot >= 0 {
		key = key[dot+1:]
	}
	return key
}
