package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, Other},
		{"postgres unique", &pgconn.PgError{Code: "23505", ConstraintName: "unique_follow"}, UniqueViolation},
		{"postgres fk", &pgconn.PgError{Code: "23503"}, Other},
		{"mysql duplicate", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a-b' for key 'followers.unique_follow'"}, UniqueViolation},
		{"mysql other", &mysql.MySQLError{Number: 1452}, Other},
		{"gorm translated", gorm.ErrDuplicatedKey, UniqueViolation},
		{"wrapped postgres", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), UniqueViolation},
		{"typed", &UniqueViolationError{Constraint: "unique_like"}, UniqueViolation},
		{"not found", ErrNotFound, Other},
		{"plain", errors.New("connection reset"), Other},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.err); got != tc.want {
				t.Fatalf("Classify() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestWrapCarriesConstraintName(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"postgres", &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_login"}, "idx_users_login"},
		{"mysql qualified", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'x' for key 'users.idx_users_login'"}, "idx_users_login"},
		{"mysql bare", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'x' for key 'unique_like'"}, "unique_like"},
		{"gorm", gorm.ErrDuplicatedKey, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := wrap("op", tc.err)
			var uv *UniqueViolationError
			if !errors.As(err, &uv) {
				t.Fatalf("wrap() = %v, want *UniqueViolationError", err)
			}
			if uv.Constraint != tc.want {
				t.Fatalf("constraint = %q, want %q", uv.Constraint, tc.want)
			}
			if !errors.Is(err, tc.err) {
				t.Fatal("original error must stay reachable through Unwrap")
			}
		})
	}
}

func TestWrapNotFoundAndOther(t *testing.T) {
	if err := wrap("find", gorm.ErrRecordNotFound); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	boom := errors.New("boom")
	err := wrap("find", boom)
	if !errors.Is(err, boom) || err.Error() != "find: boom" {
		t.Fatalf("got %v", err)
	}
	if wrap("noop", nil) != nil {
		t.Fatal("nil must stay nil")
	}
}

func TestPageOffset(t *testing.T) {
	cases := map[Page]int{0: 0, 1: 0, 2: 20, 3: 40, -4: 0}
	for p, want := range cases {
		if got := p.Offset(); got != want {
			t.Errorf("Page(%d).Offset() = %d, want %d", p, got, want)
		}
	}
}
