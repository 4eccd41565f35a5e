// Package auth resolves session tokens to logins and decides who may mutate what.
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/papacapim/server/models"
	"github.com/papacapim/server/store"
)

var (
	// ErrUnauthenticated is returned for a missing or unknown token. The two cases are
	// deliberately indistinguishable to callers.
	ErrUnauthenticated = errors.New("invalid session")
	// ErrForbidden is returned when the acting login does not own the resource.
	ErrForbidden = errors.New("forbidden")
)

// SessionFinder is the slice of the store the resolver needs.
type SessionFinder interface {
	SessionByToken(ctx context.Context, token string) (models.Session, error)
}

// Resolver maps a session token onto the login that owns it. Every call hits the store.
type Resolver struct {
	sessions SessionFinder
}

// NewResolver creates a Resolver backed by sessions.
func NewResolver(sessions SessionFinder) *Resolver {
	return &Resolver{sessions: sessions}
}

// Resolve returns the login owning token. Unexpected store failures are returned as is.
func (r *Resolver) Resolve(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrUnauthenticated
	}
	sess, err := r.sessions.SessionByToken(ctx, token)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrUnauthenticated
	}
	if err != nil {
		return "", err
	}
	return sess.UserLogin, nil
}

// Authorize allows acting to mutate a resource only when it owns it.
func Authorize(acting, owner string) error {
	if acting == "" || acting != owner {
		return ErrForbidden
	}
	return nil
}
