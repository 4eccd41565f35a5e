// Package feed composes the paginated post listings: the global timeline, the
// followed-only feed, reply threads and per-author pages.
package feed

import (
	"context"
	"strings"

	"github.com/papacapim/server/models"
	"github.com/papacapim/server/store"
)

// Source is the part of the store the composer reads from.
type Source interface {
	FollowedLogins(ctx context.Context, login string) ([]string, error)
	ScanPosts(ctx context.Context, q store.PostScan) ([]models.Post, error)
}

// TokenResolver turns a session token into the acting login.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// Query is a GET /posts request.
type Query struct {
	Page   store.Page
	Feed   bool
	Search string
	Token  string
}

// Composer builds post listings, oldest first, store.PageSize per page.
type Composer struct {
	src      Source
	resolver TokenResolver
}

// NewComposer creates a Composer.
func NewComposer(src Source, resolver TokenResolver) *Composer {
	return &Composer{src: src, resolver: resolver}
}

// ListPosts lists posts for q. In feed mode the token must resolve (auth.ErrUnauthenticated
// otherwise) and only authors the actor follows are returned; following nobody yields
// an empty page without scanning. Search narrows either mode.
func (c *Composer) ListPosts(ctx context.Context, q Query) ([]models.Post, error) {
	scan := store.PostScan{Page: q.Page, Search: strings.TrimSpace(q.Search)}

	if q.Feed {
		login, err := c.resolver.Resolve(ctx, q.Token)
		if err != nil {
			return nil, err
		}
		followed, err := c.src.FollowedLogins(ctx, login)
		if err != nil {
			return nil, err
		}
		if len(followed) == 0 {
			return []models.Post{}, nil
		}
		scan.Authors = followed
	}

	return c.src.ScanPosts(ctx, scan)
}

// ListReplies lists the direct replies to parentID.
func (c *Composer) ListReplies(ctx context.Context, parentID uint, page store.Page) ([]models.Post, error) {
	return c.src.ScanPosts(ctx, store.PostScan{Page: page, ParentID: &parentID})
}

// ListUserPosts lists everything login wrote, replies included.
func (c *Composer) ListUserPosts(ctx context.Context, login string, page store.Page) ([]models.Post, error) {
	return c.src.ScanPosts(ctx, store.PostScan{Page: page, Author: login})
}
