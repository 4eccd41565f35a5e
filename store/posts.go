package store

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/papacapim/server/models"
)

// PostScan describes a filtered, paginated scan over posts. Zero-valued filters are not applied;
// a non-nil Authors restricts results to those logins (an empty slice matches nothing).
type PostScan struct {
	Page     Page
	Authors  []string
	Author   string
	ParentID *uint
	Search   string
}

// CreatePost inserts p.
func (s *Store) CreatePost(ctx context.Context, p *models.Post) error {
	return wrap("create post", s.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error)
}

// PostByID looks a post up by id.
func (s *Store) PostByID(ctx context.Context, id uint) (models.Post, error) {
	var p models.Post
	err := s.db.WithContext(ctx).First(&p, id).Error
	return p, wrap("find post", err)
}

// ScanPosts runs q, oldest first, PageSize rows at a time.
func (s *Store) ScanPosts(ctx context.Context, q PostScan) ([]models.Post, error) {
	posts := make([]models.Post, 0)
	tx := s.db.WithContext(ctx).Model(&models.Post{})
	if q.Authors != nil {
		tx = tx.Where("user_login IN ?", q.Authors)
	}
	if q.Author != "" {
		tx = tx.Where("user_login = ?", q.Author)
	}
	if q.ParentID != nil {
		tx = tx.Where("post_id = ?", *q.ParentID)
	}
	if q.Search != "" {
		tx = tx.Where("LOWER(message) LIKE ? ESCAPE '!'", containsPattern(q.Search))
	}
	err := tx.Order("created_at ASC").Order("id ASC").
		Offset(q.Page.Offset()).Limit(PageSize).
		Find(&posts).Error
	return posts, wrap("scan posts", err)
}

// DeletePost removes a post; replies and likes go with it.
func (s *Store) DeletePost(ctx context.Context, id uint) error {
	return wrap("delete post", s.db.WithContext(ctx).Delete(&models.Post{}, id).Error)
}
