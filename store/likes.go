package store

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/papacapim/server/models"
)

// Like records login liking postID. A repeated like yields *UniqueViolationError.
func (s *Store) Like(ctx context.Context, login string, postID uint) (models.Like, error) {
	like := models.Like{UserLogin: login, PostID: postID}
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&like).Error
	return like, wrap("like", err)
}

// Unlike removes login's like on postID if present.
func (s *Store) Unlike(ctx context.Context, login string, postID uint) error {
	err := s.db.WithContext(ctx).
		Where("user_login = ? AND post_id = ?", login, postID).
		Delete(&models.Like{}).Error
	return wrap("unlike", err)
}

// LikesFor lists the likes of postID in creation order.
func (s *Store) LikesFor(ctx context.Context, postID uint) ([]models.Like, error) {
	likes := make([]models.Like, 0)
	err := s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").Order("id ASC").
		Find(&likes).Error
	return likes, wrap("list likes", err)
}
