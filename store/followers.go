package store

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/papacapim/server/models"
)

// Follow inserts the edge follower -> followed. An existing edge yields *UniqueViolationError.
func (s *Store) Follow(ctx context.Context, follower, followed string) (models.Follower, error) {
	edge := models.Follower{FollowerLogin: follower, FollowedLogin: followed}
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&edge).Error
	return edge, wrap("follow", err)
}

// Unfollow removes the edge follower -> followed if present.
func (s *Store) Unfollow(ctx context.Context, follower, followed string) error {
	err := s.db.WithContext(ctx).
		Where("follower_login = ? AND followed_login = ?", follower, followed).
		Delete(&models.Follower{}).Error
	return wrap("unfollow", err)
}

// FollowedLogins returns the logins that login follows.
func (s *Store) FollowedLogins(ctx context.Context, login string) ([]string, error) {
	logins := make([]string, 0)
	err := s.db.WithContext(ctx).Model(&models.Follower{}).
		Where("follower_login = ?", login).
		Pluck("followed_login", &logins).Error
	return logins, wrap("list followed", err)
}

// FollowersOf returns the users following login, in the order they followed.
func (s *Store) FollowersOf(ctx context.Context, login string) ([]models.User, error) {
	users := make([]models.User, 0)
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Select("users.*").
		Joins("JOIN followers ON followers.follower_login = users.login").
		Where("followers.followed_login = ?", login).
		Order("followers.created_at ASC").Order("followers.id ASC").
		Find(&users).Error
	return users, wrap("list followers", err)
}
