package store

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/papacapim/server/models"
)

// CreateSession inserts a session. Token collisions surface as *UniqueViolationError.
func (s *Store) CreateSession(ctx context.Context, sess *models.Session) error {
	return wrap("create session", s.db.WithContext(ctx).Omit(clause.Associations).Create(sess).Error)
}

// SessionByToken finds the session with exactly this token.
func (s *Store) SessionByToken(ctx context.Context, token string) (models.Session, error) {
	var sess models.Session
	err := s.db.WithContext(ctx).Where("token = ?", token).First(&sess).Error
	return sess, wrap("find session", err)
}

// DeleteSession removes a session by id. Deleting a missing session is not an error.
func (s *Store) DeleteSession(ctx context.Context, id uint) error {
	return wrap("delete session", s.db.WithContext(ctx).Delete(&models.Session{}, id).Error)
}

// DeleteSessionsFor removes every session owned by login.
func (s *Store) DeleteSessionsFor(ctx context.Context, login string) error {
	err := s.db.WithContext(ctx).Where("user_login = ?", login).Delete(&models.Session{}).Error
	return wrap("delete sessions", err)
}
