package store

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm/clause"

	"github.com/papacapim/server/models"
)

// UserChanges lists the columns a user update may touch; nil fields are left alone.
type UserChanges struct {
	Login        *string
	Name         *string
	PasswordHash *string
}

// CreateUser inserts u. A taken login yields *UniqueViolationError.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	return wrap("create user", s.db.WithContext(ctx).Omit(clause.Associations).Create(u).Error)
}

// UserByLogin looks a user up by login.
func (s *Store) UserByLogin(ctx context.Context, login string) (models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where("login = ?", login).First(&u).Error
	return u, wrap("find user by login", err)
}

// UserByID looks a user up by numeric id.
func (s *Store) UserByID(ctx context.Context, id uint) (models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).First(&u, id).Error
	return u, wrap("find user by id", err)
}

// ListUsers returns a page of users, oldest first, optionally filtered by a
// case-insensitive match on login or name.
func (s *Store) ListUsers(ctx context.Context, page Page, search string) ([]models.User, error) {
	users := make([]models.User, 0)
	q := s.db.WithContext(ctx).Model(&models.User{})
	if search != "" {
		pattern := containsPattern(search)
		q = q.Where("(LOWER(login) LIKE ? ESCAPE '!' OR LOWER(name) LIKE ? ESCAPE '!')", pattern, pattern)
	}
	err := q.Order("created_at ASC").Order("id ASC").
		Offset(page.Offset()).Limit(PageSize).
		Find(&users).Error
	return users, wrap("list users", err)
}

// UpdateUser applies ch to u in one transaction and reloads u. A password change
// deletes every session of the user first. A login change is carried to all
// dependent rows by the ON UPDATE CASCADE foreign keys.
func (s *Store) UpdateUser(ctx context.Context, u *models.User, ch UserChanges) error {
	return s.Transaction(ctx, func(tx *Store) error {
		if ch.PasswordHash != nil {
			if err := tx.DeleteSessionsFor(ctx, u.Login); err != nil {
				return err
			}
		}

		updates := map[string]any{"updated_at": time.Now()}
		if ch.Login != nil {
			updates["login"] = *ch.Login
		}
		if ch.Name != nil {
			updates["name"] = *ch.Name
		}
		if ch.PasswordHash != nil {
			updates["password_hash"] = *ch.PasswordHash
		}

		err := tx.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", u.ID).Updates(updates).Error
		if err != nil {
			return wrap("update user", err)
		}
		return wrap("reload user", tx.db.WithContext(ctx).First(u, u.ID).Error)
	})
}

// DeleteUser removes the user; the database cascades to everything that references it.
func (s *Store) DeleteUser(ctx context.Context, id uint) error {
	return wrap("delete user", s.db.WithContext(ctx).Delete(&models.User{}, id).Error)
}

// likeEscaper makes LIKE wildcards in user input literal, using ! as the ESCAPE
// character since backslash is read differently by mysql and postgres.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern builds a case-insensitive substring pattern; pair it with ESCAPE '!'.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}
